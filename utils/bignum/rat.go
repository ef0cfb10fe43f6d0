package bignum

import (
	"fmt"
	"math/big"
)

// NewRat allocates a new *big.Rat.
// Accepted types are: int, int64, float64, string, *big.Int, *big.Rat or *big.Float.
// Conversions are exact; NewRat panics on non finite floats or unparsable strings.
func NewRat(x interface{}) (y *big.Rat) {

	y = new(big.Rat)

	if x == nil {
		return
	}

	switch x := x.(type) {
	case int:
		y.SetInt64(int64(x))
	case int64:
		y.SetInt64(x)
	case float64:
		if y.SetFloat64(x) == nil {
			panic(fmt.Errorf("cannot NewRat: %v is not finite", x))
		}
	case string:
		if _, ok := y.SetString(x); !ok {
			panic(fmt.Errorf("cannot NewRat: invalid string %q", x))
		}
	case *big.Int:
		y.SetInt(x)
	case *big.Rat:
		y.Set(x)
	case *big.Float:
		if x.IsInf() {
			panic(fmt.Errorf("cannot NewRat: x is infinite"))
		}
		x.Rat(y)
	default:
		panic(fmt.Errorf("cannot NewRat: accepted types are int, int64, float64, string, *big.Int, *big.Rat or *big.Float but is %T", x))
	}

	return
}

// RoundRat returns the integer closest to x, with ties rounded away from zero.
func RoundRat(x *big.Rat) (r *big.Int) {
	r = new(big.Int)
	DivRound(x.Num(), x.Denom(), r)
	return
}

// AbsCmpRat returns -1, 0 or +1 depending on whether |x| <, ==, > |y|.
func AbsCmpRat(x, y *big.Rat) int {
	if x.Sign() >= 0 && y.Sign() >= 0 {
		return x.Cmp(y)
	}
	return new(big.Rat).Abs(x).Cmp(new(big.Rat).Abs(y))
}
