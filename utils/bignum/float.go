package bignum

import (
	"fmt"
	"math/big"

	"github.com/ALTree/bigfloat"
)

// NewFloat creates a new big.Float element with "prec" bits of precision.
// Valid types for x are: int, int64, uint, uint64, float64, *big.Int, *big.Rat or *big.Float.
func NewFloat(x interface{}, prec uint) (y *big.Float) {

	y = new(big.Float)
	y.SetPrec(prec)

	if x == nil {
		return
	}

	switch x := x.(type) {
	case int:
		y.SetInt64(int64(x))
	case int64:
		y.SetInt64(x)
	case uint:
		y.SetUint64(uint64(x))
	case uint64:
		y.SetUint64(x)
	case float64:
		y.SetFloat64(x)
	case *big.Int:
		y.SetInt(x)
	case *big.Rat:
		y.SetRat(x)
	case *big.Float:
		y.Set(x)
	default:
		panic(fmt.Errorf("invalid x.(type): valid types are int, int64, uint, uint64, float64, *big.Int, *big.Rat or *big.Float but is %T", x))
	}

	return
}

// RoundToInt returns the integer closest to x, with ties rounded away from zero.
// The rounding is exact: x is first converted to its rational value.
// x must be finite.
func RoundToInt(x *big.Float) (r *big.Int) {
	if x.IsInf() {
		panic(fmt.Errorf("cannot RoundToInt: x is infinite"))
	}
	q, _ := x.Rat(nil)
	return RoundRat(q)
}

// Log return ln(x) with x.Prec() bits of precision.
func Log(x *big.Float) (ln *big.Float) {
	return bigfloat.Log(x)
}

// Exp returns exp(x) with x.Prec() bits of precision.
func Exp(x *big.Float) (exp *big.Float) {
	return bigfloat.Exp(x)
}
