package scalar

import (
	"math"
	"math/big"
	"strconv"

	"github.com/tuneinsight/lll/utils/bignum"
)

// Float is the domain of IEEE 754 double precision approximations.
// Its elements are float64. Arithmetic is not exact: integer combinations of
// rows stay exact only as long as the entries are integers below 2^53.
type Float struct{}

func (Float) Name() string { return "float" }

func (Float) Exact() bool { return false }

func (Float) Zero() float64 { return 0 }

func (Float) FromInt64(x int64) float64 { return float64(x) }

func (Float) FromBigInt(x *big.Int) float64 {
	f, _ := new(big.Float).SetInt(x).Float64()
	return f
}

func (Float) Copy(x float64) float64 { return x }

func (Float) Add(x, y float64) float64 { return x + y }

func (Float) Sub(x, y float64) float64 { return x - y }

func (Float) Neg(x float64) float64 { return -x }

func (Float) Mul(x, y float64) float64 { return x * y }

func (Float) Quo(x, y float64) (float64, error) {
	if y == 0 {
		return 0, ErrDivisionByZero
	}
	return x / y, nil
}

func (d Float) SubMul(acc, x float64, q *big.Int) float64 {
	return acc - d.FromBigInt(q)*x
}

// Round returns the integer closest to x, ties rounded away from zero (math.Round).
func (Float) Round(x float64) *big.Int {
	r, _ := big.NewFloat(math.Round(x)).Int(nil)
	return r
}

func (Float) Sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func (Float) Cmp(x, y float64) int {
	switch {
	case x > y:
		return 1
	case x < y:
		return -1
	}
	return 0
}

func (Float) IsValid(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

func (Float) Rat(x float64) *big.Rat { return bignum.NewRat(x) }

func (Float) Float(x float64, prec uint) *big.Float { return bignum.NewFloat(x, prec) }

func (Float) String(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) }
