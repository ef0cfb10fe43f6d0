package scalar

import (
	"math/big"

	"github.com/tuneinsight/lll/utils/bignum"
)

// Rational is the domain of exact arbitrary precision rationals.
// Its elements are *big.Rat.
type Rational struct{}

func (Rational) Name() string { return "rational" }

func (Rational) Exact() bool { return true }

func (Rational) Zero() *big.Rat { return new(big.Rat) }

func (Rational) FromInt64(x int64) *big.Rat { return new(big.Rat).SetInt64(x) }

func (Rational) FromBigInt(x *big.Int) *big.Rat { return new(big.Rat).SetInt(x) }

func (Rational) Copy(x *big.Rat) *big.Rat { return new(big.Rat).Set(x) }

func (Rational) Add(x, y *big.Rat) *big.Rat { return new(big.Rat).Add(x, y) }

func (Rational) Sub(x, y *big.Rat) *big.Rat { return new(big.Rat).Sub(x, y) }

func (Rational) Neg(x *big.Rat) *big.Rat { return new(big.Rat).Neg(x) }

func (Rational) Mul(x, y *big.Rat) *big.Rat { return new(big.Rat).Mul(x, y) }

func (Rational) Quo(x, y *big.Rat) (*big.Rat, error) {
	if y.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	return new(big.Rat).Quo(x, y), nil
}

func (Rational) SubMul(acc, x *big.Rat, q *big.Int) *big.Rat {
	qx := new(big.Rat).Mul(x, new(big.Rat).SetInt(q))
	if acc == x {
		return new(big.Rat).Sub(acc, qx)
	}
	return acc.Sub(acc, qx)
}

func (Rational) Round(x *big.Rat) *big.Int { return bignum.RoundRat(x) }

func (Rational) Sign(x *big.Rat) int { return x.Sign() }

func (Rational) Cmp(x, y *big.Rat) int { return x.Cmp(y) }

func (Rational) IsValid(x *big.Rat) bool { return x != nil }

func (Rational) Rat(x *big.Rat) *big.Rat { return new(big.Rat).Set(x) }

func (Rational) Float(x *big.Rat, prec uint) *big.Float { return bignum.NewFloat(x, prec) }

func (Rational) String(x *big.Rat) string { return x.RatString() }
