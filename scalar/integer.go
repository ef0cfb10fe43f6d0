package scalar

import (
	"math/big"

	"github.com/tuneinsight/lll/utils/bignum"
)

// Integer is the domain of exact arbitrary precision integers.
// Its elements are *big.Int.
type Integer struct{}

func (Integer) Name() string { return "integer" }

func (Integer) Exact() bool { return true }

func (Integer) Zero() *big.Int { return new(big.Int) }

func (Integer) FromInt64(x int64) *big.Int { return big.NewInt(x) }

func (Integer) FromBigInt(x *big.Int) *big.Int { return new(big.Int).Set(x) }

func (Integer) Copy(x *big.Int) *big.Int { return new(big.Int).Set(x) }

func (Integer) Add(x, y *big.Int) *big.Int { return new(big.Int).Add(x, y) }

func (Integer) Sub(x, y *big.Int) *big.Int { return new(big.Int).Sub(x, y) }

func (Integer) Neg(x *big.Int) *big.Int { return new(big.Int).Neg(x) }

func (Integer) Mul(x, y *big.Int) *big.Int { return new(big.Int).Mul(x, y) }

// Quo returns x / y if y divides x, and ErrInexactDivision otherwise.
// Rounded quotients are obtained by going through Rat.
func (Integer) Quo(x, y *big.Int) (*big.Int, error) {
	if y.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	q, r := new(big.Int).QuoRem(x, y, new(big.Int))
	if r.Sign() != 0 {
		return nil, ErrInexactDivision
	}
	return q, nil
}

func (Integer) SubMul(acc, x *big.Int, q *big.Int) *big.Int {
	if acc == x {
		return new(big.Int).Sub(acc, new(big.Int).Mul(q, x))
	}
	return acc.Sub(acc, new(big.Int).Mul(q, x))
}

func (Integer) Round(x *big.Int) *big.Int { return new(big.Int).Set(x) }

func (Integer) Sign(x *big.Int) int { return x.Sign() }

func (Integer) Cmp(x, y *big.Int) int { return x.Cmp(y) }

func (Integer) IsValid(x *big.Int) bool { return x != nil }

func (Integer) Rat(x *big.Int) *big.Rat { return new(big.Rat).SetInt(x) }

func (Integer) Float(x *big.Int, prec uint) *big.Float { return bignum.NewFloat(x, prec) }

func (Integer) String(x *big.Int) string { return x.String() }
