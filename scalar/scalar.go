// Package scalar implements the numeric domains over which lattice bases are defined:
// exact arbitrary precision integers, exact arbitrary precision rationals and
// fixed precision floating point approximations.
//
// All domains round to the nearest integer with ties rounded away from zero.
package scalar

import (
	"errors"
	"math/big"
)

var (
	// ErrDivisionByZero is returned when dividing by an element equal to zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrInexactDivision is returned by the integer domain when the quotient is not an integer.
	ErrInexactDivision = errors.New("inexact integer division")
)

// Domain is the arithmetic of a coordinate representation T.
//
// Methods returning T never modify their operands, with the exception of SubMul
// which is allowed to reuse the storage of its accumulator.
type Domain[T any] interface {
	// Name returns a short name of the domain.
	Name() string

	// Exact returns true if the arithmetic of the domain is exact.
	Exact() bool

	// Zero returns a new element equal to zero.
	Zero() T

	// FromInt64 returns a new element equal to x.
	FromInt64(x int64) T

	// FromBigInt returns a new element equal to x (or its closest approximation).
	FromBigInt(x *big.Int) T

	// Copy returns a deep copy of x.
	Copy(x T) T

	// Add returns x + y.
	Add(x, y T) T

	// Sub returns x - y.
	Sub(x, y T) T

	// Neg returns -x.
	Neg(x T) T

	// Mul returns x * y.
	Mul(x, y T) T

	// Quo returns x / y.
	// It returns ErrDivisionByZero if y is zero.
	Quo(x, y T) (T, error)

	// SubMul returns acc - q * x. The storage of acc may be reused for the result.
	SubMul(acc, x T, q *big.Int) T

	// Round returns the integer closest to x, ties rounded away from zero.
	Round(x T) *big.Int

	// Sign returns -1, 0 or +1 depending on the sign of x.
	Sign(x T) int

	// Cmp compares x and y and returns -1, 0 or +1.
	Cmp(x, y T) int

	// IsValid returns false if x does not represent a finite number.
	IsValid(x T) bool

	// Rat returns the exact rational value of x.
	Rat(x T) *big.Rat

	// Float returns x as a big.Float with prec bits of precision.
	Float(x T, prec uint) *big.Float

	// String returns a textual representation of x.
	String(x T) string
}

var (
	_ Domain[*big.Int] = Integer{}
	_ Domain[*big.Rat] = Rational{}
	_ Domain[float64]  = Float{}
)
