// Package reduction implements the elements shared by the lattice reduction engines:
// the reduction parameters, the per-call options, the statistics, the row operation
// session and the exact certification of the reduced invariants.
//
// The engines themselves are implemented in the sub-packages lll and l2.
package reduction

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrInvalidParameters is returned when the reduction parameters are out of range.
	ErrInvalidParameters = errors.New("invalid reduction parameters")

	// ErrNotReduced is returned when a basis does not satisfy the reduced invariants.
	ErrNotReduced = errors.New("basis is not reduced")
)

// Stats gathers the counters of a reduction call.
type Stats struct {
	// Iterations is the number of iterations of the main loop.
	Iterations int
	// Swaps is the number of swaps of adjacent rows.
	Swaps int
	// SizeReductions is the number of row combinations b_k <- b_k - q * b_j.
	SizeReductions int
	// Fallbacks is the number of exact recomputations triggered by the floating engine.
	Fallbacks int
	// Certified is true if the result has been checked with exact arithmetic.
	Certified bool
	// ExactCompletion is true if the exact engine completed the reduction
	// after the certification of a floating result failed.
	ExactCompletion bool
}

// Violation is the kind of a reduced invariant violation.
type Violation int

const (
	// SizeViolation means that |mu[k][j]| > eta.
	SizeViolation = Violation(iota)
	// LovaszViolation means that B[k] < (delta - mu[k][k-1]^2) * B[k-1].
	LovaszViolation
)

func (v Violation) String() string {
	switch v {
	case SizeViolation:
		return "size"
	case LovaszViolation:
		return "Lovász"
	default:
		return fmt.Sprintf("Violation(%d)", int(v))
	}
}

// ViolationError reports the first invariant a basis fails to satisfy.
type ViolationError struct {
	Kind Violation
	// Row is the index k of the failing row.
	Row int
	// Col is the index j of the failing coefficient for a SizeViolation, and k-1 otherwise.
	Col int
	// Value is mu[k][j] for a SizeViolation and B[k] / B[k-1] otherwise.
	Value *big.Rat
}

func (e *ViolationError) Error() string {
	switch e.Kind {
	case SizeViolation:
		return fmt.Sprintf("row %d: %s condition fails: mu[%d][%d] = %s", e.Row, e.Kind, e.Row, e.Col, e.Value.FloatString(6))
	default:
		return fmt.Sprintf("row %d: %s condition fails: B[%d]/B[%d] = %s", e.Row, e.Kind, e.Row, e.Col, e.Value.FloatString(6))
	}
}

func (e *ViolationError) Unwrap() error {
	return ErrNotReduced
}
