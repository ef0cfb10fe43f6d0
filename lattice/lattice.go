// Package lattice implements lattice bases over the numeric domains of package scalar,
// together with the Gram-Schmidt orthogonalization engines used by the reduction algorithms.
package lattice

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyBasis is returned when a basis has no rows.
	ErrEmptyBasis = errors.New("empty basis")

	// ErrDimensionMismatch is returned when rows have different lengths, or
	// when a basis has more rows than columns.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrInvalidEntry is returned when an entry does not represent a finite number.
	ErrInvalidEntry = errors.New("invalid entry")

	// ErrLinearlyDependent is returned when the rows of a basis are linearly dependent,
	// i.e. when an orthogonalized vector has a zero norm.
	ErrLinearlyDependent = errors.New("linearly dependent rows")
)

// DependencyError reports the first row whose orthogonalized vector vanishes.
type DependencyError struct {
	Row int
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, ErrLinearlyDependent)
}

func (e *DependencyError) Unwrap() error {
	return ErrLinearlyDependent
}
