package lattice

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/tuneinsight/lll/scalar"
	"github.com/tuneinsight/lll/utils"
)

// Basis is an ordered sequence of n row vectors of dimension m over a numeric domain.
// Row order is significant. Row operations are performed in place.
type Basis[T any] struct {
	domain scalar.Domain[T]
	rows   [][]T
	m      int
}

// NewBasis allocates a new n x m basis over the domain d, filled with zeros.
func NewBasis[T any](d scalar.Domain[T], n, m int) *Basis[T] {
	if n < 0 || m < 0 {
		panic(fmt.Errorf("cannot NewBasis: invalid dimensions %dx%d", n, m))
	}
	rows := make([][]T, n)
	for i := range rows {
		rows[i] = make([]T, m)
		for j := range rows[i] {
			rows[i][j] = d.Zero()
		}
	}
	return &Basis[T]{domain: d, rows: rows, m: m}
}

// NewBasisFromRows creates a new basis over the domain d from a deep copy of rows.
// It returns an error if rows is empty, if the rows do not all have the same
// non-zero length, or if an entry is not valid in d.
func NewBasisFromRows[T any](d scalar.Domain[T], rows [][]T) (*Basis[T], error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("cannot NewBasisFromRows: %w", ErrEmptyBasis)
	}

	m := len(rows[0])
	b := &Basis[T]{domain: d, rows: make([][]T, len(rows)), m: m}

	for i := range rows {
		if len(rows[i]) != m || m == 0 {
			return nil, fmt.Errorf("cannot NewBasisFromRows: row %d has length %d but row 0 has length %d: %w", i, len(rows[i]), m, ErrDimensionMismatch)
		}
		b.rows[i] = make([]T, m)
		for j := range rows[i] {
			if !d.IsValid(rows[i][j]) {
				return nil, fmt.Errorf("cannot NewBasisFromRows: entry (%d, %d): %w", i, j, ErrInvalidEntry)
			}
			b.rows[i][j] = d.Copy(rows[i][j])
		}
	}

	return b, nil
}

// NewBasisFromInt64 creates a new basis over the domain d from rows of int64 values.
func NewBasisFromInt64[T any](d scalar.Domain[T], rows [][]int64) (*Basis[T], error) {
	tmp := make([][]T, len(rows))
	for i := range rows {
		tmp[i] = make([]T, len(rows[i]))
		for j := range rows[i] {
			tmp[i][j] = d.FromInt64(rows[i][j])
		}
	}
	return NewBasisFromRows(d, tmp)
}

// NewIdentity returns the n x n identity matrix over the integers.
// It is the natural starting point of a transformation matrix.
func NewIdentity(n int) *Basis[*big.Int] {
	b := NewBasis[*big.Int](scalar.Integer{}, n, n)
	for i := 0; i < n; i++ {
		b.rows[i][i].SetInt64(1)
	}
	return b
}

// Domain returns the numeric domain of the basis.
func (b *Basis[T]) Domain() scalar.Domain[T] {
	return b.domain
}

// Dimensions returns the number of rows n and the number of columns m.
func (b *Basis[T]) Dimensions() (n, m int) {
	return len(b.rows), b.m
}

// Row returns the i-th row. The returned slice is not a copy: modifying it modifies the basis.
func (b *Basis[T]) Row(i int) []T {
	return b.rows[i]
}

// SetRow sets the i-th row to a deep copy of v.
func (b *Basis[T]) SetRow(i int, v []T) error {
	if len(v) != b.m {
		return fmt.Errorf("cannot SetRow: len(v)=%d != %d: %w", len(v), b.m, ErrDimensionMismatch)
	}
	if utils.Alias1D(b.rows[i], v) {
		return nil
	}
	for j := range v {
		if !b.domain.IsValid(v[j]) {
			return fmt.Errorf("cannot SetRow: entry %d: %w", j, ErrInvalidEntry)
		}
	}
	for j := range v {
		b.rows[i][j] = b.domain.Copy(v[j])
	}
	return nil
}

// At returns the entry (i, j).
func (b *Basis[T]) At(i, j int) T {
	return b.rows[i][j]
}

// Set sets the entry (i, j) to a copy of x.
func (b *Basis[T]) Set(i, j int, x T) {
	b.rows[i][j] = b.domain.Copy(x)
}

// Swap exchanges the rows i and j.
func (b *Basis[T]) Swap(i, j int) {
	b.rows[i], b.rows[j] = b.rows[j], b.rows[i]
}

// Combine sets row i to row_i - q * row_j in place.
// It panics if i == j, since the operation would not be unimodular.
func (b *Basis[T]) Combine(i, j int, q *big.Int) {
	if i == j {
		panic(fmt.Errorf("cannot Combine: i=j=%d", i))
	}
	if q.Sign() == 0 {
		return
	}
	scalar.SubMulVec(b.domain, b.rows[i], b.rows[j], q)
}

// Insert moves the row i to the position j, shifting the rows in between.
func (b *Basis[T]) Insert(i, j int) {
	switch {
	case i < j:
		utils.RotateSliceInPlace(b.rows[i:j+1], 1)
	case i > j:
		utils.RotateSliceInPlace(b.rows[j:i+1], -1)
	}
}

// Dot returns the inner product of the rows i and j.
func (b *Basis[T]) Dot(i, j int) T {
	return scalar.Dot(b.domain, b.rows[i], b.rows[j])
}

// SquaredNorm returns the squared euclidean norm of the row i.
func (b *Basis[T]) SquaredNorm(i int) T {
	return scalar.SquaredNorm(b.domain, b.rows[i])
}

// IsZeroRow returns true if all entries of the row i are zero.
func (b *Basis[T]) IsZeroRow(i int) bool {
	for _, x := range b.rows[i] {
		if b.domain.Sign(x) != 0 {
			return false
		}
	}
	return true
}

// MaxSquaredNorm returns the largest squared row norm and the index of the first row reaching it.
func (b *Basis[T]) MaxSquaredNorm() (max T, idx int) {
	for i := range b.rows {
		if ni := b.SquaredNorm(i); i == 0 || b.domain.Cmp(ni, max) > 0 {
			max, idx = ni, i
		}
	}
	return
}

// Validate checks that the basis is a valid input for a reduction:
// at least one row, all rows of the same length m >= n and all entries valid.
func (b *Basis[T]) Validate() error {
	n := len(b.rows)
	if n == 0 {
		return ErrEmptyBasis
	}
	if b.m < n {
		return fmt.Errorf("%d rows of dimension %d: %w", n, b.m, ErrDimensionMismatch)
	}
	for i := range b.rows {
		if len(b.rows[i]) != b.m {
			return fmt.Errorf("row %d has length %d != %d: %w", i, len(b.rows[i]), b.m, ErrDimensionMismatch)
		}
		for j := range b.rows[i] {
			if !b.domain.IsValid(b.rows[i][j]) {
				return fmt.Errorf("entry (%d, %d): %w", i, j, ErrInvalidEntry)
			}
		}
	}
	return nil
}

// CopyNew returns a deep copy of the basis.
func (b *Basis[T]) CopyNew() *Basis[T] {
	c := &Basis[T]{domain: b.domain, rows: make([][]T, len(b.rows)), m: b.m}
	for i := range b.rows {
		c.rows[i] = make([]T, len(b.rows[i]))
		for j := range b.rows[i] {
			c.rows[i][j] = b.domain.Copy(b.rows[i][j])
		}
	}
	return c
}

// Equal returns true if both bases have the same dimensions and entries.
func (b *Basis[T]) Equal(other *Basis[T]) bool {
	if len(b.rows) != len(other.rows) || b.m != other.m {
		return false
	}
	for i := range b.rows {
		for j := range b.rows[i] {
			if b.domain.Cmp(b.rows[i][j], other.rows[i][j]) != 0 {
				return false
			}
		}
	}
	return true
}

// String returns the rows of the basis, e.g. [[1 0] [0 1]].
func (b *Basis[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := range b.rows {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte('[')
		for j := range b.rows[i] {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(b.domain.String(b.rows[i][j]))
		}
		sb.WriteByte(']')
	}
	sb.WriteByte(']')
	return sb.String()
}

// Product returns the basis u * b over the domain of b, whose rows are the integer
// combinations of the rows of b given by the rows of u.
func Product[T any](u *Basis[*big.Int], b *Basis[T]) (*Basis[T], error) {
	n, k := u.Dimensions()
	rows, m := b.Dimensions()
	if k != rows {
		return nil, fmt.Errorf("cannot Product: %dx%d times %dx%d: %w", n, k, rows, m, ErrDimensionMismatch)
	}

	d := b.domain
	c := NewBasis(d, n, m)
	for i := 0; i < n; i++ {
		for l := 0; l < k; l++ {
			if u.rows[i][l].Sign() == 0 {
				continue
			}
			x := d.FromBigInt(u.rows[i][l])
			for j := 0; j < m; j++ {
				c.rows[i][j] = d.Add(c.rows[i][j], d.Mul(x, b.rows[l][j]))
			}
		}
	}
	return c, nil
}
