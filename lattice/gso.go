package lattice

import (
	"fmt"
	"math/big"
)

// GramSchmidt is the exact Gram-Schmidt state of a basis.
// It stores, for each row i, the coefficients mu[i][j] = <b_i, b*_j> / B[j] for j < i
// and r[i][j] = mu[i][j] * B[j] for j <= i, where B[i] = r[i][i] = ||b*_i||^2.
//
// Only the first Valid() rows are current. Any mutation of the basis must be
// followed by the corresponding call to Invalidate, Combine or Swap.
type GramSchmidt[T any] struct {
	basis *Basis[T]
	mu    [][]*big.Rat
	r     [][]*big.Rat
	valid int
}

// NewGramSchmidt allocates a new exact Gram-Schmidt state for b.
// No row is computed until Update is called.
func NewGramSchmidt[T any](b *Basis[T]) *GramSchmidt[T] {
	n, _ := b.Dimensions()
	g := &GramSchmidt[T]{
		basis: b,
		mu:    make([][]*big.Rat, n),
		r:     make([][]*big.Rat, n),
	}
	for i := 0; i < n; i++ {
		g.mu[i] = make([]*big.Rat, i)
		g.r[i] = make([]*big.Rat, i+1)
		for j := 0; j < i; j++ {
			g.mu[i][j] = new(big.Rat)
		}
		for j := 0; j <= i; j++ {
			g.r[i][j] = new(big.Rat)
		}
	}
	return g
}

// Basis returns the basis tracked by the receiver.
func (g *GramSchmidt[T]) Basis() *Basis[T] {
	return g.basis
}

// Valid returns the number of leading rows whose state is current.
func (g *GramSchmidt[T]) Valid() int {
	return g.valid
}

// Invalidate marks the rows k and above as stale.
func (g *GramSchmidt[T]) Invalidate(k int) {
	if k < 0 {
		k = 0
	}
	if k < g.valid {
		g.valid = k
	}
}

// Update recomputes the stale rows up to and including k.
// It returns a *DependencyError if a recomputed row lies in the span of the previous rows.
func (g *GramSchmidt[T]) Update(k int) (err error) {
	for i := g.valid; i <= k; i++ {
		if err = g.computeRow(i); err != nil {
			return
		}
		g.valid = i + 1
	}
	return
}

// UpdateAll recomputes all stale rows.
func (g *GramSchmidt[T]) UpdateAll() error {
	return g.Update(len(g.r) - 1)
}

// Mu returns mu[i][j] for j < i and 1 for j == i.
// The returned value must not be modified.
func (g *GramSchmidt[T]) Mu(i, j int) *big.Rat {
	g.checkValid(i)
	if j == i {
		return big.NewRat(1, 1)
	}
	return g.mu[i][j]
}

// R returns r[i][j] = mu[i][j] * B[j] for j <= i.
// The returned value must not be modified.
func (g *GramSchmidt[T]) R(i, j int) *big.Rat {
	g.checkValid(i)
	return g.r[i][j]
}

// B returns the squared norm of the i-th orthogonalized vector.
// The returned value must not be modified.
func (g *GramSchmidt[T]) B(i int) *big.Rat {
	g.checkValid(i)
	return g.r[i][i]
}

// Combine updates the state after the basis operation b_k <- b_k - q * b_j with j < k.
// On exact domains the row k is updated in place; the orthogonalized vectors
// and the other rows are left unchanged by such an operation.
func (g *GramSchmidt[T]) Combine(k, j int, q *big.Int) {
	if q.Sign() == 0 {
		return
	}

	if j >= k || k >= g.valid || !g.basis.Domain().Exact() {
		g.Invalidate(k)
		return
	}

	qr := new(big.Rat).SetInt(q)
	tmp := new(big.Rat)
	for l := 0; l < j; l++ {
		g.mu[k][l].Sub(g.mu[k][l], tmp.Mul(qr, g.mu[j][l]))
		g.r[k][l].Sub(g.r[k][l], tmp.Mul(qr, g.r[j][l]))
	}
	g.mu[k][j].Sub(g.mu[k][j], qr)
	g.r[k][j].Sub(g.r[k][j], tmp.Mul(qr, g.r[j][j]))
}

// Swap updates the state after the basis operation that exchanges the rows k-1 and k.
func (g *GramSchmidt[T]) Swap(k int) {
	g.Invalidate(k - 1)
}

func (g *GramSchmidt[T]) checkValid(i int) {
	if i >= g.valid {
		panic(fmt.Errorf("invalid row %d: only %d rows are current", i, g.valid))
	}
}

// computeRow assumes that the rows 0..i-1 are current.
func (g *GramSchmidt[T]) computeRow(i int) error {
	ri := g.r[i]
	tmp := new(big.Rat)
	for j := 0; j <= i; j++ {
		ri[j] = exactDot(g.basis, i, j)
		for l := 0; l < j; l++ {
			ri[j].Sub(ri[j], tmp.Mul(g.mu[j][l], ri[l]))
		}
		if j < i {
			g.mu[i][j].Quo(ri[j], g.r[j][j])
		}
	}

	if ri[i].Sign() <= 0 {
		return &DependencyError{Row: i}
	}

	return nil
}

// exactDot returns <b_i, b_j> as an exact rational.
func exactDot[T any](b *Basis[T], i, j int) *big.Rat {
	d := b.Domain()
	if d.Exact() {
		return d.Rat(b.Dot(i, j))
	}
	acc, tmp := new(big.Rat), new(big.Rat)
	for l := range b.rows[i] {
		acc.Add(acc, tmp.Mul(d.Rat(b.rows[i][l]), d.Rat(b.rows[j][l])))
	}
	return acc
}
