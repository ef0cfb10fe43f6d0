package lattice

import (
	"fmt"
	"math/big"

	"github.com/tuneinsight/lll/utils"
)

// DefaultPrecision is the default precision, in bits, of the floating Gram-Schmidt state.
const DefaultPrecision = 53

// FloatGramSchmidt is a floating Gram-Schmidt state of a basis.
//
// The Gram matrix of the basis is kept exactly in the domain of the basis,
// while r and mu are computed from it as *big.Float with a fixed precision
// and an unbounded exponent. After each row update, the relative error of
// r[k][k] is estimated as 2^-prec * (k+2)^2 * G[k][k] / r[k][k] and compared
// to the tolerance. If r[k][k] is not positive or if the estimate exceeds the
// tolerance, the rows 0..k are recomputed exactly and overwrite the floating ones.
type FloatGramSchmidt[T any] struct {
	basis     *Basis[T]
	gram      [][]T
	r         [][]*big.Float
	mu        [][]*big.Float
	prec      uint
	tolerance *big.Float
	exact     *GramSchmidt[T]
	valid     int
	fallbacks int
}

// NewFloatGramSchmidt allocates a new floating Gram-Schmidt state for b with
// the given precision and computes the Gram matrix of b.
// The precision check is disabled until SetTolerance is called; the exact
// fallback is still triggered by non-positive values of r[k][k].
func NewFloatGramSchmidt[T any](b *Basis[T], prec uint) *FloatGramSchmidt[T] {
	if prec == 0 {
		prec = DefaultPrecision
	}

	n, _ := b.Dimensions()
	g := &FloatGramSchmidt[T]{
		basis: b,
		gram:  make([][]T, n),
		r:     make([][]*big.Float, n),
		mu:    make([][]*big.Float, n),
		prec:  prec,
		exact: NewGramSchmidt(b),
	}

	for i := 0; i < n; i++ {
		g.gram[i] = make([]T, n)
		g.r[i] = make([]*big.Float, i+1)
		g.mu[i] = make([]*big.Float, i)
		for j := 0; j <= i; j++ {
			g.r[i][j] = new(big.Float).SetPrec(prec)
		}
		for j := 0; j < i; j++ {
			g.mu[i][j] = new(big.Float).SetPrec(prec)
		}
	}

	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			g.gram[i][j] = b.Dot(i, j)
			g.gram[j][i] = g.gram[i][j]
		}
	}

	return g
}

// SetTolerance sets the tolerance of the precision check. A non-positive value disables it.
func (g *FloatGramSchmidt[T]) SetTolerance(tolerance float64) {
	if tolerance <= 0 {
		g.tolerance = nil
		return
	}
	g.tolerance = new(big.Float).SetFloat64(tolerance)
}

// Precision returns the precision in bits of the floating state.
func (g *FloatGramSchmidt[T]) Precision() uint {
	return g.prec
}

// Basis returns the basis tracked by the receiver.
func (g *FloatGramSchmidt[T]) Basis() *Basis[T] {
	return g.basis
}

// Exact returns the exact Gram-Schmidt state used for the fallbacks.
func (g *FloatGramSchmidt[T]) Exact() *GramSchmidt[T] {
	return g.exact
}

// Fallbacks returns the number of exact recomputations performed so far.
func (g *FloatGramSchmidt[T]) Fallbacks() int {
	return g.fallbacks
}

// Valid returns the number of leading rows whose state is current.
func (g *FloatGramSchmidt[T]) Valid() int {
	return g.valid
}

// Gram returns the entry (i, j) of the Gram matrix.
func (g *FloatGramSchmidt[T]) Gram(i, j int) T {
	return g.gram[i][j]
}

// Invalidate marks the rows k and above as stale.
func (g *FloatGramSchmidt[T]) Invalidate(k int) {
	if k < 0 {
		k = 0
	}
	if k < g.valid {
		g.valid = k
	}
	g.exact.Invalidate(k)
}

// RefreshGram recomputes the row and column k of the Gram matrix
// after the row k of the basis has been modified, and invalidates the rows k and above.
func (g *FloatGramSchmidt[T]) RefreshGram(k int) {
	for j := range g.gram {
		g.gram[k][j] = g.basis.Dot(k, j)
		g.gram[j][k] = g.gram[k][j]
	}
	g.Invalidate(k)
}

// SwapGram permutes the Gram matrix after the rows i and j of the basis
// have been exchanged, and invalidates the rows min(i, j) and above.
func (g *FloatGramSchmidt[T]) SwapGram(i, j int) {
	if i == j {
		return
	}
	g.gram[i], g.gram[j] = g.gram[j], g.gram[i]
	for l := range g.gram {
		g.gram[l][i], g.gram[l][j] = g.gram[l][j], g.gram[l][i]
	}
	if j < i {
		i = j
	}
	g.Invalidate(i)
}

// InsertGram permutes the Gram matrix after the row i of the basis has been
// moved to the position j with Basis.Insert, and invalidates the rows min(i, j) and above.
func (g *FloatGramSchmidt[T]) InsertGram(i, j int) {
	if i == j {
		return
	}
	lo, hi := utils.Min(i, j), utils.Max(i, j)
	shift := 1
	if i > j {
		shift = -1
	}
	utils.RotateSliceInPlace(g.gram[lo:hi+1], shift)
	for _, row := range g.gram {
		utils.RotateSliceInPlace(row[lo:hi+1], shift)
	}
	g.Invalidate(lo)
}

// CombineMu applies mu[k][l] <- mu[k][l] - q * mu[j][l] for l < j and
// mu[k][j] <- mu[k][j] - q, i.e. the effect on mu of b_k <- b_k - q * b_j.
// It only modifies the coefficients of row k and does not change its validity.
func (g *FloatGramSchmidt[T]) CombineMu(k, j int, q *big.Int) {
	if q.Sign() == 0 {
		return
	}
	qf := new(big.Float).SetPrec(g.prec).SetInt(q)
	tmp := new(big.Float).SetPrec(g.prec)
	for l := 0; l < j; l++ {
		g.mu[k][l].Sub(g.mu[k][l], tmp.Mul(qf, g.mu[j][l]))
	}
	g.mu[k][j].Sub(g.mu[k][j], qf)
}

// Update recomputes the stale rows up to and including k.
// It returns a *DependencyError if a row lies in the span of the previous rows.
func (g *FloatGramSchmidt[T]) Update(k int) (err error) {
	for i := g.valid; i <= k; i++ {
		if err = g.computeRow(i); err != nil {
			return
		}
		g.valid = i + 1
	}
	return
}

// UpdateAll recomputes all stale rows.
func (g *FloatGramSchmidt[T]) UpdateAll() error {
	return g.Update(len(g.r) - 1)
}

// UpdateExact recomputes the rows 0..k exactly and overwrites the floating state with the result.
func (g *FloatGramSchmidt[T]) UpdateExact(k int) error {
	g.fallbacks++
	if err := g.exact.Update(k); err != nil {
		return err
	}
	for i := 0; i <= k; i++ {
		for j := 0; j <= i; j++ {
			g.r[i][j].SetRat(g.exact.r[i][j])
		}
		for j := 0; j < i; j++ {
			g.mu[i][j].SetRat(g.exact.mu[i][j])
		}
	}
	if g.valid < k+1 {
		g.valid = k + 1
	}
	return nil
}

// Mu returns mu[i][j] for j < i. The returned value must not be modified.
func (g *FloatGramSchmidt[T]) Mu(i, j int) *big.Float {
	return g.mu[i][j]
}

// R returns r[i][j] for j <= i. The returned value must not be modified.
func (g *FloatGramSchmidt[T]) R(i, j int) *big.Float {
	g.checkValid(i)
	return g.r[i][j]
}

// B returns the squared norm of the i-th orthogonalized vector.
// The returned value must not be modified.
func (g *FloatGramSchmidt[T]) B(i int) *big.Float {
	g.checkValid(i)
	return g.r[i][i]
}

// Projections sets s[j], for 0 <= j <= k, to the squared norm of the projection
// of b_k orthogonally to b_0, ..., b_{j-1}: s[0] = G[k][k] and s[j+1] = s[j] - mu[k][j] * r[k][j].
// In particular s[k] = r[k][k] and s[k-1] = r[k][k] + mu[k][k-1]^2 * r[k-1][k-1].
// The rows 0..k must be current and s must have at least k+1 allocated entries.
func (g *FloatGramSchmidt[T]) Projections(k int, s []*big.Float) {
	g.checkValid(k)
	tmp := new(big.Float).SetPrec(g.prec)
	s[0].SetPrec(g.prec).Set(g.basis.Domain().Float(g.gram[k][k], g.prec))
	for j := 0; j < k; j++ {
		s[j+1].SetPrec(g.prec).Sub(s[j], tmp.Mul(g.mu[k][j], g.r[k][j]))
	}
}

// MaxAbsMu returns max |mu[k][j]| over j < k, or zero if k = 0.
func (g *FloatGramSchmidt[T]) MaxAbsMu(k int) *big.Float {
	max := new(big.Float).SetPrec(g.prec)
	abs := new(big.Float).SetPrec(g.prec)
	for j := 0; j < k; j++ {
		if abs.Abs(g.mu[k][j]).Cmp(max) > 0 {
			max.Set(abs)
		}
	}
	return max
}

func (g *FloatGramSchmidt[T]) checkValid(i int) {
	if i >= g.valid {
		panic(fmt.Errorf("invalid row %d: only %d rows are current", i, g.valid))
	}
}

// computeRow assumes that the rows 0..i-1 are current.
func (g *FloatGramSchmidt[T]) computeRow(i int) error {
	d := g.basis.Domain()
	ri := g.r[i]
	tmp := new(big.Float).SetPrec(g.prec)
	for j := 0; j <= i; j++ {
		ri[j].Set(d.Float(g.gram[i][j], g.prec))
		for l := 0; l < j; l++ {
			ri[j].Sub(ri[j], tmp.Mul(g.mu[j][l], ri[l]))
		}
		if j < i {
			g.mu[i][j].Quo(ri[j], g.r[j][j])
		}
	}

	if !g.accurate(i) {
		return g.UpdateExact(i)
	}

	return nil
}

// accurate reports whether r[i][i] passes the precision check.
func (g *FloatGramSchmidt[T]) accurate(i int) bool {
	rii := g.r[i][i]
	if rii.Sign() <= 0 {
		return false
	}

	if g.tolerance == nil {
		return true
	}

	est := g.basis.Domain().Float(g.gram[i][i], g.prec)
	est.Quo(est, rii)
	est.Mul(est, new(big.Float).SetInt64(int64((i+2)*(i+2))))
	est.SetMantExp(est, -int(g.prec))

	return est.Cmp(g.tolerance) <= 0
}
