package lattice

import (
	"fmt"
	"math/big"
)

// orthogonalizeTolerance is the loose tolerance of the precision check used by Orthogonalize:
// it only catches catastrophic cancellations, such as the ones caused by dependent rows.
const orthogonalizeTolerance = 0.5

// Orthogonalization is the Gram-Schmidt orthogonalization of a basis.
type Orthogonalization struct {
	// Vectors are the orthogonalized vectors b*_i.
	Vectors [][]*big.Float
	// SquaredNorms are the values B[i] = ||b*_i||^2.
	SquaredNorms []*big.Float
	// Mu are the coefficients mu[i][j], j < i. Mu[i] has length i.
	Mu [][]*big.Float
}

// Orthogonalize computes the Gram-Schmidt orthogonalization of b with prec bits of precision.
// The basis is not modified.
// It returns an error wrapping ErrLinearlyDependent if the rows of b are linearly dependent.
func Orthogonalize[T any](b *Basis[T], prec uint) (*Orthogonalization, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("cannot Orthogonalize: %w", err)
	}

	gso := NewFloatGramSchmidt(b, prec)
	gso.SetTolerance(orthogonalizeTolerance)
	if err := gso.UpdateAll(); err != nil {
		return nil, fmt.Errorf("cannot Orthogonalize: %w", err)
	}

	prec = gso.Precision()
	d := b.Domain()
	n, m := b.Dimensions()

	o := &Orthogonalization{
		Vectors:      make([][]*big.Float, n),
		SquaredNorms: make([]*big.Float, n),
		Mu:           make([][]*big.Float, n),
	}

	tmp := new(big.Float).SetPrec(prec)
	for i := 0; i < n; i++ {
		o.SquaredNorms[i] = new(big.Float).Set(gso.B(i))

		o.Mu[i] = make([]*big.Float, i)
		for j := 0; j < i; j++ {
			o.Mu[i][j] = new(big.Float).Set(gso.Mu(i, j))
		}

		v := make([]*big.Float, m)
		for l := 0; l < m; l++ {
			v[l] = d.Float(b.At(i, l), prec)
			for j := 0; j < i; j++ {
				v[l].Sub(v[l], tmp.Mul(o.Mu[i][j], o.Vectors[j][l]))
			}
		}
		o.Vectors[i] = v
	}

	return o, nil
}

// Float64 returns the orthogonalization rounded to float64 values.
func (o *Orthogonalization) Float64() (vectors [][]float64, squaredNorms []float64, mu [][]float64) {
	vectors = make([][]float64, len(o.Vectors))
	for i := range o.Vectors {
		vectors[i] = make([]float64, len(o.Vectors[i]))
		for j := range o.Vectors[i] {
			vectors[i][j], _ = o.Vectors[i][j].Float64()
		}
	}

	squaredNorms = make([]float64, len(o.SquaredNorms))
	for i := range o.SquaredNorms {
		squaredNorms[i], _ = o.SquaredNorms[i].Float64()
	}

	mu = make([][]float64, len(o.Mu))
	for i := range o.Mu {
		mu[i] = make([]float64, len(o.Mu[i]))
		for j := range o.Mu[i] {
			mu[i][j], _ = o.Mu[i][j].Float64()
		}
	}

	return
}
