package lattice

import (
	"fmt"
	"io"
	"math/big"

	"github.com/tuneinsight/lll/scalar"
	"github.com/tuneinsight/lll/utils/bignum"
	"github.com/tuneinsight/lll/utils/sampling"
)

// NewKnapsackBasis returns the n x (n+1) knapsack basis whose row i is (e_i | a_i),
// where e_i is the i-th unit vector and a_i is sampled uniformly in [0, 2^bits) from reader.
func NewKnapsackBasis(reader io.Reader, n, bits int) (*Basis[*big.Int], error) {
	if n < 1 || bits < 1 {
		return nil, fmt.Errorf("cannot NewKnapsackBasis: invalid n=%d or bits=%d", n, bits)
	}

	b := NewBasis[*big.Int](scalar.Integer{}, n, n+1)
	max := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	for i := 0; i < n; i++ {
		b.rows[i][i].SetInt64(1)
		b.rows[i][n] = bignum.RandInt(reader, max)
	}

	return b, nil
}

// NewScenarioBasis returns the 3 x 4 basis
//
//	[2^exp 0 0 1345]
//	[0     1 0   35]
//	[0     0 1  154]
//
// whose first row is much longer than the others.
func NewScenarioBasis(exp uint) *Basis[*big.Int] {
	b := NewBasis[*big.Int](scalar.Integer{}, 3, 4)
	b.rows[0][0].Lsh(big.NewInt(1), exp)
	b.rows[0][3].SetInt64(1345)
	b.rows[1][1].SetInt64(1)
	b.rows[1][3].SetInt64(35)
	b.rows[2][2].SetInt64(1)
	b.rows[2][3].SetInt64(154)
	return b
}

// Scramble applies steps random unimodular row operations to b, each being
// either a swap of two rows or b_i <- b_i - q * b_j with q in [-bound, bound].
// The lattice generated by b is unchanged. If u is not nil, the same
// operations are applied to it.
func Scramble[T any](b *Basis[T], u *Basis[*big.Int], reader io.Reader, steps int, bound int64) {
	n, _ := b.Dimensions()
	if n < 2 {
		return
	}

	for s := 0; s < steps; s++ {
		i := sampling.RandIntn(reader, n)
		j := sampling.RandIntn(reader, n-1)
		if j >= i {
			j++
		}

		if sampling.RandIntn(reader, 4) == 0 {
			b.Swap(i, j)
			if u != nil {
				u.Swap(i, j)
			}
			continue
		}

		q := big.NewInt(sampling.RandSignedInt(reader, bound))
		b.Combine(i, j, q)
		if u != nil {
			u.Combine(i, j, q)
		}
	}
}
