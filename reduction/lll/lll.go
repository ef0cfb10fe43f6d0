// Package lll implements the LLL lattice basis reduction with exact Gram-Schmidt arithmetic.
//
// Given a basis b_0, ..., b_{n-1}, the reduction returns a basis of the same lattice that is
// size-reduced (|mu[k][j]| <= eta for all j < k) and satisfies the Lovász condition
// B[k] >= (delta - mu[k][k-1]^2) * B[k-1] for all k >= 1.
package lll

import (
	"fmt"
	"math/big"

	"github.com/tuneinsight/lll/lattice"
	"github.com/tuneinsight/lll/reduction"
	"github.com/tuneinsight/lll/utils"
	"github.com/tuneinsight/lll/utils/bignum"
)

// Name is the name of the engine.
const Name = "lll"

// DefaultParametersLiteral are the classical parameters delta = 3/4 and eta = 1/2.
var DefaultParametersLiteral = reduction.ParametersLiteral{
	Delta: 0.75,
	Eta:   0.5,
}

// DefaultParameters returns the Parameters of DefaultParametersLiteral.
func DefaultParameters() reduction.Parameters {
	params, err := reduction.NewParametersFromLiteral(DefaultParametersLiteral)
	if err != nil {
		panic(err)
	}
	return params
}

// Reduce LLL-reduces b in place with respect to params.
// The parameters and the basis are validated before any modification.
// It returns an error wrapping lattice.ErrLinearlyDependent if the rows of b are linearly dependent,
// in which case b holds a valid basis of the same lattice reached before the dependency was found.
func Reduce[T any](b *lattice.Basis[T], params reduction.Parameters, opts ...reduction.Option) (stats reduction.Stats, err error) {

	s, err := reduction.NewSession(b, params, opts...)
	if err != nil {
		return stats, fmt.Errorf("cannot Reduce: %w", err)
	}

	if err = Run(s); err != nil {
		return s.Stats, fmt.Errorf("cannot Reduce: %w", err)
	}

	s.Done(Name)

	return s.Stats, nil
}

// Run LLL-reduces the basis of the session with respect to the session parameters,
// accumulating the operations in the session statistics.
func Run[T any](s *reduction.Session[T]) (err error) {

	b := s.Basis
	n, _ := b.Dimensions()

	if n <= 1 {
		s.Stats.Certified = true
		return
	}

	delta, eta := s.Parameters.Delta(), s.Parameters.Eta()
	exact := b.Domain().Exact()

	gso := lattice.NewGramSchmidt(b)
	if err = gso.Update(0); err != nil {
		return
	}

	tmp := new(big.Rat)

	for k := 1; k < n; {

		s.Stats.Iterations++

		if err = gso.Update(k); err != nil {
			return
		}

		for j := k - 1; j >= 0; j-- {
			if mu := gso.Mu(k, j); bignum.AbsCmpRat(mu, eta) > 0 {
				q := bignum.RoundRat(mu)
				s.Combine(k, j, q)
				gso.Combine(k, j, q)
				if !exact {
					if err = gso.Update(k); err != nil {
						return
					}
				}
			}
		}

		// B[k] >= (delta - mu[k][k-1]^2) * B[k-1]
		mu := gso.Mu(k, k-1)
		tmp.Mul(mu, mu)
		tmp.Sub(delta, tmp)
		tmp.Mul(tmp, gso.B(k-1))

		if gso.B(k).Cmp(tmp) >= 0 {
			k++
		} else {
			s.Swap(k)
			gso.Swap(k)
			k = utils.Max(k-1, 1)
		}
	}

	s.Stats.Certified = exact

	return
}
