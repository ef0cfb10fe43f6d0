// Package l2 implements the L² lattice basis reduction.
//
// The basis stays exact in its domain, and so does its Gram matrix, while the
// Gram-Schmidt coefficients are computed in floating point arithmetic with a fixed
// precision. Each row update is followed by a precision check, and the rows that
// fail it are recomputed exactly.
//
// A row is only modified when it violates the requested bounds. Size-reduction is
// lazy: once max_j |mu[k][j]| exceeds eta, the row is reduced against the floating
// coefficients until they are bounded by (eta + 1/2)/2. If the Lovász condition
// fails for delta, the row is inserted at the lowest position reachable by a
// sequence of swaps that each fail the Lovász condition.
//
// Unless disabled by the parameters, the output is certified with exact arithmetic
// and, if a violation remains, the reduction is completed by the exact LLL engine.
package l2

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/tuneinsight/lll/lattice"
	"github.com/tuneinsight/lll/reduction"
	"github.com/tuneinsight/lll/reduction/lll"
	"github.com/tuneinsight/lll/utils"
	"github.com/tuneinsight/lll/utils/bignum"
)

// Name is the name of the engine.
const Name = "l2"

// DefaultParametersLiteral are the parameters delta = 0.99 and eta = 0.51 with 53 bits of precision.
var DefaultParametersLiteral = reduction.ParametersLiteral{
	Delta:     0.99,
	Eta:       0.51,
	Precision: 53,
}

// DefaultParameters returns the Parameters of DefaultParametersLiteral.
func DefaultParameters() reduction.Parameters {
	params, err := reduction.NewParametersFromLiteral(DefaultParametersLiteral)
	if err != nil {
		panic(err)
	}
	return params
}

// Reduce L²-reduces b in place with respect to params.
// The parameters and the basis are validated before any modification.
// Floating point instabilities are handled internally and never returned as errors.
func Reduce[T any](b *lattice.Basis[T], params reduction.Parameters, opts ...reduction.Option) (stats reduction.Stats, err error) {

	s, err := reduction.NewSession(b, params, opts...)
	if err != nil {
		return stats, fmt.Errorf("cannot Reduce: %w", err)
	}

	if err = Run(s); err != nil {
		return s.Stats, fmt.Errorf("cannot Reduce: %w", err)
	}

	if !params.SkipCertification() {
		if err = certify(s); err != nil {
			return s.Stats, fmt.Errorf("cannot Reduce: %w", err)
		}
	}

	s.Done(Name)

	return s.Stats, nil
}

// Run L²-reduces the basis of the session with respect to the session parameters,
// accumulating the operations in the session statistics. The result is not certified.
func Run[T any](s *reduction.Session[T]) (err error) {

	b := s.Basis
	n, _ := b.Dimensions()

	if n <= 1 {
		return
	}

	prec := s.Parameters.Precision()

	gso := lattice.NewFloatGramSchmidt(b, prec)
	gso.SetTolerance(s.Parameters.Tolerance())

	defer func() {
		s.Stats.Fallbacks += gso.Fallbacks()
	}()

	eta := bignum.NewFloat(s.Parameters.Eta(), prec)
	delta := bignum.NewFloat(s.Parameters.Delta(), prec)

	// (eta + 1/2)/2
	etaBar := bignum.NewFloat((s.Parameters.EtaFloat64()+0.5)/2, prec)

	if err = gso.Update(0); err != nil {
		return
	}

	proj := make([]*big.Float, n)
	for i := range proj {
		proj[i] = new(big.Float).SetPrec(prec)
	}

	tmp := new(big.Float).SetPrec(prec)

	for k := 1; k < n; {

		s.Stats.Iterations++

		if err = sizeReduce(s, gso, k, eta, etaBar); err != nil {
			return
		}

		// The Lovász condition B[i] >= (delta - mu[i][i-1]^2) * B[i-1] for b_k moved
		// to the position i reads proj[i-1] >= delta * B[i-1].
		gso.Projections(k, proj)

		i := k
		for i > 0 && tmp.Mul(delta, gso.B(i-1)).Cmp(proj[i-1]) > 0 {
			i--
		}

		if i == k {
			k++
			continue
		}

		s.Insert(k, i)
		gso.InsertGram(k, i)
		k = utils.Max(i, 1)
	}

	return
}

// sizeReduce lazily size-reduces the row k against the floating coefficients.
// Nothing is done if max_j |mu[k][j]| <= eta, otherwise the row is reduced until
// max_j |mu[k][j]| <= etaBar. A pass that does not decrease this maximum is followed
// by an exact size-reduction of the row.
func sizeReduce[T any](s *reduction.Session[T], gso *lattice.FloatGramSchmidt[T], k int, eta, etaBar *big.Float) (err error) {

	var prev *big.Float

	for bound := eta; ; bound = etaBar {
		if err = gso.Update(k); err != nil {
			return
		}

		max := gso.MaxAbsMu(k)
		if max.Cmp(bound) <= 0 {
			return
		}

		if prev != nil && max.Cmp(prev) >= 0 {
			s.Logger.Trace().Int("k", k).Msg("size reduction stalled: exact recomputation")
			return sizeReduceExact(s, gso, k)
		}
		prev = max

		for j := k - 1; j >= 0; j-- {
			if q := bignum.RoundToInt(gso.Mu(k, j)); q.Sign() != 0 {
				gso.CombineMu(k, j, q)
				s.Combine(k, j, q)
			}
		}

		gso.RefreshGram(k)
	}
}

// sizeReduceExact size-reduces the row k with respect to 1/2 against the exact
// coefficients and overwrites the floating state of the rows 0..k with exact values.
func sizeReduceExact[T any](s *reduction.Session[T], gso *lattice.FloatGramSchmidt[T], k int) (err error) {

	exact := gso.Exact()
	if err = exact.Update(k); err != nil {
		return
	}

	inexact := !s.Basis.Domain().Exact()

	for j := k - 1; j >= 0; j-- {
		if q := bignum.RoundRat(exact.Mu(k, j)); q.Sign() != 0 {
			s.Combine(k, j, q)
			exact.Combine(k, j, q)
			if inexact {
				if err = exact.Update(k); err != nil {
					return
				}
			}
		}
	}

	gso.RefreshGram(k)

	return gso.UpdateExact(k)
}

// certify checks the output of Run with exact arithmetic and, on a violation,
// completes the reduction with the exact LLL engine.
func certify[T any](s *reduction.Session[T]) (err error) {

	if n, _ := s.Basis.Dimensions(); n <= 1 {
		s.Stats.Certified = true
		return nil
	}

	err = reduction.CheckReduced(s.Basis, s.Parameters)

	var violation *reduction.ViolationError
	switch {
	case err == nil:
		s.Stats.Certified = true
		return nil
	case errors.As(err, &violation):
		s.Logger.Warn().Err(err).Msg("floating reduction not certified: exact completion")
		s.Stats.Fallbacks++
		s.Stats.ExactCompletion = true
		return lll.Run(s)
	default:
		return err
	}
}
