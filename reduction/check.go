package reduction

import (
	"fmt"
	"math/big"

	"github.com/tuneinsight/lll/lattice"
	"github.com/tuneinsight/lll/utils/bignum"
)

// CheckReduced checks with exact arithmetic that b is size-reduced with respect to eta
// and satisfies the Lovász condition with respect to delta.
// It returns a *ViolationError for the first failing row, or the error of the
// orthogonalization if the rows are linearly dependent.
func CheckReduced[T any](b *lattice.Basis[T], params Parameters) error {
	if err := params.Validate(); err != nil {
		return err
	}
	gso := lattice.NewGramSchmidt(b)
	if err := gso.UpdateAll(); err != nil {
		return err
	}
	return CheckGramSchmidt(gso, params.Delta(), params.Eta())
}

// CheckGramSchmidt checks the reduced invariants on a computed exact Gram-Schmidt state.
func CheckGramSchmidt[T any](gso *lattice.GramSchmidt[T], delta, eta *big.Rat) error {
	n := gso.Valid()
	if rows, _ := gso.Basis().Dimensions(); n != rows {
		return fmt.Errorf("cannot CheckGramSchmidt: only %d/%d rows are current", n, rows)
	}

	tmp := new(big.Rat)
	for k := 1; k < n; k++ {
		for j := 0; j < k; j++ {
			if bignum.AbsCmpRat(gso.Mu(k, j), eta) > 0 {
				return &ViolationError{Kind: SizeViolation, Row: k, Col: j, Value: new(big.Rat).Set(gso.Mu(k, j))}
			}
		}

		// B[k] >= (delta - mu^2) * B[k-1]
		mu := gso.Mu(k, k-1)
		tmp.Mul(mu, mu)
		tmp.Sub(delta, tmp)
		tmp.Mul(tmp, gso.B(k-1))
		if gso.B(k).Cmp(tmp) < 0 {
			return &ViolationError{Kind: LovaszViolation, Row: k, Col: k - 1, Value: new(big.Rat).Quo(gso.B(k), gso.B(k-1))}
		}
	}

	return nil
}
