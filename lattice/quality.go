package lattice

import (
	"fmt"
	"math/big"

	"github.com/tuneinsight/lll/utils/bignum"
)

// qualityPrecision is the precision in bits of the quality diagnostics.
const qualityPrecision = 128

// QualityReport gathers standard measures of the quality of a basis.
type QualityReport struct {
	// LogVolume is ln(vol(L)) = 1/2 * sum_i ln(B[i]).
	LogVolume float64
	// RootHermiteFactor is (||b_0|| / vol(L)^(1/n))^(1/n).
	RootHermiteFactor float64
	// LogOrthogonalityDefect is sum_i ln(||b_i||) - ln(vol(L)).
	LogOrthogonalityDefect float64
}

// Quality computes the quality diagnostics of b. The basis is not modified.
// Logarithms are evaluated on arbitrary precision values, so bases with entries
// far outside the float64 range are supported.
func Quality[T any](b *Basis[T]) (q QualityReport, err error) {
	if err = b.Validate(); err != nil {
		return q, fmt.Errorf("cannot Quality: %w", err)
	}

	gso := NewFloatGramSchmidt(b, qualityPrecision)
	gso.SetTolerance(orthogonalizeTolerance)
	if err = gso.UpdateAll(); err != nil {
		return q, fmt.Errorf("cannot Quality: %w", err)
	}

	d := b.Domain()
	n, _ := b.Dimensions()

	half := bignum.NewFloat(0.5, qualityPrecision)

	logVol := bignum.NewFloat(0, qualityPrecision)
	logNorms := bignum.NewFloat(0, qualityPrecision)
	for i := 0; i < n; i++ {
		logVol.Add(logVol, logFloat(gso.B(i)))
		logNorms.Add(logNorms, logFloat(d.Float(b.SquaredNorm(i), qualityPrecision)))
	}
	logVol.Mul(logVol, half)
	logNorms.Mul(logNorms, half)

	nf := bignum.NewFloat(n, qualityPrecision)

	// ln(rhf) = (ln||b_0|| - ln(vol)/n) / n
	lnRHF := logFloat(d.Float(b.SquaredNorm(0), qualityPrecision))
	lnRHF.Mul(lnRHF, half)
	lnRHF.Sub(lnRHF, new(big.Float).Quo(logVol, nf))
	lnRHF.Quo(lnRHF, nf)

	q.LogVolume, _ = logVol.Float64()
	q.RootHermiteFactor, _ = bignum.Exp(lnRHF).Float64()
	q.LogOrthogonalityDefect, _ = new(big.Float).Sub(logNorms, logVol).Float64()

	return q, nil
}

// logFloat returns ln(x) for x > 0, splitting x into mantissa and exponent
// so that only the mantissa goes through the series evaluation.
func logFloat(x *big.Float) *big.Float {
	prec := x.Prec()
	if prec < qualityPrecision {
		prec = qualityPrecision
	}

	mant := new(big.Float).SetPrec(prec)
	exp := x.MantExp(mant)

	ln := bignum.Log(mant)
	ln2 := bignum.Log(bignum.NewFloat(2, prec))

	return ln.Add(ln, ln2.Mul(ln2, bignum.NewFloat(exp, prec)))
}

// Determinant returns the determinant of the square integer matrix u,
// computed exactly with the fraction-free Bareiss elimination.
func Determinant(u *Basis[*big.Int]) (*big.Int, error) {
	n, m := u.Dimensions()
	if n == 0 {
		return nil, fmt.Errorf("cannot Determinant: %w", ErrEmptyBasis)
	}
	if n != m {
		return nil, fmt.Errorf("cannot Determinant: matrix is %dx%d: %w", n, m, ErrDimensionMismatch)
	}

	a := u.CopyNew().rows
	sign := 1
	prev := big.NewInt(1)
	tmp := new(big.Int)

	for k := 0; k < n-1; k++ {
		if a[k][k].Sign() == 0 {
			p := k + 1
			for p < n && a[p][k].Sign() == 0 {
				p++
			}
			if p == n {
				return new(big.Int), nil
			}
			a[k], a[p] = a[p], a[k]
			sign = -sign
		}

		for i := k + 1; i < n; i++ {
			for j := k + 1; j < n; j++ {
				// a[i][j] = (a[i][j]*a[k][k] - a[i][k]*a[k][j]) / prev
				a[i][j].Mul(a[i][j], a[k][k])
				a[i][j].Sub(a[i][j], tmp.Mul(a[i][k], a[k][j]))
				a[i][j].Quo(a[i][j], prev)
			}
		}

		prev = a[k][k]
	}

	det := new(big.Int).Set(a[n-1][n-1])
	if sign < 0 {
		det.Neg(det)
	}
	return det, nil
}
