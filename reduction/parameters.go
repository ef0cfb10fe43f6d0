package reduction

import (
	"fmt"
	"math"
	"math/big"

	"github.com/tuneinsight/lll/lattice"
)

// MinPrecision is the smallest accepted precision for the floating engines.
const MinPrecision = 24

// ParametersLiteral is a literal representation of the reduction parameters.
// It has public fields and is used to express unchecked user-defined parameters.
// The Parameters type is obtained from a ParametersLiteral with NewParametersFromLiteral.
type ParametersLiteral struct {
	// Delta is the Lovász factor, in (1/4, 1).
	Delta float64
	// Eta is the size-reduction bound, in [1/2, 1).
	Eta float64
	// Precision is the precision in bits of the floating Gram-Schmidt state.
	// Zero means lattice.DefaultPrecision. Ignored by the exact engine.
	Precision uint
	// SkipCertification disables the exact check of the output of the floating engine.
	SkipCertification bool
}

// Parameters is a validated set of reduction parameters. Its fields are private and immutable.
// See ParametersLiteral for user-specified parameters.
type Parameters struct {
	delta             *big.Rat
	eta               *big.Rat
	deltaF64          float64
	etaF64            float64
	precision         uint
	skipCertification bool
}

// NewParametersFromLiteral validates the literal and returns the corresponding Parameters.
// It returns an error wrapping ErrInvalidParameters if delta is not in (1/4, 1), if eta is
// not in [1/2, 1) or if the precision is positive and smaller than MinPrecision.
func NewParametersFromLiteral(pl ParametersLiteral) (params Parameters, err error) {

	if pl.Precision == 0 {
		pl.Precision = lattice.DefaultPrecision
	}

	switch {
	case math.IsNaN(pl.Delta) || pl.Delta <= 0.25 || pl.Delta >= 1:
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: delta=%v must be in (1/4, 1): %w", pl.Delta, ErrInvalidParameters)
	case math.IsNaN(pl.Eta) || pl.Eta < 0.5 || pl.Eta >= 1:
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: eta=%v must be in [1/2, 1): %w", pl.Eta, ErrInvalidParameters)
	case pl.Precision < MinPrecision:
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: precision=%d must be at least %d: %w", pl.Precision, MinPrecision, ErrInvalidParameters)
	}

	return Parameters{
		delta:             new(big.Rat).SetFloat64(pl.Delta),
		eta:               new(big.Rat).SetFloat64(pl.Eta),
		deltaF64:          pl.Delta,
		etaF64:            pl.Eta,
		precision:         pl.Precision,
		skipCertification: pl.SkipCertification,
	}, nil
}

// Validate returns an error wrapping ErrInvalidParameters if the receiver was not
// obtained with NewParametersFromLiteral.
func (p Parameters) Validate() error {
	if p.delta == nil || p.eta == nil {
		return fmt.Errorf("parameters are not initialized: %w", ErrInvalidParameters)
	}
	return nil
}

// ParametersLiteral returns the ParametersLiteral of the receiver.
func (p Parameters) ParametersLiteral() ParametersLiteral {
	return ParametersLiteral{
		Delta:             p.deltaF64,
		Eta:               p.etaF64,
		Precision:         p.precision,
		SkipCertification: p.skipCertification,
	}
}

// Delta returns a copy of delta as an exact rational.
func (p Parameters) Delta() *big.Rat {
	return new(big.Rat).Set(p.delta)
}

// Eta returns a copy of eta as an exact rational.
func (p Parameters) Eta() *big.Rat {
	return new(big.Rat).Set(p.eta)
}

// DeltaFloat64 returns delta.
func (p Parameters) DeltaFloat64() float64 {
	return p.deltaF64
}

// EtaFloat64 returns eta.
func (p Parameters) EtaFloat64() float64 {
	return p.etaF64
}

// Precision returns the precision in bits of the floating Gram-Schmidt state.
func (p Parameters) Precision() uint {
	return p.precision
}

// SkipCertification returns true if the output of the floating engine is not checked.
func (p Parameters) SkipCertification() bool {
	return p.skipCertification
}

// Tolerance returns max((eta - 1/2)/2, (1 - delta)/2), the slack between the
// parameters and the ones the floating engine actually targets, used as the
// tolerance of its precision check.
func (p Parameters) Tolerance() float64 {
	return math.Max((p.etaF64-0.5)/2, (1-p.deltaF64)/2)
}

// Equal returns true if both parameters are equal.
func (p Parameters) Equal(other Parameters) bool {
	return p.ParametersLiteral() == other.ParametersLiteral()
}
