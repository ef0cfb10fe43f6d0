package reduction

import (
	"math/big"

	"github.com/rs/zerolog"

	"github.com/tuneinsight/lll/lattice"
)

// Options are the per-call settings of a reduction.
type Options struct {
	// Logger receives a Trace event per row operation and a Debug summary.
	Logger zerolog.Logger
	// Transform, if not nil, receives every row operation applied to the basis.
	Transform *lattice.Basis[*big.Int]
}

// Option sets a field of Options.
type Option func(*Options)

// WithLogger sets the logger of the reduction. The default is zerolog.Nop().
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithTransform records the row operations of the reduction in u, which must be
// an n x n integer matrix, usually lattice.NewIdentity(n). On return
// u_out = T * u_in where T * B_in = B_out.
func WithTransform(u *lattice.Basis[*big.Int]) Option {
	return func(o *Options) {
		o.Transform = u
	}
}

// NewOptions applies opts to the default options.
func NewOptions(opts ...Option) Options {
	o := Options{Logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
