package reduction

import (
	"fmt"
	"math/big"

	"github.com/rs/zerolog"

	"github.com/tuneinsight/lll/lattice"
)

// Session is the state shared by the engines during one reduction call.
// All the row operations applied to the basis go through a Session, which
// mirrors them on the transformation matrix, counts them and logs them.
type Session[T any] struct {
	Basis      *lattice.Basis[T]
	Parameters Parameters
	Transform  *lattice.Basis[*big.Int]
	Logger     zerolog.Logger
	Stats      Stats
}

// NewSession validates the basis, the parameters and the options and returns a new Session.
// Nothing is modified if an error is returned.
func NewSession[T any](b *lattice.Basis[T], params Parameters, opts ...Option) (*Session[T], error) {

	if err := params.Validate(); err != nil {
		return nil, err
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}

	o := NewOptions(opts...)

	n, _ := b.Dimensions()
	if o.Transform != nil {
		if rows, cols := o.Transform.Dimensions(); rows != n || cols != n {
			return nil, fmt.Errorf("transform is %dx%d but basis has %d rows: %w", rows, cols, n, lattice.ErrDimensionMismatch)
		}
	}

	return &Session[T]{
		Basis:      b,
		Parameters: params,
		Transform:  o.Transform,
		Logger:     o.Logger,
	}, nil
}

// Combine applies b_k <- b_k - q * b_j to the basis and to the transformation matrix.
func (s *Session[T]) Combine(k, j int, q *big.Int) {
	if q.Sign() == 0 {
		return
	}
	s.Basis.Combine(k, j, q)
	if s.Transform != nil {
		s.Transform.Combine(k, j, q)
	}
	s.Stats.SizeReductions++
	s.Logger.Trace().Int("k", k).Int("j", j).Stringer("q", q).Msg("size reduction")
}

// Swap exchanges the rows k-1 and k of the basis and of the transformation matrix.
func (s *Session[T]) Swap(k int) {
	s.Basis.Swap(k-1, k)
	if s.Transform != nil {
		s.Transform.Swap(k-1, k)
	}
	s.Stats.Swaps++
	s.Logger.Trace().Int("k", k).Msg("swap")
}

// Insert moves the row k of the basis and of the transformation matrix to the
// position i < k. It is counted as the k-i swaps of adjacent rows it is made of.
func (s *Session[T]) Insert(k, i int) {
	s.Basis.Insert(k, i)
	if s.Transform != nil {
		s.Transform.Insert(k, i)
	}
	s.Stats.Swaps += k - i
	s.Logger.Trace().Int("k", k).Int("i", i).Msg("insertion")
}

// Done logs the summary of the reduction.
func (s *Session[T]) Done(engine string) {
	n, m := s.Basis.Dimensions()
	s.Logger.Debug().
		Str("engine", engine).
		Str("domain", s.Basis.Domain().Name()).
		Int("n", n).
		Int("m", m).
		Int("iterations", s.Stats.Iterations).
		Int("swaps", s.Stats.Swaps).
		Int("size_reductions", s.Stats.SizeReductions).
		Int("fallbacks", s.Stats.Fallbacks).
		Bool("certified", s.Stats.Certified).
		Bool("exact_completion", s.Stats.ExactCompletion).
		Msg("reduction done")
}
