package reduction

import (
	"bytes"
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/lll/lattice"
	"github.com/tuneinsight/lll/scalar"
)

func TestParameters(t *testing.T) {

	for _, tc := range []struct {
		name  string
		pl    ParametersLiteral
		valid bool
	}{
		{"Classical", ParametersLiteral{Delta: 0.75, Eta: 0.5}, true},
		{"L2", ParametersLiteral{Delta: 0.99, Eta: 0.51, Precision: 53}, true},
		{"Loose", ParametersLiteral{Delta: 0.5005, Eta: 0.999}, true},
		{"DeltaTooSmall", ParametersLiteral{Delta: 0.25, Eta: 0.5}, false},
		{"DeltaOne", ParametersLiteral{Delta: 1, Eta: 0.5}, false},
		{"DeltaNaN", ParametersLiteral{Delta: math.NaN(), Eta: 0.5}, false},
		{"EtaTooSmall", ParametersLiteral{Delta: 0.75, Eta: 0.49}, false},
		{"EtaOne", ParametersLiteral{Delta: 0.75, Eta: 1}, false},
		{"LowPrecision", ParametersLiteral{Delta: 0.75, Eta: 0.5, Precision: 8}, false},
		{"Zero", ParametersLiteral{}, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			params, err := NewParametersFromLiteral(tc.pl)
			if !tc.valid {
				require.ErrorIs(t, err, ErrInvalidParameters)
				return
			}
			require.NoError(t, err)
			require.NoError(t, params.Validate())
			require.Equal(t, tc.pl.Delta, params.DeltaFloat64())
			require.Equal(t, tc.pl.Eta, params.EtaFloat64())

			f, _ := params.Delta().Float64()
			require.Equal(t, tc.pl.Delta, f)
			f, _ = params.Eta().Float64()
			require.Equal(t, tc.pl.Eta, f)

			other, err := NewParametersFromLiteral(params.ParametersLiteral())
			require.NoError(t, err)
			require.True(t, params.Equal(other))
		})
	}

	t.Run("DefaultPrecision", func(t *testing.T) {
		params, err := NewParametersFromLiteral(ParametersLiteral{Delta: 0.75, Eta: 0.5})
		require.NoError(t, err)
		require.Equal(t, uint(lattice.DefaultPrecision), params.Precision())
	})

	t.Run("Tolerance", func(t *testing.T) {
		params, err := NewParametersFromLiteral(ParametersLiteral{Delta: 0.99, Eta: 0.51})
		require.NoError(t, err)
		require.InDelta(t, 0.005, params.Tolerance(), 1e-12)

		params, err = NewParametersFromLiteral(ParametersLiteral{Delta: 0.5005, Eta: 0.999})
		require.NoError(t, err)
		require.InDelta(t, 0.24975, params.Tolerance(), 1e-12)
	})

	t.Run("Uninitialized", func(t *testing.T) {
		require.ErrorIs(t, Parameters{}.Validate(), ErrInvalidParameters)
	})

	t.Run("Immutable", func(t *testing.T) {
		params, err := NewParametersFromLiteral(ParametersLiteral{Delta: 0.75, Eta: 0.5})
		require.NoError(t, err)
		params.Delta().SetInt64(2)
		require.Zero(t, params.Delta().Cmp(big.NewRat(3, 4)))
	})
}

func testParameters(t *testing.T) Parameters {
	params, err := NewParametersFromLiteral(ParametersLiteral{Delta: 0.75, Eta: 0.5})
	require.NoError(t, err)
	return params
}

func TestSession(t *testing.T) {

	t.Run("RowOperations", func(t *testing.T) {
		b, err := lattice.NewBasisFromInt64[*big.Int](scalar.Integer{}, [][]int64{{1, 2}, {3, 4}})
		require.NoError(t, err)

		level := zerolog.GlobalLevel()
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
		defer zerolog.SetGlobalLevel(level)

		var buf bytes.Buffer
		u := lattice.NewIdentity(2)
		s, err := NewSession(b, testParameters(t), WithTransform(u), WithLogger(zerolog.New(&buf).Level(zerolog.TraceLevel)))
		require.NoError(t, err)

		s.Combine(1, 0, big.NewInt(3))
		s.Combine(1, 0, big.NewInt(0))
		s.Swap(1)

		require.Equal(t, "[[0 -2] [1 2]]", b.String())
		require.Equal(t, "[[-3 1] [1 0]]", u.String())
		require.Equal(t, 1, s.Stats.SizeReductions)
		require.Equal(t, 1, s.Stats.Swaps)

		s.Done("test")
		require.Contains(t, buf.String(), `"message":"size reduction"`)
		require.Contains(t, buf.String(), `"message":"swap"`)
		require.Contains(t, buf.String(), `"engine":"test"`)
	})

	t.Run("Insertion", func(t *testing.T) {
		b, err := lattice.NewBasisFromInt64[*big.Int](scalar.Integer{}, [][]int64{{1, 0, 0}, {0, 2, 0}, {0, 0, 3}})
		require.NoError(t, err)

		level := zerolog.GlobalLevel()
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
		defer zerolog.SetGlobalLevel(level)

		var buf bytes.Buffer
		u := lattice.NewIdentity(3)
		s, err := NewSession(b, testParameters(t), WithTransform(u), WithLogger(zerolog.New(&buf).Level(zerolog.TraceLevel)))
		require.NoError(t, err)

		s.Insert(2, 0)

		require.Equal(t, "[[0 0 3] [1 0 0] [0 2 0]]", b.String())
		require.Equal(t, "[[0 0 1] [1 0 0] [0 1 0]]", u.String())
		require.Equal(t, 2, s.Stats.Swaps)
		require.Contains(t, buf.String(), `"message":"insertion"`)
	})

	t.Run("Errors", func(t *testing.T) {
		b, err := lattice.NewBasisFromInt64[*big.Int](scalar.Integer{}, [][]int64{{1, 2}, {3, 4}})
		require.NoError(t, err)

		_, err = NewSession(b, Parameters{})
		require.ErrorIs(t, err, ErrInvalidParameters)

		_, err = NewSession(b, testParameters(t), WithTransform(lattice.NewIdentity(3)))
		require.ErrorIs(t, err, lattice.ErrDimensionMismatch)

		_, err = NewSession(lattice.NewBasis[*big.Int](scalar.Integer{}, 3, 2), testParameters(t))
		require.ErrorIs(t, err, lattice.ErrDimensionMismatch)
	})

	t.Run("DefaultLogger", func(t *testing.T) {
		o := NewOptions()
		require.Equal(t, zerolog.Disabled, o.Logger.GetLevel())
		require.Nil(t, o.Transform)
	})
}

func TestCheckReduced(t *testing.T) {

	params := testParameters(t)

	for _, tc := range []struct {
		name string
		rows [][]int64
		kind Violation
		row  int
		ok   bool
	}{
		{"Identity", [][]int64{{1, 0}, {0, 1}}, 0, 0, true},
		{"Tie", [][]int64{{2, 0}, {1, 2}}, 0, 0, true},
		{"Size", [][]int64{{1, 0, 0}, {0, 1, 0}, {0, 3, 1}}, SizeViolation, 2, false},
		{"Lovasz", [][]int64{{10, 0}, {0, 1}}, LovaszViolation, 1, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			b, err := lattice.NewBasisFromInt64[*big.Rat](scalar.Rational{}, tc.rows)
			require.NoError(t, err)

			err = CheckReduced(b, params)
			if tc.ok {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, ErrNotReduced)
			var v *ViolationError
			require.True(t, errors.As(err, &v))
			require.Equal(t, tc.kind, v.Kind)
			require.Equal(t, tc.row, v.Row)
		})
	}

	t.Run("Dependent", func(t *testing.T) {
		b, err := lattice.NewBasisFromInt64[*big.Int](scalar.Integer{}, [][]int64{{1, 1}, {2, 2}})
		require.NoError(t, err)
		require.ErrorIs(t, CheckReduced(b, params), lattice.ErrLinearlyDependent)
	})
}
