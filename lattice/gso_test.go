package lattice

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/lll/scalar"
	"github.com/tuneinsight/lll/utils/sampling"
)

func requireRatEqual(t *testing.T, want, have *big.Rat) {
	require.Zero(t, want.Cmp(have), "want %s, have %s", want.RatString(), have.RatString())
}

func TestGramSchmidt(t *testing.T) {

	t.Run("Values", func(t *testing.T) {
		b, err := NewBasisFromInt64[*big.Int](scalar.Integer{}, [][]int64{{3, 1}, {2, 2}})
		require.NoError(t, err)

		gso := NewGramSchmidt(b)
		require.Equal(t, 0, gso.Valid())
		require.NoError(t, gso.UpdateAll())
		require.Equal(t, 2, gso.Valid())

		requireRatEqual(t, big.NewRat(10, 1), gso.B(0))
		requireRatEqual(t, big.NewRat(4, 5), gso.Mu(1, 0))
		requireRatEqual(t, big.NewRat(8, 5), gso.B(1))
		requireRatEqual(t, big.NewRat(8, 1), gso.R(1, 0))
		requireRatEqual(t, big.NewRat(1, 1), gso.Mu(1, 1))
	})

	t.Run("Orthogonal", func(t *testing.T) {
		b, err := NewBasisFromInt64[*big.Rat](scalar.Rational{}, [][]int64{{1, 1}, {1, -1}})
		require.NoError(t, err)

		gso := NewGramSchmidt(b)
		require.NoError(t, gso.UpdateAll())
		require.Zero(t, gso.Mu(1, 0).Sign())
		requireRatEqual(t, big.NewRat(2, 1), gso.B(0))
		requireRatEqual(t, big.NewRat(2, 1), gso.B(1))
	})

	t.Run("Dependent", func(t *testing.T) {
		b, err := NewBasisFromInt64[float64](scalar.Float{}, [][]int64{{1, 0, 0}, {1, 2, 0}, {2, 4, 0}})
		require.NoError(t, err)

		gso := NewGramSchmidt(b)
		err = gso.UpdateAll()
		require.ErrorIs(t, err, ErrLinearlyDependent)

		var depErr *DependencyError
		require.True(t, errors.As(err, &depErr))
		require.Equal(t, 2, depErr.Row)
		require.Equal(t, 2, gso.Valid())
	})

	t.Run("Invalidate", func(t *testing.T) {
		gso := NewGramSchmidt(NewIdentity(4))
		require.NoError(t, gso.Update(2))
		require.Equal(t, 3, gso.Valid())

		gso.Invalidate(5)
		require.Equal(t, 3, gso.Valid())

		gso.Swap(2)
		require.Equal(t, 1, gso.Valid())
		require.Panics(t, func() { gso.B(1) })

		gso.Invalidate(-1)
		require.Equal(t, 0, gso.Valid())
	})

	t.Run("Combine", func(t *testing.T) {
		testGramSchmidtCombine[*big.Int](t, scalar.Integer{})
		testGramSchmidtCombine[*big.Rat](t, scalar.Rational{})
		testGramSchmidtCombine[float64](t, scalar.Float{})
	})
}

// testGramSchmidtCombine checks that the in place update of a combination
// matches a recomputation from scratch.
func testGramSchmidtCombine[T any](t *testing.T, d scalar.Domain[T]) {
	prng, err := sampling.NewKeyedPRNG([]byte{'g', 's', 'o'})
	require.NoError(t, err)

	rows := make([][]int64, 5)
	for i := range rows {
		rows[i] = make([]int64, 6)
		for j := range rows[i] {
			rows[i][j] = sampling.RandSignedInt(prng, 50)
		}
	}

	b, err := NewBasisFromInt64(d, rows)
	require.NoError(t, err)

	gso := NewGramSchmidt(b)
	require.NoError(t, gso.UpdateAll())

	for _, op := range []struct{ k, j, q int }{{4, 1, 3}, {2, 0, -7}, {4, 3, 1}, {3, 2, 0}} {
		q := big.NewInt(int64(op.q))
		b.Combine(op.k, op.j, q)
		gso.Combine(op.k, op.j, q)
	}

	require.NoError(t, gso.UpdateAll())

	want := NewGramSchmidt(b)
	require.NoError(t, want.UpdateAll())

	n, _ := b.Dimensions()
	for i := 0; i < n; i++ {
		requireRatEqual(t, want.B(i), gso.B(i))
		for j := 0; j < i; j++ {
			requireRatEqual(t, want.Mu(i, j), gso.Mu(i, j))
			requireRatEqual(t, want.R(i, j), gso.R(i, j))
		}
	}
}

func TestFloatGramSchmidt(t *testing.T) {

	t.Run("MatchesExact", func(t *testing.T) {
		b, err := NewBasisFromInt64[*big.Int](scalar.Integer{}, [][]int64{{3, 1, 0}, {2, 2, 1}, {-1, 4, 7}})
		require.NoError(t, err)

		fgso := NewFloatGramSchmidt(b, 0)
		require.Equal(t, uint(DefaultPrecision), fgso.Precision())
		fgso.SetTolerance(0.01)
		require.NoError(t, fgso.UpdateAll())
		require.Zero(t, fgso.Fallbacks())

		gso := NewGramSchmidt(b)
		require.NoError(t, gso.UpdateAll())

		for i := 0; i < 3; i++ {
			want, _ := new(big.Float).SetRat(gso.B(i)).Float64()
			have, _ := fgso.B(i).Float64()
			require.InEpsilon(t, want, have, 1e-12)
			for j := 0; j < i; j++ {
				want, _ = new(big.Float).SetRat(gso.Mu(i, j)).Float64()
				have, _ = fgso.Mu(i, j).Float64()
				require.InDelta(t, want, have, 1e-12)
			}
		}
	})

	t.Run("Fallback", func(t *testing.T) {
		// nearly parallel rows: B[1] = 1/(2^80+1)
		x := new(big.Int).Lsh(big.NewInt(1), 40)
		b, err := NewBasisFromRows[*big.Int](scalar.Integer{}, [][]*big.Int{
			{new(big.Int).Set(x), big.NewInt(1)},
			{new(big.Int).Add(x, big.NewInt(1)), big.NewInt(1)},
		})
		require.NoError(t, err)

		fgso := NewFloatGramSchmidt(b, 53)
		fgso.SetTolerance(0.01)
		require.NoError(t, fgso.UpdateAll())
		require.Equal(t, 1, fgso.Fallbacks())

		want := new(big.Int).Lsh(big.NewInt(1), 80)
		want.Add(want, big.NewInt(1))
		wantF, _ := new(big.Float).SetRat(new(big.Rat).SetFrac(big.NewInt(1), want)).Float64()
		have, _ := fgso.B(1).Float64()
		require.InEpsilon(t, wantF, have, 1e-12)
	})

	t.Run("Dependent", func(t *testing.T) {
		b, err := NewBasisFromInt64[*big.Int](scalar.Integer{}, [][]int64{{1, 2}, {2, 4}})
		require.NoError(t, err)

		fgso := NewFloatGramSchmidt(b, 53)
		err = fgso.UpdateAll()
		require.ErrorIs(t, err, ErrLinearlyDependent)
	})

	t.Run("SwapGram", func(t *testing.T) {
		b, err := NewBasisFromInt64[*big.Rat](scalar.Rational{}, [][]int64{{1, 2, 3}, {0, 1, 4}, {5, 6, 0}})
		require.NoError(t, err)

		fgso := NewFloatGramSchmidt(b, 53)
		require.NoError(t, fgso.UpdateAll())

		b.Swap(0, 2)
		fgso.SwapGram(0, 2)
		require.Equal(t, 0, fgso.Valid())

		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				require.Zero(t, fgso.Gram(i, j).Cmp(b.Dot(i, j)))
			}
		}
	})

	t.Run("InsertGram", func(t *testing.T) {
		b, err := NewBasisFromInt64[*big.Int](scalar.Integer{}, [][]int64{{1, 2, 3}, {0, 1, 4}, {5, 6, 0}, {2, -1, 1}})
		require.NoError(t, err)

		fgso := NewFloatGramSchmidt(b, 53)
		require.NoError(t, fgso.UpdateAll())

		for _, tc := range []struct{ i, j, valid int }{{3, 1, 1}, {0, 2, 0}} {
			b.Insert(tc.i, tc.j)
			fgso.InsertGram(tc.i, tc.j)
			require.Equal(t, tc.valid, fgso.Valid())

			for i := 0; i < 4; i++ {
				for j := 0; j < 4; j++ {
					require.Zero(t, fgso.Gram(i, j).Cmp(b.Dot(i, j)))
				}
			}
			require.NoError(t, fgso.UpdateAll())
		}
	})

	t.Run("Projections", func(t *testing.T) {
		b, err := NewBasisFromInt64[*big.Int](scalar.Integer{}, [][]int64{{1, 0, 0}, {1, 2, 0}, {3, 1, 4}})
		require.NoError(t, err)

		fgso := NewFloatGramSchmidt(b, 53)
		require.NoError(t, fgso.UpdateAll())

		s := []*big.Float{new(big.Float), new(big.Float), new(big.Float)}
		fgso.Projections(2, s)

		have := make([]float64, 3)
		for i := range s {
			have[i], _ = s[i].Float64()
		}
		require.Equal(t, []float64{26, 17, 16}, have)

		b3, _ := fgso.B(2).Float64()
		require.Equal(t, have[2], b3)
	})

	t.Run("CombineMu", func(t *testing.T) {
		b, err := NewBasisFromInt64[*big.Int](scalar.Integer{}, [][]int64{{3, 1, 0}, {2, 2, 1}, {-1, 4, 7}})
		require.NoError(t, err)

		fgso := NewFloatGramSchmidt(b, 64)
		require.NoError(t, fgso.UpdateAll())

		q := big.NewInt(2)
		b.Combine(2, 1, q)
		fgso.CombineMu(2, 1, q)
		mu20, _ := fgso.Mu(2, 0).Float64()
		mu21, _ := fgso.Mu(2, 1).Float64()

		fgso.RefreshGram(2)
		require.Equal(t, 2, fgso.Valid())
		require.NoError(t, fgso.UpdateAll())

		want20, _ := fgso.Mu(2, 0).Float64()
		want21, _ := fgso.Mu(2, 1).Float64()
		require.InDelta(t, want20, mu20, 1e-12)
		require.InDelta(t, want21, mu21, 1e-12)

		for j := 0; j < 3; j++ {
			require.Zero(t, fgso.Gram(2, j).Cmp(b.Dot(2, j)))
		}
	})
}
