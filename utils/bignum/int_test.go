package bignum

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDivRound(t *testing.T) {
	for _, tc := range []struct {
		a, b, want int64
	}{
		{5, 2, 3},
		{-5, 2, -3},
		{5, -2, -3},
		{-5, -2, 3},
		{7, 3, 2},
		{8, 3, 3},
		{-8, 3, -3},
		{0, 9, 0},
		{1, 3, 0},
		{-1, 3, 0},
	} {
		i := new(big.Int)
		DivRound(big.NewInt(tc.a), big.NewInt(tc.b), i)
		require.Equal(t, tc.want, i.Int64(), "round(%d/%d)", tc.a, tc.b)
	}

	t.Run("Aliasing", func(t *testing.T) {
		a, b := big.NewInt(17), big.NewInt(4)
		DivRound(a, b, b)
		require.Equal(t, int64(4), b.Int64())
		require.Equal(t, int64(17), a.Int64())
	})
}

func TestRoundRat(t *testing.T) {
	require.Equal(t, int64(1), RoundRat(big.NewRat(1, 2)).Int64())
	require.Equal(t, int64(-1), RoundRat(big.NewRat(-1, 2)).Int64())
	require.Equal(t, int64(38), RoundRat(big.NewRat(47075, 1226)).Int64())
	require.Equal(t, int64(0), RoundRat(big.NewRat(1, 3)).Int64())
	require.Equal(t, 0, AbsCmpRat(big.NewRat(-1, 2), big.NewRat(1, 2)))
	require.Equal(t, 1, AbsCmpRat(big.NewRat(-3, 4), big.NewRat(1, 2)))
	require.Equal(t, -1, AbsCmpRat(big.NewRat(1, 4), big.NewRat(-1, 2)))
}

func TestNewRat(t *testing.T) {
	require.Zero(t, big.NewRat(3, 4).Cmp(NewRat(0.75)))
	require.Zero(t, big.NewRat(-2, 1).Cmp(NewRat(-2)))
	require.Zero(t, big.NewRat(1, 3).Cmp(NewRat("1/3")))
	require.Zero(t, big.NewRat(5, 8).Cmp(NewRat(big.NewFloat(0.625))))
	require.Panics(t, func() { NewRat("x") })
}
