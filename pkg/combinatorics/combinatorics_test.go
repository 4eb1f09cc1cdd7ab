package combinatorics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCKnownValues(t *testing.T) {
	tbl := Build()
	cases := []struct {
		n, k int
		want int64
	}{
		{0, 0, 1},
		{24, 0, 1},
		{24, 24, 1},
		{24, 1, 24},
		{24, 6, 134596},
		{10, 5, 252},
		{5, 2, 10},
	}
	for _, tc := range cases {
		got, err := tbl.C(tc.n, tc.k)
		require.NoError(t, err)
		require.Equal(t, tc.want, got, "C(%d,%d)", tc.n, tc.k)
	}
}

func TestPascalRecurrenceHolds(t *testing.T) {
	tbl := Build()
	for n := 2; n <= MaxN; n++ {
		for k := 1; k < n; k++ {
			a, err := tbl.C(n, k)
			require.NoError(t, err)
			b, err := tbl.C(n-1, k)
			require.NoError(t, err)
			c, err := tbl.C(n-1, k-1)
			require.NoError(t, err)
			require.Equal(t, b+c, a, "C(%d,%d) != C(%d,%d)+C(%d,%d)", n, k, n-1, k, n-1, k-1)
		}
	}
}

func TestInvIsReciprocal(t *testing.T) {
	tbl := Build()
	for n := 0; n <= MaxN; n += 3 {
		for k := 0; k <= n; k++ {
			c, err := tbl.C(n, k)
			require.NoError(t, err)
			inv, err := tbl.Inv(n, k)
			require.NoError(t, err)
			require.InDelta(t, 1.0, inv*float64(c), 1e-9, "Inv(%d,%d)*C(%d,%d)", n, k, n, k)
		}
	}
}

func TestOutOfRange(t *testing.T) {
	tbl := Build()
	_, err := tbl.C(-1, 0)
	require.Error(t, err)
	_, err = tbl.C(MaxN+1, 0)
	require.Error(t, err)
	_, err = tbl.C(5, 6)
	require.Error(t, err)
	_, err = tbl.C(5, -1)
	require.Error(t, err)
}

func TestGetIsSingleton(t *testing.T) {
	a := Get()
	b := Get()
	require.Same(t, a, b, "Get() returned different instances across calls")
}
