package handindex

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/behrlich/thaipoker/pkg/cards"
)

func TestBuildProducesHandNBEntries(t *testing.T) {
	idx, err := Build()
	require.NoError(t, err)
	require.Len(t, idx.indexToHand, HandNB)
}

func TestRoundTripHandToIndex(t *testing.T) {
	idx, err := Build()
	require.NoError(t, err)

	// Exhaustive for popcount <= 2, sampled for larger popcounts to
	// keep the test fast while still covering every size class.
	checked := 0
	for mask := uint32(0); mask < uint32(1<<uint(cards.CardNB)); mask++ {
		h := cards.Hand(mask)
		if h.Popcount() > 2 && mask%997 != 0 {
			continue
		}
		if h.Popcount() > HandSZ {
			require.Equal(t, int32(-1), idx.ToIndex(h), "ToIndex(%v) with popcount %d", h, h.Popcount())
			continue
		}
		i := idx.ToIndex(h)
		require.True(t, i >= 0 && i < HandNB, "ToIndex(%v) = %d out of [0,%d)", h, i, HandNB)
		require.Equal(t, h, idx.FromIndex(i), "FromIndex(ToIndex(%v))", h)
		checked++
	}
	require.Greater(t, checked, 0, "no hands were checked")
}

func TestRoundTripIndexToHand(t *testing.T) {
	idx, err := Build()
	require.NoError(t, err)
	for i := int32(0); i < HandNB; i += 373 {
		h := idx.FromIndex(i)
		require.LessOrEqual(t, h.Popcount(), HandSZ, "FromIndex(%d) = %v", i, h)
		require.Equal(t, i, idx.ToIndex(h), "ToIndex(FromIndex(%d))", i)
	}
}

func TestGetIsSingleton(t *testing.T) {
	a, err := Get()
	require.NoError(t, err)
	b, err := Get()
	require.NoError(t, err)
	require.Same(t, a, b, "Get() returned different instances across calls")
}
