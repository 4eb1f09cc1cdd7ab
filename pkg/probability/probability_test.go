package probability

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/behrlich/thaipoker/pkg/cards"
)

// The zeta-transform build is the same O(68*25*2^24) pass regardless
// of which test drives it, so every test function shares the
// process-wide singleton instead of paying for its own build.
func testTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := Get(context.Background())
	require.NoError(t, err)
	return tbl
}

// TestCompletionCountScenarios exercises S5-S8: the empty hand is a
// convenient fixture since its completion count has a closed form.
func TestCompletionCountScenarios(t *testing.T) {
	tbl := testTable(t)

	// S5: completion_count(HIGH_9, n=1, empty) == 4 (any of the 4 nines).
	got, err := tbl.CompletionCount(cards.HIGH_9, 1, 0)
	require.NoError(t, err)
	require.Equal(t, int32(4), got)

	// S6: completion_count(QUADS_K, n=4, empty) == 1 (exactly the 4 kings).
	got, err = tbl.CompletionCount(cards.QUADS_K, 4, 0)
	require.NoError(t, err)
	require.Equal(t, int32(1), got)

	// S7: completion_count(FLUSH_C, n=3, empty) == 0 (flush needs >= 5 cards).
	got, err = tbl.CompletionCount(cards.FLUSH_C, 3, 0)
	require.NoError(t, err)
	require.Equal(t, int32(0), got)

	// S8: probability(HIGH_STRAIGHT, 24, empty) == 1.0 (full deck always covers 9-A in every suit).
	p, err := tbl.Probability(cards.HIGH_STRAIGHT, 24, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, p)
}

func TestProbabilityBounds(t *testing.T) {
	tbl := testTable(t)
	h, err := cards.ParseHand("9c9d")
	require.NoError(t, err)
	for n := h.Popcount(); n <= cards.CardNB; n++ {
		for b := cards.Bet(0); b < cards.NumBets; b++ {
			p, err := tbl.Probability(b, n, h)
			require.NoError(t, err)
			require.True(t, p >= 0 && p <= 1, "Probability(%v,%d,h) = %v out of [0,1]", b, n, p)
		}
	}
}

func TestProbabilityCheckIsZero(t *testing.T) {
	tbl := testTable(t)
	p, err := tbl.Probability(cards.CHECK, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 0.0, p)
}

func TestCompletionCountOutOfRangeAndInvalidHand(t *testing.T) {
	tbl := testTable(t)
	_, err := tbl.CompletionCount(cards.HIGH_9, -1, 0)
	require.Error(t, err)
	_, err = tbl.CompletionCount(cards.HIGH_9, 25, 0)
	require.Error(t, err)

	var tooBig cards.Hand
	for c := cards.Card(0); c < 7; c++ {
		tooBig = tooBig.Add(c)
	}
	_, err = tbl.CompletionCount(cards.HIGH_9, 10, tooBig)
	require.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tbl := testTable(t)
	path := filepath.Join(t.TempDir(), "TTP0.bin")
	require.NoError(t, tbl.Save(path))
	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, tbl.P, loaded.P)
}

func TestLoadRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.bin")
	require.NoError(t, os.WriteFile(path, []byte("NOPE0000000000000000"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestGetIsSingleton(t *testing.T) {
	a, err := Get(context.Background())
	require.NoError(t, err)
	b, err := Get(context.Background())
	require.NoError(t, err)
	require.Same(t, a, b, "Get() returned different instances across calls")
}
