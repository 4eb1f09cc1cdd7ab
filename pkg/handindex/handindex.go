// Package handindex provides the bijection between every card subset
// of size <= 6 (a cards.Hand) and a dense integer index in
// [0, HandNB), used as the primary key for the probability and
// cluster tables.
package handindex

import (
	"sync"

	"github.com/behrlich/thaipoker/pkg/cards"
	"github.com/behrlich/thaipoker/pkg/thaierr"
)

// HandSZ is the maximum popcount a valid hand may have.
const HandSZ = 6

// HandNB is the number of distinct hands of size <= 6 out of 24 cards:
// sum_{k=0..6} C(24,k) = 190051.
const HandNB = 190051

// sentinelIndex is returned by ToIndex for hands with popcount > HandSZ.
const sentinelIndex = -1

// Index is the bijection, built once on first use via Get. The
// handToIndex array is 2^24 int32 entries (16 MiB) so that ToIndex is
// O(1); indexToHand is HandNB entries.
type Index struct {
	handToIndex []int32
	indexToHand []uint32
}

// Build enumerates all masks in [0, 2^24) in ascending order and
// assigns a dense index to every one with popcount <= HandSZ. It
// fails with thaierr.BuildFailure if the final count doesn't match
// HandNB, which would indicate a wrong constant or broken generation.
func Build() (*Index, error) {
	const universe = 1 << uint(cards.CardNB)

	idx := &Index{
		handToIndex: make([]int32, universe),
		indexToHand: make([]uint32, HandNB),
	}

	next := int32(0)
	for mask := uint32(0); mask < universe; mask++ {
		if cards.Hand(mask).Popcount() <= HandSZ {
			idx.handToIndex[mask] = next
			idx.indexToHand[next] = mask
			next++
		} else {
			idx.handToIndex[mask] = sentinelIndex
		}
	}

	if int(next) != HandNB {
		return nil, thaierr.Newf(thaierr.BuildFailure, "hand index produced %d entries, want %d", next, HandNB)
	}
	return idx, nil
}

// ToIndex returns the dense index for hand h, or -1 if popcount(h) > 6.
func (idx *Index) ToIndex(h cards.Hand) int32 {
	return idx.handToIndex[uint32(h)]
}

// FromIndex returns the hand for a dense index in [0, HandNB).
func (idx *Index) FromIndex(i int32) cards.Hand {
	return cards.Hand(idx.indexToHand[i])
}

var (
	once     sync.Once
	instance *Index
	buildErr error
)

// Get returns the process-wide hand index, building it on first call.
// Concurrent callers block on the same build; after it completes the
// returned *Index is safe for unsynchronized concurrent reads.
func Get() (*Index, error) {
	once.Do(func() {
		instance, buildErr = Build()
	})
	return instance, buildErr
}
