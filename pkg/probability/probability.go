// Package probability builds and serves the exact completion-count
// and probability tables for every (bet, target-hand-size, hand)
// triple over the reduced 24-card deck.
package probability

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/behrlich/thaipoker/internal/buildlog"
	"github.com/behrlich/thaipoker/pkg/cards"
	"github.com/behrlich/thaipoker/pkg/combinatorics"
	"github.com/behrlich/thaipoker/pkg/handindex"
	"github.com/behrlich/thaipoker/pkg/thaierr"
)

const (
	universe = 1 << uint(cards.CardNB)

	// cardsPlus1 is the number of target-hand-size rows, n in [0,24].
	cardsPlus1 = cards.CardNB + 1
)

// Table holds the completion count P[bet][n][hand_index] for every
// bet, target size n in [0,24], and dense hand index. The payload is
// a single contiguous slice so it can be read and written as one
// block and, in principle, memory-mapped.
type Table struct {
	idx *handindex.Index
	cmb *combinatorics.Table

	// P[bet*cardsPlus1*handindex.HandNB + n*handindex.HandNB + handIdx]
	P []int32
}

func cell(bet int, n int, handIdx int32) int {
	return bet*cardsPlus1*handindex.HandNB + n*handindex.HandNB + int(handIdx)
}

// Build runs the subset-sum-over-subsets (zeta) transform for every
// bet and target size, filling the completion-count table. The 68
// bets are independent and are built concurrently via an errgroup;
// each goroutine writes only to the slice region for its own bet.
func Build(ctx context.Context) (*Table, error) {
	idx, err := handindex.Get()
	if err != nil {
		return nil, err
	}
	cmb := combinatorics.Get()

	t := &Table{
		idx: idx,
		cmb: cmb,
		P:   make([]int32, int(cards.NumBets)*cardsPlus1*handindex.HandNB),
	}

	log := buildlog.New("probability")
	done := buildlog.Stage(log, "zeta-transform")
	defer done()

	g, gctx := errgroup.WithContext(ctx)
	for bet := 0; bet < int(cards.NumBets); bet++ {
		bet := bet
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			if err := t.buildBet(bet); err != nil {
				return err
			}
			log.Debug().Int("bet", bet).Str("name", cards.Bet(bet).String()).Msg("bet complete")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return t, nil
}

// buildBet runs the zeta transform for a single bet across all 25
// target sizes, writing into t.P's slice for that bet only.
func (t *Table) buildBet(bet int) error {
	b := cards.Bet(bet)
	H := make([]int32, universe)

	for n := 0; n <= cards.CardNB; n++ {
		for deck := uint32(0); deck < universe; deck++ {
			ok, err := cards.SatisfiesBet(cards.Hand(deck), b)
			if err != nil {
				return err
			}
			if cards.Hand(deck).Popcount() == n && ok {
				H[deck] = 1
			} else {
				H[deck] = 0
			}
		}

		// SOS dp: bit outermost, mask innermost for sequential access.
		for bit := 0; bit < cards.CardNB; bit++ {
			bitMask := uint32(1) << uint(bit)
			for deck := uint32(0); deck < universe; deck++ {
				if deck&bitMask == 0 {
					H[deck] += H[deck^bitMask]
				}
			}
		}

		for hand := uint32(0); hand < universe; hand++ {
			h := cards.Hand(hand)
			inHand := h.Popcount()
			if inHand > n {
				continue
			}
			handIdx := t.idx.ToIndex(h)
			if handIdx == -1 {
				continue
			}
			t.P[cell(bet, n, handIdx)] = H[hand]
		}
	}
	return nil
}

// CompletionCount returns the number of completions to n cards that
// satisfy bet b, given partial hand H. Fails with OutOfRange if n is
// outside [0,24], InvalidHand if H has popcount > 6.
func (t *Table) CompletionCount(b cards.Bet, n int, H cards.Hand) (int32, error) {
	if n < 0 || n > cards.CardNB {
		return 0, thaierr.Newf(thaierr.OutOfRange, "n=%d out of [0,%d]", n, cards.CardNB)
	}
	if b < 0 || b > cards.NumBets {
		return 0, thaierr.Newf(thaierr.InvalidBet, "bet %d out of range", int(b))
	}
	handIdx := t.idx.ToIndex(H)
	if handIdx < 0 || int(handIdx) >= handindex.HandNB {
		return 0, thaierr.Newf(thaierr.InvalidHand, "hand %v has no dense index (popcount=%d)", H, H.Popcount())
	}
	if b == cards.CHECK {
		return 0, nil
	}
	return t.P[cell(int(b), n, handIdx)], nil
}

// Probability returns the exact probability that bet b is satisfied
// after dealing up to n total cards given partial hand H. Returns 0
// for CHECK without validating n or H.
func (t *Table) Probability(b cards.Bet, n int, H cards.Hand) (float64, error) {
	if b == cards.CHECK {
		return 0.0, nil
	}
	count, err := t.CompletionCount(b, n, H)
	if err != nil {
		return 0, err
	}
	inHand := H.Popcount()
	inv, err := t.cmb.Inv(cards.CardNB-inHand, n-inHand)
	if err != nil {
		return 0, err
	}
	return float64(count) * inv, nil
}

var (
	once     sync.Once
	instance *Table
	buildErr error
)

// Get returns the process-wide probability table, building it on
// first call. Concurrent callers block on the same build.
func Get(ctx context.Context) (*Table, error) {
	once.Do(func() {
		instance, buildErr = Build(ctx)
	})
	return instance, buildErr
}
