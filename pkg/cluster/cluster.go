// Package cluster partitions hands into k-means buckets keyed by
// (own-size, opponent-size), using the 68-dimensional completion-count
// vector as the clustering feature, and serves a uniform sampler over
// disjoint (own-hand, opponent-hand) pairs drawn from those buckets.
package cluster

import (
	"context"
	"math/rand"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/behrlich/thaipoker/internal/buildlog"
	"github.com/behrlich/thaipoker/pkg/cards"
	"github.com/behrlich/thaipoker/pkg/handindex"
	"github.com/behrlich/thaipoker/pkg/probability"
	"github.com/behrlich/thaipoker/pkg/thaierr"
)

// DefaultK is the typical target centroid count per (own_size, opp_size).
const DefaultK = 7000

// DefaultIters is the typical k-means iteration cap.
const DefaultIters = 2

// convergenceThreshold stops k-means early once total reassignment
// error falls below this value.
const convergenceThreshold = 1e-7

// baseSeed is the fixed constant every cluster's per-pair RNG is
// derived from, so builds are reproducible across runs.
const baseSeed = 2137

// sizeClasses is the number of own-hand sizes tabulated (0..6).
const sizeClasses = handindex.HandSZ + 1

// oppClasses is the number of opponent sizes tabulated (0..24).
const oppClasses = cards.CardNB + 1

// numBets is the feature dimensionality: one slot per real bet
// (CHECK is never a clustering dimension).
const numBets = int(cards.NumBets)

// point is a single hand's completion-count fingerprint. hand and
// oppSize are -1 on synthetic centers seeded from the unique
// fingerprint set or from uniform random coordinates; real points
// always carry a valid hand index.
type point struct {
	feature [numBets]float64
	hand    int32
	oppSize int
}

func (p point) distance(o point) float64 {
	var d float64
	for i := 0; i < numBets; i++ {
		diff := p.feature[i] - o.feature[i]
		if diff < 0 {
			diff = -diff
		}
		d += diff
	}
	return d
}

// bucket is the k-means result for one (own_size, opp_size) pair: the
// partition of data points into blocks (one per centroid, possibly empty),
// their running prefix sums for proportional sampling, and the final
// centroids.
type bucket struct {
	blocks     [][]point
	prefixSums []int
	centers    []point
}

// GameSample is a uniformly drawn pair of disjoint hands, one from
// each side's cluster, together with which block each was drawn from.
type GameSample struct {
	H1      cards.Hand
	H1Block int
	H2      cards.Hand
	H2Block int
}

// Table holds one bucket per (own_size, opp_size) pair and the
// sampler RNG used to draw from it at query time.
type Table struct {
	idx *handindex.Index

	k     int
	iters int

	buckets [sizeClasses][oppClasses]bucket

	sampleMu  sync.Mutex
	sampleRng *rand.Rand
}

// Build runs k-means independently for every (own_size, opp_size)
// pair with own_size+opp_size <= 24, in parallel via an errgroup; each
// pair's run also fills its blocks and prefix sums. Pairs with
// own_size+opp_size > 24 are never built and keep an empty bucket.
func Build(ctx context.Context, prob *probability.Table, k, iters int) (*Table, error) {
	idx, err := handindex.Get()
	if err != nil {
		return nil, err
	}
	if k <= 0 {
		k = DefaultK
	}
	if iters <= 0 {
		iters = DefaultIters
	}

	t := &Table{
		idx:       idx,
		k:         k,
		iters:     iters,
		sampleRng: rand.New(rand.NewSource(baseSeed)),
	}

	log := buildlog.New("cluster")
	done := buildlog.Stage(log, "kmeans")
	defer done()

	g, gctx := errgroup.WithContext(ctx)
	for ownSize := 0; ownSize <= handindex.HandSZ; ownSize++ {
		for oppSize := 0; ownSize+oppSize <= cards.CardNB; oppSize++ {
			ownSize, oppSize := ownSize, oppSize
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				b, err := buildBucket(idx, prob, ownSize, oppSize, k, iters)
				if err != nil {
					return err
				}
				t.buckets[ownSize][oppSize] = b
				log.Debug().Int("own_size", ownSize).Int("opp_size", oppSize).
					Int("points", countPoints(b)).Int("centers", len(b.centers)).Msg("bucket complete")
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return t, nil
}

func countPoints(b bucket) int {
	n := 0
	for _, blk := range b.blocks {
		n += len(blk)
	}
	return n
}

// buildBucket runs k-means for a single (own_size, opp_size) pair.
func buildBucket(idx *handindex.Index, prob *probability.Table, ownSize, oppSize, k, iters int) (bucket, error) {
	rng := pairRNG(ownSize, oppSize)

	var data []point
	unique := make(map[[numBets]float64]bool)
	var uniqueOrder [][numBets]float64

	for i := int32(0); i < handindex.HandNB; i++ {
		h := idx.FromIndex(i)
		if h.Popcount() != ownSize {
			continue
		}
		var feat [numBets]float64
		for b := 0; b < numBets; b++ {
			count, err := prob.CompletionCount(cards.Bet(b), ownSize+oppSize, h)
			if err != nil {
				return bucket{}, err
			}
			feat[b] = float64(count)
		}
		data = append(data, point{feature: feat, hand: i, oppSize: oppSize})
		if !unique[feat] {
			unique[feat] = true
			uniqueOrder = append(uniqueOrder, feat)
		}
	}

	kmeansSize := k
	var centers []point
	if len(unique) < k {
		for _, feat := range uniqueOrder {
			centers = append(centers, point{feature: feat, hand: -1, oppSize: -1})
		}
		kmeansSize = len(centers)
	} else {
		centers = make([]point, k)
		for c := 0; c < k; c++ {
			var feat [numBets]float64
			for b := 0; b < numBets; b++ {
				feat[b] = rng.Float64()
			}
			centers[c] = point{feature: feat, hand: -1, oppSize: -1}
		}
	}

	for iter := 0; iter < iters && kmeansSize > 0; iter++ {
		sums := make([][numBets]float64, kmeansSize)
		counts := make([]int, kmeansSize)
		cumError := 0.0

		for _, p := range data {
			best, bestErr := nearestCenter(p, centers)
			cumError += bestErr
			counts[best]++
			for b := 0; b < numBets; b++ {
				sums[best][b] += p.feature[b]
			}
		}

		for c := 0; c < kmeansSize; c++ {
			if counts[c] == 0 {
				// Empty centroid: leave it unchanged for determinism.
				continue
			}
			for b := 0; b < numBets; b++ {
				centers[c].feature[b] = sums[c][b] / float64(counts[c])
			}
		}

		if cumError < convergenceThreshold {
			break
		}
	}

	blocks := make([][]point, kmeansSize)
	for _, p := range data {
		if kmeansSize == 0 {
			break
		}
		best, _ := nearestCenter(p, centers)
		blocks[best] = append(blocks[best], p)
	}

	prefixSums := make([]int, kmeansSize)
	running := 0
	for i, blk := range blocks {
		running += len(blk)
		prefixSums[i] = running
	}

	return bucket{blocks: blocks, prefixSums: prefixSums, centers: centers}, nil
}

func nearestCenter(p point, centers []point) (int, float64) {
	best := -1
	bestErr := -1.0
	for c, center := range centers {
		d := p.distance(center)
		if best == -1 || d < bestErr {
			best = c
			bestErr = d
		}
	}
	return best, bestErr
}

// newSampleRNG returns the query-time sampler RNG, seeded from the
// same fixed constant as build-time RNGs so sampling is reproducible.
func newSampleRNG() *rand.Rand {
	return rand.New(rand.NewSource(baseSeed))
}

// pairRNG derives a deterministic per-(own_size, opp_size) RNG from
// the fixed base seed, so buckets can be built in parallel without
// sharing mutable RNG state yet remain reproducible across runs.
func pairRNG(ownSize, oppSize int) *rand.Rand {
	seed := int64(baseSeed)*797 + int64(ownSize)*31 + int64(oppSize)
	return rand.New(rand.NewSource(seed))
}

// Sample draws a uniform pair of disjoint hands: one of size h1Size
// from the (h1Size, h2Size) bucket, one of size h2Size from the
// (h2Size, h1Size) bucket, rejecting draws that share a card.
func (t *Table) Sample(h1Size, h2Size int) (GameSample, error) {
	if h1Size < 0 || h1Size > handindex.HandSZ || h2Size < 0 || h2Size > handindex.HandSZ || h1Size+h2Size > cards.CardNB {
		return GameSample{}, thaierr.Newf(thaierr.OutOfRange, "sample sizes (%d,%d) out of range", h1Size, h2Size)
	}
	c1 := t.buckets[h1Size][h2Size]
	c2 := t.buckets[h2Size][h1Size]
	if len(c1.blocks) == 0 || len(c2.blocks) == 0 {
		return GameSample{}, thaierr.Newf(thaierr.BuildFailure, "no cluster built for sizes (%d,%d)", h1Size, h2Size)
	}

	t.sampleMu.Lock()
	defer t.sampleMu.Unlock()

	for {
		h1Block, h1, err := t.sampleHand(c1)
		if err != nil {
			return GameSample{}, err
		}
		h2Block, h2, err := t.sampleHand(c2)
		if err != nil {
			return GameSample{}, err
		}
		if h1&h2 == 0 {
			return GameSample{H1: h1, H1Block: h1Block, H2: h2, H2Block: h2Block}, nil
		}
	}
}

// sampleHand draws a point proportionally to block size within c,
// using the table's shared sampler RNG; callers hold sampleMu.
func (t *Table) sampleHand(c bucket) (int, cards.Hand, error) {
	total := c.prefixSums[len(c.prefixSums)-1]
	which := t.sampleRng.Intn(total)

	// The least block whose prefix sum exceeds the draw is never empty,
	// and the offset inside it is always in range.
	block := sort.Search(len(c.prefixSums), func(i int) bool { return c.prefixSums[i] > which })
	if block > 0 {
		which -= c.prefixSums[block-1]
	}

	p := c.blocks[block][which]
	return block, t.idx.FromIndex(p.hand), nil
}

var (
	once     sync.Once
	instance *Table
	buildErr error
)

// Get returns the process-wide cluster table, building it on first
// call with the default centroid count and iteration cap.
func Get(ctx context.Context, prob *probability.Table) (*Table, error) {
	once.Do(func() {
		instance, buildErr = Build(ctx, prob, DefaultK, DefaultIters)
	})
	return instance, buildErr
}
