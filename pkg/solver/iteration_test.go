package solver

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/behrlich/thaipoker/pkg/cluster"
	"github.com/behrlich/thaipoker/pkg/probability"
)

// Shared across this package's tests rather than rebuilt per test
// function, for the same reason probability/cluster share theirs.
var (
	sharedOnce     sync.Once
	sharedProb     *probability.Table
	sharedClusters *cluster.Table
	sharedErr      error
)

func testTables(t *testing.T) (*probability.Table, *cluster.Table) {
	t.Helper()
	sharedOnce.Do(func() {
		sharedProb, sharedErr = probability.Get(context.Background())
		if sharedErr != nil {
			return
		}
		sharedClusters, sharedErr = cluster.Build(context.Background(), sharedProb, 8, 3)
	})
	require.NoError(t, sharedErr)
	return sharedProb, sharedClusters
}

func TestRunIterationGrowsStrategyProfile(t *testing.T) {
	prob, clusters := testTables(t)

	profile := NewStrategyProfile()
	for i := 0; i < 20; i++ {
		require.NoError(t, RunIteration(prob, clusters, profile, 2, 2))
	}

	require.NotZero(t, profile.NumInfoSets(), "expected at least one infoset to be created")

	for _, strat := range profile.All() {
		avg := strat.GetAverageStrategy()
		sum := 0.0
		for _, p := range avg {
			require.GreaterOrEqual(t, p, 0.0, "negative probability in average strategy")
			sum += p
		}
		require.InDelta(t, 1.0, sum, 0.001, "average strategy should sum to ~1.0")
	}
}
