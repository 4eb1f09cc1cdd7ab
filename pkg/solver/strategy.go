// Package solver is the thin consumer contract a CFR trainer uses to
// read from the probability and cluster engines: per-infoset regret
// matching over bet actions, persisted the same way across training
// runs. The tree-walking trainer itself is an external collaborator,
// not part of this package.
package solver

import (
	"fmt"
	"math"

	"github.com/behrlich/thaipoker/pkg/cards"
)

// Strategy stores the regret-matching state for a single information
// set: the set of bets a player may declare from that infoset, and
// the accumulated regret/strategy sums CFR updates each iteration.
type Strategy struct {
	InfoSet string
	Actions []cards.Bet

	RegretSum   []float64
	StrategySum []float64
}

// NewStrategy creates a new strategy for an information set.
func NewStrategy(infoSet string, actions []cards.Bet) *Strategy {
	n := len(actions)
	return &Strategy{
		InfoSet:     infoSet,
		Actions:     actions,
		RegretSum:   make([]float64, n),
		StrategySum: make([]float64, n),
	}
}

// GetStrategy computes the current strategy using regret matching:
// positive regrets proportionally, uniform if none are positive.
func (s *Strategy) GetStrategy() []float64 {
	n := len(s.Actions)
	strategy := make([]float64, n)

	normalizingSum := 0.0
	for i := 0; i < n; i++ {
		if s.RegretSum[i] > 0 {
			strategy[i] = s.RegretSum[i]
			normalizingSum += s.RegretSum[i]
		}
	}

	if normalizingSum > 0 {
		for i := 0; i < n; i++ {
			strategy[i] /= normalizingSum
		}
	} else {
		uniform := 1.0 / float64(n)
		for i := 0; i < n; i++ {
			strategy[i] = uniform
		}
	}

	return strategy
}

// GetAverageStrategy returns the average strategy over all
// iterations, which converges to the Nash equilibrium under CFR.
func (s *Strategy) GetAverageStrategy() []float64 {
	n := len(s.Actions)
	avgStrategy := make([]float64, n)

	normalizingSum := 0.0
	for i := 0; i < n; i++ {
		normalizingSum += s.StrategySum[i]
	}

	if normalizingSum > 0 {
		for i := 0; i < n; i++ {
			avgStrategy[i] = s.StrategySum[i] / normalizingSum
		}
	} else {
		uniform := 1.0 / float64(n)
		for i := 0; i < n; i++ {
			avgStrategy[i] = uniform
		}
	}

	return avgStrategy
}

// UpdateRegrets adds regrets for each action.
func (s *Strategy) UpdateRegrets(regrets []float64) {
	for i := 0; i < len(s.Actions); i++ {
		s.RegretSum[i] += regrets[i]
	}
}

// UpdateStrategy adds the current strategy to the running strategy
// sum, weighted by reachProb, the probability of reaching this infoset.
func (s *Strategy) UpdateStrategy(strategy []float64, reachProb float64) {
	for i := 0; i < len(s.Actions); i++ {
		s.StrategySum[i] += reachProb * strategy[i]
	}
}

// String returns a human-readable representation.
func (s *Strategy) String() string {
	avgStrat := s.GetAverageStrategy()
	result := fmt.Sprintf("InfoSet: %s\n", s.InfoSet)
	for i, action := range s.Actions {
		result += fmt.Sprintf("  %s: %.1f%% (regret: %.2f)\n",
			action.String(), avgStrat[i]*100, s.RegretSum[i])
	}
	return result
}

// StrategyProfile stores strategies for all information sets.
type StrategyProfile struct {
	strategies map[string]*Strategy
}

// NewStrategyProfile creates a new, empty strategy profile.
func NewStrategyProfile() *StrategyProfile {
	return &StrategyProfile{
		strategies: make(map[string]*Strategy),
	}
}

// GetOrCreate gets an existing strategy or creates a new one.
func (sp *StrategyProfile) GetOrCreate(infoSet string, actions []cards.Bet) *Strategy {
	if s, exists := sp.strategies[infoSet]; exists {
		return s
	}
	s := NewStrategy(infoSet, actions)
	sp.strategies[infoSet] = s
	return s
}

// Get retrieves a strategy by infoset key.
func (sp *StrategyProfile) Get(infoSet string) (*Strategy, bool) {
	s, exists := sp.strategies[infoSet]
	return s, exists
}

// All returns all strategies.
func (sp *StrategyProfile) All() map[string]*Strategy {
	return sp.strategies
}

// NumInfoSets returns the number of information sets.
func (sp *StrategyProfile) NumInfoSets() int {
	return len(sp.strategies)
}

// GetAverageStrategies returns the average strategy for all infosets.
func (sp *StrategyProfile) GetAverageStrategies() map[string][]float64 {
	result := make(map[string][]float64)
	for infoSet, strat := range sp.strategies {
		result[infoSet] = strat.GetAverageStrategy()
	}
	return result
}

// Exploitability is a regret-magnitude proxy for how far the average
// strategy is from equilibrium; a full best-response computation is
// the trainer's responsibility, not this package's.
func (sp *StrategyProfile) Exploitability() float64 {
	totalAbsRegret := 0.0
	count := 0
	for _, strat := range sp.strategies {
		for _, regret := range strat.RegretSum {
			totalAbsRegret += math.Abs(regret)
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return totalAbsRegret / float64(count)
}
