package solver

import (
	"fmt"

	"github.com/behrlich/thaipoker/pkg/cards"
	"github.com/behrlich/thaipoker/pkg/cluster"
	"github.com/behrlich/thaipoker/pkg/probability"
)

// allBets is the fixed action set every infoset offers: declare any
// of the 68 categorical bets as the one that will be satisfied.
var allBets = func() []cards.Bet {
	bets := make([]cards.Bet, cards.NumBets)
	for b := range bets {
		bets[b] = cards.Bet(b)
	}
	return bets
}()

// infoSetKey identifies a player's information set by their own hand
// and the opponent's hand size, which is all a player observes before
// declaring a bet in this game.
func infoSetKey(h cards.Hand, oppSize int) string {
	return fmt.Sprintf("%s|opp%d", h, oppSize)
}

// RunIteration draws one disjoint-hand sample via the cluster
// engine's sampler, computes each side's regret from the exact
// probability table, and applies one step of regret matching for
// both infosets. It is the minimal slice of a CFR-style training loop
// that exercises this system's two consumption points: sample and
// probability. A real trainer would wrap this in a full game tree and
// many iterations; that orchestration lives outside this package.
func RunIteration(prob *probability.Table, clusters *cluster.Table, profile *StrategyProfile, h1Size, h2Size int) error {
	sample, err := clusters.Sample(h1Size, h2Size)
	if err != nil {
		return err
	}
	total := h1Size + h2Size

	if err := updateSide(prob, profile, sample.H1, h2Size, total); err != nil {
		return err
	}
	if err := updateSide(prob, profile, sample.H2, h1Size, total); err != nil {
		return err
	}
	return nil
}

// updateSide computes the regret of every bet action for one player's
// hand (the probability it's satisfied, which doubles as the payoff
// for correctly declaring it) and folds one regret-matching step into
// that infoset's strategy.
func updateSide(prob *probability.Table, profile *StrategyProfile, h cards.Hand, oppSize, total int) error {
	key := infoSetKey(h, oppSize)
	strat := profile.GetOrCreate(key, allBets)

	current := strat.GetStrategy()
	regrets := make([]float64, len(allBets))
	expected := 0.0
	probs := make([]float64, len(allBets))

	for i, b := range allBets {
		p, err := prob.Probability(b, total, h)
		if err != nil {
			return err
		}
		probs[i] = p
		expected += current[i] * p
	}
	for i := range allBets {
		regrets[i] = probs[i] - expected
	}

	strat.UpdateRegrets(regrets)
	strat.UpdateStrategy(current, 1.0)
	return nil
}
