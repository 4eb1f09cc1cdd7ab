package solver

import (
	"encoding/json"
	"os"

	"github.com/behrlich/thaipoker/pkg/cards"
)

// SerializableStrategy is a JSON-friendly representation of a Strategy.
type SerializableStrategy struct {
	InfoSet     string    `json:"infoset"`
	Actions     []int     `json:"actions"` // cards.Bet values
	RegretSum   []float64 `json:"regret_sum"`
	StrategySum []float64 `json:"strategy_sum"`
}

// SerializableProfile is a JSON-friendly representation of a StrategyProfile.
type SerializableProfile struct {
	Strategies []SerializableStrategy `json:"strategies"`
	Version    string                 `json:"version"`
}

// ToJSON serializes the StrategyProfile to JSON bytes.
func (sp *StrategyProfile) ToJSON() ([]byte, error) {
	profile := SerializableProfile{
		Version:    "1.0",
		Strategies: make([]SerializableStrategy, 0, len(sp.strategies)),
	}

	for infoSet, strat := range sp.strategies {
		actions := make([]int, len(strat.Actions))
		for i, action := range strat.Actions {
			actions[i] = int(action)
		}

		profile.Strategies = append(profile.Strategies, SerializableStrategy{
			InfoSet:     infoSet,
			Actions:     actions,
			RegretSum:   strat.RegretSum,
			StrategySum: strat.StrategySum,
		})
	}

	return json.MarshalIndent(profile, "", "  ")
}

// FromJSON deserializes JSON bytes into a StrategyProfile.
func FromJSON(data []byte) (*StrategyProfile, error) {
	var profile SerializableProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, err
	}

	sp := NewStrategyProfile()

	for _, serStrat := range profile.Strategies {
		actions := make([]cards.Bet, len(serStrat.Actions))
		for i, a := range serStrat.Actions {
			actions[i] = cards.Bet(a)
		}

		strat := NewStrategy(serStrat.InfoSet, actions)
		strat.RegretSum = serStrat.RegretSum
		strat.StrategySum = serStrat.StrategySum

		sp.strategies[serStrat.InfoSet] = strat
	}

	return sp, nil
}

// SaveToFile saves the StrategyProfile to a JSON file.
func (sp *StrategyProfile) SaveToFile(filename string) error {
	data, err := sp.ToJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

// LoadFromFile loads a StrategyProfile from a JSON file.
func LoadFromFile(filename string) (*StrategyProfile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return FromJSON(data)
}
