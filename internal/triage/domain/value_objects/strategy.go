package value_objects

import (
	"strings"

	"github.com/felixgeelhaar/triage/internal/shared/domain"
)

// Strategy is a named preset of factor weights.
type Strategy int

const (
	StrategySmartBalance Strategy = iota
	StrategyFastestWins
	StrategyHighImpact
	StrategyDeadlineDriven
)

var strategyNames = map[Strategy]string{
	StrategySmartBalance:   "smart_balance",
	StrategyFastestWins:    "fastest_wins",
	StrategyHighImpact:     "high_impact",
	StrategyDeadlineDriven: "deadline_driven",
}

var strategyValues = map[string]Strategy{
	"smart_balance":   StrategySmartBalance,
	"fastest_wins":    StrategyFastestWins,
	"high_impact":     StrategyHighImpact,
	"deadline_driven": StrategyDeadlineDriven,
}

var strategyWeights = map[Strategy]Weights{
	StrategySmartBalance:   {Urgency: 0.35, Importance: 0.30, Effort: 0.15, Dependency: 0.20},
	StrategyFastestWins:    {Urgency: 0.15, Importance: 0.15, Effort: 0.60, Dependency: 0.10},
	StrategyHighImpact:     {Urgency: 0.15, Importance: 0.60, Effort: 0.10, Dependency: 0.15},
	StrategyDeadlineDriven: {Urgency: 0.60, Importance: 0.20, Effort: 0.05, Dependency: 0.15},
}

// ParseStrategy creates a Strategy from its wire name. An empty name
// selects smart_balance; any other unrecognized name is rejected.
func ParseStrategy(s string) (Strategy, error) {
	if s == "" {
		return StrategySmartBalance, nil
	}
	strategy, ok := strategyValues[strings.ToLower(s)]
	if !ok {
		return StrategySmartBalance, &domain.ValidationError{
			Field:   "strategy",
			Message: "must be one of smart_balance, fastest_wins, high_impact, deadline_driven",
			Value:   s,
			Err:     domain.ErrUnknownStrategy,
		}
	}
	return strategy, nil
}

// String returns the wire name of the strategy.
func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalJSON encodes the strategy as its wire name.
func (s Strategy) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// IsValid returns true if the strategy is a recognized preset.
func (s Strategy) IsValid() bool {
	_, ok := strategyNames[s]
	return ok
}

// Weights returns the preset weight vector for the strategy.
func (s Strategy) Weights() Weights {
	if w, ok := strategyWeights[s]; ok {
		return w
	}
	return strategyWeights[StrategySmartBalance]
}
