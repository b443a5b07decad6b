package value_objects

import (
	"github.com/felixgeelhaar/triage/internal/shared/domain"
)

// Factor identifies one of the four scoring signals.
type Factor string

const (
	FactorUrgency    Factor = "urgency"
	FactorImportance Factor = "importance"
	FactorEffort     Factor = "effort"
	FactorDependency Factor = "dependency"
)

// Weights is a weight vector over the four scoring factors.
type Weights struct {
	Urgency    float64
	Importance float64
	Effort     float64
	Dependency float64
}

// Merge applies per-factor overrides on top of the receiver. Factors
// absent from the override map keep their current value. Unknown factor
// names and negative values are rejected.
func (w Weights) Merge(overrides map[string]float64) (Weights, error) {
	merged := w
	for name, value := range overrides {
		if value < 0 {
			return Weights{}, &domain.ValidationError{
				Field:   "weights." + name,
				Message: "weight cannot be negative",
				Value:   value,
				Err:     domain.ErrNegativeWeight,
			}
		}
		switch Factor(name) {
		case FactorUrgency:
			merged.Urgency = value
		case FactorImportance:
			merged.Importance = value
		case FactorEffort:
			merged.Effort = value
		case FactorDependency:
			merged.Dependency = value
		default:
			return Weights{}, &domain.ValidationError{
				Field:   "weights",
				Message: "must be one of urgency, importance, effort, dependency",
				Value:   name,
				Err:     domain.ErrUnknownFactor,
			}
		}
	}
	return merged, nil
}

// Normalize scales the vector so the four weights sum to exactly 1.0.
// A vector with a negative component or a zero sum cannot be normalized.
func (w Weights) Normalize() (Weights, error) {
	for name, value := range map[string]float64{
		"urgency":    w.Urgency,
		"importance": w.Importance,
		"effort":     w.Effort,
		"dependency": w.Dependency,
	} {
		if value < 0 {
			return Weights{}, &domain.ValidationError{
				Field:   "weights." + name,
				Message: "weight cannot be negative",
				Value:   value,
				Err:     domain.ErrNegativeWeight,
			}
		}
	}

	sum := w.Sum()
	if sum == 0 {
		return Weights{}, &domain.ValidationError{
			Field:   "weights",
			Message: "weights sum to zero, normalization is undefined",
			Err:     domain.ErrZeroWeightSum,
		}
	}

	return Weights{
		Urgency:    w.Urgency / sum,
		Importance: w.Importance / sum,
		Effort:     w.Effort / sum,
		Dependency: w.Dependency / sum,
	}, nil
}

// Sum returns the total of the four weights.
func (w Weights) Sum() float64 {
	return w.Urgency + w.Importance + w.Effort + w.Dependency
}

// ResolveWeights maps a strategy name plus an optional override map to a
// normalized weight vector.
func ResolveWeights(strategyName string, overrides map[string]float64) (Strategy, Weights, error) {
	strategy, err := ParseStrategy(strategyName)
	if err != nil {
		return strategy, Weights{}, err
	}

	merged, err := strategy.Weights().Merge(overrides)
	if err != nil {
		return strategy, Weights{}, err
	}

	normalized, err := merged.Normalize()
	if err != nil {
		return strategy, Weights{}, err
	}
	return strategy, normalized, nil
}
