package services

import (
	"fmt"
	"math"
	"time"

	"github.com/felixgeelhaar/triage/internal/triage/domain/task"
	"github.com/felixgeelhaar/triage/internal/triage/domain/value_objects"
)

// ScoringEngine combines the four factor scores into a priority score
// using a normalized weight vector. It is pure: the reference date is
// injected and no state survives a call.
type ScoringEngine struct {
	weights value_objects.Weights
}

// NewScoringEngine creates an engine around an already-normalized
// weight vector (see value_objects.ResolveWeights).
func NewScoringEngine(weights value_objects.Weights) *ScoringEngine {
	return &ScoringEngine{weights: weights}
}

// Score computes the weighted priority score for a single task.
func (e *ScoringEngine) Score(t task.Task, blockingCount int, today time.Time) task.ScoredTask {
	urgency, urgencyPhrase := urgencyScore(t.DueDateOnly(), task.DateOnly(today))
	importance, importancePhrase := importanceScore(t.Importance)
	effort, effortPhrase := effortScore(t.EstimatedHours)
	dependency, dependencyPhrase := dependencyScore(blockingCount)

	combined := urgency*e.weights.Urgency +
		importance*e.weights.Importance +
		effort*e.weights.Effort +
		dependency*e.weights.Dependency

	// The combined score is capped at 100 unless an overdue urgency
	// sub-score (>100) is what pushed it over.
	if urgency <= 100 && combined > 100 {
		combined = 100
	}
	combined = round2(combined)

	phrases := []string{urgencyPhrase, importancePhrase, effortPhrase}
	if blockingCount > 0 {
		phrases = append(phrases, dependencyPhrase)
	}

	return task.ScoredTask{
		Task: t,
		Factors: task.FactorScores{
			Urgency:    round2(urgency),
			Importance: round2(importance),
			Effort:     round2(effort),
			Dependency: round2(dependency),
		},
		Score:         combined,
		Level:         task.LevelForScore(combined),
		Explanation:   joinPhrases(phrases),
		BlockingCount: blockingCount,
	}
}

// urgencyScore maps days-until-due onto the urgency buckets.
func urgencyScore(due, today time.Time) (float64, string) {
	days := int(due.Sub(today).Hours() / 24)

	switch {
	case days < 0:
		overdue := -days
		score := 100 + math.Min(50, 10*float64(overdue))
		return score, fmt.Sprintf("OVERDUE by %d day(s)", overdue)
	case days == 0:
		return 100, "Due TODAY"
	case days == 1:
		return 95, "Due TOMORROW"
	case days <= 3:
		return 85, fmt.Sprintf("Due in %d days (this week)", days)
	case days <= 7:
		return 70, fmt.Sprintf("Due in %d days (within a week)", days)
	case days <= 14:
		return 50, fmt.Sprintf("Due in %d days (within 2 weeks)", days)
	case days <= 30:
		return 30, fmt.Sprintf("Due in %d days (within a month)", days)
	default:
		score := math.Max(10, float64(30-(days-30)))
		return score, fmt.Sprintf("Due in %d days (low urgency)", days)
	}
}

// importanceScore maps the 1-10 rating linearly onto 10-100.
func importanceScore(rating int) (float64, string) {
	score := float64(rating * 10)

	var level string
	switch {
	case rating >= 9:
		level = "Critical"
	case rating >= 7:
		level = "High"
	case rating >= 5:
		level = "Medium"
	case rating >= 3:
		level = "Low"
	default:
		level = "Minimal"
	}

	return score, fmt.Sprintf("Importance: %s (%d/10)", level, rating)
}

// effortScore rewards quick wins: lower estimates score higher.
func effortScore(hours float64) (float64, string) {
	switch {
	case hours < 1:
		return 100, "Quick win (under 1 hour)"
	case hours < 2:
		return 85, "Short task (1-2 hours)"
	case hours < 4:
		return 70, "Medium task (2-4 hours)"
	case hours < 8:
		return 50, "Half-day task (4-8 hours)"
	case hours < 16:
		return 30, "Full day task (8-16 hours)"
	default:
		score := math.Max(10, 30-(hours-16))
		return score, fmt.Sprintf("Large task (%g hours)", hours)
	}
}

// dependencyScore boosts tasks that block others.
func dependencyScore(blockingCount int) (float64, string) {
	switch {
	case blockingCount == 0:
		return 0, "No tasks blocked by this"
	case blockingCount == 1:
		return 50, "Blocks 1 other task"
	case blockingCount == 2:
		return 75, "Blocks 2 other tasks"
	default:
		score := math.Min(100, float64(80+(blockingCount-3)*5))
		return score, fmt.Sprintf("Blocks %d other tasks (high priority)", blockingCount)
	}
}

func joinPhrases(phrases []string) string {
	out := phrases[0]
	for _, p := range phrases[1:] {
		out += " | " + p
	}
	return out
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
