package services

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/felixgeelhaar/triage/internal/shared/domain"
	"github.com/felixgeelhaar/triage/internal/triage/domain/graph"
	"github.com/felixgeelhaar/triage/internal/triage/domain/task"
	"github.com/felixgeelhaar/triage/internal/triage/domain/value_objects"
)

// DefaultSuggestionCount is used when the caller does not say how many
// suggestions it wants.
const DefaultSuggestionCount = 3

// Reason-synthesis thresholds: a factor sub-score at or above this value
// is called out in the suggestion reason.
const reasonFactorThreshold = 80

// AnalysisResult is the output of a single analyze request.
type AnalysisResult struct {
	Tasks                []task.ScoredTask
	Strategy             value_objects.Strategy
	CircularDependencies []graph.Edge
	TotalTasks           int
}

// Analyzer orchestrates a scoring request: graph analysis, per-task
// scoring, and deterministic ranking. It holds no per-request state and
// is safe for concurrent use.
type Analyzer struct {
	logger *slog.Logger
}

// NewAnalyzer creates an analyzer. A nil logger falls back to slog.Default.
func NewAnalyzer(logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{logger: logger}
}

// Analyze scores every task and returns them ranked by priority, along
// with any circular dependencies found in the set. The whole batch is
// rejected if the strategy, weights, or any task fails validation.
func (a *Analyzer) Analyze(tasks []task.Task, strategyName string, overrides map[string]float64, today time.Time) (*AnalysisResult, error) {
	seen := make(map[string]struct{}, len(tasks))
	for i, t := range tasks {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("task %d (%s): %w", i, t.ID, err)
		}
		if t.ID != "" {
			if _, dup := seen[t.ID]; dup {
				return nil, domain.NewValidationError("id", "task ids must be unique within a request", t.ID)
			}
			seen[t.ID] = struct{}{}
		}
	}

	strategy, weights, err := value_objects.ResolveWeights(strategyName, overrides)
	if err != nil {
		return nil, err
	}

	g := graph.Build(tasks)
	cycles := g.CycleEdges()

	engine := NewScoringEngine(weights)
	scored := make([]task.ScoredTask, 0, len(tasks))
	for _, t := range tasks {
		scored = append(scored, engine.Score(t, g.BlockingCount(t.ID), today))
	}

	rank(scored)

	a.logger.Debug("analyzed task batch",
		"total_tasks", len(scored),
		"strategy", strategy.String(),
		"circular_edges", len(cycles),
	)

	return &AnalysisResult{
		Tasks:                scored,
		Strategy:             strategy,
		CircularDependencies: cycles,
		TotalTasks:           len(scored),
	}, nil
}

// Suggest returns the top tasks to work on, each with a synthesized
// reason naming the factors that dominated its score.
func (a *Analyzer) Suggest(tasks []task.Task, strategyName string, overrides map[string]float64, count int, today time.Time) ([]task.Suggestion, error) {
	result, err := a.Analyze(tasks, strategyName, overrides, today)
	if err != nil {
		return nil, err
	}

	if count < 0 {
		count = 0
	}
	if count > len(result.Tasks) {
		count = len(result.Tasks)
	}

	suggestions := make([]task.Suggestion, 0, count)
	for i, st := range result.Tasks[:count] {
		suggestions = append(suggestions, task.Suggestion{
			Rank:   i + 1,
			Task:   st,
			Reason: suggestionReason(st),
		})
	}
	return suggestions, nil
}

// rank sorts scored tasks descending by combined score; ties broken by
// descending urgency sub-score, then ascending task id.
func rank(scored []task.ScoredTask) {
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if scored[i].Factors.Urgency != scored[j].Factors.Urgency {
			return scored[i].Factors.Urgency > scored[j].Factors.Urgency
		}
		return scored[i].ID < scored[j].ID
	})
}

func suggestionReason(st task.ScoredTask) string {
	var parts []string

	if st.Factors.Urgency >= reasonFactorThreshold {
		parts = append(parts, "urgent deadline")
	}
	if st.Factors.Importance >= reasonFactorThreshold {
		parts = append(parts, "high importance")
	}
	if st.Factors.Effort >= reasonFactorThreshold {
		parts = append(parts, "quick to complete")
	}
	if st.Factors.Dependency > 0 {
		parts = append(parts, "unblocks other tasks")
	}

	if len(parts) == 0 {
		parts = append(parts, "balanced priority")
	}

	return "Recommended because: " + strings.Join(parts, ", ")
}
