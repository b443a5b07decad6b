package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/felixgeelhaar/triage/internal/shared/domain"
	"github.com/felixgeelhaar/triage/internal/triage/domain/graph"
	"github.com/felixgeelhaar/triage/internal/triage/domain/task"
)

const dateLayout = "2006-01-02"

// TaskID accepts either a JSON string or a JSON number, since task
// identifiers are caller-assigned and only need to be unique within a
// single request.
type TaskID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *TaskID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = TaskID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("task id must be a string or number: %w", err)
	}
	*id = TaskID(n.String())
	return nil
}

// TaskInput is the wire representation of a task to be scored.
type TaskInput struct {
	ID             TaskID   `json:"id"`
	Title          string   `json:"title"`
	DueDate        string   `json:"due_date"`
	EstimatedHours float64  `json:"estimated_hours"`
	Importance     int      `json:"importance"`
	Dependencies   []TaskID `json:"dependencies,omitempty"`
}

// ToDomain converts the wire task into a domain task, parsing the due
// date. Field invariants are checked by task.Validate, not here.
func (in TaskInput) ToDomain() (task.Task, error) {
	due, err := time.ParseInLocation(dateLayout, in.DueDate, time.UTC)
	if err != nil {
		return task.Task{}, domain.NewValidationError("due_date", "must be an ISO date (YYYY-MM-DD)", in.DueDate)
	}

	deps := make([]string, 0, len(in.Dependencies))
	for _, dep := range in.Dependencies {
		deps = append(deps, string(dep))
	}

	return task.Task{
		ID:             string(in.ID),
		Title:          in.Title,
		DueDate:        due,
		EstimatedHours: in.EstimatedHours,
		Importance:     in.Importance,
		Dependencies:   deps,
	}, nil
}

// ToDomainTasks converts a batch of wire tasks, validating each one.
// The whole batch is rejected on the first invalid task.
func ToDomainTasks(inputs []TaskInput) ([]task.Task, error) {
	tasks := make([]task.Task, 0, len(inputs))
	for i, in := range inputs {
		t, err := in.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i, err)
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("task %d: %w", i, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// AnalyzeRequest is the body of POST /api/v1/tasks/analyze.
type AnalyzeRequest struct {
	Tasks    []TaskInput        `json:"tasks"`
	Strategy string             `json:"strategy,omitempty"`
	Weights  map[string]float64 `json:"weights,omitempty"`
	Today    string             `json:"today,omitempty"`
}

// SuggestRequest is the body of POST /api/v1/tasks/suggest.
type SuggestRequest struct {
	Tasks    []TaskInput        `json:"tasks"`
	Strategy string             `json:"strategy,omitempty"`
	Weights  map[string]float64 `json:"weights,omitempty"`
	Count    *int               `json:"count,omitempty"`
	Today    string             `json:"today,omitempty"`
}

// ScoreBreakdown mirrors task.FactorScores on the wire.
type ScoreBreakdown struct {
	Urgency    float64 `json:"urgency"`
	Importance float64 `json:"importance"`
	Effort     float64 `json:"effort"`
	Dependency float64 `json:"dependency"`
}

// ScoredTaskOutput is the wire representation of a scored task.
type ScoredTaskOutput struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	DueDate        string         `json:"due_date"`
	EstimatedHours float64        `json:"estimated_hours"`
	Importance     int            `json:"importance"`
	Dependencies   []string       `json:"dependencies"`
	PriorityScore  float64        `json:"priority_score"`
	PriorityLevel  string         `json:"priority_level"`
	Explanation    string         `json:"explanation"`
	BlockingCount  int            `json:"blocking_count"`
	ScoreBreakdown ScoreBreakdown `json:"score_breakdown"`
}

// CircularEdge is one dependency edge participating in a cycle.
type CircularEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// AnalyzeResponse is the body returned by the analyze endpoint.
type AnalyzeResponse struct {
	Tasks                []ScoredTaskOutput `json:"tasks"`
	Strategy             string             `json:"strategy"`
	CircularDependencies []CircularEdge     `json:"circular_dependencies"`
	TotalTasks           int                `json:"total_tasks"`
}

// SuggestionOutput is one ranked recommendation on the wire.
type SuggestionOutput struct {
	Rank   int    `json:"rank"`
	Reason string `json:"reason"`
	ScoredTaskOutput
}

// SuggestResponse is the body returned by the suggest endpoint.
type SuggestResponse struct {
	Suggestions []SuggestionOutput `json:"suggestions"`
	TotalTasks  int                `json:"total_tasks"`
}

// NewScoredTaskOutput converts a domain scored task for the wire.
func NewScoredTaskOutput(st task.ScoredTask) ScoredTaskOutput {
	deps := st.Dependencies
	if deps == nil {
		deps = []string{}
	}
	return ScoredTaskOutput{
		ID:             st.ID,
		Title:          st.Title,
		DueDate:        st.DueDateOnly().Format(dateLayout),
		EstimatedHours: st.EstimatedHours,
		Importance:     st.Importance,
		Dependencies:   deps,
		PriorityScore:  st.Score,
		PriorityLevel:  st.Level.String(),
		Explanation:    st.Explanation,
		BlockingCount:  st.BlockingCount,
		ScoreBreakdown: ScoreBreakdown{
			Urgency:    st.Factors.Urgency,
			Importance: st.Factors.Importance,
			Effort:     st.Factors.Effort,
			Dependency: st.Factors.Dependency,
		},
	}
}

// NewCircularEdges converts graph edges for the wire.
func NewCircularEdges(edges []graph.Edge) []CircularEdge {
	out := make([]CircularEdge, 0, len(edges))
	for _, e := range edges {
		out = append(out, CircularEdge{From: e.From, To: e.To})
	}
	return out
}
