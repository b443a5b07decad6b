package task

import (
	"strings"
	"time"

	"github.com/felixgeelhaar/triage/internal/shared/domain"
)

const maxTitleLength = 255

// Task represents a unit of work submitted for prioritization.
// Tasks live only for the duration of a single request.
type Task struct {
	ID             string
	Title          string
	DueDate        time.Time
	EstimatedHours float64
	Importance     int
	Dependencies   []string
}

// Validate checks the field invariants every task must satisfy.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return domain.NewValidationError("title", "title cannot be empty", nil)
	}
	if len(t.Title) > maxTitleLength {
		return domain.NewValidationError("title", "title exceeds 255 characters", len(t.Title))
	}
	if t.DueDate.IsZero() {
		return domain.NewValidationError("due_date", "due date is required", nil)
	}
	if t.EstimatedHours < 0.1 {
		return domain.NewValidationError("estimated_hours", "must be at least 0.1", t.EstimatedHours)
	}
	if t.Importance < 1 || t.Importance > 10 {
		return domain.NewValidationError("importance", "must be between 1 and 10", t.Importance)
	}
	return nil
}

// DueDateOnly returns the due date truncated to calendar-day precision in UTC.
func (t Task) DueDateOnly() time.Time {
	return DateOnly(t.DueDate)
}

// DateOnly truncates a timestamp to calendar-day precision in UTC.
func DateOnly(ts time.Time) time.Time {
	y, m, d := ts.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
