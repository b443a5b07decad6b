package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/felixgeelhaar/triage/adapter/api"
	"github.com/felixgeelhaar/triage/internal/shared/domain"
	"github.com/felixgeelhaar/triage/internal/triage/domain/task"
)

// LoadTasks reads a JSON file containing an array of task inputs and
// converts it into validated domain tasks.
func LoadTasks(path string) ([]task.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tasks file: %w", err)
	}

	var inputs []api.TaskInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("parse tasks file %s: %w", path, err)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("tasks file %s contains no tasks", path)
	}

	return api.ToDomainTasks(inputs)
}

// ParseWeightFlags turns repeated --weight factor=value flags into an
// override map for the weight resolver.
func ParseWeightFlags(pairs []string) (map[string]float64, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	overrides := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid weight %q, expected factor=value", pair)
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight value %q: %w", raw, err)
		}
		overrides[strings.TrimSpace(name)] = value
	}
	return overrides, nil
}

// ParseToday resolves the --today flag; an empty value snapshots the
// local clock's date so the core never reads the clock itself.
func ParseToday(raw string) (time.Time, error) {
	if raw == "" {
		return task.DateOnly(time.Now()), nil
	}
	today, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		return time.Time{}, domain.NewValidationError("today", "must be an ISO date (YYYY-MM-DD)", raw)
	}
	return today, nil
}
