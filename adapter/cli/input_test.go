package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTasksFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTasks(t *testing.T) {
	t.Run("loads and validates a task file", func(t *testing.T) {
		path := writeTasksFile(t, `[
			{"id": 1, "title": "Ship it", "due_date": "2026-03-10", "estimated_hours": 2, "importance": 7},
			{"id": "b", "title": "Review PR", "due_date": "2026-03-11", "estimated_hours": 0.5, "importance": 5, "dependencies": [1]}
		]`)

		tasks, err := LoadTasks(path)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, "1", tasks[0].ID)
		assert.Equal(t, "b", tasks[1].ID)
		assert.Equal(t, []string{"1"}, tasks[1].Dependencies)
	})

	t.Run("rejects an empty file", func(t *testing.T) {
		path := writeTasksFile(t, `[]`)
		_, err := LoadTasks(path)
		assert.Error(t, err)
	})

	t.Run("rejects invalid task fields", func(t *testing.T) {
		path := writeTasksFile(t, `[{"id": 1, "title": "x", "due_date": "2026-03-10", "estimated_hours": 2, "importance": 99}]`)
		_, err := LoadTasks(path)
		assert.Error(t, err)
	})

	t.Run("errors on a missing file", func(t *testing.T) {
		_, err := LoadTasks(filepath.Join(t.TempDir(), "missing.json"))
		assert.Error(t, err)
	})
}

func TestParseWeightFlags(t *testing.T) {
	t.Run("parses factor=value pairs", func(t *testing.T) {
		overrides, err := ParseWeightFlags([]string{"urgency=0.5", "effort=0.1"})
		require.NoError(t, err)
		assert.Equal(t, map[string]float64{"urgency": 0.5, "effort": 0.1}, overrides)
	})

	t.Run("empty input yields nil", func(t *testing.T) {
		overrides, err := ParseWeightFlags(nil)
		require.NoError(t, err)
		assert.Nil(t, overrides)
	})

	t.Run("rejects malformed pairs", func(t *testing.T) {
		_, err := ParseWeightFlags([]string{"urgency"})
		assert.Error(t, err)
		_, err = ParseWeightFlags([]string{"urgency=lots"})
		assert.Error(t, err)
	})
}

func TestParseToday(t *testing.T) {
	t.Run("parses an explicit date", func(t *testing.T) {
		today, err := ParseToday("2026-03-10")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), today)
	})

	t.Run("defaults to the current date", func(t *testing.T) {
		today, err := ParseToday("")
		require.NoError(t, err)
		assert.Equal(t, 0, today.Hour())
		assert.Equal(t, 0, today.Minute())
	})

	t.Run("rejects bad formats", func(t *testing.T) {
		_, err := ParseToday("03/10/2026")
		assert.Error(t, err)
	})
}
