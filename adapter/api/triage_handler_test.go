package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/triage/internal/triage/application/services"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	handler := NewTriageHandler(TriageHandlerConfig{
		Analyzer: services.NewAnalyzer(nil),
		Now: func() time.Time {
			return time.Date(2026, 3, 10, 12, 30, 0, 0, time.UTC)
		},
	})

	server := NewServer(DefaultServerConfig(), handler, nil)
	ts := httptest.NewServer(server.mux)
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func sampleTasks() []map[string]any {
	return []map[string]any{
		{
			"id": 1, "title": "Ship release", "due_date": "2026-03-10",
			"estimated_hours": 3, "importance": 8,
		},
		{
			"id": 2, "title": "Clean desk", "due_date": "2026-04-20",
			"estimated_hours": 1, "importance": 2,
		},
		{
			"id": 3, "title": "Fix login bug", "due_date": "2026-03-11",
			"estimated_hours": 2, "importance": 9, "dependencies": []any{},
		},
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[map[string]string](t, resp)
	assert.Equal(t, "healthy", body["status"])
}

func TestAnalyzeEndpoint(t *testing.T) {
	t.Run("ranks tasks and echoes the strategy", func(t *testing.T) {
		ts := newTestServer(t)

		resp := postJSON(t, ts.URL+"/api/v1/tasks/analyze", map[string]any{
			"tasks": sampleTasks(),
			"today": "2026-03-10",
		})

		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody[AnalyzeResponse](t, resp)

		assert.Equal(t, "smart_balance", body.Strategy)
		assert.Equal(t, 3, body.TotalTasks)
		require.Len(t, body.Tasks, 3)

		// Fix login bug: urgency 95, importance 90, effort 70 -> 70.75
		assert.Equal(t, "3", body.Tasks[0].ID)
		assert.Equal(t, 70.75, body.Tasks[0].PriorityScore)
		// Ship release: urgency 100, importance 80, effort 70 -> 69.5
		assert.Equal(t, "1", body.Tasks[1].ID)
		assert.Equal(t, 69.5, body.Tasks[1].PriorityScore)
		assert.Equal(t, "High", body.Tasks[1].PriorityLevel)
		assert.Contains(t, body.Tasks[1].Explanation, "Due TODAY")
		assert.Equal(t, "2", body.Tasks[2].ID)
		assert.Empty(t, body.CircularDependencies)
	})

	t.Run("accepts string ids and numeric ids alike", func(t *testing.T) {
		ts := newTestServer(t)

		resp := postJSON(t, ts.URL+"/api/v1/tasks/analyze", map[string]any{
			"tasks": []map[string]any{
				{"id": "alpha", "title": "A", "due_date": "2026-03-12", "estimated_hours": 1, "importance": 5},
				{"id": 7, "title": "B", "due_date": "2026-03-12", "estimated_hours": 1, "importance": 5},
			},
			"today": "2026-03-10",
		})

		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody[AnalyzeResponse](t, resp)
		ids := []string{body.Tasks[0].ID, body.Tasks[1].ID}
		assert.ElementsMatch(t, []string{"alpha", "7"}, ids)
	})

	t.Run("reports circular dependencies", func(t *testing.T) {
		ts := newTestServer(t)

		resp := postJSON(t, ts.URL+"/api/v1/tasks/analyze", map[string]any{
			"tasks": []map[string]any{
				{"id": "a", "title": "A", "due_date": "2026-03-12", "estimated_hours": 1, "importance": 5, "dependencies": []any{"b"}},
				{"id": "b", "title": "B", "due_date": "2026-03-12", "estimated_hours": 1, "importance": 5, "dependencies": []any{"a"}},
			},
			"today": "2026-03-10",
		})

		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody[AnalyzeResponse](t, resp)
		require.Len(t, body.CircularDependencies, 1)
		assert.ElementsMatch(t,
			[]string{"a", "b"},
			[]string{body.CircularDependencies[0].From, body.CircularDependencies[0].To},
		)
		assert.Len(t, body.Tasks, 2)
	})

	t.Run("rejects an empty batch", func(t *testing.T) {
		ts := newTestServer(t)
		resp := postJSON(t, ts.URL+"/api/v1/tasks/analyze", map[string]any{"tasks": []any{}})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejects an unknown strategy", func(t *testing.T) {
		ts := newTestServer(t)
		resp := postJSON(t, ts.URL+"/api/v1/tasks/analyze", map[string]any{
			"tasks":    sampleTasks(),
			"strategy": "chaos_monkey",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejects invalid task fields", func(t *testing.T) {
		ts := newTestServer(t)
		resp := postJSON(t, ts.URL+"/api/v1/tasks/analyze", map[string]any{
			"tasks": []map[string]any{
				{"id": 1, "title": "", "due_date": "2026-03-12", "estimated_hours": 1, "importance": 5},
			},
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		ts := newTestServer(t)
		resp, err := http.Post(ts.URL+"/api/v1/tasks/analyze", "application/json", bytes.NewReader([]byte("{nope")))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("falls back to the configured default strategy", func(t *testing.T) {
		handler := NewTriageHandler(TriageHandlerConfig{
			Analyzer:        services.NewAnalyzer(nil),
			DefaultStrategy: "fastest_wins",
			Now: func() time.Time {
				return time.Date(2026, 3, 10, 12, 30, 0, 0, time.UTC)
			},
		})
		server := NewServer(DefaultServerConfig(), handler, nil)
		ts := httptest.NewServer(server.mux)
		t.Cleanup(ts.Close)

		resp := postJSON(t, ts.URL+"/api/v1/tasks/analyze", map[string]any{
			"tasks": sampleTasks(),
			"today": "2026-03-10",
		})

		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody[AnalyzeResponse](t, resp)
		assert.Equal(t, "fastest_wins", body.Strategy)
	})

	t.Run("rejects weight overrides with unknown factors", func(t *testing.T) {
		ts := newTestServer(t)
		resp := postJSON(t, ts.URL+"/api/v1/tasks/analyze", map[string]any{
			"tasks":   sampleTasks(),
			"weights": map[string]float64{"luck": 0.9},
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSuggestEndpoint(t *testing.T) {
	t.Run("returns ranked suggestions with reasons", func(t *testing.T) {
		ts := newTestServer(t)

		resp := postJSON(t, ts.URL+"/api/v1/tasks/suggest", map[string]any{
			"tasks": sampleTasks(),
			"count": 2,
			"today": "2026-03-10",
		})

		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody[SuggestResponse](t, resp)

		assert.Equal(t, 3, body.TotalTasks)
		require.Len(t, body.Suggestions, 2)
		assert.Equal(t, 1, body.Suggestions[0].Rank)
		assert.Equal(t, 2, body.Suggestions[1].Rank)
		assert.Contains(t, body.Suggestions[0].Reason, "Recommended because: ")
	})

	t.Run("defaults to three suggestions", func(t *testing.T) {
		ts := newTestServer(t)

		tasks := sampleTasks()
		tasks = append(tasks, map[string]any{
			"id": 4, "title": "One more", "due_date": "2026-03-15", "estimated_hours": 5, "importance": 6,
		})

		resp := postJSON(t, ts.URL+"/api/v1/tasks/suggest", map[string]any{
			"tasks": tasks,
			"today": "2026-03-10",
		})

		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody[SuggestResponse](t, resp)
		assert.Len(t, body.Suggestions, 3)
	})

	t.Run("rejects an empty batch", func(t *testing.T) {
		ts := newTestServer(t)
		resp := postJSON(t, ts.URL+"/api/v1/tasks/suggest", map[string]any{"tasks": []any{}})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
