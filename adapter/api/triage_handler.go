package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/triage/internal/shared/domain"
	"github.com/felixgeelhaar/triage/internal/triage/application/services"
	"github.com/felixgeelhaar/triage/internal/triage/domain/task"
)

// TriageHandler handles task analysis API requests.
type TriageHandler struct {
	analyzer        *services.Analyzer
	logger          *slog.Logger
	now             func() time.Time
	defaultStrategy string
	defaultCount    int
}

// TriageHandlerConfig holds dependencies for the triage handler.
type TriageHandlerConfig struct {
	Analyzer *services.Analyzer
	Logger   *slog.Logger

	// Now supplies the reference clock used when a request carries no
	// explicit "today". Defaults to time.Now.
	Now func() time.Time

	// DefaultStrategy is applied when a request names no strategy.
	DefaultStrategy string

	// DefaultCount is the suggestion count when a request omits it.
	// Defaults to services.DefaultSuggestionCount.
	DefaultCount int
}

// NewTriageHandler creates a new triage handler.
func NewTriageHandler(cfg TriageHandlerConfig) *TriageHandler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.DefaultCount <= 0 {
		cfg.DefaultCount = services.DefaultSuggestionCount
	}
	return &TriageHandler{
		analyzer:        cfg.Analyzer,
		logger:          cfg.Logger,
		now:             cfg.Now,
		defaultStrategy: cfg.DefaultStrategy,
		defaultCount:    cfg.DefaultCount,
	}
}

// AnalyzeTasks handles POST /api/v1/tasks/analyze
func (h *TriageHandler) AnalyzeTasks(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New()
	logger := h.logger.With("request_id", requestID.String())

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if len(req.Tasks) == 0 {
		writeError(w, http.StatusBadRequest, "No tasks provided")
		return
	}

	tasks, err := ToDomainTasks(req.Tasks)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	today, err := h.resolveToday(req.Today)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	strategy := req.Strategy
	if strategy == "" {
		strategy = h.defaultStrategy
	}

	result, err := h.analyzer.Analyze(tasks, strategy, req.Weights, today)
	if err != nil {
		if domain.IsValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error("failed to analyze tasks", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to analyze tasks")
		return
	}

	logger.Info("analyzed tasks",
		"total_tasks", result.TotalTasks,
		"strategy", result.Strategy.String(),
		"circular_edges", len(result.CircularDependencies),
	)

	resp := AnalyzeResponse{
		Tasks:                make([]ScoredTaskOutput, 0, len(result.Tasks)),
		Strategy:             result.Strategy.String(),
		CircularDependencies: NewCircularEdges(result.CircularDependencies),
		TotalTasks:           result.TotalTasks,
	}
	for _, st := range result.Tasks {
		resp.Tasks = append(resp.Tasks, NewScoredTaskOutput(st))
	}

	writeJSON(w, http.StatusOK, resp)
}

// SuggestTasks handles POST /api/v1/tasks/suggest
func (h *TriageHandler) SuggestTasks(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New()
	logger := h.logger.With("request_id", requestID.String())

	var req SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if len(req.Tasks) == 0 {
		writeError(w, http.StatusBadRequest, "No tasks provided")
		return
	}

	tasks, err := ToDomainTasks(req.Tasks)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	today, err := h.resolveToday(req.Today)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	strategy := req.Strategy
	if strategy == "" {
		strategy = h.defaultStrategy
	}

	count := h.defaultCount
	if req.Count != nil {
		count = *req.Count
	}

	suggestions, err := h.analyzer.Suggest(tasks, strategy, req.Weights, count, today)
	if err != nil {
		if domain.IsValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error("failed to suggest tasks", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to suggest tasks")
		return
	}

	logger.Info("suggested tasks",
		"total_tasks", len(tasks),
		"suggestions", len(suggestions),
	)

	resp := SuggestResponse{
		Suggestions: make([]SuggestionOutput, 0, len(suggestions)),
		TotalTasks:  len(tasks),
	}
	for _, s := range suggestions {
		resp.Suggestions = append(resp.Suggestions, SuggestionOutput{
			Rank:             s.Rank,
			Reason:           s.Reason,
			ScoredTaskOutput: NewScoredTaskOutput(s.Task),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// resolveToday parses the optional request date or snapshots the server
// clock once, keeping the core free of clock reads.
func (h *TriageHandler) resolveToday(raw string) (time.Time, error) {
	if raw == "" {
		return task.DateOnly(h.now()), nil
	}
	today, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, domain.NewValidationError("today", "must be an ISO date (YYYY-MM-DD)", raw)
	}
	return today, nil
}
