package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/felixgeelhaar/taskrank/internal/ranking/application"
	"github.com/felixgeelhaar/taskrank/internal/ranking/application/commands"
	"github.com/felixgeelhaar/taskrank/internal/ranking/application/queries"
)

const maxBodyBytes = 1 << 20

// TasksHandler handles task ranking requests.
type TasksHandler struct {
	analyze *commands.AnalyzeTasksHandler
	suggest *queries.SuggestTasksHandler
	logger  *slog.Logger
}

// TasksHandlerConfig holds dependencies for the tasks handler.
type TasksHandlerConfig struct {
	Analyze *commands.AnalyzeTasksHandler
	Suggest *queries.SuggestTasksHandler
	Logger  *slog.Logger
}

// NewTasksHandler creates a new tasks handler.
func NewTasksHandler(cfg TasksHandlerConfig) *TasksHandler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &TasksHandler{
		analyze: cfg.Analyze,
		suggest: cfg.Suggest,
		logger:  cfg.Logger,
	}
}

// analyzeRequest is the body accepted by the analyze and suggest endpoints.
type analyzeRequest struct {
	Tasks    []application.TaskInput `json:"tasks"`
	Strategy string                  `json:"strategy"`
}

// Analyze handles POST /api/v1/tasks/analyze
func (h *TasksHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	req, apiErr := decodeRequest(r)
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}

	result, err := h.analyze.Handle(r.Context(), commands.AnalyzeTasksCommand{
		Tasks:    req.Tasks,
		Strategy: req.Strategy,
	})
	if err != nil {
		h.writeAnalysisError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Suggest handles GET and POST /api/v1/tasks/suggest. A GET returns guidance only;
// a POST with tasks returns the leading tasks of their ranking.
func (h *TasksHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	query := queries.SuggestTasksQuery{
		Limit: parseIntParam(r, "limit", 0),
	}
	if r.Method == http.MethodPost {
		req, apiErr := decodeRequest(r)
		if apiErr != nil {
			writeError(w, apiErr)
			return
		}
		query.Tasks = req.Tasks
		query.Strategy = req.Strategy
	}

	result, err := h.suggest.Handle(r.Context(), query)
	if err != nil {
		h.writeAnalysisError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *TasksHandler) writeAnalysisError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *application.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": verr.Tasks})
		return
	}
	h.logger.ErrorContext(r.Context(), "failed to analyze tasks", "error", err)
	writeError(w, ErrInternalServer)
}

func decodeRequest(r *http.Request) (*analyzeRequest, *APIError) {
	var req analyzeRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return &req, nil
		}
		return nil, ErrBadRequest.WithMessage("Malformed JSON body: " + err.Error())
	}
	return &req, nil
}

func parseIntParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}
