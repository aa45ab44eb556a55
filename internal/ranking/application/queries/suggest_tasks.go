package queries

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/taskrank/internal/ranking/application"
	"github.com/felixgeelhaar/taskrank/internal/ranking/application/commands"
	sharedApplication "github.com/felixgeelhaar/taskrank/internal/shared/application"
)

// AnalyzePath is where callers submit task sets for ranking.
const AnalyzePath = "/api/v1/tasks/analyze"

// SuggestTasksQuery asks which tasks to work on next.
// Without tasks it only returns guidance.
type SuggestTasksQuery struct {
	Tasks    []application.TaskInput
	Strategy string
	Limit    int
}

// QueryName identifies the query in logs.
func (SuggestTasksQuery) QueryName() string { return "ranking.suggest_tasks" }

// SuggestTasksResult holds the guidance and, when tasks were given, the suggestions.
type SuggestTasksResult struct {
	Detail      string                      `json:"detail"`
	Strategy    string                      `json:"strategy,omitempty"`
	Suggestions []application.ScoredTaskDTO `json:"suggestions,omitempty"`
}

// SuggestTasksHandler picks the leading tasks of a ranking.
type SuggestTasksHandler struct {
	analyze      *commands.AnalyzeTasksHandler
	defaultLimit int
}

var _ sharedApplication.QueryHandler[SuggestTasksQuery, *SuggestTasksResult] = (*SuggestTasksHandler)(nil)

// NewSuggestTasksHandler creates a new handler.
func NewSuggestTasksHandler(analyze *commands.AnalyzeTasksHandler, defaultLimit int) *SuggestTasksHandler {
	if defaultLimit <= 0 {
		defaultLimit = 3
	}
	return &SuggestTasksHandler{
		analyze:      analyze,
		defaultLimit: defaultLimit,
	}
}

// Handle executes the query.
func (h *SuggestTasksHandler) Handle(ctx context.Context, query SuggestTasksQuery) (*SuggestTasksResult, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = h.defaultLimit
	}

	result := &SuggestTasksResult{
		Detail: fmt.Sprintf("Use POST %s and take the top %d tasks from the ranked list.", AnalyzePath, limit),
	}
	if len(query.Tasks) == 0 {
		return result, nil
	}

	analysis, err := h.analyze.Handle(ctx, commands.AnalyzeTasksCommand{
		Tasks:    query.Tasks,
		Strategy: query.Strategy,
	})
	if err != nil {
		return nil, err
	}

	if limit > len(analysis.Tasks) {
		limit = len(analysis.Tasks)
	}
	result.Detail = fmt.Sprintf("Top %d of %d tasks to work on next.", limit, len(analysis.Tasks))
	result.Strategy = analysis.Strategy
	result.Suggestions = analysis.Tasks[:limit]
	return result, nil
}
