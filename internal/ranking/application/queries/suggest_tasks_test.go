package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/taskrank/internal/ranking/application"
	"github.com/felixgeelhaar/taskrank/internal/ranking/application/commands"
	"github.com/felixgeelhaar/taskrank/internal/ranking/application/services"
	sharedApplication "github.com/felixgeelhaar/taskrank/internal/shared/application"
	"github.com/felixgeelhaar/taskrank/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newSuggestHandler(limit int) *SuggestTasksHandler {
	clock := func() time.Time { return time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC) }
	analyze := commands.NewAnalyzeTasksHandler(commands.AnalyzeTasksConfig{
		Ranker: services.NewRanker(services.WithClock(clock)),
		Logger: observability.DiscardLogger(),
	})
	return NewSuggestTasksHandler(analyze, limit)
}

func taskInput(title, due string, importance int) application.TaskInput {
	return application.TaskInput{
		Title:          title,
		DueDate:        ptr(due),
		EstimatedHours: ptr(2.0),
		Importance:     ptr(importance),
	}
}

func TestSuggestTasksHandler_Handle(t *testing.T) {
	t.Run("guidance only without tasks", func(t *testing.T) {
		result, err := newSuggestHandler(0).Handle(context.Background(), SuggestTasksQuery{})

		require.NoError(t, err)
		assert.Equal(t, "Use POST /api/v1/tasks/analyze and take the top 3 tasks from the ranked list.", result.Detail)
		assert.Empty(t, result.Suggestions)
	})

	t.Run("returns leading tasks", func(t *testing.T) {
		tasks := []application.TaskInput{
			taskInput("later", "2025-08-01", 4),
			taskInput("soon", "2025-06-03", 6),
			taskInput("today", "2025-06-02", 8),
			taskInput("overdue", "2025-05-20", 9),
		}

		result, err := newSuggestHandler(3).Handle(context.Background(), SuggestTasksQuery{Tasks: tasks, Strategy: "deadline"})

		require.NoError(t, err)
		require.Len(t, result.Suggestions, 3)
		assert.Equal(t, "deadline", result.Strategy)
		assert.Equal(t, "overdue", result.Suggestions[0].Title)
		assert.Equal(t, "today", result.Suggestions[1].Title)
		assert.Equal(t, "soon", result.Suggestions[2].Title)
		assert.Equal(t, "Top 3 of 4 tasks to work on next.", result.Detail)
	})

	t.Run("limit larger than task set", func(t *testing.T) {
		result, err := newSuggestHandler(3).Handle(context.Background(), SuggestTasksQuery{
			Tasks: []application.TaskInput{taskInput("only", "2025-06-10", 5)},
			Limit: 10,
		})

		require.NoError(t, err)
		assert.Len(t, result.Suggestions, 1)
	})

	t.Run("invalid tasks", func(t *testing.T) {
		_, err := newSuggestHandler(3).Handle(context.Background(), SuggestTasksQuery{
			Tasks: []application.TaskInput{{Title: "broken"}},
		})

		assert.True(t, errors.Is(err, application.ErrInvalidTasks))
	})
}

func TestSuggestTasksQuery_SharedContract(t *testing.T) {
	var handler sharedApplication.QueryHandler[SuggestTasksQuery, *SuggestTasksResult] = newSuggestHandler(1)
	var query sharedApplication.Query = SuggestTasksQuery{
		Tasks: []application.TaskInput{taskInput("a", "2025-06-03", 5), taskInput("b", "2025-06-20", 5)},
	}

	assert.Equal(t, "ranking.suggest_tasks", query.QueryName())
	assert.Equal(t, "ranking.analyze_tasks", commands.AnalyzeTasksCommand{}.CommandName())

	result, err := handler.Handle(context.Background(), query.(SuggestTasksQuery))
	require.NoError(t, err)
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "a", result.Suggestions[0].Title)
}
