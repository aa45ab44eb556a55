package commands

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/taskrank/internal/ranking/application"
	"github.com/felixgeelhaar/taskrank/internal/ranking/application/services"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain"
	"github.com/felixgeelhaar/taskrank/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/taskrank/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var evaluationDay = time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	keys     []string
	payloads [][]byte
	messages []eventbus.Message
	err      error
}

func (p *recordingPublisher) Publish(ctx context.Context, msg eventbus.Message) error {
	if p.err != nil {
		return p.err
	}
	p.keys = append(p.keys, msg.RoutingKey)
	p.payloads = append(p.payloads, msg.Body)
	p.messages = append(p.messages, msg)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func ptr[T any](v T) *T { return &v }

func input(id int64, title, due string, hours float64, importance int, deps ...int64) application.TaskInput {
	return application.TaskInput{
		ID:             ptr(id),
		Title:          title,
		DueDate:        ptr(due),
		EstimatedHours: ptr(hours),
		Importance:     ptr(importance),
		Dependencies:   deps,
	}
}

func newHandler(pub *recordingPublisher, metrics observability.Metrics) *AnalyzeTasksHandler {
	return NewAnalyzeTasksHandler(AnalyzeTasksConfig{
		Ranker:    services.NewRanker(services.WithClock(func() time.Time { return evaluationDay })),
		Publisher: pub,
		Metrics:   metrics,
		Logger:    observability.DiscardLogger(),
	})
}

func TestAnalyzeTasksHandler_Handle(t *testing.T) {
	t.Run("ranks tasks and publishes event", func(t *testing.T) {
		pub := &recordingPublisher{}
		metrics := observability.NewInMemoryMetrics()
		handler := newHandler(pub, metrics)

		result, err := handler.Handle(context.Background(), AnalyzeTasksCommand{
			Tasks: []application.TaskInput{
				input(2, "Long-term task", "2025-07-02", 10, 5),
				input(1, "Urgent bug", "2025-06-02", 2, 9),
			},
			Strategy: "smart_balance",
		})

		require.NoError(t, err)
		require.Len(t, result.Tasks, 2)
		assert.Equal(t, "smart_balance", result.Strategy)
		assert.Equal(t, "Urgent bug", result.Tasks[0].Title)
		assert.Equal(t, 53.0, result.Tasks[0].Score)
		assert.Equal(t, "high", result.Tasks[0].Band)
		assert.Equal(t, "do", result.Tasks[0].Quadrant)
		assert.Equal(t, "low", result.Tasks[1].Band)
		assert.Empty(t, result.CyclicIDs)

		require.Len(t, pub.keys, 1)
		assert.Equal(t, domain.RoutingKeyTasksRanked, pub.keys[0])

		var envelope struct {
			AggregateID string `json:"aggregate_id"`
			Payload     struct {
				Strategy  string   `json:"strategy"`
				TaskCount int      `json:"task_count"`
				TopTitles []string `json:"top_titles"`
			} `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(pub.payloads[0], &envelope))
		assert.Equal(t, result.AnalysisID.String(), envelope.AggregateID)
		assert.Equal(t, 2, envelope.Payload.TaskCount)
		assert.Equal(t, []string{"Urgent bug", "Long-term task"}, envelope.Payload.TopTitles)

		tags := observability.T("strategy", "smart_balance")
		assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricRankingRequests, tags))
		assert.Equal(t, []float64{2}, metrics.GetHistogram(observability.MetricRankingTasks, tags))
		assert.Len(t, metrics.GetTimings(observability.MetricRankingDuration, tags), 1)
		assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricEventsPublished))
	})

	t.Run("reports cyclic ids", func(t *testing.T) {
		handler := newHandler(&recordingPublisher{}, nil)

		result, err := handler.Handle(context.Background(), AnalyzeTasksCommand{
			Tasks: []application.TaskInput{
				input(1, "Task A", "2025-06-02", 2, 5, 2),
				input(2, "Task B", "2025-06-02", 2, 5, 1),
			},
		})

		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2}, result.CyclicIDs)
		for _, tk := range result.Tasks {
			assert.Contains(t, tk.Explanation, "circular dependency")
		}
	})

	t.Run("unknown strategy falls back to default", func(t *testing.T) {
		handler := newHandler(&recordingPublisher{}, nil)

		result, err := handler.Handle(context.Background(), AnalyzeTasksCommand{
			Tasks:    []application.TaskInput{input(1, "Only", "2025-06-03", 1, 3)},
			Strategy: "whatever",
		})

		require.NoError(t, err)
		assert.Equal(t, "smart_balance", result.Strategy)
	})

	t.Run("strategy names are case sensitive", func(t *testing.T) {
		handler := newHandler(&recordingPublisher{}, nil)

		result, err := handler.Handle(context.Background(), AnalyzeTasksCommand{
			Tasks:    []application.TaskInput{input(1, "Only", "2025-06-03", 1, 3)},
			Strategy: "FASTEST",
		})

		require.NoError(t, err)
		assert.Equal(t, "smart_balance", result.Strategy)
	})

	t.Run("configured default strategy applies when none given", func(t *testing.T) {
		handler := NewAnalyzeTasksHandler(AnalyzeTasksConfig{
			Ranker:          services.NewRanker(services.WithClock(func() time.Time { return evaluationDay })),
			Logger:          observability.DiscardLogger(),
			DefaultStrategy: domain.StrategyDeadline,
		})

		result, err := handler.Handle(context.Background(), AnalyzeTasksCommand{
			Tasks: []application.TaskInput{input(1, "Only", "2025-06-03", 1, 3)},
		})

		require.NoError(t, err)
		assert.Equal(t, "deadline", result.Strategy)
		// 15*3 + 3 + 8*0.2
		assert.Equal(t, 49.6, result.Tasks[0].Score)
	})

	t.Run("validation errors are returned and nothing is published", func(t *testing.T) {
		pub := &recordingPublisher{}
		metrics := observability.NewInMemoryMetrics()
		handler := newHandler(pub, metrics)

		_, err := handler.Handle(context.Background(), AnalyzeTasksCommand{
			Tasks: []application.TaskInput{{Title: "missing everything"}},
		})

		var verr *application.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Empty(t, pub.keys)
		assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricRankingFailures, observability.T("strategy", "smart_balance")))
	})

	t.Run("publish failure does not fail the analysis", func(t *testing.T) {
		pub := &recordingPublisher{err: errors.New("broker down")}
		metrics := observability.NewInMemoryMetrics()
		handler := newHandler(pub, metrics)

		result, err := handler.Handle(context.Background(), AnalyzeTasksCommand{
			Tasks: []application.TaskInput{input(1, "Only", "2025-06-03", 1, 3)},
		})

		require.NoError(t, err)
		assert.Len(t, result.Tasks, 1)
		assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricEventsFailed))
	})
}

func TestAnalyzeTasksHandler_EventMetadata(t *testing.T) {
	pub := &recordingPublisher{}
	handler := newHandler(pub, nil)

	ctx := observability.WithRequestID(observability.WithCorrelationID(context.Background(), "corr-42"), "req-7")
	_, err := handler.Handle(ctx, AnalyzeTasksCommand{
		Tasks: []application.TaskInput{input(1, "only", "2025-06-03", 1, 4)},
	})
	require.NoError(t, err)
	require.Len(t, pub.payloads, 1)

	var envelope struct {
		Metadata struct {
			CorrelationID string `json:"correlation_id"`
			CausationID   string `json:"causation_id"`
		} `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(pub.payloads[0], &envelope))
	assert.Equal(t, "corr-42", envelope.Metadata.CorrelationID)
	assert.Equal(t, "req-7", envelope.Metadata.CausationID)
	assert.Equal(t, "corr-42", pub.messages[0].CorrelationID)
	assert.NotEmpty(t, pub.messages[0].MessageID)
}

func TestNewAnalyzeTasksHandler_Defaults(t *testing.T) {
	handler := NewAnalyzeTasksHandler(AnalyzeTasksConfig{DefaultStrategy: domain.Strategy(99)})

	assert.NotNil(t, handler.ranker)
	assert.NotNil(t, handler.publisher)
	assert.NotNil(t, handler.metrics)
	assert.NotNil(t, handler.logger)
	assert.Equal(t, domain.DefaultStrategy, handler.defaultStrategy)
	assert.Equal(t, 3, handler.topN)
}
