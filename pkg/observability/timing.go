package observability

import (
	"log/slog"
	"time"
)

// Timer measures an operation and reports it to a logger and metrics.
type Timer struct {
	operation string
	metric    string
	start     time.Time
	logger    *slog.Logger
	metrics   Metrics
	tags      []Tag
}

// StartTimer starts timing operation; the duration is recorded under metric.
func StartTimer(operation, metric string) *Timer {
	return &Timer{
		operation: operation,
		metric:    metric,
		start:     time.Now(),
	}
}

// WithLogger logs completion through logger.
func (t *Timer) WithLogger(logger *slog.Logger) *Timer {
	t.logger = logger
	return t
}

// WithMetrics records the duration in metrics.
func (t *Timer) WithMetrics(metrics Metrics) *Timer {
	t.metrics = metrics
	return t
}

// WithTags adds tags to the recorded timing.
func (t *Timer) WithTags(tags ...Tag) *Timer {
	t.tags = append(t.tags, tags...)
	return t
}

// Stop records the duration, logging err when non-nil.
func (t *Timer) Stop(err error) time.Duration {
	duration := time.Since(t.start)

	if t.logger != nil {
		if err != nil {
			t.logger.Warn("operation failed",
				"operation", t.operation,
				"duration_ms", duration.Milliseconds(),
				"error", err,
			)
		} else {
			t.logger.Debug("operation completed",
				"operation", t.operation,
				"duration_ms", duration.Milliseconds(),
			)
		}
	}

	if t.metrics != nil && t.metric != "" {
		t.metrics.Timing(t.metric, duration, t.tags...)
	}

	return duration
}
