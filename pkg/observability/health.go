package observability

import (
	"context"
	"sort"
	"sync"
	"time"
)

// HealthStatus represents the health state of a component.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthCheckResult is the result of a health check.
type HealthCheckResult struct {
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// HealthChecker performs a health check.
type HealthChecker func(ctx context.Context) HealthCheckResult

// HealthReport aggregates component results.
type HealthReport struct {
	Status     HealthStatus                 `json:"status"`
	Time       time.Time                    `json:"time"`
	Components map[string]HealthCheckResult `json:"components,omitempty"`
}

// HealthRegistry manages health checks for multiple components.
type HealthRegistry struct {
	mu       sync.RWMutex
	checkers map[string]HealthChecker
}

// NewHealthRegistry creates a new health registry.
func NewHealthRegistry() *HealthRegistry {
	return &HealthRegistry{checkers: make(map[string]HealthChecker)}
}

// Register adds a health checker for a component.
func (r *HealthRegistry) Register(name string, checker HealthChecker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers[name] = checker
}

// Check runs every checker. The overall status is the worst component status.
func (r *HealthRegistry) Check(ctx context.Context) HealthReport {
	r.mu.RLock()
	names := make([]string, 0, len(r.checkers))
	for name := range r.checkers {
		names = append(names, name)
	}
	checkers := make(map[string]HealthChecker, len(r.checkers))
	for k, v := range r.checkers {
		checkers[k] = v
	}
	r.mu.RUnlock()
	sort.Strings(names)

	report := HealthReport{
		Status:     HealthStatusHealthy,
		Time:       time.Now().UTC(),
		Components: make(map[string]HealthCheckResult, len(names)),
	}
	for _, name := range names {
		result := checkers[name](ctx)
		report.Components[name] = result
		if severity(result.Status) > severity(report.Status) {
			report.Status = result.Status
		}
	}
	return report
}

func severity(s HealthStatus) int {
	switch s {
	case HealthStatusHealthy:
		return 0
	case HealthStatusDegraded:
		return 1
	default:
		return 2
	}
}
