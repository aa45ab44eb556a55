package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/taskrank/internal/ranking/application/commands"
	"github.com/felixgeelhaar/taskrank/internal/ranking/application/queries"
	"github.com/felixgeelhaar/taskrank/internal/ranking/application/services"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain"
	"github.com/felixgeelhaar/taskrank/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/taskrank/pkg/config"
	"github.com/felixgeelhaar/taskrank/pkg/observability"
)

// Container holds the wired application services.
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *observability.InMemoryMetrics
	Health  *observability.HealthRegistry

	Ranker    *services.Ranker
	Publisher eventbus.Publisher

	AnalyzeTasksHandler *commands.AnalyzeTasksHandler
	SuggestTasksHandler *queries.SuggestTasksHandler
}

// Option adjusts container construction; mainly used by tests.
type Option func(*options)

type options struct {
	clock     func() time.Time
	publisher eventbus.Publisher
}

// WithClock fixes the ranking evaluation date source.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.clock = now }
}

// WithPublisher replaces the configured event publisher.
func WithPublisher(p eventbus.Publisher) Option {
	return func(o *options) { o.publisher = p }
}

// NewContainer wires the application from configuration. When a broker is configured but
// unreachable, ranked events are dropped and the container still starts.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	defaultStrategy, ok := domain.ParseStrategy(cfg.DefaultStrategy)
	if !ok {
		logger.Warn("unknown DEFAULT_STRATEGY, using smart_balance", "strategy", cfg.DefaultStrategy)
	}

	publisher := o.publisher
	if publisher == nil {
		publisher = newPublisher(cfg, logger)
	}

	metrics := observability.NewInMemoryMetrics()
	ranker := services.NewRanker(services.WithClock(o.clock))

	analyze := commands.NewAnalyzeTasksHandler(commands.AnalyzeTasksConfig{
		Ranker:          ranker,
		Publisher:       publisher,
		Metrics:         metrics,
		Logger:          logger.With("component", "ranking"),
		DefaultStrategy: defaultStrategy,
		TopN:            cfg.SuggestLimit,
	})

	c := &Container{
		Config:              cfg,
		Logger:              logger,
		Metrics:             metrics,
		Health:              observability.NewHealthRegistry(),
		Ranker:              ranker,
		Publisher:           publisher,
		AnalyzeTasksHandler: analyze,
		SuggestTasksHandler: queries.NewSuggestTasksHandler(analyze, cfg.SuggestLimit),
	}
	c.registerHealthChecks()

	logger.DebugContext(ctx, "container initialized",
		"default_strategy", defaultStrategy.String(),
		"broker", cfg.BrokerConfigured(),
	)
	return c, nil
}

func newPublisher(cfg *config.Config, logger *slog.Logger) eventbus.Publisher {
	if !cfg.BrokerConfigured() {
		return eventbus.NewNoopPublisher(logger)
	}

	rabbit, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
	if err != nil {
		logger.Warn("RabbitMQ unavailable, ranked events will not be published", "error", err)
		return eventbus.NewNoopPublisher(logger)
	}

	breaker := eventbus.DefaultBreakerConfig()
	if cfg.BreakerTimeout > 0 {
		breaker.Timeout = cfg.BreakerTimeout
	}
	if cfg.BreakerFailureThreshold > 0 {
		breaker.FailureThreshold = uint32(cfg.BreakerFailureThreshold)
	}
	return eventbus.NewBreakerPublisher(rabbit, breaker, logger)
}

func (c *Container) registerHealthChecks() {
	c.Health.Register("ranking", func(ctx context.Context) observability.HealthCheckResult {
		return observability.HealthCheckResult{Status: observability.HealthStatusHealthy}
	})

	breaker, ok := c.Publisher.(*eventbus.BreakerPublisher)
	if !ok {
		return
	}
	c.Health.Register("events", func(ctx context.Context) observability.HealthCheckResult {
		if state := breaker.State(); state != "closed" {
			return observability.HealthCheckResult{
				Status:  observability.HealthStatusDegraded,
				Message: "event publisher circuit " + state,
			}
		}
		return observability.HealthCheckResult{Status: observability.HealthStatusHealthy}
	})
}

// Close releases external connections.
func (c *Container) Close() {
	if c.Publisher != nil {
		if err := c.Publisher.Close(); err != nil {
			c.Logger.Warn("error closing event publisher", "error", err)
		}
	}
}
