package commands

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/taskrank/internal/ranking/application"
	"github.com/felixgeelhaar/taskrank/internal/ranking/application/services"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain"
	sharedApplication "github.com/felixgeelhaar/taskrank/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/taskrank/internal/shared/domain"
	"github.com/felixgeelhaar/taskrank/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/taskrank/pkg/observability"
	"github.com/google/uuid"
)

// AnalyzeTasksCommand asks for a task set to be ranked.
type AnalyzeTasksCommand struct {
	Tasks    []application.TaskInput
	Strategy string
}

// CommandName identifies the command in logs.
func (AnalyzeTasksCommand) CommandName() string { return "ranking.analyze_tasks" }

// AnalyzeTasksResult is the ranked task set.
type AnalyzeTasksResult struct {
	AnalysisID uuid.UUID                   `json:"analysis_id"`
	Strategy   string                      `json:"strategy"`
	Tasks      []application.ScoredTaskDTO `json:"tasks"`
	CyclicIDs  []int64                     `json:"cyclic_ids"`
}

// AnalyzeTasksConfig holds dependencies for the handler.
type AnalyzeTasksConfig struct {
	Ranker          *services.Ranker
	Publisher       eventbus.Publisher
	Metrics         observability.Metrics
	Logger          *slog.Logger
	DefaultStrategy domain.Strategy
	// TopN is how many leading titles the ranked event carries.
	TopN int
}

// AnalyzeTasksHandler validates, ranks and announces a task set.
type AnalyzeTasksHandler struct {
	ranker          *services.Ranker
	publisher       eventbus.Publisher
	metrics         observability.Metrics
	logger          *slog.Logger
	defaultStrategy domain.Strategy
	topN            int
}

var _ sharedApplication.CommandHandler[AnalyzeTasksCommand, *AnalyzeTasksResult] = (*AnalyzeTasksHandler)(nil)

// NewAnalyzeTasksHandler creates a new handler.
func NewAnalyzeTasksHandler(cfg AnalyzeTasksConfig) *AnalyzeTasksHandler {
	if cfg.Ranker == nil {
		cfg.Ranker = services.NewRanker()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Publisher == nil {
		cfg.Publisher = eventbus.NewNoopPublisher(cfg.Logger)
	}
	if cfg.Metrics == nil {
		cfg.Metrics = observability.NoopMetrics{}
	}
	if !cfg.DefaultStrategy.IsValid() {
		cfg.DefaultStrategy = domain.DefaultStrategy
	}
	if cfg.TopN <= 0 {
		cfg.TopN = 3
	}
	return &AnalyzeTasksHandler{
		ranker:          cfg.Ranker,
		publisher:       cfg.Publisher,
		metrics:         cfg.Metrics,
		logger:          cfg.Logger,
		defaultStrategy: cfg.DefaultStrategy,
		topN:            cfg.TopN,
	}
}

// Handle executes the analysis. Validation failures are returned as *application.ValidationError.
func (h *AnalyzeTasksHandler) Handle(ctx context.Context, cmd AnalyzeTasksCommand) (*AnalyzeTasksResult, error) {
	strategy := h.resolveStrategy(ctx, cmd.Strategy)
	tags := []observability.Tag{observability.T("strategy", strategy.String())}
	h.metrics.Counter(observability.MetricRankingRequests, 1, tags...)

	tasks, err := application.ValidateTasks(cmd.Tasks)
	if err != nil {
		h.metrics.Counter(observability.MetricRankingFailures, 1, tags...)
		h.logger.InfoContext(ctx, "rejected task set", "tasks", len(cmd.Tasks), "error", err)
		return nil, err
	}

	timer := observability.StartTimer("rank_tasks", observability.MetricRankingDuration).
		WithLogger(h.logger).
		WithMetrics(h.metrics).
		WithTags(tags...)
	ranking, err := h.ranker.Rank(tasks, strategy)
	timer.Stop(err)
	if err != nil {
		h.metrics.Counter(observability.MetricRankingFailures, 1, tags...)
		return nil, err
	}

	h.metrics.Histogram(observability.MetricRankingTasks, float64(len(tasks)), tags...)
	h.metrics.Histogram(observability.MetricRankingCyclicTasks, float64(len(ranking.Cyclic)), tags...)

	result := &AnalyzeTasksResult{
		AnalysisID: uuid.New(),
		Strategy:   strategy.String(),
		Tasks:      make([]application.ScoredTaskDTO, 0, len(ranking.Tasks)),
		CyclicIDs:  make([]int64, 0, len(ranking.Cyclic)),
	}
	for _, st := range ranking.Tasks {
		result.Tasks = append(result.Tasks, application.ToScoredTaskDTO(st, ranking.Urgency(st.Task)))
	}
	for _, id := range ranking.Cyclic.IDs() {
		result.CyclicIDs = append(result.CyclicIDs, int64(id))
	}

	h.logger.InfoContext(ctx, "ranked tasks",
		"analysis_id", result.AnalysisID,
		"strategy", result.Strategy,
		"tasks", len(result.Tasks),
		"cyclic", len(result.CyclicIDs),
	)

	h.announce(ctx, result.AnalysisID, ranking)

	return result, nil
}

func (h *AnalyzeTasksHandler) resolveStrategy(ctx context.Context, name string) domain.Strategy {
	if name == "" {
		return h.defaultStrategy
	}
	strategy, ok := domain.ParseStrategy(name)
	if !ok {
		h.logger.DebugContext(ctx, "unknown strategy, using default",
			"requested", name,
			"strategy", h.defaultStrategy.String(),
		)
		return h.defaultStrategy
	}
	return strategy
}

// announce publishes the ranked event. Failures are logged and never fail the analysis.
func (h *AnalyzeTasksHandler) announce(ctx context.Context, analysisID uuid.UUID, ranking *services.Ranking) {
	event := domain.NewTasksRanked(analysisID, ranking.Strategy, ranking.Tasks, ranking.Cyclic, h.topN)
	sharedApplication.ApplyEventMetadata([]sharedDomain.DomainEvent{&event}, sharedApplication.EventMetadataFromContext(ctx))

	if err := eventbus.PublishEvent(ctx, h.publisher, event); err != nil {
		h.metrics.Counter(observability.MetricEventsFailed, 1)
		h.logger.WarnContext(ctx, "failed to publish ranked event",
			"analysis_id", analysisID,
			"error", err,
		)
		return
	}
	h.metrics.Counter(observability.MetricEventsPublished, 1)
}
