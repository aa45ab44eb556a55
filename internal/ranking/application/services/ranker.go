package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/felixgeelhaar/taskrank/internal/ranking/domain"
)

// Ranking is the outcome of ranking one task set.
type Ranking struct {
	Tasks       []domain.ScoredTask
	Strategy    domain.Strategy
	Weights     domain.DependencyWeights
	Cyclic      domain.CyclicSet
	EvaluatedAt time.Time
}

// Urgency returns the urgency score a task had in this ranking.
func (r *Ranking) Urgency(t domain.Task) float64 {
	return domain.UrgencyScore(t.DueDate, r.EvaluatedAt)
}

// Ranker scores a task set and orders it by descending score.
// It keeps no state between calls and is safe for concurrent use.
type Ranker struct {
	now func() time.Time
}

// RankerOption configures a Ranker.
type RankerOption func(*Ranker)

// WithClock sets the source of the evaluation date.
func WithClock(now func() time.Time) RankerOption {
	return func(r *Ranker) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRanker creates a ranker evaluating urgency against the current date.
func NewRanker(opts ...RankerOption) *Ranker {
	r := &Ranker{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rank scores every task under strategy and returns them sorted by score, highest first.
// Tasks with equal scores keep their input order. The input slice is not modified.
func (r *Ranker) Rank(tasks []domain.Task, strategy domain.Strategy) (*Ranking, error) {
	for i, t := range tasks {
		if err := checkRequired(i, t); err != nil {
			return nil, err
		}
	}

	evaluatedAt := r.now()
	weights := domain.BuildDependencyWeights(tasks)
	cyclic := domain.DetectCycles(tasks)

	scored := make([]domain.ScoredTask, 0, len(tasks))
	for _, t := range tasks {
		dependencyWeight := 0.0
		if t.ID != nil {
			dependencyWeight = float64(weights.BlocksCount(*t.ID)) * domain.BlockWeight
		}

		score := domain.Compose(domain.ScoreInputs{
			Importance:       t.Importance,
			EstimatedHours:   t.EstimatedHours,
			Urgency:          domain.UrgencyScore(t.DueDate, evaluatedAt),
			Effort:           domain.EffortScore(t.EstimatedHours),
			DependencyWeight: dependencyWeight,
			Cyclic:           cyclic.ContainsTask(t),
			Strategy:         strategy,
		})

		scored = append(scored, domain.ScoredTask{
			Task:        copyTask(t),
			Score:       score.Value,
			Explanation: score.Explanation,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return &Ranking{
		Tasks:       scored,
		Strategy:    strategy,
		Weights:     weights,
		Cyclic:      cyclic,
		EvaluatedAt: evaluatedAt,
	}, nil
}

// checkRequired rejects tasks whose required fields were never set. Hours and importance
// count as absent when zero or negative, so a negative estimate never reaches the effort model.
func checkRequired(index int, t domain.Task) error {
	var field string
	switch {
	case t.DueDate.IsZero():
		field = "due_date"
	case t.EstimatedHours <= 0:
		field = "estimated_hours"
	case t.Importance <= 0:
		field = "importance"
	default:
		return nil
	}
	return fmt.Errorf("task %d (%q): %s: %w", index, t.Title, field, domain.ErrMissingField)
}

func copyTask(t domain.Task) domain.Task {
	if t.ID != nil {
		id := *t.ID
		t.ID = &id
	}
	if t.Dependencies != nil {
		t.Dependencies = append([]domain.TaskID(nil), t.Dependencies...)
	}
	return t
}
