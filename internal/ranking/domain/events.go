package domain

import (
	shared "github.com/felixgeelhaar/taskrank/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	AggregateType = "Ranking"

	RoutingKeyTasksRanked = "ranking.tasks.ranked"
)

// TasksRanked is emitted after a task set has been ranked.
type TasksRanked struct {
	shared.BaseEvent
	Strategy  string   `json:"strategy"`
	TaskCount int      `json:"task_count"`
	CyclicIDs []TaskID `json:"cyclic_ids"`
	TopTitles []string `json:"top_titles"`
}

// NewTasksRanked creates a TasksRanked event for the analysis identified by analysisID.
func NewTasksRanked(analysisID uuid.UUID, strategy Strategy, ranked []ScoredTask, cyclic CyclicSet, topN int) TasksRanked {
	top := Top(ranked, topN)
	titles := make([]string, 0, len(top))
	for _, t := range top {
		titles = append(titles, t.Title)
	}

	return TasksRanked{
		BaseEvent: shared.NewBaseEvent(analysisID, AggregateType, RoutingKeyTasksRanked),
		Strategy:  strategy.String(),
		TaskCount: len(ranked),
		CyclicIDs: cyclic.IDs(),
		TopTitles: titles,
	}
}
