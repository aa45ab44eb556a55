package domain

import (
	"errors"
	"time"
)

var (
	ErrMissingField = errors.New("required task field is missing")
)

// TaskID identifies a task within a single ranking request.
type TaskID int64

// Task is a unit of work submitted for ranking.
// A nil ID means the task takes no part in dependency weighting or cycle detection.
// EstimatedHours and Importance must be positive; the ranker treats zero or below as unset.
type Task struct {
	ID             *TaskID   `json:"id,omitempty"`
	Title          string    `json:"title"`
	DueDate        time.Time `json:"due_date"`
	EstimatedHours float64   `json:"estimated_hours"`
	Importance     int       `json:"importance"`
	Dependencies   []TaskID  `json:"dependencies"`
}

// HasID reports whether the task carries an identifier.
func (t Task) HasID() bool {
	return t.ID != nil
}

// ScoredTask is a task together with its computed score and explanation.
type ScoredTask struct {
	Task
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
}

// NewTaskID returns a pointer to id, for building tasks inline.
func NewTaskID(id int64) *TaskID {
	tid := TaskID(id)
	return &tid
}
