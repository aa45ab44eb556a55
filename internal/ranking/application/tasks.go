package application

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/felixgeelhaar/taskrank/internal/ranking/domain"
)

// DateLayout is the calendar date format accepted for due dates.
const DateLayout = "2006-01-02"

const (
	minImportance = 1
	maxImportance = 10
)

var (
	ErrInvalidTasks = errors.New("invalid tasks")
)

// TaskInput is a task as submitted by a caller, before validation.
// Pointer fields distinguish "absent" from a zero value.
type TaskInput struct {
	ID             *int64   `json:"id,omitempty"`
	Title          string   `json:"title"`
	DueDate        *string  `json:"due_date"`
	EstimatedHours *float64 `json:"estimated_hours"`
	Importance     *int     `json:"importance"`
	Dependencies   []int64  `json:"dependencies,omitempty"`
}

// FieldErrors maps a field name to the problems found with it.
type FieldErrors map[string][]string

func (f FieldErrors) add(field, msg string) {
	f[field] = append(f[field], msg)
}

// ValidationError reports invalid tasks. Tasks is index-aligned with the input;
// valid tasks have an empty entry.
type ValidationError struct {
	Tasks []FieldErrors `json:"tasks"`
}

func (e *ValidationError) Error() string {
	var parts []string
	for i, fields := range e.Tasks {
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			parts = append(parts, fmt.Sprintf("task %d: %s: %s", i, name, strings.Join(fields[name], ", ")))
		}
	}
	return fmt.Sprintf("%s: %s", ErrInvalidTasks, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidTasks
}

// ValidateTasks checks submitted tasks and converts them to domain tasks.
// All problems across all tasks are reported together.
func ValidateTasks(inputs []TaskInput) ([]domain.Task, error) {
	tasks := make([]domain.Task, len(inputs))
	report := &ValidationError{Tasks: make([]FieldErrors, len(inputs))}
	invalid := false

	for i, in := range inputs {
		fields := FieldErrors{}
		report.Tasks[i] = fields

		t := domain.Task{
			Title:        in.Title,
			Dependencies: make([]domain.TaskID, 0, len(in.Dependencies)),
		}
		if in.ID != nil {
			t.ID = domain.NewTaskID(*in.ID)
		}
		for _, dep := range in.Dependencies {
			t.Dependencies = append(t.Dependencies, domain.TaskID(dep))
		}

		if strings.TrimSpace(in.Title) == "" {
			fields.add("title", "This field may not be blank.")
		}

		switch {
		case in.DueDate == nil:
			fields.add("due_date", "This field is required.")
		default:
			due, err := time.Parse(DateLayout, *in.DueDate)
			if err != nil {
				fields.add("due_date", "Date has wrong format. Use YYYY-MM-DD.")
			}
			t.DueDate = due
		}

		switch {
		case in.EstimatedHours == nil:
			fields.add("estimated_hours", "This field is required.")
		case *in.EstimatedHours <= 0:
			fields.add("estimated_hours", "Estimated hours must be > 0")
		default:
			t.EstimatedHours = *in.EstimatedHours
		}

		switch {
		case in.Importance == nil:
			fields.add("importance", "This field is required.")
		case *in.Importance < minImportance:
			fields.add("importance", fmt.Sprintf("Ensure this value is greater than or equal to %d.", minImportance))
		case *in.Importance > maxImportance:
			fields.add("importance", fmt.Sprintf("Ensure this value is less than or equal to %d.", maxImportance))
		default:
			t.Importance = *in.Importance
		}

		if len(fields) > 0 {
			invalid = true
		}
		tasks[i] = t
	}

	if invalid {
		return nil, report
	}
	return tasks, nil
}

// ScoredTaskDTO is the presentation form of a ranked task.
type ScoredTaskDTO struct {
	ID             *int64  `json:"id,omitempty"`
	Title          string  `json:"title"`
	DueDate        string  `json:"due_date"`
	EstimatedHours float64 `json:"estimated_hours"`
	Importance     int     `json:"importance"`
	Dependencies   []int64 `json:"dependencies"`
	Score          float64 `json:"score"`
	Explanation    string  `json:"explanation"`
	Band           string  `json:"band"`
	Quadrant       string  `json:"quadrant"`
}

// ToScoredTaskDTO converts a ranked task. urgency is the task's urgency score in its ranking.
func ToScoredTaskDTO(st domain.ScoredTask, urgency float64) ScoredTaskDTO {
	dto := ScoredTaskDTO{
		Title:          st.Title,
		DueDate:        st.DueDate.Format(DateLayout),
		EstimatedHours: st.EstimatedHours,
		Importance:     st.Importance,
		Dependencies:   make([]int64, 0, len(st.Dependencies)),
		Score:          st.Score,
		Explanation:    st.Explanation,
		Band:           string(domain.BandFor(st.Score)),
		Quadrant:       string(domain.QuadrantFor(st.Importance, urgency)),
	}
	if st.ID != nil {
		id := int64(*st.ID)
		dto.ID = &id
	}
	for _, dep := range st.Dependencies {
		dto.Dependencies = append(dto.Dependencies, int64(dep))
	}
	return dto
}
