package application_test

import (
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/taskrank/internal/ranking/application"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func validInput() application.TaskInput {
	return application.TaskInput{
		ID:             ptr(int64(1)),
		Title:          "Write report",
		DueDate:        ptr("2025-06-04"),
		EstimatedHours: ptr(2.5),
		Importance:     ptr(7),
		Dependencies:   []int64{2, 3},
	}
}

func TestValidateTasks(t *testing.T) {
	t.Run("converts valid input", func(t *testing.T) {
		tasks, err := application.ValidateTasks([]application.TaskInput{validInput()})
		require.NoError(t, err)
		require.Len(t, tasks, 1)

		tk := tasks[0]
		require.NotNil(t, tk.ID)
		assert.Equal(t, domain.TaskID(1), *tk.ID)
		assert.Equal(t, "Write report", tk.Title)
		assert.Equal(t, time.Date(2025, time.June, 4, 0, 0, 0, 0, time.UTC), tk.DueDate)
		assert.Equal(t, 2.5, tk.EstimatedHours)
		assert.Equal(t, 7, tk.Importance)
		assert.Equal(t, []domain.TaskID{2, 3}, tk.Dependencies)
	})

	t.Run("id and dependencies are optional", func(t *testing.T) {
		in := validInput()
		in.ID = nil
		in.Dependencies = nil

		tasks, err := application.ValidateTasks([]application.TaskInput{in})
		require.NoError(t, err)

		assert.Nil(t, tasks[0].ID)
		assert.NotNil(t, tasks[0].Dependencies)
		assert.Empty(t, tasks[0].Dependencies)
	})

	t.Run("empty input is valid", func(t *testing.T) {
		tasks, err := application.ValidateTasks(nil)
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("reports every problem per task", func(t *testing.T) {
		bad := application.TaskInput{Title: "  "}
		outOfRange := validInput()
		outOfRange.Importance = ptr(11)
		outOfRange.EstimatedHours = ptr(0.0)
		badDate := validInput()
		badDate.DueDate = ptr("04/06/2025")
		lowImportance := validInput()
		lowImportance.Importance = ptr(0)

		_, err := application.ValidateTasks([]application.TaskInput{validInput(), bad, outOfRange, badDate, lowImportance})
		require.Error(t, err)
		assert.True(t, errors.Is(err, application.ErrInvalidTasks))

		var verr *application.ValidationError
		require.True(t, errors.As(err, &verr))
		require.Len(t, verr.Tasks, 5)

		assert.Empty(t, verr.Tasks[0])
		assert.ElementsMatch(t, []string{"title", "due_date", "estimated_hours", "importance"}, keys(verr.Tasks[1]))
		assert.Equal(t, []string{"This field is required."}, verr.Tasks[1]["importance"])
		assert.Equal(t, []string{"Ensure this value is less than or equal to 10."}, verr.Tasks[2]["importance"])
		assert.Equal(t, []string{"Estimated hours must be > 0"}, verr.Tasks[2]["estimated_hours"])
		assert.Contains(t, verr.Tasks[3], "due_date")
		assert.Equal(t, []string{"Ensure this value is greater than or equal to 1."}, verr.Tasks[4]["importance"])

		assert.Contains(t, err.Error(), "task 2: importance")
	})
}

func keys(m application.FieldErrors) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestToScoredTaskDTO(t *testing.T) {
	st := domain.ScoredTask{
		Task: domain.Task{
			ID:             domain.NewTaskID(4),
			Title:          "Ship",
			DueDate:        time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
			EstimatedHours: 1,
			Importance:     8,
			Dependencies:   []domain.TaskID{1},
		},
		Score:       51,
		Explanation: "Importance 8; Estimated 1h",
	}

	dto := application.ToScoredTaskDTO(st, 20)

	require.NotNil(t, dto.ID)
	assert.Equal(t, int64(4), *dto.ID)
	assert.Equal(t, "2025-06-02", dto.DueDate)
	assert.Equal(t, []int64{1}, dto.Dependencies)
	assert.Equal(t, 51.0, dto.Score)
	assert.Equal(t, "high", dto.Band)
	assert.Equal(t, "do", dto.Quadrant)

	st.ID = nil
	st.Dependencies = nil
	dto = application.ToScoredTaskDTO(st, 0)
	assert.Nil(t, dto.ID)
	assert.NotNil(t, dto.Dependencies)
	assert.Equal(t, "schedule", dto.Quadrant)
}
