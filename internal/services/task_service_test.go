package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/taskboard/internal/models"
)

// Every case here is rejected before the database is touched, so the
// service runs without a pool.
func newValidationOnlyTaskService() *taskServiceImpl {
	return &taskServiceImpl{
		logger: zerolog.Nop(),
		now: func() time.Time {
			return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
		},
	}
}

func TestCreateTask_Validation(t *testing.T) {
	start := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	valid := models.Task{
		UserID:    "user",
		Title:     "Write report",
		Priority:  3,
		Status:    models.StatusPending,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	}

	tests := []struct {
		name   string
		mutate func(*models.Task)
		want   error
	}{
		{name: "blank title", mutate: func(task *models.Task) { task.Title = "   " }, want: ErrInvalidTaskTitle},
		{name: "priority too low", mutate: func(task *models.Task) { task.Priority = 0 }, want: ErrInvalidTaskPriority},
		{name: "priority too high", mutate: func(task *models.Task) { task.Priority = 6 }, want: ErrInvalidTaskPriority},
		{name: "unknown status", mutate: func(task *models.Task) { task.Status = "Done" }, want: ErrInvalidTaskStatus},
		{name: "end before start", mutate: func(task *models.Task) { task.EndTime = start.Add(-time.Minute) }, want: ErrInvalidTaskTimeWindow},
		// The start time defaults to now (2024-05-01 09:00), after this end.
		{name: "default start after end", mutate: func(task *models.Task) {
			task.StartTime = time.Time{}
			task.EndTime = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
		}, want: ErrInvalidTaskTimeWindow},
	}

	s := newValidationOnlyTaskService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := valid
			tt.mutate(&task)

			created, err := s.CreateTask(context.Background(), &task)

			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, created)
		})
	}
}

func TestValidateTask_AcceptsZeroLengthWindow(t *testing.T) {
	at := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	task := &models.Task{
		Title:     "Call",
		Priority:  models.MinPriority,
		Status:    models.StatusFinished,
		StartTime: at,
		EndTime:   at,
	}

	assert.NoError(t, validateTask(task))
}

func TestApplyTaskUpdate(t *testing.T) {
	start := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	task := &models.Task{
		Title:     "Old",
		Priority:  1,
		Status:    models.StatusPending,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	}

	title := "  New  "
	priority := 4
	end := start.Add(3 * time.Hour)
	applyTaskUpdate(task, UpdateTaskParams{
		Title:    &title,
		Priority: &priority,
		EndTime:  &end,
	})

	assert.Equal(t, "New", task.Title)
	assert.Equal(t, 4, task.Priority)
	assert.Equal(t, models.StatusPending, task.Status)
	assert.Equal(t, start, task.StartTime)
	assert.Equal(t, end, task.EndTime)
}

func TestTaskService_RejectsMalformedIDs(t *testing.T) {
	s := newValidationOnlyTaskService()
	ctx := context.Background()

	_, err := s.UpdateTask(ctx, UpdateTaskParams{ID: "42", UserID: "user"})
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, err = s.UpdateTaskStatus(ctx, UpdateTaskStatusParams{ID: "42", UserID: "user", Status: models.StatusFinished})
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, err = s.UpdateTaskStatus(ctx, UpdateTaskStatusParams{ID: "42", UserID: "user", Status: "archived"})
	assert.ErrorIs(t, err, ErrInvalidTaskStatus)

	err = s.DeleteTask(ctx, DeleteTaskParams{ID: "not-a-uuid", UserID: "user"})
	assert.ErrorIs(t, err, ErrTaskNotFound)

	err = s.DeleteTasks(ctx, DeleteTasksParams{IDs: []string{"x", "y"}, UserID: "user"})
	assert.ErrorIs(t, err, ErrSomeTasksNotFound)

	err = s.DeleteTasks(ctx, DeleteTasksParams{UserID: "user"})
	assert.NoError(t, err)
}

func TestUniqueTaskIDs(t *testing.T) {
	const id = "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b"

	ids, ok := uniqueTaskIDs([]string{id, "bogus", id, "0190A1B2-C3D4-7E5F-8A9B-0C1D2E3F4A5B"})

	require.False(t, ok)
	assert.Equal(t, []string{id}, ids)
}
