package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskboard/internal/models"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
	now    func() time.Time
}

func NewTaskService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		pgPool: pgPool,
		now:    time.Now,
	}
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, task *models.Task) (*models.Task, error) {
	now := s.now()
	task = &models.Task{
		UserID:    task.UserID,
		Title:     strings.TrimSpace(task.Title),
		Priority:  task.Priority,
		Status:    task.Status,
		StartTime: task.StartTime,
		EndTime:   task.EndTime,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if task.StartTime.IsZero() {
		task.StartTime = now
	}

	err := validateTask(task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", task.UserID).
			Msg("invalid task")
		return nil, err
	}

	taskUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate task uuid")
		return nil, err
	}
	task.ID = taskUUID.String()

	const insertTaskQuery = `
INSERT INTO tasks (id,
                   user_id,
                   title,
                   priority,
                   status,
                   start_time,
                   end_time,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`
	_, err = s.pgPool.Exec(
		ctx,
		insertTaskQuery,
		task.ID,
		task.UserID,
		task.Title,
		task.Priority,
		task.Status,
		task.StartTime,
		task.EndTime,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		if hasPgErrorCode(err, pgerrcode.ForeignKeyViolation) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	s.logger.Debug().
		Str("task_id", task.ID).
		Int("priority", task.Priority).
		Str("status", task.Status).
		Msg("inserted task")

	s.logger.Info().
		Str("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) GetTasksByUserID(ctx context.Context, userID string, offset, limit uint32) ([]*models.Task, error) {
	if limit == 0 {
		// 32 is just a random number.
		limit = 32
	}

	const selectTaskByUserIDQuery = `
SELECT id,
       title,
       priority,
       status,
       start_time,
       end_time,
       created_at,
       updated_at
FROM tasks
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`
	tasks, err := s.queryTasks(ctx, userID, selectTaskByUserIDQuery, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	if len(tasks) == 0 {
		s.logger.Info().
			Str("user_id", userID).
			Msg("no tasks found")
		return nil, ErrTaskNotFound
	}

	s.logger.Info().
		Int("count", len(tasks)).
		Str("user_id", userID).
		Msg("tasks found")
	return tasks, nil
}

func (s *taskServiceImpl) GetAllTasksByUserID(ctx context.Context, userID string) ([]*models.Task, error) {
	const selectAllTasksByUserIDQuery = `
SELECT id,
       title,
       priority,
       status,
       start_time,
       end_time,
       created_at,
       updated_at
FROM tasks
WHERE user_id = $1
ORDER BY created_at DESC
`
	tasks, err := s.queryTasks(ctx, userID, selectAllTasksByUserIDQuery, userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("count", len(tasks)).
		Str("user_id", userID).
		Msg("tasks found")
	return tasks, nil
}

func (s *taskServiceImpl) queryTasks(ctx context.Context, userID, query string, args ...any) ([]*models.Task, error) {
	rows, err := s.pgPool.Query(ctx, query, args...)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select tasks by user id")
		return nil, err
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task := &models.Task{UserID: userID}
		err = rows.Scan(
			&task.ID,
			&task.Title,
			&task.Priority,
			&task.Status,
			&task.StartTime,
			&task.EndTime,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, err
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Str("user_id", userID).
		Msg("selected tasks by user id")

	return tasks, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	if !isValidTaskID(params.ID) {
		return nil, ErrTaskNotFound
	}

	tx, err := s.pgPool.Begin(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	task := &models.Task{
		ID:     params.ID,
		UserID: params.UserID,
	}

	const selectTaskForUpdateQuery = `
SELECT title,
       priority,
       status,
       start_time,
       end_time,
       created_at
FROM tasks
WHERE id = $1 AND user_id = $2
FOR UPDATE
`
	err = tx.QueryRow(
		ctx,
		selectTaskForUpdateQuery,
		task.ID,
		task.UserID,
	).Scan(
		&task.Title,
		&task.Priority,
		&task.Status,
		&task.StartTime,
		&task.EndTime,
		&task.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error().
				Str("task_id", task.ID).
				Str("user_id", task.UserID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to select task")
		return nil, err
	}

	applyTaskUpdate(task, params)
	task.UpdatedAt = s.now()

	err = validateTask(task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("invalid task update")
		return nil, err
	}

	const updateTaskQuery = `
UPDATE tasks
SET title = $1,
    priority = $2,
    status = $3,
    start_time = $4,
    end_time = $5,
    updated_at = $6
WHERE id = $7
`
	_, err = tx.Exec(
		ctx,
		updateTaskQuery,
		task.Title,
		task.Priority,
		task.Status,
		task.StartTime,
		task.EndTime,
		task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to update task")
		return nil, err
	}

	err = tx.Commit(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to commit transaction")
		return nil, err
	}
	s.logger.Debug().
		Str("task_id", task.ID).
		Msg("updated task")

	s.logger.Info().
		Str("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) UpdateTaskStatus(ctx context.Context, params UpdateTaskStatusParams) (*models.Task, error) {
	if !models.IsValidStatus(params.Status) {
		return nil, ErrInvalidTaskStatus
	}
	if !isValidTaskID(params.ID) {
		return nil, ErrTaskNotFound
	}

	task := &models.Task{
		ID:        params.ID,
		UserID:    params.UserID,
		Status:    params.Status,
		UpdatedAt: s.now(),
	}

	const updateTaskStatusQuery = `
UPDATE tasks
SET status = $1,
    updated_at = $2
WHERE id = $3 AND user_id = $4
RETURNING title, priority, start_time, end_time, created_at
`
	err := s.pgPool.QueryRow(
		ctx,
		updateTaskStatusQuery,
		task.Status,
		task.UpdatedAt,
		task.ID,
		task.UserID,
	).Scan(
		&task.Title,
		&task.Priority,
		&task.StartTime,
		&task.EndTime,
		&task.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error().
				Str("task_id", task.ID).
				Str("user_id", task.UserID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to update task status")
		return nil, err
	}
	s.logger.Debug().
		Str("task_id", task.ID).
		Str("status", task.Status).
		Msg("updated task status")

	s.logger.Info().
		Str("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("updated task status")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, params DeleteTaskParams) error {
	if !isValidTaskID(params.ID) {
		return ErrTaskNotFound
	}

	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1 AND user_id = $2
`
	tag, err := s.pgPool.Exec(
		ctx,
		deleteTaskQuery,
		params.ID,
		params.UserID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", params.ID).
			Msg("failed to delete task")
		return err
	}
	if tag.RowsAffected() == 0 {
		s.logger.Error().
			Str("task_id", params.ID).
			Str("user_id", params.UserID).
			Msg("task not found")
		return ErrTaskNotFound
	}
	s.logger.Debug().
		Str("task_id", params.ID).
		Msg("deleted task")

	s.logger.Info().
		Str("task_id", params.ID).
		Str("user_id", params.UserID).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) DeleteTasks(ctx context.Context, params DeleteTasksParams) error {
	ids, ok := uniqueTaskIDs(params.IDs)
	if len(ids) == 0 {
		if !ok {
			return ErrSomeTasksNotFound
		}
		return nil
	}

	const deleteTasksQuery = `
DELETE FROM tasks
WHERE user_id = $1 AND id = ANY($2::uuid[])
`
	tag, err := s.pgPool.Exec(
		ctx,
		deleteTasksQuery,
		params.UserID,
		ids,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", params.UserID).
			Int("count", len(ids)).
			Msg("failed to delete tasks")
		return err
	}
	s.logger.Debug().
		Str("user_id", params.UserID).
		Int64("affected", tag.RowsAffected()).
		Msg("deleted tasks")

	if !ok || tag.RowsAffected() != int64(len(ids)) {
		s.logger.Error().
			Str("user_id", params.UserID).
			Int("requested", len(params.IDs)).
			Int64("deleted", tag.RowsAffected()).
			Msg("some tasks were not found")
		return ErrSomeTasksNotFound
	}

	s.logger.Info().
		Str("user_id", params.UserID).
		Int64("count", tag.RowsAffected()).
		Msg("deleted tasks")
	return nil
}

func validateTask(task *models.Task) error {
	switch {
	case strings.TrimSpace(task.Title) == "":
		return ErrInvalidTaskTitle
	case !models.IsValidPriority(task.Priority):
		return ErrInvalidTaskPriority
	case !models.IsValidStatus(task.Status):
		return ErrInvalidTaskStatus
	case task.EndTime.Before(task.StartTime):
		return ErrInvalidTaskTimeWindow
	}
	return nil
}

func hasPgErrorCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

func applyTaskUpdate(task *models.Task, params UpdateTaskParams) {
	if params.Title != nil {
		task.Title = strings.TrimSpace(*params.Title)
	}
	if params.Priority != nil {
		task.Priority = *params.Priority
	}
	if params.Status != nil {
		task.Status = *params.Status
	}
	if params.StartTime != nil {
		task.StartTime = *params.StartTime
	}
	if params.EndTime != nil {
		task.EndTime = *params.EndTime
	}
}

func isValidTaskID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// uniqueTaskIDs drops duplicates and reports false if any id is malformed.
func uniqueTaskIDs(ids []string) ([]string, bool) {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	ok := true
	for _, id := range ids {
		parsed, err := uuid.Parse(id)
		if err != nil {
			ok = false
			continue
		}
		key := parsed.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, key)
	}
	return unique, ok
}
