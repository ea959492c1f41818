package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskboard/internal/dashboard"
	"github.com/adanyl0v/taskboard/internal/models"
)

// TaskLister supplies every task of a single user.
type TaskLister interface {
	GetAllTasksByUserID(ctx context.Context, userID string) ([]*models.Task, error)
}

type dashboardServiceImpl struct {
	logger zerolog.Logger
	tasks  TaskLister
	now    func() time.Time
}

// NewDashboardService returns a DashboardService that reads the current
// time from now, or from time.Now if now is nil.
func NewDashboardService(
	logger zerolog.Logger,
	tasks TaskLister,
	now func() time.Time,
) DashboardService {
	if now == nil {
		now = time.Now
	}
	return &dashboardServiceImpl{
		logger: logger,
		tasks:  tasks,
		now:    now,
	}
}

func (s *dashboardServiceImpl) GetDashboard(ctx context.Context, userID string) (*DashboardResult, error) {
	tasks, err := s.tasks.GetAllTasksByUserID(ctx, userID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to get tasks for dashboard")
		return nil, err
	}

	summary := dashboard.Compute(tasks, s.now())
	s.logger.Debug().
		Str("user_id", userID).
		Int("total", summary.TotalTaskCount).
		Int("finished", summary.FinishedTaskCount).
		Int("pending", summary.PendingTaskCount).
		Msg("computed dashboard")

	s.logger.Info().
		Str("user_id", userID).
		Msg("built dashboard")
	return &DashboardResult{
		Tasks:   tasks,
		Summary: summary,
	}, nil
}
