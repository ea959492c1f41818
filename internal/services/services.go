package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/adanyl0v/taskboard/internal/dashboard"
	"github.com/adanyl0v/taskboard/internal/models"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrUserPasswordMismatch = errors.New("user password mismatch")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionExpired       = errors.New("session expired")

	ErrTaskNotFound          = errors.New("task not found")
	ErrSomeTasksNotFound     = errors.New("some tasks were not found")
	ErrInvalidTaskTitle      = errors.New("task title is required")
	ErrInvalidTaskPriority   = errors.New("task priority must be between 1 and 5")
	ErrInvalidTaskStatus     = errors.New("task status must be one of 'Pending' or 'Finished'")
	ErrInvalidTaskTimeWindow = errors.New("end time should be after start time")
)

type AuthService interface {
	// Login authenticates the user by email and password.
	//
	// It deletes all sessions with the same user ID and creates
	// a new session and generates a new JWT token pair.
	//
	// It returns ErrUserNotFound if the user with the given
	// email doesn't exist or ErrUserPasswordMismatch if the
	// given password doesn't match the user's password.
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)

	// Refresh updates the session with the given refresh token.
	//
	// It returns ErrSessionNotFound if the session with the
	// given refresh token doesn't exist or ErrSessionExpired
	// if the session is expired.
	Refresh(ctx context.Context, params RefreshParams) (*LoginResult, error)

	// Register a user with the given email and password.
	//
	// It hashes the password, generates a unique ID and creates a
	// session with the given fingerprint and a fresh JWT token pair.
	//
	// It returns ErrUserAlreadyExists if the user
	// with the given email already exists.
	Register(ctx context.Context, params LoginParams) (*LoginResult, error)

	// Logout invalidates all sessions with the given user ID.
	Logout(ctx context.Context, userID string) error

	// ParseJWTToken parses the given JWT token and returns the registered
	// claims or jwt.ErrTokenExpired if the token is expired.
	ParseJWTToken(token string) (*jwt.RegisteredClaims, error)
}

type SessionService interface {
	// GetSessionByID returns ErrSessionNotFound if there is no session
	// with the given ID or ErrSessionExpired if it is expired.
	GetSessionByID(ctx context.Context, sessionID string) (*models.Session, error)
}

type TaskService interface {
	// CreateTask validates and stores a new task of the task owner.
	// A zero start time defaults to the creation time.
	CreateTask(ctx context.Context, task *models.Task) (*models.Task, error)

	// GetTasksByUserID returns a page of the user's tasks, newest first,
	// or ErrTaskNotFound if the page is empty.
	GetTasksByUserID(ctx context.Context, userID string, offset, limit uint32) ([]*models.Task, error)

	// GetAllTasksByUserID returns every task of the user. An empty
	// result is not an error.
	GetAllTasksByUserID(ctx context.Context, userID string) ([]*models.Task, error)

	UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error)
	UpdateTaskStatus(ctx context.Context, params UpdateTaskStatusParams) (*models.Task, error)
	DeleteTask(ctx context.Context, params DeleteTaskParams) error

	// DeleteTasks deletes every listed task that belongs to the user and
	// returns ErrSomeTasksNotFound if any of them didn't exist.
	DeleteTasks(ctx context.Context, params DeleteTasksParams) error
}

type DashboardService interface {
	GetDashboard(ctx context.Context, userID string) (*DashboardResult, error)
}

type LoginParams struct {
	Email       string
	Password    string
	Fingerprint string
}

type LoginResult struct {
	UserID                string
	SessionID             string
	AccessToken           string
	AccessTokenExpiresAt  time.Time
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
}

type RefreshParams struct {
	RefreshToken string
	Fingerprint  string
}

// UpdateTaskParams describes a partial update. Nil fields are left as is.
type UpdateTaskParams struct {
	ID        string
	UserID    string
	Title     *string
	Priority  *int
	Status    *string
	StartTime *time.Time
	EndTime   *time.Time
}

type UpdateTaskStatusParams struct {
	ID     string
	UserID string
	Status string
}

type DeleteTaskParams struct {
	ID     string
	UserID string
}

type DeleteTasksParams struct {
	IDs    []string
	UserID string
}

type DashboardResult struct {
	Tasks   []*models.Task
	Summary dashboard.Summary
}
