package models

import "time"

const (
	StatusPending  = "Pending"
	StatusFinished = "Finished"
)

const (
	MinPriority = 1
	MaxPriority = 5
)

type Task struct {
	ID        string    `yaml:"id"`
	UserID    string    `yaml:"user_id"`
	Title     string    `yaml:"title"`
	Priority  int       `yaml:"priority"`
	Status    string    `yaml:"status"`
	StartTime time.Time `yaml:"start_time"`
	EndTime   time.Time `yaml:"end_time"`
	CreatedAt time.Time `yaml:"created_at"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

func (t *Task) IsFinished() bool {
	return t.Status == StatusFinished
}

func IsValidStatus(status string) bool {
	return status == StatusPending || status == StatusFinished
}

func IsValidPriority(priority int) bool {
	return priority >= MinPriority && priority <= MaxPriority
}
