// Package dashboard turns a user's task collection into completion and
// workload statistics.
package dashboard

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/adanyl0v/taskboard/internal/models"
)

// Bucket aggregates the pending tasks of one priority level.
type Bucket struct {
	PendingCount  int   `json:"pending_count" yaml:"pending_count"`
	HoursLapsed   int64 `json:"hours_lapsed" yaml:"hours_lapsed"`
	HoursToFinish int64 `json:"hours_to_finish" yaml:"hours_to_finish"`
}

// Breakdown holds one bucket per priority level. Slot i belongs to
// priority i+1, so every level is always present.
type Breakdown [models.MaxPriority]Bucket

// Get returns the bucket for the given priority level.
func (b Breakdown) Get(priority int) Bucket {
	return b[priority-models.MinPriority]
}

func (b *Breakdown) at(priority int) *Bucket {
	return &b[priority-models.MinPriority]
}

// ByPriority returns the breakdown keyed by priority level.
func (b Breakdown) ByPriority() map[int]Bucket {
	m := make(map[int]Bucket, len(b))
	for i, bucket := range b {
		m[i+models.MinPriority] = bucket
	}
	return m
}

func (b Breakdown) MarshalJSON() ([]byte, error) {
	m := make(map[string]Bucket, len(b))
	for priority, bucket := range b.ByPriority() {
		m[strconv.Itoa(priority)] = bucket
	}
	return json.Marshal(m)
}

func (b Breakdown) MarshalYAML() (any, error) {
	return b.ByPriority(), nil
}

type Summary struct {
	TotalTaskCount               int       `json:"total_task_count" yaml:"total_task_count"`
	FinishedTaskCount            int       `json:"finished_task_count" yaml:"finished_task_count"`
	PendingTaskCount             int       `json:"pending_task_count" yaml:"pending_task_count"`
	CompletedTaskPercentage      int       `json:"completed_task_percentage" yaml:"completed_task_percentage"`
	PendingTaskPercentage        int       `json:"pending_task_percentage" yaml:"pending_task_percentage"`
	AverageHoursPerCompletedTask int64     `json:"average_hours_per_completed_task" yaml:"average_hours_per_completed_task"`
	TotalHoursLapsed             int64     `json:"total_hours_lapsed" yaml:"total_hours_lapsed"`
	TotalHoursToFinish           int64     `json:"total_hours_to_finish" yaml:"total_hours_to_finish"`
	PerPriority                  Breakdown `json:"per_priority" yaml:"per_priority"`
}

// Compute aggregates tasks as of now. Priorities are expected to be within
// [models.MinPriority, models.MaxPriority]; the write path guarantees it.
//
// Both percentages are rounded independently and may not add up to 100.
func Compute(tasks []*models.Task, now time.Time) Summary {
	var (
		summary        Summary
		completedHours float64
	)

	for _, task := range tasks {
		if task.IsFinished() {
			summary.FinishedTaskCount++
			completedHours += task.EndTime.Sub(task.StartTime).Hours()
			continue
		}

		lapsed := hoursLapsed(task.StartTime, now)
		toFinish := hoursToFinish(task.EndTime, now)

		bucket := summary.PerPriority.at(task.Priority)
		bucket.PendingCount++
		bucket.HoursLapsed += lapsed
		bucket.HoursToFinish += toFinish

		summary.TotalHoursLapsed += lapsed
		summary.TotalHoursToFinish += toFinish
	}

	summary.TotalTaskCount = len(tasks)
	summary.PendingTaskCount = summary.TotalTaskCount - summary.FinishedTaskCount
	summary.CompletedTaskPercentage = percentage(summary.FinishedTaskCount, summary.TotalTaskCount)
	summary.PendingTaskPercentage = percentage(summary.PendingTaskCount, summary.TotalTaskCount)
	if summary.FinishedTaskCount > 0 {
		summary.AverageHoursPerCompletedTask = roundHours(completedHours / float64(summary.FinishedTaskCount))
	}

	return summary
}
