// Package report builds the dashboard from a task list stored in a YAML
// file, without a database.
package report

import (
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/adanyl0v/taskboard/internal/dashboard"
	"github.com/adanyl0v/taskboard/internal/models"
)

var ErrNoTasks = errors.New("no tasks found")

// Document is the layout of a task file.
type Document struct {
	Tasks []*models.Task `yaml:"tasks"`
}

type Report struct {
	GeneratedAt time.Time         `yaml:"generated_at"`
	Dashboard   dashboard.Summary `yaml:"dashboard"`
}

// Read decodes a task file and checks every task the way the write path
// does, so the aggregator never sees an out-of-range priority.
func Read(r io.Reader) ([]*models.Task, error) {
	var doc Document
	err := yaml.NewDecoder(r).Decode(&doc)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoTasks
		}
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	if len(doc.Tasks) == 0 {
		return nil, ErrNoTasks
	}

	for i, task := range doc.Tasks {
		if task == nil {
			return nil, fmt.Errorf("task #%d: empty entry", i+1)
		}
		err = checkTask(task)
		if err != nil {
			return nil, fmt.Errorf("task #%d (%q): %w", i+1, task.Title, err)
		}
	}
	return doc.Tasks, nil
}

func checkTask(task *models.Task) error {
	switch {
	case !models.IsValidPriority(task.Priority):
		return fmt.Errorf("priority %d is out of range [%d, %d]",
			task.Priority, models.MinPriority, models.MaxPriority)
	case !models.IsValidStatus(task.Status):
		return fmt.Errorf("unknown status %q", task.Status)
	case task.StartTime.IsZero() || task.EndTime.IsZero():
		return errors.New("start_time and end_time are required")
	case task.EndTime.Before(task.StartTime):
		return errors.New("end_time is before start_time")
	}
	return nil
}

func Build(tasks []*models.Task, now time.Time) Report {
	return Report{
		GeneratedAt: now.UTC(),
		Dashboard:   dashboard.Compute(tasks, now),
	}
}

func Write(w io.Writer, report Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	err := enc.Encode(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}
