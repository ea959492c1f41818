package dashboard

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/adanyl0v/taskboard/internal/models"
)

var now = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func pending(priority int, start, end time.Time) *models.Task {
	return &models.Task{
		Title:     "pending",
		Priority:  priority,
		Status:    models.StatusPending,
		StartTime: start,
		EndTime:   end,
	}
}

func finished(priority int, start, end time.Time) *models.Task {
	return &models.Task{
		Title:     "finished",
		Priority:  priority,
		Status:    models.StatusFinished,
		StartTime: start,
		EndTime:   end,
	}
}

func TestCompute_EmptyInput(t *testing.T) {
	for _, tasks := range [][]*models.Task{nil, {}} {
		summary := Compute(tasks, now)

		assert.Equal(t, Summary{}, summary)
		assert.Len(t, summary.PerPriority.ByPriority(), 5)
		for priority := models.MinPriority; priority <= models.MaxPriority; priority++ {
			assert.Equal(t, Bucket{}, summary.PerPriority.Get(priority))
		}
	}
}

func TestCompute_SingleFinishedTask(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	summary := Compute([]*models.Task{finished(2, start, end)}, now)

	assert.Equal(t, 1, summary.TotalTaskCount)
	assert.Equal(t, 1, summary.FinishedTaskCount)
	assert.Equal(t, 0, summary.PendingTaskCount)
	assert.Equal(t, int64(24), summary.AverageHoursPerCompletedTask)
	assert.Equal(t, 100, summary.CompletedTaskPercentage)
	assert.Equal(t, 0, summary.PendingTaskPercentage)
	assert.Equal(t, int64(0), summary.TotalHoursLapsed)
	assert.Equal(t, int64(0), summary.TotalHoursToFinish)
	assert.Equal(t, Bucket{}, summary.PerPriority.Get(2))
}

func TestCompute_PendingAtWindowBoundaries(t *testing.T) {
	t.Run("now at start", func(t *testing.T) {
		tasks := []*models.Task{
			pending(3, now, now.Add(5*time.Hour)),
			pending(3, now, now.Add(10*time.Hour)),
		}

		summary := Compute(tasks, now)

		bucket := summary.PerPriority.Get(3)
		assert.Equal(t, 2, bucket.PendingCount)
		assert.Equal(t, int64(0), bucket.HoursLapsed)
		assert.Equal(t, int64(15), bucket.HoursToFinish)
	})

	t.Run("now at end", func(t *testing.T) {
		tasks := []*models.Task{
			pending(3, now.Add(-4*time.Hour), now),
			pending(3, now.Add(-6*time.Hour), now),
		}

		summary := Compute(tasks, now)

		bucket := summary.PerPriority.Get(3)
		assert.Equal(t, 2, bucket.PendingCount)
		assert.Equal(t, int64(10), bucket.HoursLapsed)
		assert.Equal(t, int64(0), bucket.HoursToFinish)
	})

	t.Run("zero length window", func(t *testing.T) {
		summary := Compute([]*models.Task{
			pending(3, now, now),
			pending(3, now, now),
		}, now)

		assert.Equal(t, Bucket{PendingCount: 2}, summary.PerPriority.Get(3))
	})
}

func TestCompute_Percentages(t *testing.T) {
	start := now.Add(-2 * time.Hour)
	end := now.Add(2 * time.Hour)

	tests := []struct {
		name          string
		finishedCount int
		pendingCount  int
		wantCompleted int
		wantPending   int
	}{
		{name: "one of three", finishedCount: 1, pendingCount: 2, wantCompleted: 33, wantPending: 67},
		{name: "one of seven", finishedCount: 1, pendingCount: 6, wantCompleted: 14, wantPending: 86},
		// Rounded independently: 12.5 -> 13 and 87.5 -> 88.
		{name: "one of eight", finishedCount: 1, pendingCount: 7, wantCompleted: 13, wantPending: 88},
		{name: "all pending", finishedCount: 0, pendingCount: 4, wantCompleted: 0, wantPending: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tasks []*models.Task
			for i := 0; i < tt.finishedCount; i++ {
				tasks = append(tasks, finished(1, start, end))
			}
			for i := 0; i < tt.pendingCount; i++ {
				tasks = append(tasks, pending(1, start, end))
			}

			summary := Compute(tasks, now)

			assert.Equal(t, tt.wantCompleted, summary.CompletedTaskPercentage)
			assert.Equal(t, tt.wantPending, summary.PendingTaskPercentage)
		})
	}
}

func TestCompute_DivergentPercentagesAreNotNormalized(t *testing.T) {
	var tasks []*models.Task
	tasks = append(tasks, finished(1, now.Add(-time.Hour), now))
	for i := 0; i < 7; i++ {
		tasks = append(tasks, pending(1, now, now.Add(time.Hour)))
	}

	summary := Compute(tasks, now)

	assert.Equal(t, 101, summary.CompletedTaskPercentage+summary.PendingTaskPercentage)
}

func TestCompute_HoursAreRoundedAndNonNegative(t *testing.T) {
	tasks := []*models.Task{
		// Not started yet, far from due.
		pending(1, now.Add(48*time.Hour), now.Add(100*time.Hour)),
		// Long overdue.
		pending(1, now.Add(-500*time.Hour), now.Add(-300*time.Hour)),
		// 2h30m in, 1h29m left.
		pending(2, now.Add(-150*time.Minute), now.Add(89*time.Minute)),
	}

	summary := Compute(tasks, now)

	assert.Equal(t, Bucket{PendingCount: 2, HoursLapsed: 500, HoursToFinish: 100}, summary.PerPriority.Get(1))
	assert.Equal(t, Bucket{PendingCount: 1, HoursLapsed: 3, HoursToFinish: 1}, summary.PerPriority.Get(2))
	assert.Equal(t, int64(503), summary.TotalHoursLapsed)
	assert.Equal(t, int64(101), summary.TotalHoursToFinish)

	for priority, bucket := range summary.PerPriority.ByPriority() {
		assert.GreaterOrEqual(t, bucket.HoursLapsed, int64(0), "priority %d", priority)
		assert.GreaterOrEqual(t, bucket.HoursToFinish, int64(0), "priority %d", priority)
	}
}

func TestCompute_AverageUsesUnroundedDurations(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tasks := []*models.Task{
		finished(1, start, start.Add(90*time.Minute)),
		finished(4, start, start.Add(90*time.Minute)),
		finished(5, start, start.Add(90*time.Minute)),
	}

	summary := Compute(tasks, now)

	// 4.5h / 3 = 1.5h, rounds half away from zero.
	assert.Equal(t, int64(2), summary.AverageHoursPerCompletedTask)
}

func TestCompute_CountConservationAndBuckets(t *testing.T) {
	var tasks []*models.Task
	for i := 0; i < 23; i++ {
		priority := i%models.MaxPriority + 1
		start := now.Add(time.Duration(i-10) * time.Hour)
		end := start.Add(time.Duration(i+1) * time.Hour)
		if i%3 == 0 {
			tasks = append(tasks, finished(priority, start, end))
		} else {
			tasks = append(tasks, pending(priority, start, end))
		}
	}

	summary := Compute(tasks, now)

	assert.Equal(t, len(tasks), summary.TotalTaskCount)
	assert.Equal(t, summary.TotalTaskCount, summary.PendingTaskCount+summary.FinishedTaskCount)

	var pendingInBuckets int
	var lapsed, toFinish int64
	for _, bucket := range summary.PerPriority.ByPriority() {
		pendingInBuckets += bucket.PendingCount
		lapsed += bucket.HoursLapsed
		toFinish += bucket.HoursToFinish
	}
	assert.Equal(t, summary.PendingTaskCount, pendingInBuckets)
	assert.Equal(t, summary.TotalHoursLapsed, lapsed)
	assert.Equal(t, summary.TotalHoursToFinish, toFinish)
}

func TestCompute_DoesNotShareBucketsBetweenCalls(t *testing.T) {
	first := Compute([]*models.Task{pending(5, now, now.Add(time.Hour))}, now)
	second := Compute(nil, now)

	assert.Equal(t, 1, first.PerPriority.Get(5).PendingCount)
	assert.Equal(t, 0, second.PerPriority.Get(5).PendingCount)
}

func TestBreakdown_MarshalJSON(t *testing.T) {
	summary := Compute([]*models.Task{pending(4, now.Add(-time.Hour), now.Add(time.Hour))}, now)

	data, err := json.Marshal(summary)
	require.NoError(t, err)

	var decoded struct {
		PerPriority map[string]Bucket `json:"per_priority"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Len(t, decoded.PerPriority, 5)
	for _, key := range []string{"1", "2", "3", "5"} {
		assert.Equal(t, Bucket{}, decoded.PerPriority[key])
	}
	assert.Equal(t, Bucket{PendingCount: 1, HoursLapsed: 1, HoursToFinish: 1}, decoded.PerPriority["4"])
}

func TestBreakdown_MarshalYAML(t *testing.T) {
	summary := Compute([]*models.Task{pending(1, now, now.Add(2*time.Hour))}, now)

	data, err := yaml.Marshal(summary)
	require.NoError(t, err)

	var decoded struct {
		PerPriority map[int]Bucket `yaml:"per_priority"`
	}
	require.NoError(t, yaml.Unmarshal(data, &decoded))

	assert.Len(t, decoded.PerPriority, 5)
	assert.Equal(t, Bucket{PendingCount: 1, HoursToFinish: 2}, decoded.PerPriority[1])
}
