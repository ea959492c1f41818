package dashboard

import (
	"math"
	"time"
)

// hoursLapsed returns the whole hours elapsed since start, or 0 if start
// is not in the past.
func hoursLapsed(start, now time.Time) int64 {
	if !now.After(start) {
		return 0
	}
	return roundHours(now.Sub(start).Hours())
}

// hoursToFinish returns the whole hours left until end, or 0 if end has
// already passed.
func hoursToFinish(end, now time.Time) int64 {
	if !end.After(now) {
		return 0
	}
	return roundHours(end.Sub(now).Hours())
}

func roundHours(hours float64) int64 {
	return int64(math.Round(hours))
}

// percentage is 0 for an empty whole.
func percentage(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(whole)))
}
