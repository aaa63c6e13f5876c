package domain

import (
	"math"
	"time"
)

// NextDueDate returns the next occurrence after base for a recurring frequency.
// Monthly uses calendar month arithmetic, so day overflow normalizes forward
// (Jan 31 + 1 month = Mar 2 or Mar 3). A result landing on Sunday moves to Monday.
// The boolean is false for OneTime and unknown frequencies.
func NextDueDate(base time.Time, frequency Frequency) (time.Time, bool) {
	var next time.Time
	switch frequency {
	case FrequencyDaily:
		next = base.AddDate(0, 0, 1)
	case FrequencyWeekly:
		next = base.AddDate(0, 0, 7)
	case FrequencyMonthly:
		next = base.AddDate(0, 1, 0)
	default:
		return time.Time{}, false
	}

	if next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}
	return next, true
}

// SweepPeriodDays is the number of elapsed days after which the sweep regenerates
// a recurring task. Monthly is a flat 30 days, unlike NextDueDate.
func SweepPeriodDays(frequency Frequency) (int, bool) {
	switch frequency {
	case FrequencyDaily:
		return 1, true
	case FrequencyWeekly:
		return 7, true
	case FrequencyMonthly:
		return 30, true
	default:
		return 0, false
	}
}

// ElapsedDays counts whole days from since to now, rounding down.
func ElapsedDays(since, now time.Time) int {
	return int(math.Floor(now.Sub(since).Hours() / 24))
}

// DueForSweep reports whether the sweep should regenerate t at now. Both times
// are truncated to the minute, so a successor due at one cron tick is a whole
// day old at the same tick the next day.
func DueForSweep(t Task, now time.Time) bool {
	period, ok := SweepPeriodDays(t.TaskFrequency)
	if !ok {
		return false
	}
	return ElapsedDays(t.DueDate.Truncate(time.Minute), now.Truncate(time.Minute)) >= period
}

type SweepReport struct {
	Scanned int
	Created int
	Skipped int
	Failed  int
}
