package domain

import "time"

// UrgencyScore maps the distance from today to the due date onto fixed buckets.
// Overdue tasks score highest.
func UrgencyScore(due, today time.Time) float64 {
	days := DaysUntil(due, today)

	switch {
	case days < 0:
		return 25.0
	case days == 0:
		return 20.0
	case days <= 2:
		return 15.0
	case days <= 7:
		return 10.0
	case days <= 14:
		return 5.0
	default:
		return 0.0
	}
}

// DaysUntil returns the whole calendar days from today to due, negative when due has passed.
// Only the calendar date of each value is considered.
func DaysUntil(due, today time.Time) int {
	d := civilDate(due)
	t := civilDate(today)
	return int(d.Sub(t).Hours() / 24)
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
