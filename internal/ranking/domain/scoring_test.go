package domain_test

import (
	"math"
	"testing"
	"time"

	"github.com/felixgeelhaar/taskrank/internal/ranking/domain"
	"github.com/stretchr/testify/assert"
)

var today = time.Date(2025, time.March, 10, 15, 30, 0, 0, time.UTC)

func daysFromToday(n int) time.Time {
	return today.AddDate(0, 0, n)
}

func TestUrgencyScore(t *testing.T) {
	tests := []struct {
		name     string
		days     int
		expected float64
	}{
		{"long overdue", -30, 25.0},
		{"overdue by a day", -1, 25.0},
		{"due today", 0, 20.0},
		{"due tomorrow", 1, 15.0},
		{"due in two days", 2, 15.0},
		{"due in three days", 3, 10.0},
		{"due in a week", 7, 10.0},
		{"due in eight days", 8, 5.0},
		{"due in two weeks", 14, 5.0},
		{"due in fifteen days", 15, 0.0},
		{"due in a month", 30, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.UrgencyScore(daysFromToday(tt.days), today))
		})
	}
}

func TestUrgencyScore_IgnoresTimeOfDay(t *testing.T) {
	lateToday := time.Date(2025, time.March, 10, 23, 59, 0, 0, time.UTC)
	earlyTomorrow := time.Date(2025, time.March, 11, 0, 1, 0, 0, time.UTC)

	assert.Equal(t, 20.0, domain.UrgencyScore(lateToday, today))
	assert.Equal(t, 15.0, domain.UrgencyScore(earlyTomorrow, today))
}

func TestUrgencyScore_NonIncreasingWithDistance(t *testing.T) {
	prev := math.Inf(1)
	for days := -5; days <= 40; days++ {
		score := domain.UrgencyScore(daysFromToday(days), today)
		assert.LessOrEqual(t, score, prev, "day %d", days)
		prev = score
	}
}

func TestDaysUntil(t *testing.T) {
	assert.Equal(t, 0, domain.DaysUntil(today, today))
	assert.Equal(t, 5, domain.DaysUntil(daysFromToday(5), today))
	assert.Equal(t, -3, domain.DaysUntil(daysFromToday(-3), today))
}

func TestEffortScore(t *testing.T) {
	tests := []struct {
		name     string
		hours    float64
		expected float64
	}{
		{"half hour", 0.5, 8.0},
		{"one hour", 1, 8.0},
		{"just over an hour", 1.01, 5.0},
		{"three hours", 3, 5.0},
		{"four hours", 4, 2.0},
		{"six hours", 6, 2.0},
		{"seven hours", 7, -2.0},
		{"two days", 16, -2.0},
		{"zero", 0, 8.0},
		{"negative", -4, 8.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.EffortScore(tt.hours))
		})
	}
}

func TestEffortScore_NonIncreasingAcrossBoundaries(t *testing.T) {
	hours := []float64{0.25, 1, 1.5, 3, 3.5, 6, 6.5, 12, 100}
	for i := 1; i < len(hours); i++ {
		assert.LessOrEqual(t, domain.EffortScore(hours[i]), domain.EffortScore(hours[i-1]),
			"%.2fh vs %.2fh", hours[i], hours[i-1])
	}
}
