package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFirstMonday(t *testing.T) {
	tests := []struct {
		year int
		want string
	}{
		{2024, "2024-01-01"}, // Jan 1 is a Monday
		{2023, "2023-01-02"}, // Sunday
		{2022, "2022-01-03"}, // Saturday
		{2021, "2021-01-04"}, // Friday
		{2019, "2019-01-07"}, // Tuesday
	}

	for _, tt := range tests {
		got := FirstMonday(tt.year, time.UTC)
		assert.Equal(t, tt.want, got.Format("2006-01-02"), "year %d", tt.year)
		assert.Equal(t, time.Monday, got.Weekday())
	}
}

func TestWeekBounds_FirstWeekOf2024(t *testing.T) {
	start, end := WeekBounds(2024, 1, time.UTC)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 1, 7, 23, 59, 59, 0, time.UTC), end)
}

func TestWeekBounds_Week53SpillsIntoNextYear(t *testing.T) {
	start, end := WeekBounds(2024, 53, time.UTC)

	assert.Equal(t, "2024-12-30", start.Format("2006-01-02"))
	assert.Equal(t, "2025-01-05", end.Format("2006-01-02"))
}

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		days  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}

	for _, tt := range tests {
		start, end := MonthBounds(tt.year, tt.month, time.UTC)
		assert.Equal(t, 1, start.Day())
		assert.Equal(t, tt.days, end.Day())
		assert.Equal(t, tt.month, end.Month())
		assert.Equal(t, 23, end.Hour())
		assert.Equal(t, 59, end.Second())
	}
}

func TestDayKey_UsesLocation(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	instant := time.Date(2024, 3, 2, 3, 0, 0, 0, time.UTC)

	assert.Equal(t, "2024-03-02", DayKey(instant, time.UTC))
	assert.Equal(t, "2024-03-01", DayKey(instant, est))
}
