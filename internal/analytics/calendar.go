package analytics

import (
	"time"

	"orderdesk/internal/domain"
)

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// EndOfDay returns 23:59:59 of the calendar day of t in loc.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, loc)
}

// FirstMonday is the first Monday on or after January 1 of year.
func FirstMonday(year int, loc *time.Location) time.Time {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	offset := (8 - int(jan1.Weekday())) % 7
	return jan1.AddDate(0, 0, offset)
}

// WeekBounds returns [Monday 00:00:00, Sunday 23:59:59] of the given week.
// Days of year before the first Monday belong to no week of that year.
func WeekBounds(year, week int, loc *time.Location) (time.Time, time.Time) {
	start := FirstMonday(year, loc).AddDate(0, 0, (week-1)*7)
	end := time.Date(start.Year(), start.Month(), start.Day()+6, 23, 59, 59, 0, loc)
	return start, end
}

// MonthBounds returns [day 1 00:00:00, last day 23:59:59] of the month.
func MonthBounds(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := time.Date(year, month+1, 0, 23, 59, 59, 0, loc)
	return start, end
}

// DayKey formats t's calendar day in loc the same way the store groups rows.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(domain.DayKeyLayout)
}
