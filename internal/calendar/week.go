package calendar

import (
	"fmt"
	"time"
)

// weekdayNames are the abbreviated German day names used in exports,
// indexed by time.Weekday (Sunday first).
var weekdayNames = [7]string{"So.", "Mo.", "Di.", "Mi.", "Do.", "Fr.", "Sa."}

// WeekdayName returns the abbreviated German name for the date's weekday.
func WeekdayName(date time.Time) string {
	return weekdayNames[date.Weekday()]
}

// ISOWeek returns the ISO-8601 week-year and week number of the date.
// The week-year can differ from the calendar year around New Year.
func ISOWeek(date time.Time) (int, int) {
	return date.ISOWeek()
}

// ISOWeekKey returns a sortable ISO week identifier such as "2026-W01".
// The year component is the ISO week-year, which can differ from the
// calendar year around New Year.
func ISOWeekKey(date time.Time) string {
	year, week := date.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// ISOWeekStart returns the Monday that opens the given ISO week.
func ISOWeekStart(year, week int) time.Time {
	// January 4th is always inside ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := (int(jan4.Weekday()) + 6) % 7
	week1Monday := jan4.AddDate(0, 0, -offset)
	return week1Monday.AddDate(0, 0, (week-1)*7)
}

// WeekStart returns the Monday opening the ISO week containing the date.
func WeekStart(date time.Time) time.Time {
	offset := (int(date.Weekday()) + 6) % 7
	start := date.AddDate(0, 0, -offset)
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
}
