package calendar

import (
	"testing"
	"time"
)

func TestWeekdayName(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"2026-01-04", "So."},
		{"2026-01-05", "Mo."},
		{"2026-01-06", "Di."},
		{"2026-01-07", "Mi."},
		{"2026-01-08", "Do."},
		{"2026-01-09", "Fr."},
		{"2026-01-10", "Sa."},
	}
	for _, tc := range cases {
		parsed, err := ParseDate(tc.date)
		if err != nil {
			t.Fatalf("ParseDate failed: %v", err)
		}
		if got := WeekdayName(parsed); got != tc.want {
			t.Errorf("WeekdayName(%s) = %q, want %q", tc.date, got, tc.want)
		}
	}
}

func TestISOWeekKey(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		// 2026-01-01 falls into ISO week 1 of 2026.
		{"2026-01-01", "2026-W01"},
		// 2027-01-01 is a Friday and still belongs to ISO week 53 of 2026.
		{"2027-01-01", "2026-W53"},
		{"2026-12-28", "2026-W53"},
		{"2025-12-29", "2026-W01"},
	}
	for _, tc := range cases {
		parsed, err := ParseDate(tc.date)
		if err != nil {
			t.Fatalf("ParseDate failed: %v", err)
		}
		if got := ISOWeekKey(parsed); got != tc.want {
			t.Errorf("ISOWeekKey(%s) = %q, want %q", tc.date, got, tc.want)
		}
	}
}

func TestISOWeek(t *testing.T) {
	cases := []struct {
		date     string
		wantYear int
		wantWeek int
	}{
		{"2026-03-02", 2026, 10},
		// Around New Year the week-year differs from the calendar year.
		{"2025-12-29", 2026, 1},
		{"2027-01-01", 2026, 53},
	}
	for _, tc := range cases {
		parsed, err := ParseDate(tc.date)
		if err != nil {
			t.Fatalf("ParseDate failed: %v", err)
		}
		year, week := ISOWeek(parsed)
		if year != tc.wantYear || week != tc.wantWeek {
			t.Errorf("ISOWeek(%s) = (%d, %d), want (%d, %d)", tc.date, year, week, tc.wantYear, tc.wantWeek)
		}
	}
}

func TestISOWeekStart(t *testing.T) {
	cases := []struct {
		year, week int
		want       string
	}{
		{2026, 1, "2025-12-29"},
		{2026, 2, "2026-01-05"},
		{2025, 1, "2024-12-30"},
	}
	for _, tc := range cases {
		got := ISOWeekStart(tc.year, tc.week).Format(DateLayout)
		if got != tc.want {
			t.Errorf("ISOWeekStart(%d, %d) = %s, want %s", tc.year, tc.week, got, tc.want)
		}
	}
}

func TestWeekStart(t *testing.T) {
	// Any day of the week maps back to the same Monday.
	monday := time.Date(2026, time.June, 8, 0, 0, 0, 0, time.UTC)
	for offset := 0; offset < 7; offset++ {
		day := monday.AddDate(0, 0, offset)
		if got := WeekStart(day); !got.Equal(monday) {
			t.Errorf("WeekStart(%s) = %s, want %s", day.Format(DateLayout), got.Format(DateLayout), monday.Format(DateLayout))
		}
	}
}
