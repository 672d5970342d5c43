package calendar

import (
	"testing"
	"time"
)

func TestClassify_TableEntriesWin(t *testing.T) {
	cases := []struct {
		date string
		kind Kind
		name string
	}{
		{"2026-01-01", KindFeiertag, "Neujahr"},
		{"2026-04-03", KindFeiertag, "Karfreitag"},
		{"2026-12-25", KindFeiertag, "1. Weihnachtsfeiertag"},
		{"2026-12-26", KindFeiertag, "2. Weihnachtsfeiertag"},
		{"2026-05-15", KindBrueckentag, "nach Christi Himmelfahrt"},
		{"2026-12-23", KindBrueckentag, "vor Heiligabend"},
		{"2025-05-01", KindFeiertag, "Tag der Arbeit"},
		{"2025-12-22", KindBrueckentag, "vor Heiligabend"},
	}

	for _, tc := range cases {
		t.Run(tc.date, func(t *testing.T) {
			got, err := ClassifyDate(tc.date)
			if err != nil {
				t.Fatalf("ClassifyDate(%q) failed: %v", tc.date, err)
			}
			if got.Kind != tc.kind {
				t.Errorf("expected kind %s, got %s", tc.kind, got.Kind)
			}
			if got.Name != tc.name {
				t.Errorf("expected name %q, got %q", tc.name, got.Name)
			}
		})
	}
}

func TestClassify_ExplicitWerktagOverride(t *testing.T) {
	// 2026-01-02 is listed as Werktag even though it sits right after a
	// holiday; the table entry must win over any derived rule.
	got, err := ClassifyDate("2026-01-02")
	if err != nil {
		t.Fatalf("ClassifyDate failed: %v", err)
	}
	if got.Kind != KindWerktag {
		t.Errorf("expected Werktag, got %s", got.Kind)
	}
}

func TestClassify_WeekdayFallback(t *testing.T) {
	cases := []struct {
		date string
		kind Kind
	}{
		{"2026-01-04", KindSonntag}, // Sunday
		{"2026-01-03", KindSamstag}, // Saturday
		{"2026-01-05", KindWerktag}, // Monday
		{"2026-07-15", KindWerktag}, // ordinary Wednesday
	}

	for _, tc := range cases {
		t.Run(tc.date, func(t *testing.T) {
			got, err := ClassifyDate(tc.date)
			if err != nil {
				t.Fatalf("ClassifyDate failed: %v", err)
			}
			if got.Kind != tc.kind {
				t.Errorf("expected %s, got %s", tc.kind, got.Kind)
			}
			if got.Name != "" {
				t.Errorf("expected empty name for derived kind, got %q", got.Name)
			}
		})
	}
}

func TestClassify_UnlistedYearFallsBackToWeekdays(t *testing.T) {
	// 2030-01-01 is a Tuesday. Without a 2030 table the holiday is not
	// applied and the weekday rule classifies it as Werktag.
	got := Classify(time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC))
	if got.Kind != KindWerktag {
		t.Errorf("expected Werktag for unlisted year, got %s", got.Kind)
	}
}

func TestClassifyDate_RejectsMalformedInput(t *testing.T) {
	for _, date := range []string{"", "2026-13-01", "01.02.2026", "2026-1-2"} {
		if _, err := ClassifyDate(date); err == nil {
			t.Errorf("expected error for %q", date)
		}
	}
}

func TestClassificationPermissions(t *testing.T) {
	cases := []struct {
		kind     Kind
		entries  bool
		absences bool
	}{
		{KindWerktag, true, true},
		{KindSamstag, true, true},
		{KindBrueckentag, true, false},
		{KindSonntag, false, false},
		{KindFeiertag, false, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			c := Classification{Kind: tc.kind}
			if got := c.EntriesPermitted(); got != tc.entries {
				t.Errorf("EntriesPermitted() = %v, want %v", got, tc.entries)
			}
			if got := c.AbsenceEligible(); got != tc.absences {
				t.Errorf("AbsenceEligible() = %v, want %v", got, tc.absences)
			}
		})
	}
}

func TestListedYears(t *testing.T) {
	years := ListedYears()
	if len(years) != 2 || years[0] != 2025 || years[1] != 2026 {
		t.Fatalf("expected [2025 2026], got %v", years)
	}
}
