package timesheet

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/example/pm-timetracker/internal/calendar"
)

func dec(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return d
}

func TestActivity(t *testing.T) {
	worked := Worked("280003")
	if worked.IsAbsence() {
		t.Error("worked activity reported as absence")
	}
	if worked.OrderNumber() != "280003" {
		t.Errorf("unexpected order number %q", worked.OrderNumber())
	}
	if worked.StorageValue() != "280003" {
		t.Errorf("unexpected storage value %q", worked.StorageValue())
	}

	absent := Absence()
	if !absent.IsAbsence() {
		t.Error("absence activity not reported as absence")
	}
	if absent.OrderNumber() != "" {
		t.Errorf("absence should have no order number, got %q", absent.OrderNumber())
	}
	if absent.StorageValue() != AbsentSentinel {
		t.Errorf("unexpected storage value %q", absent.StorageValue())
	}

	if !ActivityFromStorage("absent").IsAbsence() {
		t.Error("sentinel recognition should be case-insensitive")
	}
	if ActivityFromStorage("290001").IsAbsence() {
		t.Error("order number misread as absence")
	}
}

func TestExpand_Worked(t *testing.T) {
	t.Run("single entry on a Werktag", func(t *testing.T) {
		entries, err := Expand(Submission{
			ManagerName: "Juri Bergheim",
			StartDate:   "2026-07-15",
			Activity:    Worked("280003"),
			Duration:    dec("7.5"),
			Comment:     "site visit",
		})
		if err != nil {
			t.Fatalf("Expand failed: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		entry := entries[0]
		if entry.DayType != calendar.KindWerktag {
			t.Errorf("expected Werktag day type, got %s", entry.DayType)
		}
		if !entry.Duration.Equal(dec("7.5")) {
			t.Errorf("unexpected duration %s", entry.Duration)
		}
	})

	t.Run("end date is ignored for worked entries", func(t *testing.T) {
		entries, err := Expand(Submission{
			ManagerName: "Juri Bergheim",
			StartDate:   "2026-07-15",
			EndDate:     "2026-07-20",
			Activity:    Worked("280003"),
			Duration:    dec("4"),
		})
		if err != nil {
			t.Fatalf("Expand failed: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry despite end date, got %d", len(entries))
		}
	})

	t.Run("permitted on Brückentag and Samstag", func(t *testing.T) {
		for _, date := range []string{"2026-12-23", "2026-07-18"} {
			if _, err := Expand(Submission{
				ManagerName: "Juri Bergheim",
				StartDate:   date,
				Activity:    Worked("280003"),
				Duration:    dec("2"),
			}); err != nil {
				t.Errorf("expected %s to permit worked entries, got %v", date, err)
			}
		}
	})

	t.Run("rejected on Feiertag regardless of order number", func(t *testing.T) {
		_, err := Expand(Submission{
			ManagerName: "Juri Bergheim",
			StartDate:   "2026-01-01",
			Activity:    Worked("280003"),
			Duration:    dec("8"),
		})
		var dayErr *DayNotBookableError
		if !errors.As(err, &dayErr) {
			t.Fatalf("expected DayNotBookableError, got %v", err)
		}
		if dayErr.Kind != calendar.KindFeiertag {
			t.Errorf("expected Feiertag, got %s", dayErr.Kind)
		}
	})

	t.Run("rejected on Sonntag", func(t *testing.T) {
		_, err := Expand(Submission{
			ManagerName: "Juri Bergheim",
			StartDate:   "2026-07-19",
			Activity:    Worked("280003"),
			Duration:    dec("8"),
		})
		var dayErr *DayNotBookableError
		if !errors.As(err, &dayErr) {
			t.Fatalf("expected DayNotBookableError, got %v", err)
		}
	})

	t.Run("order number format", func(t *testing.T) {
		for _, orderNr := range []string{"12345", "123456789", "12a456", ""} {
			_, err := Expand(Submission{
				ManagerName: "Juri Bergheim",
				StartDate:   "2026-07-15",
				Activity:    Worked(orderNr),
				Duration:    dec("1"),
			})
			if !errors.Is(err, ErrOrderNumberFormat) {
				t.Errorf("expected ErrOrderNumberFormat for %q, got %v", orderNr, err)
			}
		}
		for _, orderNr := range []string{"123456", "12345678"} {
			_, err := Expand(Submission{
				ManagerName: "Juri Bergheim",
				StartDate:   "2026-07-15",
				Activity:    Worked(orderNr),
				Duration:    dec("1"),
			})
			if err != nil {
				t.Errorf("expected %q to be accepted, got %v", orderNr, err)
			}
		}
	})
}

func TestExpand_AbsenceRange(t *testing.T) {
	t.Run("skips Feiertage, Sonntage and Brückentage", func(t *testing.T) {
		// 2026-12-23 Brückentag, 24 Werktag, 25/26 Feiertag, 27 Sonntag,
		// 28-30 Brückentag: only the 24th qualifies.
		entries, err := Expand(Submission{
			ManagerName: "Yvonne Yu",
			StartDate:   "2026-12-23",
			EndDate:     "2026-12-30",
			Activity:    Absence(),
			Duration:    dec("8"),
			Comment:     "vacation",
		})
		if err != nil {
			t.Fatalf("Expand failed: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		if got := entries[0].Date.Format(calendar.DateLayout); got != "2026-12-24" {
			t.Errorf("expected 2026-12-24, got %s", got)
		}
		if entries[0].DayType != calendar.KindWerktag {
			t.Errorf("expected Werktag, got %s", entries[0].DayType)
		}
	})

	t.Run("includes Saturdays and keeps duration and comment", func(t *testing.T) {
		// 2026-07-13 (Mo) through 2026-07-19 (So): five Werktage plus the
		// Saturday qualify, the Sunday does not.
		entries, err := Expand(Submission{
			ManagerName: "Yvonne Yu",
			StartDate:   "2026-07-13",
			EndDate:     "2026-07-19",
			Activity:    Absence(),
			Duration:    dec("8"),
			Comment:     "parental leave",
		})
		if err != nil {
			t.Fatalf("Expand failed: %v", err)
		}
		if len(entries) != 6 {
			t.Fatalf("expected 6 entries, got %d", len(entries))
		}
		for _, entry := range entries {
			if !entry.Activity.IsAbsence() {
				t.Error("expanded entry lost absence activity")
			}
			if !entry.Duration.Equal(dec("8")) {
				t.Errorf("expanded entry changed duration: %s", entry.Duration)
			}
			if entry.Comment != "parental leave" {
				t.Errorf("expanded entry changed comment: %q", entry.Comment)
			}
		}
		if got := entries[5].Date.Weekday().String(); got != "Saturday" {
			t.Errorf("expected last entry on Saturday, got %s", got)
		}
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := Expand(Submission{
			ManagerName: "Yvonne Yu",
			StartDate:   "2026-07-15",
			EndDate:     "2026-07-10",
			Activity:    Absence(),
			Duration:    dec("8"),
		})
		if !errors.Is(err, ErrEndBeforeStart) {
			t.Fatalf("expected ErrEndBeforeStart, got %v", err)
		}
	})

	t.Run("range with zero eligible days", func(t *testing.T) {
		// Christmas 2026: 25th and 26th are Feiertage, the 27th a Sonntag.
		_, err := Expand(Submission{
			ManagerName: "Yvonne Yu",
			StartDate:   "2026-12-25",
			EndDate:     "2026-12-27",
			Activity:    Absence(),
			Duration:    dec("8"),
		})
		if !errors.Is(err, ErrNoWorkdaysInRange) {
			t.Fatalf("expected ErrNoWorkdaysInRange, got %v", err)
		}
	})

	t.Run("end date equal to start produces one entry without format check", func(t *testing.T) {
		entries, err := Expand(Submission{
			ManagerName: "Yvonne Yu",
			StartDate:   "2026-07-15",
			EndDate:     "2026-07-15",
			Activity:    Absence(),
			Duration:    dec("8"),
		})
		if err != nil {
			t.Fatalf("Expand failed: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
	})
}

func TestExpand_InputValidation(t *testing.T) {
	if _, err := Expand(Submission{StartDate: "2026-07-15", Activity: Worked("123456"), Duration: dec("1")}); !errors.Is(err, ErrManagerRequired) {
		t.Errorf("expected ErrManagerRequired, got %v", err)
	}
	if _, err := Expand(Submission{ManagerName: "Yvonne Yu", StartDate: "2026-07-15", Activity: Worked("123456"), Duration: dec("0")}); !errors.Is(err, ErrDurationNotPositive) {
		t.Errorf("expected ErrDurationNotPositive, got %v", err)
	}
	var dateErr *InvalidDateError
	if _, err := Expand(Submission{ManagerName: "Yvonne Yu", StartDate: "15.07.2026", Activity: Worked("123456"), Duration: dec("1")}); !errors.As(err, &dateErr) {
		t.Errorf("expected InvalidDateError, got %v", err)
	}
}

func TestCheckDailyLimit(t *testing.T) {
	t.Run("exceeding the limit is rejected", func(t *testing.T) {
		err := CheckDailyLimit("2026-07-15", dec("7"), dec("4"))
		var limitErr *DailyLimitError
		if !errors.As(err, &limitErr) {
			t.Fatalf("expected DailyLimitError, got %v", err)
		}
		if limitErr.Date != "2026-07-15" {
			t.Errorf("unexpected date %s", limitErr.Date)
		}
	})

	t.Run("landing exactly on the limit is allowed", func(t *testing.T) {
		if err := CheckDailyLimit("2026-07-15", dec("7"), dec("3")); err != nil {
			t.Fatalf("expected 7+3 to pass, got %v", err)
		}
	})

	t.Run("fractional sums compare exactly", func(t *testing.T) {
		if err := CheckDailyLimit("2026-07-15", dec("9.9"), dec("0.1")); err != nil {
			t.Fatalf("expected 9.9+0.1 to pass, got %v", err)
		}
		if err := CheckDailyLimit("2026-07-15", dec("9.9"), dec("0.2")); err == nil {
			t.Fatal("expected 9.9+0.2 to fail")
		}
	})
}
