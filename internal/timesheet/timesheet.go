// Package timesheet implements the entry eligibility rules and the
// multi-day absence expansion for time recording. It is pure: callers feed
// it submissions and already-recorded sums, persistence stays outside.
package timesheet

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/pm-timetracker/internal/calendar"
)

// AbsentSentinel is the storage and export representation of an absence
// entry. Inside this package and the services an absence is a tagged
// Activity, never a magic string.
const AbsentSentinel = "Absent"

// DailyLimitHours is the maximum recordable duration per manager and day.
// The limit is inclusive: a day may reach exactly this sum.
var DailyLimitHours = decimal.NewFromInt(10)

var orderNumberPattern = regexp.MustCompile(`^\d{6,8}$`)

// Activity distinguishes worked time on an order from recorded absence.
type Activity struct {
	absence     bool
	orderNumber string
}

// Worked returns the activity for time spent on the given order number.
func Worked(orderNumber string) Activity {
	return Activity{orderNumber: strings.TrimSpace(orderNumber)}
}

// Absence returns the activity for recorded absence.
func Absence() Activity {
	return Activity{absence: true}
}

// ActivityFromStorage converts a stored order_nr column value back into an
// Activity, recognising the absence sentinel case-insensitively.
func ActivityFromStorage(orderNr string) Activity {
	if strings.EqualFold(strings.TrimSpace(orderNr), AbsentSentinel) {
		return Absence()
	}
	return Worked(orderNr)
}

// IsAbsence reports whether the activity records absence.
func (a Activity) IsAbsence() bool {
	return a.absence
}

// OrderNumber returns the order number for worked activities; it is empty
// for absences.
func (a Activity) OrderNumber() string {
	if a.absence {
		return ""
	}
	return a.orderNumber
}

// StorageValue serialises the activity for the order_nr column.
func (a Activity) StorageValue() string {
	if a.absence {
		return AbsentSentinel
	}
	return a.orderNumber
}

// ValidOrderNumber reports whether the value matches the 6-8 digit order
// number format.
func ValidOrderNumber(value string) bool {
	return orderNumberPattern.MatchString(value)
}

// Submission is a candidate entry as provided by the user, before
// eligibility checks and range expansion.
type Submission struct {
	ManagerName string
	// StartDate is the ISO yyyy-MM-dd entry date.
	StartDate string
	// EndDate optionally closes a multi-day absence range, inclusive. It is
	// ignored for worked activities.
	EndDate  string
	Activity Activity
	Duration decimal.Decimal
	Comment  string
}

// Entry is one expanded record ready for persistence, with the day type
// stamped at creation time.
type Entry struct {
	ManagerName string
	Date        time.Time
	Activity    Activity
	Duration    decimal.Decimal
	DayType     calendar.Kind
	Comment     string
}

// Expand validates the submission and expands it into the entries to be
// persisted as one atomic batch.
//
// Worked submissions always produce exactly one entry; any end date is
// ignored. Absence submissions with an end date after the start date walk
// every calendar day of the inclusive range and produce one entry per
// Werktag or Samstag, silently skipping Feiertage, Sonntage and
// Brückentage.
//
// The daily limit is not checked here; callers hold the recorded sums and
// apply CheckDailyLimit per produced entry.
func Expand(sub Submission) ([]Entry, error) {
	if strings.TrimSpace(sub.ManagerName) == "" {
		return nil, ErrManagerRequired
	}
	if !sub.Duration.IsPositive() {
		return nil, ErrDurationNotPositive
	}

	start, err := calendar.ParseDate(sub.StartDate)
	if err != nil {
		return nil, &InvalidDateError{Field: "date", Value: sub.StartDate}
	}

	if !sub.Activity.IsAbsence() {
		return expandWorked(sub, start)
	}
	return expandAbsence(sub, start)
}

func expandWorked(sub Submission, start time.Time) ([]Entry, error) {
	if !ValidOrderNumber(sub.Activity.OrderNumber()) {
		return nil, ErrOrderNumberFormat
	}

	classification := calendar.Classify(start)
	if !classification.EntriesPermitted() {
		return nil, &DayNotBookableError{Date: sub.StartDate, Kind: classification.Kind, Name: classification.Name}
	}

	return []Entry{{
		ManagerName: sub.ManagerName,
		Date:        start,
		Activity:    sub.Activity,
		Duration:    sub.Duration,
		DayType:     classification.Kind,
		Comment:     sub.Comment,
	}}, nil
}

func expandAbsence(sub Submission, start time.Time) ([]Entry, error) {
	end := start
	if strings.TrimSpace(sub.EndDate) != "" {
		parsed, err := calendar.ParseDate(sub.EndDate)
		if err != nil {
			return nil, &InvalidDateError{Field: "end_date", Value: sub.EndDate}
		}
		if parsed.Before(start) {
			return nil, ErrEndBeforeStart
		}
		end = parsed
	}

	if end.Equal(start) {
		// Single-day absence: one entry, restricted to the same day kinds
		// a range expansion would accept.
		classification := calendar.Classify(start)
		if !classification.AbsenceEligible() {
			return nil, &DayNotBookableError{Date: sub.StartDate, Kind: classification.Kind, Name: classification.Name}
		}
		return []Entry{{
			ManagerName: sub.ManagerName,
			Date:        start,
			Activity:    sub.Activity,
			Duration:    sub.Duration,
			DayType:     classification.Kind,
			Comment:     sub.Comment,
		}}, nil
	}

	entries := make([]Entry, 0, int(end.Sub(start).Hours()/24)+1)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		classification := calendar.Classify(day)
		if !classification.AbsenceEligible() {
			continue
		}
		entries = append(entries, Entry{
			ManagerName: sub.ManagerName,
			Date:        day,
			Activity:    sub.Activity,
			Duration:    sub.Duration,
			DayType:     classification.Kind,
			Comment:     sub.Comment,
		})
	}

	if len(entries) == 0 {
		return nil, ErrNoWorkdaysInRange
	}
	return entries, nil
}

// CheckDailyLimit rejects a requested duration that would push the day's
// recorded sum above the limit. The comparison is strict: landing exactly
// on the limit is allowed.
func CheckDailyLimit(date string, recorded, requested decimal.Decimal) error {
	if recorded.Add(requested).GreaterThan(DailyLimitHours) {
		return &DailyLimitError{Date: date, Recorded: recorded, Requested: requested}
	}
	return nil
}
