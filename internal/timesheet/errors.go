package timesheet

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/example/pm-timetracker/internal/calendar"
)

var (
	// ErrManagerRequired is returned when a submission carries no manager name.
	ErrManagerRequired = errors.New("timesheet: manager name is required")
	// ErrDurationNotPositive is returned for zero or negative durations.
	ErrDurationNotPositive = errors.New("timesheet: duration must be positive")
	// ErrOrderNumberFormat is returned when a worked entry's order number is
	// not 6 to 8 digits.
	ErrOrderNumberFormat = errors.New("timesheet: order number must be 6 to 8 digits")
	// ErrEndBeforeStart is returned when an absence range ends before it starts.
	ErrEndBeforeStart = errors.New("timesheet: end date precedes start date")
	// ErrNoWorkdaysInRange is returned when an absence range contains no
	// eligible day.
	ErrNoWorkdaysInRange = errors.New("timesheet: no valid workdays in range")
)

// InvalidDateError reports an unparseable date field.
type InvalidDateError struct {
	Field string
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("timesheet: invalid %s %q", e.Field, e.Value)
}

// DayNotBookableError reports an entry on a day whose classification does
// not permit it.
type DayNotBookableError struct {
	Date string
	Kind calendar.Kind
	Name string
}

func (e *DayNotBookableError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("timesheet: no entries permitted on %s (%s, %s)", e.Date, e.Kind, e.Name)
	}
	return fmt.Sprintf("timesheet: no entries permitted on %s (%s)", e.Date, e.Kind)
}

// DailyLimitError reports a submission that would exceed the daily limit.
type DailyLimitError struct {
	Date      string
	Recorded  decimal.Decimal
	Requested decimal.Decimal
}

func (e *DailyLimitError) Error() string {
	return fmt.Sprintf("timesheet: daily limit exceeded on %s: %s recorded, %s requested, limit %s",
		e.Date, e.Recorded, e.Requested, DailyLimitHours)
}
