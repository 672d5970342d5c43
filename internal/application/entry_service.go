package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/pm-timetracker/internal/calendar"
	"github.com/example/pm-timetracker/internal/persistence"
	"github.com/example/pm-timetracker/internal/timesheet"
)

// EntryStore captures the persistence operations needed by the entry service.
type EntryStore interface {
	InsertEntries(ctx context.Context, entries []persistence.TimeEntry) error
	DeleteEntry(ctx context.Context, id string) error
	GetEntry(ctx context.Context, id string) (persistence.TimeEntry, error)
	ListEntries(ctx context.Context, filter persistence.EntryFilter) ([]persistence.TimeEntry, error)
	DailySum(ctx context.Context, managerName, date string) (float64, error)
	DailySums(ctx context.Context, managerName, from, to string) ([]persistence.DateHours, error)
}

// WriteListener is notified after every successful entry mutation.
type WriteListener interface {
	EntriesChanged()
}

// EntryService orchestrates validation, range expansion and persistence
// for time entries.
type EntryService struct {
	entries     EntryStore
	listener    WriteListener
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewEntryService wires dependencies for the entry service. The listener
// is optional.
func NewEntryService(entries EntryStore, listener WriteListener, idGenerator func() string, now func() time.Time, logger *slog.Logger) *EntryService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &EntryService{
		entries:     entries,
		listener:    listener,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *EntryService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "EntryService", operation, attrs...)
}

// Record validates the submission, expands absence ranges, re-checks the
// daily limit for every produced day and persists the batch atomically.
func (s *EntryService) Record(ctx context.Context, params RecordEntriesParams) (result []Entry, err error) {
	if s == nil {
		return nil, fmt.Errorf("EntryService is nil")
	}
	if s.entries == nil {
		return nil, fmt.Errorf("entry store not configured")
	}

	logger := s.loggerWith(ctx, "Record",
		"manager", params.Principal.ManagerName,
		"date", params.Input.StartDate,
		"absence", params.Input.Absence,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "entry submission failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("entry_count", len(result)).InfoContext(ctx, "entries recorded")
	}()

	activity := timesheet.Worked(params.Input.OrderNumber)
	if params.Input.Absence {
		activity = timesheet.Absence()
	}

	expanded, err := timesheet.Expand(timesheet.Submission{
		ManagerName: params.Principal.ManagerName,
		StartDate:   params.Input.StartDate,
		EndDate:     params.Input.EndDate,
		Activity:    activity,
		Duration:    decimal.NewFromFloat(params.Input.Duration),
		Comment:     params.Input.Comment,
	})
	if err != nil {
		return nil, validationFromTimesheet(err)
	}

	now := s.now()
	batch := make([]persistence.TimeEntry, 0, len(expanded))
	for _, entry := range expanded {
		date := entry.Date.Format(calendar.DateLayout)

		recorded, sumErr := s.entries.DailySum(ctx, entry.ManagerName, date)
		if sumErr != nil {
			return nil, sumErr
		}
		if capErr := timesheet.CheckDailyLimit(date, decimal.NewFromFloat(recorded), entry.Duration); capErr != nil {
			return nil, validationFromTimesheet(capErr)
		}

		duration, _ := entry.Duration.Float64()
		batch = append(batch, persistence.TimeEntry{
			ID:          s.idGenerator(),
			ManagerName: entry.ManagerName,
			Date:        date,
			OrderNr:     entry.Activity.StorageValue(),
			Duration:    duration,
			DayType:     string(entry.DayType),
			Comment:     entry.Comment,
			CreatedAt:   now,
		})
	}

	if err = s.entries.InsertEntries(ctx, batch); err != nil {
		err = mapRepoError(err)
		return nil, err
	}
	s.notifyWrite()

	result = make([]Entry, 0, len(batch))
	for _, stored := range batch {
		result = append(result, entryFromStored(stored))
	}
	return result, nil
}

// List returns entries for one manager, or for everyone when ManagerName
// is empty and the principal is an admin.
func (s *EntryService) List(ctx context.Context, params ListEntriesParams) ([]Entry, error) {
	if s == nil {
		return nil, fmt.Errorf("EntryService is nil")
	}
	if s.entries == nil {
		return nil, fmt.Errorf("entry store not configured")
	}

	managerName, err := s.resolveManager(params.Principal, params.ManagerName)
	if err != nil {
		return nil, err
	}

	stored, err := s.entries.ListEntries(ctx, persistence.EntryFilter{
		ManagerName: managerName,
		From:        params.From,
		To:          params.To,
	})
	if err != nil {
		return nil, mapRepoError(err)
	}

	entries := make([]Entry, 0, len(stored))
	for _, row := range stored {
		entries = append(entries, entryFromStored(row))
	}
	return entries, nil
}

// Delete removes one entry. Non-admin principals may only delete their own.
func (s *EntryService) Delete(ctx context.Context, params DeleteEntryParams) error {
	if s == nil {
		return fmt.Errorf("EntryService is nil")
	}
	if s.entries == nil {
		return fmt.Errorf("entry store not configured")
	}

	logger := s.loggerWith(ctx, "Delete", "entry_id", params.EntryID)

	stored, err := s.entries.GetEntry(ctx, params.EntryID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !params.Principal.IsAdmin && stored.ManagerName != params.Principal.ManagerName {
		return ErrUnauthorized
	}

	if err := s.entries.DeleteEntry(ctx, params.EntryID); err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "entry deletion failed", "error", err, "error_kind", ErrorKind(err))
		return err
	}
	s.notifyWrite()
	logger.InfoContext(ctx, "entry deleted")
	return nil
}

// DailySum returns the recorded hours for one manager and date.
func (s *EntryService) DailySum(ctx context.Context, params DailySumParams) (float64, error) {
	if s == nil {
		return 0, fmt.Errorf("EntryService is nil")
	}
	if s.entries == nil {
		return 0, fmt.Errorf("entry store not configured")
	}

	managerName, err := s.resolveManager(params.Principal, params.ManagerName)
	if err != nil {
		return 0, err
	}
	if managerName == "" {
		return 0, ErrUnauthorized
	}
	if _, err := calendar.ParseDate(params.Date); err != nil {
		vErr := &ValidationError{}
		vErr.add("date", "date must be formatted yyyy-MM-dd")
		return 0, vErr
	}

	sum, err := s.entries.DailySum(ctx, managerName, params.Date)
	if err != nil {
		return 0, mapRepoError(err)
	}
	return sum, nil
}

// WeeklySums folds one manager's per-date sums into ISO week totals,
// ascending by week.
func (s *EntryService) WeeklySums(ctx context.Context, params WeeklySumsParams) ([]WeeklySum, error) {
	if s == nil {
		return nil, fmt.Errorf("EntryService is nil")
	}
	if s.entries == nil {
		return nil, fmt.Errorf("entry store not configured")
	}

	managerName, err := s.resolveManager(params.Principal, params.ManagerName)
	if err != nil {
		return nil, err
	}
	if managerName == "" {
		return nil, ErrUnauthorized
	}

	daily, err := s.entries.DailySums(ctx, managerName, params.From, params.To)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return foldWeeks(daily)
}

// resolveManager applies the ownership rule shared by the read paths: an
// empty name defaults to the principal's own, any other name requires an
// admin principal. Admins may pass an empty name through to mean all
// managers.
func (s *EntryService) resolveManager(principal Principal, requested string) (string, error) {
	if principal.IsAdmin {
		return requested, nil
	}
	if requested == "" || requested == principal.ManagerName {
		return principal.ManagerName, nil
	}
	return "", ErrUnauthorized
}

func (s *EntryService) notifyWrite() {
	if s.listener != nil {
		s.listener.EntriesChanged()
	}
}

// foldWeeks buckets per-date sums into ISO week totals preserving
// chronological order.
func foldWeeks(daily []persistence.DateHours) ([]WeeklySum, error) {
	var sums []WeeklySum
	index := make(map[string]int)
	for _, row := range daily {
		day, err := calendar.ParseDate(row.Date)
		if err != nil {
			return nil, fmt.Errorf("stored entry has malformed date %q: %w", row.Date, err)
		}
		week := calendar.ISOWeekKey(day)
		if i, ok := index[week]; ok {
			sums[i].Hours += row.Hours
			continue
		}
		index[week] = len(sums)
		sums = append(sums, WeeklySum{Week: week, Hours: row.Hours})
	}
	return sums, nil
}

func entryFromStored(stored persistence.TimeEntry) Entry {
	activity := timesheet.ActivityFromStorage(stored.OrderNr)
	entry := Entry{
		ID:          stored.ID,
		ManagerName: stored.ManagerName,
		Date:        stored.Date,
		Absence:     activity.IsAbsence(),
		OrderNumber: activity.OrderNumber(),
		Duration:    stored.Duration,
		DayType:     stored.DayType,
		Comment:     stored.Comment,
		CreatedAt:   stored.CreatedAt,
	}
	if day, err := calendar.ParseDate(stored.Date); err == nil {
		entry.DayName = calendar.WeekdayName(day)
	}
	return entry
}

// validationFromTimesheet converts the timesheet package's errors into
// field-keyed validation errors.
func validationFromTimesheet(err error) error {
	vErr := &ValidationError{}

	var invalidDate *timesheet.InvalidDateError
	var notBookable *timesheet.DayNotBookableError
	var dailyLimit *timesheet.DailyLimitError

	switch {
	case errors.Is(err, timesheet.ErrManagerRequired):
		vErr.add("manager", "manager name is required")
	case errors.Is(err, timesheet.ErrDurationNotPositive):
		vErr.add("duration", "duration must be positive")
	case errors.Is(err, timesheet.ErrOrderNumberFormat):
		vErr.add("order_number", "order number must be 6 to 8 digits")
	case errors.Is(err, timesheet.ErrEndBeforeStart):
		vErr.add("end_date", "end date must not precede start date")
	case errors.Is(err, timesheet.ErrNoWorkdaysInRange):
		vErr.add("end_date", "range contains no bookable day")
	case errors.As(err, &invalidDate):
		vErr.add(invalidDate.Field, "date must be formatted yyyy-MM-dd")
	case errors.As(err, &notBookable):
		vErr.add("date", "day type does not permit entries")
	case errors.As(err, &dailyLimit):
		vErr.add("duration", "daily limit exceeded")
	default:
		return err
	}
	return vErr
}
