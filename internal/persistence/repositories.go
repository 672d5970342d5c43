package persistence

import (
	"context"
	"time"
)

// EntryFilter narrows time entry listings. Empty fields leave the
// corresponding bound open; date bounds are inclusive.
type EntryFilter struct {
	ManagerName string
	From        string
	To          string
}

// ReportFilter scopes aggregate report queries. Both bounds are inclusive;
// ExcludeOrders removes the listed order numbers from every aggregate.
type ReportFilter struct {
	From          string
	To            string
	ExcludeOrders []string
}

// EntryRepository stores immutable time entries.
type EntryRepository interface {
	InsertEntry(ctx context.Context, entry TimeEntry) error
	// InsertEntries writes the batch atomically: all rows commit or none do.
	InsertEntries(ctx context.Context, entries []TimeEntry) error
	DeleteEntry(ctx context.Context, id string) error
	GetEntry(ctx context.Context, id string) (TimeEntry, error)
	ListEntries(ctx context.Context, filter EntryFilter) ([]TimeEntry, error)
	// DailySum returns the recorded duration sum for one manager and date.
	DailySum(ctx context.Context, managerName, date string) (float64, error)
	// DailySums returns per-date duration sums for one manager over an
	// inclusive date range.
	DailySums(ctx context.Context, managerName, from, to string) ([]DateHours, error)
	// RecentOrders returns the manager's most recently used distinct order
	// numbers, newest first, excluding the absence sentinel, reserved 99…
	// numbers and hidden orders.
	RecentOrders(ctx context.Context, managerName string, limit int) ([]string, error)
}

// HiddenOrderRepository stores per-manager hidden order numbers.
type HiddenOrderRepository interface {
	// HideOrder is idempotent: hiding an already hidden order is a no-op.
	HideOrder(ctx context.Context, managerName, orderNr string) error
	ListHiddenOrders(ctx context.Context, managerName string) ([]string, error)
}

// ReportRepository computes the aggregate dashboard queries directly in
// the store.
type ReportRepository interface {
	HoursByManager(ctx context.Context, filter ReportFilter) ([]ManagerHours, error)
	HoursByManagerAndDate(ctx context.Context, filter ReportFilter) ([]ManagerDateHours, error)
	TopOrders(ctx context.Context, filter ReportFilter, limit int) ([]OrderHours, error)
	// OrderDistribution aggregates hours per order, optionally scoped to a
	// single manager (empty manager means all managers combined).
	OrderDistribution(ctx context.Context, managerName string, filter ReportFilter) ([]OrderHours, error)
	BillableSplit(ctx context.Context, filter ReportFilter) ([]ManagerSplit, error)
	WeekendShare(ctx context.Context, filter ReportFilter) ([]ManagerWeekend, error)
	OrderManagerBreakdown(ctx context.Context, orderNr string, filter ReportFilter) ([]ManagerHours, error)
	// TotalsPerDate returns company-wide duration sums per date; callers
	// fold the rows into week buckets.
	TotalsPerDate(ctx context.Context, filter ReportFilter) ([]DateHours, error)
}

// UserRepository stores accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) error
	// GetUserByUsername resolves the account case-insensitively.
	GetUserByUsername(ctx context.Context, username string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	UpdatePassword(ctx context.Context, username, passwordHash string) error
	CountUsers(ctx context.Context) (int, error)
}

// SessionRepository stores authentication session state.
type SessionRepository interface {
	CreateSession(ctx context.Context, session Session) (Session, error)
	GetSession(ctx context.Context, token string) (Session, error)
	RevokeSession(ctx context.Context, token string, revokedAt time.Time) (Session, error)
	DeleteExpiredSessions(ctx context.Context, reference time.Time) error
}
