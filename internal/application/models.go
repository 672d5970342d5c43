package application

import "time"

// Principal represents the authenticated user invoking a service method.
// ManagerName is the display name time entries are booked under.
type Principal struct {
	Username    string
	ManagerName string
	IsAdmin     bool
}

// User represents an account exposed by the application services.
type User struct {
	Username string
	FullName string
	IsAdmin  bool
}

// Session represents an authenticated session issued to a user.
type Session struct {
	ID        string
	Username  string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	RevokedAt *time.Time
}

// AuthenticateParams captures the data required to authenticate a user.
type AuthenticateParams struct {
	Username string
	Password string
}

// AuthenticateResult captures the outcome of a successful authentication attempt.
type AuthenticateResult struct {
	User    User
	Session Session
}

// EntryInput captures caller provided time entry fields. EndDate is only
// honoured for absences; Duration is in hours.
type EntryInput struct {
	StartDate   string
	EndDate     string
	Absence     bool
	OrderNumber string
	Duration    float64
	Comment     string
}

// RecordEntriesParams wraps the data required to submit a time entry or
// absence range.
type RecordEntriesParams struct {
	Principal Principal
	Input     EntryInput
}

// Entry represents a persisted time entry.
type Entry struct {
	ID          string
	ManagerName string
	Date        string
	Absence     bool
	OrderNumber string
	Duration    float64
	DayType     string
	DayName     string
	Comment     string
	CreatedAt   time.Time
}

// ListEntriesParams wraps the filters for an entry listing. An empty
// ManagerName means all managers, which requires an admin principal.
type ListEntriesParams struct {
	Principal   Principal
	ManagerName string
	From        string
	To          string
}

// DailySumParams wraps the inputs for a single-day duration sum.
type DailySumParams struct {
	Principal   Principal
	ManagerName string
	Date        string
}

// WeeklySumsParams wraps the inputs for per-ISO-week duration sums.
type WeeklySumsParams struct {
	Principal   Principal
	ManagerName string
	From        string
	To          string
}

// WeeklySum is the recorded duration total for one ISO week.
type WeeklySum struct {
	Week  string
	Hours float64
}

// DeleteEntryParams wraps the data required to delete an entry.
type DeleteEntryParams struct {
	Principal Principal
	EntryID   string
}

// HideOrderParams wraps the data required to hide an order number from a
// manager's suggestions.
type HideOrderParams struct {
	Principal   Principal
	OrderNumber string
}

// ReportWindow scopes report queries to an inclusive date range with
// optional excluded order numbers.
type ReportWindow struct {
	From          string
	To            string
	ExcludeOrders []string
}

// ManagerTotal is the aggregated hours for one manager.
type ManagerTotal struct {
	ManagerName string
	Hours       float64
}

// ManagerWeekTotal is the aggregated hours for one manager in one ISO week.
type ManagerWeekTotal struct {
	ManagerName string
	Week        string
	Hours       float64
}

// OrderTotal is the aggregated hours for one order number.
type OrderTotal struct {
	OrderNumber string
	Hours       float64
}

// BillableRatio splits one manager's hours into worked and absent shares.
type BillableRatio struct {
	ManagerName   string
	BillableHours float64
	AbsentHours   float64
}

// WeekendRatio relates one manager's Saturday hours to their total.
type WeekendRatio struct {
	ManagerName  string
	WeekendHours float64
	TotalHours   float64
}

// WeekTrendPoint is one ISO week in the company-wide trend, with the
// change against the preceding week.
type WeekTrendPoint struct {
	Week     string
	Hours    float64
	DeltaPct *float64
}

// ExportParams wraps the filters for an xlsx export. An empty ManagerName
// exports all managers, which requires an admin principal.
type ExportParams struct {
	Principal   Principal
	ManagerName string
	From        string
	To          string
}

// ChangePasswordParams wraps a self-service password change.
type ChangePasswordParams struct {
	Principal       Principal
	CurrentPassword string
	NewPassword     string
}

// ResetPasswordParams wraps an administrative password reset.
type ResetPasswordParams struct {
	Principal   Principal
	Username    string
	NewPassword string
}
