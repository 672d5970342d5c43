package persistence

import "time"

// TimeEntry is a stored time recording row. Dates are ISO yyyy-MM-dd
// strings and the order_nr column carries the "Absent" sentinel for
// absences; the tagged representation lives above this layer.
type TimeEntry struct {
	ID          string
	ManagerName string
	Date        string
	OrderNr     string
	Duration    float64
	DayType     string
	Comment     string
	CreatedAt   time.Time
}

// User is a stored account. Usernames are unique case-insensitively.
type User struct {
	Username     string
	PasswordHash string
	FullName     string
	Role         string
}

// Roles stored in the users table.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// HiddenOrder suppresses one order number from a manager's suggestions.
type HiddenOrder struct {
	ManagerName string
	OrderNr     string
}

// Session is a stored authentication session.
type Session struct {
	ID        string
	Username  string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	RevokedAt *time.Time
}

// ManagerHours is one aggregation row of total hours per manager.
type ManagerHours struct {
	ManagerName string
	Hours       float64
}

// DateHours is one aggregation row of hours per calendar date.
type DateHours struct {
	Date  string
	Hours float64
}

// ManagerDateHours is one aggregation row of hours per manager and date.
type ManagerDateHours struct {
	ManagerName string
	Date        string
	Hours       float64
}

// OrderHours is one aggregation row of total hours per order number.
type OrderHours struct {
	OrderNr string
	Hours   float64
}

// ManagerSplit is one aggregation row splitting a manager's hours into
// billable work and recorded absence.
type ManagerSplit struct {
	ManagerName string
	Billable    float64
	Absent      float64
}

// ManagerWeekend is one aggregation row of weekend hours against the
// manager's overall total.
type ManagerWeekend struct {
	ManagerName  string
	WeekendHours float64
	TotalHours   float64
}
