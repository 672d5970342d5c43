package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/pm-timetracker/internal/persistence"
)

var (
	entryCounter   uint64
	userCounter    uint64
	sessionCounter uint64
)

// referenceTime is a Monday so that generated entries land on a Werktag
// unless a test overrides the date.
var referenceTime = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ----------------------------- Entry fixtures -----------------------------

// EntryOption configures a generated time entry fixture.
type EntryOption func(*persistence.TimeEntry)

// NewEntryFixture returns a deterministic worked entry with optional
// overrides. Successive calls yield unique ids and creation timestamps.
func NewEntryFixture(opts ...EntryOption) persistence.TimeEntry {
	idx := atomic.AddUint64(&entryCounter, 1)
	entry := persistence.TimeEntry{
		ID:          fmt.Sprintf("entry-%03d", idx),
		ManagerName: "Sandra Bergmann",
		Date:        referenceTime.Format("2006-01-02"),
		OrderNr:     "1234567",
		Duration:    6,
		DayType:     "Werktag",
		CreatedAt:   referenceTime.Add(time.Duration(idx) * time.Minute),
	}
	for _, opt := range opts {
		opt(&entry)
	}
	return entry
}

// WithEntryID overrides the generated entry id.
func WithEntryID(id string) EntryOption {
	return func(e *persistence.TimeEntry) { e.ID = id }
}

// WithEntryManager overrides the manager name.
func WithEntryManager(name string) EntryOption {
	return func(e *persistence.TimeEntry) { e.ManagerName = name }
}

// WithEntryDate overrides the booked date and day type.
func WithEntryDate(date, dayType string) EntryOption {
	return func(e *persistence.TimeEntry) {
		e.Date = date
		e.DayType = dayType
	}
}

// WithEntryOrder overrides the order number.
func WithEntryOrder(orderNr string) EntryOption {
	return func(e *persistence.TimeEntry) { e.OrderNr = orderNr }
}

// WithEntryDuration overrides the booked hours.
func WithEntryDuration(hours float64) EntryOption {
	return func(e *persistence.TimeEntry) { e.Duration = hours }
}

// WithEntryAbsence marks the fixture as an absence row.
func WithEntryAbsence() EntryOption {
	return func(e *persistence.TimeEntry) { e.OrderNr = "Absent" }
}

// WithEntryComment overrides the free-text comment.
func WithEntryComment(comment string) EntryOption {
	return func(e *persistence.TimeEntry) { e.Comment = comment }
}

// ----------------------------- User fixtures ------------------------------

// UserOption configures a generated account fixture.
type UserOption func(*persistence.User)

// NewUserFixture returns a deterministic account with optional overrides.
func NewUserFixture(opts ...UserOption) persistence.User {
	idx := atomic.AddUint64(&userCounter, 1)
	user := persistence.User{
		Username:     fmt.Sprintf("pm%03d", idx),
		PasswordHash: fmt.Sprintf("hash-%03d", idx),
		FullName:     fmt.Sprintf("Projektleiter %03d", idx),
		Role:         persistence.RoleUser,
	}
	for _, opt := range opts {
		opt(&user)
	}
	return user
}

// WithUsername overrides the generated username.
func WithUsername(username string) UserOption {
	return func(u *persistence.User) { u.Username = username }
}

// WithFullName overrides the generated full name.
func WithFullName(name string) UserOption {
	return func(u *persistence.User) { u.FullName = name }
}

// WithPasswordHash overrides the generated password hash.
func WithPasswordHash(hash string) UserOption {
	return func(u *persistence.User) { u.PasswordHash = hash }
}

// WithAdminRole marks the fixture as an administrator.
func WithAdminRole() UserOption {
	return func(u *persistence.User) { u.Role = persistence.RoleAdmin }
}

// ---------------------------- Session fixtures ----------------------------

// SessionOption configures a generated session fixture.
type SessionOption func(*persistence.Session)

// NewSessionFixture returns a deterministic session valid for 24 hours from
// the reference time.
func NewSessionFixture(opts ...SessionOption) persistence.Session {
	idx := atomic.AddUint64(&sessionCounter, 1)
	session := persistence.Session{
		ID:        fmt.Sprintf("session-%03d", idx),
		Username:  "sbergmann",
		Token:     fmt.Sprintf("token-%03d", idx),
		ExpiresAt: referenceTime.Add(24 * time.Hour),
		CreatedAt: referenceTime,
		UpdatedAt: referenceTime,
	}
	for _, opt := range opts {
		opt(&session)
	}
	return session
}

// WithSessionUsername overrides the session owner.
func WithSessionUsername(username string) SessionOption {
	return func(s *persistence.Session) { s.Username = username }
}

// WithSessionToken overrides the generated token.
func WithSessionToken(token string) SessionOption {
	return func(s *persistence.Session) { s.Token = token }
}

// WithSessionExpiry overrides the expiry instant.
func WithSessionExpiry(expiresAt time.Time) SessionOption {
	return func(s *persistence.Session) { s.ExpiresAt = expiresAt }
}
