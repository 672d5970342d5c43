package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/pm-timetracker/internal/persistence/sqlite"
)

// SQLiteHarness provides repository access backed by a temporary SQLite
// database for integration-style persistence tests.
type SQLiteHarness struct {
	Pool         *sqlite.ConnectionPool
	Entries      *sqlite.EntryRepository
	Users        *sqlite.UserRepository
	HiddenOrders *sqlite.HiddenOrderRepository
	Sessions     *sqlite.SessionRepository
	Reports      *sqlite.ReportRepository

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness constructs a SQLiteHarness using a temporary file that is
// migrated automatically. Callers may optionally invoke Close, but the helper
// also registers a cleanup callback with the provided testing.TB.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	dir := tb.TempDir()
	path := filepath.Join(dir, "timetracker.db")

	pool, err := sqlite.Open(path)
	if err != nil {
		tb.Fatalf("failed to open database: %v", err)
	}

	if err := pool.Migrate(context.Background()); err != nil {
		_ = pool.Close()
		tb.Fatalf("failed to migrate database: %v", err)
	}

	harness := &SQLiteHarness{
		Pool:         pool,
		Entries:      sqlite.NewEntryRepository(pool),
		Users:        sqlite.NewUserRepository(pool),
		HiddenOrders: sqlite.NewHiddenOrderRepository(pool),
		Sessions:     sqlite.NewSessionRepository(pool),
		Reports:      sqlite.NewReportRepository(pool),
		cleanup: func() {
			_ = pool.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}
