package sqlite

import (
	"context"
	"fmt"
)

// schema is the complete database layout. All statements are idempotent so
// Migrate can run on every startup against new and existing files alike.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS time_entries (
		id TEXT PRIMARY KEY,
		manager_name TEXT NOT NULL,
		date TEXT NOT NULL,
		order_nr TEXT NOT NULL,
		duration REAL NOT NULL CHECK (duration > 0),
		day_type TEXT NOT NULL,
		comment TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_manager_date ON time_entries (manager_name, date)`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_date ON time_entries (date)`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_order ON time_entries (order_nr)`,
	`CREATE TABLE IF NOT EXISTS users (
		username TEXT PRIMARY KEY COLLATE NOCASE,
		password_hash TEXT NOT NULL,
		full_name TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('admin', 'user'))
	)`,
	`CREATE TABLE IF NOT EXISTS hidden_orders (
		manager_name TEXT NOT NULL,
		order_nr TEXT NOT NULL,
		PRIMARY KEY (manager_name, order_nr)
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		token TEXT NOT NULL UNIQUE,
		expires_at TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		revoked_at TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_expires ON sessions (expires_at)`,
}

// Migrate applies the schema to the connected database.
func (cp *ConnectionPool) Migrate(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := cp.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
