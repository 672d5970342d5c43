package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/example/pm-timetracker/internal/persistence"
)

// EntryRepository implements persistence.EntryRepository on SQLite.
type EntryRepository struct {
	pool *ConnectionPool
}

// NewEntryRepository creates an entry repository backed by the given pool.
func NewEntryRepository(pool *ConnectionPool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

const insertEntryQuery = `INSERT INTO time_entries
	(id, manager_name, date, order_nr, duration, day_type, comment, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

// InsertEntry stores one time entry.
func (r *EntryRepository) InsertEntry(ctx context.Context, entry persistence.TimeEntry) error {
	_, err := r.pool.db.ExecContext(ctx, insertEntryQuery,
		entry.ID, entry.ManagerName, entry.Date, entry.OrderNr,
		entry.Duration, entry.DayType, entry.Comment, formatTime(entry.CreatedAt))
	if err != nil {
		return mapError(err)
	}
	return nil
}

// InsertEntries stores the batch inside one transaction so a range
// expansion either lands completely or not at all.
func (r *EntryRepository) InsertEntries(ctx context.Context, entries []persistence.TimeEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, insertEntryQuery)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()
		for _, entry := range entries {
			if _, err := stmt.ExecContext(ctx,
				entry.ID, entry.ManagerName, entry.Date, entry.OrderNr,
				entry.Duration, entry.DayType, entry.Comment, formatTime(entry.CreatedAt)); err != nil {
				return mapError(err)
			}
		}
		return nil
	})
}

// DeleteEntry removes one entry by id.
func (r *EntryRepository) DeleteEntry(ctx context.Context, id string) error {
	result, err := r.pool.db.ExecContext(ctx, `DELETE FROM time_entries WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// GetEntry returns one entry by id.
func (r *EntryRepository) GetEntry(ctx context.Context, id string) (persistence.TimeEntry, error) {
	var entry persistence.TimeEntry
	var createdAt string
	err := r.pool.db.QueryRowContext(ctx,
		`SELECT id, manager_name, date, order_nr, duration, day_type, comment, created_at
		 FROM time_entries WHERE id = ?`, id).
		Scan(&entry.ID, &entry.ManagerName, &entry.Date, &entry.OrderNr,
			&entry.Duration, &entry.DayType, &entry.Comment, &createdAt)
	if err != nil {
		return persistence.TimeEntry{}, mapError(err)
	}
	entry.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return persistence.TimeEntry{}, err
	}
	return entry, nil
}

// ListEntries returns entries matching the filter ordered by date then
// creation time, newest first.
func (r *EntryRepository) ListEntries(ctx context.Context, filter persistence.EntryFilter) ([]persistence.TimeEntry, error) {
	query := `SELECT id, manager_name, date, order_nr, duration, day_type, comment, created_at
		FROM time_entries`
	conditions, args := entryConditions(filter)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date DESC, created_at DESC"

	rows, err := r.pool.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var entries []persistence.TimeEntry
	for rows.Next() {
		var entry persistence.TimeEntry
		var createdAt string
		if err := rows.Scan(&entry.ID, &entry.ManagerName, &entry.Date, &entry.OrderNr,
			&entry.Duration, &entry.DayType, &entry.Comment, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entry.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return entries, nil
}

func entryConditions(filter persistence.EntryFilter) ([]string, []any) {
	var conditions []string
	var args []any
	if filter.ManagerName != "" {
		conditions = append(conditions, "manager_name = ?")
		args = append(args, filter.ManagerName)
	}
	if filter.From != "" {
		conditions = append(conditions, "date >= ?")
		args = append(args, filter.From)
	}
	if filter.To != "" {
		conditions = append(conditions, "date <= ?")
		args = append(args, filter.To)
	}
	return conditions, args
}

// DailySum returns the recorded duration sum for one manager and date.
func (r *EntryRepository) DailySum(ctx context.Context, managerName, date string) (float64, error) {
	var sum float64
	err := r.pool.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(duration), 0) FROM time_entries WHERE manager_name = ? AND date = ?`,
		managerName, date).Scan(&sum)
	if err != nil {
		return 0, mapError(err)
	}
	return sum, nil
}

// DailySums returns per-date duration sums for one manager over an
// inclusive date range, ascending by date.
func (r *EntryRepository) DailySums(ctx context.Context, managerName, from, to string) ([]persistence.DateHours, error) {
	rows, err := r.pool.db.QueryContext(ctx,
		`SELECT date, SUM(duration) FROM time_entries
		 WHERE manager_name = ? AND date >= ? AND date <= ?
		 GROUP BY date ORDER BY date`,
		managerName, from, to)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var sums []persistence.DateHours
	for rows.Next() {
		var row persistence.DateHours
		if err := rows.Scan(&row.Date, &row.Hours); err != nil {
			return nil, fmt.Errorf("failed to scan daily sum: %w", err)
		}
		sums = append(sums, row)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return sums, nil
}

// RecentOrders returns the manager's most recently used distinct order
// numbers, newest first. Absence rows, reserved 99… numbers and hidden
// orders never appear.
func (r *EntryRepository) RecentOrders(ctx context.Context, managerName string, limit int) ([]string, error) {
	rows, err := r.pool.db.QueryContext(ctx,
		`SELECT order_nr FROM time_entries
		 WHERE manager_name = ?
		   AND order_nr != 'Absent'
		   AND order_nr NOT LIKE '99%'
		   AND order_nr NOT IN (SELECT order_nr FROM hidden_orders WHERE manager_name = ?)
		 GROUP BY order_nr
		 ORDER BY MAX(created_at) DESC, MAX(date) DESC
		 LIMIT ?`,
		managerName, managerName, limit)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var orders []string
	for rows.Next() {
		var orderNr string
		if err := rows.Scan(&orderNr); err != nil {
			return nil, fmt.Errorf("failed to scan order number: %w", err)
		}
		orders = append(orders, orderNr)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return orders, nil
}
