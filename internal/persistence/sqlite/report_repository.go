package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/pm-timetracker/internal/persistence"
)

// ReportRepository implements persistence.ReportRepository on SQLite. All
// aggregations run as GROUP BY queries in the store; week folding happens
// in the application layer.
type ReportRepository struct {
	pool *ConnectionPool
}

// NewReportRepository creates a report repository backed by the given pool.
func NewReportRepository(pool *ConnectionPool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

// reportConditions renders the shared WHERE fragment for report queries.
// It always returns at least the `1=1` guard so callers can append AND
// clauses unconditionally.
func reportConditions(filter persistence.ReportFilter) (string, []any) {
	conditions := []string{"1=1"}
	var args []any
	if filter.From != "" {
		conditions = append(conditions, "date >= ?")
		args = append(args, filter.From)
	}
	if filter.To != "" {
		conditions = append(conditions, "date <= ?")
		args = append(args, filter.To)
	}
	for _, orderNr := range filter.ExcludeOrders {
		conditions = append(conditions, "order_nr != ?")
		args = append(args, orderNr)
	}
	return strings.Join(conditions, " AND "), args
}

// HoursByManager sums all recorded hours per manager, highest first.
func (r *ReportRepository) HoursByManager(ctx context.Context, filter persistence.ReportFilter) ([]persistence.ManagerHours, error) {
	where, args := reportConditions(filter)
	query := fmt.Sprintf(`SELECT manager_name, SUM(duration) FROM time_entries
		WHERE %s GROUP BY manager_name ORDER BY SUM(duration) DESC, manager_name`, where)
	return r.queryManagerHours(ctx, query, args...)
}

// HoursByManagerAndDate sums hours per manager and calendar date.
func (r *ReportRepository) HoursByManagerAndDate(ctx context.Context, filter persistence.ReportFilter) ([]persistence.ManagerDateHours, error) {
	where, args := reportConditions(filter)
	query := fmt.Sprintf(`SELECT manager_name, date, SUM(duration) FROM time_entries
		WHERE %s GROUP BY manager_name, date ORDER BY manager_name, date`, where)

	rows, err := r.pool.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var result []persistence.ManagerDateHours
	for rows.Next() {
		var row persistence.ManagerDateHours
		if err := rows.Scan(&row.ManagerName, &row.Date, &row.Hours); err != nil {
			return nil, fmt.Errorf("failed to scan manager date hours: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// TopOrders returns the highest-volume order numbers, largest first.
func (r *ReportRepository) TopOrders(ctx context.Context, filter persistence.ReportFilter, limit int) ([]persistence.OrderHours, error) {
	where, args := reportConditions(filter)
	query := fmt.Sprintf(`SELECT order_nr, SUM(duration) FROM time_entries
		WHERE %s AND order_nr != 'Absent'
		GROUP BY order_nr ORDER BY SUM(duration) DESC, order_nr LIMIT ?`, where)
	args = append(args, limit)
	return r.queryOrderHours(ctx, query, args...)
}

// OrderDistribution aggregates hours per order for one manager, or for
// everyone when managerName is empty.
func (r *ReportRepository) OrderDistribution(ctx context.Context, managerName string, filter persistence.ReportFilter) ([]persistence.OrderHours, error) {
	where, args := reportConditions(filter)
	query := fmt.Sprintf(`SELECT order_nr, SUM(duration) FROM time_entries
		WHERE %s AND order_nr != 'Absent'`, where)
	if managerName != "" {
		query += " AND manager_name = ?"
		args = append(args, managerName)
	}
	query += " GROUP BY order_nr ORDER BY SUM(duration) DESC, order_nr"
	return r.queryOrderHours(ctx, query, args...)
}

// BillableSplit splits every manager's hours into worked orders and
// recorded absence.
func (r *ReportRepository) BillableSplit(ctx context.Context, filter persistence.ReportFilter) ([]persistence.ManagerSplit, error) {
	where, args := reportConditions(filter)
	query := fmt.Sprintf(`SELECT manager_name,
		COALESCE(SUM(CASE WHEN order_nr != 'Absent' THEN duration END), 0),
		COALESCE(SUM(CASE WHEN order_nr = 'Absent' THEN duration END), 0)
		FROM time_entries WHERE %s
		GROUP BY manager_name ORDER BY manager_name`, where)

	rows, err := r.pool.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var result []persistence.ManagerSplit
	for rows.Next() {
		var row persistence.ManagerSplit
		if err := rows.Scan(&row.ManagerName, &row.Billable, &row.Absent); err != nil {
			return nil, fmt.Errorf("failed to scan billable split: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// WeekendShare returns each manager's weekend hours against their overall
// total. Only Saturdays are bookable, but the match covers Sonntag too so
// imported rows with Sunday entries still count as weekend work.
func (r *ReportRepository) WeekendShare(ctx context.Context, filter persistence.ReportFilter) ([]persistence.ManagerWeekend, error) {
	where, args := reportConditions(filter)
	query := fmt.Sprintf(`SELECT manager_name,
		COALESCE(SUM(CASE WHEN day_type IN ('Samstag', 'Sonntag') THEN duration END), 0),
		SUM(duration)
		FROM time_entries WHERE %s
		GROUP BY manager_name ORDER BY manager_name`, where)

	rows, err := r.pool.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var result []persistence.ManagerWeekend
	for rows.Next() {
		var row persistence.ManagerWeekend
		if err := rows.Scan(&row.ManagerName, &row.WeekendHours, &row.TotalHours); err != nil {
			return nil, fmt.Errorf("failed to scan weekend share: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// OrderManagerBreakdown sums hours per manager for one order number.
func (r *ReportRepository) OrderManagerBreakdown(ctx context.Context, orderNr string, filter persistence.ReportFilter) ([]persistence.ManagerHours, error) {
	where, args := reportConditions(filter)
	query := fmt.Sprintf(`SELECT manager_name, SUM(duration) FROM time_entries
		WHERE %s AND order_nr = ?
		GROUP BY manager_name ORDER BY SUM(duration) DESC, manager_name`, where)
	args = append(args, orderNr)
	return r.queryManagerHours(ctx, query, args...)
}

// TotalsPerDate sums company-wide hours per calendar date, ascending.
func (r *ReportRepository) TotalsPerDate(ctx context.Context, filter persistence.ReportFilter) ([]persistence.DateHours, error) {
	where, args := reportConditions(filter)
	query := fmt.Sprintf(`SELECT date, SUM(duration) FROM time_entries
		WHERE %s GROUP BY date ORDER BY date`, where)

	rows, err := r.pool.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var result []persistence.DateHours
	for rows.Next() {
		var row persistence.DateHours
		if err := rows.Scan(&row.Date, &row.Hours); err != nil {
			return nil, fmt.Errorf("failed to scan date total: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

func (r *ReportRepository) queryManagerHours(ctx context.Context, query string, args ...any) ([]persistence.ManagerHours, error) {
	rows, err := r.pool.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var result []persistence.ManagerHours
	for rows.Next() {
		var row persistence.ManagerHours
		if err := rows.Scan(&row.ManagerName, &row.Hours); err != nil {
			return nil, fmt.Errorf("failed to scan manager hours: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

func (r *ReportRepository) queryOrderHours(ctx context.Context, query string, args ...any) ([]persistence.OrderHours, error) {
	rows, err := r.pool.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var result []persistence.OrderHours
	for rows.Next() {
		var row persistence.OrderHours
		if err := rows.Scan(&row.OrderNr, &row.Hours); err != nil {
			return nil, fmt.Errorf("failed to scan order hours: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return result, nil
}
