package sqlite

import (
	"context"
	"fmt"
)

// HiddenOrderRepository implements persistence.HiddenOrderRepository on
// SQLite.
type HiddenOrderRepository struct {
	pool *ConnectionPool
}

// NewHiddenOrderRepository creates a hidden order repository backed by the
// given pool.
func NewHiddenOrderRepository(pool *ConnectionPool) *HiddenOrderRepository {
	return &HiddenOrderRepository{pool: pool}
}

// HideOrder records the order as hidden for the manager. Hiding an already
// hidden order is a no-op.
func (r *HiddenOrderRepository) HideOrder(ctx context.Context, managerName, orderNr string) error {
	_, err := r.pool.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO hidden_orders (manager_name, order_nr) VALUES (?, ?)`,
		managerName, orderNr)
	if err != nil {
		return mapError(err)
	}
	return nil
}

// ListHiddenOrders returns the manager's hidden order numbers sorted
// ascending.
func (r *HiddenOrderRepository) ListHiddenOrders(ctx context.Context, managerName string) ([]string, error) {
	rows, err := r.pool.db.QueryContext(ctx,
		`SELECT order_nr FROM hidden_orders WHERE manager_name = ? ORDER BY order_nr`,
		managerName)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var orders []string
	for rows.Next() {
		var orderNr string
		if err := rows.Scan(&orderNr); err != nil {
			return nil, fmt.Errorf("failed to scan hidden order: %w", err)
		}
		orders = append(orders, orderNr)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return orders, nil
}
