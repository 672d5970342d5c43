package sqlite

import (
	"context"
	"fmt"

	"github.com/example/pm-timetracker/internal/persistence"
)

// UserRepository implements persistence.UserRepository on SQLite.
type UserRepository struct {
	pool *ConnectionPool
}

// NewUserRepository creates a user repository backed by the given pool.
func NewUserRepository(pool *ConnectionPool) *UserRepository {
	return &UserRepository{pool: pool}
}

// CreateUser stores a new account.
func (r *UserRepository) CreateUser(ctx context.Context, user persistence.User) error {
	_, err := r.pool.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, full_name, role) VALUES (?, ?, ?, ?)`,
		user.Username, user.PasswordHash, user.FullName, user.Role)
	if err != nil {
		return mapError(err)
	}
	return nil
}

// GetUserByUsername resolves the account; the username column collates
// case-insensitively.
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (persistence.User, error) {
	var user persistence.User
	err := r.pool.db.QueryRowContext(ctx,
		`SELECT username, password_hash, full_name, role FROM users WHERE username = ?`,
		username).Scan(&user.Username, &user.PasswordHash, &user.FullName, &user.Role)
	if err != nil {
		return persistence.User{}, mapError(err)
	}
	return user, nil
}

// ListUsers returns all accounts ordered by username.
func (r *UserRepository) ListUsers(ctx context.Context) ([]persistence.User, error) {
	rows, err := r.pool.db.QueryContext(ctx,
		`SELECT username, password_hash, full_name, role FROM users ORDER BY username`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var users []persistence.User
	for rows.Next() {
		var user persistence.User
		if err := rows.Scan(&user.Username, &user.PasswordHash, &user.FullName, &user.Role); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return users, nil
}

// UpdatePassword replaces the stored hash for one account.
func (r *UserRepository) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	result, err := r.pool.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE username = ?`, passwordHash, username)
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

// CountUsers returns the number of stored accounts.
func (r *UserRepository) CountUsers(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, mapError(err)
	}
	return count, nil
}
