package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/example/pm-timetracker/internal/persistence"
)

// AccountStore captures the persistence operations needed by the user
// service.
type AccountStore interface {
	CreateUser(ctx context.Context, user persistence.User) error
	GetUserByUsername(ctx context.Context, username string) (persistence.User, error)
	ListUsers(ctx context.Context) ([]persistence.User, error)
	UpdatePassword(ctx context.Context, username, passwordHash string) error
	CountUsers(ctx context.Context) (int, error)
}

// PasswordHasher produces a stored hash for a plaintext password.
type PasswordHasher func(password string) (string, error)

// SeedUser is one roster account applied to an empty user table.
type SeedUser struct {
	Username string
	FullName string
	Password string
	IsAdmin  bool
}

const minPasswordLength = 8

// UserService manages accounts and password changes.
type UserService struct {
	users          AccountStore
	hashPassword   PasswordHasher
	verifyPassword PasswordVerifier
	logger         *slog.Logger
}

// NewUserService wires dependencies for the user service.
func NewUserService(users AccountStore, hash PasswordHasher, verify PasswordVerifier, logger *slog.Logger) *UserService {
	if hash == nil {
		hash = func(password string) (string, error) {
			return CreatePasswordHash(password, DefaultArgon2idParams)
		}
	}
	if verify == nil {
		verify = VerifyPassword
	}
	return &UserService{
		users:          users,
		hashPassword:   hash,
		verifyPassword: verify,
		logger:         defaultLogger(logger),
	}
}

func (s *UserService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "UserService", operation, attrs...)
}

// ListUsers returns all accounts for administrators.
func (s *UserService) ListUsers(ctx context.Context, principal Principal) ([]User, error) {
	if s == nil {
		return nil, fmt.Errorf("UserService is nil")
	}
	if s.users == nil {
		return nil, fmt.Errorf("account store not configured")
	}
	if !principal.IsAdmin {
		return nil, ErrUnauthorized
	}

	stored, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}
	users := make([]User, 0, len(stored))
	for _, row := range stored {
		users = append(users, userFromStored(row))
	}
	return users, nil
}

// ChangePassword replaces the principal's own password after verifying
// the current one.
func (s *UserService) ChangePassword(ctx context.Context, params ChangePasswordParams) error {
	if s == nil {
		return fmt.Errorf("UserService is nil")
	}
	if s.users == nil {
		return fmt.Errorf("account store not configured")
	}

	logger := s.loggerWith(ctx, "ChangePassword", "username", params.Principal.Username)

	if vErr := validatePassword(params.NewPassword); vErr.HasErrors() {
		return vErr
	}

	stored, err := s.users.GetUserByUsername(ctx, params.Principal.Username)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return ErrUnauthorized
		}
		return err
	}
	if err := s.verifyPassword(stored.PasswordHash, params.CurrentPassword); err != nil {
		logger.ErrorContext(ctx, "password change rejected", "error", ErrInvalidCredentials, "error_kind", ErrorKind(ErrInvalidCredentials))
		return ErrInvalidCredentials
	}

	hash, err := s.hashPassword(params.NewPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, stored.Username, hash); err != nil {
		return mapRepoError(err)
	}
	logger.InfoContext(ctx, "password changed")
	return nil
}

// ResetPassword sets a new password for any account. Administrators only.
func (s *UserService) ResetPassword(ctx context.Context, params ResetPasswordParams) error {
	if s == nil {
		return fmt.Errorf("UserService is nil")
	}
	if s.users == nil {
		return fmt.Errorf("account store not configured")
	}
	if !params.Principal.IsAdmin {
		return ErrUnauthorized
	}

	logger := s.loggerWith(ctx, "ResetPassword", "username", params.Username)

	if vErr := validatePassword(params.NewPassword); vErr.HasErrors() {
		return vErr
	}

	stored, err := s.users.GetUserByUsername(ctx, strings.TrimSpace(params.Username))
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	hash, err := s.hashPassword(params.NewPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, stored.Username, hash); err != nil {
		return mapRepoError(err)
	}
	logger.InfoContext(ctx, "password reset")
	return nil
}

// SeedUsers creates the roster accounts when the user table is empty. It
// is a no-op otherwise.
func (s *UserService) SeedUsers(ctx context.Context, roster []SeedUser) error {
	if s == nil {
		return fmt.Errorf("UserService is nil")
	}
	if s.users == nil {
		return fmt.Errorf("account store not configured")
	}

	count, err := s.users.CountUsers(ctx)
	if err != nil {
		return mapRepoError(err)
	}
	if count > 0 {
		return nil
	}

	logger := s.loggerWith(ctx, "SeedUsers", "roster_size", len(roster))
	for _, seed := range roster {
		hash, err := s.hashPassword(seed.Password)
		if err != nil {
			return err
		}
		role := persistence.RoleUser
		if seed.IsAdmin {
			role = persistence.RoleAdmin
		}
		if err := s.users.CreateUser(ctx, persistence.User{
			Username:     seed.Username,
			PasswordHash: hash,
			FullName:     seed.FullName,
			Role:         role,
		}); err != nil {
			return mapRepoError(err)
		}
	}
	logger.InfoContext(ctx, "seed roster applied")
	return nil
}

func validatePassword(password string) *ValidationError {
	vErr := &ValidationError{}
	if len(password) < minPasswordLength {
		vErr.add("password", fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	return vErr
}
