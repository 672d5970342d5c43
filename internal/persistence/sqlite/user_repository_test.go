package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/example/pm-timetracker/internal/persistence"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	pool, cleanup := setupTestPool(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewUserRepository(pool)

	user := persistence.User{
		Username:     "sbergmann",
		PasswordHash: "hash",
		FullName:     "Sandra Bergmann",
		Role:         persistence.RoleUser,
	}
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	got, err := repo.GetUserByUsername(ctx, "sbergmann")
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if got.FullName != "Sandra Bergmann" {
		t.Errorf("Expected full name 'Sandra Bergmann', got '%s'", got.FullName)
	}
	if got.Role != persistence.RoleUser {
		t.Errorf("Expected role '%s', got '%s'", persistence.RoleUser, got.Role)
	}
}

func TestUserRepository_GetUserByUsername_CaseInsensitive(t *testing.T) {
	pool, cleanup := setupTestPool(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewUserRepository(pool)

	user := persistence.User{
		Username:     "SBergmann",
		PasswordHash: "hash",
		FullName:     "Sandra Bergmann",
		Role:         persistence.RoleUser,
	}
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	got, err := repo.GetUserByUsername(ctx, "sbergmann")
	if err != nil {
		t.Fatalf("Expected case-insensitive lookup to succeed: %v", err)
	}
	if got.Username != "SBergmann" {
		t.Errorf("Expected stored casing to survive, got '%s'", got.Username)
	}
}

func TestUserRepository_CreateUser_DuplicateUsername(t *testing.T) {
	pool, cleanup := setupTestPool(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewUserRepository(pool)

	user := persistence.User{Username: "sbergmann", PasswordHash: "hash", FullName: "Sandra Bergmann", Role: persistence.RoleUser}
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	user.Username = "SBERGMANN"
	err := repo.CreateUser(ctx, user)
	if !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("Expected ErrDuplicate for case-variant username, got %v", err)
	}
}

func TestUserRepository_GetUserByUsername_NotFound(t *testing.T) {
	pool, cleanup := setupTestPool(t)
	defer cleanup()

	repo := NewUserRepository(pool)
	_, err := repo.GetUserByUsername(context.Background(), "nobody")
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	pool, cleanup := setupTestPool(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewUserRepository(pool)

	user := persistence.User{Username: "sbergmann", PasswordHash: "old", FullName: "Sandra Bergmann", Role: persistence.RoleUser}
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if err := repo.UpdatePassword(ctx, "sbergmann", "new"); err != nil {
		t.Fatalf("UpdatePassword failed: %v", err)
	}
	got, err := repo.GetUserByUsername(ctx, "sbergmann")
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if got.PasswordHash != "new" {
		t.Errorf("Expected updated hash, got '%s'", got.PasswordHash)
	}

	err = repo.UpdatePassword(ctx, "nobody", "new")
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for unknown user, got %v", err)
	}
}

func TestUserRepository_ListAndCount(t *testing.T) {
	pool, cleanup := setupTestPool(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewUserRepository(pool)

	count, err := repo.CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 users initially, got %d", count)
	}

	for _, u := range []persistence.User{
		{Username: "jpetersen", PasswordHash: "h", FullName: "Jonas Petersen", Role: persistence.RoleUser},
		{Username: "aaldajani", PasswordHash: "h", FullName: "Ahmed Al-Dajani", Role: persistence.RoleAdmin},
	} {
		if err := repo.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}

	users, err := repo.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("Expected 2 users, got %d", len(users))
	}
	if users[0].Username != "aaldajani" {
		t.Errorf("Expected username ordering, got '%s' first", users[0].Username)
	}

	count, err = repo.CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 users, got %d", count)
	}
}
