package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/pm-timetracker/internal/persistence"
)

func testSession(id, token string, base time.Time) persistence.Session {
	return persistence.Session{
		ID:        id,
		Username:  "sbergmann",
		Token:     token,
		ExpiresAt: base.Add(24 * time.Hour),
		CreatedAt: base,
		UpdatedAt: base,
	}
}

func TestSessionRepository_CreateAndGet(t *testing.T) {
	pool, cleanup := setupTestPool(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewSessionRepository(pool)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	created, err := repo.CreateSession(ctx, testSession("s1", "token-1", base))
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if created.RevokedAt != nil {
		t.Error("Expected fresh session to have no revocation timestamp")
	}

	got, err := repo.GetSession(ctx, "token-1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.Username != "sbergmann" {
		t.Errorf("Expected username 'sbergmann', got '%s'", got.Username)
	}
	if !got.ExpiresAt.Equal(base.Add(24 * time.Hour)) {
		t.Errorf("Expected expiry to round-trip, got %v", got.ExpiresAt)
	}
}

func TestSessionRepository_GetSession_NotFound(t *testing.T) {
	pool, cleanup := setupTestPool(t)
	defer cleanup()

	repo := NewSessionRepository(pool)
	_, err := repo.GetSession(context.Background(), "missing")
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestSessionRepository_RevokeSession(t *testing.T) {
	pool, cleanup := setupTestPool(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewSessionRepository(pool)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	if _, err := repo.CreateSession(ctx, testSession("s1", "token-1", base)); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	revokedAt := base.Add(time.Hour)
	revoked, err := repo.RevokeSession(ctx, "token-1", revokedAt)
	if err != nil {
		t.Fatalf("RevokeSession failed: %v", err)
	}
	if revoked.RevokedAt == nil || !revoked.RevokedAt.Equal(revokedAt) {
		t.Errorf("Expected revocation timestamp %v, got %v", revokedAt, revoked.RevokedAt)
	}

	// Revoking again hits no live row.
	_, err = repo.RevokeSession(ctx, "token-1", revokedAt.Add(time.Hour))
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound on double revoke, got %v", err)
	}
}

func TestSessionRepository_DeleteExpiredSessions(t *testing.T) {
	pool, cleanup := setupTestPool(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewSessionRepository(pool)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	stale := testSession("s1", "token-old", base.Add(-48*time.Hour))
	fresh := testSession("s2", "token-new", base)
	if _, err := repo.CreateSession(ctx, stale); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if _, err := repo.CreateSession(ctx, fresh); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if err := repo.DeleteExpiredSessions(ctx, base); err != nil {
		t.Fatalf("DeleteExpiredSessions failed: %v", err)
	}

	if _, err := repo.GetSession(ctx, "token-old"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("Expected stale session to be deleted, got %v", err)
	}
	if _, err := repo.GetSession(ctx, "token-new"); err != nil {
		t.Fatalf("Expected fresh session to survive: %v", err)
	}
}
