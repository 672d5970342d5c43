package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HTTPPort != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.HTTPPort)
	}
	if cfg.SQLiteDSN != "file:timetracker.db" {
		t.Errorf("Unexpected default DSN: %s", cfg.SQLiteDSN)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("Expected default TTL of 24h, got %v", cfg.SessionTTL)
	}
	if cfg.DailyLimitHours != 10 {
		t.Errorf("Expected default daily limit of 10, got %v", cfg.DailyLimitHours)
	}
	if cfg.SuggestionLimit != 5 {
		t.Errorf("Expected default suggestion limit of 5, got %d", cfg.SuggestionLimit)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TIMETRACKER_HTTP_PORT", "9090")
	t.Setenv("TIMETRACKER_SQLITE_DSN", "file:/tmp/zeiten.db")
	t.Setenv("TIMETRACKER_SESSION_TTL", "2h")
	t.Setenv("TIMETRACKER_DAILY_LIMIT_HOURS", "8.5")
	t.Setenv("TIMETRACKER_SUGGESTION_LIMIT", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HTTPPort != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.HTTPPort)
	}
	if cfg.SQLiteDSN != "file:/tmp/zeiten.db" {
		t.Errorf("Unexpected DSN: %s", cfg.SQLiteDSN)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Errorf("Expected TTL of 2h, got %v", cfg.SessionTTL)
	}
	if cfg.DailyLimitHours != 8.5 {
		t.Errorf("Expected daily limit of 8.5, got %v", cfg.DailyLimitHours)
	}
	if cfg.SuggestionLimit != 10 {
		t.Errorf("Expected suggestion limit of 10, got %d", cfg.SuggestionLimit)
	}
}

func TestLoad_InvalidValuesCollected(t *testing.T) {
	t.Setenv("TIMETRACKER_HTTP_PORT", "keine-zahl")
	t.Setenv("TIMETRACKER_SESSION_TTL", "-1h")

	_, err := Load()
	if err == nil {
		t.Fatal("Expected error for invalid values, got nil")
	}
	for _, name := range []string{"TIMETRACKER_HTTP_PORT", "TIMETRACKER_SESSION_TTL"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("Expected error to name %s: %v", name, err)
		}
	}
}

func TestLoad_ZeroLimitRejected(t *testing.T) {
	t.Setenv("TIMETRACKER_DAILY_LIMIT_HOURS", "0")

	_, err := Load()
	if err == nil {
		t.Fatal("Expected error for zero daily limit, got nil")
	}
}
