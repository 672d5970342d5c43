package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures environment driven configuration values for the time
// tracking service.
type Config struct {
	HTTPPort        int
	SQLiteDSN       string
	SessionTTL      time.Duration
	DailyLimitHours float64
	SuggestionLimit int
}

// Load parses configuration values from the current process environment.
//
// Every value has a sensible default; set variables are validated and
// reported together when invalid.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:        8080,
		SQLiteDSN:       "file:timetracker.db",
		SessionTTL:      24 * time.Hour,
		DailyLimitHours: 10,
		SuggestionLimit: 5,
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("TIMETRACKER_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "TIMETRACKER_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("TIMETRACKER_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if ttlValue := strings.TrimSpace(os.Getenv("TIMETRACKER_SESSION_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "TIMETRACKER_SESSION_TTL")
		} else {
			cfg.SessionTTL = ttl
		}
	}

	if limitValue := strings.TrimSpace(os.Getenv("TIMETRACKER_DAILY_LIMIT_HOURS")); limitValue != "" {
		limit, err := strconv.ParseFloat(limitValue, 64)
		if err != nil || limit <= 0 {
			invalid = append(invalid, "TIMETRACKER_DAILY_LIMIT_HOURS")
		} else {
			cfg.DailyLimitHours = limit
		}
	}

	if limitValue := strings.TrimSpace(os.Getenv("TIMETRACKER_SUGGESTION_LIMIT")); limitValue != "" {
		limit, err := strconv.Atoi(limitValue)
		if err != nil || limit <= 0 {
			invalid = append(invalid, "TIMETRACKER_SUGGESTION_LIMIT")
		} else {
			cfg.SuggestionLimit = limit
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("ungültige Werte für Umgebungsvariablen: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
