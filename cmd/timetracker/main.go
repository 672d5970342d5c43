package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/example/pm-timetracker/internal/application"
	"github.com/example/pm-timetracker/internal/config"
	httptransport "github.com/example/pm-timetracker/internal/http"
	"github.com/example/pm-timetracker/internal/persistence/sqlite"
	"github.com/example/pm-timetracker/internal/timesheet"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	timesheet.DailyLimitHours = decimal.NewFromFloat(cfg.DailyLimitHours)

	pool, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Error("failed to close database", "error", cerr)
		}
	}()

	if err := pool.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}

	entryRepo := sqlite.NewEntryRepository(pool)
	userRepo := sqlite.NewUserRepository(pool)
	hiddenOrderRepo := sqlite.NewHiddenOrderRepository(pool)
	sessionRepo := sqlite.NewSessionRepository(pool)
	reportRepo := sqlite.NewReportRepository(pool)

	now := time.Now

	reportService := application.NewReportService(reportRepo, logger)
	entryService := application.NewEntryService(entryRepo, reportService, uuid.NewString, now, logger)
	suggestionService := application.NewSuggestionService(suggestionStore{entryRepo, hiddenOrderRepo}, cfg.SuggestionLimit, logger)
	exportService := application.NewExportService(entryRepo, now, logger)
	userService := application.NewUserService(userRepo, nil, nil, logger)
	authService := application.NewAuthService(userRepo, sessionRepo, nil, uuid.NewString, now, cfg.SessionTTL, logger)

	if err := userService.SeedUsers(ctx, defaultRoster()); err != nil {
		logger.Error("failed to seed user roster", "error", err)
		os.Exit(1)
	}

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Auth:    httptransport.NewAuthHandler(authService, logger),
		Entries: httptransport.NewEntryHandler(entryService, logger),
		Orders:  httptransport.NewOrderHandler(suggestionService, logger),
		Reports: httptransport.NewReportHandler(reportService, now, logger),
		Exports: httptransport.NewExportHandler(exportService, logger),
		Users:   httptransport.NewUserHandler(userService, logger),
	})

	protected := httptransport.RequireSession(authService, logger)(router)
	handler := httptransport.RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.EqualFold(r.URL.Path, "/login") {
			router.ServeHTTP(w, r)
			return
		}
		protected.ServeHTTP(w, r)
	}))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("time tracking API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

// suggestionStore combines the entry and hidden-order repositories into the
// single store the suggestion service expects.
type suggestionStore struct {
	*sqlite.EntryRepository
	*sqlite.HiddenOrderRepository
}

// defaultRoster is applied once to an empty database: one administrator plus
// the project managers who record their hours. Passwords are initial values
// that each account changes via PUT /users/{username}/password.
func defaultRoster() []application.SeedUser {
	return []application.SeedUser{
		{Username: "aaldajani", FullName: "Ahmed Al-Dajani", Password: "wechsel-mich-1", IsAdmin: true},
		{Username: "sbergmann", FullName: "Sandra Bergmann", Password: "wechsel-mich-1"},
		{Username: "jpetersen", FullName: "Jonas Petersen", Password: "wechsel-mich-1"},
		{Username: "mkowalski", FullName: "Marek Kowalski", Password: "wechsel-mich-1"},
		{Username: "lhoffmann", FullName: "Lena Hoffmann", Password: "wechsel-mich-1"},
		{Username: "tyilmaz", FullName: "Tarik Yilmaz", Password: "wechsel-mich-1"},
		{Username: "cvogel", FullName: "Claudia Vogel", Password: "wechsel-mich-1"},
		{Username: "rschneider", FullName: "Ralf Schneider", Password: "wechsel-mich-1"},
		{Username: "anowak", FullName: "Agnieszka Nowak", Password: "wechsel-mich-1"},
		{Username: "dkrause", FullName: "Dennis Krause", Password: "wechsel-mich-1"},
		{Username: "fweber", FullName: "Franziska Weber", Password: "wechsel-mich-1"},
		{Username: "obrandt", FullName: "Oliver Brandt", Password: "wechsel-mich-1"},
		{Username: "ksommer", FullName: "Katrin Sommer", Password: "wechsel-mich-1"},
	}
}
