package testfixtures

import (
	"log/slog"
	"time"

	"github.com/example/pm-timetracker/internal/application"
)

// ServiceFactory assists tests with constructing application services using
// deterministic identifiers and clocks.
type ServiceFactory struct {
	Clock       *Clock
	IDGenerator *IDGenerator
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a ServiceFactory with defaults.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{
		Clock:       NewClock(time.Time{}),
		IDGenerator: NewIDGenerator("id"),
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(time.Time{})
	}
	if factory.IDGenerator == nil {
		factory.IDGenerator = NewIDGenerator("id")
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Clock = clock
	}
}

// WithIDGenerator overrides the identifier generator used by the factory.
func WithIDGenerator(generator *IDGenerator) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.IDGenerator = generator
	}
}

// EntryServiceDeps captures dependencies for constructing an entry service.
type EntryServiceDeps struct {
	Entries     application.EntryStore
	Listener    application.WriteListener
	IDGenerator func() string
	Now         func() time.Time
	Logger      *slog.Logger
}

// NewEntryService builds an entry service using the supplied dependencies
// combined with the factory defaults.
func (f *ServiceFactory) NewEntryService(deps EntryServiceDeps) *application.EntryService {
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = f.IDGenerator.NextFunc()
	}
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	return application.NewEntryService(deps.Entries, deps.Listener, idGen, now, deps.Logger)
}

// AuthServiceDeps captures dependencies for constructing an auth service.
type AuthServiceDeps struct {
	Users          application.UserStore
	Sessions       application.SessionStore
	Verify         application.PasswordVerifier
	TokenGenerator func() string
	Now            func() time.Time
	SessionTTL     time.Duration
	Logger         *slog.Logger
}

// NewAuthService builds an auth service using the supplied dependencies
// combined with the factory defaults. SessionTTL falls back to 24 hours.
func (f *ServiceFactory) NewAuthService(deps AuthServiceDeps) *application.AuthService {
	tokenGen := deps.TokenGenerator
	if tokenGen == nil {
		tokenGen = f.IDGenerator.NextFunc()
	}
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	ttl := deps.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return application.NewAuthService(deps.Users, deps.Sessions, deps.Verify, tokenGen, now, ttl, deps.Logger)
}

// ExportServiceDeps captures dependencies for constructing an export service.
type ExportServiceDeps struct {
	Entries application.EntryStore
	Now     func() time.Time
	Logger  *slog.Logger
}

// NewExportService builds an export service using the supplied dependencies
// combined with the factory defaults.
func (f *ServiceFactory) NewExportService(deps ExportServiceDeps) *application.ExportService {
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	return application.NewExportService(deps.Entries, now, deps.Logger)
}
