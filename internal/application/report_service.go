package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/example/pm-timetracker/internal/calendar"
	"github.com/example/pm-timetracker/internal/persistence"
)

// ReportStore captures the aggregate queries needed by the report service.
type ReportStore interface {
	HoursByManager(ctx context.Context, filter persistence.ReportFilter) ([]persistence.ManagerHours, error)
	HoursByManagerAndDate(ctx context.Context, filter persistence.ReportFilter) ([]persistence.ManagerDateHours, error)
	TopOrders(ctx context.Context, filter persistence.ReportFilter, limit int) ([]persistence.OrderHours, error)
	OrderDistribution(ctx context.Context, managerName string, filter persistence.ReportFilter) ([]persistence.OrderHours, error)
	BillableSplit(ctx context.Context, filter persistence.ReportFilter) ([]persistence.ManagerSplit, error)
	WeekendShare(ctx context.Context, filter persistence.ReportFilter) ([]persistence.ManagerWeekend, error)
	OrderManagerBreakdown(ctx context.Context, orderNr string, filter persistence.ReportFilter) ([]persistence.ManagerHours, error)
	TotalsPerDate(ctx context.Context, filter persistence.ReportFilter) ([]persistence.DateHours, error)
}

const (
	// TopOrderLimit is the fixed size of the top order report.
	TopOrderLimit = 10
	// TrendWeeks is the span of the week-over-week trend report.
	TrendWeeks = 8

	reportCacheSize = 64
	reportCacheTTL  = 30 * time.Second
)

// ReportService serves the dashboard aggregations. Results are cached in
// a TTL-bounded LRU keyed by query shape; every entry write purges the
// cache through the WriteListener interface.
type ReportService struct {
	store  ReportStore
	cache  *expirable.LRU[string, any]
	logger *slog.Logger
}

// NewReportService wires dependencies for the report service.
func NewReportService(store ReportStore, logger *slog.Logger) *ReportService {
	return &ReportService{
		store:  store,
		cache:  expirable.NewLRU[string, any](reportCacheSize, nil, reportCacheTTL),
		logger: defaultLogger(logger),
	}
}

// EntriesChanged implements WriteListener by dropping all cached results.
func (s *ReportService) EntriesChanged() {
	if s == nil || s.cache == nil {
		return
	}
	s.cache.Purge()
}

func (s *ReportService) guard() error {
	if s == nil {
		return fmt.Errorf("ReportService is nil")
	}
	if s.store == nil {
		return fmt.Errorf("report store not configured")
	}
	return nil
}

func cacheKey(report string, window ReportWindow, extra ...string) string {
	parts := []string{report, window.From, window.To, strings.Join(window.ExcludeOrders, ",")}
	parts = append(parts, extra...)
	return strings.Join(parts, "|")
}

// cached runs fetch through the service cache under the given key.
func cached[T any](s *ReportService, key string, fetch func() (T, error)) (T, error) {
	if hit, ok := s.cache.Get(key); ok {
		if value, ok := hit.(T); ok {
			return value, nil
		}
	}
	value, err := fetch()
	if err != nil {
		return value, err
	}
	s.cache.Add(key, value)
	return value, nil
}

func storeFilter(window ReportWindow) persistence.ReportFilter {
	return persistence.ReportFilter{
		From:          window.From,
		To:            window.To,
		ExcludeOrders: window.ExcludeOrders,
	}
}

// TotalsByManager returns each manager's recorded hours in the window,
// highest first. This feeds the weekly compliance check.
func (s *ReportService) TotalsByManager(ctx context.Context, window ReportWindow) ([]ManagerTotal, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	return cached(s, cacheKey("totals", window), func() ([]ManagerTotal, error) {
		rows, err := s.store.HoursByManager(ctx, storeFilter(window))
		if err != nil {
			return nil, mapRepoError(err)
		}
		totals := make([]ManagerTotal, 0, len(rows))
		for _, row := range rows {
			totals = append(totals, ManagerTotal{ManagerName: row.ManagerName, Hours: row.Hours})
		}
		return totals, nil
	})
}

// WeeklyBreakdown folds per-date sums into hours per manager and ISO week.
func (s *ReportService) WeeklyBreakdown(ctx context.Context, window ReportWindow) ([]ManagerWeekTotal, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	return cached(s, cacheKey("weekly", window), func() ([]ManagerWeekTotal, error) {
		rows, err := s.store.HoursByManagerAndDate(ctx, storeFilter(window))
		if err != nil {
			return nil, mapRepoError(err)
		}

		type bucket struct {
			manager string
			week    string
		}
		totals := make(map[bucket]float64)
		for _, row := range rows {
			day, err := calendar.ParseDate(row.Date)
			if err != nil {
				return nil, fmt.Errorf("stored entry has malformed date %q: %w", row.Date, err)
			}
			totals[bucket{row.ManagerName, calendar.ISOWeekKey(day)}] += row.Hours
		}

		result := make([]ManagerWeekTotal, 0, len(totals))
		for key, hours := range totals {
			result = append(result, ManagerWeekTotal{ManagerName: key.manager, Week: key.week, Hours: hours})
		}
		sort.Slice(result, func(i, j int) bool {
			if result[i].ManagerName != result[j].ManagerName {
				return result[i].ManagerName < result[j].ManagerName
			}
			return result[i].Week < result[j].Week
		})
		return result, nil
	})
}

// TopOrders returns the ten highest-volume orders in the window.
func (s *ReportService) TopOrders(ctx context.Context, window ReportWindow) ([]OrderTotal, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	return cached(s, cacheKey("top-orders", window), func() ([]OrderTotal, error) {
		rows, err := s.store.TopOrders(ctx, storeFilter(window), TopOrderLimit)
		if err != nil {
			return nil, mapRepoError(err)
		}
		return orderTotals(rows), nil
	})
}

// Distribution returns hours per order for one manager, or for everyone
// when managerName is empty.
func (s *ReportService) Distribution(ctx context.Context, managerName string, window ReportWindow) ([]OrderTotal, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	return cached(s, cacheKey("distribution", window, managerName), func() ([]OrderTotal, error) {
		rows, err := s.store.OrderDistribution(ctx, managerName, storeFilter(window))
		if err != nil {
			return nil, mapRepoError(err)
		}
		return orderTotals(rows), nil
	})
}

// BillableRatios splits every manager's hours into worked orders and
// recorded absence.
func (s *ReportService) BillableRatios(ctx context.Context, window ReportWindow) ([]BillableRatio, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	return cached(s, cacheKey("billable", window), func() ([]BillableRatio, error) {
		rows, err := s.store.BillableSplit(ctx, storeFilter(window))
		if err != nil {
			return nil, mapRepoError(err)
		}
		ratios := make([]BillableRatio, 0, len(rows))
		for _, row := range rows {
			ratios = append(ratios, BillableRatio{
				ManagerName:   row.ManagerName,
				BillableHours: row.Billable,
				AbsentHours:   row.Absent,
			})
		}
		return ratios, nil
	})
}

// WeekendRatios relates each manager's Saturday hours to their total.
func (s *ReportService) WeekendRatios(ctx context.Context, window ReportWindow) ([]WeekendRatio, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	return cached(s, cacheKey("weekend", window), func() ([]WeekendRatio, error) {
		rows, err := s.store.WeekendShare(ctx, storeFilter(window))
		if err != nil {
			return nil, mapRepoError(err)
		}
		ratios := make([]WeekendRatio, 0, len(rows))
		for _, row := range rows {
			ratios = append(ratios, WeekendRatio{
				ManagerName:  row.ManagerName,
				WeekendHours: row.WeekendHours,
				TotalHours:   row.TotalHours,
			})
		}
		return ratios, nil
	})
}

// OrderBreakdown returns hours per manager for one order number.
func (s *ReportService) OrderBreakdown(ctx context.Context, orderNumber string, window ReportWindow) ([]ManagerTotal, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(orderNumber) == "" {
		vErr := &ValidationError{}
		vErr.add("order_number", "order number is required")
		return nil, vErr
	}
	return cached(s, cacheKey("order-breakdown", window, orderNumber), func() ([]ManagerTotal, error) {
		rows, err := s.store.OrderManagerBreakdown(ctx, orderNumber, storeFilter(window))
		if err != nil {
			return nil, mapRepoError(err)
		}
		totals := make([]ManagerTotal, 0, len(rows))
		for _, row := range rows {
			totals = append(totals, ManagerTotal{ManagerName: row.ManagerName, Hours: row.Hours})
		}
		return totals, nil
	})
}

// Trend returns company-wide totals for the eight ISO weeks ending at the
// reference date, each with the percentage change against the preceding
// week. Weeks without entries appear with zero hours.
func (s *ReportService) Trend(ctx context.Context, reference time.Time) ([]WeekTrendPoint, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	year, week := calendar.ISOWeek(reference)
	lastStart := calendar.ISOWeekStart(year, week)
	firstStart := lastStart.AddDate(0, 0, -7*(TrendWeeks-1))
	window := ReportWindow{
		From: firstStart.Format(calendar.DateLayout),
		To:   lastStart.AddDate(0, 0, 6).Format(calendar.DateLayout),
	}

	return cached(s, cacheKey("trend", window), func() ([]WeekTrendPoint, error) {
		rows, err := s.store.TotalsPerDate(ctx, storeFilter(window))
		if err != nil {
			return nil, mapRepoError(err)
		}

		byWeek := make(map[string]float64)
		for _, row := range rows {
			day, err := calendar.ParseDate(row.Date)
			if err != nil {
				return nil, fmt.Errorf("stored entry has malformed date %q: %w", row.Date, err)
			}
			byWeek[calendar.ISOWeekKey(day)] += row.Hours
		}

		points := make([]WeekTrendPoint, 0, TrendWeeks)
		for i := 0; i < TrendWeeks; i++ {
			start := firstStart.AddDate(0, 0, 7*i)
			point := WeekTrendPoint{
				Week:  calendar.ISOWeekKey(start),
				Hours: byWeek[calendar.ISOWeekKey(start)],
			}
			if i > 0 {
				previous := points[i-1].Hours
				if previous > 0 {
					delta := (point.Hours - previous) / previous * 100
					point.DeltaPct = &delta
				}
			}
			points = append(points, point)
		}
		return points, nil
	})
}

func orderTotals(rows []persistence.OrderHours) []OrderTotal {
	totals := make([]OrderTotal, 0, len(rows))
	for _, row := range rows {
		totals = append(totals, OrderTotal{OrderNumber: row.OrderNr, Hours: row.Hours})
	}
	return totals
}
