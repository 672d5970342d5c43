package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/pm-timetracker/internal/timesheet"
)

// SuggestionStore captures the persistence operations needed for order
// suggestions.
type SuggestionStore interface {
	RecentOrders(ctx context.Context, managerName string, limit int) ([]string, error)
	HideOrder(ctx context.Context, managerName, orderNr string) error
	ListHiddenOrders(ctx context.Context, managerName string) ([]string, error)
}

// DefaultSuggestionLimit bounds suggestion lists when no limit is
// configured.
const DefaultSuggestionLimit = 5

// SuggestionService serves recently used order numbers and manages the
// per-manager hide list.
type SuggestionService struct {
	store  SuggestionStore
	limit  int
	logger *slog.Logger
}

// NewSuggestionService wires dependencies for the suggestion service.
func NewSuggestionService(store SuggestionStore, limit int, logger *slog.Logger) *SuggestionService {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	return &SuggestionService{store: store, limit: limit, logger: defaultLogger(logger)}
}

// Suggestions returns the principal's most recently used order numbers,
// newest first. Hidden and reserved numbers never appear.
func (s *SuggestionService) Suggestions(ctx context.Context, principal Principal) ([]string, error) {
	if s == nil {
		return nil, fmt.Errorf("SuggestionService is nil")
	}
	if s.store == nil {
		return nil, fmt.Errorf("suggestion store not configured")
	}

	orders, err := s.store.RecentOrders(ctx, principal.ManagerName, s.limit)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return orders, nil
}

// HideOrder removes one order number from the principal's future
// suggestions. Hiding an already hidden number is a no-op.
func (s *SuggestionService) HideOrder(ctx context.Context, params HideOrderParams) error {
	if s == nil {
		return fmt.Errorf("SuggestionService is nil")
	}
	if s.store == nil {
		return fmt.Errorf("suggestion store not configured")
	}

	if !timesheet.ValidOrderNumber(params.OrderNumber) {
		vErr := &ValidationError{}
		vErr.add("order_number", "order number must be 6 to 8 digits")
		return vErr
	}

	logger := serviceLogger(ctx, s.logger, "SuggestionService", "HideOrder",
		"manager", params.Principal.ManagerName,
		"order_number", params.OrderNumber,
	)
	if err := s.store.HideOrder(ctx, params.Principal.ManagerName, params.OrderNumber); err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "failed to hide order", "error", err, "error_kind", ErrorKind(err))
		return err
	}
	logger.InfoContext(ctx, "order hidden")
	return nil
}

// HiddenOrders returns the principal's hidden order numbers.
func (s *SuggestionService) HiddenOrders(ctx context.Context, principal Principal) ([]string, error) {
	if s == nil {
		return nil, fmt.Errorf("SuggestionService is nil")
	}
	if s.store == nil {
		return nil, fmt.Errorf("suggestion store not configured")
	}

	orders, err := s.store.ListHiddenOrders(ctx, principal.ManagerName)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return orders, nil
}
