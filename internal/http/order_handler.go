package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/pm-timetracker/internal/application"
)

type suggestionService interface {
	Suggestions(ctx context.Context, principal application.Principal) ([]string, error)
	HideOrder(ctx context.Context, params application.HideOrderParams) error
	HiddenOrders(ctx context.Context, principal application.Principal) ([]string, error)
}

type OrderHandler struct {
	service   suggestionService
	responder responder
	logger    *slog.Logger
}

func NewOrderHandler(service suggestionService, logger *slog.Logger) *OrderHandler {
	base := defaultLogger(logger)
	return &OrderHandler{service: service, responder: newResponder(base), logger: base}
}

// Suggestions returns the principal's most recently used order numbers.
func (h *OrderHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusUnauthorized, nil)
		return
	}

	orders, err := h.service.Suggestions(r.Context(), principal)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, orderListResponse{Orders: orders})
}

// Hide removes an order number from the principal's future suggestions.
func (h *OrderHandler) Hide(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusUnauthorized, nil)
		return
	}

	var req hideOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlerLogger(r.Context(), h.logger, "OrderHandler", "Hide", "error_kind", "bad_request").
			ErrorContext(r.Context(), "failed to decode hide request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	if err := h.service.HideOrder(r.Context(), application.HideOrderParams{
		Principal:   principal,
		OrderNumber: strings.TrimSpace(req.OrderNumber),
	}); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// Hidden returns the principal's hidden order numbers.
func (h *OrderHandler) Hidden(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusUnauthorized, nil)
		return
	}

	orders, err := h.service.HiddenOrders(r.Context(), principal)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, orderListResponse{Orders: orders})
}

type hideOrderRequest struct {
	OrderNumber string `json:"order_number"`
}

type orderListResponse struct {
	Orders []string `json:"orders"`
}
