package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/pm-timetracker/internal/application"
)

type entryService interface {
	Record(ctx context.Context, params application.RecordEntriesParams) ([]application.Entry, error)
	List(ctx context.Context, params application.ListEntriesParams) ([]application.Entry, error)
	Delete(ctx context.Context, params application.DeleteEntryParams) error
	DailySum(ctx context.Context, params application.DailySumParams) (float64, error)
	WeeklySums(ctx context.Context, params application.WeeklySumsParams) ([]application.WeeklySum, error)
}

type EntryHandler struct {
	service   entryService
	responder responder
	logger    *slog.Logger
}

func NewEntryHandler(service entryService, logger *slog.Logger) *EntryHandler {
	base := defaultLogger(logger)
	return &EntryHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *EntryHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "EntryHandler", operation, attrs...)
}

// Create submits a worked entry or an absence range.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusUnauthorized, nil)
		return
	}

	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode entry request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	entries, err := h.service.Record(r.Context(), application.RecordEntriesParams{
		Principal: principal,
		Input: application.EntryInput{
			StartDate:   strings.TrimSpace(req.Date),
			EndDate:     strings.TrimSpace(req.EndDate),
			Absence:     req.Absence,
			OrderNumber: strings.TrimSpace(req.OrderNumber),
			Duration:    req.Duration,
			Comment:     req.Comment,
		},
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, entriesResponse{Entries: entryDTOs(entries)})
}

// List returns the entries matching the query filters.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusUnauthorized, nil)
		return
	}

	query := r.URL.Query()
	entries, err := h.service.List(r.Context(), application.ListEntriesParams{
		Principal:   principal,
		ManagerName: strings.TrimSpace(query.Get("manager")),
		From:        strings.TrimSpace(query.Get("from")),
		To:          strings.TrimSpace(query.Get("to")),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, entriesResponse{Entries: entryDTOs(entries)})
}

// Delete removes one entry by id.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusUnauthorized, nil)
		return
	}
	entryID, ok := EntryIDFromContext(r.Context())
	if !ok || strings.TrimSpace(entryID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEntryID)
		return
	}

	if err := h.service.Delete(r.Context(), application.DeleteEntryParams{
		Principal: principal,
		EntryID:   entryID,
	}); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.log(r.Context(), "Delete", "entry_id", entryID).InfoContext(r.Context(), "entry deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// DailySum returns the recorded hours for one manager and date.
func (h *EntryHandler) DailySum(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusUnauthorized, nil)
		return
	}

	query := r.URL.Query()
	date := strings.TrimSpace(query.Get("date"))
	sum, err := h.service.DailySum(r.Context(), application.DailySumParams{
		Principal:   principal,
		ManagerName: strings.TrimSpace(query.Get("manager")),
		Date:        date,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, dailySumResponse{Date: date, Hours: sum})
}

// WeeklySums returns per-ISO-week duration totals.
func (h *EntryHandler) WeeklySums(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusUnauthorized, nil)
		return
	}

	query := r.URL.Query()
	sums, err := h.service.WeeklySums(r.Context(), application.WeeklySumsParams{
		Principal:   principal,
		ManagerName: strings.TrimSpace(query.Get("manager")),
		From:        strings.TrimSpace(query.Get("from")),
		To:          strings.TrimSpace(query.Get("to")),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	weeks := make([]weeklySumDTO, 0, len(sums))
	for _, sum := range sums {
		weeks = append(weeks, weeklySumDTO{Week: sum.Week, Hours: sum.Hours})
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, weeklySumsResponse{Weeks: weeks})
}

type entryRequest struct {
	Date        string  `json:"date"`
	EndDate     string  `json:"end_date,omitempty"`
	Absence     bool    `json:"absence"`
	OrderNumber string  `json:"order_number,omitempty"`
	Duration    float64 `json:"duration"`
	Comment     string  `json:"comment,omitempty"`
}

type entryDTO struct {
	ID          string  `json:"id"`
	ManagerName string  `json:"manager"`
	Date        string  `json:"date"`
	Absence     bool    `json:"absence"`
	OrderNumber string  `json:"order_number,omitempty"`
	Duration    float64 `json:"duration"`
	DayType     string  `json:"day_type"`
	DayName     string  `json:"day_name"`
	Comment     string  `json:"comment,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type entriesResponse struct {
	Entries []entryDTO `json:"entries"`
}

type dailySumResponse struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

type weeklySumDTO struct {
	Week  string  `json:"week"`
	Hours float64 `json:"hours"`
}

type weeklySumsResponse struct {
	Weeks []weeklySumDTO `json:"weeks"`
}

func entryDTOs(entries []application.Entry) []entryDTO {
	dtos := make([]entryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, entryDTO{
			ID:          entry.ID,
			ManagerName: entry.ManagerName,
			Date:        entry.Date,
			Absence:     entry.Absence,
			OrderNumber: entry.OrderNumber,
			Duration:    entry.Duration,
			DayType:     entry.DayType,
			DayName:     entry.DayName,
			Comment:     entry.Comment,
			CreatedAt:   entry.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	return dtos
}
