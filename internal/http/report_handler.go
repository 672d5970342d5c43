package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/example/pm-timetracker/internal/application"
	"github.com/example/pm-timetracker/internal/calendar"
)

type reportService interface {
	TotalsByManager(ctx context.Context, window application.ReportWindow) ([]application.ManagerTotal, error)
	WeeklyBreakdown(ctx context.Context, window application.ReportWindow) ([]application.ManagerWeekTotal, error)
	TopOrders(ctx context.Context, window application.ReportWindow) ([]application.OrderTotal, error)
	Distribution(ctx context.Context, managerName string, window application.ReportWindow) ([]application.OrderTotal, error)
	BillableRatios(ctx context.Context, window application.ReportWindow) ([]application.BillableRatio, error)
	WeekendRatios(ctx context.Context, window application.ReportWindow) ([]application.WeekendRatio, error)
	OrderBreakdown(ctx context.Context, orderNumber string, window application.ReportWindow) ([]application.ManagerTotal, error)
	Trend(ctx context.Context, reference time.Time) ([]application.WeekTrendPoint, error)
}

type ReportHandler struct {
	service   reportService
	responder responder
	now       func() time.Time
	logger    *slog.Logger
}

func NewReportHandler(service reportService, now func() time.Time, logger *slog.Logger) *ReportHandler {
	if now == nil {
		now = time.Now
	}
	base := defaultLogger(logger)
	return &ReportHandler{service: service, responder: newResponder(base), now: now, logger: base}
}

func (h *ReportHandler) ready(w http.ResponseWriter, r *http.Request) bool {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return false
	}
	if _, ok := PrincipalFromContext(r.Context()); !ok {
		h.responder.writeError(r.Context(), w, http.StatusUnauthorized, nil)
		return false
	}
	return true
}

func reportWindow(query url.Values) application.ReportWindow {
	window := application.ReportWindow{
		From: strings.TrimSpace(query.Get("from")),
		To:   strings.TrimSpace(query.Get("to")),
	}
	if excluded := strings.TrimSpace(query.Get("exclude_orders")); excluded != "" {
		for _, orderNr := range strings.Split(excluded, ",") {
			if trimmed := strings.TrimSpace(orderNr); trimmed != "" {
				window.ExcludeOrders = append(window.ExcludeOrders, trimmed)
			}
		}
	}
	return window
}

// Compliance returns total hours per manager for the window.
func (h *ReportHandler) Compliance(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w, r) {
		return
	}
	totals, err := h.service.TotalsByManager(r.Context(), reportWindow(r.URL.Query()))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	rows := make([]managerHoursDTO, 0, len(totals))
	for _, total := range totals {
		rows = append(rows, managerHoursDTO{Manager: total.ManagerName, Hours: total.Hours})
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, managerHoursResponse{Managers: rows})
}

// WeeklyBreakdown returns hours per manager and ISO week.
func (h *ReportHandler) WeeklyBreakdown(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w, r) {
		return
	}
	rows, err := h.service.WeeklyBreakdown(r.Context(), reportWindow(r.URL.Query()))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	dtos := make([]managerWeekDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, managerWeekDTO{Manager: row.ManagerName, Week: row.Week, Hours: row.Hours})
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, managerWeeksResponse{Rows: dtos})
}

// TopOrders returns the highest-volume orders.
func (h *ReportHandler) TopOrders(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w, r) {
		return
	}
	totals, err := h.service.TopOrders(r.Context(), reportWindow(r.URL.Query()))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, orderHoursResponse{Orders: orderHoursDTOs(totals)})
}

// Distribution returns hours per order for one manager or everyone.
func (h *ReportHandler) Distribution(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w, r) {
		return
	}
	query := r.URL.Query()
	totals, err := h.service.Distribution(r.Context(), strings.TrimSpace(query.Get("manager")), reportWindow(query))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, orderHoursResponse{Orders: orderHoursDTOs(totals)})
}

// BillableRatio returns worked versus absent hours per manager.
func (h *ReportHandler) BillableRatio(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w, r) {
		return
	}
	ratios, err := h.service.BillableRatios(r.Context(), reportWindow(r.URL.Query()))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	rows := make([]billableRatioDTO, 0, len(ratios))
	for _, ratio := range ratios {
		rows = append(rows, billableRatioDTO{
			Manager:  ratio.ManagerName,
			Billable: ratio.BillableHours,
			Absent:   ratio.AbsentHours,
		})
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, billableRatioResponse{Managers: rows})
}

// Weekend returns Saturday hours against total hours per manager.
func (h *ReportHandler) Weekend(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w, r) {
		return
	}
	ratios, err := h.service.WeekendRatios(r.Context(), reportWindow(r.URL.Query()))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	rows := make([]weekendRatioDTO, 0, len(ratios))
	for _, ratio := range ratios {
		rows = append(rows, weekendRatioDTO{
			Manager: ratio.ManagerName,
			Weekend: ratio.WeekendHours,
			Total:   ratio.TotalHours,
		})
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, weekendRatioResponse{Managers: rows})
}

// OrderBreakdown returns hours per manager for one order number.
func (h *ReportHandler) OrderBreakdown(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w, r) {
		return
	}
	query := r.URL.Query()
	totals, err := h.service.OrderBreakdown(r.Context(), strings.TrimSpace(query.Get("order_number")), reportWindow(query))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	rows := make([]managerHoursDTO, 0, len(totals))
	for _, total := range totals {
		rows = append(rows, managerHoursDTO{Manager: total.ManagerName, Hours: total.Hours})
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, managerHoursResponse{Managers: rows})
}

// Trend returns the eight week company-wide trend ending at the reference
// date (query parameter "reference", default today).
func (h *ReportHandler) Trend(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w, r) {
		return
	}

	reference := h.now()
	if value := strings.TrimSpace(r.URL.Query().Get("reference")); value != "" {
		parsed, err := calendar.ParseDate(value)
		if err != nil {
			vErr := &application.ValidationError{FieldErrors: map[string]string{
				"reference": "date must be formatted yyyy-MM-dd",
			}}
			h.responder.handleServiceError(r.Context(), w, vErr)
			return
		}
		reference = parsed
	}

	points, err := h.service.Trend(r.Context(), reference)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	rows := make([]trendPointDTO, 0, len(points))
	for _, point := range points {
		rows = append(rows, trendPointDTO{Week: point.Week, Hours: point.Hours, DeltaPct: point.DeltaPct})
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, trendResponse{Weeks: rows})
}

type managerHoursDTO struct {
	Manager string  `json:"manager"`
	Hours   float64 `json:"hours"`
}

type managerHoursResponse struct {
	Managers []managerHoursDTO `json:"managers"`
}

type managerWeekDTO struct {
	Manager string  `json:"manager"`
	Week    string  `json:"week"`
	Hours   float64 `json:"hours"`
}

type managerWeeksResponse struct {
	Rows []managerWeekDTO `json:"rows"`
}

type orderHoursDTO struct {
	OrderNumber string  `json:"order_number"`
	Hours       float64 `json:"hours"`
}

type orderHoursResponse struct {
	Orders []orderHoursDTO `json:"orders"`
}

type billableRatioDTO struct {
	Manager  string  `json:"manager"`
	Billable float64 `json:"billable_hours"`
	Absent   float64 `json:"absent_hours"`
}

type billableRatioResponse struct {
	Managers []billableRatioDTO `json:"managers"`
}

type weekendRatioDTO struct {
	Manager string  `json:"manager"`
	Weekend float64 `json:"weekend_hours"`
	Total   float64 `json:"total_hours"`
}

type weekendRatioResponse struct {
	Managers []weekendRatioDTO `json:"managers"`
}

type trendPointDTO struct {
	Week     string   `json:"week"`
	Hours    float64  `json:"hours"`
	DeltaPct *float64 `json:"delta_pct,omitempty"`
}

type trendResponse struct {
	Weeks []trendPointDTO `json:"weeks"`
}

func orderHoursDTOs(totals []application.OrderTotal) []orderHoursDTO {
	dtos := make([]orderHoursDTO, 0, len(totals))
	for _, total := range totals {
		dtos = append(dtos, orderHoursDTO{OrderNumber: total.OrderNumber, Hours: total.Hours})
	}
	return dtos
}
