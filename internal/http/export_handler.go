package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/pm-timetracker/internal/application"
)

type exportService interface {
	Export(ctx context.Context, params application.ExportParams) (application.ExportResult, error)
}

type ExportHandler struct {
	service   exportService
	responder responder
	logger    *slog.Logger
}

func NewExportHandler(service exportService, logger *slog.Logger) *ExportHandler {
	base := defaultLogger(logger)
	return &ExportHandler{service: service, responder: newResponder(base), logger: base}
}

// Entries serves the matching entries as an xlsx attachment.
func (h *ExportHandler) Entries(w http.ResponseWriter, r *http.Request) {
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
	result, err := h.service.Export(r.Context(), application.ExportParams{
		Principal:   principal,
		ManagerName: strings.TrimSpace(query.Get("manager")),
		From:        strings.TrimSpace(query.Get("from")),
		To:          strings.TrimSpace(query.Get("to")),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Content); err != nil {
		handlerLogger(r.Context(), h.logger, "ExportHandler", "Entries").
			ErrorContext(r.Context(), "failed to write export", "error", err)
	}
}
