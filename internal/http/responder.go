package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/pm-timetracker/internal/application"
)

var (
	errBadRequestBody      = errors.New("Ungültiges Anfrageformat.")
	errInvalidEntryID      = errors.New("Ungültige Eintrags-ID.")
	errMissingSessionToken = errors.New("Bitte Sitzungstoken angeben.")
)

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := localizedStatusMessage(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			message = msg
		}
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "status", status, "error", err)
	}

	r.writeJSON(ctx, w, status, errorResponse{Message: message})
}

func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.writeError(ctx, w, http.StatusInternalServerError, errors.New("unknown error"))
		return
	}

	switch {
	case errors.Is(err, application.ErrUnauthorized):
		r.writeJSON(ctx, w, http.StatusForbidden, errorResponse{
			ErrorCode: "AUTH_FORBIDDEN",
			Message:   "Keine Berechtigung für diese Aktion.",
		})
	case errors.Is(err, application.ErrNotFound):
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{Message: "Die angeforderte Ressource wurde nicht gefunden."})
	case errors.Is(err, application.ErrNoExportRows):
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{Message: "Keine Einträge für den Export gefunden."})
	default:
		var vErr *application.ValidationError
		if errors.As(err, &vErr) {
			details := localizeValidationErrors(vErr)
			r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
				Message: "Die Eingaben sind fehlerhaft.",
				Errors:  details,
			})
			return
		}

		r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Message: "Interner Serverfehler. Bitte später erneut versuchen."})
	}
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

func localizedStatusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Die Anfrage ist fehlerhaft."
	case http.StatusUnauthorized:
		return "Anmeldung erforderlich."
	case http.StatusForbidden:
		return "Keine Berechtigung für diese Aktion."
	case http.StatusNotFound:
		return "Die angeforderte Ressource wurde nicht gefunden."
	case http.StatusConflict:
		return "Die Anfrage steht im Konflikt mit dem aktuellen Zustand."
	case http.StatusUnprocessableEntity:
		return "Die Eingaben sind fehlerhaft."
	default:
		return "Interner Serverfehler. Bitte später erneut versuchen."
	}
}

func localizeValidationErrors(vErr *application.ValidationError) map[string]string {
	if vErr == nil || len(vErr.FieldErrors) == 0 {
		return nil
	}

	translated := make(map[string]string, len(vErr.FieldErrors))
	for field, msg := range vErr.FieldErrors {
		translated[field] = translateValidationMessage(msg)
	}
	return translated
}

func translateValidationMessage(message string) string {
	switch message {
	case "manager name is required":
		return "Der Name ist erforderlich."
	case "duration must be positive":
		return "Die Dauer muss größer als 0 sein."
	case "order number must be 6 to 8 digits":
		return "Die Auftragsnummer muss aus 6 bis 8 Ziffern bestehen."
	case "order number is required":
		return "Die Auftragsnummer ist erforderlich."
	case "end date must not precede start date":
		return "Das Enddatum darf nicht vor dem Startdatum liegen."
	case "range contains no bookable day":
		return "Der Zeitraum enthält keinen buchbaren Tag."
	case "date must be formatted yyyy-MM-dd":
		return "Das Datum muss im Format JJJJ-MM-TT angegeben werden."
	case "day type does not permit entries":
		return "An diesem Tag können keine Einträge erfasst werden."
	case "daily limit exceeded":
		return "Das Tageslimit von 10 Stunden würde überschritten."
	default:
		if strings.HasPrefix(message, "password must be at least") {
			return "Das Passwort muss mindestens 8 Zeichen lang sein."
		}
		return message
	}
}

type errorResponse struct {
	ErrorCode string            `json:"error_code,omitempty"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
}
