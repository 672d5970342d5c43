package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/pm-timetracker/internal/application"
)

type userService interface {
	ListUsers(ctx context.Context, principal application.Principal) ([]application.User, error)
	ChangePassword(ctx context.Context, params application.ChangePasswordParams) error
	ResetPassword(ctx context.Context, params application.ResetPasswordParams) error
}

type UserHandler struct {
	service   userService
	responder responder
	logger    *slog.Logger
}

func NewUserHandler(service userService, logger *slog.Logger) *UserHandler {
	base := defaultLogger(logger)
	return &UserHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *UserHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "UserHandler", operation, attrs...)
}

// List returns all accounts for administrators.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusUnauthorized, nil)
		return
	}

	users, err := h.service.ListUsers(r.Context(), principal)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	dtos := make([]userDTO, 0, len(users))
	for _, user := range users {
		dtos = append(dtos, userDTO{Username: user.Username, FullName: user.FullName, IsAdmin: user.IsAdmin})
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, usersResponse{Users: dtos})
}

// SetPassword changes the password of the addressed account. A principal
// changing their own password must supply the current one; administrators
// reset other accounts without it.
func (h *UserHandler) SetPassword(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusUnauthorized, nil)
		return
	}
	username, ok := UsernameFromContext(r.Context())
	if !ok || strings.TrimSpace(username) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, nil)
		return
	}

	var req setPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "SetPassword", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode password request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "SetPassword", "username", username)

	var err error
	if strings.EqualFold(username, principal.Username) {
		err = h.service.ChangePassword(r.Context(), application.ChangePasswordParams{
			Principal:       principal,
			CurrentPassword: req.CurrentPassword,
			NewPassword:     req.NewPassword,
		})
	} else {
		err = h.service.ResetPassword(r.Context(), application.ResetPasswordParams{
			Principal:   principal,
			Username:    username,
			NewPassword: req.NewPassword,
		})
	}
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "password updated")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type setPasswordRequest struct {
	CurrentPassword string `json:"current_password,omitempty"`
	NewPassword     string `json:"new_password"`
}

type userDTO struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	IsAdmin  bool   `json:"is_admin"`
}

type usersResponse struct {
	Users []userDTO `json:"users"`
}
