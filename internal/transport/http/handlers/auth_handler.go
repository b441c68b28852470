package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/vedran77/sortinghat/internal/service"
	"github.com/vedran77/sortinghat/internal/transport/http/middleware"
	"github.com/vedran77/sortinghat/pkg/validator"
)

type AuthHandler struct {
	authService *service.AuthService
	logger      *slog.Logger
}

func NewAuthHandler(authService *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

type registerResponse struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	House    *string `json:"house"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validator.Struct(input); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	user, err := h.authService.Register(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			writeError(w, http.StatusConflict, "Email is already registered")
		case errors.Is(err, service.ErrInvalidHouse):
			writeError(w, http.StatusBadRequest, houseChoicesMessage)
		default:
			writeInternal(w, r, h.logger, "register", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
		House:    user.House,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validator.Struct(input); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	resp, err := h.authService.Login(r.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCreds) {
			writeError(w, http.StatusUnauthorized, "Email/Password is Invalid")
		} else {
			writeInternal(w, r, h.logger, "login", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var input service.GoogleLoginInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validator.Struct(input); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	resp, created, err := h.authService.GoogleLogin(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidGoogle):
			h.logger.WarnContext(r.Context(), "google token rejected", "error", err)
			writeError(w, http.StatusUnauthorized, "Invalid Google token")
		case errors.Is(err, service.ErrGoogleDisabled):
			writeError(w, http.StatusNotImplemented, "Google login is not available")
		default:
			writeInternal(w, r, h.logger, "google login", err)
		}
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, resp)
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.Profile(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
		} else {
			writeInternal(w, r, h.logger, "profile", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func writeValidationErrors(w http.ResponseWriter, errs validator.ValidationErrors) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error":  errs.First(),
		"fields": errs,
	})
}
