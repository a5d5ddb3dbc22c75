package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/vibetank/vibetank/internal/config"
	"github.com/vibetank/vibetank/internal/metrics"
	"github.com/vibetank/vibetank/internal/types"
)

// AuthHandler handles admin authentication requests.
type AuthHandler struct {
	passphrase *config.Passphrase
	jwtService *JWTService
	logger     *zap.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(passphrase *config.Passphrase, jwtService *JWTService, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{
		passphrase: passphrase,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login exchanges the admin passphrase for a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	ok, err := h.passphrase.Verify(r.Context(), req.Password)
	if err != nil {
		metrics.AdminLogin(false)
		if errors.Is(err, config.ErrPassphraseDisabled) {
			writeError(w, HTTPStatus(err), "Admin access is disabled")
			return
		}
		h.logger.Error("passphrase check failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to verify passphrase")
		return
	}
	metrics.AdminLogin(ok)
	if !ok {
		h.logger.Warn("admin login rejected")
		err := &ErrInvalidPassphrase{}
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	token, expiresAt, err := h.jwtService.GenerateToken(AdminSubject)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, types.LoginResponse{Token: token, ExpiresAt: expiresAt})
}

// UpdatePassword replaces the admin passphrase after checking the current one.
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req types.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	ok, err := h.passphrase.Verify(r.Context(), req.CurrentPassword)
	if err != nil && !errors.Is(err, config.ErrPassphraseDisabled) {
		h.logger.Error("passphrase check failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to verify passphrase")
		return
	}
	if !ok {
		err := &ErrPasswordMismatch{}
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	if err := h.passphrase.SetOverride(r.Context(), req.NewPassword); err != nil {
		if status := HTTPStatus(err); status == http.StatusBadRequest {
			writeError(w, status, err.Error())
			return
		}
		h.logger.Error("failed to store passphrase", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to update passphrase")
		return
	}

	h.logger.Info("admin passphrase updated")
	w.WriteHeader(http.StatusNoContent)
}

// extractValidationErrors flattens validator errors into one message.
func extractValidationErrors(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, fe.Field()+" failed "+fe.Tag())
	}
	return "Validation failed: " + strings.Join(messages, ", ")
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
