// Package server provides the HTTP API for the portfolio site: public content,
// admin editing and the chat proxy.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/vibetank/vibetank/internal/config"
	"github.com/vibetank/vibetank/internal/content"
	"github.com/vibetank/vibetank/internal/types"
)

// ErrInvalidPassphrase indicates a wrong admin passphrase
type ErrInvalidPassphrase struct{}

func (e *ErrInvalidPassphrase) Error() string {
	return "invalid passphrase"
}

// ErrPasswordMismatch indicates the current passphrase is incorrect
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current passphrase is incorrect"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrInvalidPassphrase, *ErrPasswordMismatch:
		return http.StatusUnauthorized
	case *ErrValidation, *types.MonthRangeError, validator.ValidationErrors:
		return http.StatusBadRequest
	}

	var lengthErr *config.PassphraseLengthError
	switch {
	case errors.As(err, &lengthErr):
		return http.StatusBadRequest
	case errors.Is(err, content.ErrProjectNotFound), errors.Is(err, content.ErrGoalNotFound):
		return http.StatusNotFound
	case errors.Is(err, config.ErrPassphraseDisabled):
		return http.StatusForbidden
	case errors.Is(err, content.ErrSaveFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
