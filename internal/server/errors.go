// Package server provides the HTTP REST API for the resume builder.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/autofill"
	"github.com/jonathan/resume-builder/internal/billing"
	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/document"
	"github.com/jonathan/resume-builder/internal/store"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrTierRequired indicates the user's tier does not cover a feature
type ErrTierRequired struct {
	Feature string
	MinTier string
}

func (e *ErrTierRequired) Error() string {
	return fmt.Sprintf("%s requires the %s tier or higher", e.Feature, e.MinTier)
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
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, store.ErrForbidden) {
		return http.StatusForbidden
	}

	var (
		schemaErr     *document.SchemaError
		stepErr       *builder.ValidationError
		upstreamErr   *autofill.UpstreamError
		providerErr   *billing.ProviderError
		tierErr       *ErrTierRequired
		validationErr *ErrValidation
	)
	switch {
	case errors.As(err, &schemaErr), errors.As(err, &stepErr), errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &upstreamErr), errors.As(err, &providerErr):
		return http.StatusBadGateway
	case errors.As(err, &tierErr):
		return http.StatusForbidden
	}

	switch err.(type) {
	case *ErrEmailAlreadyExists:
		return http.StatusConflict
	case *ErrInvalidCredentials:
		return http.StatusUnauthorized
	case *ErrUserNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
