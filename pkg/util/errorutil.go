package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

// NewUnauthenticated signals a missing or invalid actor.
func NewUnauthenticated(message string) error {
	return NewDomainError("UNAUTHENTICATED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

// NewIneligibleGPA signals that the actor's GPA is below a posting's minimum.
func NewIneligibleGPA(required, actual float64) error {
	return NewDomainError("INELIGIBLE_GPA",
		fmt.Sprintf("minimum GPA requirement is %.1f, your GPA is %.1f", required, actual),
		http.StatusUnprocessableEntity,
		map[string]any{"required": required, "actual": actual})
}

// NewIneligibleYear signals that the actor's enrollment year is outside a
// posting's allowed set.
func NewIneligibleYear(allowed []int, actual int) error {
	return NewDomainError("INELIGIBLE_YEAR",
		fmt.Sprintf("posting is restricted to years %v", allowed),
		http.StatusUnprocessableEntity,
		map[string]any{"allowed": allowed, "actual": actual})
}

// NewPersistenceFailure wraps a failed store write. Callers must not retry
// automatically; there is no idempotency key to make a retry safe.
func NewPersistenceFailure(err error) error {
	return &DomainError{
		Code:       "PERSISTENCE_FAILURE",
		Message:    "failed to persist record",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewUpstreamGatewayFailure wraps an LLM gateway error.
func NewUpstreamGatewayFailure(err error) error {
	return &DomainError{
		Code:       "UPSTREAM_GATEWAY_FAILURE",
		Message:    "upstream AI gateway request failed",
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"details": fmt.Sprint(err)},
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
		}
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
