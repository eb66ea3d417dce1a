package apperror

import (
	"errors"
	"net/http"
)

// Reasons are stable machine-readable codes carried by every AppError.
// Two AppErrors match under errors.Is when their reasons are equal.
const (
	ReasonNotFound               = "not_found"
	ReasonValidationFailed       = "validation_failed"
	ReasonIncompatibleSign       = "incompatible_sign"
	ReasonNoCompensationPossible = "no_compensation_possible"
	ReasonConcurrencyConflict    = "concurrency_conflict"
	ReasonBadRequest             = "bad_request"
	ReasonUnauthorized           = "unauthorized"
	ReasonInternal               = "internal_error"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Reason  string       `json:"reason"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Is reports whether target is an AppError with the same reason.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Reason != "" && t.Reason == e.Reason
}

// Common errors
var (
	ErrNotFound               = &AppError{Code: http.StatusNotFound, Reason: ReasonNotFound, Message: "Resource not found"}
	ErrUnauthorized           = &AppError{Code: http.StatusUnauthorized, Reason: ReasonUnauthorized, Message: "Unauthorized"}
	ErrBadRequest             = &AppError{Code: http.StatusBadRequest, Reason: ReasonBadRequest, Message: "Bad request"}
	ErrInternalServer         = &AppError{Code: http.StatusInternalServerError, Reason: ReasonInternal, Message: "Internal server error"}
	ErrValidationFailed       = &AppError{Code: http.StatusUnprocessableEntity, Reason: ReasonValidationFailed, Message: "Validation failed"}
	ErrIncompatibleSign       = &AppError{Code: http.StatusUnprocessableEntity, Reason: ReasonIncompatibleSign, Message: "Sale balance has the wrong sign"}
	ErrNoCompensationPossible = &AppError{Code: http.StatusUnprocessableEntity, Reason: ReasonNoCompensationPossible, Message: "No compensation possible"}
	ErrConcurrencyConflict    = &AppError{Code: http.StatusConflict, Reason: ReasonConcurrencyConflict, Message: "Record was modified concurrently, please retry"}
)

// NewAppError creates a new application error
func NewAppError(code int, reason, message string) *AppError {
	return &AppError{
		Code:    code,
		Reason:  reason,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Reason:  ReasonValidationFailed,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewFieldValidationError creates a validation error for a single field
func NewFieldValidationError(field, message string) *AppError {
	return NewValidationError([]FieldError{{Field: field, Message: message}})
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Reason:  ReasonNotFound,
		Message: resource + " not found",
	}
}

// NewIncompatibleSignError reports a sale whose balance cannot play the requested role
func NewIncompatibleSignError(field, message string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Reason:  ReasonIncompatibleSign,
		Message: message,
		Errors:  []FieldError{{Field: field, Message: message}},
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Reason:  ReasonBadRequest,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible.
// Unknown errors are reported as internal errors without leaking their text.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrInternalServer
}

// NewFieldNotFoundError reports a missing resource referenced by a request field
func NewFieldNotFoundError(resource, field string) *AppError {
	err := NewNotFoundError(resource)
	err.Errors = []FieldError{{Field: field, Message: err.Message}}
	return err
}
