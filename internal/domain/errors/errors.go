// Package errors defines the classified application errors the delivery layer
// renders to clients.
package errors

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Error names exposed in the "name" field of error responses.
const (
	NameAuthentication = "AuthenticationError"
	NameValidation     = "ValidationError"
	NameInternal       = "InternalError"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Name() string      // Error category shown to clients
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	name      string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, name, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		name:      name,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// Is matches any BaseError carrying the same business code, so copies made by
// WithDetails or ErrMissingField still satisfy errors.Is against the sentinels.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return t.errorCode == e.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// WithCause attaches the underlying failure. The result keeps e's classification
// for errors.Is and errors.As, and unwraps to cause.
func (e *BaseError) WithCause(cause error) error {
	return errors.WithStack(&causedError{BaseError: e, cause: cause})
}

type causedError struct {
	*BaseError
	cause error
}

func (e *causedError) Error() string {
	return e.BaseError.Error() + ": " + e.cause.Error()
}

func (e *causedError) Cause() error {
	return e.cause
}

func (e *causedError) Unwrap() error {
	return e.cause
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Name returns the error category
func (e *BaseError) Name() string {
	return e.name
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		name:      e.name,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Registration errors. Missing fields use 400 rather than the 404 of the
	// legacy API.
	ErrMissingFieldBase = NewBaseError(
		http.StatusBadRequest,
		"MISSING_FIELD",
		NameValidation,
		"Missing field in request body",
		"",
	)

	ErrUsernameTaken = NewBaseError(
		http.StatusBadRequest,
		"USERNAME_TAKEN",
		NameValidation,
		"The username already exists",
		"",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		NameValidation,
		"Input validation failed",
		"",
	)

	ErrInvalidInput = NewBaseError(
		http.StatusBadRequest,
		"INVALID_INPUT",
		NameValidation,
		"Invalid request body",
		"",
	)

	// Authentication errors. Both share the AuthenticationError name; only the
	// status separates a malformed request from a rejected credential.
	ErrAuthBadRequest = NewBaseError(
		http.StatusBadRequest,
		"AUTH_BAD_REQUEST",
		NameAuthentication,
		"Bad Request",
		"",
	)

	ErrAuthUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"AUTH_UNAUTHORIZED",
		NameAuthentication,
		"Unauthorized",
		"",
	)

	// General errors
	ErrInternal = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		NameInternal,
		"Internal server error",
		"",
	)
)

// ErrMissingField reports a required registration field that was absent or empty.
func ErrMissingField(field string) *BaseError {
	return &BaseError{
		httpCode:  ErrMissingFieldBase.httpCode,
		errorCode: ErrMissingFieldBase.errorCode,
		name:      ErrMissingFieldBase.name,
		message:   fmt.Sprintf("Missing '%s' in request body", field),
		details:   field,
	}
}
