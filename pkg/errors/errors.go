package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// AppError provides a structured error that can be rendered to API consumers.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	// Data is rendered alongside the message, e.g. the lock expiry of a locked account.
	Data     any   `json:"data,omitempty"`
	Internal error `json:"-"`
}

func (e *AppError) Error() string {
	if e == nil {
		return "<nil>"
	}

	if e.Internal != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Internal)
	}

	return e.Message
}

// Unwrap exposes the internal error for errors.Is / errors.As compatibility.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Internal
}

// Is matches two AppErrors by code so copies of a sentinel still compare equal.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// WithInternal returns a copy of the AppError with an attached internal error.
func (e *AppError) WithInternal(err error) *AppError {
	if e == nil {
		return nil
	}

	cpy := *e
	cpy.Internal = err
	return &cpy
}

// WithData returns a copy of the AppError carrying a client visible payload.
func (e *AppError) WithData(data any) *AppError {
	if e == nil {
		return nil
	}

	cpy := *e
	cpy.Data = data
	return &cpy
}

// Error codes shared by handlers and services.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodePasswordPolicy   = "PASSWORD_POLICY"
	CodeStorage          = "STORAGE_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeUnauthenticated  = "UNAUTHENTICATED"
	CodeForbidden        = "FORBIDDEN"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeAccountLocked    = "ACCOUNT_LOCKED"
	CodeTankerInUse      = "TANKER_IN_USE"
)

// Common errors exposed to the rest of the application.
var (
	ErrUnauthenticated = &AppError{
		Code:       CodeUnauthenticated,
		Message:    "Authentication required",
		StatusCode: http.StatusUnauthorized,
	}

	ErrInvalidCredentials = &AppError{
		Code:       "INVALID_CREDENTIALS",
		Message:    "Invalid username or password",
		StatusCode: http.StatusUnauthorized,
	}

	ErrAccountLocked = &AppError{
		Code:       CodeAccountLocked,
		Message:    "Account is temporarily locked",
		StatusCode: http.StatusForbidden,
	}

	ErrForbidden = &AppError{
		Code:       CodeForbidden,
		Message:    "You do not have permission to access this resource",
		StatusCode: http.StatusForbidden,
	}

	ErrNotFound = &AppError{
		Code:       CodeNotFound,
		Message:    "Resource not found",
		StatusCode: http.StatusNotFound,
	}

	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "Invalid request",
		StatusCode: http.StatusBadRequest,
	}

	ErrMethodNotAllowed = &AppError{
		Code:       CodeMethodNotAllowed,
		Message:    "Method not allowed",
		StatusCode: http.StatusMethodNotAllowed,
	}

	ErrInternalServer = &AppError{
		Code:       "INTERNAL_SERVER_ERROR",
		Message:    "Internal server error",
		StatusCode: http.StatusInternalServerError,
	}
)

// New builds a new application error with the provided metadata.
func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Wrap turns any error into an AppError while keeping the original error for logging.
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Internal:   err,
	}
}

// FromError converts a generic error into an AppError, defaulting to ErrInternalServer.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	return ErrInternalServer.WithInternal(err)
}

// NewBadRequest wraps malformed input errors with a helpful message.
func NewBadRequest(message string) *AppError {
	return &AppError{
		Code:       ErrBadRequest.Code,
		Message:    message,
		StatusCode: ErrBadRequest.StatusCode,
	}
}

// NewValidation reports input the caller must fix before retrying.
func NewValidation(message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NewMissingFields lists required fields absent from a request.
func NewMissingFields(fields []string) *AppError {
	return NewValidation("Missing required fields: " + strings.Join(fields, ", "))
}

// NewNotFound reports a missing resource of the given kind.
func NewNotFound(resource string) *AppError {
	msg := ErrNotFound.Message
	if resource != "" {
		msg = resource + " not found"
	}
	return &AppError{
		Code:       CodeNotFound,
		Message:    msg,
		StatusCode: http.StatusNotFound,
	}
}

// NewPolicyViolation reports a password that fails the configured policy.
func NewPolicyViolation(message string) *AppError {
	return &AppError{
		Code:       CodePasswordPolicy,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NewStorage hides a persistence failure behind a generic message.
func NewStorage(err error) *AppError {
	return &AppError{
		Code:       CodeStorage,
		Message:    "A storage error occurred",
		StatusCode: http.StatusInternalServerError,
		Internal:   err,
	}
}
