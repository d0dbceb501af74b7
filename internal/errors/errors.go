package errors

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"
)

// Error codes carried in the error_code field of problem responses.
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeNotFound            = "NOT_FOUND"
	CodeRateLimitExceeded   = "RATE_LIMIT_EXCEEDED"
	CodeInternalServer      = "INTERNAL_SERVER_ERROR"
	CodeServiceUnavailable  = "SERVICE_UNAVAILABLE"
	CodeSourceNotFound      = "SOURCE_NOT_FOUND"
	CodeMissingColumns      = "MISSING_COLUMNS"
	CodeMalformedSource     = "MALFORMED_SOURCE"
	CodeFrontendUnavailable = "FRONTEND_UNAVAILABLE"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	// Cause is logged but never rendered.
	Cause error `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *APIError) Unwrap() error {
	return e.Cause
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Predefined error types for common scenarios
var (
	ErrNotFound          = New(http.StatusNotFound, CodeNotFound, "Resource not found")
	ErrRateLimitExceeded = New(http.StatusTooManyRequests, CodeRateLimitExceeded, "Rate limit exceeded")
)

// MissingColumnsDetails lists the required source columns that are absent.
type MissingColumnsDetails struct {
	MissingColumns []string `json:"missing_columns"`
}

// SourceNotFoundError reports that no source file could be resolved.
func SourceNotFoundError(cause error) *APIError {
	return &APIError{
		StatusCode: http.StatusNotFound,
		ErrorCode:  CodeSourceNotFound,
		Message:    "source file not found",
		Cause:      cause,
	}
}

// MissingColumnsError reports required columns absent from the source file.
func MissingColumnsError(missing []string) *APIError {
	return NewWithDetails(
		http.StatusInternalServerError,
		CodeMissingColumns,
		"missing columns in source file: "+strings.Join(missing, ", "),
		MissingColumnsDetails{MissingColumns: missing},
	)
}

// MalformedSourceError reports a source file that cannot be parsed.
func MalformedSourceError(cause error) *APIError {
	return &APIError{
		StatusCode: http.StatusInternalServerError,
		ErrorCode:  CodeMalformedSource,
		Message:    "source file could not be parsed",
		Cause:      cause,
	}
}

// FrontendUnavailableError reports that the front-end page cannot be served.
func FrontendUnavailableError(cause error) *APIError {
	return &APIError{
		StatusCode: http.StatusInternalServerError,
		ErrorCode:  CodeFrontendUnavailable,
		Message:    "front-end file is not available",
		Cause:      cause,
	}
}

// PanicRecovery represents panic recovery information
type PanicRecovery struct {
	Message string `json:"message"`
}

// ErrPanic creates a panic recovery error
func ErrPanic(rec interface{}) *APIError {
	return NewWithDetails(
		http.StatusInternalServerError,
		CodeInternalServer,
		"Internal server error",
		PanicRecovery{Message: fmt.Sprintf("%v", rec)},
	)
}
