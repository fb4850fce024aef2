// Package errors provides structured error types for the Griddeck application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI, TUI, and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (rejected before any mutation)
//   - *_NOT_FOUND: Resource not found
//   - PERSISTENCE_* / QUOTA_*: Durable storage failures
//   - IMPORT_*: Layout import document failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidPlacement, "placement exceeds grid: x=%d w=%d cols=%d", x, w, cols)
//	if errors.Is(err, errors.ErrCodeInvalidPlacement) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodePersistence, origErr, "write layout record")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidPlacement Code = "INVALID_PLACEMENT"
	ErrCodeInvalidGrid      Code = "INVALID_GRID"
	ErrCodeInvalidTheme     Code = "INVALID_THEME"
	ErrCodeInvalidWidget    Code = "INVALID_WIDGET"
	ErrCodeInvalidInput     Code = "INVALID_INPUT"

	// Resource not found errors
	ErrCodeWidgetNotFound Code = "WIDGET_NOT_FOUND"
	ErrCodeTypeNotFound   Code = "WIDGET_TYPE_NOT_FOUND"

	// Persistence errors
	ErrCodePersistence   Code = "PERSISTENCE_ERROR"
	ErrCodeQuotaExceeded Code = "QUOTA_EXCEEDED"

	// Import errors
	ErrCodeImport Code = "IMPORT_ERROR"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsValidation reports whether err carries one of the INVALID_* codes.
// Validation errors are synchronous, reject input before any mutation,
// and must not be retried.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidPlacement, ErrCodeInvalidGrid, ErrCodeInvalidTheme,
		ErrCodeInvalidWidget, ErrCodeInvalidInput:
		return true
	}
	return false
}

// IsNotFound reports whether err refers to a missing widget or widget type.
func IsNotFound(err error) bool {
	switch GetCode(err) {
	case ErrCodeWidgetNotFound, ErrCodeTypeNotFound:
		return true
	}
	return false
}
