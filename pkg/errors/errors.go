// Package errors provides structured error types for the codecity engine.
//
// Layout failures fall into two groups: fatal conditions that abort a single
// Layout or DrawEdges call, and recoverable conditions that have a defined
// fallback and are only logged. Both carry a [Code] so callers (CLI, HTTP
// service) can react without parsing messages.
//
// # Error Codes
//
//   - NO_ROOTS: no discoverable root in the node collection (fatal)
//   - MULTIPLE_ROOTS: edge bundling was given a forest (fatal)
//   - UNSUPPORTED_SHAPE: precondition violation, e.g. inner nodes passed to a
//     flat layout (fatal)
//   - MISSING_LCA, DEGENERATE_METRIC: recoverable, reported through logs
//   - INVALID_*: input validation failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNoRoots, "no roots among %d nodes", n)
//	if errors.Is(err, errors.ErrCodeNoRoots) {
//	    // Handle empty input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Layout errors
	ErrCodeNoRoots          Code = "NO_ROOTS"
	ErrCodeMultipleRoots    Code = "MULTIPLE_ROOTS"
	ErrCodeMissingLCA       Code = "MISSING_LCA"
	ErrCodeDegenerateMetric Code = "DEGENERATE_METRIC"
	ErrCodeUnsupportedShape Code = "UNSUPPORTED_SHAPE"

	// Input validation errors
	ErrCodeInvalidArgument Code = "INVALID_ARGUMENT"
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidLayout   Code = "INVALID_LAYOUT"
	ErrCodeInvalidScale    Code = "INVALID_SCALE"

	// Resource errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// IsFatal reports whether the code aborts a layout pass. Recoverable codes
// (MISSING_LCA, DEGENERATE_METRIC) have fallbacks and are never returned by
// the engine; they only show up in logs.
func IsFatal(code Code) bool {
	switch code {
	case ErrCodeMissingLCA, ErrCodeDegenerateMetric:
		return false
	default:
		return code != ""
	}
}
