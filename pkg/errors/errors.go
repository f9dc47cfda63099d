// Package errors provides structured error types for gfak.
//
// This package defines error codes and types that enable:
//   - Consistent diagnostics across the parser, converter and CLI
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes are grouped by where they arise:
//   - SOURCE_*: the input could not be opened or read
//   - LINE_* / MALFORMED_*: a single record could not be parsed
//   - VERSION_CONFLICT, DANGLING_REFERENCE, LOSSY_CONVERSION: informational
//     diagnostics produced by parsing, verification and schema conversion
//   - INVALID_* / INTERNAL_*: generic failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeLineParse, "link needs 5 fields, got %d", n)
//	if errors.Is(err, errors.ErrCodeLineParse) {
//	    // skip the line
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeSourceUnavailable, origErr, "open %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Source errors (fatal to a parse call)
	ErrCodeSourceUnavailable Code = "SOURCE_UNAVAILABLE"

	// Per-line and per-record errors (recoverable)
	ErrCodeLineParse      Code = "LINE_PARSE_ERROR"
	ErrCodeMalformedField Code = "MALFORMED_OPTIONAL_FIELD"

	// Informational diagnostics
	ErrCodeVersionConflict   Code = "VERSION_CONFLICT"
	ErrCodeDanglingReference Code = "DANGLING_REFERENCE"
	ErrCodeLossyConversion   Code = "LOSSY_CONVERSION"

	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidName    Code = "INVALID_NAME"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidVersion Code = "INVALID_VERSION"

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
