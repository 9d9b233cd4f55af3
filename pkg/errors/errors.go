// Package errors provides structured error types for minidraw.
//
// This package defines error codes and types that enable:
//   - A closed taxonomy for scene-graph failures (cycles, geometry, style, targets)
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages for the CLI
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The scene engine reports four kinds of failure, each raised by the call
// that detects it:
//   - CYCLE: a Group was added below itself (see [CycleError])
//   - UNKNOWN_TARGET: no backend is registered under a name (see [UnknownTargetError])
//   - INVALID_STYLE: an unrecognised or mistyped style attribute (see [StyleError])
//   - GEOMETRY: an operation is undefined for a primitive's shape (see [GeometryError])
//
// Supporting codes cover attachment, scene documents and file output.
//
// # Usage
//
//	err := errors.GeometryError("arc cannot represent anisotropic scale (%g, %g)", sx, sy)
//	if errors.IsGeometry(err) {
//	    // Handle rejected transform
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "write %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Scene graph errors
	ErrCodeCycle         Code = "CYCLE"
	ErrCodeAttached      Code = "ATTACHED"
	ErrCodeGeometry      Code = "GEOMETRY"
	ErrCodeInvalidStyle  Code = "INVALID_STYLE"
	ErrCodeUnknownTarget Code = "UNKNOWN_TARGET"

	// Input errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInvalidScene Code = "INVALID_SCENE"
	ErrCodeInvalidPath  Code = "INVALID_PATH"

	// Output errors
	ErrCodeIO Code = "IO_ERROR"

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

// =============================================================================
// Scene Taxonomy
// =============================================================================

// CycleError reports an attempt to add a Group to itself or to one of its
// own descendants.
func CycleError(format string, args ...any) *Error {
	return New(ErrCodeCycle, format, args...)
}

// UnknownTargetError reports a backend name that is not registered or a
// file extension that does not map to any backend.
func UnknownTargetError(target string) *Error {
	return New(ErrCodeUnknownTarget, "unknown render target %q", target)
}

// StyleError reports an unrecognised style attribute or a value of the
// wrong type for a recognised one.
func StyleError(format string, args ...any) *Error {
	return New(ErrCodeInvalidStyle, format, args...)
}

// GeometryError reports an operation that is undefined for a primitive's
// current shape.
func GeometryError(format string, args ...any) *Error {
	return New(ErrCodeGeometry, format, args...)
}

// IsCycle reports whether err is a [CycleError].
func IsCycle(err error) bool { return Is(err, ErrCodeCycle) }

// IsUnknownTarget reports whether err is an [UnknownTargetError].
func IsUnknownTarget(err error) bool { return Is(err, ErrCodeUnknownTarget) }

// IsStyle reports whether err is a [StyleError].
func IsStyle(err error) bool { return Is(err, ErrCodeInvalidStyle) }

// IsGeometry reports whether err is a [GeometryError].
func IsGeometry(err error) bool { return Is(err, ErrCodeGeometry) }
