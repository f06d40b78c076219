// Package domainerrors provides coded errors for the service and transport
// layers. Stores return sentinel errors (pkg/platform/sentinel); services
// translate those into coded errors so handlers can map them to HTTP statuses
// without inspecting store internals.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies an error for transport mapping and log filtering.
type Code string

const (
	CodeInvalidInput Code = "invalid_input"
	CodeBadRequest   Code = "bad_request"
	CodeUnauthorized Code = "unauthorized"
	CodeNotFound     Code = "not_found"
	CodeUnavailable  Code = "unavailable"
	CodeInternal     Code = "internal_error"
)

// Error is a coded error with an optional wrapped cause.
type Error struct {
	code    Code
	message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches two coded errors by code and message, ignoring the cause chain.
// This lets tests and callers compare against a freshly constructed error.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.code == other.code && e.message == other.message
}

// Code returns the classification of the error.
func (e *Error) Code() Code { return e.code }

// Message returns the human-readable description without the cause chain.
func (e *Error) Message() string { return e.message }

// New creates a coded error.
func New(code Code, message string) error {
	return &Error{code: code, message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{code: code, message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an existing error. A nil cause yields nil.
func Wrap(cause error, code Code, message string) error {
	if cause == nil {
		return nil
	}
	return &Error{code: code, message: message, cause: cause}
}

// CodeOf extracts the code from an error chain, defaulting to CodeInternal so
// unclassified failures never leak details to callers.
func CodeOf(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.code
	}
	return CodeInternal
}

// HasCode reports whether any error in the chain carries the given code.
func HasCode(err error, code Code) bool {
	var coded *Error
	return errors.As(err, &coded) && coded.code == code
}
