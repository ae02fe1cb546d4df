// Package apperr defines the error taxonomy shared by services and
// transport: validation, not-found, forbidden, conflict, and store
// failures. Services classify before any write; handlers map the kind
// to an HTTP status without inspecting messages.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for transport mapping
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindForbidden
	KindConflict
	KindStore
)

// Error carries a caller-safe message and a kind
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message returns the caller-safe message without wrapped detail
func (e *Error) Message() string {
	return e.Msg
}

// Validation reports malformed or missing input
func Validation(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// NotFound reports a referenced entity that does not exist
func NotFound(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Forbidden reports an authenticated caller acting outside their rights
func Forbidden(format string, args ...interface{}) error {
	return &Error{Kind: KindForbidden, Msg: fmt.Sprintf(format, args...)}
}

// Conflict reports a duplicate where at most one record may exist
func Conflict(format string, args ...interface{}) error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// Store wraps an underlying persistence failure. The message surfaced
// to callers stays generic; the cause travels in the chain for logs.
func Store(op string, err error) error {
	return &Error{Kind: KindStore, Msg: fmt.Sprintf("%s failed", op), Err: err}
}

// KindOf extracts the kind from an error chain
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

// IsKind reports whether the error chain carries the given kind
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
