// Package apperr provides structured errors with machine-readable codes.
//
// Errors carry a code plus string arguments instead of a pre-rendered
// message, so the HTTP boundary can render them in the caller's language.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error for status mapping at the boundary.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindInvalidState
	KindUnauthorized
	KindForbidden
	KindConflict
)

// HTTPStatus maps a kind to its fixed status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindInvalidState:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Error is the domain error type.
type Error struct {
	Kind  Kind
	Code  string
	Args  map[string]string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Code + ": " + e.cause.Error()
	}
	return e.Code
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches errors by code so sentinel comparisons work across wrapping.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Code == t.Code
}

// New creates an error with a kind and code.
func New(kind Kind, code string) *Error {
	return &Error{Kind: kind, Code: code}
}

// WithArgs creates an error carrying template arguments for localization.
func WithArgs(kind Kind, code string, args map[string]string) *Error {
	return &Error{Kind: kind, Code: code, Args: args}
}

// Wrap creates an error around an underlying cause.
func Wrap(kind Kind, code string, cause error) *Error {
	return &Error{Kind: kind, Code: code, cause: cause}
}

// From extracts an *Error from err, or wraps it as internal.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(KindInternal, CodeInternal, err)
}
