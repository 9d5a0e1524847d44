// Package apperr defines the errors handlers turn into HTTP responses.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error by who is at fault.
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthorized
	KindUpstream
	KindBadRequest
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindUpstream:
		return "upstream"
	case KindBadRequest:
		return "bad_request"
	case KindValidation:
		return "validation"
	default:
		return "internal"
	}
}

// Error is an error that knows its HTTP status and the detail shown to the caller.
type Error struct {
	Kind   Kind
	Status int
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%d): %s: %v", e.Kind, e.Status, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Unauthorized reports a missing credential.
func Unauthorized(detail string) *Error {
	return &Error{Kind: KindUnauthorized, Status: http.StatusUnauthorized, Detail: detail}
}

// Upstream reports a provider that answered with a non-success status.
// The status is passed through to the caller as-is.
func Upstream(status int, detail string) *Error {
	return &Error{Kind: KindUpstream, Status: status, Detail: detail}
}

// BadRequest reports a provider rejecting the caller's input.
func BadRequest(detail string) *Error {
	return &Error{Kind: KindBadRequest, Status: http.StatusBadRequest, Detail: detail}
}

// Validation reports a malformed client request.
func Validation(detail string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusUnprocessableEntity, Detail: detail}
}

// Internal reports a local or transport failure.
func Internal(detail string, err error) *Error {
	return &Error{Kind: KindInternal, Status: http.StatusInternalServerError, Detail: detail, Err: err}
}

// From returns err as *Error, wrapping anything else as an internal error.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("Internal Server Error", err)
}
