// Package apperror defines the application error taxonomy and its
// mapping to HTTP status codes.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind categorizes an application error.
type Kind int

const (
	// Unknown is for unspecified errors
	Unknown Kind = iota
	// NotFound means the entity or subdocument does not exist
	NotFound
	// Forbidden means the actor is not the owner/author
	Forbidden
	// AlreadyDone means a strict endpoint rejected a duplicate action
	AlreadyDone
	// NotDone means a strict undo was attempted on an absent edge
	NotDone
	// Validation means a field was missing or out of range
	Validation
	// Auth means the token was missing, invalid or revoked
	Auth
	// Conflict means a concurrent write invalidated this one
	Conflict
	// Internal means an unexpected store or system failure
	Internal
)

// Error carries the kind, a user-facing message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to an HTTP status.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case NotFound:
		return http.StatusNotFound
	case Forbidden:
		return http.StatusForbidden
	case AlreadyDone:
		return http.StatusConflict
	case NotDone:
		return http.StatusBadRequest
	case Validation:
		return http.StatusBadRequest
	case Auth:
		return http.StatusUnauthorized
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an error of the given kind around a cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// As extracts an *Error from err, or nil.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsKind reports whether err is an application error of the given kind.
func IsKind(err error, kind Kind) bool {
	if appErr := As(err); appErr != nil {
		return appErr.Kind == kind
	}
	return false
}
