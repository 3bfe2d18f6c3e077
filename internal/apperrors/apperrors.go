// Package apperrors defines the error kinds returned by the aircraft access layer
// and their HTTP status mapping.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a domain failure.
type Kind int

const (
	Unknown Kind = iota
	InvalidData
	NotFound
	DatabaseIntegrity
	RepositoryUnavailable
	DatabaseConnection
)

func (k Kind) String() string {
	switch k {
	case InvalidData:
		return "invalid_data"
	case NotFound:
		return "not_found"
	case DatabaseIntegrity:
		return "database_integrity"
	case RepositoryUnavailable:
		return "repository_unavailable"
	case DatabaseConnection:
		return "database_connection"
	default:
		return "unknown"
	}
}

// StatusCode is the HTTP status a handler answers with for this kind.
func (k Kind) StatusCode() int {
	switch k {
	case InvalidData:
		return http.StatusUnprocessableEntity
	case NotFound:
		return http.StatusNotFound
	case RepositoryUnavailable, DatabaseConnection:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) defaultMessage() string {
	switch k {
	case InvalidData:
		return "Invalid aircraft data."
	case NotFound:
		return "Aircraft with given 'id' not found."
	case DatabaseIntegrity:
		return "Integrity error."
	case RepositoryUnavailable:
		return "Aircraft repository service is currently unavailable. Please try again later."
	case DatabaseConnection:
		return "Database connection failed."
	default:
		return "An error occurred."
	}
}

// Error is a domain error carrying its Kind and the underlying cause, if any.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.defaultMessage()
	}
	if e.Err != nil {
		return fmt.Sprintf("(%d) - %s: %v", e.Kind.StatusCode(), msg, e.Err)
	}
	return fmt.Sprintf("(%d) - %s", e.Kind.StatusCode(), msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// PublicMessage is the text safe to return to API clients.
func (e *Error) PublicMessage() string {
	if e.Message == "" {
		return e.Kind.defaultMessage()
	}
	return e.Message
}

// New returns an Error of the given kind. An empty msg uses the kind's default message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf is New with a format string.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches kind and msg to err.
func Wrap(kind Kind, err error, msg string) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf reports the Kind of the first *Error in err's chain, or Unknown.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Unknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// StatusCode maps err to an HTTP status. Errors without a kind map to 500.
func StatusCode(err error) int {
	return KindOf(err).StatusCode()
}

// Message returns the client-facing message for err.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.PublicMessage()
	}
	return Unknown.defaultMessage()
}
