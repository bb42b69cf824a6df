package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the closed set of error categories the engine can produce.
// Callers branch on Kind, never on message text.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindForbidden
	KindInvalidOperation
	KindConflict
	KindInvalid
)

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

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func InvalidOperation(message string) *Error {
	return &Error{Kind: KindInvalidOperation, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Invalid(message string) *Error {
	return &Error{Kind: KindInvalid, Message: message}
}

// Wrap attaches a cause to err without changing its kind or message.
func Wrap(err *Error, cause error) *Error {
	return &Error{Kind: err.Kind, Message: err.Message, Err: cause}
}

// KindOf extracts the kind from any error in the chain, KindUnknown otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Status maps an error to the HTTP status the handlers respond with.
func Status(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindInvalidOperation:
		return http.StatusUnprocessableEntity
	case KindConflict:
		return http.StatusConflict
	case KindInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
