package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error so transports can map it without reading messages.
type Kind string

const (
	KindNotFound       Kind = "not_found"
	KindValidation     Kind = "validation"
	KindAuthorization  Kind = "authorization"
	KindConflict       Kind = "conflict"
	KindState          Kind = "state"
	KindInfrastructure Kind = "infrastructure"
)

// Error is the structured error returned by every service in the application.
type Error struct {
	Kind    Kind
	Code    string
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

// Is matches another *Error with the same code, so package level
// sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// New builds an error of the given kind.
func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func NotFound(code, message string) *Error {
	return New(KindNotFound, code, message)
}

func Validation(code, message string) *Error {
	return New(KindValidation, code, message)
}

func Authorization(code, message string) *Error {
	return New(KindAuthorization, code, message)
}

func Conflict(code, message string) *Error {
	return New(KindConflict, code, message)
}

func State(code, message string) *Error {
	return New(KindState, code, message)
}

// Infrastructure wraps a storage or network failure. It is the only kind
// a caller may reasonably retry.
func Infrastructure(message string, err error) *Error {
	return &Error{
		Kind:    KindInfrastructure,
		Code:    "SYS001",
		Message: message,
		Err:     err,
	}
}

// Wrap passes *Error values through and wraps anything else as an
// infrastructure failure.
func Wrap(message string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	return Infrastructure(message, err)
}

// KindOf returns the kind of err, defaulting to infrastructure for
// errors that did not originate from this package.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInfrastructure
}

// HasKind reports whether err carries the given kind.
func HasKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps an error kind to a response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthorization:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindState:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf returns the stable error code of err.
func CodeOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Code != "" {
		return appErr.Code
	}
	return "SYS001"
}
