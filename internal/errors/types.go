package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for HTTP mapping and propagation decisions.
type Kind int

const (
	// KindBadRequest - missing file, disallowed extension, missing required field
	KindBadRequest Kind = iota
	// KindUnauthenticated - missing/expired/invalid credential
	KindUnauthenticated
	// KindNotFound - unknown task id or resource
	KindNotFound
	// KindExternal - text extractor or LLM failure
	KindExternal
	// KindInternal - anything else
	KindInternal
)

// Error carries a classification alongside the wrapped cause. Message, when
// set, is the user-visible text; the cause stays available for logs.
type Error struct {
	Kind    Kind
	Err     error
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error {
	return e.Err
}

// BadRequest creates a request-validation error.
func BadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

// Unauthenticated creates a credential error.
func Unauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

// NotFound creates a missing-resource error.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// External wraps a text-extractor or LLM failure.
func External(err error, message string) *Error {
	return &Error{Kind: KindExternal, Err: err, Message: message}
}

// Externalf wraps a failure with a formatted user-visible message.
func Externalf(err error, format string, args ...any) *Error {
	return &Error{Kind: KindExternal, Err: err, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an unclassified failure.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Err: err}
}

// KindOf extracts the classification from an error chain. Unclassified errors
// are internal.
func KindOf(err error) Kind {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind
	}
	return KindInternal
}

// IsNotFound reports whether the error chain carries KindNotFound.
func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == KindNotFound
}

// IsExternal reports whether the error chain carries KindExternal.
func IsExternal(err error) bool {
	return err != nil && KindOf(err) == KindExternal
}

// HTTPStatus maps an error to the response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindExternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
