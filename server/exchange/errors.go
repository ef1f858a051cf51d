package exchange

import (
	"github.com/pkg/errors"
)

// ErrMalformedAttribute is returned when an attribute does not match the
// shape required by its type.
var ErrMalformedAttribute = errors.New("malformed attribute")

// ClientError is the only error kind returned by Client operations. It
// covers non-200 responses, transport failures, and encode or decode
// failures.
type ClientError struct {
	Message string

	// Code is the response status for status failures, or the code exposed by
	// the wrapped cause, if any.
	Code int

	cause error
}

func (e *ClientError) Error() string {
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.cause
}

// Cause implements the pkg/errors causer interface.
func (e *ClientError) Cause() error {
	return e.cause
}

type coder interface {
	Code() int
}

type statusCoder interface {
	StatusCode() int
}

func newStatusError(message string, status int) *ClientError {
	return &ClientError{Message: message, Code: status}
}

// wrapClientError keeps the message and cause of err and copies its code
// when the cause exposes one.
func wrapClientError(err error) *ClientError {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr
	}

	wrapped := &ClientError{Message: err.Error(), cause: err}

	var c coder
	var sc statusCoder
	switch {
	case errors.As(err, &c):
		wrapped.Code = c.Code()
	case errors.As(err, &sc):
		wrapped.Code = sc.StatusCode()
	}

	return wrapped
}
