// Package apierr defines the errors that the HTTP layer maps onto status codes.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error carries the HTTP status code an error shall be answered with.
type Error struct {
	Status int
	Err    error
}

// Error returns the message of the wrapped error.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("api error (%d)", e.Status)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error { return e.Err }

// New wraps err into an error answered with the given status code.
func New(status int, err error) *Error {
	return &Error{Status: status, Err: err}
}

// BadRequest signals malformed or empty client input.
func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, errors.New(message))
}

// NotFound signals that the addressed resource does not exist.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, errors.New(message))
}

// MethodNotAllowed signals a verb that is not wired for a route.
func MethodNotAllowed() *Error {
	return New(http.StatusMethodNotAllowed, errors.New("Method not allowed"))
}

// Internal signals a row store or filesystem failure.
func Internal(err error) *Error {
	return New(http.StatusInternalServerError, err)
}

// StatusOf returns the status code carried by err, or 500 for any other error.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Status != 0 {
		return apiErr.Status
	}
	return http.StatusInternalServerError
}
