// Package apperror defines errors that carry the HTTP status they map to.
package apperror

import (
	"errors"
	"net/http"
)

// Error is a user-visible failure. Status is the HTTP code the transport should answer with.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, message string, err error) *Error {
	return &Error{Status: status, Message: message, Err: err}
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message, nil)
}

func InvalidCredentials() *Error {
	return New(http.StatusUnauthorized, "invalid username/password", nil)
}

func DuplicateUsername(err error) *Error {
	return New(http.StatusBadRequest, "username already exists", err)
}

func NotFound(message string, err error) *Error {
	return New(http.StatusNotFound, message, err)
}

// Forbidden answers 401, matching the public contract of the message routes.
func Forbidden(message string) *Error {
	return New(http.StatusUnauthorized, message, nil)
}

func ForeignKeyViolation(err error) *Error {
	return New(http.StatusBadRequest, "sender or recipient does not exist", err)
}

// InvalidText rejects input the database cannot store, such as a NUL byte.
func InvalidText(err error) *Error {
	return New(http.StatusBadRequest, "text fields must not contain NUL characters", err)
}

// StatusOf returns the status carried by err, or 500 for unclassified errors.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
