// Package apperrors provides typed errors that map onto HTTP status codes.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Type is the category of an error.
type Type string

const (
	TypeValidation Type = "validation"
	TypeNotFound   Type = "not_found"
	TypeInternal   Type = "internal"
)

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a structured error with a client-safe message.
type Error struct {
	Type    Type
	Message string
	Fields  []FieldError
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the status code for the error type.
func (e *Error) HTTPStatus() int {
	switch e.Type {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Validation creates a 400 error.
func Validation(message string, fields ...FieldError) *Error {
	return &Error{Type: TypeValidation, Message: message, Fields: fields}
}

// NotFound creates a 404 error.
func NotFound(message string) *Error {
	return &Error{Type: TypeNotFound, Message: message}
}

// Internal creates a 500 error. The cause is for logs only.
func Internal(message string, cause error) *Error {
	return &Error{Type: TypeInternal, Message: message, Cause: cause}
}

// As converts any error into an *Error, wrapping unknown errors as internal.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal("Server error", err)
}

// ErrNotFound is returned by stores when a scoped lookup or delete matches nothing.
var ErrNotFound = errors.New("not found")
