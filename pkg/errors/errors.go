package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies application errors
type ErrorCode int

const (
	ErrValidation ErrorCode = iota + 1000
	ErrNotFound
	ErrConflict
	ErrUnauthenticated
	ErrUnauthorized
	ErrInternal
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error code to an HTTP status
func (e *AppError) StatusCode() int {
	switch e.Code {
	case ErrValidation, ErrConflict:
		return http.StatusBadRequest
	case ErrNotFound:
		return http.StatusNotFound
	case ErrUnauthenticated:
		return http.StatusUnauthorized
	case ErrUnauthorized:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Error constructors
func Validation(message string) *AppError {
	return &AppError{Code: ErrValidation, Message: message}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func NotFoundMsg(message string) *AppError {
	return &AppError{Code: ErrNotFound, Message: message}
}

func Conflict(message string) *AppError {
	return &AppError{Code: ErrConflict, Message: message}
}

func Unauthenticated(message string) *AppError {
	return &AppError{Code: ErrUnauthenticated, Message: message}
}

func Unauthorized(message string) *AppError {
	return &AppError{Code: ErrUnauthorized, Message: message}
}

func Internal(message string, err error) *AppError {
	return &AppError{Code: ErrInternal, Message: message, Err: err}
}

// IsCode reports whether err is an AppError with the given code
func IsCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

func IsNotFound(err error) bool   { return IsCode(err, ErrNotFound) }
func IsValidation(err error) bool { return IsCode(err, ErrValidation) }
func IsConflict(err error) bool   { return IsCode(err, ErrConflict) }
