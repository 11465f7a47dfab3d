package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidState indicates that the resource is not in a state that allows the operation
// (inactive account, wrong movement kind, already reversed).
var ErrInvalidState = errors.New("invalid state")

// ErrInsufficientFunds indicates that a debit would take a balance below zero.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrLimitExceeded indicates that the daily transfer ceiling would be crossed.
var ErrLimitExceeded = errors.New("daily transfer limit exceeded")

// ErrWindowExpired indicates that the reversal window for a deposit has elapsed.
var ErrWindowExpired = errors.New("reversal window expired")

// ErrUnavailable indicates that an upstream dependency failed and no fallback exists.
var ErrUnavailable = errors.New("service unavailable")

// ErrForbidden indicates that the caller lacks the capability for the operation.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates that no valid caller identity was presented.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal indicates an unexpected failure inside the service.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-style status code alongside a message and the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError builds an AppError. err may be nil.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the cause so errors.Is keeps seeing sentinel errors through an AppError.
func (e *AppError) Unwrap() error {
	return e.Err
}
