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

// ErrConflict indicates that a write was rejected because the stored row changed since it was read.
var ErrConflict = errors.New("resource was modified concurrently")

// ErrStore indicates that the persistent store rejected a read or write.
var ErrStore = errors.New("store operation failed")

// ErrCompensationFailed indicates that a rollback step failed after a partial mutation,
// leaving the store in a partially applied state.
var ErrCompensationFailed = errors.New("compensation failed")

// ErrInternal is a generic internal error that hides details from callers.
var ErrInternal = errors.New("internal error")

// AppError is returned by the repository layer. It carries an HTTP-ish status hint
// alongside the underlying cause.
type AppError struct {
	Status  int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(status int, message string, err error) *AppError {
	return &AppError{Status: status, Message: message, Err: err}
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

// Is lets a 5xx AppError match ErrStore so callers can classify store failures
// without knowing about AppError.
func (e *AppError) Is(target error) bool {
	return target == ErrStore && e.Status >= 500
}
