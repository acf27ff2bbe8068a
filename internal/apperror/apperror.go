package apperror

import "errors"

// Sentinel errors for the failure kinds services can raise. Handlers map them
// to HTTP statuses with errors.Is; everything else is treated as internal.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("conflict")
	ErrNotFound        = errors.New("not found")
)

// AppError pairs a failure kind with a human-readable message. Not-found and
// access-denied are deliberately the same kind so callers cannot probe for
// the existence of another user's data.
type AppError struct {
	Err     error
	Message string
	Fields  map[string]string // per-field messages, validation only
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports a missing resource or one the caller may not see.
func NotFound(message string) *AppError {
	return &AppError{Err: ErrNotFound, Message: message}
}

// Conflict reports a uniqueness violation.
func Conflict(message string) *AppError {
	return &AppError{Err: ErrConflict, Message: message}
}

// Unauthenticated reports a missing or invalid caller identity.
func Unauthenticated(message string) *AppError {
	return &AppError{Err: ErrUnauthenticated, Message: message}
}

// Validation reports structurally invalid input with all field violations
// collected into one error.
func Validation(fields map[string]string) *AppError {
	return &AppError{Err: ErrValidation, Message: "validation failed", Fields: fields}
}
