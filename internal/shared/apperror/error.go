// Package apperror defines the error type the feature services return
// and the HTTP layer translates. Each feature keeps a catalog of these
// (a missing payroll, a duplicate pay period) so handlers can map them
// without string matching.
package apperror

import "fmt"

// AppError pairs a stable machine-readable code with the HTTP status
// the handler should answer with. Message is safe to show to callers.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the cause for errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New builds a sentinel AppError. Feature error catalogs declare these
// at package level and services return them by identity.
func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap attaches a code and status to an underlying error while keeping
// it reachable through Unwrap. Returns nil when err is nil.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}
