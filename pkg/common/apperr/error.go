package apperr

import (
	"fmt"
	"net/http"
)

// AppError is an error carrying an application code and the HTTP status
// it maps to.
type AppError struct {
	Code       int
	Message    string
	HTTPStatus int
	Cause      error
}

// New creates an AppError.
func New(code int, msg string, httpStatus int, cause error) *AppError {
	if httpStatus == 0 {
		httpStatus = http.StatusInternalServerError
	}
	return &AppError{
		Code:       code,
		Message:    msg,
		HTTPStatus: httpStatus,
		Cause:      cause,
	}
}

// Wrap attaches a code, message and status to err.
func Wrap(err error, code int, msg string, httpStatus int) *AppError {
	return New(code, msg, httpStatus, err)
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}
