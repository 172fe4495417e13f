package apperr

import (
	"fmt"
)

// Generic Action Messages
const (
	MsgPushFailed    = "failed to push items"
	MsgFlushFailed   = "failed to flush batches"
	MsgStatusFailed  = "failed to read status"
	MsgUnavailable   = "is not accepting requests"
	MsgProcessFailed = "failed to process"
)

// MapError wraps an error with a standardized message
func MapError(serviceName string, err error, code int, msg string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}

	formattedMsg := fmt.Sprintf("%s %s", serviceName, msg)
	return Wrap(err, code, formattedMsg, httpStatus)
}

// NewError creates a new AppError with standardized message format
func NewError(serviceName string, code int, msg string, httpStatus int, cause error) *AppError {
	formattedMsg := fmt.Sprintf("%s %s", serviceName, msg)
	return New(code, formattedMsg, httpStatus, cause)
}
