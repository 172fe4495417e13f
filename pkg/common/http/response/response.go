package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Application codes
const (
	CodeSuccess          = 2000
	CodeAccepted         = 2020
	CodeParamInvalid     = 4000
	CodeValidationFailed = 4220
	CodeInternalServer   = 5000
	CodeUnavailable      = 5030
)

var httpStatus = map[int]int{
	CodeSuccess:          http.StatusOK,
	CodeAccepted:         http.StatusAccepted,
	CodeParamInvalid:     http.StatusBadRequest,
	CodeValidationFailed: http.StatusUnprocessableEntity,
	CodeInternalServer:   http.StatusInternalServerError,
	CodeUnavailable:      http.StatusServiceUnavailable,
}

var messages = map[int]string{
	CodeSuccess:          "success",
	CodeAccepted:         "accepted",
	CodeParamInvalid:     "invalid request",
	CodeValidationFailed: "validation failed",
	CodeInternalServer:   "internal server error",
	CodeUnavailable:      "service unavailable",
}

// Response is the JSON envelope of every reply.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   any    `json:"error,omitempty"`
}

// FieldError describes one failed validation rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// StatusOf returns the HTTP status of an application code.
func StatusOf(code int) int {
	if s, ok := httpStatus[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// SuccessResponse writes data with the status of code.
func SuccessResponse(c *gin.Context, code int, data any) {
	c.JSON(StatusOf(code), Response{
		Code:    code,
		Message: messages[code],
		Data:    data,
	})
}

// ErrorResponse aborts the request with the status of code.
func ErrorResponse(c *gin.Context, code int, detail any) {
	ErrorResponseWithStatus(c, StatusOf(code), code, messages[code], detail)
}

// ErrorResponseWithStatus aborts the request with an explicit status and message.
func ErrorResponseWithStatus(c *gin.Context, status, code int, message string, detail any) {
	c.AbortWithStatusJSON(status, Response{
		Code:    code,
		Message: message,
		Error:   detail,
	})
}

// ToErrorResponse converts err into a JSON friendly detail. Validation
// errors become a list of FieldError.
func ToErrorResponse(err any) any {
	switch e := err.(type) {
	case nil:
		return nil
	case []FieldError:
		return e
	case error:
		var ve validator.ValidationErrors
		if errors.As(e, &ve) {
			return ToFieldErrors(ve)
		}
		return e.Error()
	default:
		return e
	}
}

// ToFieldErrors flattens validator errors.
func ToFieldErrors(ve validator.ValidationErrors) []FieldError {
	out := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		out = append(out, FieldError{
			Field: fe.Namespace(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}
