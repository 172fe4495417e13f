package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/huynhanx03/batchcollector/pkg/common/apperr"
	"github.com/huynhanx03/batchcollector/pkg/common/http/request"
	"github.com/huynhanx03/batchcollector/pkg/common/http/response"
)

// HandlerFunc is the generic function signature
type HandlerFunc[T any, R any] func(context.Context, *T) (R, error)

// NoBodyFunc handles requests without a body
type NoBodyFunc[R any] func(context.Context) (R, error)

// Wrap converts a generic handler to a Gin handler
func Wrap[T any, R any](h HandlerFunc[T, R], successCode int) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := request.ParseRequest[T](c)
		if !ok {
			return
		}

		res, err := h(c.Request.Context(), req)
		if err != nil {
			writeError(c, err)
			return
		}

		response.SuccessResponse(c, successCode, res)
	}
}

// WrapNoBody converts a handler without request body to a Gin handler
func WrapNoBody[R any](h NoBodyFunc[R], successCode int) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := h(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}

		response.SuccessResponse(c, successCode, res)
	}
}

func writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		response.ErrorResponseWithStatus(c, appErr.HTTPStatus, appErr.Code, appErr.Message, nil)
		return
	}
	response.ErrorResponse(c, response.CodeInternalServer, nil)
}
