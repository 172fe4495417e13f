package request

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/huynhanx03/batchcollector/pkg/common/http/response"
	"github.com/huynhanx03/batchcollector/pkg/common/http/validation"
)

// ParseRequest binds the JSON body into T and validates it. On failure the
// error response is written and false is returned.
func ParseRequest[T any](c *gin.Context) (*T, bool) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		if errors.Is(err, io.EOF) {
			response.ErrorResponse(c, response.CodeParamInvalid, "request body is empty")
			return nil, false
		}
		response.ErrorResponse(c, response.CodeParamInvalid, response.ToErrorResponse(err))
		return nil, false
	}

	if ok, fields := validation.IsRequestValid(req); !ok {
		response.ErrorResponse(c, response.CodeValidationFailed, fields)
		return nil, false
	}

	return &req, true
}
