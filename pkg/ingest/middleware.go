package ingest

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/huynhanx03/batchcollector/pkg/common/http/response"
	"github.com/huynhanx03/batchcollector/pkg/constraints"
)

// RequestID propagates the caller's X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(constraints.HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(constraints.ContextKeyRequestID, id)
		c.Header(constraints.HeaderRequestID, id)
		c.Next()
	}
}

// Logger writes one entry per request.
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString(constraints.ContextKeyRequestID)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			logger.Error("request failed", fields...)
		case status >= 400:
			logger.Warn("request rejected", fields...)
		default:
			logger.Debug("request served", fields...)
		}
	}
}

// Recovery turns a handler panic into a 500 reply.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("handler panicked",
					zap.Any("panic", r),
					zap.String("request_id", c.GetString(constraints.ContextKeyRequestID)),
					zap.Stack("stack"),
				)
				response.ErrorResponse(c, response.CodeInternalServer, nil)
			}
		}()
		c.Next()
	}
}
