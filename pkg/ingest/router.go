package ingest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/huynhanx03/batchcollector/pkg/common/http/handler"
	"github.com/huynhanx03/batchcollector/pkg/common/http/response"
)

// NewRouter registers the ingest routes on a new gin engine.
func NewRouter(svc *Service, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Logger(logger), Recovery(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1")
	{
		v1.POST("/items", handler.Wrap(svc.PushItems, response.CodeAccepted))
		v1.POST("/batches/current/flush", handler.WrapNoBody(svc.FlushCurrent, response.CodeAccepted))
		v1.POST("/batches/flush", handler.WrapNoBody(svc.FlushAll, response.CodeAccepted))
		v1.GET("/status", handler.WrapNoBody(svc.Status, response.CodeSuccess))
	}

	return r
}
