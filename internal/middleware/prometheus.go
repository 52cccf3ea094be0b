package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/notes-app/internal/metrics"
)

// Prometheus records request duration and count labelled by route pattern.
func Prometheus() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if c.Request.URL.Path == "/metrics" {
			return
		}
		metrics.RecordRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start).Seconds())
	}
}
