package middleware

import (
	"time"

	"github.com/SscSPs/returns_management_app/internal/platform/metrics"
	"github.com/gin-gonic/gin"
)

// HTTPMetrics records request count and latency per route template.
func HTTPMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.RecordHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
