package middleware

import (
	"strconv"
	"time"

	"reservas-backend/internal/observability/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latencies. The route template
// (c.FullPath) is used instead of the raw URL to keep label cardinality
// bounded.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.ObserveHTTPRequest(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
