package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"fitchain/gymhub/internal/observability/metrics"
)

// Metrics records request counts and latencies per route. The templated route
// path is used as the label so /branches/:id does not explode cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		metrics.HTTPRequestDurationSeconds.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}
