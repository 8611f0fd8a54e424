package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/classifieds-backend/internal/metrics"
)

// Metrics учитывает запросы по шаблону маршрута.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
