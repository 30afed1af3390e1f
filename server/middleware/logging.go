package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/identity-backend/logger"
)

const slowRequestThreshold = 500 * time.Millisecond

// RequestLogger returns a Gin middleware that logs every request with method,
// path, status code and duration. Health checks are skipped.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return func(c *gin.Context) {
		if isHealthEndpoint(c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		fields := logger.Fields(
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			logger.FieldStatus, status,
			logger.FieldDuration, latency.Milliseconds(),
			"client", c.ClientIP(),
		)
		if latency > slowRequestThreshold {
			fields["slow"] = true
		}
		logByStatus(log.WithContext(c.Request.Context()), fields, status)
	}
}

func isHealthEndpoint(path string) bool {
	return path == "/health"
}

// logByStatus logs request fields at the appropriate level based on HTTP status code.
func logByStatus(log *logger.Logger, fields map[string]interface{}, status int) {
	switch {
	case status >= 500:
		log.Error("request completed", fields)
	case status >= 400:
		log.Warn("request completed", fields)
	default:
		log.Info("request completed", fields)
	}
}
