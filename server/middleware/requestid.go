package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kbukum/identity-backend/logger"
)

// Request id headers. The correlation header is honoured on the way in only.
const (
	HeaderRequestID     = "X-Request-Id"
	HeaderCorrelationID = "X-Correlation-Id"

	requestIDKey = "request_id"
)

// RequestID reuses a non-blank X-Request-Id, else X-Correlation-Id, else a
// new UUID. The id is stored in the Gin context and the request context and
// echoed in the X-Request-Id response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		setRequestID(c, incomingRequestID(c))
		c.Next()
	}
}

// GetRequestID returns the request id assigned by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// EnsureRequestID returns the request id, assigning one first when the
// RequestID middleware has not run.
func EnsureRequestID(c *gin.Context) string {
	if id := GetRequestID(c); id != "" {
		return id
	}
	id := incomingRequestID(c)
	setRequestID(c, id)
	return id
}

func incomingRequestID(c *gin.Context) string {
	for _, h := range []string{HeaderRequestID, HeaderCorrelationID} {
		if id := c.GetHeader(h); strings.TrimSpace(id) != "" {
			return id
		}
	}
	return uuid.New().String()
}

func setRequestID(c *gin.Context, id string) {
	c.Set(requestIDKey, id)
	c.Request = c.Request.WithContext(logger.ContextWithRequestID(c.Request.Context(), id))
	c.Header(HeaderRequestID, id)
}
