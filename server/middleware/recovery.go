package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/identity-backend/envelope"
	"github.com/kbukum/identity-backend/errors"
	"github.com/kbukum/identity-backend/logger"
)

// Recovery returns a Gin middleware that recovers from panics, logs the stack
// and answers with an INTERNAL_ERROR envelope.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.WithContext(c.Request.Context()).Error("panic recovered", logger.Fields(
					logger.FieldError, fmt.Sprintf("%v", rec),
					"stack", string(debug.Stack()),
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
					"client_ip", c.ClientIP(),
				))
				status, body := envelope.FromError(EnsureRequestID(c), errors.InternalMessage("Internal server error"))
				c.AbortWithStatusJSON(status, body)
			}
		}()
		c.Next()
	}
}
