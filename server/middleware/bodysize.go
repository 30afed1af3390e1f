package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/identity-backend/util"
)

const defaultMaxBodySize = 1 << 20 // 1MB

// BodySizeLimit returns middleware that restricts the request body to the given
// size string (e.g. "1MB", "512KB"). Reads past the limit fail with
// *http.MaxBytesError.
func BodySizeLimit(maxSize string) gin.HandlerFunc {
	size := util.ParseSizeOr(maxSize, defaultMaxBodySize)
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, size)
		}
		c.Next()
	}
}
