package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/identity-backend/envelope"
	"github.com/kbukum/identity-backend/server/middleware"
)

// RespondWithError writes err as a failure envelope. An *errors.AppError keeps
// its status, code and details; anything else becomes INTERNAL_ERROR/500.
func RespondWithError(c *gin.Context, err error) {
	requestID := middleware.EnsureRequestID(c)
	status, body := envelope.FromError(requestID, err)
	c.AbortWithStatusJSON(status, body)
}

// RespondOK sends a 200 success envelope wrapping data.
func RespondOK[T any](c *gin.Context, data T) {
	Respond(c, http.StatusOK, data)
}

// Respond sends a success envelope with the given status.
func Respond[T any](c *gin.Context, status int, data T) {
	requestID := middleware.EnsureRequestID(c)
	c.JSON(status, envelope.Success(requestID, data))
}
