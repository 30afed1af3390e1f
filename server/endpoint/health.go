package endpoint

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/identity-backend/server"
	"github.com/kbukum/identity-backend/version"
)

const timestampLayout = "2006-01-02T15:04:05.000Z"

// HealthResponse is the payload of GET /health.
type HealthResponse struct {
	Status    string        `json:"status"`
	Version   string        `json:"version"`
	Timestamp string        `json:"timestamp"`
	Build     version.Build `json:"build"`
}

// Health returns a handler reporting liveness and build metadata.
func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		server.RespondOK(c, HealthResponse{
			Status:    "ok",
			Version:   version.Version,
			Timestamp: time.Now().UTC().Format(timestampLayout),
			Build:     version.GetBuild(),
		})
	}
}
