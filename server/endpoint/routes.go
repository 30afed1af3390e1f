package endpoint

import "github.com/gin-gonic/gin"

// Register mounts the identity API on r.
func Register(r gin.IRouter, svc Authenticator) {
	r.GET("/health", Health())
	r.POST("/auth/login", Login(svc))
	r.GET("/me", RequireUser(svc), Me())
}
