package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/asadlib11/arbolitics-dashboard/internal/interfaces/http/handlers"
)

// SetupAuthRoutes configures the login proxy and session routes.
func SetupAuthRoutes(engine *gin.Engine, authHandler *handlers.AuthHandler) {
	auth := engine.Group("/api/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/session", authHandler.Session)
	}
}
