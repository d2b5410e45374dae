package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/asadlib11/arbolitics-dashboard/internal/interfaces/http/handlers"
	"github.com/asadlib11/arbolitics-dashboard/internal/interfaces/http/middleware"
)

// SetupDashboardRoutes configures the auth-gated dashboard views.
func SetupDashboardRoutes(engine *gin.Engine, dashboardHandler *handlers.DashboardHandler) {
	dashboard := engine.Group("/api/dashboard", middleware.RequireAuth())
	{
		dashboard.GET("/overview", dashboardHandler.Overview)
		dashboard.GET("/analytics", dashboardHandler.Analytics)
	}
}
