package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/asadlib11/arbolitics-dashboard/internal/interfaces/http/handlers"
)

// SetupDataRoutes configures the thin data proxy route.
func SetupDataRoutes(engine *gin.Engine, dataHandler *handlers.DataHandler) {
	engine.GET("/api/arbolitic-data", dataHandler.GetArboliticData)
}
