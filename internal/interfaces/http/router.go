// Package http wires the Gin engine: middleware chain, proxy routes and
// dashboard views.
package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/asadlib11/arbolitics-dashboard/internal/analytics"
	"github.com/asadlib11/arbolitics-dashboard/internal/infrastructure/config"
	"github.com/asadlib11/arbolitics-dashboard/internal/infrastructure/upstream"
	"github.com/asadlib11/arbolitics-dashboard/internal/interfaces/http/handlers"
	"github.com/asadlib11/arbolitics-dashboard/internal/interfaces/http/middleware"
	"github.com/asadlib11/arbolitics-dashboard/internal/interfaces/http/routes"
	"github.com/asadlib11/arbolitics-dashboard/internal/session"
	"github.com/asadlib11/arbolitics-dashboard/internal/shared/logger"
)

// Router holds the configured engine and its handlers.
type Router struct {
	engine           *gin.Engine
	authHandler      *handlers.AuthHandler
	dataHandler      *handlers.DataHandler
	dashboardHandler *handlers.DashboardHandler
	sessionManager   *session.Manager
	cfg              *config.Config
	logger           logger.Interface
}

func NewRouter(
	cfg *config.Config,
	upstreamClient *upstream.Client,
	analyticsService *analytics.Service,
	sessionManager *session.Manager,
	log logger.Interface,
) *Router {
	return &Router{
		engine:           gin.New(),
		authHandler:      handlers.NewAuthHandler(upstreamClient, log.Named("auth"), cfg.Session.Cookie),
		dataHandler:      handlers.NewDataHandler(upstreamClient, cfg.Analytics.LocationID, log.Named("data")),
		dashboardHandler: handlers.NewDashboardHandler(analyticsService, log.Named("dashboard")),
		sessionManager:   sessionManager,
		cfg:              cfg,
		logger:           log,
	}
}

// SetupRoutes installs the middleware chain and all route groups.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.Session(r.sessionManager))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.SetupAuthRoutes(r.engine, r.authHandler)
	routes.SetupDataRoutes(r.engine, r.dataHandler)
	routes.SetupDashboardRoutes(r.engine, r.dashboardHandler)
}

// GetEngine exposes the engine for the HTTP server.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
