package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/asadlib11/arbolitics-dashboard/internal/analytics"
	"github.com/asadlib11/arbolitics-dashboard/internal/infrastructure/config"
	"github.com/asadlib11/arbolitics-dashboard/internal/infrastructure/upstream"
	httpRouter "github.com/asadlib11/arbolitics-dashboard/internal/interfaces/http"
	"github.com/asadlib11/arbolitics-dashboard/internal/session"
	"github.com/asadlib11/arbolitics-dashboard/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the Arbolitics dashboard HTTP server with specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	ginMode := mapEnvToGinMode(env)

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg.Server.Mode = ginMode

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("starting server",
		"environment", env,
		"upstream", cfg.Upstream.BaseURL,
		"session_backend", cfg.Session.Backend)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard

	store, cleanup, err := buildSessionStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to build session store: %w", err)
	}
	defer cleanup()

	log := logger.NewLogger()
	sessionManager := session.NewManager(store, log.Named("session"))

	bootCtx, bootCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := sessionManager.Restore(bootCtx); err != nil {
		logger.Warn("session restore at startup failed", "error", err)
	}
	bootCancel()

	// Resync loop: converges this process with any other session writer.
	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	go func() {
		if err := sessionManager.Run(watchCtx); err != nil && err != context.Canceled {
			logger.Error("session watch loop exited", "error", err)
		}
	}()

	upstreamClient := upstream.NewClient(
		cfg.Upstream.BaseURL,
		time.Duration(cfg.Upstream.TimeoutSeconds)*time.Second,
		log.Named("upstream"),
	)
	analyticsService := analytics.NewService(
		upstreamClient,
		cfg.Analytics.LocationID,
		cfg.Analytics.DeviceIDs,
		log.Named("analytics"),
	)

	router := httpRouter.NewRouter(cfg, upstreamClient, analyticsService, sessionManager, log)
	router.SetupRoutes()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}

	logger.Info("server exited gracefully")
	return nil
}

// buildSessionStore selects the configured session backend.
func buildSessionStore(cfg *config.Config) (session.Store, func(), error) {
	switch cfg.Session.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Session.Redis.GetAddr(),
			Password: cfg.Session.Redis.Password,
			DB:       cfg.Session.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping failed: %w", err)
		}
		return session.NewRedisStore(client), func() { _ = client.Close() }, nil
	case "memory", "":
		return session.NewMemoryStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
