package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/guildworks/guildhall/internal/api"
	"github.com/guildworks/guildhall/internal/cache"
	"github.com/guildworks/guildhall/internal/db"
	"github.com/guildworks/guildhall/internal/refresher"
	"github.com/guildworks/guildhall/internal/trending"
	"github.com/guildworks/guildhall/pkg/config"
	"github.com/guildworks/guildhall/pkg/logging"
	"github.com/guildworks/guildhall/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.GetLogger().Sync()

	logger := logging.GetLogger()
	logger.Info("Starting Guildhall API Server")

	// Initialize telemetry
	telemetryShutdown, err := telemetry.Init(&cfg.Telemetry)
	if err != nil {
		logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer telemetryShutdown()

	// Scoring weights are validated once here; scoring never fails later
	scorer, err := trending.NewScorer(trending.WeightsFrom(&cfg.Trending))
	if err != nil {
		logger.Fatal("Failed to build trending scorer", zap.Error(err))
	}

	// Connect to database
	database, err := db.New(&cfg.Database, cfg.Logging.Level)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	// Connect to Redis
	redisCache, err := cache.New(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisCache.Close()

	// Create Gin router
	if cfg.Logging.Level == "DEBUG" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	apiRouter := api.NewRouter(cfg, database, redisCache, scorer)
	apiRouter.SetupRoutes(engine)

	// Start stored-score refresher if enabled
	refresherCtx, stopRefresher := context.WithCancel(context.Background())
	defer stopRefresher()
	if cfg.Refresher.Enabled {
		worker := refresher.New(&cfg.Refresher, database, scorer)
		go func() {
			if err := worker.Run(refresherCtx); err != nil && err != context.Canceled {
				logger.Error("Refresher stopped", zap.Error(err))
			}
		}()
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: engine,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Server starting", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	stopRefresher()

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
