package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Vanohime/Management-Recommendations/internal/api"
	"github.com/Vanohime/Management-Recommendations/internal/api/handlers"
	"github.com/Vanohime/Management-Recommendations/internal/config"
	"github.com/Vanohime/Management-Recommendations/internal/database"
	"github.com/Vanohime/Management-Recommendations/internal/forecast"
	"github.com/Vanohime/Management-Recommendations/internal/logging"
	"github.com/Vanohime/Management-Recommendations/internal/services"
	"github.com/Vanohime/Management-Recommendations/internal/telemetry"
)

const version = "1.0.0"

func main() {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.NewLogger(cfg.LogLevel, cfg.Environment)

	ctx := context.Background()

	var telemetryShutdown func(context.Context) error
	if cfg.Telemetry.Enabled {
		telemetryShutdown, err = telemetry.Init(ctx)
		if err != nil {
			logger.WithError(err).Fatal("Failed to initialize telemetry")
		}
	}

	db, err := database.NewPostgresConnection(ctx, cfg.Database, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	var redis *database.RedisClient
	if cfg.Cache.Enabled {
		redis, err = database.NewRedisConnection(cfg.Redis, logger)
		if err != nil {
			logger.WithError(err).Warn("Redis unavailable, response caching disabled")
			redis = nil
		} else {
			defer redis.Close()
		}
	}

	forecaster := forecast.NewFromFile(cfg.Model.Path, logger)

	repository := database.NewStoreRepository(db.Pool)
	service := services.NewRecommendationService(cfg, repository, redis, forecaster, logger)
	if err := service.Initialize(ctx); err != nil {
		logger.WithError(err).Fatal("Failed to build historical index")
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	recommendationHandler := handlers.NewRecommendationHandler(service, logger)
	healthHandler := handlers.NewHealthHandler(db, redis, service, version)
	api.SetupRoutes(router, recommendationHandler, healthHandler, cfg.Telemetry.Enabled)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}
	if telemetryShutdown != nil {
		if err := telemetryShutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("Telemetry shutdown failed")
		}
	}

	logger.Info("Server exited")
}
