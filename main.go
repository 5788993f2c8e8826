package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"wenlock-health-server/internal/config"
	"wenlock-health-server/internal/logger"
	"wenlock-health-server/internal/middleware"
	"wenlock-health-server/internal/realtime"
	"wenlock-health-server/internal/routes"
	"wenlock-health-server/internal/services"
	"wenlock-health-server/internal/store"
)

const serviceName = "wenlock-health-server"

func main() {
	// A .env file is optional; the environment wins either way
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	zapLogger, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, serviceName)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer zapLogger.Sync()

	// In-memory store; everything is lost on restart
	dataStore := store.NewMemoryStore()
	if cfg.SeedData {
		if err := store.Seed(dataStore); err != nil {
			zapLogger.Fatal("Failed to seed data store", zap.Error(err))
		}
		zapLogger.Info("Data store seeded")
	}

	dashboard := services.NewDashboard(dataStore)
	hub := realtime.NewHub(dashboard, realtime.Config{
		HeartbeatInterval: cfg.Realtime.HeartbeatInterval,
		SyncInterval:      cfg.Realtime.SyncInterval,
		SnapshotLogLimit:  cfg.Realtime.SnapshotLogLimit,
		AllowedOrigin:     cfg.Origin,
	}, zapLogger)
	svc := services.New(dataStore, hub, zapLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hubDone := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(hubDone)
	}()

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RequestLogger(zapLogger), middleware.Recovery(zapLogger))

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	routes.SetupRoutes(router, svc, hub, zapLogger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("Server running", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Server shutting down")

	// Hijacked websocket connections are not tracked by Shutdown; the hub
	// closes them.
	cancel()
	<-hubDone

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Error during server shutdown", zap.Error(err))
	}

	zapLogger.Info("Server stopped")
}
