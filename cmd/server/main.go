// cmd/server/main.go
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
	"github.com/sirupsen/logrus"

	"github.com/bazarco/backend/internal/cache"
	"github.com/bazarco/backend/internal/config"
	"github.com/bazarco/backend/internal/database"
	"github.com/bazarco/backend/internal/i18n"
	"github.com/bazarco/backend/internal/repositories"
	"github.com/bazarco/backend/internal/router"
	"github.com/bazarco/backend/internal/scheduler"
	"github.com/bazarco/backend/internal/search"
	"github.com/bazarco/backend/internal/services"
	"github.com/bazarco/backend/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	setupLogging(cfg)

	// Initialize i18n
	if err := i18n.Initialize(); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize i18n")
	}

	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize database
	db, err := database.Initialize(cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize database")
	}
	defer database.Close(db)

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		logrus.WithError(err).Fatal("Failed to run migrations")
	}

	// Outbound clients
	redisClient := cache.NewRedisClient(cfg.Redis)
	if redisClient != nil {
		defer redisClient.Close()
	}

	storageService, err := services.NewStorageService(cfg.AWS)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize image storage")
	}
	mailer := services.NewNotificationService(cfg.Email)

	clients := router.Clients{
		Mirror:     search.NewAlgoliaMirror(cfg.Algolia),
		FacetCache: cache.New(redisClient, cfg.Redis.FacetTTL),
		Images:     storageService,
		Shopify:    services.NewShopifyService(cfg.Shopify),
		Mailer:     mailer,
	}

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r := router.Initialize(db, cfg, clients)

	// Reminder campaign
	reminders := services.NewReminderService(repositories.NewInvitationRepository(db), mailer)
	reminderScheduler := scheduler.NewReminderScheduler(cfg.Reminder, reminders)
	reminderScheduler.Start(context.Background())

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logrus.WithField("port", cfg.Server.Port).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	reminderScheduler.Stop()

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
	}

	logrus.Info("Server exited")
}

func setupLogging(cfg *config.Config) {
	if cfg.IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
