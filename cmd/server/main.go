package main

import (
	"context"
	"log"
	"time"

	"github.com/clipshelf/backend/internal/repositories"
	"github.com/clipshelf/backend/internal/router"
	"github.com/clipshelf/backend/pkg/config"
	"github.com/clipshelf/backend/pkg/firebase"
	"github.com/clipshelf/backend/pkg/logger"
	"github.com/clipshelf/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	fbauth "firebase.google.com/go/v4/auth"
)

func main() {
	// Load configuration
	cfg := config.Load()
	appLog := logger.New(cfg.Env)

	// Initialize database connections
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize Firebase when credentials are configured; JWT auth works
	// without it.
	var firebaseAuthClient *fbauth.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		firebaseAuthClient = firebaseApp.AuthClient
	} else {
		appLog.Info().Msg("firebase credentials not configured, firebase-login disabled")
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, firebaseAuthClient, appLog)

	// Validator
	e.Validator = validators.NewValidator()

	// Retention job for activity and notification records
	if cfg.RetentionDays > 0 {
		go runRetention(db, cfg.RetentionDays, appLog)
	}

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

// runRetention purges activity and notification rows past the retention
// window once a day. Purging is idempotent; a missed run only delays
// cleanup.
func runRetention(db *config.DB, days int, appLog zerolog.Logger) {
	activityRepo := repositories.NewPostgresActivityRepository(db.Postgres)
	notificationRepo := repositories.NewPostgresNotificationRepository(db.Postgres)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		cutoff := time.Now().AddDate(0, 0, -days)
		if n, err := activityRepo.DeleteOlderThan(cutoff); err != nil {
			appLog.Error().Err(err).Msg("activity retention purge failed")
		} else if n > 0 {
			appLog.Info().Int64("purged", n).Msg("activity retention purge complete")
		}
		if n, err := notificationRepo.DeleteOlderThan(cutoff); err != nil {
			appLog.Error().Err(err).Msg("notification retention purge failed")
		} else if n > 0 {
			appLog.Info().Int64("purged", n).Msg("notification retention purge complete")
		}
		<-ticker.C
	}
}
