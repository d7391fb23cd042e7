package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/clipshelf/backend/internal/events"
	"github.com/clipshelf/backend/internal/handlers"
	"github.com/clipshelf/backend/internal/middleware"
	"github.com/clipshelf/backend/internal/models"
	"github.com/clipshelf/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes configures all application routes and injects dependencies.
// firebaseAuthClient may be nil when Firebase is not configured.
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client, logger zerolog.Logger) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Collection{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
		&models.CollectionShare{},
		&models.Activity{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	collectionRepo := repositories.NewPostgresCollectionRepository(pgdb)
	videoRepo := repositories.NewMongoVideoRepository(mgClient.Database("clipshelf"))
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	shareRepo := repositories.NewPostgresShareRepository(pgdb)
	activityRepo := repositories.NewPostgresActivityRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	counters := repositories.NewStoreCounterUpdater(pgdb, videoRepo)

	// --- Fan-out engine ---
	resolver := events.NewStoreResolver(userRepo, collectionRepo, videoRepo, commentRepo)
	orchestrator := events.NewOrchestrator(activityRepo, notificationRepo, userRepo, resolver, logger)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo, followRepo)
	userHandler.RegisterProfileRoutes(api)
	api.GET("/users/search", userHandler.SearchUsers)

	// Collection routes
	collectionHandler := handlers.NewCollectionHandler(collectionRepo, shareRepo, orchestrator)
	collectionHandler.RegisterCollectionRoutes(api)

	// Video routes
	videoHandler := handlers.NewVideoHandler(videoRepo, collectionRepo, counters, orchestrator)
	videoHandler.RegisterVideoRoutes(api)

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, videoRepo, counters, orchestrator)
	commentHandler.RegisterCommentRoutes(api)

	// Like routes
	likeHandler := handlers.NewLikeHandler(likeRepo, collectionRepo, videoRepo, counters, orchestrator)
	likeHandler.RegisterLikeRoutes(api)

	// Follow routes
	followHandler := handlers.NewFollowHandler(followRepo, counters, orchestrator, userRepo)
	followHandler.RegisterFollowRoutes(api)

	// Feed routes
	feedHandler := handlers.NewFeedHandler(activityRepo, userRepo, followRepo)
	feedHandler.RegisterFeedRoutes(api)

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo)
	notificationHandler.RegisterNotificationRoutes(api)

	logger.Info().Msg("all routes configured")
}
