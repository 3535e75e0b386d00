package router

import (
	"log"

	"github.com/anonto42/socialhub/backend/internal/handlers"
	custommiddleware "github.com/anonto42/socialhub/backend/internal/middleware"
	"github.com/anonto42/socialhub/backend/internal/models"
	"github.com/anonto42/socialhub/backend/internal/repositories"
	"github.com/anonto42/socialhub/backend/internal/services"
	"github.com/anonto42/socialhub/backend/pkg/config"
	"github.com/labstack/echo/v4"
)

// SetupRoutes wires repositories, services and handlers onto the echo instance
func SetupRoutes(e *echo.Echo, db *config.DB, cfg *config.Config) {
	// Migrate schemas
	err := db.Postgres.AutoMigrate(
		&models.User{},
		&models.AdminProfile{},
		&models.EndUserProfile{},
		&models.FriendRequest{},
		&models.Friendship{},
		&models.Conversation{},
		&models.Message{},
		&models.Post{},
		&models.Comment{},
		&models.Reaction{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate database: %v", err)
	}

	// Repositories
	userRepo := repositories.NewPostgresUserRepository(db.Postgres)
	friendRepo := repositories.NewPostgresFriendRepository(db.Postgres)
	convRepo := repositories.NewPostgresConversationRepository(db.Postgres)
	msgRepo := repositories.NewPostgresMessageRepository(db.Postgres)
	postRepo := repositories.NewPostgresPostRepository(db.Postgres)
	commentRepo := repositories.NewPostgresCommentRepository(db.Postgres)
	reactionRepo := repositories.NewPostgresReactionRepository(db.Postgres)
	notificationRepo := repositories.NewPostgresNotificationRepository(db.Postgres)

	// Services
	notifier := services.NewNotificationService(notificationRepo)
	friendshipService := services.NewFriendshipService(userRepo, friendRepo, notifier)
	conversationService := services.NewConversationService(convRepo, msgRepo, userRepo, notifier)
	contentService := services.NewContentService(postRepo, commentRepo, reactionRepo, friendRepo, userRepo, notifier)

	// Handlers
	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	userHandler := handlers.NewUserHandler(userRepo)
	friendshipHandler := handlers.NewFriendshipHandler(friendshipService)
	conversationHandler := handlers.NewConversationHandler(conversationService)
	postHandler := handlers.NewPostHandler(contentService)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo)

	e.GET("/health", handlers.HealthCheck)

	authGroup := e.Group("/api/v1/auth")
	authHandler.RegisterAuthRoutes(authGroup)

	api := e.Group("/api/v1")
	api.Use(custommiddleware.JWTAuthMiddleware(cfg.JWTSecret))
	userHandler.RegisterUserRoutes(api)
	friendshipHandler.RegisterFriendshipRoutes(api)
	conversationHandler.RegisterConversationRoutes(api)
	postHandler.RegisterPostRoutes(api)
	notificationHandler.RegisterNotificationRoutes(api)
}
