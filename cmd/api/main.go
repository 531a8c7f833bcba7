package main

import (
	"log"

	"github.com/fixtrack/fixtrack/internal/api/middleware"
	"github.com/fixtrack/fixtrack/internal/api/routes"
	"github.com/fixtrack/fixtrack/internal/config"
	"github.com/fixtrack/fixtrack/internal/config/db"
	"github.com/fixtrack/fixtrack/internal/domain/admin"
	"github.com/fixtrack/fixtrack/internal/domain/assignment"
	"github.com/fixtrack/fixtrack/internal/domain/audit"
	"github.com/fixtrack/fixtrack/internal/domain/feedback"
	"github.com/fixtrack/fixtrack/internal/domain/issue"
	"github.com/fixtrack/fixtrack/internal/domain/notification"
	"github.com/fixtrack/fixtrack/internal/domain/user"
	"github.com/fixtrack/fixtrack/pkg/storage"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration from environment variables and .env file
	config.LoadConfig()

	// Initialize JWT signing key
	middleware.Init()

	// Initialize database connection
	db.Init()

	// Auto migrate database schemas
	if err := db.DB.AutoMigrate(
		&user.Role{},
		&user.User{},
		&issue.Category{},
		&issue.Issue{},
		&issue.Image{},
		&assignment.Assignment{},
		&assignment.Image{},
		&assignment.Document{},
		&notification.Notification{},
		&notification.AssignmentNotification{},
		&feedback.Comment{},
		&feedback.Rating{},
		&feedback.Survey{},
		&admin.Note{},
		&admin.RoleRequest{},
		&admin.SystemSettings{},
		&audit.AuditLog{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Seed baseline roles and issue categories
	if err := db.Seed(db.DB); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	// Initialize object storage for issue and assignment media
	store, err := storage.NewMinioStore(storage.MinioConfig{
		Endpoint:   config.MinioEndpoint,
		AccessKey:  config.MinioAccessKey,
		SecretKey:  config.MinioSecretKey,
		UseSSL:     config.MinioUseSSL,
		Bucket:     config.MinioBucket,
		PublicBase: config.MinioPublicURL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	router.Use(middleware.CORSMiddleware())

	routes.RegisterRoutes(router, db.DB, store)

	port := ":" + config.ServerPort
	log.Printf("Starting API server on %s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
}
