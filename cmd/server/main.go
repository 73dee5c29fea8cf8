package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"ecoreport/internal/adapters/http/middleware"
	"ecoreport/internal/adapters/http/routes"
	"ecoreport/internal/adapters/media"
	"ecoreport/internal/adapters/persistence/models"
	"ecoreport/internal/adapters/persistence/repositories"
	"ecoreport/internal/config"
	"ecoreport/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "ecoreport/docs" // Swagger docs
)

// @title EcoReport API
// @version 1.0
// @description Civic complaint reporting and resolution tracking API

// @contact.name API Support
// @contact.email support@ecoreport.app

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// bodyLimit fits five 10MB attachments plus form fields
const bodyLimit = 60 << 20

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	mediaStore, err := media.NewStore(cfg.Media)
	if err != nil {
		log.Fatalf("❌ Failed to initialise media store: %v", err)
	}

	// Scheduled jobs: overdue report and refresh token cleanup
	complaintRepo := repositories.NewComplaintRepository(db)
	userRepo := repositories.NewUserRepository(db)
	dashboardService := services.NewDashboardService(complaintRepo, services.NewAuthorizationService(userRepo))
	cronService := services.NewCronService(dashboardService, repositories.NewRefreshTokenRepository(db), cfg.Cron)
	if err := cronService.Start(); err != nil {
		log.Fatalf("❌ Failed to start cron service: %v", err)
	}
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "EcoReport API v1.0",
		BodyLimit:    bodyLimit,
		ErrorHandler: middleware.CustomErrorHandler,
	})

	storage := middleware.LimiterStorage(cfg.Redis)

	// Setup middlewares
	middleware.Setup(app, cfg, storage)

	// Setup routes
	routes.Setup(app, db, cfg, routes.Dependencies{
		Media:          mediaStore,
		LimiterStorage: storage,
		CheckDB:        config.HealthCheck,
	})

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
