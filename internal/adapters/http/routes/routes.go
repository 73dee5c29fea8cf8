package routes

import (
	"ecoreport/internal/adapters/http/handlers"
	"ecoreport/internal/adapters/http/middleware"
	"ecoreport/internal/adapters/persistence/repositories"
	"ecoreport/internal/config"
	"ecoreport/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Dependencies carries the collaborators built in main that routes cannot
// construct from the database alone
type Dependencies struct {
	Media          services.MediaStore
	LimiterStorage fiber.Storage
	CheckDB        func() error
}

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, deps Dependencies) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	complaintRepo := repositories.NewComplaintRepository(db)

	// Initialize services
	gate := services.NewAuthorizationService(userRepo)
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	complaintService := services.NewComplaintService(complaintRepo, userRepo, gate, deps.Media)
	dashboardService := services.NewDashboardService(complaintRepo, gate)

	// Initialize handlers
	h := &routeHandlers{
		health:    handlers.NewHealthHandler(cfg.AppMode, deps.CheckDB),
		auth:      handlers.NewAuthHandler(authService, cfg),
		complaint: handlers.NewComplaintHandler(complaintService),
		admin:     handlers.NewAdminHandler(complaintService),
		dashboard: handlers.NewDashboardHandler(dashboardService),
	}

	// Health check & root routes
	app.Get("/", h.health.Root)
	app.Get("/health", h.health.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Locally stored media
	if cfg.Media.Driver == "local" {
		app.Static(cfg.Media.PublicURL, cfg.Media.UploadDir, fiber.Static{
			ByteRange: true,
			MaxAge:    86400,
		})
	}

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, h, authService, deps.LimiterStorage)
}

type routeHandlers struct {
	health    *handlers.HealthHandler
	auth      *handlers.AuthHandler
	complaint *handlers.ComplaintHandler
	admin     *handlers.AdminHandler
	dashboard *handlers.DashboardHandler
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(router fiber.Router, h *routeHandlers, verifier services.CredentialVerifier, storage fiber.Storage) {
	auth := middleware.AuthMiddleware(verifier)

	// API Info
	router.Get("/", h.health.APIInfo)

	// Auth routes (public)
	setupAuthRoutes(router.Group("/auth"), h.auth, auth, storage)

	// Citizen complaint routes
	complaintRoutes := router.Group("/complaints", auth, middleware.NoCacheHeaders())
	setupComplaintRoutes(complaintRoutes, h.complaint)

	// Staff routes; role checks happen per operation in the services
	adminRoutes := router.Group("/admin", auth, middleware.NoCacheHeaders())
	setupAdminRoutes(adminRoutes, h.admin, h.dashboard)
}

func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, auth fiber.Handler, storage fiber.Storage) {
	router.Post("/register", middleware.AuthRateLimiter(storage), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(storage), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected auth routes
	router.Get("/me", auth, handler.Me)
	router.Post("/logout-all", auth, handler.LogoutAll)
}

func setupComplaintRoutes(router fiber.Router, handler *handlers.ComplaintHandler) {
	router.Post("/", handler.Submit)
	router.Get("/my", handler.MyComplaints)
	router.Get("/my/:complaintId", handler.MyComplaint)
	router.Post("/:complaintId/feedback", handler.SubmitFeedback)
	router.Post("/:complaintId/mandatory-feedback", handler.SubmitMandatoryFeedback)
}

func setupAdminRoutes(router fiber.Router, handler *handlers.AdminHandler, dashboard *handlers.DashboardHandler) {
	router.Get("/dashboard", dashboard.GetDashboard)

	router.Get("/complaints", handler.ListComplaints)
	router.Get("/complaints/:complaintId", handler.GetComplaint)
	router.Put("/complaints/:complaintId/assign", handler.Assign)
	router.Put("/complaints/:complaintId/status", handler.UpdateStatus)
}
