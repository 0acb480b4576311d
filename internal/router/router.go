package router

import (
	"database/sql"

	"storecrm_backend/internal/handlers"
	"storecrm_backend/internal/middleware"
	"storecrm_backend/internal/repositories"
	"storecrm_backend/internal/services"
	"storecrm_backend/pkg/fonnte"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	userRepo := repositories.NewUserRepository(db)
	storeRepo := repositories.NewStoreRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	storeCustomerRepo := repositories.NewStoreCustomerRepository(db)
	reservationRepo := repositories.NewReservationRepository(db)
	revenueTypeRepo := repositories.NewRevenueTypeRepository(db)
	revenueRepo := repositories.NewRevenueRepository(db)
	targetRepo := repositories.NewTargetRepository(db)
	settingRepo := repositories.NewSettingRepository(db)

	// Initialize Services
	whatsappService := services.NewWhatsAppService(
		fonnte.NewClient(), settingRepo, customerRepo, storeRepo, reservationRepo, revenueRepo, targetRepo)
	authService := services.NewAuthService(userRepo, db)
	userService := services.NewUserService(userRepo, db)
	storeService := services.NewStoreService(storeRepo, storeCustomerRepo, db)
	customerService := services.NewCustomerService(customerRepo, storeCustomerRepo, db)
	reservationService := services.NewReservationService(reservationRepo, customerRepo, storeRepo, whatsappService, db)
	revenueTypeService := services.NewRevenueTypeService(revenueTypeRepo, db)
	revenueService := services.NewRevenueService(revenueRepo, revenueTypeRepo, storeRepo, targetRepo, whatsappService, db)
	targetService := services.NewTargetService(targetRepo, storeRepo, revenueRepo, db)
	reportService := services.NewReportService(customerRepo, storeRepo, reservationRepo, revenueRepo, targetRepo)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	storeHandler := handlers.NewStoreHandler(storeService, targetService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	reservationHandler := handlers.NewReservationHandler(reservationService)
	revenueTypeHandler := handlers.NewRevenueTypeHandler(revenueTypeService)
	revenueHandler := handlers.NewRevenueHandler(revenueService)
	settingHandler := handlers.NewSettingHandler(settingRepo, db)
	reportHandler := handlers.NewReportHandler(reportService)

	apiV1 := engine.Group("/api/v1")

	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)
		SetupUserRoutes(authenticated, userHandler)
		SetupStoreRoutes(authenticated, storeHandler)
		SetupCustomerRoutes(authenticated, customerHandler)
		SetupReservationRoutes(authenticated, reservationHandler)
		SetupRevenueTypeRoutes(authenticated, revenueTypeHandler)
		SetupRevenueRoutes(authenticated, revenueHandler)
		SetupSettingRoutes(authenticated, settingHandler)
		SetupReportRoutes(authenticated, reportHandler)
	}
}

// SetupPublicAuthRoutes registers the routes reachable without a token.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/register", authHandler.Register)
	group.POST("/login", authHandler.Login)
	group.POST("/refresh-token", authHandler.Refresh)
}

// SetupAuthenticatedAuthRoutes registers the auth routes that require a valid
// access token.
func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.GET("/me", authHandler.GetProfile)
	group.POST("/change-password", authHandler.ChangePassword)
}
