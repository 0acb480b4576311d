package router

import (
	"storecrm_backend/internal/handlers"
	"storecrm_backend/internal/middleware"
	"storecrm_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// Write access covers creating and editing records. Deleting is reserved for
// the two senior roles, and user administration for Admin alone.
var (
	writerRoles  = []string{models.LevelAdmin, models.LevelOperator, models.LevelContributor}
	deleterRoles = []string{models.LevelAdmin, models.LevelOperator}
)

// SetupUserRoutes sets up the user administration routes. Admin only.
func SetupUserRoutes(authenticatedGroup *gin.RouterGroup, userHandler *handlers.UserHandler) {
	userRoutes := authenticatedGroup.Group("/users")
	userRoutes.Use(middleware.RoleAuthMiddleware(models.LevelAdmin))
	{
		userRoutes.POST("", userHandler.CreateUser)
		userRoutes.GET("", userHandler.GetUsers)
		userRoutes.GET("/:id", userHandler.GetUserByID)
		userRoutes.PUT("/:id", userHandler.UpdateUser)
		userRoutes.DELETE("/:id", userHandler.DeleteUser)
	}
}

// SetupStoreRoutes sets up the store routes, including per-store customer
// links and monthly revenue targets.
func SetupStoreRoutes(authenticatedGroup *gin.RouterGroup, storeHandler *handlers.StoreHandler) {
	storeRoutes := authenticatedGroup.Group("/stores")
	storeRoutes.Use(middleware.RoleAuthMiddleware(writerRoles...))
	{
		storeRoutes.POST("", storeHandler.CreateStore)
		storeRoutes.GET("", storeHandler.GetStores)
		storeRoutes.GET("/:id", storeHandler.GetStoreByID)
		storeRoutes.PUT("/:id", storeHandler.UpdateStore)

		storeRoutes.GET("/:id/customers", storeHandler.GetStoreCustomers)
		storeRoutes.POST("/:id/customers/:customer_id", storeHandler.AttachCustomer)
		storeRoutes.DELETE("/:id/customers/:customer_id", storeHandler.DetachCustomer)

		storeRoutes.PUT("/:id/targets", storeHandler.SetTarget)
		storeRoutes.GET("/:id/targets", storeHandler.GetTargets)
		storeRoutes.GET("/:id/achievement", storeHandler.GetTargetAchievement)
	}

	authenticatedGroup.DELETE("/stores/:id", middleware.RoleAuthMiddleware(deleterRoles...), storeHandler.DeleteStore)
	authenticatedGroup.DELETE("/stores/:id/targets/:target_id", middleware.RoleAuthMiddleware(deleterRoles...), storeHandler.DeleteTarget)
}

// SetupCustomerRoutes sets up the customer routes. Search is open to any
// authenticated user so reservation forms can autocomplete.
func SetupCustomerRoutes(authenticatedGroup *gin.RouterGroup, customerHandler *handlers.CustomerHandler) {
	authenticatedGroup.GET("/customers/search", customerHandler.SearchCustomers)

	customerRoutes := authenticatedGroup.Group("/customers")
	customerRoutes.Use(middleware.RoleAuthMiddleware(writerRoles...))
	{
		customerRoutes.POST("", customerHandler.CreateCustomer)
		customerRoutes.GET("", customerHandler.GetCustomers)
		customerRoutes.GET("/:id", customerHandler.GetCustomerByID)
		customerRoutes.PUT("/:id", customerHandler.UpdateCustomer)
		customerRoutes.GET("/:id/stores", customerHandler.GetCustomerStores)
		customerRoutes.POST("/:id/stores/:store_id", customerHandler.AttachStore)
		customerRoutes.DELETE("/:id/stores/:store_id", customerHandler.DetachStore)
	}

	authenticatedGroup.DELETE("/customers/:id", middleware.RoleAuthMiddleware(deleterRoles...), customerHandler.DeleteCustomer)
}

// SetupReservationRoutes sets up the reservation routes.
func SetupReservationRoutes(authenticatedGroup *gin.RouterGroup, reservationHandler *handlers.ReservationHandler) {
	reservationRoutes := authenticatedGroup.Group("/reservations")
	reservationRoutes.Use(middleware.RoleAuthMiddleware(writerRoles...))
	{
		reservationRoutes.POST("", reservationHandler.CreateReservation)
		reservationRoutes.GET("", reservationHandler.GetReservations)
		reservationRoutes.GET("/:id", reservationHandler.GetReservationByID)
		reservationRoutes.PUT("/:id", reservationHandler.UpdateReservation)
	}

	authenticatedGroup.DELETE("/reservations/:id", middleware.RoleAuthMiddleware(deleterRoles...), reservationHandler.DeleteReservation)
}

// SetupRevenueTypeRoutes sets up the revenue type routes.
func SetupRevenueTypeRoutes(authenticatedGroup *gin.RouterGroup, revenueTypeHandler *handlers.RevenueTypeHandler) {
	authenticatedGroup.GET("/revenue-types/search", revenueTypeHandler.SearchRevenueTypes)

	revenueTypeRoutes := authenticatedGroup.Group("/revenue-types")
	revenueTypeRoutes.Use(middleware.RoleAuthMiddleware(writerRoles...))
	{
		revenueTypeRoutes.POST("", revenueTypeHandler.CreateRevenueType)
		revenueTypeRoutes.GET("", revenueTypeHandler.GetRevenueTypes)
		revenueTypeRoutes.GET("/:id", revenueTypeHandler.GetRevenueTypeByID)
		revenueTypeRoutes.PUT("/:id", revenueTypeHandler.UpdateRevenueType)
	}

	authenticatedGroup.DELETE("/revenue-types/:id", middleware.RoleAuthMiddleware(deleterRoles...), revenueTypeHandler.DeleteRevenueType)
}

// SetupRevenueRoutes sets up the daily revenue routes with their nested item
// and compliment routes.
func SetupRevenueRoutes(authenticatedGroup *gin.RouterGroup, revenueHandler *handlers.RevenueHandler) {
	revenueRoutes := authenticatedGroup.Group("/revenues")
	revenueRoutes.Use(middleware.RoleAuthMiddleware(writerRoles...))
	{
		revenueRoutes.POST("", revenueHandler.CreateRevenue)
		revenueRoutes.GET("", revenueHandler.GetRevenues)
		revenueRoutes.GET("/:id", revenueHandler.GetRevenueDetail)
		revenueRoutes.PUT("/:id", revenueHandler.UpdateRevenue)

		revenueRoutes.POST("/:id/items", revenueHandler.AddItem)
		revenueRoutes.PUT("/:id/items/:item_id", revenueHandler.UpdateItem)

		revenueRoutes.POST("/:id/compliments", revenueHandler.AddCompliment)
		revenueRoutes.PUT("/:id/compliments/:compliment_id", revenueHandler.UpdateCompliment)

		revenueRoutes.POST("/:id/send-whatsapp", revenueHandler.SendWhatsAppReport)
	}

	revenueDeleteRoutes := authenticatedGroup.Group("/revenues")
	revenueDeleteRoutes.Use(middleware.RoleAuthMiddleware(deleterRoles...))
	{
		revenueDeleteRoutes.DELETE("/:id", revenueHandler.DeleteRevenue)
		revenueDeleteRoutes.DELETE("/:id/items/:item_id", revenueHandler.DeleteItem)
		revenueDeleteRoutes.DELETE("/:id/compliments/:compliment_id", revenueHandler.DeleteCompliment)
	}
}

// SetupSettingRoutes sets up the application settings routes. Admin only.
func SetupSettingRoutes(authenticatedGroup *gin.RouterGroup, settingHandler *handlers.SettingHandler) {
	settingRoutes := authenticatedGroup.Group("/settings")
	settingRoutes.Use(middleware.RoleAuthMiddleware(models.LevelAdmin))
	{
		settingRoutes.GET("", settingHandler.GetSettings)
		settingRoutes.POST("", settingHandler.UpsertSetting)
		settingRoutes.GET("/:key", settingHandler.GetSetting)
		settingRoutes.DELETE("/:key", settingHandler.DeleteSetting)
	}
}

// SetupReportRoutes sets up the dashboard and export routes. The dashboard is
// open to any authenticated user, exports follow the write roles.
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	authenticatedGroup.GET("/dashboard/summary", reportHandler.GetDashboardSummary)
	authenticatedGroup.GET("/reports/revenues/export", middleware.RoleAuthMiddleware(writerRoles...), reportHandler.ExportMonthlyRevenues)
}
