package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wenlock-health-server/internal/handlers"
	"wenlock-health-server/internal/realtime"
	"wenlock-health-server/internal/services"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, svc *services.Services, hub *realtime.Hub, logger *zap.Logger) {
	// Initialize handlers
	departmentHandler := handlers.NewDepartmentHandler(svc.Directory, logger)
	doctorHandler := handlers.NewDoctorHandler(svc.Directory, svc.Queue, logger)
	tokenHandler := handlers.NewTokenHandler(svc.Queue, logger)
	medicineHandler := handlers.NewMedicineHandler(svc.Inventory, logger)
	alertHandler := handlers.NewAlertHandler(svc.Alerts, logger)
	activityLogHandler := handlers.NewActivityLogHandler(svc.Activity, logger)
	realtimeHandler := handlers.NewRealtimeHandler(hub)

	api := router.Group("/api")
	{
		departmentRoutes := api.Group("/departments")
		{
			departmentRoutes.GET("", departmentHandler.GetDepartments)
			departmentRoutes.POST("", departmentHandler.CreateDepartment)
		}

		doctorRoutes := api.Group("/doctors")
		{
			doctorRoutes.GET("", doctorHandler.GetDoctors)
			doctorRoutes.POST("", doctorHandler.CreateDoctor)
			doctorRoutes.POST("/:id/next-token", doctorHandler.NextToken)
		}

		tokenRoutes := api.Group("/tokens")
		{
			tokenRoutes.GET("", tokenHandler.GetTokens)
			tokenRoutes.POST("", tokenHandler.CreateToken)
			tokenRoutes.GET("/department/:departmentId", tokenHandler.GetTokensByDepartment)

			// The single shared queue is the Operation Theatre
			tokenRoutes.POST("/ot/next", tokenHandler.NextOTToken)
			tokenRoutes.POST("/ot/reset", tokenHandler.ResetOTQueue)
		}

		medicineRoutes := api.Group("/medicines")
		{
			medicineRoutes.GET("", medicineHandler.GetMedicines)
			medicineRoutes.POST("", medicineHandler.CreateMedicine)
			medicineRoutes.GET("/low-stock", medicineHandler.GetLowStock)
			medicineRoutes.POST("/:id/update-stock", medicineHandler.UpdateStock)
		}

		alertRoutes := api.Group("/emergency-alerts")
		{
			alertRoutes.GET("", alertHandler.GetActiveAlerts)
			alertRoutes.POST("", alertHandler.CreateAlert)
			alertRoutes.POST("/:id/dismiss", alertHandler.DismissAlert)
		}

		api.GET("/activity-logs", activityLogHandler.GetRecentLogs)
	}

	// Push channel for connected displays
	router.GET("/ws", realtimeHandler.Connect)

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})
}
