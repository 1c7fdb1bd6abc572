package router

import (
	"fx_agenda_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupClientRoutes sets up the client routes.
func SetupClientRoutes(apiGroup *gin.RouterGroup, clientHandler *handlers.ClientHandler) {
	clientRoutes := apiGroup.Group("/clients")
	{
		clientRoutes.POST("", clientHandler.CreateClient)
		clientRoutes.GET("", clientHandler.GetClients)
		clientRoutes.GET("/search", clientHandler.SearchClients)
		clientRoutes.GET("/:id", clientHandler.GetClientByID)
		clientRoutes.PUT("/:id", clientHandler.UpdateClient)
		clientRoutes.DELETE("/:id", clientHandler.DeleteClient)
	}
}

// SetupAppointmentRoutes sets up the appointment routes.
func SetupAppointmentRoutes(apiGroup *gin.RouterGroup, appointmentHandler *handlers.AppointmentHandler) {
	appointmentRoutes := apiGroup.Group("/appointments")
	{
		appointmentRoutes.POST("", appointmentHandler.CreateAppointment)
		appointmentRoutes.GET("", appointmentHandler.GetAppointments)
		appointmentRoutes.GET("/monthly", appointmentHandler.GetMonthlyAppointments)
		appointmentRoutes.GET("/week", appointmentHandler.GetWeekAppointments)
		appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)
		appointmentRoutes.PUT("/:id", appointmentHandler.UpdateAppointment)
		appointmentRoutes.PATCH("/:id/status", appointmentHandler.UpdateAppointmentStatus)
		appointmentRoutes.DELETE("/:id", appointmentHandler.DeleteAppointment)
	}
}

// SetupBackupRoutes sets up the backup and export routes.
func SetupBackupRoutes(apiGroup *gin.RouterGroup, exportHandler *handlers.ExportHandler) {
	backupRoutes := apiGroup.Group("/backup")
	{
		backupRoutes.GET("/db", exportHandler.ExportDatabase)
		backupRoutes.POST("/db", exportHandler.ImportDatabase)
		backupRoutes.GET("/xlsx", exportHandler.ExportWorkbook)
	}
}
