package router

import (
	"fx_agenda_backend/internal/database"
	"fx_agenda_backend/internal/handlers"
	"fx_agenda_backend/internal/middleware"
	"fx_agenda_backend/internal/repositories"
	"fx_agenda_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, store *database.Store) {
	// Initialize Repositories
	clientRepo := repositories.NewClientRepository(store)
	appointmentRepo := repositories.NewAppointmentRepository(store)

	// Initialize Services
	clientService := services.NewClientService(clientRepo, store)
	appointmentService := services.NewAppointmentService(appointmentRepo, store)
	exportService := services.NewExportService(store, clientRepo, appointmentRepo)
	matcher := services.NewClientMatcher()

	// Initialize Handlers
	clientHandler := handlers.NewClientHandler(clientService, matcher)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	exportHandler := handlers.NewExportHandler(exportService)

	apiV1 := engine.Group("/api/v1")
	apiV1.Use(middleware.RequestID())
	{
		SetupClientRoutes(apiV1, clientHandler)
		SetupAppointmentRoutes(apiV1, appointmentHandler)
		SetupBackupRoutes(apiV1, exportHandler)
	}
}
