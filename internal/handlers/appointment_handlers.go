package handlers

import (
	"errors"
	"net/http"

	"fx_agenda_backend/internal/models"
	"fx_agenda_backend/internal/services"
	"fx_agenda_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler holds the appointment service.
type AppointmentHandler struct {
	appointmentService services.AppointmentService
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(as services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: as}
}

func respondAppointmentError(c *gin.Context, err error, action string) {
	utils.LogError(err, action+": Error from appointmentService")
	switch {
	case errors.Is(err, services.ErrAppointmentNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Appointment not found.", err.Error()))
	case errors.Is(err, services.ErrAppointmentValidation),
		errors.Is(err, services.ErrDateFormat),
		errors.Is(err, services.ErrTimeFormat),
		errors.Is(err, services.ErrInvalidStatus):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to process appointment.", "Internal error"))
	}
}

// CreateAppointment handles scheduling a new service visit.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req services.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateAppointment: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	appointment, err := h.appointmentService.CreateAppointment(req)
	if err != nil {
		respondAppointmentError(c, err, "CreateAppointment")
		return
	}
	c.JSON(http.StatusCreated, appointment)
}

// GetAppointments handles the filtered listing. date_from, date_to and status
// are optional and AND-combined; status "Todos" means no status restriction.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	var filters models.AppointmentFilters
	if dateFrom := c.Query("date_from"); dateFrom != "" {
		filters.DateFrom = &dateFrom
	}
	if dateTo := c.Query("date_to"); dateTo != "" {
		filters.DateTo = &dateTo
	}
	if status := c.Query("status"); status != "" {
		filters.Status = &status
	}

	appointments, err := h.appointmentService.GetAppointments(filters)
	if err != nil {
		respondAppointmentError(c, err, "GetAppointments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  appointments,
		"total": len(appointments),
	})
}

// GetMonthlyAppointments lists the visits flagged as monthly services.
func (h *AppointmentHandler) GetMonthlyAppointments(c *gin.Context) {
	appointments, err := h.appointmentService.GetMonthlyAppointments()
	if err != nil {
		respondAppointmentError(c, err, "GetMonthlyAppointments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  appointments,
		"total": len(appointments),
	})
}

// GetWeekAppointments lists the Monday..Sunday week containing the date
// parameter (any day of the wanted week).
func (h *AppointmentHandler) GetWeekAppointments(c *gin.Context) {
	day := c.Query("date")
	if utils.IsEmpty(day) {
		utils.RespondValidationFailed(c, "date query parameter is required")
		return
	}

	appointments, from, to, err := h.appointmentService.ListWeek(day)
	if err != nil {
		respondAppointmentError(c, err, "GetWeekAppointments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      appointments,
		"total":     len(appointments),
		"date_from": from,
		"date_to":   to,
	})
}

// GetAppointmentByID handles fetching a single appointment by ID.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	idStr := c.Param("id")
	appointmentID, err := utils.StrToInt64(idStr)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid appointment ID format.", err.Error()))
		return
	}

	appointment, err := h.appointmentService.GetAppointmentByID(appointmentID)
	if err != nil {
		respondAppointmentError(c, err, "GetAppointmentByID")
		return
	}
	c.JSON(http.StatusOK, appointment)
}

// UpdateAppointment handles the full-record overwrite of an appointment.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	idStr := c.Param("id")
	appointmentID, err := utils.StrToInt64(idStr)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid appointment ID format.", err.Error()))
		return
	}

	var req services.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateAppointment: Failed to bind JSON for ID "+idStr)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	appointment, err := h.appointmentService.UpdateAppointment(appointmentID, req)
	if err != nil {
		respondAppointmentError(c, err, "UpdateAppointment")
		return
	}
	c.JSON(http.StatusOK, appointment)
}

// UpdateAppointmentStatus handles the narrow status-only update.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	idStr := c.Param("id")
	appointmentID, err := utils.StrToInt64(idStr)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid appointment ID format.", err.Error()))
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	appointment, err := h.appointmentService.UpdateStatus(appointmentID, req.Status)
	if err != nil {
		respondAppointmentError(c, err, "UpdateAppointmentStatus")
		return
	}
	c.JSON(http.StatusOK, appointment)
}

// DeleteAppointment handles deleting an appointment, gated behind the
// confirm=true flag the presentation layer collects from the operator.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	idStr := c.Param("id")
	appointmentID, err := utils.StrToInt64(idStr)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid appointment ID format.", err.Error()))
		return
	}

	if c.Query("confirm") != "true" {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeConfirmationNeeded, "Deletion requires confirm=true.", "Pass confirm=true to delete this appointment."))
		return
	}

	err = h.appointmentService.DeleteAppointment(appointmentID)
	if err != nil {
		respondAppointmentError(c, err, "DeleteAppointment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted successfully"})
}
