package handlers

import (
	"errors"
	"io"
	"net/http"

	"fx_agenda_backend/internal/services"
	"fx_agenda_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler holds the export service.
type ExportHandler struct {
	exportService services.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(es services.ExportService) *ExportHandler {
	return &ExportHandler{exportService: es}
}

// ExportDatabase streams the raw store file as a downloadable backup.
func (h *ExportHandler) ExportDatabase(c *gin.Context) {
	data, err := h.exportService.ExportDatabase()
	if err != nil {
		utils.LogError(err, "ExportDatabase: Error from exportService.ExportDatabase")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to export database.", "Internal error"))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="agenda_respaldo.db"`)
	c.Data(http.StatusOK, "application/octet-stream", data)
}

// ImportDatabase replaces the entire store with an uploaded backup file.
// The upload arrives as the multipart form file "file".
func (h *ExportHandler) ImportDatabase(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.RespondValidationFailed(c, "multipart form file \"file\" is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.LogError(err, "ImportDatabase: Failed to open uploaded file")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Could not read uploaded file.", err.Error()))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.LogError(err, "ImportDatabase: Failed to read uploaded file")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Could not read uploaded file.", err.Error()))
		return
	}

	if err := h.exportService.ImportDatabase(data); err != nil {
		utils.LogError(err, "ImportDatabase: Error from exportService.ImportDatabase")
		if errors.Is(err, services.ErrInvalidBackup) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Uploaded file is not a valid store backup.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to import database.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Database imported successfully"})
}

// ExportWorkbook streams the two-sheet spreadsheet export.
func (h *ExportHandler) ExportWorkbook(c *gin.Context) {
	data, err := h.exportService.ExportWorkbook()
	if err != nil {
		utils.LogError(err, "ExportWorkbook: Error from exportService.ExportWorkbook")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to export workbook.", "Internal error"))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="agenda_excel.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
