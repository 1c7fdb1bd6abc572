package services

import (
	"bytes"
	"errors"
	"fmt"

	"fx_agenda_backend/internal/database"
	"fx_agenda_backend/internal/models"
	"fx_agenda_backend/internal/repositories"
	"fx_agenda_backend/pkg/utils"

	"github.com/xuri/excelize/v2"
)

// ErrInvalidBackup is returned when an uploaded backup is not a SQLite file.
var ErrInvalidBackup = errors.New("uploaded backup is not a valid store file")

// sqliteMagic is the 16-byte header every SQLite 3 database file starts with.
var sqliteMagic = []byte("SQLite format 3\x00")

const (
	clientsSheet      = "Clientes"
	appointmentsSheet = "Servicios"
)

// ExportService serializes the full store: raw .db backup/restore and the
// two-sheet workbook export. No business logic lives here; every operation is
// a straight dump or replacement of table contents.
type ExportService interface {
	ExportDatabase() ([]byte, error)
	ImportDatabase(data []byte) error
	ExportWorkbook() ([]byte, error)
}

type exportService struct {
	store           *database.Store
	clientRepo      repositories.ClientRepository
	appointmentRepo repositories.AppointmentRepository
}

// NewExportService creates a new instance of ExportService.
func NewExportService(store *database.Store, cr repositories.ClientRepository, ar repositories.AppointmentRepository) ExportService {
	return &exportService{
		store:           store,
		clientRepo:      cr,
		appointmentRepo: ar,
	}
}

func (s *exportService) ExportDatabase() ([]byte, error) {
	data, err := s.store.Export()
	if err != nil {
		return nil, fmt.Errorf("failed to export store: %w", err)
	}
	return data, nil
}

// ImportDatabase atomically replaces the whole store file. Ids are preserved
// exactly as in the backup. EnsureSchema runs afterwards so backups taken
// before a column was introduced still open cleanly.
func (s *exportService) ImportDatabase(data []byte) error {
	if len(data) < len(sqliteMagic) || !bytes.HasPrefix(data, sqliteMagic) {
		return ErrInvalidBackup
	}
	if err := s.store.Import(data); err != nil {
		return fmt.Errorf("failed to import store: %w", err)
	}
	if err := s.store.EnsureSchema(); err != nil {
		return fmt.Errorf("failed to ensure schema after import: %w", err)
	}
	return nil
}

// ExportWorkbook renders both tables into an .xlsx workbook, one sheet per
// table, one row per record, all columns.
func (s *exportService) ExportWorkbook() ([]byte, error) {
	clients, err := s.clientRepo.GetClients()
	if err != nil {
		return nil, fmt.Errorf("failed to load clients for export: %w", err)
	}
	appointments, err := s.appointmentRepo.GetAppointments(models.AppointmentFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", clientsSheet); err != nil {
		return nil, fmt.Errorf("failed to rename clients sheet: %w", err)
	}
	if _, err := f.NewSheet(appointmentsSheet); err != nil {
		return nil, fmt.Errorf("failed to create appointments sheet: %w", err)
	}

	clientHeader := []interface{}{"id", "name", "business_name", "address", "zone", "phone", "notes", "is_monthly", "monthly_day"}
	if err := f.SetSheetRow(clientsSheet, "A1", &clientHeader); err != nil {
		return nil, fmt.Errorf("failed to write clients header: %w", err)
	}
	for i, c := range clients {
		row := []interface{}{
			c.ID, c.Name, utils.StringOrEmpty(c.BusinessName), utils.StringOrEmpty(c.Address),
			utils.StringOrEmpty(c.Zone), utils.StringOrEmpty(c.Phone), utils.StringOrEmpty(c.Notes),
			boolToCell(c.IsMonthly), intCell(c.MonthlyDay),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(clientsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write client row %d: %w", i+2, err)
		}
	}

	appointmentHeader := []interface{}{"id", "client_name", "service_type", "pest_type", "address", "zone", "phone",
		"date", "time", "price", "status", "notes", "created_at", "is_monthly_service"}
	if err := f.SetSheetRow(appointmentsSheet, "A1", &appointmentHeader); err != nil {
		return nil, fmt.Errorf("failed to write appointments header: %w", err)
	}
	for i, a := range appointments {
		row := []interface{}{
			a.ID, a.ClientName, utils.StringOrEmpty(a.ServiceType), utils.StringOrEmpty(a.PestType),
			utils.StringOrEmpty(a.Address), utils.StringOrEmpty(a.Zone), utils.StringOrEmpty(a.Phone),
			a.Date, a.Time, priceCell(a.Price), a.Status, utils.StringOrEmpty(a.Notes),
			a.CreatedAt, boolToCell(a.IsMonthlyService),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(appointmentsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write appointment row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func boolToCell(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intCell(v *int) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func priceCell(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
