package services

import (
	"bytes"
	"testing"

	"fx_agenda_backend/internal/database"
	"fx_agenda_backend/internal/models"
	"fx_agenda_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type exportEnv struct {
	store     *database.Store
	clients   ClientService
	appts     AppointmentService
	exportsvc ExportService
}

func newExportEnv(t *testing.T) exportEnv {
	t.Helper()
	store := newTestStore(t)
	clientRepo := repositories.NewClientRepository(store)
	appointmentRepo := repositories.NewAppointmentRepository(store)
	return exportEnv{
		store:     store,
		clients:   NewClientService(clientRepo, store),
		appts:     NewAppointmentService(appointmentRepo, store),
		exportsvc: NewExportService(store, clientRepo, appointmentRepo),
	}
}

func TestExportService_DatabaseRoundTrip(t *testing.T) {
	source := newExportEnv(t)

	created, err := source.clients.CreateClient(CreateClientRequest{
		Name:         "Ana",
		BusinessName: strPtr("Joyería Luz"),
	})
	require.NoError(t, err)
	_, err = source.appts.CreateAppointment(CreateAppointmentRequest{
		ClientName: "Joyería Luz (Ana)",
		Date:       "2025-02-03",
		Time:       "10:30",
		Price:      floatPtr(75.5),
	})
	require.NoError(t, err)

	backup, err := source.exportsvc.ExportDatabase()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(backup, []byte("SQLite format 3\x00")))

	target := newExportEnv(t)
	_, err = target.clients.CreateClient(CreateClientRequest{Name: "Se Pierde"})
	require.NoError(t, err)

	require.NoError(t, target.exportsvc.ImportDatabase(backup))

	clients, err := target.clients.GetClients()
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, created.ID, clients[0].ID)
	assert.Equal(t, "Ana", clients[0].Name)

	appointments, err := target.appts.GetAppointments(models.AppointmentFilters{})
	require.NoError(t, err)
	require.Len(t, appointments, 1)
	assert.Equal(t, "Joyería Luz (Ana)", appointments[0].ClientName)

	// The restored store stays writable through the same handles.
	_, err = target.clients.CreateClient(CreateClientRequest{Name: "Después"})
	require.NoError(t, err)
}

func TestExportService_ImportRejectsGarbage(t *testing.T) {
	env := newExportEnv(t)

	_, err := env.clients.CreateClient(CreateClientRequest{Name: "Intacto"})
	require.NoError(t, err)

	assert.ErrorIs(t, env.exportsvc.ImportDatabase([]byte("definitely not a database")), ErrInvalidBackup)
	assert.ErrorIs(t, env.exportsvc.ImportDatabase(nil), ErrInvalidBackup)

	clients, err := env.clients.GetClients()
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Intacto", clients[0].Name)
}

func TestExportService_Workbook(t *testing.T) {
	env := newExportEnv(t)

	_, err := env.clients.CreateClient(CreateClientRequest{
		Name:         "Ana",
		BusinessName: strPtr("Joyería Luz"),
		IsMonthly:    boolPtr(true),
		MonthlyDay:   intPtr(15),
	})
	require.NoError(t, err)
	_, err = env.appts.CreateAppointment(CreateAppointmentRequest{
		ClientName: "Joyería Luz (Ana)",
		Date:       "2025-02-03",
		Time:       "10:30",
		Price:      floatPtr(75.5),
		Status:     string(models.AppointmentStatusConfirmed),
	})
	require.NoError(t, err)

	data, err := env.exportsvc.ExportWorkbook()
	require.NoError(t, err)

	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer workbook.Close()

	assert.ElementsMatch(t, []string{"Clientes", "Servicios"}, workbook.GetSheetList())

	clientRows, err := workbook.GetRows("Clientes")
	require.NoError(t, err)
	require.Len(t, clientRows, 2)
	assert.Equal(t, "name", clientRows[0][1])
	assert.Equal(t, "Ana", clientRows[1][1])
	assert.Equal(t, "Joyería Luz", clientRows[1][2])
	assert.Equal(t, "1", clientRows[1][7])

	appointmentRows, err := workbook.GetRows("Servicios")
	require.NoError(t, err)
	require.Len(t, appointmentRows, 2)
	assert.Equal(t, "client_name", appointmentRows[0][1])
	assert.Equal(t, "Joyería Luz (Ana)", appointmentRows[1][1])
	assert.Equal(t, "2025-02-03", appointmentRows[1][7])
	assert.Equal(t, "75.5", appointmentRows[1][9])
	assert.Equal(t, "Confirmado", appointmentRows[1][10])
}

func TestExportService_WorkbookEmptyStore(t *testing.T) {
	env := newExportEnv(t)

	data, err := env.exportsvc.ExportWorkbook()
	require.NoError(t, err)

	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer workbook.Close()

	for _, sheet := range []string{"Clientes", "Servicios"} {
		rows, err := workbook.GetRows(sheet)
		require.NoError(t, err)
		require.Len(t, rows, 1, "sheet %s keeps its header", sheet)
	}
}
