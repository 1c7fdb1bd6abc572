package repositories

import (
	"testing"

	"fx_agenda_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCreateAppointment(t *testing.T, repo AppointmentRepository, executor SQLExecutor, appointment models.Appointment) int64 {
	t.Helper()
	if appointment.Status == "" {
		appointment.Status = string(models.AppointmentStatusPending)
	}
	if appointment.CreatedAt == "" {
		appointment.CreatedAt = "2025-01-10T09:00:00"
	}
	id, err := repo.CreateAppointment(executor, &appointment)
	require.NoError(t, err)
	return id
}

func TestAppointmentRepository_CreateAndGet(t *testing.T) {
	store := newTestStore(t)
	repo := NewAppointmentRepository(store)

	id := mustCreateAppointment(t, repo, store.DB(), models.Appointment{
		ClientName:  "Joyería Luz (Ana)",
		ServiceType: strPtr(models.ServiceTypeBusiness),
		PestType:    strPtr("Cucarachas"),
		Date:        "2025-02-03",
		Time:        "10:30",
		Price:       floatPtr(75.5),
		Status:      string(models.AppointmentStatusConfirmed),
	})

	got, err := repo.GetAppointmentByID(id)
	require.NoError(t, err)
	assert.Equal(t, "Joyería Luz (Ana)", got.ClientName)
	assert.Equal(t, models.ServiceTypeBusiness, *got.ServiceType)
	assert.Equal(t, "Cucarachas", *got.PestType)
	assert.Equal(t, "2025-02-03", got.Date)
	assert.Equal(t, "10:30", got.Time)
	require.NotNil(t, got.Price)
	assert.Equal(t, 75.5, *got.Price)
	assert.Equal(t, string(models.AppointmentStatusConfirmed), got.Status)
	assert.Equal(t, "2025-01-10T09:00:00", got.CreatedAt)
	assert.False(t, got.IsMonthlyService)
}

func TestAppointmentRepository_Filters(t *testing.T) {
	store := newTestStore(t)
	repo := NewAppointmentRepository(store)

	mustCreateAppointment(t, repo, store.DB(), models.Appointment{
		ClientName: "Juan Pérez", Date: "2025-01-05", Time: "09:00",
		Status: string(models.AppointmentStatusPending),
	})
	mustCreateAppointment(t, repo, store.DB(), models.Appointment{
		ClientName: "Los Jardines", Date: "2025-01-10", Time: "14:00",
		Status: string(models.AppointmentStatusDone),
	})
	mustCreateAppointment(t, repo, store.DB(), models.Appointment{
		ClientName: "Joyería Luz (Ana)", Date: "2025-01-20", Time: "11:00",
		Status: string(models.AppointmentStatusPending),
	})

	t.Run("no filters returns all in date order", func(t *testing.T) {
		appointments, err := repo.GetAppointments(models.AppointmentFilters{})
		require.NoError(t, err)
		require.Len(t, appointments, 3)
		assert.Equal(t, "2025-01-05", appointments[0].Date)
		assert.Equal(t, "2025-01-20", appointments[2].Date)
	})

	t.Run("inclusive date range", func(t *testing.T) {
		appointments, err := repo.GetAppointments(models.AppointmentFilters{
			DateFrom: strPtr("2025-01-05"),
			DateTo:   strPtr("2025-01-10"),
		})
		require.NoError(t, err)
		require.Len(t, appointments, 2)
		assert.Equal(t, "Juan Pérez", appointments[0].ClientName)
		assert.Equal(t, "Los Jardines", appointments[1].ClientName)
	})

	t.Run("status filter", func(t *testing.T) {
		appointments, err := repo.GetAppointments(models.AppointmentFilters{
			Status: strPtr(string(models.AppointmentStatusPending)),
		})
		require.NoError(t, err)
		require.Len(t, appointments, 2)
	})

	t.Run("Todos sentinel disables status filter", func(t *testing.T) {
		appointments, err := repo.GetAppointments(models.AppointmentFilters{
			Status: strPtr(models.AppointmentStatusAll),
		})
		require.NoError(t, err)
		assert.Len(t, appointments, 3)
	})

	t.Run("combined range and status", func(t *testing.T) {
		appointments, err := repo.GetAppointments(models.AppointmentFilters{
			DateFrom: strPtr("2025-01-06"),
			Status:   strPtr(string(models.AppointmentStatusPending)),
		})
		require.NoError(t, err)
		require.Len(t, appointments, 1)
		assert.Equal(t, "Joyería Luz (Ana)", appointments[0].ClientName)
	})
}

func TestAppointmentRepository_TimeOrderingWithinDay(t *testing.T) {
	store := newTestStore(t)
	repo := NewAppointmentRepository(store)

	mustCreateAppointment(t, repo, store.DB(), models.Appointment{
		ClientName: "Tarde", Date: "2025-03-01", Time: "16:00",
	})
	mustCreateAppointment(t, repo, store.DB(), models.Appointment{
		ClientName: "Mañana", Date: "2025-03-01", Time: "08:30",
	})

	appointments, err := repo.GetAppointments(models.AppointmentFilters{})
	require.NoError(t, err)
	require.Len(t, appointments, 2)
	assert.Equal(t, "Mañana", appointments[0].ClientName)
	assert.Equal(t, "Tarde", appointments[1].ClientName)
}

func TestAppointmentRepository_MonthlyList(t *testing.T) {
	store := newTestStore(t)
	repo := NewAppointmentRepository(store)

	mustCreateAppointment(t, repo, store.DB(), models.Appointment{
		ClientName: "Puntual", Date: "2025-04-02", Time: "10:00",
	})
	mustCreateAppointment(t, repo, store.DB(), models.Appointment{
		ClientName: "Mensual", Date: "2025-04-01", Time: "09:00", IsMonthlyService: true,
	})

	appointments, err := repo.GetMonthlyAppointments()
	require.NoError(t, err)
	require.Len(t, appointments, 1)
	assert.Equal(t, "Mensual", appointments[0].ClientName)
	assert.True(t, appointments[0].IsMonthlyService)
}

func TestAppointmentRepository_Update(t *testing.T) {
	store := newTestStore(t)
	repo := NewAppointmentRepository(store)

	id := mustCreateAppointment(t, repo, store.DB(), models.Appointment{
		ClientName: "Juan Pérez", Date: "2025-05-01", Time: "10:00",
		Price: floatPtr(50),
	})
	original, err := repo.GetAppointmentByID(id)
	require.NoError(t, err)

	err = repo.UpdateAppointment(store.DB(), &models.Appointment{
		ID:         id,
		ClientName: "Juan P. García",
		Date:       "2025-05-02",
		Time:       "12:00",
		Status:     string(models.AppointmentStatusBilled),
	})
	require.NoError(t, err)

	got, err := repo.GetAppointmentByID(id)
	require.NoError(t, err)
	assert.Equal(t, "Juan P. García", got.ClientName)
	assert.Equal(t, "2025-05-02", got.Date)
	assert.Nil(t, got.Price)
	assert.Equal(t, string(models.AppointmentStatusBilled), got.Status)
	assert.Equal(t, original.CreatedAt, got.CreatedAt)
}

func TestAppointmentRepository_UpdateStatus(t *testing.T) {
	store := newTestStore(t)
	repo := NewAppointmentRepository(store)

	id := mustCreateAppointment(t, repo, store.DB(), models.Appointment{
		ClientName: "Juan Pérez", Date: "2025-06-01", Time: "10:00",
	})

	require.NoError(t, repo.UpdateAppointmentStatus(store.DB(), id, string(models.AppointmentStatusDone)))

	got, err := repo.GetAppointmentByID(id)
	require.NoError(t, err)
	assert.Equal(t, string(models.AppointmentStatusDone), got.Status)
	assert.Equal(t, "Juan Pérez", got.ClientName)

	assert.ErrorIs(t, repo.UpdateAppointmentStatus(store.DB(), 9999, string(models.AppointmentStatusDone)), ErrNotFound)
}

func TestAppointmentRepository_Delete(t *testing.T) {
	store := newTestStore(t)
	repo := NewAppointmentRepository(store)

	id := mustCreateAppointment(t, repo, store.DB(), models.Appointment{
		ClientName: "Juan Pérez", Date: "2025-07-01", Time: "10:00",
	})

	require.NoError(t, repo.DeleteAppointment(store.DB(), id))

	_, err := repo.GetAppointmentByID(id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.DeleteAppointment(store.DB(), id), ErrNotFound)
	assert.ErrorIs(t, repo.UpdateAppointment(store.DB(), &models.Appointment{ID: id, ClientName: "X"}), ErrNotFound)
}
