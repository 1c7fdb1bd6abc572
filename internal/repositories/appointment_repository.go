package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"fx_agenda_backend/internal/database"
	"fx_agenda_backend/internal/models"
)

// AppointmentRepository defines the interface for appointment-related database operations.
type AppointmentRepository interface {
	CreateAppointment(executor SQLExecutor, appointment *models.Appointment) (int64, error)
	GetAppointmentByID(id int64) (*models.Appointment, error)
	GetAppointments(filters models.AppointmentFilters) ([]models.Appointment, error)
	GetMonthlyAppointments() ([]models.Appointment, error)
	UpdateAppointment(executor SQLExecutor, appointment *models.Appointment) error
	UpdateAppointmentStatus(executor SQLExecutor, id int64, status string) error
	DeleteAppointment(executor SQLExecutor, id int64) error
}

type appointmentRepository struct {
	store *database.Store
}

// NewAppointmentRepository creates a new instance of AppointmentRepository.
func NewAppointmentRepository(store *database.Store) AppointmentRepository {
	return &appointmentRepository{store: store}
}

const selectAppointmentFields = `id, client_name, service_type, pest_type, address, zone, phone,
	date, time, price, status, notes, created_at, is_monthly_service`

// scanAppointmentRow scans one appointments row, converting nullable columns.
func scanAppointmentRow(row scanner) (*models.Appointment, error) {
	var appointment models.Appointment
	var serviceType, pestType, address, zone, phone, notes sql.NullString
	var status, createdAt sql.NullString
	var price sql.NullFloat64
	var isMonthlyService sql.NullInt64

	err := row.Scan(
		&appointment.ID, &appointment.ClientName, &serviceType, &pestType,
		&address, &zone, &phone, &appointment.Date, &appointment.Time,
		&price, &status, &notes, &createdAt, &isMonthlyService,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning appointment: %v", ErrDatabaseError, err)
	}

	if serviceType.Valid {
		appointment.ServiceType = &serviceType.String
	}
	if pestType.Valid {
		appointment.PestType = &pestType.String
	}
	if address.Valid {
		appointment.Address = &address.String
	}
	if zone.Valid {
		appointment.Zone = &zone.String
	}
	if phone.Valid {
		appointment.Phone = &phone.String
	}
	if price.Valid {
		appointment.Price = &price.Float64
	}
	if status.Valid {
		appointment.Status = status.String
	}
	if notes.Valid {
		appointment.Notes = &notes.String
	}
	if createdAt.Valid {
		appointment.CreatedAt = createdAt.String
	}
	appointment.IsMonthlyService = isMonthlyService.Valid && isMonthlyService.Int64 == 1
	return &appointment, nil
}

// CreateAppointment inserts a new appointment row. ClientName is the snapshot
// the service layer resolved; price and created_at arrive already normalized.
func (r *appointmentRepository) CreateAppointment(executor SQLExecutor, appointment *models.Appointment) (int64, error) {
	query := `INSERT INTO appointments (client_name, service_type, pest_type, address, zone, phone,
	            date, time, price, status, notes, created_at, is_monthly_service)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := executor.Exec(query,
		appointment.ClientName, appointment.ServiceType, appointment.PestType,
		appointment.Address, appointment.Zone, appointment.Phone,
		appointment.Date, appointment.Time, appointment.Price,
		appointment.Status, appointment.Notes, appointment.CreatedAt,
		boolToInt(appointment.IsMonthlyService),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: creating appointment: %v", ErrDatabaseError, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: reading new appointment id: %v", ErrDatabaseError, err)
	}
	appointment.ID = id
	return id, nil
}

// GetAppointmentByID retrieves an appointment by its ID.
func (r *appointmentRepository) GetAppointmentByID(id int64) (*models.Appointment, error) {
	query := `SELECT ` + selectAppointmentFields + ` FROM appointments WHERE id = ?`
	appointment, err := scanAppointmentRow(r.store.DB().QueryRow(query, id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting appointment by ID %d: %w", id, err)
	}
	return appointment, nil
}

// GetAppointments retrieves appointments matching the filters, ordered by
// (date, time) ascending. Nil filters and the "Todos" status sentinel mean no
// restriction on that dimension; bounds are inclusive and AND-combined.
func (r *appointmentRepository) GetAppointments(filters models.AppointmentFilters) ([]models.Appointment, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + selectAppointmentFields + ` FROM appointments`)

	var conditions []string
	var args []interface{}

	if filters.DateFrom != nil && *filters.DateFrom != "" {
		conditions = append(conditions, "date >= ?")
		args = append(args, *filters.DateFrom)
	}
	if filters.DateTo != nil && *filters.DateTo != "" {
		conditions = append(conditions, "date <= ?")
		args = append(args, *filters.DateTo)
	}
	if filters.Status != nil && *filters.Status != "" && *filters.Status != models.AppointmentStatusAll {
		conditions = append(conditions, "status = ?")
		args = append(args, *filters.Status)
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY date, time")

	return r.queryAppointments(queryBuilder.String(), args...)
}

// GetMonthlyAppointments lists every appointment flagged as a monthly service,
// in the same (date, time) ordering as the general list.
func (r *appointmentRepository) GetMonthlyAppointments() ([]models.Appointment, error) {
	query := `SELECT ` + selectAppointmentFields + ` FROM appointments
	          WHERE is_monthly_service = 1 ORDER BY date, time`
	return r.queryAppointments(query)
}

func (r *appointmentRepository) queryAppointments(query string, args ...interface{}) ([]models.Appointment, error) {
	rows, err := r.store.DB().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying appointments: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	appointments := []models.Appointment{}
	for rows.Next() {
		appointment, scanErr := scanAppointmentRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		appointments = append(appointments, *appointment)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating appointment rows: %v", ErrDatabaseError, err)
	}
	return appointments, nil
}

// UpdateAppointment overwrites every mutable field of an existing appointment.
// created_at is immutable and left untouched.
func (r *appointmentRepository) UpdateAppointment(executor SQLExecutor, appointment *models.Appointment) error {
	query := `UPDATE appointments
	          SET client_name = ?, service_type = ?, pest_type = ?, address = ?, zone = ?, phone = ?,
	              date = ?, time = ?, price = ?, status = ?, notes = ?, is_monthly_service = ?
	          WHERE id = ?`

	result, err := executor.Exec(query,
		appointment.ClientName, appointment.ServiceType, appointment.PestType,
		appointment.Address, appointment.Zone, appointment.Phone,
		appointment.Date, appointment.Time, appointment.Price,
		appointment.Status, appointment.Notes, boolToInt(appointment.IsMonthlyService),
		appointment.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating appointment ID %d: %v", ErrDatabaseError, appointment.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating appointment ID %d: %v", ErrDatabaseError, appointment.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateAppointmentStatus is the narrow update touching only the status column.
func (r *appointmentRepository) UpdateAppointmentStatus(executor SQLExecutor, id int64, status string) error {
	result, err := executor.Exec(`UPDATE appointments SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("%w: updating status for appointment ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for status update of appointment ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAppointment removes an appointment. Hard delete; confirmation is the caller's job.
func (r *appointmentRepository) DeleteAppointment(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM appointments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting appointment ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting appointment ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
