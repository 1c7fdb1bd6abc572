package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fx_agenda_backend/internal/database"
	"fx_agenda_backend/internal/models"
	"fx_agenda_backend/internal/repositories"
)

// --- Custom Service Errors for Appointment ---
var (
	ErrAppointmentNotFound   = errors.New("appointment not found")
	ErrAppointmentValidation = errors.New("appointment data validation error")
	ErrDateFormat            = errors.New("invalid date format, please use YYYY-MM-DD")
	ErrTimeFormat            = errors.New("invalid time format, please use HH:MM")
	ErrInvalidStatus         = errors.New("invalid appointment status")
)

const (
	dateLayout      = "2006-01-02"
	timeLayout      = "15:04"
	createdAtLayout = "2006-01-02T15:04:05"
)

// --- Appointment DTOs ---
type CreateAppointmentRequest struct {
	ClientName       string   `json:"client_name" binding:"required"`
	ServiceType      *string  `json:"service_type"`
	PestType         *string  `json:"pest_type"`
	Address          *string  `json:"address"`
	Zone             *string  `json:"zone"`
	Phone            *string  `json:"phone"`
	Date             string   `json:"date" binding:"required"`
	Time             string   `json:"time" binding:"required"`
	Price            *float64 `json:"price"`
	Status           string   `json:"status"`
	Notes            *string  `json:"notes"`
	IsMonthlyService *bool    `json:"is_monthly_service"`
}

// UpdateAppointmentRequest carries the full field set: updates are complete
// overwrites, mirroring the edit form that resubmits every value.
type UpdateAppointmentRequest struct {
	ClientName       string   `json:"client_name" binding:"required"`
	ServiceType      *string  `json:"service_type"`
	PestType         *string  `json:"pest_type"`
	Address          *string  `json:"address"`
	Zone             *string  `json:"zone"`
	Phone            *string  `json:"phone"`
	Date             string   `json:"date" binding:"required"`
	Time             string   `json:"time" binding:"required"`
	Price            *float64 `json:"price"`
	Status           string   `json:"status"`
	Notes            *string  `json:"notes"`
	IsMonthlyService *bool    `json:"is_monthly_service"`
}

// --- AppointmentService Interface ---
type AppointmentService interface {
	CreateAppointment(req CreateAppointmentRequest) (*models.Appointment, error)
	GetAppointmentByID(appointmentID int64) (*models.Appointment, error)
	GetAppointments(filters models.AppointmentFilters) ([]models.Appointment, error)
	GetMonthlyAppointments() ([]models.Appointment, error)
	ListWeek(anyDay string) ([]models.Appointment, string, string, error)
	UpdateAppointment(appointmentID int64, req UpdateAppointmentRequest) (*models.Appointment, error)
	UpdateStatus(appointmentID int64, newStatus string) (*models.Appointment, error)
	DeleteAppointment(appointmentID int64) error
}

// --- appointmentService Implementation ---
type appointmentService struct {
	appointmentRepo repositories.AppointmentRepository
	store           *database.Store
	now             func() time.Time
}

// NewAppointmentService creates a new instance of AppointmentService.
func NewAppointmentService(repo repositories.AppointmentRepository, store *database.Store) AppointmentService {
	return &appointmentService{
		appointmentRepo: repo,
		store:           store,
		now:             time.Now,
	}
}

// normalizePrice collapses missing, zero and negative prices to "absent".
// A stored price is NULL or strictly positive, never zero.
func normalizePrice(price *float64) *float64 {
	if price == nil || *price <= 0 {
		return nil
	}
	return price
}

func validateDateTime(dateStr, timeStr string) error {
	if _, err := time.Parse(dateLayout, dateStr); err != nil {
		return fmt.Errorf("%w: %q", ErrDateFormat, dateStr)
	}
	if _, err := time.Parse(timeLayout, timeStr); err != nil {
		return fmt.Errorf("%w: %q", ErrTimeFormat, timeStr)
	}
	return nil
}

func resolveStatus(status string) (string, error) {
	if strings.TrimSpace(status) == "" {
		return string(models.AppointmentStatusPending), nil
	}
	if !models.IsValidAppointmentStatus(status) {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return status, nil
}

func (s *appointmentService) buildAppointment(clientName string, req UpdateAppointmentRequest) (*models.Appointment, error) {
	if strings.TrimSpace(clientName) == "" {
		return nil, fmt.Errorf("%w: client_name cannot be empty", ErrAppointmentValidation)
	}
	if err := validateDateTime(req.Date, req.Time); err != nil {
		return nil, err
	}
	status, err := resolveStatus(req.Status)
	if err != nil {
		return nil, err
	}

	appointment := &models.Appointment{
		ClientName:  strings.TrimSpace(clientName),
		ServiceType: normalizeOptional(req.ServiceType),
		PestType:    normalizeOptional(req.PestType),
		Address:     normalizeOptional(req.Address),
		Zone:        normalizeOptional(req.Zone),
		Phone:       normalizeOptional(req.Phone),
		Date:        req.Date,
		Time:        req.Time,
		Price:       normalizePrice(req.Price),
		Status:      status,
		Notes:       normalizeOptional(req.Notes),
	}
	if req.IsMonthlyService != nil {
		appointment.IsMonthlyService = *req.IsMonthlyService
	}
	return appointment, nil
}

func (s *appointmentService) CreateAppointment(req CreateAppointmentRequest) (*models.Appointment, error) {
	appointment, err := s.buildAppointment(req.ClientName, UpdateAppointmentRequest(req))
	if err != nil {
		return nil, err
	}
	appointment.CreatedAt = s.now().Format(createdAtLayout)

	id, err := s.appointmentRepo.CreateAppointment(s.store.DB(), appointment)
	if err != nil {
		return nil, fmt.Errorf("failed to create appointment in repository: %w", err)
	}
	return s.appointmentRepo.GetAppointmentByID(id)
}

func (s *appointmentService) GetAppointmentByID(appointmentID int64) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.GetAppointmentByID(appointmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to get appointment by ID: %w", err)
	}
	return appointment, nil
}

func (s *appointmentService) GetAppointments(filters models.AppointmentFilters) ([]models.Appointment, error) {
	if filters.DateFrom != nil && *filters.DateFrom != "" {
		if _, err := time.Parse(dateLayout, *filters.DateFrom); err != nil {
			return nil, fmt.Errorf("date_from: %w", ErrDateFormat)
		}
	}
	if filters.DateTo != nil && *filters.DateTo != "" {
		if _, err := time.Parse(dateLayout, *filters.DateTo); err != nil {
			return nil, fmt.Errorf("date_to: %w", ErrDateFormat)
		}
	}

	appointments, err := s.appointmentRepo.GetAppointments(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointments: %w", err)
	}
	return appointments, nil
}

func (s *appointmentService) GetMonthlyAppointments() ([]models.Appointment, error) {
	appointments, err := s.appointmentRepo.GetMonthlyAppointments()
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly appointments: %w", err)
	}
	return appointments, nil
}

// WeekBounds resolves the Monday..Sunday range containing day.
func WeekBounds(day time.Time) (time.Time, time.Time) {
	offset := (int(day.Weekday()) + 6) % 7 // Monday-based weekday index
	monday := day.AddDate(0, 0, -offset)
	sunday := monday.AddDate(0, 0, 6)
	return monday, sunday
}

// ListWeek lists the appointments of the calendar week containing anyDay and
// returns the resolved inclusive bounds alongside them.
func (s *appointmentService) ListWeek(anyDay string) ([]models.Appointment, string, string, error) {
	day, err := time.Parse(dateLayout, anyDay)
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: %q", ErrDateFormat, anyDay)
	}
	monday, sunday := WeekBounds(day)
	from := monday.Format(dateLayout)
	to := sunday.Format(dateLayout)

	appointments, err := s.appointmentRepo.GetAppointments(models.AppointmentFilters{
		DateFrom: &from,
		DateTo:   &to,
	})
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to get appointments for week: %w", err)
	}
	return appointments, from, to, nil
}

func (s *appointmentService) UpdateAppointment(appointmentID int64, req UpdateAppointmentRequest) (*models.Appointment, error) {
	appointment, err := s.buildAppointment(req.ClientName, req)
	if err != nil {
		return nil, err
	}
	appointment.ID = appointmentID

	err = s.appointmentRepo.UpdateAppointment(s.store.DB(), appointment)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to update appointment in repository: %w", err)
	}
	return s.appointmentRepo.GetAppointmentByID(appointmentID)
}

func (s *appointmentService) UpdateStatus(appointmentID int64, newStatus string) (*models.Appointment, error) {
	if !models.IsValidAppointmentStatus(newStatus) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, newStatus)
	}

	err := s.appointmentRepo.UpdateAppointmentStatus(s.store.DB(), appointmentID, newStatus)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to update appointment status: %w", err)
	}
	return s.appointmentRepo.GetAppointmentByID(appointmentID)
}

func (s *appointmentService) DeleteAppointment(appointmentID int64) error {
	err := s.appointmentRepo.DeleteAppointment(s.store.DB(), appointmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrAppointmentNotFound
		}
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	return nil
}
