package models

// AppointmentStatus defines the type for appointment statuses.
// The stored strings are the Spanish labels the operators see.
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "Pendiente"
	AppointmentStatusConfirmed AppointmentStatus = "Confirmado"
	AppointmentStatusDone      AppointmentStatus = "Realizado"
	AppointmentStatusBilled    AppointmentStatus = "Cobrado"
)

// AppointmentStatusAll is the filter sentinel meaning "no status restriction".
const AppointmentStatusAll = "Todos"

// IsValidAppointmentStatus checks if the provided status string is a valid AppointmentStatus.
func IsValidAppointmentStatus(status string) bool {
	switch AppointmentStatus(status) {
	case AppointmentStatusPending,
		AppointmentStatusConfirmed,
		AppointmentStatusDone,
		AppointmentStatusBilled:
		return true
	default:
		return false
	}
}

// ServiceType values conventionally chosen by presence of a business name.
// The store does not constrain the column to these.
const (
	ServiceTypeBusiness = "Negocio"
	ServiceTypeHome     = "Casa"
)

// Appointment represents a single scheduled or completed service visit.
// ClientName is a snapshot taken at creation time; later client edits do not
// propagate here, and there is no foreign key to clients.
type Appointment struct {
	ID               int64    `json:"id" db:"id"`
	ClientName       string   `json:"client_name" db:"client_name" binding:"required"`
	ServiceType      *string  `json:"service_type,omitempty" db:"service_type"`
	PestType         *string  `json:"pest_type,omitempty" db:"pest_type"`
	Address          *string  `json:"address,omitempty" db:"address"`
	Zone             *string  `json:"zone,omitempty" db:"zone"`
	Phone            *string  `json:"phone,omitempty" db:"phone"`
	Date             string   `json:"date" db:"date" binding:"required"` // YYYY-MM-DD
	Time             string   `json:"time" db:"time" binding:"required"` // HH:MM
	Price            *float64 `json:"price,omitempty" db:"price"`        // NULL or strictly positive
	Status           string   `json:"status" db:"status"`
	Notes            *string  `json:"notes,omitempty" db:"notes"`
	CreatedAt        string   `json:"created_at" db:"created_at"`
	IsMonthlyService bool     `json:"is_monthly_service" db:"is_monthly_service"`
}

// AppointmentFilters defines the available filters for querying appointments.
// All bounds are inclusive and combine with logical AND; nil means no
// restriction on that dimension.
type AppointmentFilters struct {
	DateFrom *string `form:"date_from"` // YYYY-MM-DD
	DateTo   *string `form:"date_to"`   // YYYY-MM-DD
	Status   *string `form:"status"`
}
