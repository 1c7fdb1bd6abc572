package models

// Client represents a contact or business the fumigation service works for.
// It is independent of any visit: appointments only copy its display name.
type Client struct {
	ID           int64   `json:"id" db:"id"`
	Name         string  `json:"name" db:"name" binding:"required"`
	BusinessName *string `json:"business_name,omitempty" db:"business_name"`
	Address      *string `json:"address,omitempty" db:"address"`
	Zone         *string `json:"zone,omitempty" db:"zone"`
	Phone        *string `json:"phone,omitempty" db:"phone"`
	Notes        *string `json:"notes,omitempty" db:"notes"`
	IsMonthly    bool    `json:"is_monthly" db:"is_monthly"`
	MonthlyDay   *int    `json:"monthly_day,omitempty" db:"monthly_day"`
}

// DefaultClientName is stored when neither a contact nor a business name
// survives normalization. Callers are expected to reject fully blank input
// before reaching the store.
const DefaultClientName = "Cliente sin nombre"
