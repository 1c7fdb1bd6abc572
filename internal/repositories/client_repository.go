package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"fx_agenda_backend/internal/database"
	"fx_agenda_backend/internal/models"
)

// ClientRepository defines the interface for client-related database operations.
type ClientRepository interface {
	CreateClient(executor SQLExecutor, client *models.Client) (int64, error)
	GetClientByID(id int64) (*models.Client, error)
	GetClients() ([]models.Client, error)
	UpdateClient(executor SQLExecutor, client *models.Client) error
	DeleteClient(executor SQLExecutor, id int64) error
}

type clientRepository struct {
	store *database.Store
}

// NewClientRepository creates a new instance of ClientRepository.
func NewClientRepository(store *database.Store) ClientRepository {
	return &clientRepository{store: store}
}

const selectClientFields = `id, name, business_name, address, zone, phone, notes, is_monthly, monthly_day`

// scanClientRow scans one clients row, converting nullable columns.
func scanClientRow(row scanner) (*models.Client, error) {
	var client models.Client
	var businessName, address, zone, phone, notes sql.NullString
	var isMonthly, monthlyDay sql.NullInt64

	err := row.Scan(
		&client.ID, &client.Name, &businessName, &address, &zone, &phone, &notes,
		&isMonthly, &monthlyDay,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning client: %v", ErrDatabaseError, err)
	}

	if businessName.Valid {
		client.BusinessName = &businessName.String
	}
	if address.Valid {
		client.Address = &address.String
	}
	if zone.Valid {
		client.Zone = &zone.String
	}
	if phone.Valid {
		client.Phone = &phone.String
	}
	if notes.Valid {
		client.Notes = &notes.String
	}
	client.IsMonthly = isMonthly.Valid && isMonthly.Int64 == 1
	if monthlyDay.Valid {
		day := int(monthlyDay.Int64)
		client.MonthlyDay = &day
	}
	return &client, nil
}

// CreateClient inserts a new client. Duplicates are permitted: disambiguation
// is the matcher's job at query time, not a storage constraint.
func (r *clientRepository) CreateClient(executor SQLExecutor, client *models.Client) (int64, error) {
	query := `INSERT INTO clients (name, business_name, address, zone, phone, notes, is_monthly, monthly_day)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := executor.Exec(query,
		client.Name, client.BusinessName, client.Address, client.Zone,
		client.Phone, client.Notes, boolToInt(client.IsMonthly), client.MonthlyDay,
	)
	if err != nil {
		return 0, fmt.Errorf("%w: creating client: %v", ErrDatabaseError, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: reading new client id: %v", ErrDatabaseError, err)
	}
	client.ID = id
	return id, nil
}

// GetClientByID retrieves a client by their ID.
func (r *clientRepository) GetClientByID(id int64) (*models.Client, error) {
	query := `SELECT ` + selectClientFields + ` FROM clients WHERE id = ?`
	client, err := scanClientRow(r.store.DB().QueryRow(query, id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting client by ID %d: %w", id, err)
	}
	return client, nil
}

// GetClients retrieves all clients ordered by (business_name, name) ascending.
// In SQLite, NULL and empty business names sort first.
func (r *clientRepository) GetClients() ([]models.Client, error) {
	query := `SELECT ` + selectClientFields + ` FROM clients ORDER BY business_name, name`

	rows, err := r.store.DB().Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying clients: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	clients := []models.Client{}
	for rows.Next() {
		client, scanErr := scanClientRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		clients = append(clients, *client)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating client rows: %v", ErrDatabaseError, err)
	}
	return clients, nil
}

// UpdateClient overwrites the six mutable fields of an existing client.
// The monthly flags are set at creation and not part of the edit surface.
func (r *clientRepository) UpdateClient(executor SQLExecutor, client *models.Client) error {
	query := `UPDATE clients
	          SET name = ?, business_name = ?, address = ?, zone = ?, phone = ?, notes = ?
	          WHERE id = ?`

	result, err := executor.Exec(query,
		client.Name, client.BusinessName, client.Address, client.Zone,
		client.Phone, client.Notes, client.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating client ID %d: %v", ErrDatabaseError, client.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating client ID %d: %v", ErrDatabaseError, client.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteClient removes a client. Hard delete; confirmation is the caller's job.
func (r *clientRepository) DeleteClient(executor SQLExecutor, id int64) error {
	query := `DELETE FROM clients WHERE id = ?`
	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting client ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting client ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
