package services

import (
	"errors"
	"fmt"
	"strings"

	"fx_agenda_backend/internal/database"
	"fx_agenda_backend/internal/models"
	"fx_agenda_backend/internal/repositories"
)

// --- Custom Service Errors for Client ---
var (
	ErrClientNotFound   = errors.New("client not found")
	ErrClientValidation = errors.New("client data validation error")
)

// --- Client DTOs ---
type CreateClientRequest struct {
	Name         string  `json:"name"`
	BusinessName *string `json:"business_name"`
	Address      *string `json:"address"`
	Zone         *string `json:"zone"`
	Phone        *string `json:"phone"`
	Notes        *string `json:"notes"`
	IsMonthly    *bool   `json:"is_monthly"`
	MonthlyDay   *int    `json:"monthly_day"`
}

type UpdateClientRequest struct {
	Name         string  `json:"name"`
	BusinessName *string `json:"business_name"`
	Address      *string `json:"address"`
	Zone         *string `json:"zone"`
	Phone        *string `json:"phone"`
	Notes        *string `json:"notes"`
}

// --- ClientService Interface ---
type ClientService interface {
	CreateClient(req CreateClientRequest) (*models.Client, error)
	GetClientByID(clientID int64) (*models.Client, error)
	GetClients() ([]models.Client, error)
	UpdateClient(clientID int64, req UpdateClientRequest) (*models.Client, error)
	DeleteClient(clientID int64) error
}

// --- clientService Implementation ---
type clientService struct {
	clientRepo repositories.ClientRepository
	store      *database.Store
}

// NewClientService creates a new instance of ClientService.
func NewClientService(repo repositories.ClientRepository, store *database.Store) ClientService {
	return &clientService{
		clientRepo: repo,
		store:      store,
	}
}

// validateClientNames enforces the one presence rule the store relies on: at
// least one of contact name and business name must be non-blank.
func validateClientNames(name string, businessName *string) error {
	if strings.TrimSpace(name) != "" {
		return nil
	}
	if businessName != nil && strings.TrimSpace(*businessName) != "" {
		return nil
	}
	return fmt.Errorf("%w: provide the contact name or the business name", ErrClientValidation)
}

func validateMonthlyDay(day *int) error {
	if day != nil && (*day < 1 || *day > 31) {
		return fmt.Errorf("%w: monthly_day must be between 1 and 31", ErrClientValidation)
	}
	return nil
}

// normalizeOptional trims an optional field and collapses blanks to nil so
// they are stored as NULL.
func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (s *clientService) CreateClient(req CreateClientRequest) (*models.Client, error) {
	if err := validateClientNames(req.Name, req.BusinessName); err != nil {
		return nil, err
	}
	if err := validateMonthlyDay(req.MonthlyDay); err != nil {
		return nil, err
	}

	businessName := normalizeOptional(req.BusinessName)

	// Display fallback: a blank contact name takes the business name, and the
	// placeholder only if both were blank (rejected above).
	name := strings.TrimSpace(req.Name)
	if name == "" {
		if businessName != nil {
			name = *businessName
		} else {
			name = models.DefaultClientName
		}
	}

	client := &models.Client{
		Name:         name,
		BusinessName: businessName,
		Address:      normalizeOptional(req.Address),
		Zone:         normalizeOptional(req.Zone),
		Phone:        normalizeOptional(req.Phone),
		Notes:        normalizeOptional(req.Notes),
		MonthlyDay:   req.MonthlyDay,
	}
	if req.IsMonthly != nil {
		client.IsMonthly = *req.IsMonthly
	}

	id, err := s.clientRepo.CreateClient(s.store.DB(), client)
	if err != nil {
		return nil, fmt.Errorf("failed to create client in repository: %w", err)
	}
	return s.clientRepo.GetClientByID(id)
}

func (s *clientService) GetClientByID(clientID int64) (*models.Client, error) {
	client, err := s.clientRepo.GetClientByID(clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client by ID: %w", err)
	}
	return client, nil
}

func (s *clientService) GetClients() ([]models.Client, error) {
	clients, err := s.clientRepo.GetClients()
	if err != nil {
		return nil, fmt.Errorf("failed to get clients: %w", err)
	}
	return clients, nil
}

func (s *clientService) UpdateClient(clientID int64, req UpdateClientRequest) (*models.Client, error) {
	if err := validateClientNames(req.Name, req.BusinessName); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = models.DefaultClientName
	}

	client := &models.Client{
		ID:           clientID,
		Name:         name,
		BusinessName: normalizeOptional(req.BusinessName),
		Address:      normalizeOptional(req.Address),
		Zone:         normalizeOptional(req.Zone),
		Phone:        normalizeOptional(req.Phone),
		Notes:        normalizeOptional(req.Notes),
	}

	err := s.clientRepo.UpdateClient(s.store.DB(), client)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to update client in repository: %w", err)
	}
	return s.clientRepo.GetClientByID(clientID)
}

func (s *clientService) DeleteClient(clientID int64) error {
	err := s.clientRepo.DeleteClient(s.store.DB(), clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}
