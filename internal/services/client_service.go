package services

import (
	"database/sql"
	"errors"
	"fmt"

	"facilicar_backend/internal/models"
	"facilicar_backend/internal/repositories"
	"facilicar_backend/pkg/utils"
)

var (
	ErrClientNotFound    = errors.New("client not found")
	ErrVehicleNotFound   = errors.New("vehicle not found")
	ErrPlateTaken        = errors.New("plate already registered for another vehicle")
	ErrClientNameMissing = errors.New("client name is required")
	ErrPlateMissing      = errors.New("vehicle plate is required")
)

// ClientService handles client and vehicle operations, including the
// combined client-with-vehicle creation used by the appointment flow.
type ClientService struct {
	db         *sql.DB
	clientRepo repositories.ClientRepository
}

// NewClientService creates a new ClientService.
func NewClientService(db *sql.DB, clientRepo repositories.ClientRepository) *ClientService {
	return &ClientService{db: db, clientRepo: clientRepo}
}

// VehicleInput is the vehicle part of client payloads.
type VehicleInput struct {
	Plate    string  `json:"placa" binding:"required"`
	Model    *string `json:"modelo"`
	Brand    *string `json:"marca"`
	Color    *string `json:"cor"`
	Category *string `json:"categoria"`
}

// ClientWithVehicleRequest creates a client and their first vehicle in one
// call, as the appointment creation flow does when the plate is unknown.
type ClientWithVehicleRequest struct {
	Name    string       `json:"nome" binding:"required"`
	Phone   string       `json:"telefone"`
	Email   *string      `json:"email"`
	TaxID   *string      `json:"cpf_cnpj"`
	Vehicle VehicleInput `json:"vehicle" binding:"required"`
}

// GetClients lists the establishment's clients with their vehicles eagerly
// attached. A non-empty search narrows by case-insensitive substring over
// name, phone, email and plates.
func (s *ClientService) GetClients(establishmentID int64, search string) ([]models.Client, error) {
	clients, err := s.clientRepo.GetClientsWithVehicles(establishmentID)
	if err != nil {
		return nil, err
	}
	if search == "" {
		return clients, nil
	}

	filtered := []models.Client{}
	for _, client := range clients {
		if clientMatches(client, search) {
			filtered = append(filtered, client)
		}
	}
	return filtered, nil
}

func clientMatches(client models.Client, search string) bool {
	if utils.ContainsFold(client.Name, search) || utils.ContainsFold(client.Phone, search) {
		return true
	}
	if client.Email != nil && utils.ContainsFold(*client.Email, search) {
		return true
	}
	for _, vehicle := range client.Vehicles {
		if utils.ContainsFold(vehicle.Plate, search) {
			return true
		}
	}
	return false
}

// GetClient returns one client with vehicles.
func (s *ClientService) GetClient(id int64) (*models.Client, error) {
	client, err := s.clientRepo.GetClientByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	vehicles, err := s.clientRepo.GetVehiclesByClient(client.ID)
	if err != nil {
		return nil, err
	}
	client.Vehicles = vehicles
	return client, nil
}

// CreateClient creates a bare client without vehicles.
func (s *ClientService) CreateClient(client *models.Client) error {
	if client.Name == "" {
		return ErrClientNameMissing
	}
	_, err := s.clientRepo.CreateClient(s.db, client)
	return err
}

// CreateClientWithVehicle creates the client and their vehicle atomically so
// a vehicle write failure never leaves an orphaned client behind.
func (s *ClientService) CreateClientWithVehicle(establishmentID int64, req ClientWithVehicleRequest) (*models.Client, error) {
	if req.Name == "" {
		return nil, ErrClientNameMissing
	}
	plate := utils.NormalizePlate(req.Vehicle.Plate)
	if plate == "" {
		return nil, ErrPlateMissing
	}

	if existing, err := s.clientRepo.GetVehicleByPlate(establishmentID, plate); err == nil && existing != nil {
		return nil, ErrPlateTaken
	} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	client := &models.Client{
		Name:            req.Name,
		Phone:           req.Phone,
		Email:           req.Email,
		TaxID:           req.TaxID,
		EstablishmentID: establishmentID,
	}
	if _, err = s.clientRepo.CreateClient(tx, client); err != nil {
		return nil, err
	}

	vehicle := &models.Vehicle{
		ClientID:        client.ID,
		Plate:           plate,
		Model:           req.Vehicle.Model,
		Brand:           req.Vehicle.Brand,
		Color:           req.Vehicle.Color,
		Category:        req.Vehicle.Category,
		EstablishmentID: establishmentID,
	}
	if _, err = s.clientRepo.CreateVehicle(tx, vehicle); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrPlateTaken
		}
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	client.Vehicles = []models.Vehicle{*vehicle}
	return client, nil
}

// UpdateClient updates the client's own fields; vehicles are managed
// separately.
func (s *ClientService) UpdateClient(client *models.Client) error {
	if client.Name == "" {
		return ErrClientNameMissing
	}
	err := s.clientRepo.UpdateClient(s.db, client)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrClientNotFound
	}
	return err
}

// DeleteClient removes the client; vehicles cascade at the database level.
func (s *ClientService) DeleteClient(id int64) error {
	err := s.clientRepo.DeleteClient(s.db, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrClientNotFound
	}
	return err
}

// CreateVehicle adds a vehicle to an existing client.
func (s *ClientService) CreateVehicle(vehicle *models.Vehicle) error {
	vehicle.Plate = utils.NormalizePlate(vehicle.Plate)
	if vehicle.Plate == "" {
		return ErrPlateMissing
	}
	if _, err := s.clientRepo.GetClientByID(vehicle.ClientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrClientNotFound
		}
		return err
	}
	_, err := s.clientRepo.CreateVehicle(s.db, vehicle)
	if errors.Is(err, repositories.ErrDuplicateKey) {
		return ErrPlateTaken
	}
	return err
}

// UpdateVehicle updates a vehicle's fields, normalizing the plate.
func (s *ClientService) UpdateVehicle(vehicle *models.Vehicle) error {
	vehicle.Plate = utils.NormalizePlate(vehicle.Plate)
	if vehicle.Plate == "" {
		return ErrPlateMissing
	}
	err := s.clientRepo.UpdateVehicle(s.db, vehicle)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrVehicleNotFound
	}
	if errors.Is(err, repositories.ErrDuplicateKey) {
		return ErrPlateTaken
	}
	return err
}

// DeleteVehicle removes a vehicle.
func (s *ClientService) DeleteVehicle(id int64) error {
	err := s.clientRepo.DeleteVehicle(s.db, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrVehicleNotFound
	}
	return err
}
