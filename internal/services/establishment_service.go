package services

import (
	"database/sql"
	"errors"

	"facilicar_backend/internal/models"
	"facilicar_backend/internal/repositories"
)

var (
	ErrEstablishmentNotFound    = errors.New("establishment not found")
	ErrEstablishmentNameMissing = errors.New("establishment name is required")
)

// EstablishmentService manages tenant records and their settings.
type EstablishmentService struct {
	db      *sql.DB
	estRepo repositories.EstablishmentRepository
}

// NewEstablishmentService creates a new EstablishmentService.
func NewEstablishmentService(db *sql.DB, estRepo repositories.EstablishmentRepository) *EstablishmentService {
	return &EstablishmentService{db: db, estRepo: estRepo}
}

// GetEstablishments lists all tenants. Super admin only.
func (s *EstablishmentService) GetEstablishments() ([]models.Establishment, error) {
	return s.estRepo.GetEstablishments()
}

// GetEstablishment returns one tenant.
func (s *EstablishmentService) GetEstablishment(id int64) (*models.Establishment, error) {
	establishment, err := s.estRepo.GetEstablishmentByID(id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrEstablishmentNotFound
	}
	return establishment, err
}

// CreateEstablishment creates a tenant. New tenants start active.
func (s *EstablishmentService) CreateEstablishment(establishment *models.Establishment) error {
	if establishment.Name == "" {
		return ErrEstablishmentNameMissing
	}
	establishment.Active = true
	if establishment.MaxCollaborators <= 0 {
		establishment.MaxCollaborators = 5
	}
	_, err := s.estRepo.CreateEstablishment(s.db, establishment)
	return err
}

// UpdateEstablishment updates tenant settings.
func (s *EstablishmentService) UpdateEstablishment(establishment *models.Establishment) error {
	if establishment.Name == "" {
		return ErrEstablishmentNameMissing
	}
	err := s.estRepo.UpdateEstablishment(s.db, establishment)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrEstablishmentNotFound
	}
	return err
}

// SetActive enables or disables a tenant. Disabled tenants keep their data
// but their users cannot operate.
func (s *EstablishmentService) SetActive(id int64, active bool) error {
	err := s.estRepo.SetEstablishmentActive(s.db, id, active)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrEstablishmentNotFound
	}
	return err
}
