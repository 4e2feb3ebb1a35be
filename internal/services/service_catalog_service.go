package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"facilicar_backend/internal/models"
	"facilicar_backend/internal/repositories"
	"facilicar_backend/pkg/utils"
)

var (
	ErrServiceNotFound    = errors.New("service not found")
	ErrServiceNameMissing = errors.New("service name is required")
	ErrUnknownCategory    = errors.New("unknown vehicle category")
	ErrNegativePrice      = errors.New("price must not be negative")
)

// ServiceCatalogService manages the service catalog and the per-category
// price matrix.
type ServiceCatalogService struct {
	db           *sql.DB
	serviceRepo  repositories.ServiceRepository
	categoryRepo repositories.VehicleCategoryRepository
}

// NewServiceCatalogService creates a new ServiceCatalogService.
func NewServiceCatalogService(db *sql.DB, serviceRepo repositories.ServiceRepository, categoryRepo repositories.VehicleCategoryRepository) *ServiceCatalogService {
	return &ServiceCatalogService{db: db, serviceRepo: serviceRepo, categoryRepo: categoryRepo}
}

// PriceInput is one cell of a price matrix write.
type PriceInput struct {
	Category string          `json:"categoria" binding:"required"`
	Value    decimal.Decimal `json:"valor"`
}

// GetServices lists services; with prices attached when withPrices is set.
func (s *ServiceCatalogService) GetServices(establishmentID int64, activeOnly, withPrices bool) ([]models.Service, error) {
	if withPrices {
		return s.serviceRepo.GetServicesWithPrices(establishmentID)
	}
	return s.serviceRepo.GetServices(establishmentID, activeOnly)
}

// GetService returns one service.
func (s *ServiceCatalogService) GetService(id int64) (*models.Service, error) {
	service, err := s.serviceRepo.GetServiceByID(id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrServiceNotFound
	}
	return service, err
}

// CreateService creates a catalog entry and optionally its initial price
// rows in one transaction. Prices for categories the establishment does not
// have are rejected before anything is written.
func (s *ServiceCatalogService) CreateService(service *models.Service, prices []PriceInput) error {
	if service.Name == "" {
		return ErrServiceNameMissing
	}
	if err := s.validatePrices(service.EstablishmentID, prices); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err = s.serviceRepo.CreateService(tx, service); err != nil {
		return err
	}
	if err = s.writePrices(tx, service, prices); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdateService updates the catalog entry and replaces any submitted price
// cells. Cells not submitted keep their current value.
func (s *ServiceCatalogService) UpdateService(service *models.Service, prices []PriceInput) error {
	if service.Name == "" {
		return ErrServiceNameMissing
	}
	if err := s.validatePrices(service.EstablishmentID, prices); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if err = s.serviceRepo.UpdateService(tx, service); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrServiceNotFound
		}
		return err
	}
	if err = s.writePrices(tx, service, prices); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *ServiceCatalogService) validatePrices(establishmentID int64, prices []PriceInput) error {
	for _, price := range prices {
		if price.Value.IsNegative() {
			return ErrNegativePrice
		}
		name := utils.NormalizeCategoryName(price.Category)
		if _, err := s.categoryRepo.GetCategoryByName(establishmentID, name); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return fmt.Errorf("%w: %s", ErrUnknownCategory, price.Category)
			}
			return err
		}
	}
	return nil
}

func (s *ServiceCatalogService) writePrices(executor repositories.SQLExecutor, service *models.Service, prices []PriceInput) error {
	for _, price := range prices {
		row := &models.ServicePrice{
			ServiceID:       service.ID,
			Category:        utils.NormalizeCategoryName(price.Category),
			Value:           price.Value,
			EstablishmentID: service.EstablishmentID,
		}
		if err := s.serviceRepo.UpsertServicePrice(executor, row); err != nil {
			return err
		}
	}
	return nil
}

// DeleteService removes a service and its price rows in one transaction.
func (s *ServiceCatalogService) DeleteService(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if err = s.serviceRepo.DeletePricesByService(tx, id); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	if err = s.serviceRepo.DeleteService(tx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrServiceNotFound
		}
		return err
	}
	return tx.Commit()
}

// PricedServicesForCategory resolves the active catalog against one
// category's price set. Services without a price cell come back with
// Available=false so the caller can render them disabled.
func (s *ServiceCatalogService) PricedServicesForCategory(establishmentID int64, category string) ([]models.PricedService, error) {
	servicesList, err := s.serviceRepo.GetServices(establishmentID, true)
	if err != nil {
		return nil, err
	}
	priceByService, err := s.serviceRepo.GetPricesByCategory(establishmentID, utils.NormalizeCategoryName(category))
	if err != nil {
		return nil, err
	}

	priced := make([]models.PricedService, 0, len(servicesList))
	for _, service := range servicesList {
		entry := models.PricedService{
			ID:          service.ID,
			Name:        service.Name,
			Description: service.Description,
		}
		if value, ok := priceByService[service.ID]; ok {
			v := value
			entry.Value = &v
			entry.Available = true
		}
		priced = append(priced, entry)
	}
	return priced, nil
}
