package services

import (
	"database/sql"
	"errors"

	"facilicar_backend/internal/models"
	"facilicar_backend/internal/repositories"
)

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrSupplierNotFound    = errors.New("supplier not found")
	ErrProductNameMissing  = errors.New("product name is required")
	ErrSupplierNameMissing = errors.New("supplier name is required")
	ErrNegativeStock       = errors.New("stock must not be negative")
)

// CatalogService manages products and suppliers.
type CatalogService struct {
	db          *sql.DB
	catalogRepo repositories.CatalogRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(db *sql.DB, catalogRepo repositories.CatalogRepository) *CatalogService {
	return &CatalogService{db: db, catalogRepo: catalogRepo}
}

// GetProducts lists products.
func (s *CatalogService) GetProducts(establishmentID int64) ([]models.Product, error) {
	return s.catalogRepo.GetProducts(establishmentID)
}

// GetProduct returns one product.
func (s *CatalogService) GetProduct(id int64) (*models.Product, error) {
	product, err := s.catalogRepo.GetProductByID(id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	return product, err
}

// CreateProduct creates a product, validating its supplier when given.
func (s *CatalogService) CreateProduct(product *models.Product) error {
	if err := s.validateProduct(product); err != nil {
		return err
	}
	_, err := s.catalogRepo.CreateProduct(s.db, product)
	return err
}

// UpdateProduct updates a product.
func (s *CatalogService) UpdateProduct(product *models.Product) error {
	if err := s.validateProduct(product); err != nil {
		return err
	}
	err := s.catalogRepo.UpdateProduct(s.db, product)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrProductNotFound
	}
	return err
}

func (s *CatalogService) validateProduct(product *models.Product) error {
	if product.Name == "" {
		return ErrProductNameMissing
	}
	if product.Price.IsNegative() {
		return ErrNegativePrice
	}
	if product.Stock < 0 {
		return ErrNegativeStock
	}
	if product.SupplierID != nil {
		supplier, err := s.catalogRepo.GetSupplierByID(*product.SupplierID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrSupplierNotFound
			}
			return err
		}
		if supplier.EstablishmentID != product.EstablishmentID {
			return ErrSupplierNotFound
		}
	}
	return nil
}

// DeleteProduct removes a product.
func (s *CatalogService) DeleteProduct(id int64) error {
	err := s.catalogRepo.DeleteProduct(s.db, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrProductNotFound
	}
	return err
}

// GetSuppliers lists suppliers.
func (s *CatalogService) GetSuppliers(establishmentID int64) ([]models.Supplier, error) {
	return s.catalogRepo.GetSuppliers(establishmentID)
}

// CreateSupplier creates a supplier.
func (s *CatalogService) CreateSupplier(supplier *models.Supplier) error {
	if supplier.Name == "" {
		return ErrSupplierNameMissing
	}
	_, err := s.catalogRepo.CreateSupplier(s.db, supplier)
	return err
}

// UpdateSupplier updates a supplier.
func (s *CatalogService) UpdateSupplier(supplier *models.Supplier) error {
	if supplier.Name == "" {
		return ErrSupplierNameMissing
	}
	err := s.catalogRepo.UpdateSupplier(s.db, supplier)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrSupplierNotFound
	}
	return err
}

// DeleteSupplier removes a supplier.
func (s *CatalogService) DeleteSupplier(id int64) error {
	err := s.catalogRepo.DeleteSupplier(s.db, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrSupplierNotFound
	}
	return err
}
