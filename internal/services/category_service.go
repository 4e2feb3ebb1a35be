package services

import (
	"database/sql"
	"errors"

	"facilicar_backend/internal/models"
	"facilicar_backend/internal/repositories"
	"facilicar_backend/pkg/utils"
)

var (
	ErrCategoryNotFound    = errors.New("vehicle category not found")
	ErrCategoryNameMissing = errors.New("category name is required")
	ErrCategoryNameTaken   = errors.New("category name already exists")
)

// CategoryService manages vehicle categories, the name-keyed pricing tiers.
type CategoryService struct {
	db           *sql.DB
	categoryRepo repositories.VehicleCategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(db *sql.DB, categoryRepo repositories.VehicleCategoryRepository) *CategoryService {
	return &CategoryService{db: db, categoryRepo: categoryRepo}
}

// GetCategories lists the establishment's categories ordered by ordem.
func (s *CategoryService) GetCategories(establishmentID int64, activeOnly bool) ([]models.VehicleCategory, error) {
	return s.categoryRepo.GetCategories(establishmentID, activeOnly)
}

// GetCategory returns one category.
func (s *CategoryService) GetCategory(id int64) (*models.VehicleCategory, error) {
	category, err := s.categoryRepo.GetCategoryByID(id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrCategoryNotFound
	}
	return category, err
}

// CreateCategory creates a pricing tier. Names are normalized and unique per
// establishment because service prices reference them as strings.
func (s *CategoryService) CreateCategory(category *models.VehicleCategory) error {
	category.Name = utils.NormalizeCategoryName(category.Name)
	if category.Name == "" {
		return ErrCategoryNameMissing
	}
	if _, err := s.categoryRepo.GetCategoryByName(category.EstablishmentID, category.Name); err == nil {
		return ErrCategoryNameTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	_, err := s.categoryRepo.CreateCategory(s.db, category)
	if errors.Is(err, repositories.ErrDuplicateKey) {
		return ErrCategoryNameTaken
	}
	return err
}

// UpdateCategory updates a category. Renames are guarded against collisions
// with another category; price rows keyed on the old name are left as-is,
// which orphans them until re-priced.
func (s *CategoryService) UpdateCategory(category *models.VehicleCategory) error {
	category.Name = utils.NormalizeCategoryName(category.Name)
	if category.Name == "" {
		return ErrCategoryNameMissing
	}
	if existing, err := s.categoryRepo.GetCategoryByName(category.EstablishmentID, category.Name); err == nil {
		if existing.ID != category.ID {
			return ErrCategoryNameTaken
		}
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	err := s.categoryRepo.UpdateCategory(s.db, category)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrCategoryNotFound
	}
	return err
}

// DeleteCategory removes a category.
func (s *CategoryService) DeleteCategory(id int64) error {
	err := s.categoryRepo.DeleteCategory(s.db, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrCategoryNotFound
	}
	return err
}
