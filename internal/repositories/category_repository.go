package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"facilicar_backend/internal/models"
)

// VehicleCategoryRepository defines the interface for vehicle category
// database operations. Categories are the pricing-tier keys matched by name.
type VehicleCategoryRepository interface {
	CreateCategory(executor SQLExecutor, category *models.VehicleCategory) (int64, error)
	GetCategoryByID(id int64) (*models.VehicleCategory, error)
	GetCategoryByName(establishmentID int64, name string) (*models.VehicleCategory, error)
	GetCategories(establishmentID int64, activeOnly bool) ([]models.VehicleCategory, error)
	UpdateCategory(executor SQLExecutor, category *models.VehicleCategory) error
	DeleteCategory(executor SQLExecutor, id int64) error
}

type vehicleCategoryRepository struct {
	db *sql.DB
}

// NewVehicleCategoryRepository creates a new instance of VehicleCategoryRepository.
func NewVehicleCategoryRepository(db *sql.DB) VehicleCategoryRepository {
	return &vehicleCategoryRepository{db: db}
}

const selectCategoryFields = `id, nome, ordem, ativo, establishment_id, created_at, updated_at`

func scanCategory(row scanner) (*models.VehicleCategory, error) {
	category := &models.VehicleCategory{}
	err := row.Scan(
		&category.ID, &category.Name, &category.DisplayOrder, &category.Active,
		&category.EstablishmentID, &category.CreatedAt, &category.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning vehicle category: %v", ErrDatabaseError, err)
	}
	return category, nil
}

func (r *vehicleCategoryRepository) CreateCategory(executor SQLExecutor, category *models.VehicleCategory) (int64, error) {
	query := `INSERT INTO vehicle_categories (nome, ordem, ativo, establishment_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	currentTime := time.Now()
	category.CreatedAt = currentTime
	category.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		category.Name, category.DisplayOrder, category.Active,
		category.EstablishmentID, category.CreatedAt, category.UpdatedAt,
	).Scan(&category.ID)

	if err != nil {
		return 0, wrapWriteError(err, "creating vehicle category")
	}
	return category.ID, nil
}

func (r *vehicleCategoryRepository) GetCategoryByID(id int64) (*models.VehicleCategory, error) {
	query := "SELECT " + selectCategoryFields + " FROM vehicle_categories WHERE id = $1"
	return scanCategory(r.db.QueryRow(query, id))
}

func (r *vehicleCategoryRepository) GetCategoryByName(establishmentID int64, name string) (*models.VehicleCategory, error) {
	query := "SELECT " + selectCategoryFields + " FROM vehicle_categories WHERE establishment_id = $1 AND nome = $2"
	return scanCategory(r.db.QueryRow(query, establishmentID, name))
}

func (r *vehicleCategoryRepository) GetCategories(establishmentID int64, activeOnly bool) ([]models.VehicleCategory, error) {
	query := "SELECT " + selectCategoryFields + " FROM vehicle_categories WHERE establishment_id = $1"
	if activeOnly {
		query += " AND ativo = TRUE"
	}
	query += " ORDER BY ordem, nome"

	rows, err := r.db.Query(query, establishmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying vehicle categories: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	categories := []models.VehicleCategory{}
	for rows.Next() {
		category, scanErr := scanCategory(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		categories = append(categories, *category)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating category rows: %v", ErrDatabaseError, err)
	}
	return categories, nil
}

func (r *vehicleCategoryRepository) UpdateCategory(executor SQLExecutor, category *models.VehicleCategory) error {
	query := `UPDATE vehicle_categories SET nome = $1, ordem = $2, ativo = $3, updated_at = $4
	          WHERE id = $5
	          RETURNING updated_at`
	category.UpdatedAt = time.Now()

	err := executor.QueryRow(query,
		category.Name, category.DisplayOrder, category.Active, category.UpdatedAt, category.ID,
	).Scan(&category.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return wrapWriteError(err, fmt.Sprintf("updating vehicle category ID %d", category.ID))
	}
	return nil
}

func (r *vehicleCategoryRepository) DeleteCategory(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM vehicle_categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting vehicle category ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
