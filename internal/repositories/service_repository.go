package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"facilicar_backend/internal/models"

	"github.com/shopspring/decimal"
)

// ServiceRepository defines the interface for service catalog and price
// matrix database operations.
type ServiceRepository interface {
	CreateService(executor SQLExecutor, service *models.Service) (int64, error)
	GetServiceByID(id int64) (*models.Service, error)
	GetServices(establishmentID int64, activeOnly bool) ([]models.Service, error)
	GetServicesWithPrices(establishmentID int64) ([]models.Service, error)
	UpdateService(executor SQLExecutor, service *models.Service) error
	DeleteService(executor SQLExecutor, id int64) error

	UpsertServicePrice(executor SQLExecutor, price *models.ServicePrice) error
	GetPricesByCategory(establishmentID int64, category string) (map[int64]decimal.Decimal, error)
	DeletePricesByService(executor SQLExecutor, serviceID int64) error
}

type serviceRepository struct {
	db *sql.DB
}

// NewServiceRepository creates a new instance of ServiceRepository.
func NewServiceRepository(db *sql.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

const selectServiceFields = `id, nome, descricao, duracao_estimada, ativo, establishment_id, created_at, updated_at`

func scanService(row scanner) (*models.Service, error) {
	service := &models.Service{}
	err := row.Scan(
		&service.ID, &service.Name, &service.Description, &service.EstimatedDuration,
		&service.Active, &service.EstablishmentID, &service.CreatedAt, &service.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning service: %v", ErrDatabaseError, err)
	}
	return service, nil
}

func (r *serviceRepository) CreateService(executor SQLExecutor, service *models.Service) (int64, error) {
	query := `INSERT INTO services (nome, descricao, duracao_estimada, ativo, establishment_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`

	currentTime := time.Now()
	service.CreatedAt = currentTime
	service.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		service.Name, service.Description, service.EstimatedDuration, service.Active,
		service.EstablishmentID, service.CreatedAt, service.UpdatedAt,
	).Scan(&service.ID)

	if err != nil {
		return 0, wrapWriteError(err, "creating service")
	}
	return service.ID, nil
}

func (r *serviceRepository) GetServiceByID(id int64) (*models.Service, error) {
	query := "SELECT " + selectServiceFields + " FROM services WHERE id = $1"
	return scanService(r.db.QueryRow(query, id))
}

func (r *serviceRepository) GetServices(establishmentID int64, activeOnly bool) ([]models.Service, error) {
	query := "SELECT " + selectServiceFields + " FROM services WHERE establishment_id = $1"
	if activeOnly {
		query += " AND ativo = TRUE"
	}
	query += " ORDER BY nome"

	rows, err := r.db.Query(query, establishmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying services: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	services := []models.Service{}
	for rows.Next() {
		service, scanErr := scanService(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		services = append(services, *service)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating service rows: %v", ErrDatabaseError, err)
	}
	return services, nil
}

// GetServicesWithPrices loads all services with their full per-category
// price rows attached, for the price-matrix editing screen.
func (r *serviceRepository) GetServicesWithPrices(establishmentID int64) ([]models.Service, error) {
	services, err := r.GetServices(establishmentID, false)
	if err != nil {
		return nil, err
	}
	if len(services) == 0 {
		return services, nil
	}

	index := map[int64]int{}
	for i := range services {
		services[i].Prices = []models.ServicePrice{}
		index[services[i].ID] = i
	}

	query := `SELECT id, service_id, categoria, valor, establishment_id, created_at, updated_at
	          FROM service_prices WHERE establishment_id = $1 ORDER BY categoria`
	rows, err := r.db.Query(query, establishmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying service prices: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		price := models.ServicePrice{}
		err = rows.Scan(&price.ID, &price.ServiceID, &price.Category, &price.Value,
			&price.EstablishmentID, &price.CreatedAt, &price.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning service price: %v", ErrDatabaseError, err)
		}
		if i, ok := index[price.ServiceID]; ok {
			services[i].Prices = append(services[i].Prices, price)
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating price rows: %v", ErrDatabaseError, err)
	}
	return services, nil
}

func (r *serviceRepository) UpdateService(executor SQLExecutor, service *models.Service) error {
	query := `UPDATE services SET nome = $1, descricao = $2, duracao_estimada = $3, ativo = $4, updated_at = $5
	          WHERE id = $6
	          RETURNING updated_at`
	service.UpdatedAt = time.Now()

	err := executor.QueryRow(query,
		service.Name, service.Description, service.EstimatedDuration, service.Active,
		service.UpdatedAt, service.ID,
	).Scan(&service.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return wrapWriteError(err, fmt.Sprintf("updating service ID %d", service.ID))
	}
	return nil
}

func (r *serviceRepository) DeleteService(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting service ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertServicePrice writes one cell of the (service, category) price
// matrix, inserting or overwriting in place.
func (r *serviceRepository) UpsertServicePrice(executor SQLExecutor, price *models.ServicePrice) error {
	query := `INSERT INTO service_prices (service_id, categoria, valor, establishment_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $5)
	          ON CONFLICT (service_id, categoria) DO UPDATE SET valor = EXCLUDED.valor, updated_at = EXCLUDED.updated_at
	          RETURNING id`

	now := time.Now()
	err := executor.QueryRow(query,
		price.ServiceID, price.Category, price.Value, price.EstablishmentID, now,
	).Scan(&price.ID)

	if err != nil {
		return wrapWriteError(err, fmt.Sprintf("upserting price for service %d category %s", price.ServiceID, price.Category))
	}
	return nil
}

// GetPricesByCategory returns the service_id -> price map for one category
// name, the row-set the appointment creation flow prices against.
func (r *serviceRepository) GetPricesByCategory(establishmentID int64, category string) (map[int64]decimal.Decimal, error) {
	query := `SELECT service_id, valor FROM service_prices WHERE establishment_id = $1 AND categoria = $2`
	rows, err := r.db.Query(query, establishmentID, category)
	if err != nil {
		return nil, fmt.Errorf("%w: querying prices for category %s: %v", ErrDatabaseError, category, err)
	}
	defer rows.Close()

	prices := map[int64]decimal.Decimal{}
	for rows.Next() {
		var serviceID int64
		var value decimal.Decimal
		if err = rows.Scan(&serviceID, &value); err != nil {
			return nil, fmt.Errorf("%w: scanning price row: %v", ErrDatabaseError, err)
		}
		prices[serviceID] = value
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating price rows: %v", ErrDatabaseError, err)
	}
	return prices, nil
}

func (r *serviceRepository) DeletePricesByService(executor SQLExecutor, serviceID int64) error {
	_, err := executor.Exec(`DELETE FROM service_prices WHERE service_id = $1`, serviceID)
	if err != nil {
		return fmt.Errorf("%w: deleting prices for service ID %d: %v", ErrDatabaseError, serviceID, err)
	}
	return nil
}
