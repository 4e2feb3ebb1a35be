package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"facilicar_backend/internal/models"
)

// EstablishmentRepository defines the interface for establishment (tenant)
// database operations.
type EstablishmentRepository interface {
	CreateEstablishment(executor SQLExecutor, establishment *models.Establishment) (int64, error)
	GetEstablishmentByID(id int64) (*models.Establishment, error)
	GetEstablishments() ([]models.Establishment, error)
	UpdateEstablishment(executor SQLExecutor, establishment *models.Establishment) error
	SetEstablishmentActive(executor SQLExecutor, id int64, active bool) error
}

type establishmentRepository struct {
	db *sql.DB
}

// NewEstablishmentRepository creates a new instance of EstablishmentRepository.
func NewEstablishmentRepository(db *sql.DB) EstablishmentRepository {
	return &establishmentRepository{db: db}
}

const selectEstablishmentFields = `
	id, nome, cnpj, telefone, email, cep, endereco, cidade, estado, ativo,
	payment_status, payment_due_date, payment_amount, max_collaborators, owner_id,
	created_at, updated_at
`

func scanEstablishment(row scanner) (*models.Establishment, error) {
	var establishment models.Establishment
	err := row.Scan(
		&establishment.ID, &establishment.Name, &establishment.TaxID, &establishment.Phone,
		&establishment.Email, &establishment.PostalCode, &establishment.Address,
		&establishment.City, &establishment.State, &establishment.Active,
		&establishment.PaymentStatus, &establishment.PaymentDueDate, &establishment.PaymentAmount,
		&establishment.MaxCollaborators, &establishment.OwnerID,
		&establishment.CreatedAt, &establishment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning establishment: %v", ErrDatabaseError, err)
	}
	return &establishment, nil
}

func (r *establishmentRepository) CreateEstablishment(executor SQLExecutor, establishment *models.Establishment) (int64, error) {
	query := `INSERT INTO establishments
	            (nome, cnpj, telefone, email, cep, endereco, cidade, estado, ativo,
	             payment_status, payment_due_date, payment_amount, max_collaborators, owner_id,
	             created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	          RETURNING id`

	currentTime := time.Now()
	establishment.CreatedAt = currentTime
	establishment.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		establishment.Name, establishment.TaxID, establishment.Phone, establishment.Email,
		establishment.PostalCode, establishment.Address, establishment.City, establishment.State,
		establishment.Active, establishment.PaymentStatus, establishment.PaymentDueDate,
		establishment.PaymentAmount, establishment.MaxCollaborators, establishment.OwnerID,
		establishment.CreatedAt, establishment.UpdatedAt,
	).Scan(&establishment.ID)

	if err != nil {
		return 0, wrapWriteError(err, "creating establishment")
	}
	return establishment.ID, nil
}

func (r *establishmentRepository) GetEstablishmentByID(id int64) (*models.Establishment, error) {
	query := "SELECT " + selectEstablishmentFields + " FROM establishments WHERE id = $1"
	return scanEstablishment(r.db.QueryRow(query, id))
}

func (r *establishmentRepository) GetEstablishments() ([]models.Establishment, error) {
	query := "SELECT " + selectEstablishmentFields + " FROM establishments ORDER BY nome ASC"

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying establishments: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	establishments := []models.Establishment{}
	for rows.Next() {
		establishment, scanErr := scanEstablishment(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		establishments = append(establishments, *establishment)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating establishment rows: %v", ErrDatabaseError, err)
	}
	return establishments, nil
}

func (r *establishmentRepository) UpdateEstablishment(executor SQLExecutor, establishment *models.Establishment) error {
	query := `UPDATE establishments SET
	            nome = $1, cnpj = $2, telefone = $3, email = $4, cep = $5, endereco = $6,
	            cidade = $7, estado = $8, payment_status = $9, payment_due_date = $10,
	            payment_amount = $11, max_collaborators = $12, updated_at = $13
	          WHERE id = $14
	          RETURNING updated_at`

	establishment.UpdatedAt = time.Now()
	err := executor.QueryRow(query,
		establishment.Name, establishment.TaxID, establishment.Phone, establishment.Email,
		establishment.PostalCode, establishment.Address, establishment.City, establishment.State,
		establishment.PaymentStatus, establishment.PaymentDueDate, establishment.PaymentAmount,
		establishment.MaxCollaborators, establishment.UpdatedAt, establishment.ID,
	).Scan(&establishment.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return wrapWriteError(err, fmt.Sprintf("updating establishment ID %d", establishment.ID))
	}
	return nil
}

func (r *establishmentRepository) SetEstablishmentActive(executor SQLExecutor, id int64, active bool) error {
	result, err := executor.Exec(
		`UPDATE establishments SET ativo = $1, updated_at = $2 WHERE id = $3`,
		active, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("%w: toggling establishment ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
