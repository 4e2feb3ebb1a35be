package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"facilicar_backend/internal/models"
)

// FinanceRepository defines the interface for financial transaction and
// payment method database operations.
type FinanceRepository interface {
	CreateTransaction(executor SQLExecutor, transaction *models.FinancialTransaction) (int64, error)
	GetTransactionByID(id int64) (*models.FinancialTransaction, error)
	GetTransactions(filters models.TransactionFilters) ([]models.FinancialTransaction, error)
	UpdateTransaction(executor SQLExecutor, transaction *models.FinancialTransaction) error
	DeleteTransaction(executor SQLExecutor, id int64) error

	CreatePaymentMethod(executor SQLExecutor, method *models.PaymentMethod) (int64, error)
	GetPaymentMethods(establishmentID int64, activeOnly bool) ([]models.PaymentMethod, error)
	UpdatePaymentMethod(executor SQLExecutor, method *models.PaymentMethod) error
	DeletePaymentMethod(executor SQLExecutor, id int64) error
}

type financeRepository struct {
	db *sql.DB
}

// NewFinanceRepository creates a new instance of FinanceRepository.
func NewFinanceRepository(db *sql.DB) FinanceRepository {
	return &financeRepository{db: db}
}

const selectTransactionFields = `
	id, tipo, categoria, descricao, valor, data, establishment_id, os_id, created_by, created_at
`

func scanTransaction(row scanner) (*models.FinancialTransaction, error) {
	var transaction models.FinancialTransaction
	err := row.Scan(
		&transaction.ID, &transaction.Type, &transaction.Category, &transaction.Description,
		&transaction.Amount, &transaction.Date, &transaction.EstablishmentID,
		&transaction.AppointmentID, &transaction.CreatedBy, &transaction.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning financial transaction: %v", ErrDatabaseError, err)
	}
	return &transaction, nil
}

func (r *financeRepository) CreateTransaction(executor SQLExecutor, transaction *models.FinancialTransaction) (int64, error) {
	query := `INSERT INTO financial_transactions
	            (tipo, categoria, descricao, valor, data, establishment_id, os_id, created_by, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`

	transaction.CreatedAt = time.Now()

	err := executor.QueryRow(query,
		transaction.Type, transaction.Category, transaction.Description, transaction.Amount,
		transaction.Date, transaction.EstablishmentID, transaction.AppointmentID,
		transaction.CreatedBy, transaction.CreatedAt,
	).Scan(&transaction.ID)

	if err != nil {
		return 0, wrapWriteError(err, "creating financial transaction")
	}
	return transaction.ID, nil
}

func (r *financeRepository) GetTransactionByID(id int64) (*models.FinancialTransaction, error) {
	query := "SELECT " + selectTransactionFields + " FROM financial_transactions WHERE id = $1"
	return scanTransaction(r.db.QueryRow(query, id))
}

func (r *financeRepository) GetTransactions(filters models.TransactionFilters) ([]models.FinancialTransaction, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectTransactionFields + " FROM financial_transactions")

	conditions := []string{"establishment_id = $1"}
	args := []interface{}{filters.EstablishmentID}
	argCount := 2

	if filters.Type != nil {
		conditions = append(conditions, fmt.Sprintf("tipo = $%d", argCount))
		args = append(args, *filters.Type)
		argCount++
	}
	if filters.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("data >= $%d", argCount))
		args = append(args, *filters.DateFrom)
		argCount++
	}
	if filters.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("data < $%d", argCount))
		args = append(args, *filters.DateTo)
		argCount++
	}

	queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	queryBuilder.WriteString(" ORDER BY data DESC, id DESC")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying financial transactions: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	transactions := []models.FinancialTransaction{}
	for rows.Next() {
		transaction, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		transactions = append(transactions, *transaction)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating transaction rows: %v", ErrDatabaseError, err)
	}
	return transactions, nil
}

func (r *financeRepository) UpdateTransaction(executor SQLExecutor, transaction *models.FinancialTransaction) error {
	query := `UPDATE financial_transactions SET
	            tipo = $1, categoria = $2, descricao = $3, valor = $4, data = $5
	          WHERE id = $6 AND establishment_id = $7
	          RETURNING id`

	var id int64
	err := executor.QueryRow(query,
		transaction.Type, transaction.Category, transaction.Description, transaction.Amount,
		transaction.Date, transaction.ID, transaction.EstablishmentID,
	).Scan(&id)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return wrapWriteError(err, fmt.Sprintf("updating financial transaction ID %d", transaction.ID))
	}
	return nil
}

func (r *financeRepository) DeleteTransaction(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM financial_transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting financial transaction ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPaymentMethod(row scanner) (*models.PaymentMethod, error) {
	var method models.PaymentMethod
	err := row.Scan(
		&method.ID, &method.Name, &method.Active, &method.EstablishmentID,
		&method.CreatedAt, &method.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning payment method: %v", ErrDatabaseError, err)
	}
	return &method, nil
}

func (r *financeRepository) CreatePaymentMethod(executor SQLExecutor, method *models.PaymentMethod) (int64, error) {
	query := `INSERT INTO payment_methods (nome, ativo, establishment_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`

	currentTime := time.Now()
	method.CreatedAt = currentTime
	method.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		method.Name, method.Active, method.EstablishmentID, method.CreatedAt, method.UpdatedAt,
	).Scan(&method.ID)
	if err != nil {
		return 0, wrapWriteError(err, "creating payment method")
	}
	return method.ID, nil
}

func (r *financeRepository) GetPaymentMethods(establishmentID int64, activeOnly bool) ([]models.PaymentMethod, error) {
	query := `SELECT id, nome, ativo, establishment_id, created_at, updated_at
	          FROM payment_methods WHERE establishment_id = $1`
	if activeOnly {
		query += " AND ativo = true"
	}
	query += " ORDER BY nome ASC"

	rows, err := r.db.Query(query, establishmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying payment methods: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	methods := []models.PaymentMethod{}
	for rows.Next() {
		method, scanErr := scanPaymentMethod(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		methods = append(methods, *method)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating payment method rows: %v", ErrDatabaseError, err)
	}
	return methods, nil
}

func (r *financeRepository) UpdatePaymentMethod(executor SQLExecutor, method *models.PaymentMethod) error {
	query := `UPDATE payment_methods SET nome = $1, ativo = $2, updated_at = $3
	          WHERE id = $4 AND establishment_id = $5
	          RETURNING updated_at`

	method.UpdatedAt = time.Now()
	err := executor.QueryRow(query,
		method.Name, method.Active, method.UpdatedAt, method.ID, method.EstablishmentID,
	).Scan(&method.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return wrapWriteError(err, fmt.Sprintf("updating payment method ID %d", method.ID))
	}
	return nil
}

func (r *financeRepository) DeletePaymentMethod(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM payment_methods WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting payment method ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
