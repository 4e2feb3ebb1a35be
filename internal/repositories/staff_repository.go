package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"facilicar_backend/internal/models"
)

// StaffRepository defines the interface for employee and commissioned
// employee database operations.
type StaffRepository interface {
	CreateEmployee(executor SQLExecutor, employee *models.Employee) (int64, error)
	GetEmployeeByID(id int64) (*models.Employee, error)
	GetEmployees(establishmentID int64) ([]models.Employee, error)
	UpdateEmployee(executor SQLExecutor, employee *models.Employee) error
	DeleteEmployee(executor SQLExecutor, id int64) error

	CreateCommissionedEmployee(executor SQLExecutor, employee *models.CommissionedEmployee) (int64, error)
	GetCommissionedEmployeeByID(id int64) (*models.CommissionedEmployee, error)
	GetCommissionedEmployees(establishmentID int64) ([]models.CommissionedEmployee, error)
	UpdateCommissionedEmployee(executor SQLExecutor, employee *models.CommissionedEmployee) error
	DeleteCommissionedEmployee(executor SQLExecutor, id int64) error
}

type staffRepository struct {
	db *sql.DB
}

// NewStaffRepository creates a new instance of StaffRepository.
func NewStaffRepository(db *sql.DB) StaffRepository {
	return &staffRepository{db: db}
}

func scanEmployee(row scanner) (*models.Employee, error) {
	var employee models.Employee
	err := row.Scan(
		&employee.ID, &employee.Name, &employee.Position, &employee.Salary,
		&employee.PaymentDay, &employee.Active, &employee.EstablishmentID,
		&employee.CreatedAt, &employee.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning employee: %v", ErrDatabaseError, err)
	}
	return &employee, nil
}

func (r *staffRepository) CreateEmployee(executor SQLExecutor, employee *models.Employee) (int64, error) {
	query := `INSERT INTO employees
	            (nome, cargo, salario, dia_pagamento, ativo, establishment_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`

	currentTime := time.Now()
	employee.CreatedAt = currentTime
	employee.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		employee.Name, employee.Position, employee.Salary, employee.PaymentDay,
		employee.Active, employee.EstablishmentID, employee.CreatedAt, employee.UpdatedAt,
	).Scan(&employee.ID)
	if err != nil {
		return 0, wrapWriteError(err, "creating employee")
	}
	return employee.ID, nil
}

func (r *staffRepository) GetEmployeeByID(id int64) (*models.Employee, error) {
	query := `SELECT id, nome, cargo, salario, dia_pagamento, ativo, establishment_id, created_at, updated_at
	          FROM employees WHERE id = $1`
	return scanEmployee(r.db.QueryRow(query, id))
}

func (r *staffRepository) GetEmployees(establishmentID int64) ([]models.Employee, error) {
	query := `SELECT id, nome, cargo, salario, dia_pagamento, ativo, establishment_id, created_at, updated_at
	          FROM employees WHERE establishment_id = $1 ORDER BY nome ASC`

	rows, err := r.db.Query(query, establishmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying employees: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	employees := []models.Employee{}
	for rows.Next() {
		employee, scanErr := scanEmployee(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		employees = append(employees, *employee)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating employee rows: %v", ErrDatabaseError, err)
	}
	return employees, nil
}

func (r *staffRepository) UpdateEmployee(executor SQLExecutor, employee *models.Employee) error {
	query := `UPDATE employees SET
	            nome = $1, cargo = $2, salario = $3, dia_pagamento = $4, ativo = $5, updated_at = $6
	          WHERE id = $7 AND establishment_id = $8
	          RETURNING updated_at`

	employee.UpdatedAt = time.Now()
	err := executor.QueryRow(query,
		employee.Name, employee.Position, employee.Salary, employee.PaymentDay,
		employee.Active, employee.UpdatedAt, employee.ID, employee.EstablishmentID,
	).Scan(&employee.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return wrapWriteError(err, fmt.Sprintf("updating employee ID %d", employee.ID))
	}
	return nil
}

func (r *staffRepository) DeleteEmployee(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting employee ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanCommissionedEmployee(row scanner) (*models.CommissionedEmployee, error) {
	var employee models.CommissionedEmployee
	err := row.Scan(
		&employee.ID, &employee.Name, &employee.CommissionRate, &employee.Active,
		&employee.EstablishmentID, &employee.CreatedAt, &employee.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning commissioned employee: %v", ErrDatabaseError, err)
	}
	return &employee, nil
}

func (r *staffRepository) CreateCommissionedEmployee(executor SQLExecutor, employee *models.CommissionedEmployee) (int64, error) {
	query := `INSERT INTO commissioned_employees
	            (nome, percentual_comissao, ativo, establishment_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	currentTime := time.Now()
	employee.CreatedAt = currentTime
	employee.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		employee.Name, employee.CommissionRate, employee.Active, employee.EstablishmentID,
		employee.CreatedAt, employee.UpdatedAt,
	).Scan(&employee.ID)
	if err != nil {
		return 0, wrapWriteError(err, "creating commissioned employee")
	}
	return employee.ID, nil
}

func (r *staffRepository) GetCommissionedEmployeeByID(id int64) (*models.CommissionedEmployee, error) {
	query := `SELECT id, nome, percentual_comissao, ativo, establishment_id, created_at, updated_at
	          FROM commissioned_employees WHERE id = $1`
	return scanCommissionedEmployee(r.db.QueryRow(query, id))
}

func (r *staffRepository) GetCommissionedEmployees(establishmentID int64) ([]models.CommissionedEmployee, error) {
	query := `SELECT id, nome, percentual_comissao, ativo, establishment_id, created_at, updated_at
	          FROM commissioned_employees WHERE establishment_id = $1 ORDER BY nome ASC`

	rows, err := r.db.Query(query, establishmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying commissioned employees: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	employees := []models.CommissionedEmployee{}
	for rows.Next() {
		employee, scanErr := scanCommissionedEmployee(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		employees = append(employees, *employee)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating commissioned employee rows: %v", ErrDatabaseError, err)
	}
	return employees, nil
}

func (r *staffRepository) UpdateCommissionedEmployee(executor SQLExecutor, employee *models.CommissionedEmployee) error {
	query := `UPDATE commissioned_employees SET
	            nome = $1, percentual_comissao = $2, ativo = $3, updated_at = $4
	          WHERE id = $5 AND establishment_id = $6
	          RETURNING updated_at`

	employee.UpdatedAt = time.Now()
	err := executor.QueryRow(query,
		employee.Name, employee.CommissionRate, employee.Active,
		employee.UpdatedAt, employee.ID, employee.EstablishmentID,
	).Scan(&employee.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return wrapWriteError(err, fmt.Sprintf("updating commissioned employee ID %d", employee.ID))
	}
	return nil
}

func (r *staffRepository) DeleteCommissionedEmployee(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM commissioned_employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting commissioned employee ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
