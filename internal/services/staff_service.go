package services

import (
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"facilicar_backend/internal/models"
	"facilicar_backend/internal/repositories"
)

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrEmployeeNameMissing = errors.New("employee name is required")
	ErrNegativeSalary      = errors.New("salary must not be negative")
	ErrInvalidCommission   = errors.New("commission rate must be between 0 and 100")
)

var hundred = decimal.NewFromInt(100)

// StaffService manages salaried and commissioned employees.
type StaffService struct {
	db        *sql.DB
	staffRepo repositories.StaffRepository
}

// NewStaffService creates a new StaffService.
func NewStaffService(db *sql.DB, staffRepo repositories.StaffRepository) *StaffService {
	return &StaffService{db: db, staffRepo: staffRepo}
}

// GetEmployees lists salaried employees.
func (s *StaffService) GetEmployees(establishmentID int64) ([]models.Employee, error) {
	return s.staffRepo.GetEmployees(establishmentID)
}

// GetEmployee returns one salaried employee.
func (s *StaffService) GetEmployee(id int64) (*models.Employee, error) {
	employee, err := s.staffRepo.GetEmployeeByID(id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrEmployeeNotFound
	}
	return employee, err
}

// CreateEmployee creates a salaried employee.
func (s *StaffService) CreateEmployee(employee *models.Employee) error {
	if employee.Name == "" {
		return ErrEmployeeNameMissing
	}
	if employee.Salary.IsNegative() {
		return ErrNegativeSalary
	}
	_, err := s.staffRepo.CreateEmployee(s.db, employee)
	return err
}

// UpdateEmployee updates a salaried employee.
func (s *StaffService) UpdateEmployee(employee *models.Employee) error {
	if employee.Name == "" {
		return ErrEmployeeNameMissing
	}
	if employee.Salary.IsNegative() {
		return ErrNegativeSalary
	}
	err := s.staffRepo.UpdateEmployee(s.db, employee)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrEmployeeNotFound
	}
	return err
}

// DeleteEmployee removes a salaried employee.
func (s *StaffService) DeleteEmployee(id int64) error {
	err := s.staffRepo.DeleteEmployee(s.db, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrEmployeeNotFound
	}
	return err
}

func validateCommission(employee *models.CommissionedEmployee) error {
	if employee.Name == "" {
		return ErrEmployeeNameMissing
	}
	if employee.CommissionRate.IsNegative() || employee.CommissionRate.GreaterThan(hundred) {
		return ErrInvalidCommission
	}
	return nil
}

// GetCommissionedEmployees lists commissioned employees.
func (s *StaffService) GetCommissionedEmployees(establishmentID int64) ([]models.CommissionedEmployee, error) {
	return s.staffRepo.GetCommissionedEmployees(establishmentID)
}

// CreateCommissionedEmployee creates a commissioned employee.
func (s *StaffService) CreateCommissionedEmployee(employee *models.CommissionedEmployee) error {
	if err := validateCommission(employee); err != nil {
		return err
	}
	_, err := s.staffRepo.CreateCommissionedEmployee(s.db, employee)
	return err
}

// UpdateCommissionedEmployee updates a commissioned employee.
func (s *StaffService) UpdateCommissionedEmployee(employee *models.CommissionedEmployee) error {
	if err := validateCommission(employee); err != nil {
		return err
	}
	err := s.staffRepo.UpdateCommissionedEmployee(s.db, employee)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrEmployeeNotFound
	}
	return err
}

// DeleteCommissionedEmployee removes a commissioned employee.
func (s *StaffService) DeleteCommissionedEmployee(id int64) error {
	err := s.staffRepo.DeleteCommissionedEmployee(s.db, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrEmployeeNotFound
	}
	return err
}
