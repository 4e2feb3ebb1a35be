package services

import (
	"database/sql"
	"errors"

	"facilicar_backend/internal/models"
	"facilicar_backend/internal/repositories"
)

var (
	ErrTransactionNotFound    = errors.New("financial transaction not found")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrNegativeAmount         = errors.New("amount must not be negative")
	ErrPaymentMethodNotFound  = errors.New("payment method not found")
	ErrPaymentMethodNameTaken = errors.New("payment method name already exists")
	ErrLedgerEntryLocked      = errors.New("appointment-generated entries cannot be edited or removed")
	ErrTransactionDescMissing = errors.New("transaction description is required")
	ErrPaymentMethodNameBlank = errors.New("payment method name is required")
)

// FinanceService manages the manual side of the financial ledger and the
// payment method list. Entries emitted by appointment completion are locked:
// the ledger must stay 1:1 with completed appointments.
type FinanceService struct {
	db          *sql.DB
	financeRepo repositories.FinanceRepository
}

// NewFinanceService creates a new FinanceService.
func NewFinanceService(db *sql.DB, financeRepo repositories.FinanceRepository) *FinanceService {
	return &FinanceService{db: db, financeRepo: financeRepo}
}

// GetTransactions lists ledger entries under the given filters.
func (s *FinanceService) GetTransactions(filters models.TransactionFilters) ([]models.FinancialTransaction, error) {
	return s.financeRepo.GetTransactions(filters)
}

// CreateTransaction records a manual ledger entry.
func (s *FinanceService) CreateTransaction(transaction *models.FinancialTransaction) error {
	if !models.IsValidTransactionType(transaction.Type) {
		return ErrInvalidTransactionType
	}
	if transaction.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if transaction.Description == "" {
		return ErrTransactionDescMissing
	}
	transaction.AppointmentID = nil
	_, err := s.financeRepo.CreateTransaction(s.db, transaction)
	return err
}

// UpdateTransaction edits a manual entry. Appointment-generated entries are
// refused.
func (s *FinanceService) UpdateTransaction(transaction *models.FinancialTransaction) error {
	existing, err := s.financeRepo.GetTransactionByID(transaction.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrTransactionNotFound
		}
		return err
	}
	if existing.AppointmentID != nil {
		return ErrLedgerEntryLocked
	}
	if !models.IsValidTransactionType(transaction.Type) {
		return ErrInvalidTransactionType
	}
	if transaction.Amount.IsNegative() {
		return ErrNegativeAmount
	}

	err = s.financeRepo.UpdateTransaction(s.db, transaction)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrTransactionNotFound
	}
	return err
}

// DeleteTransaction removes a manual entry; generated entries are refused.
func (s *FinanceService) DeleteTransaction(id int64) error {
	existing, err := s.financeRepo.GetTransactionByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrTransactionNotFound
		}
		return err
	}
	if existing.AppointmentID != nil {
		return ErrLedgerEntryLocked
	}
	err = s.financeRepo.DeleteTransaction(s.db, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrTransactionNotFound
	}
	return err
}

// GetPaymentMethods lists the tenant's payment options.
func (s *FinanceService) GetPaymentMethods(establishmentID int64, activeOnly bool) ([]models.PaymentMethod, error) {
	return s.financeRepo.GetPaymentMethods(establishmentID, activeOnly)
}

// CreatePaymentMethod adds a payment option.
func (s *FinanceService) CreatePaymentMethod(method *models.PaymentMethod) error {
	if method.Name == "" {
		return ErrPaymentMethodNameBlank
	}
	_, err := s.financeRepo.CreatePaymentMethod(s.db, method)
	if errors.Is(err, repositories.ErrDuplicateKey) {
		return ErrPaymentMethodNameTaken
	}
	return err
}

// UpdatePaymentMethod renames or toggles a payment option.
func (s *FinanceService) UpdatePaymentMethod(method *models.PaymentMethod) error {
	if method.Name == "" {
		return ErrPaymentMethodNameBlank
	}
	err := s.financeRepo.UpdatePaymentMethod(s.db, method)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrPaymentMethodNotFound
	}
	if errors.Is(err, repositories.ErrDuplicateKey) {
		return ErrPaymentMethodNameTaken
	}
	return err
}

// DeletePaymentMethod removes a payment option. Ledger entries keep the
// method name they were recorded with.
func (s *FinanceService) DeletePaymentMethod(id int64) error {
	err := s.financeRepo.DeletePaymentMethod(s.db, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrPaymentMethodNotFound
	}
	return err
}
