package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types.
const (
	TransactionTypeRevenue = "receita"
	TransactionTypeExpense = "despesa"
)

// IsValidTransactionType checks the tipo column's enum.
func IsValidTransactionType(t string) bool {
	return t == TransactionTypeRevenue || t == TransactionTypeExpense
}

// FinancialTransaction is an append-only ledger entry. For rows generated by
// completing an appointment, Category carries the payment method and
// AppointmentID back-references the appointment (os_id column).
type FinancialTransaction struct {
	ID              int64           `json:"id" db:"id"`
	Type            string          `json:"tipo" db:"tipo"`
	Category        string          `json:"categoria" db:"categoria"`
	Description     string          `json:"descricao" db:"descricao"`
	Amount          decimal.Decimal `json:"valor" db:"valor"`
	Date            time.Time       `json:"data" db:"data"`
	EstablishmentID int64           `json:"establishment_id" db:"establishment_id"`
	AppointmentID   *int64          `json:"os_id,omitempty" db:"os_id"`
	CreatedBy       *int64          `json:"created_by,omitempty" db:"created_by"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}

// TransactionFilters defines the available filters for querying transactions.
type TransactionFilters struct {
	EstablishmentID int64
	Type            *string
	DateFrom        *time.Time
	DateTo          *time.Time
}

// PaymentMethod is a tenant-scoped payment option (pix, cartao, dinheiro...).
type PaymentMethod struct {
	ID              int64     `json:"id" db:"id"`
	Name            string    `json:"nome" db:"nome" binding:"required"`
	Active          bool      `json:"ativo" db:"ativo"`
	EstablishmentID int64     `json:"establishment_id" db:"establishment_id"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
