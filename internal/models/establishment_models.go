package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Establishment is the tenant root. Every other tenant-scoped entity carries
// establishment_id pointing at exactly one of these rows.
type Establishment struct {
	ID               int64            `json:"id" db:"id"`
	Name             string           `json:"nome" db:"nome" binding:"required"`
	TaxID            *string          `json:"cnpj,omitempty" db:"cnpj"`
	Phone            *string          `json:"telefone,omitempty" db:"telefone"`
	Email            *string          `json:"email,omitempty" db:"email"`
	PostalCode       *string          `json:"cep,omitempty" db:"cep"`
	Address          *string          `json:"endereco,omitempty" db:"endereco"`
	City             *string          `json:"cidade,omitempty" db:"cidade"`
	State            *string          `json:"estado,omitempty" db:"estado"`
	Active           bool             `json:"ativo" db:"ativo"`
	PaymentStatus    *string          `json:"payment_status,omitempty" db:"payment_status"`
	PaymentDueDate   *time.Time       `json:"payment_due_date,omitempty" db:"payment_due_date"`
	PaymentAmount    *decimal.Decimal `json:"payment_amount,omitempty" db:"payment_amount"`
	MaxCollaborators int              `json:"max_collaborators" db:"max_collaborators"`
	OwnerID          *int64           `json:"owner_id,omitempty" db:"owner_id"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at" db:"updated_at"`
}

// Address is the result of a postal-code lookup used to autofill
// establishment settings. All fields may be empty when the upstream lookup
// fails; that failure is never surfaced.
type Address struct {
	PostalCode   string `json:"cep"`
	Street       string `json:"logradouro"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
}
