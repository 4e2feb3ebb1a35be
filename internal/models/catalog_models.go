package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier is a flat tenant-scoped record with simple CRUD.
type Supplier struct {
	ID              int64     `json:"id" db:"id"`
	Name            string    `json:"nome" db:"nome" binding:"required"`
	TaxID           *string   `json:"cnpj,omitempty" db:"cnpj"`
	Phone           *string   `json:"telefone,omitempty" db:"telefone"`
	Email           *string   `json:"email,omitempty" db:"email"`
	EstablishmentID int64     `json:"establishment_id" db:"establishment_id"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// Product is a stocked item sold or consumed by the shop.
type Product struct {
	ID              int64           `json:"id" db:"id"`
	Name            string          `json:"nome" db:"nome" binding:"required"`
	Description     *string         `json:"descricao,omitempty" db:"descricao"`
	Price           decimal.Decimal `json:"preco" db:"preco"`
	Stock           int             `json:"estoque" db:"estoque"`
	SupplierID      *int64          `json:"supplier_id,omitempty" db:"supplier_id"`
	EstablishmentID int64           `json:"establishment_id" db:"establishment_id"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}
