package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is a salaried staff record used by payroll.
type Employee struct {
	ID              int64           `json:"id" db:"id"`
	Name            string          `json:"nome" db:"nome" binding:"required"`
	Position        *string         `json:"cargo,omitempty" db:"cargo"`
	Salary          decimal.Decimal `json:"salario" db:"salario"`
	PaymentDay      *int            `json:"dia_pagamento,omitempty" db:"dia_pagamento"`
	Active          bool            `json:"ativo" db:"ativo"`
	EstablishmentID int64           `json:"establishment_id" db:"establishment_id"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// CommissionedEmployee earns a percentage per completed service instead of
// (or on top of) a fixed salary.
type CommissionedEmployee struct {
	ID              int64           `json:"id" db:"id"`
	Name            string          `json:"nome" db:"nome" binding:"required"`
	CommissionRate  decimal.Decimal `json:"percentual_comissao" db:"percentual_comissao"`
	Active          bool            `json:"ativo" db:"ativo"`
	EstablishmentID int64           `json:"establishment_id" db:"establishment_id"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}
