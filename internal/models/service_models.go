package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// VehicleCategory is a pricing tier (e.g. Hatch, SUV). Service prices
// reference it by name string; renaming a category logically orphans the
// price rows tied to the old name, so renames are guarded at the service
// layer.
type VehicleCategory struct {
	ID              int64     `json:"id" db:"id"`
	Name            string    `json:"nome" db:"nome" binding:"required"`
	DisplayOrder    int       `json:"ordem" db:"ordem"`
	Active          bool      `json:"ativo" db:"ativo"`
	EstablishmentID int64     `json:"establishment_id" db:"establishment_id"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// Service is a catalog entry. Pricing is per vehicle category via
// ServicePrice rows; a service with no price row for a category is
// unavailable for that category.
type Service struct {
	ID                int64          `json:"id" db:"id"`
	Name              string         `json:"nome" db:"nome" binding:"required"`
	Description       *string        `json:"descricao,omitempty" db:"descricao"`
	EstimatedDuration *int           `json:"duracao_estimada,omitempty" db:"duracao_estimada"` // minutes
	Active            bool           `json:"ativo" db:"ativo"`
	EstablishmentID   int64          `json:"establishment_id" db:"establishment_id"`
	CreatedAt         time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at" db:"updated_at"`
	Prices            []ServicePrice `json:"service_prices,omitempty"` // For joined listings
}

// ServicePrice is one cell of the sparse (service, category) price matrix.
// Category is the category's name string, not its id.
type ServicePrice struct {
	ID              int64           `json:"id" db:"id"`
	ServiceID       int64           `json:"service_id" db:"service_id"`
	Category        string          `json:"categoria" db:"categoria"`
	Value           decimal.Decimal `json:"valor" db:"valor"`
	EstablishmentID int64           `json:"establishment_id" db:"establishment_id"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// PricedService is a service resolved against one category's price set, as
// returned by the plate-lookup flow. Services without a price row are
// included with Available=false so the caller can render them disabled; they
// can never be selected into an appointment.
type PricedService struct {
	ID          int64            `json:"id"`
	Name        string           `json:"nome"`
	Description *string          `json:"descricao,omitempty"`
	Value       *decimal.Decimal `json:"valor,omitempty"`
	Available   bool             `json:"available"`
}
