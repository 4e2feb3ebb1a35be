package models

import "time"

// Client represents a customer of the establishment. A client owns zero or
// more vehicles; vehicles are where plates and pricing categories live.
type Client struct {
	ID              int64     `json:"id" db:"id"`
	Name            string    `json:"nome" db:"nome" binding:"required"`
	Phone           string    `json:"telefone" db:"telefone"`
	Email           *string   `json:"email,omitempty" db:"email"`
	TaxID           *string   `json:"cpf_cnpj,omitempty" db:"cpf_cnpj"`
	EstablishmentID int64     `json:"establishment_id" db:"establishment_id"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
	Vehicles        []Vehicle `json:"vehicles,omitempty"` // For joined listings
}

// Vehicle belongs to a client. Plate is stored normalized (trimmed,
// upper-cased) and is the lookup key of the appointment creation flow.
// Category is a free-text name matched against vehicle_categories.nome; it is
// the pricing-tier key, not a foreign key.
type Vehicle struct {
	ID              int64     `json:"id" db:"id"`
	ClientID        int64     `json:"client_id" db:"client_id"`
	Plate           string    `json:"placa" db:"placa" binding:"required"`
	Model           *string   `json:"modelo,omitempty" db:"modelo"`
	Brand           *string   `json:"marca,omitempty" db:"marca"`
	Color           *string   `json:"cor,omitempty" db:"cor"`
	Category        *string   `json:"categoria,omitempty" db:"categoria"`
	EstablishmentID int64     `json:"establishment_id" db:"establishment_id"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
	Client          *Client   `json:"client,omitempty"` // For joined lookups
}
