package models

import "time"

// Role names. Stored as plain strings on the users row; "colaborador" is the
// default and the degraded fallback when a profile cannot be resolved.
const (
	RoleSuperAdmin  = "super_admin"
	RoleAdmin       = "admin"
	RoleColaborador = "colaborador"
)

// IsValidRole checks if the provided role string is one of the known roles.
func IsValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin, RoleColaborador:
		return true
	default:
		return false
	}
}

// User represents a user/profile in the system. EstablishmentID is nil only
// for super admins, who are not bound to a single tenant.
type User struct {
	ID              int64     `json:"id" db:"id"`
	Name            *string   `json:"nome,omitempty" db:"nome"`
	Email           string    `json:"email" db:"email"`
	Phone           *string   `json:"telefone,omitempty" db:"telefone"`
	PasswordHash    string    `json:"-" db:"password_hash"`
	Role            string    `json:"role" db:"role"`
	IsSuperAdmin    bool      `json:"is_super_admin" db:"is_super_admin"`
	EstablishmentID *int64    `json:"establishment_id,omitempty" db:"establishment_id"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// DisplayName returns the user's name, falling back to the email local part.
func (u *User) DisplayName() string {
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	for i := 0; i < len(u.Email); i++ {
		if u.Email[i] == '@' {
			return u.Email[:i]
		}
	}
	return u.Email
}
