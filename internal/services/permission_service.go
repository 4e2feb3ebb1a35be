package services

import (
	"facilicar_backend/internal/models"
	"facilicar_backend/internal/repositories"
	"facilicar_backend/pkg/utils"
)

// Permissions is a request-scoped capability set resolved once from the
// authenticated user's profile. Handlers consult it instead of re-reading
// the role string.
type Permissions struct {
	UserID          int64
	Role            string
	IsSuperAdmin    bool
	EstablishmentID *int64
}

// PermissionService resolves user profiles into Permissions values.
type PermissionService struct {
	userRepo repositories.UserRepository
}

// NewPermissionService creates a new PermissionService.
func NewPermissionService(userRepo repositories.UserRepository) *PermissionService {
	return &PermissionService{userRepo: userRepo}
}

// Resolve loads the user's profile and derives its capability set. When the
// profile is missing or the lookup fails, the user degrades to colaborador
// with no establishment rather than being locked out entirely.
func (s *PermissionService) Resolve(userID int64) Permissions {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		utils.LogWarn("permission resolve degraded to colaborador", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		return Permissions{UserID: userID, Role: models.RoleColaborador}
	}

	role := user.Role
	if !models.IsValidRole(role) {
		role = models.RoleColaborador
	}
	if user.IsSuperAdmin {
		role = models.RoleSuperAdmin
	}

	return Permissions{
		UserID:          user.ID,
		Role:            role,
		IsSuperAdmin:    user.IsSuperAdmin || role == models.RoleSuperAdmin,
		EstablishmentID: user.EstablishmentID,
	}
}

// IsAdmin reports whether the user manages their establishment.
func (p Permissions) IsAdmin() bool {
	return p.IsSuperAdmin || p.Role == models.RoleAdmin
}

// IsColaborador reports whether the user is a plain collaborator.
func (p Permissions) IsColaborador() bool {
	return !p.IsSuperAdmin && p.Role == models.RoleColaborador
}

// CanAccessEstablishment reports whether the user may operate on the given
// tenant. Super admins cross tenant boundaries; everyone else is bound to
// their own establishment.
func (p Permissions) CanAccessEstablishment(establishmentID int64) bool {
	if p.IsSuperAdmin {
		return true
	}
	return p.EstablishmentID != nil && *p.EstablishmentID == establishmentID
}

// CanManageCollaborators reports whether the user may create, edit or remove
// collaborator accounts.
func (p Permissions) CanManageCollaborators() bool {
	return p.IsAdmin()
}

// CanManageFinances reports whether the user may read or write the financial
// ledger and payment methods.
func (p Permissions) CanManageFinances() bool {
	return p.IsAdmin()
}

// CanManageSettings reports whether the user may edit establishment
// settings, categories, services and the price matrix.
func (p Permissions) CanManageSettings() bool {
	return p.IsAdmin()
}

// CanManageUsers reports whether the user may manage user accounts within
// their establishment.
func (p Permissions) CanManageUsers() bool {
	return p.IsAdmin()
}

// CanCreateEstablishments reports whether the user may open new tenants.
func (p Permissions) CanCreateEstablishments() bool {
	return p.IsSuperAdmin
}

// CanManageEstablishments reports whether the user may administer tenants
// beyond their own (activate, deactivate, edit quotas).
func (p Permissions) CanManageEstablishments() bool {
	return p.IsSuperAdmin
}

// CanEditEstablishmentSettings reports whether the user may edit one
// tenant's settings: super admins anywhere, admins on their own only.
func (p Permissions) CanEditEstablishmentSettings(establishmentID int64) bool {
	return p.IsAdmin() && p.CanAccessEstablishment(establishmentID)
}

// CanViewDashboard reports whether the dashboard endpoints are available.
// Collaborators work the operational view only.
func (p Permissions) CanViewDashboard() bool {
	return p.IsAdmin()
}

// RoleName returns the pt-BR display label for the resolved role.
func (p Permissions) RoleName() string {
	switch {
	case p.IsSuperAdmin:
		return "Super Administrador"
	case p.Role == models.RoleAdmin:
		return "Administrador"
	default:
		return "Colaborador"
	}
}
