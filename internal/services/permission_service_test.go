package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"facilicar_backend/internal/models"
	"facilicar_backend/internal/repositories"
)

func permissionFixtureUsers() *fakeUserRepo {
	estOne := int64(1)
	return &fakeUserRepo{users: map[int64]*models.User{
		1: {ID: 1, Email: "dono@lavacar.com", Role: models.RoleAdmin, EstablishmentID: &estOne},
		2: {ID: 2, Email: "lavador@lavacar.com", Role: models.RoleColaborador, EstablishmentID: &estOne},
		3: {ID: 3, Email: "suporte@facilicar.com", Role: models.RoleSuperAdmin, IsSuperAdmin: true},
		4: {ID: 4, Email: "legado@lavacar.com", Role: "gerente", EstablishmentID: &estOne},
	}}
}

func TestResolveAdmin(t *testing.T) {
	service := NewPermissionService(permissionFixtureUsers())

	perms := service.Resolve(1)
	assert.Equal(t, models.RoleAdmin, perms.Role)
	assert.True(t, perms.IsAdmin())
	assert.True(t, perms.CanManageFinances())
	assert.True(t, perms.CanManageSettings())
	assert.True(t, perms.CanViewDashboard())
	assert.True(t, perms.CanAccessEstablishment(1))
	assert.False(t, perms.CanAccessEstablishment(2))
	assert.False(t, perms.IsSuperAdmin)
	assert.True(t, perms.CanManageUsers())
	assert.True(t, perms.CanEditEstablishmentSettings(1))
	assert.False(t, perms.CanEditEstablishmentSettings(2))
	assert.False(t, perms.CanCreateEstablishments())
	assert.False(t, perms.CanManageEstablishments())
	assert.Equal(t, "Administrador", perms.RoleName())
}

func TestResolveCollaborator(t *testing.T) {
	service := NewPermissionService(permissionFixtureUsers())

	perms := service.Resolve(2)
	assert.Equal(t, models.RoleColaborador, perms.Role)
	assert.False(t, perms.IsAdmin())
	assert.False(t, perms.CanManageCollaborators())
	assert.False(t, perms.CanManageFinances())
	assert.False(t, perms.CanViewDashboard())
	assert.True(t, perms.CanAccessEstablishment(1))
	assert.False(t, perms.CanAccessEstablishment(2))
	assert.True(t, perms.IsColaborador())
	assert.Equal(t, "Colaborador", perms.RoleName())
}

func TestResolveSuperAdminCrossesTenants(t *testing.T) {
	service := NewPermissionService(permissionFixtureUsers())

	perms := service.Resolve(3)
	assert.True(t, perms.IsSuperAdmin)
	assert.True(t, perms.IsAdmin())
	assert.True(t, perms.CanAccessEstablishment(1))
	assert.True(t, perms.CanAccessEstablishment(42))
	assert.True(t, perms.CanCreateEstablishments())
	assert.True(t, perms.CanManageEstablishments())
	assert.True(t, perms.CanEditEstablishmentSettings(42))
	assert.False(t, perms.IsColaborador())
	assert.Equal(t, "Super Administrador", perms.RoleName())
}

func TestResolveUnknownRoleDowngrades(t *testing.T) {
	service := NewPermissionService(permissionFixtureUsers())

	perms := service.Resolve(4)
	assert.Equal(t, models.RoleColaborador, perms.Role)
	assert.False(t, perms.IsAdmin())
}

func TestResolveMissingProfileDegrades(t *testing.T) {
	service := NewPermissionService(permissionFixtureUsers())

	perms := service.Resolve(99)
	assert.Equal(t, int64(99), perms.UserID)
	assert.Equal(t, models.RoleColaborador, perms.Role)
	assert.False(t, perms.IsAdmin())
	assert.Nil(t, perms.EstablishmentID)
	assert.False(t, perms.CanAccessEstablishment(1))
}

func TestResolveLookupErrorDegrades(t *testing.T) {
	service := NewPermissionService(&fakeUserRepo{err: repositories.ErrDatabaseError})

	perms := service.Resolve(1)
	assert.Equal(t, models.RoleColaborador, perms.Role)
	assert.False(t, perms.IsAdmin())
}
