package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"facilicar_backend/internal/models"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserRepo, *fakeEstablishmentRepo) {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	users := &fakeUserRepo{users: map[int64]*models.User{}}
	establishments := &fakeEstablishmentRepo{establishments: map[int64]*models.Establishment{
		1: {ID: 1, Name: "Lava Rápido Central", Active: true, MaxCollaborators: 2},
	}}
	return NewAuthService(db, users, establishments), users, establishments
}

func TestRegisterCreatesCollaboratorByDefault(t *testing.T) {
	service, _, _ := newAuthFixture(t)

	estID := int64(1)
	user, err := service.Register(RegisterRequest{
		Name:            "Maria Souza",
		Email:           "  MARIA@Example.COM ",
		Password:        "segredo1",
		EstablishmentID: &estID,
	})
	require.NoError(t, err)

	assert.Equal(t, "maria@example.com", user.Email, "email must be normalized")
	assert.Equal(t, models.RoleColaborador, user.Role)
	assert.False(t, user.IsSuperAdmin)
	require.NotNil(t, user.EstablishmentID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("segredo1")))
}

func TestRegisterValidation(t *testing.T) {
	service, _, _ := newAuthFixture(t)
	estID := int64(1)

	_, err := service.Register(RegisterRequest{Email: "not-an-email", Password: "segredo1", EstablishmentID: &estID})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Register(RegisterRequest{Email: "a@b.com", Password: "curta", EstablishmentID: &estID})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Register(RegisterRequest{Email: "a@b.com", Password: "segredo1", Role: "gerente", EstablishmentID: &estID})
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = service.Register(RegisterRequest{Email: "a@b.com", Password: "segredo1", Role: models.RoleAdmin})
	assert.ErrorIs(t, err, ErrEstablishmentRequired)
}

func TestRegisterRejectsTakenEmail(t *testing.T) {
	service, _, _ := newAuthFixture(t)
	estID := int64(1)

	_, err := service.Register(RegisterRequest{Email: "maria@example.com", Password: "segredo1", EstablishmentID: &estID})
	require.NoError(t, err)

	_, err = service.Register(RegisterRequest{Email: "Maria@example.com", Password: "segredo1", EstablishmentID: &estID})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterEnforcesCollaboratorLimit(t *testing.T) {
	service, _, _ := newAuthFixture(t)
	estID := int64(1)

	for i, email := range []string{"um@example.com", "dois@example.com"} {
		_, err := service.Register(RegisterRequest{Email: email, Password: "segredo1", EstablishmentID: &estID})
		require.NoError(t, err, "collaborator %d", i+1)
	}

	_, err := service.Register(RegisterRequest{Email: "tres@example.com", Password: "segredo1", EstablishmentID: &estID})
	assert.ErrorIs(t, err, ErrCollaboratorLimit)

	// Admins are not capped.
	_, err = service.Register(RegisterRequest{Email: "dono@example.com", Password: "segredo1", Role: models.RoleAdmin, EstablishmentID: &estID})
	assert.NoError(t, err)
}

func TestLoginIssuesTokenPair(t *testing.T) {
	service, _, _ := newAuthFixture(t)
	estID := int64(1)
	_, err := service.Register(RegisterRequest{Email: "maria@example.com", Password: "segredo1", EstablishmentID: &estID})
	require.NoError(t, err)

	pair, err := service.Login(LoginRequest{Email: "MARIA@example.com", Password: "segredo1"})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	require.NotNil(t, pair.User)
	assert.Equal(t, "maria@example.com", pair.User.Email)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	service, _, _ := newAuthFixture(t)
	estID := int64(1)
	_, err := service.Register(RegisterRequest{Email: "maria@example.com", Password: "segredo1", EstablishmentID: &estID})
	require.NoError(t, err)

	_, err = service.Login(LoginRequest{Email: "maria@example.com", Password: "errada1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Login(LoginRequest{Email: "ninguem@example.com", Password: "segredo1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRoundTrip(t *testing.T) {
	service, _, _ := newAuthFixture(t)
	estID := int64(1)
	_, err := service.Register(RegisterRequest{Email: "maria@example.com", Password: "segredo1", EstablishmentID: &estID})
	require.NoError(t, err)

	pair, err := service.Login(LoginRequest{Email: "maria@example.com", Password: "segredo1"})
	require.NoError(t, err)

	renewed, err := service.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renewed.AccessToken)
	assert.Equal(t, pair.User.ID, renewed.User.ID)

	_, err = service.Refresh("garbage")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestGetProfile(t *testing.T) {
	service, _, _ := newAuthFixture(t)
	estID := int64(1)
	user, err := service.Register(RegisterRequest{Email: "maria@example.com", Password: "segredo1", EstablishmentID: &estID})
	require.NoError(t, err)

	profile, err := service.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, profile.Email)

	_, err = service.GetProfile(999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
