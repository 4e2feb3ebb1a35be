package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facilicar_backend/internal/models"
)

func newClientFixture(t *testing.T) (*ClientService, *fakeClientRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := newFakeClientRepo()
	return NewClientService(db, repo), repo, mock
}

func TestCreateClientWithVehicle(t *testing.T) {
	service, _, mock := newClientFixture(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	category := "Carro"
	client, err := service.CreateClientWithVehicle(1, ClientWithVehicleRequest{
		Name:  "Maria Souza",
		Phone: "11999990000",
		Vehicle: VehicleInput{
			Plate:    " abc1234 ",
			Category: &category,
		},
	})
	require.NoError(t, err)
	require.Len(t, client.Vehicles, 1)
	assert.Equal(t, "ABC1234", client.Vehicles[0].Plate)
	assert.Equal(t, client.ID, client.Vehicles[0].ClientID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateClientWithVehicleRejectsTakenPlate(t *testing.T) {
	service, repo, mock := newClientFixture(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	_, err := service.CreateClientWithVehicle(1, ClientWithVehicleRequest{
		Name:    "Maria Souza",
		Vehicle: VehicleInput{Plate: "ABC1234"},
	})
	require.NoError(t, err)

	_, err = service.CreateClientWithVehicle(1, ClientWithVehicleRequest{
		Name:    "José Lima",
		Vehicle: VehicleInput{Plate: "abc1234"},
	})
	assert.ErrorIs(t, err, ErrPlateTaken)

	// The rejected request must not leave an orphaned client behind.
	clients, err := repo.GetClientsWithVehicles(1)
	require.NoError(t, err)
	assert.Len(t, clients, 1)
}

func TestCreateClientWithVehicleValidation(t *testing.T) {
	service, _, _ := newClientFixture(t)

	_, err := service.CreateClientWithVehicle(1, ClientWithVehicleRequest{
		Vehicle: VehicleInput{Plate: "ABC1234"},
	})
	assert.ErrorIs(t, err, ErrClientNameMissing)

	_, err = service.CreateClientWithVehicle(1, ClientWithVehicleRequest{
		Name:    "Maria Souza",
		Vehicle: VehicleInput{Plate: "   "},
	})
	assert.ErrorIs(t, err, ErrPlateMissing)
}

func TestGetClientsSearch(t *testing.T) {
	service, repo, _ := newClientFixture(t)

	email := "maria@example.com"
	mariaID, err := repo.CreateClient(nil, &models.Client{
		Name: "Maria Souza", Phone: "11999990000", Email: &email, EstablishmentID: 1,
	})
	require.NoError(t, err)
	_, err = repo.CreateVehicle(nil, &models.Vehicle{
		ClientID: mariaID, EstablishmentID: 1, Plate: "ABC1234",
	})
	require.NoError(t, err)
	_, err = repo.CreateClient(nil, &models.Client{
		Name: "José Lima", Phone: "11888880000", EstablishmentID: 1,
	})
	require.NoError(t, err)

	byName, err := service.GetClients(1, "maria")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Maria Souza", byName[0].Name)

	byPlate, err := service.GetClients(1, "c123")
	require.NoError(t, err)
	require.Len(t, byPlate, 1)
	assert.Equal(t, "Maria Souza", byPlate[0].Name)

	byPhone, err := service.GetClients(1, "11888")
	require.NoError(t, err)
	require.Len(t, byPhone, 1)
	assert.Equal(t, "José Lima", byPhone[0].Name)

	all, err := service.GetClients(1, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := service.GetClients(1, "inexistente")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestVehicleLifecycle(t *testing.T) {
	service, repo, _ := newClientFixture(t)

	clientID, err := repo.CreateClient(nil, &models.Client{Name: "Maria", EstablishmentID: 1})
	require.NoError(t, err)

	vehicle := &models.Vehicle{ClientID: clientID, EstablishmentID: 1, Plate: "abc1234"}
	require.NoError(t, service.CreateVehicle(vehicle))
	assert.Equal(t, "ABC1234", vehicle.Plate)

	err = service.CreateVehicle(&models.Vehicle{ClientID: 999, EstablishmentID: 1, Plate: "DEF5678"})
	assert.ErrorIs(t, err, ErrClientNotFound)

	err = service.CreateVehicle(&models.Vehicle{ClientID: clientID, EstablishmentID: 1, Plate: "ABC1234"})
	assert.ErrorIs(t, err, ErrPlateTaken)

	require.NoError(t, service.DeleteVehicle(vehicle.ID))
	assert.ErrorIs(t, service.DeleteVehicle(vehicle.ID), ErrVehicleNotFound)
}

func TestUpdateClientRequiresName(t *testing.T) {
	service, repo, _ := newClientFixture(t)

	clientID, err := repo.CreateClient(nil, &models.Client{Name: "Maria", EstablishmentID: 1})
	require.NoError(t, err)

	assert.ErrorIs(t, service.UpdateClient(&models.Client{ID: clientID}), ErrClientNameMissing)
	assert.ErrorIs(t, service.UpdateClient(&models.Client{ID: 999, Name: "X"}), ErrClientNotFound)
	assert.NoError(t, service.UpdateClient(&models.Client{ID: clientID, Name: "Maria S.", EstablishmentID: 1}))
}
