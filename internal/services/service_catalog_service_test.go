package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facilicar_backend/internal/models"
)

func newCatalogFixture(t *testing.T) (*ServiceCatalogService, *fakeServiceRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := &fakeServiceRepo{}
	return NewServiceCatalogService(db, repo, newFakeCategoryRepo("Carro", "Moto")), repo, mock
}

func TestCreateServiceWithPrices(t *testing.T) {
	service, repo, mock := newCatalogFixture(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	entry := &models.Service{Name: "Lavagem Simples", Active: true, EstablishmentID: 1}
	err := service.CreateService(entry, []PriceInput{
		{Category: "Carro", Value: decimal.NewFromInt(50)},
		{Category: " Moto ", Value: decimal.NewFromInt(30)},
	})
	require.NoError(t, err)
	require.Len(t, repo.services, 1)

	carPrices, err := repo.GetPricesByCategory(1, "Carro")
	require.NoError(t, err)
	assert.True(t, carPrices[entry.ID].Equal(decimal.NewFromInt(50)))

	motoPrices, err := repo.GetPricesByCategory(1, "Moto")
	require.NoError(t, err)
	assert.True(t, motoPrices[entry.ID].Equal(decimal.NewFromInt(30)), "category names must be trimmed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateServiceRejectsUnknownCategory(t *testing.T) {
	service, repo, _ := newCatalogFixture(t)

	err := service.CreateService(&models.Service{Name: "Cera", EstablishmentID: 1}, []PriceInput{
		{Category: "Caminhão", Value: decimal.NewFromInt(100)},
	})
	assert.ErrorIs(t, err, ErrUnknownCategory)
	assert.Empty(t, repo.services, "nothing may be written when a price cell is invalid")
}

func TestCreateServiceRejectsNegativePrice(t *testing.T) {
	service, _, _ := newCatalogFixture(t)

	err := service.CreateService(&models.Service{Name: "Cera", EstablishmentID: 1}, []PriceInput{
		{Category: "Carro", Value: decimal.NewFromInt(-10)},
	})
	assert.ErrorIs(t, err, ErrNegativePrice)
}

func TestCreateServiceRequiresName(t *testing.T) {
	service, _, _ := newCatalogFixture(t)

	err := service.CreateService(&models.Service{EstablishmentID: 1}, nil)
	assert.ErrorIs(t, err, ErrServiceNameMissing)
}

func TestPricedServicesForCategory(t *testing.T) {
	service, repo, mock := newCatalogFixture(t)
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectCommit()

	priced := &models.Service{Name: "Lavagem Simples", Active: true, EstablishmentID: 1}
	require.NoError(t, service.CreateService(priced, []PriceInput{
		{Category: "Carro", Value: decimal.NewFromInt(50)},
	}))
	unpriced := &models.Service{Name: "Polimento", Active: true, EstablishmentID: 1}
	require.NoError(t, service.CreateService(unpriced, nil))
	repo.services = append(repo.services, models.Service{ID: 99, Name: "Desativado", Active: false, EstablishmentID: 1})

	entries, err := service.PricedServicesForCategory(1, "Carro")
	require.NoError(t, err)
	require.Len(t, entries, 2, "inactive services stay out of the quote list")

	byName := map[string]models.PricedService{}
	for _, entry := range entries {
		byName[entry.Name] = entry
	}
	lavagem := byName["Lavagem Simples"]
	assert.True(t, lavagem.Available)
	require.NotNil(t, lavagem.Value)
	assert.True(t, lavagem.Value.Equal(decimal.NewFromInt(50)))

	polimento := byName["Polimento"]
	assert.False(t, polimento.Available)
	assert.Nil(t, polimento.Value)
}

func TestUpdateServicePreservesUnsubmittedCells(t *testing.T) {
	service, repo, mock := newCatalogFixture(t)
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectCommit()

	entry := &models.Service{Name: "Lavagem Simples", Active: true, EstablishmentID: 1}
	require.NoError(t, service.CreateService(entry, []PriceInput{
		{Category: "Carro", Value: decimal.NewFromInt(50)},
		{Category: "Moto", Value: decimal.NewFromInt(30)},
	}))

	entry.Name = "Lavagem Completa"
	require.NoError(t, service.UpdateService(entry, []PriceInput{
		{Category: "Carro", Value: decimal.NewFromInt(60)},
	}))

	carPrices, _ := repo.GetPricesByCategory(1, "Carro")
	assert.True(t, carPrices[entry.ID].Equal(decimal.NewFromInt(60)))
	motoPrices, _ := repo.GetPricesByCategory(1, "Moto")
	assert.True(t, motoPrices[entry.ID].Equal(decimal.NewFromInt(30)), "untouched cells keep their value")
	assert.Equal(t, "Lavagem Completa", repo.services[0].Name)
}

func TestDeleteServiceRemovesPrices(t *testing.T) {
	service, repo, mock := newCatalogFixture(t)
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectCommit()

	entry := &models.Service{Name: "Cera", Active: true, EstablishmentID: 1}
	require.NoError(t, service.CreateService(entry, []PriceInput{
		{Category: "Carro", Value: decimal.NewFromInt(40)},
	}))

	require.NoError(t, service.DeleteService(entry.ID))
	assert.Empty(t, repo.services)
	carPrices, _ := repo.GetPricesByCategory(1, "Carro")
	assert.Empty(t, carPrices)
}
