package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facilicar_backend/internal/models"
)

func newFinanceFixture(t *testing.T) (*FinanceService, *fakeFinanceRepo) {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := &fakeFinanceRepo{}
	return NewFinanceService(db, repo), repo
}

func TestCreateTransactionValidation(t *testing.T) {
	service, _ := newFinanceFixture(t)

	err := service.CreateTransaction(&models.FinancialTransaction{
		Type: "transferencia", Description: "x", Amount: decimal.NewFromInt(10), EstablishmentID: 1,
	})
	assert.ErrorIs(t, err, ErrInvalidTransactionType)

	err = service.CreateTransaction(&models.FinancialTransaction{
		Type: models.TransactionTypeExpense, Description: "x", Amount: decimal.NewFromInt(-1), EstablishmentID: 1,
	})
	assert.ErrorIs(t, err, ErrNegativeAmount)

	err = service.CreateTransaction(&models.FinancialTransaction{
		Type: models.TransactionTypeExpense, Amount: decimal.NewFromInt(10), EstablishmentID: 1,
	})
	assert.ErrorIs(t, err, ErrTransactionDescMissing)
}

func TestCreateTransactionStripsAppointmentLink(t *testing.T) {
	service, repo := newFinanceFixture(t)

	appointmentID := int64(7)
	entry := &models.FinancialTransaction{
		Type:            models.TransactionTypeExpense,
		Description:     "Compra de shampoo",
		Amount:          decimal.NewFromInt(120),
		EstablishmentID: 1,
		AppointmentID:   &appointmentID,
	}
	require.NoError(t, service.CreateTransaction(entry))

	require.Len(t, repo.transactions, 1)
	assert.Nil(t, repo.transactions[0].AppointmentID,
		"manual entries must never claim an appointment")
}

func TestGeneratedEntriesAreLocked(t *testing.T) {
	service, repo := newFinanceFixture(t)

	appointmentID := int64(7)
	generated := &models.FinancialTransaction{
		Type:            models.TransactionTypeRevenue,
		Category:        "pix",
		Description:     "Agendamento #7",
		Amount:          decimal.NewFromInt(80),
		EstablishmentID: 1,
		AppointmentID:   &appointmentID,
	}
	_, err := repo.CreateTransaction(nil, generated)
	require.NoError(t, err)

	generated.Amount = decimal.NewFromInt(1)
	assert.ErrorIs(t, service.UpdateTransaction(generated), ErrLedgerEntryLocked)
	assert.ErrorIs(t, service.DeleteTransaction(generated.ID), ErrLedgerEntryLocked)
}

func TestManualEntryLifecycle(t *testing.T) {
	service, repo := newFinanceFixture(t)

	entry := &models.FinancialTransaction{
		Type:            models.TransactionTypeExpense,
		Description:     "Conta de água",
		Amount:          decimal.NewFromInt(200),
		EstablishmentID: 1,
	}
	require.NoError(t, service.CreateTransaction(entry))

	entry.Amount = decimal.NewFromInt(210)
	require.NoError(t, service.UpdateTransaction(entry))
	assert.True(t, repo.transactions[0].Amount.Equal(decimal.NewFromInt(210)))

	require.NoError(t, service.DeleteTransaction(entry.ID))
	assert.Empty(t, repo.transactions)

	assert.ErrorIs(t, service.DeleteTransaction(entry.ID), ErrTransactionNotFound)
}

func TestPaymentMethods(t *testing.T) {
	service, _ := newFinanceFixture(t)

	assert.ErrorIs(t, service.CreatePaymentMethod(&models.PaymentMethod{EstablishmentID: 1}), ErrPaymentMethodNameBlank)

	method := &models.PaymentMethod{Name: "Pix", Active: true, EstablishmentID: 1}
	require.NoError(t, service.CreatePaymentMethod(method))

	inactive := &models.PaymentMethod{Name: "Cheque", Active: false, EstablishmentID: 1}
	require.NoError(t, service.CreatePaymentMethod(inactive))

	all, err := service.GetPaymentMethods(1, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := service.GetPaymentMethods(1, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Pix", active[0].Name)

	assert.ErrorIs(t, service.DeletePaymentMethod(99), ErrPaymentMethodNotFound)
	assert.NoError(t, service.DeletePaymentMethod(method.ID))
}
