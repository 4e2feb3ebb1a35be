package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		name    string
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{"pendente to confirmado", AppointmentStatusPendente, AppointmentStatusConfirmado, true},
		{"pendente to cancelado", AppointmentStatusPendente, AppointmentStatusCancelado, true},
		{"pendente to em_andamento skips confirmation", AppointmentStatusPendente, AppointmentStatusEmAndamento, false},
		{"pendente to concluido skips the whole flow", AppointmentStatusPendente, AppointmentStatusConcluido, false},
		{"confirmado to em_andamento", AppointmentStatusConfirmado, AppointmentStatusEmAndamento, true},
		{"confirmado to cancelado", AppointmentStatusConfirmado, AppointmentStatusCancelado, true},
		{"confirmado back to pendente", AppointmentStatusConfirmado, AppointmentStatusPendente, false},
		{"em_andamento to concluido", AppointmentStatusEmAndamento, AppointmentStatusConcluido, true},
		{"em_andamento to cancelado", AppointmentStatusEmAndamento, AppointmentStatusCancelado, true},
		{"concluido is terminal", AppointmentStatusConcluido, AppointmentStatusCancelado, false},
		{"cancelado is terminal", AppointmentStatusCancelado, AppointmentStatusPendente, false},
		{"unknown status transitions nowhere", AppointmentStatus("arquivado"), AppointmentStatusPendente, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, AppointmentStatusConcluido.IsTerminal())
	assert.True(t, AppointmentStatusCancelado.IsTerminal())
	assert.False(t, AppointmentStatusPendente.IsTerminal())
	assert.False(t, AppointmentStatusConfirmado.IsTerminal())
	assert.False(t, AppointmentStatusEmAndamento.IsTerminal())
	assert.False(t, AppointmentStatus("arquivado").IsTerminal())
}

func TestIsValidAppointmentStatus(t *testing.T) {
	for _, status := range []string{"pendente", "confirmado", "em_andamento", "concluido", "cancelado"} {
		assert.True(t, IsValidAppointmentStatus(status), status)
	}
	assert.False(t, IsValidAppointmentStatus("PENDENTE"))
	assert.False(t, IsValidAppointmentStatus(""))
	assert.False(t, IsValidAppointmentStatus("finalizado"))
}

func TestSnapshotTotal(t *testing.T) {
	snapshots := []ServiceSnapshot{
		{ID: 1, Name: "Lavagem Simples", Value: decimal.NewFromFloat(50)},
		{ID: 2, Name: "Cera", Value: decimal.NewFromFloat(30.50)},
	}
	assert.True(t, SnapshotTotal(snapshots).Equal(decimal.NewFromFloat(80.50)))
	assert.True(t, SnapshotTotal(nil).IsZero())
}

func TestActiveAppointmentStatuses(t *testing.T) {
	active := ActiveAppointmentStatuses()
	assert.Len(t, active, 3)
	for _, status := range active {
		assert.False(t, status.IsTerminal())
	}
}
