package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppointmentStatus defines the type for appointment statuses.
type AppointmentStatus string

const (
	AppointmentStatusPendente    AppointmentStatus = "pendente"
	AppointmentStatusConfirmado  AppointmentStatus = "confirmado"
	AppointmentStatusEmAndamento AppointmentStatus = "em_andamento"
	AppointmentStatusConcluido   AppointmentStatus = "concluido"
	AppointmentStatusCancelado   AppointmentStatus = "cancelado"
)

// appointmentTransitions is the lifecycle table. concluido and cancelado are
// terminal; cancelado is reachable from any non-terminal state.
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPendente:    {AppointmentStatusConfirmado, AppointmentStatusCancelado},
	AppointmentStatusConfirmado:  {AppointmentStatusEmAndamento, AppointmentStatusCancelado},
	AppointmentStatusEmAndamento: {AppointmentStatusConcluido, AppointmentStatusCancelado},
	AppointmentStatusConcluido:   {},
	AppointmentStatusCancelado:   {},
}

// IsValidAppointmentStatus checks if the provided status string is a valid AppointmentStatus.
func IsValidAppointmentStatus(status string) bool {
	_, ok := appointmentTransitions[AppointmentStatus(status)]
	return ok
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s AppointmentStatus) IsTerminal() bool {
	return len(appointmentTransitions[s]) == 0 && IsValidAppointmentStatus(string(s))
}

// CanTransitionTo reports whether moving from s to next follows the
// lifecycle table. Out-of-table transitions must be rejected before any
// write.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ActiveAppointmentStatuses are the non-terminal states tracked by the
// operational view.
func ActiveAppointmentStatuses() []AppointmentStatus {
	return []AppointmentStatus{
		AppointmentStatusPendente,
		AppointmentStatusConfirmado,
		AppointmentStatusEmAndamento,
	}
}

// ServiceSnapshot is a frozen copy of a service's name and price captured at
// appointment-creation time and stored inside the appointment's servicos
// JSONB field. Later ServicePrice changes never mutate stored snapshots.
type ServiceSnapshot struct {
	ID          int64           `json:"id"`
	Name        string          `json:"nome"`
	Description string          `json:"descricao"`
	Value       decimal.Decimal `json:"valor"`
}

// SnapshotTotal returns the sum of the snapshots' captured values. The
// appointment's estimated value must equal this sum at computation time.
func SnapshotTotal(snapshots []ServiceSnapshot) decimal.Decimal {
	total := decimal.Zero
	for _, s := range snapshots {
		total = total.Add(s.Value)
	}
	return total
}

// Appointment ties a client, a vehicle and a set of service snapshots to a
// scheduled time, and walks the lifecycle table above.
type Appointment struct {
	ID              int64             `json:"id" db:"id"`
	ClientID        int64             `json:"client_id" db:"client_id"`
	VehicleID       int64             `json:"vehicle_id" db:"vehicle_id"`
	EstablishmentID int64             `json:"establishment_id" db:"establishment_id"`
	ScheduledAt     time.Time         `json:"data_agendamento" db:"data_agendamento"`
	Status          AppointmentStatus `json:"status" db:"status"`
	Observations    *string           `json:"observacoes,omitempty" db:"observacoes"`
	EstimatedValue  decimal.Decimal   `json:"valor_estimado" db:"valor_estimado"`
	Services        []ServiceSnapshot `json:"servicos" db:"servicos"`
	CollaboratorID  *int64            `json:"colaborador_id,omitempty" db:"colaborador_id"`
	QRCode          *string           `json:"qr_code,omitempty" db:"qr_code"`
	CreatedBy       *int64            `json:"created_by,omitempty" db:"created_by"`
	CreatedAt       time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at" db:"updated_at"`

	Client       *Client  `json:"client,omitempty"`       // For joined listings
	Vehicle      *Vehicle `json:"vehicle,omitempty"`      // For joined listings
	Collaborator *User    `json:"collaborator,omitempty"` // For joined listings
}

// AppointmentFilters defines the available filters for querying appointments.
type AppointmentFilters struct {
	EstablishmentID int64
	Statuses        []AppointmentStatus
	DateFrom        *time.Time // inclusive
	DateTo          *time.Time // exclusive
	Ascending       bool
}
