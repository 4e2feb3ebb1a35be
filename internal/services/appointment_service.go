package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"facilicar_backend/internal/models"
	"facilicar_backend/internal/repositories"
	"facilicar_backend/pkg/utils"
)

var (
	ErrAppointmentNotFound    = errors.New("appointment not found")
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrAppointmentTerminal    = errors.New("appointment is in a terminal status")
	ErrNoServicesSelected     = errors.New("at least one service must be selected")
	ErrServiceUnavailable     = errors.New("service has no price for the vehicle's category")
	ErrVehicleWithoutCategory = errors.New("vehicle has no category assigned")
	ErrPaymentMethodMissing   = errors.New("payment method is required")
	ErrCompletionConflict     = errors.New("appointment was completed or moved concurrently")
)

// AppointmentService drives the appointment lifecycle: plate lookup, quoted
// creation with frozen service snapshots, status transitions and completion
// with ledger emission.
type AppointmentService struct {
	db              *sql.DB
	appointmentRepo repositories.AppointmentRepository
	clientRepo      repositories.ClientRepository
	catalog         *ServiceCatalogService
	financeRepo     repositories.FinanceRepository
	hub             *NotificationHub
}

// NewAppointmentService creates a new AppointmentService.
func NewAppointmentService(
	db *sql.DB,
	appointmentRepo repositories.AppointmentRepository,
	clientRepo repositories.ClientRepository,
	catalog *ServiceCatalogService,
	financeRepo repositories.FinanceRepository,
	hub *NotificationHub,
) *AppointmentService {
	return &AppointmentService{
		db:              db,
		appointmentRepo: appointmentRepo,
		clientRepo:      clientRepo,
		catalog:         catalog,
		financeRepo:     financeRepo,
		hub:             hub,
	}
}

// PlateLookupResult is the appointment-creation prefill: the vehicle, its
// owner, and the catalog priced for the vehicle's category.
type PlateLookupResult struct {
	Vehicle  *models.Vehicle        `json:"vehicle"`
	Client   *models.Client         `json:"client"`
	Services []models.PricedService `json:"services"`
}

// LookupByPlate finds a vehicle by normalized plate and resolves the service
// catalog against its category. A vehicle without a category gets every
// service back unavailable.
func (s *AppointmentService) LookupByPlate(establishmentID int64, plate string) (*PlateLookupResult, error) {
	normalized := utils.NormalizePlate(plate)
	vehicle, err := s.clientRepo.GetVehicleByPlate(establishmentID, normalized)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}

	category := ""
	if vehicle.Category != nil {
		category = *vehicle.Category
	}
	priced, err := s.catalog.PricedServicesForCategory(establishmentID, category)
	if err != nil {
		return nil, err
	}

	result := &PlateLookupResult{Vehicle: vehicle, Services: priced}
	if vehicle.Client != nil {
		result.Client = vehicle.Client
	}
	return result, nil
}

// CreateAppointmentRequest selects services by id; their name and price are
// frozen into snapshots at creation time.
type CreateAppointmentRequest struct {
	VehicleID      int64     `json:"vehicle_id" binding:"required"`
	ScheduledAt    time.Time `json:"data_agendamento" binding:"required"`
	ServiceIDs     []int64   `json:"service_ids" binding:"required"`
	Observations   *string   `json:"observacoes"`
	CollaboratorID *int64    `json:"colaborador_id"`
}

// CreateAppointment quotes the selected services against the vehicle's
// category, freezes the snapshots and creates the appointment as pendente.
// The QR token write is best-effort; a failure is logged, never surfaced.
func (s *AppointmentService) CreateAppointment(establishmentID int64, createdBy *int64, req CreateAppointmentRequest) (*models.Appointment, error) {
	if len(req.ServiceIDs) == 0 {
		return nil, ErrNoServicesSelected
	}

	vehicle, err := s.clientRepo.GetVehicleByID(req.VehicleID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	if vehicle.EstablishmentID != establishmentID {
		return nil, ErrVehicleNotFound
	}

	snapshots, err := s.quoteServices(establishmentID, vehicle, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	appointment := &models.Appointment{
		ClientID:        vehicle.ClientID,
		VehicleID:       vehicle.ID,
		EstablishmentID: establishmentID,
		ScheduledAt:     req.ScheduledAt,
		Status:          models.AppointmentStatusPendente,
		Observations:    req.Observations,
		EstimatedValue:  models.SnapshotTotal(snapshots),
		Services:        snapshots,
		CollaboratorID:  req.CollaboratorID,
		CreatedBy:       createdBy,
	}

	if _, err = s.appointmentRepo.CreateAppointment(s.db, appointment); err != nil {
		return nil, err
	}

	token := fmt.Sprintf("APPT-%d", appointment.ID)
	if err = s.appointmentRepo.SetQRCode(s.db, appointment.ID, token); err != nil {
		utils.LogWarn("qr token write failed", map[string]interface{}{
			"appointment_id": appointment.ID,
			"error":          err.Error(),
		})
	} else {
		appointment.QRCode = &token
	}

	if s.hub != nil {
		s.hub.Publish(models.AppointmentNotification{
			AppointmentID:   appointment.ID,
			EstablishmentID: establishmentID,
			ScheduledAt:     appointment.ScheduledAt.Format(time.RFC3339),
		})
	}
	return appointment, nil
}

// quoteServices resolves each selected service against the vehicle's
// category price set. Any unpriced selection aborts the whole quote.
func (s *AppointmentService) quoteServices(establishmentID int64, vehicle *models.Vehicle, serviceIDs []int64) ([]models.ServiceSnapshot, error) {
	if vehicle.Category == nil || *vehicle.Category == "" {
		return nil, ErrVehicleWithoutCategory
	}

	priced, err := s.catalog.PricedServicesForCategory(establishmentID, *vehicle.Category)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]models.PricedService, len(priced))
	for _, p := range priced {
		byID[p.ID] = p
	}

	snapshots := make([]models.ServiceSnapshot, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		entry, ok := byID[id]
		if !ok {
			return nil, ErrServiceNotFound
		}
		if !entry.Available || entry.Value == nil {
			return nil, fmt.Errorf("%w: %s", ErrServiceUnavailable, entry.Name)
		}
		snapshot := models.ServiceSnapshot{ID: entry.ID, Name: entry.Name, Value: *entry.Value}
		if entry.Description != nil {
			snapshot.Description = *entry.Description
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, nil
}

// UpdateAppointmentRequest edits a non-terminal appointment. When ServiceIDs
// is non-nil the selection is re-quoted at current prices and the snapshots
// replaced.
type UpdateAppointmentRequest struct {
	ScheduledAt    *time.Time `json:"data_agendamento"`
	ServiceIDs     []int64    `json:"service_ids"`
	Observations   *string    `json:"observacoes"`
	CollaboratorID *int64     `json:"colaborador_id"`
}

// UpdateAppointment edits scheduling details. Terminal appointments are
// frozen.
func (s *AppointmentService) UpdateAppointment(establishmentID, id int64, req UpdateAppointmentRequest) (*models.Appointment, error) {
	appointment, err := s.getOwned(establishmentID, id)
	if err != nil {
		return nil, err
	}
	if appointment.Status.IsTerminal() {
		return nil, ErrAppointmentTerminal
	}

	if req.ScheduledAt != nil {
		appointment.ScheduledAt = *req.ScheduledAt
	}
	if req.Observations != nil {
		appointment.Observations = req.Observations
	}
	if req.CollaboratorID != nil {
		appointment.CollaboratorID = req.CollaboratorID
	}
	if req.ServiceIDs != nil {
		if len(req.ServiceIDs) == 0 {
			return nil, ErrNoServicesSelected
		}
		vehicle, err := s.clientRepo.GetVehicleByID(appointment.VehicleID)
		if err != nil {
			return nil, err
		}
		snapshots, err := s.quoteServices(establishmentID, vehicle, req.ServiceIDs)
		if err != nil {
			return nil, err
		}
		appointment.Services = snapshots
		appointment.EstimatedValue = models.SnapshotTotal(snapshots)
	}

	if err = s.appointmentRepo.UpdateAppointment(s.db, appointment); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return appointment, nil
}

// ChangeStatus walks the lifecycle table for every transition except
// completion, which must go through Finish so the ledger entry is emitted.
func (s *AppointmentService) ChangeStatus(establishmentID, id int64, next models.AppointmentStatus) (*models.Appointment, error) {
	if !models.IsValidAppointmentStatus(string(next)) {
		return nil, ErrInvalidTransition
	}
	if next == models.AppointmentStatusConcluido {
		return nil, fmt.Errorf("%w: completion requires the finish operation", ErrInvalidTransition)
	}

	appointment, err := s.getOwned(establishmentID, id)
	if err != nil {
		return nil, err
	}
	if !appointment.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appointment.Status, next)
	}

	moved, err := s.appointmentRepo.UpdateStatusGuarded(s.db, id, appointment.Status, next)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, ErrCompletionConflict
	}
	appointment.Status = next
	return appointment, nil
}

// FinishRequest completes an in-progress appointment. Amount is the
// negotiated final value; when absent the estimated value is charged.
type FinishRequest struct {
	PaymentMethod string           `json:"metodo_pagamento" binding:"required"`
	Amount        *decimal.Decimal `json:"valor"`
}

// Finish moves an em_andamento appointment to concluido and emits exactly
// one revenue ledger entry, atomically. The status-guarded update inside the
// transaction makes a concurrent double-finish impossible: the loser sees
// zero rows moved and the transaction rolls back without a second entry.
func (s *AppointmentService) Finish(establishmentID, id int64, userID *int64, req FinishRequest) (*models.Appointment, error) {
	if req.PaymentMethod == "" {
		return nil, ErrPaymentMethodMissing
	}

	appointment, err := s.getOwned(establishmentID, id)
	if err != nil {
		return nil, err
	}
	if appointment.Status != models.AppointmentStatusEmAndamento {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appointment.Status, models.AppointmentStatusConcluido)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	moved, err := s.appointmentRepo.UpdateStatusGuarded(tx, id, models.AppointmentStatusEmAndamento, models.AppointmentStatusConcluido)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, ErrCompletionConflict
	}

	amount := appointment.EstimatedValue
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, ErrNegativeAmount
		}
		amount = *req.Amount
	}

	description := fmt.Sprintf("Agendamento #%d", appointment.ID)
	if appointment.Client != nil {
		description = fmt.Sprintf("Agendamento #%d - %s", appointment.ID, appointment.Client.Name)
	}
	appointmentID := appointment.ID
	entry := &models.FinancialTransaction{
		Type:            models.TransactionTypeRevenue,
		Category:        req.PaymentMethod,
		Description:     description,
		Amount:          amount,
		Date:            time.Now(),
		EstablishmentID: establishmentID,
		AppointmentID:   &appointmentID,
		CreatedBy:       userID,
	}
	if _, err = s.financeRepo.CreateTransaction(tx, entry); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	appointment.Status = models.AppointmentStatusConcluido
	return appointment, nil
}

// GetAppointment returns one appointment with joined details.
func (s *AppointmentService) GetAppointment(establishmentID, id int64) (*models.Appointment, error) {
	return s.getOwned(establishmentID, id)
}

// GetAppointments lists appointments under the given filters.
func (s *AppointmentService) GetAppointments(filters models.AppointmentFilters) ([]models.Appointment, error) {
	return s.appointmentRepo.GetAppointments(filters)
}

// GetOperational lists the non-terminal appointments in scheduling order,
// the working queue of the shop floor.
func (s *AppointmentService) GetOperational(establishmentID int64) ([]models.Appointment, error) {
	return s.appointmentRepo.GetAppointments(models.AppointmentFilters{
		EstablishmentID: establishmentID,
		Statuses:        models.ActiveAppointmentStatuses(),
		Ascending:       true,
	})
}

// HistoryEntry is a terminal appointment paired with its ledger entry when
// one exists. Paid derives from the entry's existence, not a stored flag.
type HistoryEntry struct {
	Appointment   models.Appointment           `json:"appointment"`
	Transaction   *models.FinancialTransaction `json:"transaction,omitempty"`
	PaymentMethod string                       `json:"metodo_pagamento,omitempty"`
	Paid          bool                         `json:"pago"`
}

// GetHistory lists terminal appointments, newest first, optionally bounded
// by a date range, each joined with its completion transaction.
func (s *AppointmentService) GetHistory(establishmentID int64, from, to *time.Time) ([]HistoryEntry, error) {
	appointments, err := s.appointmentRepo.GetAppointments(models.AppointmentFilters{
		EstablishmentID: establishmentID,
		Statuses:        []models.AppointmentStatus{models.AppointmentStatusConcluido, models.AppointmentStatusCancelado},
		DateFrom:        from,
		DateTo:          to,
	})
	if err != nil {
		return nil, err
	}

	transactions, err := s.financeRepo.GetTransactions(models.TransactionFilters{
		EstablishmentID: establishmentID,
		DateFrom:        from,
	})
	if err != nil {
		return nil, err
	}
	byAppointment := make(map[int64]*models.FinancialTransaction, len(transactions))
	for i := range transactions {
		if transactions[i].AppointmentID != nil {
			byAppointment[*transactions[i].AppointmentID] = &transactions[i]
		}
	}

	entries := make([]HistoryEntry, 0, len(appointments))
	for _, appointment := range appointments {
		entry := HistoryEntry{Appointment: appointment}
		if transaction, ok := byAppointment[appointment.ID]; ok {
			entry.Transaction = transaction
			entry.PaymentMethod = transaction.Category
			entry.Paid = true
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// DeleteAppointment removes an appointment outright.
func (s *AppointmentService) DeleteAppointment(establishmentID, id int64) error {
	if _, err := s.getOwned(establishmentID, id); err != nil {
		return err
	}
	err := s.appointmentRepo.DeleteAppointment(s.db, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrAppointmentNotFound
	}
	return err
}

// getOwned fetches an appointment and enforces tenant ownership. Foreign
// appointments read as not found rather than forbidden.
func (s *AppointmentService) getOwned(establishmentID, id int64) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.GetAppointmentByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	if appointment.EstablishmentID != establishmentID {
		return nil, ErrAppointmentNotFound
	}
	return appointment, nil
}
