package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"facilicar_backend/internal/models"
)

// AppointmentRepository defines the interface for appointment database
// operations. Status writes that depend on the current status go through
// UpdateStatusGuarded so concurrent transitions cannot race past the
// lifecycle table.
type AppointmentRepository interface {
	CreateAppointment(executor SQLExecutor, appointment *models.Appointment) (int64, error)
	GetAppointmentByID(id int64) (*models.Appointment, error)
	GetAppointments(filters models.AppointmentFilters) ([]models.Appointment, error)
	UpdateAppointment(executor SQLExecutor, appointment *models.Appointment) error
	UpdateStatusGuarded(executor SQLExecutor, id int64, from, to models.AppointmentStatus) (bool, error)
	SetQRCode(executor SQLExecutor, id int64, token string) error
	DeleteAppointment(executor SQLExecutor, id int64) error
}

type appointmentRepository struct {
	db *sql.DB
}

// NewAppointmentRepository creates a new instance of AppointmentRepository.
func NewAppointmentRepository(db *sql.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

const selectAppointmentFields = `
	a.id, a.client_id, a.vehicle_id, a.establishment_id, a.data_agendamento, a.status,
	a.observacoes, a.valor_estimado, a.servicos, a.colaborador_id, a.qr_code, a.created_by,
	a.created_at, a.updated_at,
	c.id, c.nome, c.telefone, c.email,
	v.id, v.placa, v.modelo, v.marca, v.cor, v.categoria,
	u.id, u.nome, u.email
`

const appointmentJoins = `
	FROM appointments a
	JOIN clients c ON a.client_id = c.id
	JOIN vehicles v ON a.vehicle_id = v.id
	LEFT JOIN users u ON a.colaborador_id = u.id
`

// scanAppointmentRow scans a joined appointment row, decoding the servicos
// JSONB snapshot array.
func scanAppointmentRow(row scanner) (*models.Appointment, error) {
	var appointment models.Appointment
	var client models.Client
	var vehicle models.Vehicle

	var rawServices []byte
	var collaboratorID sql.NullInt64
	var collaboratorName, collaboratorEmail sql.NullString

	err := row.Scan(
		&appointment.ID, &appointment.ClientID, &appointment.VehicleID, &appointment.EstablishmentID,
		&appointment.ScheduledAt, &appointment.Status, &appointment.Observations,
		&appointment.EstimatedValue, &rawServices, &appointment.CollaboratorID,
		&appointment.QRCode, &appointment.CreatedBy, &appointment.CreatedAt, &appointment.UpdatedAt,
		&client.ID, &client.Name, &client.Phone, &client.Email,
		&vehicle.ID, &vehicle.Plate, &vehicle.Model, &vehicle.Brand, &vehicle.Color, &vehicle.Category,
		&collaboratorID, &collaboratorName, &collaboratorEmail,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning appointment with details: %v", ErrDatabaseError, err)
	}

	appointment.Services = []models.ServiceSnapshot{}
	if len(rawServices) > 0 {
		if err = json.Unmarshal(rawServices, &appointment.Services); err != nil {
			return nil, fmt.Errorf("%w: decoding servicos for appointment %d: %v", ErrDatabaseError, appointment.ID, err)
		}
	}

	vehicle.ClientID = client.ID
	appointment.Client = &client
	appointment.Vehicle = &vehicle

	if collaboratorID.Valid {
		collaborator := models.User{ID: collaboratorID.Int64}
		if collaboratorName.Valid {
			collaborator.Name = &collaboratorName.String
		}
		if collaboratorEmail.Valid {
			collaborator.Email = collaboratorEmail.String
		}
		appointment.Collaborator = &collaborator
	}

	return &appointment, nil
}

func (r *appointmentRepository) CreateAppointment(executor SQLExecutor, appointment *models.Appointment) (int64, error) {
	query := `INSERT INTO appointments
	            (client_id, vehicle_id, establishment_id, data_agendamento, status, observacoes,
	             valor_estimado, servicos, colaborador_id, created_by, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	          RETURNING id`

	rawServices, err := json.Marshal(appointment.Services)
	if err != nil {
		return 0, fmt.Errorf("%w: encoding servicos: %v", ErrDatabaseError, err)
	}

	currentTime := time.Now()
	appointment.CreatedAt = currentTime
	appointment.UpdatedAt = currentTime

	err = executor.QueryRow(query,
		appointment.ClientID, appointment.VehicleID, appointment.EstablishmentID,
		appointment.ScheduledAt, appointment.Status, appointment.Observations,
		appointment.EstimatedValue, rawServices, appointment.CollaboratorID,
		appointment.CreatedBy, appointment.CreatedAt, appointment.UpdatedAt,
	).Scan(&appointment.ID)

	if err != nil {
		return 0, wrapWriteError(err, "creating appointment")
	}
	return appointment.ID, nil
}

func (r *appointmentRepository) GetAppointmentByID(id int64) (*models.Appointment, error) {
	query := "SELECT " + selectAppointmentFields + appointmentJoins + " WHERE a.id = $1"
	return scanAppointmentRow(r.db.QueryRow(query, id))
}

func (r *appointmentRepository) GetAppointments(filters models.AppointmentFilters) ([]models.Appointment, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectAppointmentFields + appointmentJoins)

	conditions := []string{"a.establishment_id = $1"}
	args := []interface{}{filters.EstablishmentID}
	argCount := 2

	if len(filters.Statuses) > 0 {
		placeholders := make([]string, 0, len(filters.Statuses))
		for _, status := range filters.Statuses {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argCount))
			args = append(args, status)
			argCount++
		}
		conditions = append(conditions, "a.status IN ("+strings.Join(placeholders, ", ")+")")
	}
	if filters.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("a.data_agendamento >= $%d", argCount))
		args = append(args, *filters.DateFrom)
		argCount++
	}
	if filters.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("a.data_agendamento < $%d", argCount))
		args = append(args, *filters.DateTo)
		argCount++
	}

	queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	if filters.Ascending {
		queryBuilder.WriteString(" ORDER BY a.data_agendamento ASC")
	} else {
		queryBuilder.WriteString(" ORDER BY a.data_agendamento DESC")
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying appointments: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	appointments := []models.Appointment{}
	for rows.Next() {
		appointment, scanErr := scanAppointmentRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		appointments = append(appointments, *appointment)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating appointment rows: %v", ErrDatabaseError, err)
	}
	return appointments, nil
}

func (r *appointmentRepository) UpdateAppointment(executor SQLExecutor, appointment *models.Appointment) error {
	query := `UPDATE appointments SET
	            client_id = $1, vehicle_id = $2, data_agendamento = $3, observacoes = $4,
	            valor_estimado = $5, servicos = $6, colaborador_id = $7, updated_at = $8
	          WHERE id = $9
	          RETURNING updated_at`

	rawServices, err := json.Marshal(appointment.Services)
	if err != nil {
		return fmt.Errorf("%w: encoding servicos: %v", ErrDatabaseError, err)
	}

	appointment.UpdatedAt = time.Now()
	err = executor.QueryRow(query,
		appointment.ClientID, appointment.VehicleID, appointment.ScheduledAt,
		appointment.Observations, appointment.EstimatedValue, rawServices,
		appointment.CollaboratorID, appointment.UpdatedAt, appointment.ID,
	).Scan(&appointment.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return wrapWriteError(err, fmt.Sprintf("updating appointment ID %d", appointment.ID))
	}
	return nil
}

// UpdateStatusGuarded moves an appointment from one exact status to another.
// It reports false when the row was not in the expected source status, which
// is how concurrent double-transitions are detected: the second writer sees
// zero rows affected.
func (r *appointmentRepository) UpdateStatusGuarded(executor SQLExecutor, id int64, from, to models.AppointmentStatus) (bool, error) {
	result, err := executor.Exec(
		`UPDATE appointments SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		to, time.Now(), id, from,
	)
	if err != nil {
		return false, fmt.Errorf("%w: updating status of appointment ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	return rowsAffected == 1, nil
}

// SetQRCode stores the QR token in a second update after creation. Callers
// treat failures as best-effort.
func (r *appointmentRepository) SetQRCode(executor SQLExecutor, id int64, token string) error {
	result, err := executor.Exec(`UPDATE appointments SET qr_code = $1 WHERE id = $2`, token, id)
	if err != nil {
		return fmt.Errorf("%w: setting qr_code for appointment ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *appointmentRepository) DeleteAppointment(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting appointment ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
