package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"facilicar_backend/internal/models"
)

// ClientRepository defines the interface for client and vehicle database
// operations. Clients and vehicles share a repository because the
// plate-lookup and import flows always touch both.
type ClientRepository interface {
	CreateClient(executor SQLExecutor, client *models.Client) (int64, error)
	GetClientByID(id int64) (*models.Client, error)
	GetClientsWithVehicles(establishmentID int64) ([]models.Client, error)
	UpdateClient(executor SQLExecutor, client *models.Client) error
	DeleteClient(executor SQLExecutor, id int64) error

	CreateVehicle(executor SQLExecutor, vehicle *models.Vehicle) (int64, error)
	GetVehicleByID(id int64) (*models.Vehicle, error)
	GetVehicleByPlate(establishmentID int64, plate string) (*models.Vehicle, error)
	GetVehiclesByClient(clientID int64) ([]models.Vehicle, error)
	UpdateVehicle(executor SQLExecutor, vehicle *models.Vehicle) error
	DeleteVehicle(executor SQLExecutor, id int64) error
}

type clientRepository struct {
	db *sql.DB
}

// NewClientRepository creates a new instance of ClientRepository.
func NewClientRepository(db *sql.DB) ClientRepository {
	return &clientRepository{db: db}
}

const selectClientFields = `id, nome, telefone, email, cpf_cnpj, establishment_id, created_at, updated_at`

func scanClient(row scanner) (*models.Client, error) {
	client := &models.Client{}
	err := row.Scan(
		&client.ID, &client.Name, &client.Phone, &client.Email, &client.TaxID,
		&client.EstablishmentID, &client.CreatedAt, &client.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning client: %v", ErrDatabaseError, err)
	}
	return client, nil
}

func (r *clientRepository) CreateClient(executor SQLExecutor, client *models.Client) (int64, error) {
	query := `INSERT INTO clients (nome, telefone, email, cpf_cnpj, establishment_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`

	currentTime := time.Now()
	client.CreatedAt = currentTime
	client.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		client.Name, client.Phone, client.Email, client.TaxID,
		client.EstablishmentID, client.CreatedAt, client.UpdatedAt,
	).Scan(&client.ID)

	if err != nil {
		return 0, wrapWriteError(err, "creating client")
	}
	return client.ID, nil
}

func (r *clientRepository) GetClientByID(id int64) (*models.Client, error) {
	query := "SELECT " + selectClientFields + " FROM clients WHERE id = $1"
	return scanClient(r.db.QueryRow(query, id))
}

// GetClientsWithVehicles loads all clients of an establishment with their
// vehicles attached. All rows are loaded eagerly; filtering happens in the
// service layer.
func (r *clientRepository) GetClientsWithVehicles(establishmentID int64) ([]models.Client, error) {
	query := "SELECT " + selectClientFields + " FROM clients WHERE establishment_id = $1 ORDER BY nome"
	rows, err := r.db.Query(query, establishmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying clients: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	clients := []models.Client{}
	index := map[int64]int{}
	for rows.Next() {
		client, scanErr := scanClient(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		client.Vehicles = []models.Vehicle{}
		index[client.ID] = len(clients)
		clients = append(clients, *client)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating client rows: %v", ErrDatabaseError, err)
	}
	if len(clients) == 0 {
		return clients, nil
	}

	vehicleQuery := "SELECT " + selectVehicleFields + ` FROM vehicles
	          WHERE establishment_id = $1 ORDER BY placa`
	vRows, err := r.db.Query(vehicleQuery, establishmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying vehicles: %v", ErrDatabaseError, err)
	}
	defer vRows.Close()

	for vRows.Next() {
		vehicle, scanErr := scanVehicle(vRows)
		if scanErr != nil {
			return nil, scanErr
		}
		if i, ok := index[vehicle.ClientID]; ok {
			clients[i].Vehicles = append(clients[i].Vehicles, *vehicle)
		}
	}
	if err = vRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating vehicle rows: %v", ErrDatabaseError, err)
	}
	return clients, nil
}

func (r *clientRepository) UpdateClient(executor SQLExecutor, client *models.Client) error {
	query := `UPDATE clients SET nome = $1, telefone = $2, email = $3, cpf_cnpj = $4, updated_at = $5
	          WHERE id = $6
	          RETURNING updated_at`
	client.UpdatedAt = time.Now()

	err := executor.QueryRow(query,
		client.Name, client.Phone, client.Email, client.TaxID, client.UpdatedAt, client.ID,
	).Scan(&client.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return wrapWriteError(err, fmt.Sprintf("updating client ID %d", client.ID))
	}
	return nil
}

func (r *clientRepository) DeleteClient(executor SQLExecutor, id int64) error {
	// Dependent vehicles cascade at the database level.
	result, err := executor.Exec(`DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting client ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

const selectVehicleFields = `id, client_id, placa, modelo, marca, cor, categoria, establishment_id, created_at, updated_at`

func scanVehicle(row scanner) (*models.Vehicle, error) {
	vehicle := &models.Vehicle{}
	err := row.Scan(
		&vehicle.ID, &vehicle.ClientID, &vehicle.Plate, &vehicle.Model, &vehicle.Brand,
		&vehicle.Color, &vehicle.Category, &vehicle.EstablishmentID,
		&vehicle.CreatedAt, &vehicle.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning vehicle: %v", ErrDatabaseError, err)
	}
	return vehicle, nil
}

func (r *clientRepository) CreateVehicle(executor SQLExecutor, vehicle *models.Vehicle) (int64, error) {
	query := `INSERT INTO vehicles (client_id, placa, modelo, marca, cor, categoria, establishment_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`

	currentTime := time.Now()
	vehicle.CreatedAt = currentTime
	vehicle.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		vehicle.ClientID, vehicle.Plate, vehicle.Model, vehicle.Brand, vehicle.Color,
		vehicle.Category, vehicle.EstablishmentID, vehicle.CreatedAt, vehicle.UpdatedAt,
	).Scan(&vehicle.ID)

	if err != nil {
		return 0, wrapWriteError(err, "creating vehicle")
	}
	return vehicle.ID, nil
}

func (r *clientRepository) GetVehicleByID(id int64) (*models.Vehicle, error) {
	query := "SELECT " + selectVehicleFields + " FROM vehicles WHERE id = $1"
	return scanVehicle(r.db.QueryRow(query, id))
}

// GetVehicleByPlate looks up a vehicle by exact plate match within an
// establishment, with the owning client attached. Callers must normalize the
// plate first (utils.NormalizePlate).
func (r *clientRepository) GetVehicleByPlate(establishmentID int64, plate string) (*models.Vehicle, error) {
	query := "SELECT " + selectVehicleFields + " FROM vehicles WHERE establishment_id = $1 AND placa = $2"
	vehicle, err := scanVehicle(r.db.QueryRow(query, establishmentID, plate))
	if err != nil {
		return nil, err
	}

	client, err := r.GetClientByID(vehicle.ClientID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	vehicle.Client = client
	return vehicle, nil
}

func (r *clientRepository) GetVehiclesByClient(clientID int64) ([]models.Vehicle, error) {
	query := "SELECT " + selectVehicleFields + " FROM vehicles WHERE client_id = $1 ORDER BY placa"
	rows, err := r.db.Query(query, clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying vehicles by client: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	vehicles := []models.Vehicle{}
	for rows.Next() {
		vehicle, scanErr := scanVehicle(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		vehicles = append(vehicles, *vehicle)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating vehicle rows: %v", ErrDatabaseError, err)
	}
	return vehicles, nil
}

func (r *clientRepository) UpdateVehicle(executor SQLExecutor, vehicle *models.Vehicle) error {
	query := `UPDATE vehicles SET placa = $1, modelo = $2, marca = $3, cor = $4, categoria = $5, updated_at = $6
	          WHERE id = $7
	          RETURNING updated_at`
	vehicle.UpdatedAt = time.Now()

	err := executor.QueryRow(query,
		vehicle.Plate, vehicle.Model, vehicle.Brand, vehicle.Color, vehicle.Category,
		vehicle.UpdatedAt, vehicle.ID,
	).Scan(&vehicle.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return wrapWriteError(err, fmt.Sprintf("updating vehicle ID %d", vehicle.ID))
	}
	return nil
}

func (r *clientRepository) DeleteVehicle(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting vehicle ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
