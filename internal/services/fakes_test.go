package services

import (
	"time"

	"github.com/shopspring/decimal"

	"facilicar_backend/internal/models"
	"facilicar_backend/internal/repositories"
)

// In-memory repository fakes shared by the service tests.

type fakeClientRepo struct {
	clients  map[int64]*models.Client
	vehicles map[int64]*models.Vehicle
	nextID   int64
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{
		clients:  map[int64]*models.Client{},
		vehicles: map[int64]*models.Vehicle{},
		nextID:   1,
	}
}

func (r *fakeClientRepo) CreateClient(_ repositories.SQLExecutor, client *models.Client) (int64, error) {
	client.ID = r.nextID
	r.nextID++
	stored := *client
	r.clients[client.ID] = &stored
	return client.ID, nil
}

func (r *fakeClientRepo) GetClientByID(id int64) (*models.Client, error) {
	if client, ok := r.clients[id]; ok {
		copied := *client
		return &copied, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeClientRepo) GetClientsWithVehicles(establishmentID int64) ([]models.Client, error) {
	clients := []models.Client{}
	for _, client := range r.clients {
		if client.EstablishmentID != establishmentID {
			continue
		}
		copied := *client
		copied.Vehicles = nil
		for _, vehicle := range r.vehicles {
			if vehicle.ClientID == client.ID {
				copied.Vehicles = append(copied.Vehicles, *vehicle)
			}
		}
		clients = append(clients, copied)
	}
	return clients, nil
}

func (r *fakeClientRepo) UpdateClient(_ repositories.SQLExecutor, client *models.Client) error {
	if _, ok := r.clients[client.ID]; !ok {
		return repositories.ErrNotFound
	}
	stored := *client
	r.clients[client.ID] = &stored
	return nil
}

func (r *fakeClientRepo) DeleteClient(_ repositories.SQLExecutor, id int64) error {
	if _, ok := r.clients[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.clients, id)
	return nil
}

func (r *fakeClientRepo) CreateVehicle(_ repositories.SQLExecutor, vehicle *models.Vehicle) (int64, error) {
	for _, existing := range r.vehicles {
		if existing.EstablishmentID == vehicle.EstablishmentID && existing.Plate == vehicle.Plate {
			return 0, repositories.ErrDuplicateKey
		}
	}
	vehicle.ID = r.nextID
	r.nextID++
	stored := *vehicle
	r.vehicles[vehicle.ID] = &stored
	return vehicle.ID, nil
}

func (r *fakeClientRepo) GetVehicleByID(id int64) (*models.Vehicle, error) {
	if vehicle, ok := r.vehicles[id]; ok {
		copied := *vehicle
		return &copied, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeClientRepo) GetVehicleByPlate(establishmentID int64, plate string) (*models.Vehicle, error) {
	for _, vehicle := range r.vehicles {
		if vehicle.EstablishmentID == establishmentID && vehicle.Plate == plate {
			copied := *vehicle
			if client, ok := r.clients[vehicle.ClientID]; ok {
				ownerCopy := *client
				copied.Client = &ownerCopy
			}
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeClientRepo) GetVehiclesByClient(clientID int64) ([]models.Vehicle, error) {
	vehicles := []models.Vehicle{}
	for _, vehicle := range r.vehicles {
		if vehicle.ClientID == clientID {
			vehicles = append(vehicles, *vehicle)
		}
	}
	return vehicles, nil
}

func (r *fakeClientRepo) UpdateVehicle(_ repositories.SQLExecutor, vehicle *models.Vehicle) error {
	if _, ok := r.vehicles[vehicle.ID]; !ok {
		return repositories.ErrNotFound
	}
	stored := *vehicle
	r.vehicles[vehicle.ID] = &stored
	return nil
}

func (r *fakeClientRepo) DeleteVehicle(_ repositories.SQLExecutor, id int64) error {
	if _, ok := r.vehicles[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.vehicles, id)
	return nil
}

type fakeCategoryRepo struct {
	categories map[string]*models.VehicleCategory
}

func newFakeCategoryRepo(names ...string) *fakeCategoryRepo {
	repo := &fakeCategoryRepo{categories: map[string]*models.VehicleCategory{}}
	for i, name := range names {
		repo.categories[name] = &models.VehicleCategory{
			ID: int64(i + 1), Name: name, Active: true, EstablishmentID: 1,
		}
	}
	return repo
}

func (r *fakeCategoryRepo) CreateCategory(_ repositories.SQLExecutor, category *models.VehicleCategory) (int64, error) {
	category.ID = int64(len(r.categories) + 1)
	r.categories[category.Name] = category
	return category.ID, nil
}

func (r *fakeCategoryRepo) GetCategoryByID(id int64) (*models.VehicleCategory, error) {
	for _, category := range r.categories {
		if category.ID == id {
			return category, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeCategoryRepo) GetCategoryByName(_ int64, name string) (*models.VehicleCategory, error) {
	if category, ok := r.categories[name]; ok {
		return category, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeCategoryRepo) GetCategories(int64, bool) ([]models.VehicleCategory, error) {
	categories := []models.VehicleCategory{}
	for _, category := range r.categories {
		categories = append(categories, *category)
	}
	return categories, nil
}

func (r *fakeCategoryRepo) UpdateCategory(_ repositories.SQLExecutor, category *models.VehicleCategory) error {
	r.categories[category.Name] = category
	return nil
}

func (r *fakeCategoryRepo) DeleteCategory(_ repositories.SQLExecutor, id int64) error {
	for name, category := range r.categories {
		if category.ID == id {
			delete(r.categories, name)
			return nil
		}
	}
	return repositories.ErrNotFound
}

type fakeServiceRepo struct {
	services []models.Service
	prices   map[string]map[int64]decimal.Decimal // category -> serviceID -> value
}

func (r *fakeServiceRepo) CreateService(_ repositories.SQLExecutor, service *models.Service) (int64, error) {
	service.ID = int64(len(r.services) + 1)
	r.services = append(r.services, *service)
	return service.ID, nil
}

func (r *fakeServiceRepo) GetServiceByID(id int64) (*models.Service, error) {
	for i := range r.services {
		if r.services[i].ID == id {
			return &r.services[i], nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeServiceRepo) GetServices(_ int64, activeOnly bool) ([]models.Service, error) {
	list := []models.Service{}
	for _, service := range r.services {
		if activeOnly && !service.Active {
			continue
		}
		list = append(list, service)
	}
	return list, nil
}

func (r *fakeServiceRepo) GetServicesWithPrices(establishmentID int64) ([]models.Service, error) {
	return r.GetServices(establishmentID, false)
}

func (r *fakeServiceRepo) UpdateService(_ repositories.SQLExecutor, service *models.Service) error {
	for i := range r.services {
		if r.services[i].ID == service.ID {
			r.services[i] = *service
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeServiceRepo) DeleteService(_ repositories.SQLExecutor, id int64) error {
	for i := range r.services {
		if r.services[i].ID == id {
			r.services = append(r.services[:i], r.services[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeServiceRepo) UpsertServicePrice(_ repositories.SQLExecutor, price *models.ServicePrice) error {
	if r.prices == nil {
		r.prices = map[string]map[int64]decimal.Decimal{}
	}
	if r.prices[price.Category] == nil {
		r.prices[price.Category] = map[int64]decimal.Decimal{}
	}
	r.prices[price.Category][price.ServiceID] = price.Value
	return nil
}

func (r *fakeServiceRepo) GetPricesByCategory(_ int64, category string) (map[int64]decimal.Decimal, error) {
	result := map[int64]decimal.Decimal{}
	for id, value := range r.prices[category] {
		result[id] = value
	}
	return result, nil
}

func (r *fakeServiceRepo) DeletePricesByService(_ repositories.SQLExecutor, serviceID int64) error {
	for _, byService := range r.prices {
		delete(byService, serviceID)
	}
	return nil
}

type fakeAppointmentRepo struct {
	appointments map[int64]*models.Appointment
	nextID       int64
	qrFails      bool
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: map[int64]*models.Appointment{}, nextID: 1}
}

func (r *fakeAppointmentRepo) CreateAppointment(_ repositories.SQLExecutor, appointment *models.Appointment) (int64, error) {
	appointment.ID = r.nextID
	r.nextID++
	stored := *appointment
	r.appointments[appointment.ID] = &stored
	return appointment.ID, nil
}

func (r *fakeAppointmentRepo) GetAppointmentByID(id int64) (*models.Appointment, error) {
	if appointment, ok := r.appointments[id]; ok {
		copied := *appointment
		return &copied, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeAppointmentRepo) GetAppointments(filters models.AppointmentFilters) ([]models.Appointment, error) {
	matches := []models.Appointment{}
	for _, appointment := range r.appointments {
		if appointment.EstablishmentID != filters.EstablishmentID {
			continue
		}
		if len(filters.Statuses) > 0 {
			found := false
			for _, status := range filters.Statuses {
				if appointment.Status == status {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		if filters.DateFrom != nil && appointment.ScheduledAt.Before(*filters.DateFrom) {
			continue
		}
		if filters.DateTo != nil && !appointment.ScheduledAt.Before(*filters.DateTo) {
			continue
		}
		matches = append(matches, *appointment)
	}
	return matches, nil
}

func (r *fakeAppointmentRepo) UpdateAppointment(_ repositories.SQLExecutor, appointment *models.Appointment) error {
	if _, ok := r.appointments[appointment.ID]; !ok {
		return repositories.ErrNotFound
	}
	stored := *appointment
	r.appointments[appointment.ID] = &stored
	return nil
}

func (r *fakeAppointmentRepo) UpdateStatusGuarded(_ repositories.SQLExecutor, id int64, from, to models.AppointmentStatus) (bool, error) {
	appointment, ok := r.appointments[id]
	if !ok || appointment.Status != from {
		return false, nil
	}
	appointment.Status = to
	return true, nil
}

func (r *fakeAppointmentRepo) SetQRCode(_ repositories.SQLExecutor, id int64, token string) error {
	if r.qrFails {
		return repositories.ErrDatabaseError
	}
	appointment, ok := r.appointments[id]
	if !ok {
		return repositories.ErrNotFound
	}
	appointment.QRCode = &token
	return nil
}

func (r *fakeAppointmentRepo) DeleteAppointment(_ repositories.SQLExecutor, id int64) error {
	if _, ok := r.appointments[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.appointments, id)
	return nil
}

type fakeFinanceRepo struct {
	transactions []models.FinancialTransaction
	methods      []models.PaymentMethod
}

func (r *fakeFinanceRepo) CreateTransaction(_ repositories.SQLExecutor, transaction *models.FinancialTransaction) (int64, error) {
	transaction.ID = int64(len(r.transactions) + 1)
	if transaction.Date.IsZero() {
		transaction.Date = time.Now()
	}
	r.transactions = append(r.transactions, *transaction)
	return transaction.ID, nil
}

func (r *fakeFinanceRepo) GetTransactionByID(id int64) (*models.FinancialTransaction, error) {
	for i := range r.transactions {
		if r.transactions[i].ID == id {
			return &r.transactions[i], nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeFinanceRepo) GetTransactions(filters models.TransactionFilters) ([]models.FinancialTransaction, error) {
	matches := []models.FinancialTransaction{}
	for _, transaction := range r.transactions {
		if transaction.EstablishmentID != filters.EstablishmentID {
			continue
		}
		if filters.Type != nil && transaction.Type != *filters.Type {
			continue
		}
		matches = append(matches, transaction)
	}
	return matches, nil
}

func (r *fakeFinanceRepo) UpdateTransaction(_ repositories.SQLExecutor, transaction *models.FinancialTransaction) error {
	for i := range r.transactions {
		if r.transactions[i].ID == transaction.ID {
			r.transactions[i] = *transaction
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeFinanceRepo) DeleteTransaction(_ repositories.SQLExecutor, id int64) error {
	for i := range r.transactions {
		if r.transactions[i].ID == id {
			r.transactions = append(r.transactions[:i], r.transactions[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeFinanceRepo) CreatePaymentMethod(_ repositories.SQLExecutor, method *models.PaymentMethod) (int64, error) {
	method.ID = int64(len(r.methods) + 1)
	r.methods = append(r.methods, *method)
	return method.ID, nil
}

func (r *fakeFinanceRepo) GetPaymentMethods(establishmentID int64, activeOnly bool) ([]models.PaymentMethod, error) {
	matches := []models.PaymentMethod{}
	for _, method := range r.methods {
		if method.EstablishmentID != establishmentID {
			continue
		}
		if activeOnly && !method.Active {
			continue
		}
		matches = append(matches, method)
	}
	return matches, nil
}

func (r *fakeFinanceRepo) UpdatePaymentMethod(_ repositories.SQLExecutor, method *models.PaymentMethod) error {
	for i := range r.methods {
		if r.methods[i].ID == method.ID {
			r.methods[i] = *method
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeFinanceRepo) DeletePaymentMethod(_ repositories.SQLExecutor, id int64) error {
	for i := range r.methods {
		if r.methods[i].ID == id {
			r.methods = append(r.methods[:i], r.methods[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

type fakeEstablishmentRepo struct {
	establishments map[int64]*models.Establishment
}

func (r *fakeEstablishmentRepo) CreateEstablishment(_ repositories.SQLExecutor, establishment *models.Establishment) (int64, error) {
	if r.establishments == nil {
		r.establishments = map[int64]*models.Establishment{}
	}
	establishment.ID = int64(len(r.establishments) + 1)
	r.establishments[establishment.ID] = establishment
	return establishment.ID, nil
}

func (r *fakeEstablishmentRepo) GetEstablishmentByID(id int64) (*models.Establishment, error) {
	if establishment, ok := r.establishments[id]; ok {
		return establishment, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeEstablishmentRepo) GetEstablishments() ([]models.Establishment, error) {
	list := []models.Establishment{}
	for _, establishment := range r.establishments {
		list = append(list, *establishment)
	}
	return list, nil
}

func (r *fakeEstablishmentRepo) UpdateEstablishment(_ repositories.SQLExecutor, establishment *models.Establishment) error {
	if _, ok := r.establishments[establishment.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.establishments[establishment.ID] = establishment
	return nil
}

func (r *fakeEstablishmentRepo) SetEstablishmentActive(_ repositories.SQLExecutor, id int64, active bool) error {
	establishment, ok := r.establishments[id]
	if !ok {
		return repositories.ErrNotFound
	}
	establishment.Active = active
	return nil
}

type fakeUserRepo struct {
	users map[int64]*models.User
	err   error
}

func (r *fakeUserRepo) CreateUser(_ repositories.SQLExecutor, user *models.User) (int64, error) {
	user.ID = int64(len(r.users) + 1)
	if r.users == nil {
		r.users = map[int64]*models.User{}
	}
	r.users[user.ID] = user
	return user.ID, nil
}

func (r *fakeUserRepo) GetUserByID(id int64) (*models.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) GetUsersByEstablishment(establishmentID int64) ([]models.User, error) {
	users := []models.User{}
	for _, user := range r.users {
		if user.EstablishmentID != nil && *user.EstablishmentID == establishmentID {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) CountCollaborators(establishmentID int64) (int, error) {
	count := 0
	for _, user := range r.users {
		if user.Role == models.RoleColaborador && user.EstablishmentID != nil && *user.EstablishmentID == establishmentID {
			count++
		}
	}
	return count, nil
}

func (r *fakeUserRepo) UpdateUser(_ repositories.SQLExecutor, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) DeleteUser(_ repositories.SQLExecutor, id int64) error {
	if _, ok := r.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.users, id)
	return nil
}
