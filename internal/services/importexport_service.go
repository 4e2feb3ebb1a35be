package services

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"facilicar_backend/internal/models"
	"facilicar_backend/internal/repositories"
	"facilicar_backend/pkg/utils"
)

var ErrEmptyImportFile = errors.New("import file has no data rows")

// csvHeader is the fixed column set shared by export and import.
var csvHeader = []string{"Nome", "Telefone", "Email", "Placa", "Modelo", "Cor", "Categoria"}

// ImportExportService turns the client registry into CSV and back. Export
// emits one row per vehicle (clients without vehicles get one row with blank
// vehicle columns); import groups rows back into clients by email, falling
// back to name+phone.
type ImportExportService struct {
	db         *sql.DB
	clientRepo repositories.ClientRepository
}

// NewImportExportService creates a new ImportExportService.
func NewImportExportService(db *sql.DB, clientRepo repositories.ClientRepository) *ImportExportService {
	return &ImportExportService{db: db, clientRepo: clientRepo}
}

// ExportClients renders the registry as semicolon-separated CSV with a
// UTF-8 BOM and every field quoted, the shape spreadsheet imports in
// pt-BR locales expect.
func (s *ImportExportService) ExportClients(establishmentID int64) ([]byte, error) {
	clients, err := s.clientRepo.GetClientsWithVehicles(establishmentID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("\xEF\xBB\xBF")
	writeCSVRow(&buf, csvHeader)

	for _, client := range clients {
		email := ""
		if client.Email != nil {
			email = *client.Email
		}
		if len(client.Vehicles) == 0 {
			writeCSVRow(&buf, []string{client.Name, client.Phone, email, "", "", "", ""})
			continue
		}
		for _, vehicle := range client.Vehicles {
			writeCSVRow(&buf, []string{
				client.Name, client.Phone, email,
				vehicle.Plate, deref(vehicle.Model), deref(vehicle.Color), deref(vehicle.Category),
			})
		}
	}
	return buf.Bytes(), nil
}

// writeCSVRow quotes every field unconditionally, doubling embedded quotes.
func writeCSVRow(buf *bytes.Buffer, fields []string) {
	for i, field := range fields {
		if i > 0 {
			buf.WriteByte(';')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(field, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteString("\r\n")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ImportResult summarizes one import batch.
type ImportResult struct {
	BatchID  string   `json:"batch_id"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

type importedClient struct {
	name, phone, email string
	vehicles           []models.Vehicle
}

// ImportClients parses a CSV upload and creates the clients it describes.
// The delimiter is auto-detected from the header line. Each client is
// written in its own transaction so one bad group never aborts the batch;
// failures are collected per group instead.
func (s *ImportExportService) ImportClients(establishmentID int64, reader io.Reader) (*ImportResult, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xEF\xBB\xBF"))

	firstLine := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		firstLine = data[:i]
	}

	csvReader := csv.NewReader(bytes.NewReader(data))
	if bytes.ContainsRune(firstLine, ';') {
		csvReader.Comma = ';'
	}
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	if len(records) < 2 {
		return nil, ErrEmptyImportFile
	}

	groups := map[string]*importedClient{}
	order := []string{}
	for _, record := range records[1:] {
		for len(record) < len(csvHeader) {
			record = append(record, "")
		}
		name := strings.TrimSpace(record[0])
		phone := strings.TrimSpace(record[1])
		email := strings.ToLower(strings.TrimSpace(record[2]))
		if name == "" {
			continue
		}

		key := email
		if key == "" {
			key = name + "|" + phone
		}
		group, ok := groups[key]
		if !ok {
			group = &importedClient{name: name, phone: phone, email: email}
			groups[key] = group
			order = append(order, key)
		}

		plate := utils.NormalizePlate(record[3])
		if plate == "" {
			continue
		}
		vehicle := models.Vehicle{Plate: plate, EstablishmentID: establishmentID}
		if model := strings.TrimSpace(record[4]); model != "" {
			vehicle.Model = &model
		}
		if color := strings.TrimSpace(record[5]); color != "" {
			vehicle.Color = &color
		}
		if category := strings.TrimSpace(record[6]); category != "" {
			normalized := utils.NormalizeCategoryName(category)
			vehicle.Category = &normalized
		}
		group.vehicles = append(group.vehicles, vehicle)
	}

	result := &ImportResult{BatchID: uuid.NewString()}
	for _, key := range order {
		group := groups[key]
		if err := s.importGroup(establishmentID, group); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", group.name, err))
			continue
		}
		result.Imported++
	}

	utils.LogInfo("client import finished", map[string]interface{}{
		"batch_id": result.BatchID,
		"imported": result.Imported,
		"skipped":  result.Skipped,
	})
	return result, nil
}

func (s *ImportExportService) importGroup(establishmentID int64, group *importedClient) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	client := &models.Client{
		Name:            group.name,
		Phone:           group.phone,
		EstablishmentID: establishmentID,
	}
	if group.email != "" {
		client.Email = &group.email
	}
	if _, err = s.clientRepo.CreateClient(tx, client); err != nil {
		return err
	}
	for i := range group.vehicles {
		group.vehicles[i].ClientID = client.ID
		if _, err = s.clientRepo.CreateVehicle(tx, &group.vehicles[i]); err != nil {
			return err
		}
	}
	return tx.Commit()
}
