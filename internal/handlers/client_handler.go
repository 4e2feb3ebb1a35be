package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"facilicar_backend/internal/models"
	"facilicar_backend/internal/services"
	"facilicar_backend/pkg/utils"
)

// ClientHandler exposes client/vehicle CRUD and the CSV import/export
// endpoints.
type ClientHandler struct {
	clientService       *services.ClientService
	importExportService *services.ImportExportService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clientService *services.ClientService, importExportService *services.ImportExportService) *ClientHandler {
	return &ClientHandler{clientService: clientService, importExportService: importExportService}
}

// GetClients handles GET /clients?search=.
func (h *ClientHandler) GetClients(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	clients, err := h.clientService.GetClients(establishmentID, c.Query("search"))
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

// GetClient handles GET /clients/:id.
func (h *ClientHandler) GetClient(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	client, err := h.clientService.GetClient(id)
	if err != nil {
		h.respondClientError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// CreateClient handles POST /clients.
func (h *ClientHandler) CreateClient(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	var client models.Client
	if err := c.ShouldBindJSON(&client); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	client.EstablishmentID = establishmentID
	if err := h.clientService.CreateClient(&client); err != nil {
		h.respondClientError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

// CreateClientWithVehicle handles POST /clients/with-vehicle, the inline
// registration flow of appointment creation.
func (h *ClientHandler) CreateClientWithVehicle(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	var req services.ClientWithVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	client, err := h.clientService.CreateClientWithVehicle(establishmentID, req)
	if err != nil {
		h.respondClientError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

// UpdateClient handles PUT /clients/:id.
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var client models.Client
	if err := c.ShouldBindJSON(&client); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	client.ID = id
	client.EstablishmentID = establishmentID
	if err := h.clientService.UpdateClient(&client); err != nil {
		h.respondClientError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// DeleteClient handles DELETE /clients/:id.
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.clientService.DeleteClient(id); err != nil {
		h.respondClientError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateVehicle handles POST /vehicles.
func (h *ClientHandler) CreateVehicle(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	var vehicle models.Vehicle
	if err := c.ShouldBindJSON(&vehicle); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	vehicle.EstablishmentID = establishmentID
	if err := h.clientService.CreateVehicle(&vehicle); err != nil {
		h.respondClientError(c, err)
		return
	}
	c.JSON(http.StatusCreated, vehicle)
}

// UpdateVehicle handles PUT /vehicles/:id.
func (h *ClientHandler) UpdateVehicle(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var vehicle models.Vehicle
	if err := c.ShouldBindJSON(&vehicle); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	vehicle.ID = id
	vehicle.EstablishmentID = establishmentID
	if err := h.clientService.UpdateVehicle(&vehicle); err != nil {
		h.respondClientError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

// DeleteVehicle handles DELETE /vehicles/:id.
func (h *ClientHandler) DeleteVehicle(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.clientService.DeleteVehicle(id); err != nil {
		h.respondClientError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportClients handles GET /clients/export, streaming the registry as CSV.
func (h *ClientHandler) ExportClients(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	data, err := h.importExportService.ExportClients(establishmentID)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="clientes.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// ImportClients handles POST /clients/import (multipart file upload).
func (h *ClientHandler) ImportClients(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.RespondValidationFailed(c, "multipart field 'file' is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondInternalError(c, err)
		return
	}
	defer file.Close()

	result, err := h.importExportService.ImportClients(establishmentID, file)
	if err != nil {
		if errors.Is(err, services.ErrEmptyImportFile) {
			utils.RespondValidationFailed(c, "import file has no data rows")
			return
		}
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ClientHandler) respondClientError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrClientNotFound), errors.Is(err, services.ErrVehicleNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), ""))
	case errors.Is(err, services.ErrPlateTaken):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Plate already registered", ""))
	case errors.Is(err, services.ErrClientNameMissing), errors.Is(err, services.ErrPlateMissing):
		utils.RespondValidationFailed(c, err.Error())
	default:
		respondInternalError(c, err)
	}
}
