package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"facilicar_backend/internal/models"
	"facilicar_backend/internal/services"
	"facilicar_backend/pkg/utils"
)

// ServiceHandler exposes the service catalog and price matrix endpoints.
type ServiceHandler struct {
	catalogService *services.ServiceCatalogService
}

// NewServiceHandler creates a new ServiceHandler.
func NewServiceHandler(catalogService *services.ServiceCatalogService) *ServiceHandler {
	return &ServiceHandler{catalogService: catalogService}
}

// servicePayload is the write shape: the catalog entry plus price matrix
// cells.
type servicePayload struct {
	Name              string                `json:"nome" binding:"required"`
	Description       *string               `json:"descricao"`
	EstimatedDuration *int                  `json:"duracao_estimada"`
	Active            *bool                 `json:"ativo"`
	Prices            []services.PriceInput `json:"precos"`
}

// GetServices handles GET /services?active=&with_prices=.
func (h *ServiceHandler) GetServices(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	list, err := h.catalogService.GetServices(establishmentID, c.Query("active") == "true", c.Query("with_prices") == "true")
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreateService handles POST /services.
func (h *ServiceHandler) CreateService(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	var payload servicePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	service := payload.toModel(establishmentID, 0)
	if err := h.catalogService.CreateService(service, payload.Prices); err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, service)
}

// UpdateService handles PUT /services/:id.
func (h *ServiceHandler) UpdateService(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var payload servicePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	service := payload.toModel(establishmentID, id)
	if err := h.catalogService.UpdateService(service, payload.Prices); err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, service)
}

// DeleteService handles DELETE /services/:id.
func (h *ServiceHandler) DeleteService(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.catalogService.DeleteService(id); err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (p servicePayload) toModel(establishmentID, id int64) *models.Service {
	service := &models.Service{
		ID:                id,
		Name:              p.Name,
		Description:       p.Description,
		EstimatedDuration: p.EstimatedDuration,
		Active:            true,
		EstablishmentID:   establishmentID,
	}
	if p.Active != nil {
		service.Active = *p.Active
	}
	return service
}

func (h *ServiceHandler) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrServiceNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Service not found", ""))
	case errors.Is(err, services.ErrUnknownCategory),
		errors.Is(err, services.ErrNegativePrice),
		errors.Is(err, services.ErrServiceNameMissing):
		utils.RespondValidationFailed(c, err.Error())
	default:
		respondInternalError(c, err)
	}
}
