package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"facilicar_backend/internal/models"
	"facilicar_backend/internal/services"
	"facilicar_backend/pkg/utils"
)

// EstablishmentHandler exposes tenant management (super admin) and the
// own-establishment settings endpoint (admin).
type EstablishmentHandler struct {
	establishmentService *services.EstablishmentService
}

// NewEstablishmentHandler creates a new EstablishmentHandler.
func NewEstablishmentHandler(establishmentService *services.EstablishmentService) *EstablishmentHandler {
	return &EstablishmentHandler{establishmentService: establishmentService}
}

// GetEstablishments handles GET /establishments (super admin).
func (h *EstablishmentHandler) GetEstablishments(c *gin.Context) {
	establishments, err := h.establishmentService.GetEstablishments()
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, establishments)
}

// GetEstablishment handles GET /establishments/:id.
func (h *EstablishmentHandler) GetEstablishment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	establishment, err := h.establishmentService.GetEstablishment(id)
	if err != nil {
		h.respondEstablishmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, establishment)
}

// CreateEstablishment handles POST /establishments (super admin).
func (h *EstablishmentHandler) CreateEstablishment(c *gin.Context) {
	var establishment models.Establishment
	if err := c.ShouldBindJSON(&establishment); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	if err := h.establishmentService.CreateEstablishment(&establishment); err != nil {
		h.respondEstablishmentError(c, err)
		return
	}
	c.JSON(http.StatusCreated, establishment)
}

// UpdateEstablishment handles PUT /establishments/:id (super admin, any
// tenant).
func (h *EstablishmentHandler) UpdateEstablishment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var establishment models.Establishment
	if err := c.ShouldBindJSON(&establishment); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	establishment.ID = id
	if err := h.establishmentService.UpdateEstablishment(&establishment); err != nil {
		h.respondEstablishmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, establishment)
}

// SetActive handles PATCH /establishments/:id/active (super admin).
func (h *EstablishmentHandler) SetActive(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		Active *bool `json:"ativo" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	if err := h.establishmentService.SetActive(id, *req.Active); err != nil {
		h.respondEstablishmentError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetSettings handles GET /settings: the admin's own establishment record.
func (h *EstablishmentHandler) GetSettings(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	establishment, err := h.establishmentService.GetEstablishment(establishmentID)
	if err != nil {
		h.respondEstablishmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, establishment)
}

// UpdateSettings handles PUT /settings: admins edit their own establishment
// only; the tenant scope pins the id.
func (h *EstablishmentHandler) UpdateSettings(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	var establishment models.Establishment
	if err := c.ShouldBindJSON(&establishment); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	establishment.ID = establishmentID
	if err := h.establishmentService.UpdateEstablishment(&establishment); err != nil {
		h.respondEstablishmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, establishment)
}

func (h *EstablishmentHandler) respondEstablishmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEstablishmentNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Establishment not found", ""))
	case errors.Is(err, services.ErrEstablishmentNameMissing):
		utils.RespondValidationFailed(c, err.Error())
	default:
		respondInternalError(c, err)
	}
}
