package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"facilicar_backend/internal/models"
	"facilicar_backend/internal/services"
	"facilicar_backend/pkg/utils"
)

// AddressHandler exposes the CEP autofill endpoint.
type AddressHandler struct {
	addressService *services.AddressService
}

// NewAddressHandler creates a new AddressHandler.
func NewAddressHandler(addressService *services.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

// Lookup handles GET /address/:cep. A malformed CEP is a 400; upstream
// failures and unknown codes return an empty address object so the settings
// form degrades to manual entry instead of breaking.
func (h *AddressHandler) Lookup(c *gin.Context) {
	address, err := h.addressService.Lookup(c.Request.Context(), c.Param("cep"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidCEP) {
			utils.RespondValidationFailed(c, err.Error())
			return
		}
		utils.LogWarn("cep lookup failed", map[string]interface{}{"error": err.Error()})
		c.JSON(http.StatusOK, models.Address{})
		return
	}
	c.JSON(http.StatusOK, address)
}
