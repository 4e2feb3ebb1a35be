package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"facilicar_backend/internal/models"
	"facilicar_backend/internal/services"
	"facilicar_backend/pkg/utils"
)

// CatalogHandler exposes product and supplier CRUD.
type CatalogHandler struct {
	catalogService *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// GetProducts handles GET /products.
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	products, err := h.catalogService.GetProducts(establishmentID)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// CreateProduct handles POST /products.
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	product.EstablishmentID = establishmentID
	if err := h.catalogService.CreateProduct(&product); err != nil {
		h.respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PUT /products/:id.
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	product.ID = id
	product.EstablishmentID = establishmentID
	if err := h.catalogService.UpdateProduct(&product); err != nil {
		h.respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /products/:id.
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.catalogService.DeleteProduct(id); err != nil {
		h.respondCatalogError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetSuppliers handles GET /suppliers.
func (h *CatalogHandler) GetSuppliers(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	suppliers, err := h.catalogService.GetSuppliers(establishmentID)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

// CreateSupplier handles POST /suppliers.
func (h *CatalogHandler) CreateSupplier(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	var supplier models.Supplier
	if err := c.ShouldBindJSON(&supplier); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	supplier.EstablishmentID = establishmentID
	if err := h.catalogService.CreateSupplier(&supplier); err != nil {
		h.respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, supplier)
}

// UpdateSupplier handles PUT /suppliers/:id.
func (h *CatalogHandler) UpdateSupplier(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var supplier models.Supplier
	if err := c.ShouldBindJSON(&supplier); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	supplier.ID = id
	supplier.EstablishmentID = establishmentID
	if err := h.catalogService.UpdateSupplier(&supplier); err != nil {
		h.respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplier)
}

// DeleteSupplier handles DELETE /suppliers/:id.
func (h *CatalogHandler) DeleteSupplier(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.catalogService.DeleteSupplier(id); err != nil {
		h.respondCatalogError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) respondCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProductNotFound), errors.Is(err, services.ErrSupplierNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), ""))
	case errors.Is(err, services.ErrProductNameMissing),
		errors.Is(err, services.ErrSupplierNameMissing),
		errors.Is(err, services.ErrNegativePrice),
		errors.Is(err, services.ErrNegativeStock):
		utils.RespondValidationFailed(c, err.Error())
	default:
		respondInternalError(c, err)
	}
}
