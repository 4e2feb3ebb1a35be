package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"facilicar_backend/internal/models"
	"facilicar_backend/internal/services"
	"facilicar_backend/pkg/utils"
)

// CategoryHandler exposes vehicle category CRUD.
type CategoryHandler struct {
	categoryService *services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// GetCategories handles GET /categories?active=.
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	categories, err := h.categoryService.GetCategories(establishmentID, c.Query("active") == "true")
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// CreateCategory handles POST /categories.
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	var category models.VehicleCategory
	if err := c.ShouldBindJSON(&category); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	category.EstablishmentID = establishmentID
	if err := h.categoryService.CreateCategory(&category); err != nil {
		h.respondCategoryError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// UpdateCategory handles PUT /categories/:id.
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var category models.VehicleCategory
	if err := c.ShouldBindJSON(&category); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	category.ID = id
	category.EstablishmentID = establishmentID
	if err := h.categoryService.UpdateCategory(&category); err != nil {
		h.respondCategoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory handles DELETE /categories/:id.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.categoryService.DeleteCategory(id); err != nil {
		h.respondCategoryError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CategoryHandler) respondCategoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCategoryNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Category not found", ""))
	case errors.Is(err, services.ErrCategoryNameTaken):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Category name already exists", ""))
	case errors.Is(err, services.ErrCategoryNameMissing):
		utils.RespondValidationFailed(c, err.Error())
	default:
		respondInternalError(c, err)
	}
}
