package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"facilicar_backend/internal/models"
	"facilicar_backend/internal/services"
	"facilicar_backend/pkg/utils"
)

// StaffHandler exposes employee and commissioned employee CRUD.
type StaffHandler struct {
	staffService *services.StaffService
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(staffService *services.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

// GetEmployees handles GET /employees.
func (h *StaffHandler) GetEmployees(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	employees, err := h.staffService.GetEmployees(establishmentID)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, employees)
}

// CreateEmployee handles POST /employees.
func (h *StaffHandler) CreateEmployee(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	var employee models.Employee
	if err := c.ShouldBindJSON(&employee); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	employee.EstablishmentID = establishmentID
	if err := h.staffService.CreateEmployee(&employee); err != nil {
		h.respondStaffError(c, err)
		return
	}
	c.JSON(http.StatusCreated, employee)
}

// UpdateEmployee handles PUT /employees/:id.
func (h *StaffHandler) UpdateEmployee(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var employee models.Employee
	if err := c.ShouldBindJSON(&employee); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	employee.ID = id
	employee.EstablishmentID = establishmentID
	if err := h.staffService.UpdateEmployee(&employee); err != nil {
		h.respondStaffError(c, err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

// DeleteEmployee handles DELETE /employees/:id.
func (h *StaffHandler) DeleteEmployee(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.staffService.DeleteEmployee(id); err != nil {
		h.respondStaffError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetCommissionedEmployees handles GET /commissioned-employees.
func (h *StaffHandler) GetCommissionedEmployees(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	employees, err := h.staffService.GetCommissionedEmployees(establishmentID)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, employees)
}

// CreateCommissionedEmployee handles POST /commissioned-employees.
func (h *StaffHandler) CreateCommissionedEmployee(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	var employee models.CommissionedEmployee
	if err := c.ShouldBindJSON(&employee); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	employee.EstablishmentID = establishmentID
	if err := h.staffService.CreateCommissionedEmployee(&employee); err != nil {
		h.respondStaffError(c, err)
		return
	}
	c.JSON(http.StatusCreated, employee)
}

// UpdateCommissionedEmployee handles PUT /commissioned-employees/:id.
func (h *StaffHandler) UpdateCommissionedEmployee(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var employee models.CommissionedEmployee
	if err := c.ShouldBindJSON(&employee); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	employee.ID = id
	employee.EstablishmentID = establishmentID
	if err := h.staffService.UpdateCommissionedEmployee(&employee); err != nil {
		h.respondStaffError(c, err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

// DeleteCommissionedEmployee handles DELETE /commissioned-employees/:id.
func (h *StaffHandler) DeleteCommissionedEmployee(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.staffService.DeleteCommissionedEmployee(id); err != nil {
		h.respondStaffError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *StaffHandler) respondStaffError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmployeeNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Employee not found", ""))
	case errors.Is(err, services.ErrEmployeeNameMissing),
		errors.Is(err, services.ErrNegativeSalary),
		errors.Is(err, services.ErrInvalidCommission):
		utils.RespondValidationFailed(c, err.Error())
	default:
		respondInternalError(c, err)
	}
}
