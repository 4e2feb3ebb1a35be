package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"facilicar_backend/internal/models"
	"facilicar_backend/internal/services"
	"facilicar_backend/pkg/utils"
)

// AppointmentHandler exposes the appointment lifecycle and operational view
// endpoints.
type AppointmentHandler struct {
	appointmentService *services.AppointmentService
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(appointmentService *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// GetAppointments handles GET /appointments?status=&from=&to=.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}

	filters := models.AppointmentFilters{EstablishmentID: establishmentID}
	if status := c.Query("status"); status != "" {
		if !models.IsValidAppointmentStatus(status) {
			utils.RespondValidationFailed(c, "unknown status: "+status)
			return
		}
		filters.Statuses = []models.AppointmentStatus{models.AppointmentStatus(status)}
	}
	var ok2 bool
	if filters.DateFrom, filters.DateTo, ok2 = dateRangeQuery(c); !ok2 {
		return
	}

	appointments, err := h.appointmentService.GetAppointments(filters)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointments)
}

// LookupPlate handles GET /appointments/plate-lookup?placa=. A miss is a
// 404 so the caller opens the inline client+vehicle form.
func (h *AppointmentHandler) LookupPlate(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	plate := c.Query("placa")
	if utils.IsEmpty(plate) {
		utils.RespondValidationFailed(c, "placa query parameter is required")
		return
	}

	result, err := h.appointmentService.LookupByPlate(establishmentID, plate)
	if err != nil {
		if errors.Is(err, services.ErrVehicleNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Vehicle not found", ""))
			return
		}
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreateAppointment handles POST /appointments.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	var req services.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	appointment, err := h.appointmentService.CreateAppointment(establishmentID, currentUserID(c), req)
	if err != nil {
		h.respondAppointmentError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appointment)
}

// UpdateAppointment handles PUT /appointments/:id.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req services.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	appointment, err := h.appointmentService.UpdateAppointment(establishmentID, id, req)
	if err != nil {
		h.respondAppointmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}

// ChangeStatus handles PATCH /appointments/:id/status.
func (h *AppointmentHandler) ChangeStatus(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	appointment, err := h.appointmentService.ChangeStatus(establishmentID, id, models.AppointmentStatus(req.Status))
	if err != nil {
		h.respondAppointmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}

// Finish handles POST /appointments/:id/finish.
func (h *AppointmentHandler) Finish(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req services.FinishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	appointment, err := h.appointmentService.Finish(establishmentID, id, currentUserID(c), req)
	if err != nil {
		h.respondAppointmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}

// DeleteAppointment handles DELETE /appointments/:id.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.appointmentService.DeleteAppointment(establishmentID, id); err != nil {
		h.respondAppointmentError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetOperational handles GET /operational: the shop-floor queue of
// non-terminal appointments in scheduling order.
func (h *AppointmentHandler) GetOperational(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	appointments, err := h.appointmentService.GetOperational(establishmentID)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointments)
}

// GetHistory handles GET /operational/history?from=&to=.
func (h *AppointmentHandler) GetHistory(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	from, to, ok := dateRangeQuery(c)
	if !ok {
		return
	}
	entries, err := h.appointmentService.GetHistory(establishmentID, from, to)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// dateRangeQuery parses optional from/to query dates (YYYY-MM-DD). The end
// date is made exclusive by advancing one day.
func dateRangeQuery(c *gin.Context) (*time.Time, *time.Time, bool) {
	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			utils.RespondValidationFailed(c, "from must be YYYY-MM-DD")
			return nil, nil, false
		}
		from = &parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			utils.RespondValidationFailed(c, "to must be YYYY-MM-DD")
			return nil, nil, false
		}
		exclusive := parsed.AddDate(0, 0, 1)
		to = &exclusive
	}
	return from, to, true
}

func (h *AppointmentHandler) respondAppointmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAppointmentNotFound),
		errors.Is(err, services.ErrVehicleNotFound),
		errors.Is(err, services.ErrServiceNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), ""))
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrAppointmentTerminal),
		errors.Is(err, services.ErrCompletionConflict):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), ""))
	case errors.Is(err, services.ErrNoServicesSelected),
		errors.Is(err, services.ErrServiceUnavailable),
		errors.Is(err, services.ErrVehicleWithoutCategory),
		errors.Is(err, services.ErrPaymentMethodMissing),
		errors.Is(err, services.ErrNegativeAmount):
		utils.RespondValidationFailed(c, err.Error())
	default:
		respondInternalError(c, err)
	}
}
