package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"facilicar_backend/internal/services"
	"facilicar_backend/pkg/utils"
)

// DashboardHandler exposes the summary and chart endpoints.
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetSummary handles GET /dashboard/summary?range=&start=&end=.
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	from, to, ok := h.resolveRange(c)
	if !ok {
		return
	}

	summary, err := h.dashboardService.GetSummary(establishmentID, from, to)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetRevenueTrend handles GET /dashboard/revenue-trend.
func (h *DashboardHandler) GetRevenueTrend(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	points, err := h.dashboardService.GetRevenueTrend(establishmentID, time.Now())
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, points)
}

// GetServiceDistribution handles GET /dashboard/service-distribution. The
// distribution is all-time, not range-bound.
func (h *DashboardHandler) GetServiceDistribution(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	slices, err := h.dashboardService.GetServiceDistribution(establishmentID)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, slices)
}

func (h *DashboardHandler) resolveRange(c *gin.Context) (time.Time, time.Time, bool) {
	var customFrom, customTo *time.Time
	if raw := c.Query("start"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			utils.RespondValidationFailed(c, "start must be YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		customFrom = &parsed
	}
	if raw := c.Query("end"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			utils.RespondValidationFailed(c, "end must be YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		customTo = &parsed
	}

	from, to, err := services.ResolveDateRange(c.Query("range"), customFrom, customTo, time.Now())
	if err != nil {
		if errors.Is(err, services.ErrInvalidDateRange) {
			utils.RespondValidationFailed(c, "invalid range parameters")
			return time.Time{}, time.Time{}, false
		}
		respondInternalError(c, err)
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
