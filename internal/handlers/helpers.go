package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"facilicar_backend/internal/middleware"
	"facilicar_backend/internal/services"
	"facilicar_backend/pkg/utils"
)

// idParam parses the :id path segment, responding 400 itself on failure.
func idParam(c *gin.Context) (int64, bool) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil || id <= 0 {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid id parameter", ""))
		return 0, false
	}
	return id, true
}

// tenantScope resolves which establishment the request operates on. Regular
// users are pinned to their own; super admins may select one with
// ?establishment_id=. Responds 403 itself when no tenant can be resolved.
func tenantScope(c *gin.Context) (int64, services.Permissions, bool) {
	permissions := middleware.GetPermissions(c)

	if raw := c.Query("establishment_id"); raw != "" && permissions.IsSuperAdmin {
		id, err := utils.StrToInt64(raw)
		if err != nil || id <= 0 {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid establishment_id", ""))
			return 0, permissions, false
		}
		return id, permissions, true
	}

	if permissions.EstablishmentID == nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "User is not bound to an establishment", ""))
		return 0, permissions, false
	}
	return *permissions.EstablishmentID, permissions, true
}

// currentUserID returns the authenticated user id as a nullable pointer for
// created_by columns.
func currentUserID(c *gin.Context) *int64 {
	id := c.GetInt64(utils.ContextUserID)
	if id == 0 {
		return nil
	}
	return &id
}

func respondInternalError(c *gin.Context, err error) {
	utils.LogError(err, "request failed")
	utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "An unexpected error occurred", ""))
}
