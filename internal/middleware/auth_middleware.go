package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"facilicar_backend/internal/services"
	"facilicar_backend/pkg/utils"
)

// RequestID tags every request with a UUID, echoed in the X-Request-ID
// response header and carried into the request log.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(utils.ContextRequestID, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// AuthMiddleware validates the Bearer token and stores the claims in the
// context for downstream handlers.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authorization header required", ""))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authorization header must be Bearer token", ""))
			return
		}

		claims, err := utils.ValidateToken(parts[1])
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid or expired token", ""))
			return
		}

		c.Set(utils.ContextUserID, claims.UserID)
		c.Set(utils.ContextUserEmail, claims.Email)
		c.Set(utils.ContextUserRole, claims.Role)
		c.Next()
	}
}

// PermissionsMiddleware resolves the authenticated user's capability set
// once per request. Must run after AuthMiddleware.
func PermissionsMiddleware(permissionService *services.PermissionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64(utils.ContextUserID)
		if userID == 0 {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authentication required", ""))
			return
		}
		c.Set(utils.ContextPermissions, permissionService.Resolve(userID))
		c.Next()
	}
}

// GetPermissions reads the resolved capability set from the context,
// degrading to an empty colaborador set when the middleware did not run.
func GetPermissions(c *gin.Context) services.Permissions {
	if value, ok := c.Get(utils.ContextPermissions); ok {
		if permissions, ok := value.(services.Permissions); ok {
			return permissions
		}
	}
	return services.Permissions{UserID: c.GetInt64(utils.ContextUserID)}
}

// RequireAdmin gates routes to establishment admins and super admins.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetPermissions(c).IsAdmin() {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Admin role required", ""))
			return
		}
		c.Next()
	}
}

// RequireSuperAdmin gates routes to super admins only.
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetPermissions(c).IsSuperAdmin {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Super admin role required", ""))
			return
		}
		c.Next()
	}
}
