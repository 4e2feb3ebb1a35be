package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facilicar_backend/internal/services"
	"facilicar_backend/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func authTestRouter(extra ...gin.HandlerFunc) *gin.Engine {
	engine := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetInt64(utils.ContextUserID)})
	})
	engine.GET("/protected", handlers...)
	return engine
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	token, err := utils.GenerateAccessToken(42, "maria@example.com", "admin")
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	authTestRouter().ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"user_id":42`)
}

func TestAuthMiddlewareRejectsBadHeaders(t *testing.T) {
	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no scheme", "sometoken"},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not-a-token"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				request.Header.Set("Authorization", tc.header)
			}
			authTestRouter().ServeHTTP(recorder, request)
			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		})
	}
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))

	recorder = httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("X-Request-ID", "trace-123")
	engine.ServeHTTP(recorder, request)
	assert.Equal(t, "trace-123", recorder.Header().Get("X-Request-ID"))
}

func TestRequireAdmin(t *testing.T) {
	engine := gin.New()
	engine.GET("/admin",
		func(c *gin.Context) {
			c.Set(utils.ContextPermissions, services.Permissions{UserID: 1, Role: "colaborador"})
		},
		RequireAdmin(),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	engine = gin.New()
	engine.GET("/admin",
		func(c *gin.Context) {
			c.Set(utils.ContextPermissions, services.Permissions{UserID: 1, Role: "admin"})
		},
		RequireAdmin(),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	recorder = httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestRequireSuperAdmin(t *testing.T) {
	engine := gin.New()
	engine.GET("/super",
		func(c *gin.Context) {
			c.Set(utils.ContextPermissions, services.Permissions{UserID: 1, Role: "admin"})
		},
		RequireSuperAdmin(),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/super", nil))
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestGetPermissionsFallback(t *testing.T) {
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Set(utils.ContextUserID, int64(5))

	perms := GetPermissions(c)
	assert.Equal(t, int64(5), perms.UserID)
	assert.False(t, perms.IsAdmin())
}
