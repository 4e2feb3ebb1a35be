package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"facilicar_backend/internal/handlers"
	"facilicar_backend/internal/middleware"
	"facilicar_backend/internal/services"
)

type routeHandlers struct {
	auth          *handlers.AuthHandler
	user          *handlers.UserHandler
	client        *handlers.ClientHandler
	category      *handlers.CategoryHandler
	service       *handlers.ServiceHandler
	appointment   *handlers.AppointmentHandler
	dashboard     *handlers.DashboardHandler
	establishment *handlers.EstablishmentHandler
	staff         *handlers.StaffHandler
	catalog       *handlers.CatalogHandler
	finance       *handlers.FinanceHandler
	address       *handlers.AddressHandler
	notification  *handlers.NotificationHandler
}

func registerRoutes(engine *gin.Engine, permissionService *services.PermissionService, h routeHandlers) {
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")

	// Public routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.auth.Register)
		auth.POST("/login", h.auth.Login)
		auth.POST("/refresh-token", h.auth.Refresh)
	}
	api.GET("/address/:cep", h.address.Lookup)

	// Authenticated routes
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(), middleware.PermissionsMiddleware(permissionService))
	{
		authed.GET("/auth/me", h.auth.Me)

		authed.GET("/appointments", h.appointment.GetAppointments)
		authed.GET("/appointments/plate-lookup", h.appointment.LookupPlate)
		authed.POST("/appointments", h.appointment.CreateAppointment)
		authed.PUT("/appointments/:id", h.appointment.UpdateAppointment)
		authed.PATCH("/appointments/:id/status", h.appointment.ChangeStatus)
		authed.POST("/appointments/:id/finish", h.appointment.Finish)
		authed.DELETE("/appointments/:id", h.appointment.DeleteAppointment)

		authed.GET("/operational", h.appointment.GetOperational)
		authed.GET("/operational/history", h.appointment.GetHistory)

		authed.GET("/clients", h.client.GetClients)
		authed.GET("/clients/export", h.client.ExportClients)
		authed.POST("/clients/import", h.client.ImportClients)
		authed.GET("/clients/:id", h.client.GetClient)
		authed.POST("/clients", h.client.CreateClient)
		authed.POST("/clients/with-vehicle", h.client.CreateClientWithVehicle)
		authed.PUT("/clients/:id", h.client.UpdateClient)
		authed.DELETE("/clients/:id", h.client.DeleteClient)

		authed.POST("/vehicles", h.client.CreateVehicle)
		authed.PUT("/vehicles/:id", h.client.UpdateVehicle)
		authed.DELETE("/vehicles/:id", h.client.DeleteVehicle)

		authed.GET("/categories", h.category.GetCategories)
		authed.GET("/services", h.service.GetServices)
		authed.GET("/payment-methods", h.finance.GetPaymentMethods)

		authed.GET("/notifications/stream", h.notification.Stream)
	}

	// Admin routes: settings, staff, catalog, finances, dashboard
	admin := api.Group("")
	admin.Use(middleware.AuthMiddleware(), middleware.PermissionsMiddleware(permissionService), middleware.RequireAdmin())
	{
		admin.GET("/dashboard/summary", h.dashboard.GetSummary)
		admin.GET("/dashboard/revenue-trend", h.dashboard.GetRevenueTrend)
		admin.GET("/dashboard/service-distribution", h.dashboard.GetServiceDistribution)

		admin.POST("/categories", h.category.CreateCategory)
		admin.PUT("/categories/:id", h.category.UpdateCategory)
		admin.DELETE("/categories/:id", h.category.DeleteCategory)

		admin.POST("/services", h.service.CreateService)
		admin.PUT("/services/:id", h.service.UpdateService)
		admin.DELETE("/services/:id", h.service.DeleteService)

		admin.GET("/users", h.user.GetUsers)
		admin.PUT("/users/:id", h.user.UpdateUser)
		admin.DELETE("/users/:id", h.user.DeleteUser)

		admin.GET("/transactions", h.finance.GetTransactions)
		admin.POST("/transactions", h.finance.CreateTransaction)
		admin.PUT("/transactions/:id", h.finance.UpdateTransaction)
		admin.DELETE("/transactions/:id", h.finance.DeleteTransaction)

		admin.POST("/payment-methods", h.finance.CreatePaymentMethod)
		admin.PUT("/payment-methods/:id", h.finance.UpdatePaymentMethod)
		admin.DELETE("/payment-methods/:id", h.finance.DeletePaymentMethod)

		admin.GET("/employees", h.staff.GetEmployees)
		admin.POST("/employees", h.staff.CreateEmployee)
		admin.PUT("/employees/:id", h.staff.UpdateEmployee)
		admin.DELETE("/employees/:id", h.staff.DeleteEmployee)

		admin.GET("/commissioned-employees", h.staff.GetCommissionedEmployees)
		admin.POST("/commissioned-employees", h.staff.CreateCommissionedEmployee)
		admin.PUT("/commissioned-employees/:id", h.staff.UpdateCommissionedEmployee)
		admin.DELETE("/commissioned-employees/:id", h.staff.DeleteCommissionedEmployee)

		admin.GET("/products", h.catalog.GetProducts)
		admin.POST("/products", h.catalog.CreateProduct)
		admin.PUT("/products/:id", h.catalog.UpdateProduct)
		admin.DELETE("/products/:id", h.catalog.DeleteProduct)

		admin.GET("/suppliers", h.catalog.GetSuppliers)
		admin.POST("/suppliers", h.catalog.CreateSupplier)
		admin.PUT("/suppliers/:id", h.catalog.UpdateSupplier)
		admin.DELETE("/suppliers/:id", h.catalog.DeleteSupplier)

		admin.GET("/settings", h.establishment.GetSettings)
		admin.PUT("/settings", h.establishment.UpdateSettings)
	}

	// Super admin routes: tenant management
	super := api.Group("/establishments")
	super.Use(middleware.AuthMiddleware(), middleware.PermissionsMiddleware(permissionService), middleware.RequireSuperAdmin())
	{
		super.GET("", h.establishment.GetEstablishments)
		super.GET("/:id", h.establishment.GetEstablishment)
		super.POST("", h.establishment.CreateEstablishment)
		super.PUT("/:id", h.establishment.UpdateEstablishment)
		super.PATCH("/:id/active", h.establishment.SetActive)
	}
}
