package router

import (
	"database/sql"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"facilicar_backend/internal/handlers"
	"facilicar_backend/internal/middleware"
	"facilicar_backend/internal/repositories"
	"facilicar_backend/internal/services"
	"facilicar_backend/pkg/utils"
)

// Setup wires repositories, services and handlers onto a gin engine.
func Setup(db *sql.DB) *gin.Engine {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	clientRepo := repositories.NewClientRepository(db)
	categoryRepo := repositories.NewVehicleCategoryRepository(db)
	serviceRepo := repositories.NewServiceRepository(db)
	appointmentRepo := repositories.NewAppointmentRepository(db)
	financeRepo := repositories.NewFinanceRepository(db)
	estRepo := repositories.NewEstablishmentRepository(db)
	staffRepo := repositories.NewStaffRepository(db)
	catalogRepo := repositories.NewCatalogRepository(db)

	// Services
	hub := services.NewNotificationHub()
	permissionService := services.NewPermissionService(userRepo)
	authService := services.NewAuthService(db, userRepo, estRepo)
	userService := services.NewUserService(db, userRepo)
	clientService := services.NewClientService(db, clientRepo)
	categoryService := services.NewCategoryService(db, categoryRepo)
	serviceCatalog := services.NewServiceCatalogService(db, serviceRepo, categoryRepo)
	appointmentService := services.NewAppointmentService(db, appointmentRepo, clientRepo, serviceCatalog, financeRepo, hub)
	dashboardService := services.NewDashboardService(appointmentRepo)
	importExportService := services.NewImportExportService(db, clientRepo)
	addressService := services.NewAddressService()
	establishmentService := services.NewEstablishmentService(db, estRepo)
	staffService := services.NewStaffService(db, staffRepo)
	catalogService := services.NewCatalogService(db, catalogRepo)
	financeService := services.NewFinanceService(db, financeRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	clientHandler := handlers.NewClientHandler(clientService, importExportService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	serviceHandler := handlers.NewServiceHandler(serviceCatalog)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	establishmentHandler := handlers.NewEstablishmentHandler(establishmentService)
	staffHandler := handlers.NewStaffHandler(staffService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	financeHandler := handlers.NewFinanceHandler(financeService)
	addressHandler := handlers.NewAddressHandler(addressService)
	notificationHandler := handlers.NewNotificationHandler(hub)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(utils.GinLogger())
	engine.Use(cors.New(corsConfig()))

	registerRoutes(engine, permissionService, routeHandlers{
		auth:          authHandler,
		user:          userHandler,
		client:        clientHandler,
		category:      categoryHandler,
		service:       serviceHandler,
		appointment:   appointmentHandler,
		dashboard:     dashboardHandler,
		establishment: establishmentHandler,
		staff:         staffHandler,
		catalog:       catalogHandler,
		finance:       financeHandler,
		address:       addressHandler,
		notification:  notificationHandler,
	})
	return engine
}

func corsConfig() cors.Config {
	config := cors.DefaultConfig()
	origins := utils.Getenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	config.AllowOrigins = strings.Split(origins, ",")
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	config.ExposeHeaders = []string{"Content-Disposition", "X-Request-ID"}
	config.AllowCredentials = true
	config.MaxAge = 12 * time.Hour
	return config
}
