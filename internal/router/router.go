package router

import (
	"database/sql"
	"net/http"

	"resto_pos_backend/internal/handlers"
	"resto_pos_backend/internal/middleware"
	"resto_pos_backend/internal/repositories"
	"resto_pos_backend/internal/services"
	"resto_pos_backend/internal/tenant"

	"github.com/gin-gonic/gin"
)

// Setup wires repositories, services and handlers and registers all routes.
// masterDB is the registry store; tenant databases are resolved per request
// through the pool.
func Setup(engine *gin.Engine, masterDB *sql.DB, pool *tenant.Pool, provisioner *tenant.Provisioner) {
	// Repositories. The master repository is bound to the registry store;
	// tenant repositories are stateless and receive the request's tenant
	// handle per call.
	masterRepo := repositories.NewMasterRepository(masterDB)
	menuRepo := repositories.NewMenuRepository()
	orderRepo := repositories.NewOrderRepository()
	tableRepo := repositories.NewTableRepository()
	customerRepo := repositories.NewCustomerRepository()
	inventoryRepo := repositories.NewInventoryRepository()
	staffRepo := repositories.NewStaffRepository()
	reservationRepo := repositories.NewReservationRepository()
	expenseRepo := repositories.NewExpenseRepository()
	taxRepo := repositories.NewTaxRepository()
	reportRepo := repositories.NewReportRepository()

	// Services
	authService := services.NewAuthService(masterRepo, masterDB, provisioner)
	menuService := services.NewMenuService(menuRepo)
	orderService := services.NewOrderService(orderRepo, menuRepo, taxRepo, customerRepo)
	tableService := services.NewTableService(tableRepo)
	customerService := services.NewCustomerService(customerRepo)
	inventoryService := services.NewInventoryService(inventoryRepo)
	staffService := services.NewStaffService(staffRepo)
	reservationService := services.NewReservationService(reservationRepo, tableRepo)
	expenseService := services.NewExpenseService(expenseRepo)
	taxService := services.NewTaxService(taxRepo)
	reportService := services.NewReportService(reportRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	menuHandler := handlers.NewMenuHandler(menuService)
	orderHandler := handlers.NewOrderHandler(orderService)
	tableHandler := handlers.NewTableHandler(tableService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	staffHandler := handlers.NewStaffHandler(staffService)
	reservationHandler := handlers.NewReservationHandler(reservationService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	taxHandler := handlers.NewTaxHandler(taxService)
	reportHandler := handlers.NewReportHandler(reportService)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")

	// Public routes: signup provisions a tenant database, login issues a
	// restaurant-bound session.
	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)

	// Everything else requires a valid session and a resolvable restaurant.
	authenticated := api.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	authenticated.POST("/auth/logout", authHandler.Logout)
	authenticated.GET("/auth/me", authHandler.GetCurrentUser)

	tenanted := authenticated.Group("")
	tenanted.Use(middleware.TenantMiddleware(masterRepo, pool))
	{
		SetupMenuRoutes(tenanted, menuHandler)
		SetupOrderRoutes(tenanted, orderHandler)
		SetupTableRoutes(tenanted, tableHandler)
		SetupCustomerRoutes(tenanted, customerHandler)
		SetupInventoryRoutes(tenanted, inventoryHandler)
		SetupStaffRoutes(tenanted, staffHandler)
		SetupReservationRoutes(tenanted, reservationHandler)
		SetupExpenseRoutes(tenanted, expenseHandler)
		SetupTaxRoutes(tenanted, taxHandler)
		SetupReportRoutes(tenanted, reportHandler)
	}
}
