package router

import (
	"resto_pos_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupMenuRoutes registers menu item routes.
func SetupMenuRoutes(group *gin.RouterGroup, h *handlers.MenuHandler) {
	menu := group.Group("/menu")
	{
		menu.POST("", h.CreateMenuItem)
		menu.GET("", h.GetMenuItems)
		menu.GET("/categories", h.GetMenuCategories)
		menu.GET("/:id", h.GetMenuItem)
		menu.PUT("/:id", h.UpdateMenuItem)
		menu.DELETE("/:id", h.DeleteMenuItem)
	}
}

// SetupOrderRoutes registers order routes.
func SetupOrderRoutes(group *gin.RouterGroup, h *handlers.OrderHandler) {
	orders := group.Group("/orders")
	{
		orders.POST("", h.CreateOrder)
		orders.GET("", h.GetOrders)
		orders.GET("/:id", h.GetOrder)
		orders.PUT("/:id", h.UpdateOrder)
		orders.PATCH("/:id/status", h.UpdateOrderStatus)
		orders.DELETE("/:id", h.DeleteOrder)
	}
}

// SetupTableRoutes registers floor table routes.
func SetupTableRoutes(group *gin.RouterGroup, h *handlers.TableHandler) {
	tables := group.Group("/tables")
	{
		tables.POST("", h.CreateTable)
		tables.GET("", h.GetTables)
		tables.GET("/stats", h.GetTableStats)
		tables.GET("/:id", h.GetTable)
		tables.PATCH("/:id/status", h.UpdateTableStatus)
		tables.DELETE("/:id", h.DeleteTable)
	}
}

// SetupCustomerRoutes registers customer and loyalty routes.
func SetupCustomerRoutes(group *gin.RouterGroup, h *handlers.CustomerHandler) {
	customers := group.Group("/customers")
	{
		customers.POST("", h.CreateCustomer)
		customers.GET("", h.GetCustomers)
		customers.GET("/:id", h.GetCustomer)
		customers.PUT("/:id", h.UpdateCustomer)
		customers.DELETE("/:id", h.DeleteCustomer)
		customers.POST("/:id/loyalty/redeem", h.RedeemPoints)
		customers.GET("/:id/loyalty", h.GetLoyaltyHistory)
	}
}

// SetupInventoryRoutes registers inventory item and supplier routes.
func SetupInventoryRoutes(group *gin.RouterGroup, h *handlers.InventoryHandler) {
	inventory := group.Group("/inventory")
	{
		inventory.POST("", h.CreateItem)
		inventory.GET("", h.GetItems)
		inventory.GET("/:id", h.GetItem)
		inventory.PUT("/:id", h.UpdateItem)
		inventory.DELETE("/:id", h.DeleteItem)
	}
	suppliers := group.Group("/suppliers")
	{
		suppliers.POST("", h.CreateSupplier)
		suppliers.GET("", h.GetSuppliers)
		suppliers.GET("/:id", h.GetSupplier)
		suppliers.PUT("/:id", h.UpdateSupplier)
		suppliers.DELETE("/:id", h.DeleteSupplier)
	}
}

// SetupStaffRoutes registers staff, shift and salary routes.
func SetupStaffRoutes(group *gin.RouterGroup, h *handlers.StaffHandler) {
	staff := group.Group("/staff")
	{
		staff.POST("", h.CreateStaff)
		staff.GET("", h.GetStaff)
		staff.GET("/roles", h.GetRoles)
		staff.GET("/:id", h.GetStaffMember)
		staff.PUT("/:id", h.UpdateStaff)
		staff.DELETE("/:id", h.DeleteStaff)
	}
	shifts := group.Group("/shifts")
	{
		shifts.POST("", h.ClockIn)
		shifts.GET("", h.GetShifts)
		shifts.PATCH("/:id/clock-out", h.ClockOut)
		shifts.DELETE("/:id", h.DeleteShift)
	}
	salaries := group.Group("/salary-payments")
	{
		salaries.POST("", h.RecordSalaryPayment)
		salaries.GET("", h.GetSalaryPayments)
		salaries.DELETE("/:id", h.DeleteSalaryPayment)
	}
}

// SetupReservationRoutes registers reservation routes.
func SetupReservationRoutes(group *gin.RouterGroup, h *handlers.ReservationHandler) {
	reservations := group.Group("/reservations")
	{
		reservations.POST("", h.CreateReservation)
		reservations.GET("", h.GetReservations)
		reservations.GET("/:id", h.GetReservation)
		reservations.PUT("/:id", h.UpdateReservation)
		reservations.PATCH("/:id/status", h.UpdateReservationStatus)
		reservations.DELETE("/:id", h.DeleteReservation)
	}
}

// SetupExpenseRoutes registers expense routes.
func SetupExpenseRoutes(group *gin.RouterGroup, h *handlers.ExpenseHandler) {
	expenses := group.Group("/expenses")
	{
		expenses.POST("", h.CreateExpense)
		expenses.GET("", h.GetExpenses)
		expenses.GET("/stats", h.GetExpenseStats)
		expenses.GET("/:id", h.GetExpense)
		expenses.PUT("/:id", h.UpdateExpense)
		expenses.DELETE("/:id", h.DeleteExpense)
	}
}

// SetupTaxRoutes registers tax rule routes.
func SetupTaxRoutes(group *gin.RouterGroup, h *handlers.TaxHandler) {
	taxes := group.Group("/tax-rules")
	{
		taxes.POST("", h.CreateTaxRule)
		taxes.GET("", h.GetTaxRules)
		taxes.GET("/:id", h.GetTaxRule)
		taxes.PUT("/:id", h.UpdateTaxRule)
		taxes.DELETE("/:id", h.DeleteTaxRule)
	}
}

// SetupReportRoutes registers reporting routes.
func SetupReportRoutes(group *gin.RouterGroup, h *handlers.ReportHandler) {
	reports := group.Group("/reports")
	{
		reports.GET("/dashboard", h.GetDashboard)
		reports.GET("/sales-by-category", h.GetSalesByCategory)
		reports.GET("/top-items", h.GetTopItems)
		reports.GET("/order-stats", h.GetOrderStats)
	}
}
