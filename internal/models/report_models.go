package models

// DashboardMetrics is the summary payload for the dashboard screen.
type DashboardMetrics struct {
	RevenueToday         float64 `json:"revenue_today"`
	OrdersToday          int     `json:"orders_today"`
	PendingOrders        int     `json:"pending_orders"`
	OccupiedTables       int     `json:"occupied_tables"`
	TotalTables          int     `json:"total_tables"`
	LowStockItems        int     `json:"low_stock_items"`
	UpcomingReservations int     `json:"upcoming_reservations"`
	TotalCustomers       int     `json:"total_customers"`
}

// CategorySales is one row of the sales-by-category report.
type CategorySales struct {
	Category string  `json:"category"`
	Orders   int     `json:"orders"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// TopItem is one row of the top-selling-items report.
type TopItem struct {
	MenuItemID int64   `json:"menu_item_id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Revenue    float64 `json:"revenue"`
}

// OrderStats aggregates order counts and revenue over a date range.
type OrderStats struct {
	TotalOrders     int     `json:"total_orders"`
	CompletedOrders int     `json:"completed_orders"`
	CancelledOrders int     `json:"cancelled_orders"`
	TotalRevenue    float64 `json:"total_revenue"`
	AverageOrder    float64 `json:"average_order"`
}

// ExpenseStats aggregates expenses over a date range.
type ExpenseStats struct {
	TotalExpenses float64            `json:"total_expenses"`
	Count         int                `json:"count"`
	ByCategory    map[string]float64 `json:"by_category"`
}

// ReportRange is an optional date window for aggregation queries.
type ReportRange struct {
	StartDate *string // YYYY-MM-DD
	EndDate   *string // YYYY-MM-DD
}
