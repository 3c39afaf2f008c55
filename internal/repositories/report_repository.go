package repositories

import (
	"fmt"
	"strings"
	"time"

	"resto_pos_backend/internal/models"
)

// ReportRepository defines the read-side aggregation queries over a tenant
// store's orders and related tables.
type ReportRepository interface {
	GetDashboardMetrics(executor SQLExecutor, now time.Time) (*models.DashboardMetrics, error)
	GetSalesByCategory(executor SQLExecutor, dateRange models.ReportRange) ([]models.CategorySales, error)
	GetTopItems(executor SQLExecutor, dateRange models.ReportRange, limit int) ([]models.TopItem, error)
	GetOrderStats(executor SQLExecutor, dateRange models.ReportRange) (*models.OrderStats, error)
}

type reportRepository struct{}

// NewReportRepository creates a new instance of ReportRepository.
func NewReportRepository() ReportRepository {
	return &reportRepository{}
}

func (r *reportRepository) GetDashboardMetrics(executor SQLExecutor, now time.Time) (*models.DashboardMetrics, error) {
	metrics := &models.DashboardMetrics{}
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1).Add(-time.Nanosecond)

	err := executor.QueryRow(
		`SELECT COALESCE(SUM(total_amount), 0), COUNT(*) FROM orders
		 WHERE status = 'completed' AND order_time BETWEEN $1 AND $2`,
		startOfDay, endOfDay,
	).Scan(&metrics.RevenueToday, &metrics.OrdersToday)
	if err != nil {
		return nil, fmt.Errorf("%w: querying today's revenue: %v", ErrDatabaseError, err)
	}

	err = executor.QueryRow(
		`SELECT COUNT(*) FROM orders WHERE status IN ('new', 'preparing', 'ready')`,
	).Scan(&metrics.PendingOrders)
	if err != nil {
		return nil, fmt.Errorf("%w: querying pending orders: %v", ErrDatabaseError, err)
	}

	err = executor.QueryRow(
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'occupied') FROM restaurant_tables`,
	).Scan(&metrics.TotalTables, &metrics.OccupiedTables)
	if err != nil {
		return nil, fmt.Errorf("%w: querying table occupancy: %v", ErrDatabaseError, err)
	}

	err = executor.QueryRow(
		`SELECT COUNT(*) FROM inventory_items WHERE current_stock <= min_stock`,
	).Scan(&metrics.LowStockItems)
	if err != nil {
		return nil, fmt.Errorf("%w: querying low stock count: %v", ErrDatabaseError, err)
	}

	err = executor.QueryRow(
		`SELECT COUNT(*) FROM reservations WHERE date >= $1 AND status IN ('pending', 'confirmed')`,
		startOfDay.Format("2006-01-02"),
	).Scan(&metrics.UpcomingReservations)
	if err != nil {
		return nil, fmt.Errorf("%w: querying upcoming reservations: %v", ErrDatabaseError, err)
	}

	err = executor.QueryRow(`SELECT COUNT(*) FROM customers`).Scan(&metrics.TotalCustomers)
	if err != nil {
		return nil, fmt.Errorf("%w: querying customer count: %v", ErrDatabaseError, err)
	}

	return metrics, nil
}

// dateRangeConditions builds optional order_time bounds for aggregate queries.
func dateRangeConditions(dateRange models.ReportRange, argCounter int) ([]string, []interface{}, int) {
	var conditions []string
	var args []interface{}

	if dateRange.StartDate != nil && *dateRange.StartDate != "" {
		if parsed, err := time.Parse("2006-01-02", *dateRange.StartDate); err == nil {
			conditions = append(conditions, fmt.Sprintf("o.order_time >= $%d", argCounter))
			args = append(args, parsed)
			argCounter++
		}
	}
	if dateRange.EndDate != nil && *dateRange.EndDate != "" {
		if parsed, err := time.Parse("2006-01-02", *dateRange.EndDate); err == nil {
			endOfDay := parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
			conditions = append(conditions, fmt.Sprintf("o.order_time <= $%d", argCounter))
			args = append(args, endOfDay)
			argCounter++
		}
	}
	return conditions, args, argCounter
}

func (r *reportRepository) GetSalesByCategory(executor SQLExecutor, dateRange models.ReportRange) ([]models.CategorySales, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT mi.category, COUNT(DISTINCT o.id), COALESCE(SUM(oi.quantity), 0), COALESCE(SUM(oi.total_price), 0)
		FROM order_items oi
		JOIN orders o ON oi.order_id = o.id
		JOIN menu_items mi ON oi.menu_item_id = mi.id
		WHERE o.status = 'completed'`)

	conditions, args, _ := dateRangeConditions(dateRange, 1)
	for _, cond := range conditions {
		queryBuilder.WriteString(" AND " + cond)
	}
	queryBuilder.WriteString(" GROUP BY mi.category ORDER BY 4 DESC")

	sales := []models.CategorySales{}
	rows, err := executor.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying sales by category: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var cs models.CategorySales
		if err := rows.Scan(&cs.Category, &cs.Orders, &cs.Quantity, &cs.Revenue); err != nil {
			return nil, fmt.Errorf("%w: scanning category sales: %v", ErrDatabaseError, err)
		}
		sales = append(sales, cs)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating category sales rows: %v", ErrDatabaseError, err)
	}
	return sales, nil
}

func (r *reportRepository) GetTopItems(executor SQLExecutor, dateRange models.ReportRange, limit int) ([]models.TopItem, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT oi.menu_item_id, oi.item_name, COALESCE(SUM(oi.quantity), 0), COALESCE(SUM(oi.total_price), 0)
		FROM order_items oi
		JOIN orders o ON oi.order_id = o.id
		WHERE o.status = 'completed'`)

	conditions, args, argCounter := dateRangeConditions(dateRange, 1)
	for _, cond := range conditions {
		queryBuilder.WriteString(" AND " + cond)
	}
	queryBuilder.WriteString(" GROUP BY oi.menu_item_id, oi.item_name ORDER BY 3 DESC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCounter))
	args = append(args, limit)

	items := []models.TopItem{}
	rows, err := executor.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying top items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.TopItem
		if err := rows.Scan(&item.MenuItemID, &item.Name, &item.Quantity, &item.Revenue); err != nil {
			return nil, fmt.Errorf("%w: scanning top item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating top item rows: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *reportRepository) GetOrderStats(executor SQLExecutor, dateRange models.ReportRange) (*models.OrderStats, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE o.status = 'completed'),
		       COUNT(*) FILTER (WHERE o.status = 'cancelled'),
		       COALESCE(SUM(o.total_amount) FILTER (WHERE o.status = 'completed'), 0)
		FROM orders o`)

	conditions, args, _ := dateRangeConditions(dateRange, 1)
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}

	stats := &models.OrderStats{}
	err := executor.QueryRow(queryBuilder.String(), args...).Scan(
		&stats.TotalOrders, &stats.CompletedOrders, &stats.CancelledOrders, &stats.TotalRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: querying order stats: %v", ErrDatabaseError, err)
	}
	if stats.CompletedOrders > 0 {
		stats.AverageOrder = stats.TotalRevenue / float64(stats.CompletedOrders)
	}
	return stats, nil
}
