package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"resto_pos_backend/internal/models"

	"github.com/lib/pq"
)

// OrderRepository defines order and order-item operations against a tenant store.
type OrderRepository interface {
	CreateOrder(executor SQLExecutor, order *models.Order) (int64, error)
	GetOrderByID(executor SQLExecutor, orderID int64) (*models.Order, error)
	GetOrders(executor SQLExecutor, filters models.OrderFilters) ([]models.Order, int, error)
	UpdateOrder(executor SQLExecutor, order *models.Order) error
	UpdateOrderStatus(executor SQLExecutor, orderID int64, newStatus string, updatedAt time.Time) error
	DeleteOrder(executor SQLExecutor, orderID int64) error

	CreateOrderItem(executor SQLExecutor, item *models.OrderItem) (int64, error)
	GetOrderItemsByOrderID(executor SQLExecutor, orderID int64) ([]models.OrderItem, error)
	DeleteOrderItemsByOrderID(executor SQLExecutor, orderID int64) (int64, error)
}

type orderRepository struct{}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository() OrderRepository {
	return &orderRepository{}
}

func (r *orderRepository) CreateOrder(executor SQLExecutor, order *models.Order) (int64, error) {
	query := `INSERT INTO orders
	            (customer_id, customer_name, customer_phone, table_id, source, status,
	             subtotal, tax_amount, total_amount, payment_method, notes,
	             order_time, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	          RETURNING id`

	currentTime := time.Now()
	if order.OrderTime.IsZero() {
		order.OrderTime = currentTime
	}
	order.CreatedAt = currentTime
	order.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		order.CustomerID, order.CustomerName, order.CustomerPhone, order.TableID, order.Source, order.Status,
		order.Subtotal, order.TaxAmount, order.TotalAmount, order.PaymentMethod, order.Notes,
		order.OrderTime, order.CreatedAt, order.UpdatedAt,
	).Scan(&order.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return 0, fmt.Errorf("%w: creating order (constraint: %s): %v", ErrDatabaseError, pqErr.Constraint, err)
		}
		return 0, fmt.Errorf("%w: creating order: %v", ErrDatabaseError, err)
	}
	return order.ID, nil
}

const orderColumns = `id, customer_id, customer_name, customer_phone, table_id, source, status,
	subtotal, tax_amount, total_amount, payment_method, notes, order_time, created_at, updated_at`

func scanOrder(row interface{ Scan(...interface{}) error }, o *models.Order, extra ...interface{}) error {
	dest := []interface{}{
		&o.ID, &o.CustomerID, &o.CustomerName, &o.CustomerPhone, &o.TableID, &o.Source, &o.Status,
		&o.Subtotal, &o.TaxAmount, &o.TotalAmount, &o.PaymentMethod, &o.Notes,
		&o.OrderTime, &o.CreatedAt, &o.UpdatedAt,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

func (r *orderRepository) GetOrderByID(executor SQLExecutor, orderID int64) (*models.Order, error) {
	order := &models.Order{}
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	err := scanOrder(executor.QueryRow(query, orderID), order)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting order by ID %d: %v", ErrDatabaseError, orderID, err)
	}
	return order, nil
}

func (r *orderRepository) GetOrders(executor SQLExecutor, filters models.OrderFilters) ([]models.Order, int, error) {
	orders := []models.Order{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + orderColumns + `, COUNT(*) OVER() as total_count FROM orders`)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.CustomerID != nil {
		conditions = append(conditions, fmt.Sprintf("customer_id = $%d", argCounter))
		args = append(args, *filters.CustomerID)
		argCounter++
	}
	if filters.TableID != nil {
		conditions = append(conditions, fmt.Sprintf("table_id = $%d", argCounter))
		args = append(args, *filters.TableID)
		argCounter++
	}
	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCounter))
		args = append(args, *filters.Status)
		argCounter++
	}
	if filters.Source != nil && *filters.Source != "" {
		conditions = append(conditions, fmt.Sprintf("source = $%d", argCounter))
		args = append(args, *filters.Source)
		argCounter++
	}
	if filters.DateFrom != nil && *filters.DateFrom != "" {
		if parsed, err := time.Parse("2006-01-02", *filters.DateFrom); err == nil {
			conditions = append(conditions, fmt.Sprintf("order_time >= $%d", argCounter))
			args = append(args, parsed)
			argCounter++
		}
	}
	if filters.DateTo != nil && *filters.DateTo != "" {
		if parsed, err := time.Parse("2006-01-02", *filters.DateTo); err == nil {
			endOfDay := parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
			conditions = append(conditions, fmt.Sprintf("order_time <= $%d", argCounter))
			args = append(args, endOfDay)
			argCounter++
		}
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY order_time DESC")

	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCounter))
		args = append(args, filters.PageSize)
		argCounter++
		if filters.Page > 0 {
			offset := (filters.Page - 1) * filters.PageSize
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCounter))
			args = append(args, offset)
		}
	}

	rows, err := executor.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying orders: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var o models.Order
		if err := scanOrder(rows, &o, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning order: %v", ErrDatabaseError, err)
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating order rows: %v", ErrDatabaseError, err)
	}
	return orders, totalCount, nil
}

func (r *orderRepository) UpdateOrder(executor SQLExecutor, order *models.Order) error {
	query := `UPDATE orders SET
	            customer_id = $1, customer_name = $2, customer_phone = $3, table_id = $4,
	            source = $5, status = $6, subtotal = $7, tax_amount = $8, total_amount = $9,
	            payment_method = $10, notes = $11, updated_at = $12
	          WHERE id = $13`

	order.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		order.CustomerID, order.CustomerName, order.CustomerPhone, order.TableID,
		order.Source, order.Status, order.Subtotal, order.TaxAmount, order.TotalAmount,
		order.PaymentMethod, order.Notes, order.UpdatedAt, order.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating order ID %d: %v", ErrDatabaseError, order.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for order ID %d: %v", ErrDatabaseError, order.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *orderRepository) UpdateOrderStatus(executor SQLExecutor, orderID int64, newStatus string, updatedAt time.Time) error {
	result, err := executor.Exec(`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`, newStatus, updatedAt, orderID)
	if err != nil {
		return fmt.Errorf("%w: updating order status for ID %d: %v", ErrDatabaseError, orderID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for order status update ID %d: %v", ErrDatabaseError, orderID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *orderRepository) DeleteOrder(executor SQLExecutor, orderID int64) error {
	result, err := executor.Exec(`DELETE FROM orders WHERE id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("%w: deleting order ID %d: %v", ErrDatabaseError, orderID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting order ID %d: %v", ErrDatabaseError, orderID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *orderRepository) CreateOrderItem(executor SQLExecutor, item *models.OrderItem) (int64, error) {
	query := `INSERT INTO order_items
	            (order_id, menu_item_id, item_name, quantity, unit_price, total_price, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`

	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	err := executor.QueryRow(query,
		item.OrderID, item.MenuItemID, item.ItemName, item.Quantity, item.UnitPrice,
		item.TotalPrice, item.CreatedAt,
	).Scan(&item.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return 0, fmt.Errorf("%w: creating order item (constraint: %s): %v", ErrDatabaseError, pqErr.Constraint, err)
		}
		return 0, fmt.Errorf("%w: creating order item: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

func (r *orderRepository) GetOrderItemsByOrderID(executor SQLExecutor, orderID int64) ([]models.OrderItem, error) {
	items := []models.OrderItem{}
	query := `SELECT id, order_id, menu_item_id, item_name, quantity, unit_price, total_price, created_at
	          FROM order_items WHERE order_id = $1 ORDER BY id`

	rows, err := executor.Query(query, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying order items for order ID %d: %v", ErrDatabaseError, orderID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.MenuItemID, &item.ItemName,
			&item.Quantity, &item.UnitPrice, &item.TotalPrice, &item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning order item for order ID %d: %v", ErrDatabaseError, orderID, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order item rows for order ID %d: %v", ErrDatabaseError, orderID, err)
	}
	return items, nil
}

func (r *orderRepository) DeleteOrderItemsByOrderID(executor SQLExecutor, orderID int64) (int64, error) {
	result, err := executor.Exec(`DELETE FROM order_items WHERE order_id = $1`, orderID)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting order items for order ID %d: %v", ErrDatabaseError, orderID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: getting rows affected for deleting order items for order ID %d: %v", ErrDatabaseError, orderID, err)
	}
	return rowsAffected, nil
}
