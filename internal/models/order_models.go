package models

import "time"

// OrderStatus defines the type for order statuses.
type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "new"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusServed    OrderStatus = "served"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValidOrderStatus checks if the provided status string is a valid OrderStatus.
func IsValidOrderStatus(status string) bool {
	switch OrderStatus(status) {
	case OrderStatusNew,
		OrderStatusPreparing,
		OrderStatusReady,
		OrderStatusServed,
		OrderStatusCompleted,
		OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// OrderSource defines the channel an order arrived through.
type OrderSource string

const (
	OrderSourceDineIn   OrderSource = "dine-in"
	OrderSourceTakeaway OrderSource = "takeaway"
	OrderSourceDelivery OrderSource = "delivery"
	OrderSourceQR       OrderSource = "qr"
)

// IsValidOrderSource checks if the provided source string is a valid OrderSource.
func IsValidOrderSource(source string) bool {
	switch OrderSource(source) {
	case OrderSourceDineIn, OrderSourceTakeaway, OrderSourceDelivery, OrderSourceQR:
		return true
	default:
		return false
	}
}

// Order represents one customer order with its line items.
type Order struct {
	ID            int64       `json:"id"`
	CustomerID    *int64      `json:"customer_id,omitempty" db:"customer_id"`
	CustomerName  *string     `json:"customer_name,omitempty" db:"customer_name"`
	CustomerPhone *string     `json:"customer_phone,omitempty" db:"customer_phone"`
	TableID       *int64      `json:"table_id,omitempty" db:"table_id"`
	Source        string      `json:"source" db:"source"`
	Status        string      `json:"status" db:"status"`
	Subtotal      float64     `json:"subtotal" db:"subtotal"`
	TaxAmount     float64     `json:"tax_amount" db:"tax_amount"`
	TotalAmount   float64     `json:"total_amount" db:"total_amount"`
	PaymentMethod *string     `json:"payment_method,omitempty" db:"payment_method"`
	Notes         *string     `json:"notes,omitempty" db:"notes"`
	OrderTime     time.Time   `json:"order_time" db:"order_time"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"`
	OrderItems    []OrderItem `json:"order_items,omitempty"`
	Table         *Table      `json:"table,omitempty"`
	Customer      *Customer   `json:"customer,omitempty"`
}

// OrderItem is one (menu item, quantity, unit price) line within an order.
type OrderItem struct {
	ID         int64     `json:"id"`
	OrderID    int64     `json:"order_id" db:"order_id"`
	MenuItemID int64     `json:"menu_item_id" db:"menu_item_id"`
	ItemName   string    `json:"item_name" db:"item_name"`
	Quantity   int       `json:"quantity" db:"quantity"`
	UnitPrice  float64   `json:"unit_price" db:"unit_price"`
	TotalPrice float64   `json:"total_price" db:"total_price"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// OrderFilters defines the available predicates for order search.
type OrderFilters struct {
	CustomerID *int64
	TableID    *int64
	Status     *string
	Source     *string
	DateFrom   *string // YYYY-MM-DD
	DateTo     *string // YYYY-MM-DD
	Page       int
	PageSize   int
}
