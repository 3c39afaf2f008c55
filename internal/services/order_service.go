package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/repositories"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrInvalidOrderStatus  = errors.New("invalid order status")
	ErrInvalidOrderSource  = errors.New("invalid order source")
	ErrEmptyOrder          = errors.New("order must contain at least one item")
	ErrMenuItemUnavailable = errors.New("menu item is not available")
)

// loyaltyEarnDivisor converts spend into loyalty points: one point per 10
// currency units of the completed order total, rounded down.
const loyaltyEarnDivisor = 10

// OrderItemRequest is one line of a new order.
type OrderItemRequest struct {
	MenuItemID int64 `json:"menu_item_id" binding:"required"`
	Quantity   int   `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderRequest DTO. Prices and taxes are always computed server-side
// from the menu and the active tax rules; client-sent amounts are ignored.
type CreateOrderRequest struct {
	CustomerName  *string            `json:"customer_name"`
	CustomerPhone *string            `json:"customer_phone"`
	TableID       *int64             `json:"table_id"`
	Source        string             `json:"source" binding:"required"`
	Status        string             `json:"status"`
	PaymentMethod *string            `json:"payment_method"`
	Notes         *string            `json:"notes"`
	Items         []OrderItemRequest `json:"items" binding:"required,dive"`
}

// UpdateOrderStatusRequest DTO
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderRequest DTO. Only the set fields are changed; line items and
// amounts are fixed at creation and the status moves through its own
// endpoint.
type UpdateOrderRequest struct {
	CustomerName  *string `json:"customer_name"`
	CustomerPhone *string `json:"customer_phone"`
	TableID       *int64  `json:"table_id"`
	Source        *string `json:"source"`
	PaymentMethod *string `json:"payment_method"`
	Notes         *string `json:"notes"`
}

// --- OrderService Interface ---
type OrderService interface {
	CreateOrder(db *sql.DB, req CreateOrderRequest) (*models.Order, error)
	GetOrders(db *sql.DB, filters models.OrderFilters) ([]models.Order, int, error)
	GetOrderByID(db *sql.DB, orderID int64) (*models.Order, error)
	UpdateOrder(db *sql.DB, orderID int64, req UpdateOrderRequest) (*models.Order, error)
	UpdateOrderStatus(db *sql.DB, orderID int64, req UpdateOrderStatusRequest) (*models.Order, error)
	DeleteOrder(db *sql.DB, orderID int64) error
}

type orderService struct {
	orderRepo    repositories.OrderRepository
	menuRepo     repositories.MenuRepository
	taxRepo      repositories.TaxRepository
	customerRepo repositories.CustomerRepository
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	menuRepo repositories.MenuRepository,
	taxRepo repositories.TaxRepository,
	customerRepo repositories.CustomerRepository,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		menuRepo:     menuRepo,
		taxRepo:      taxRepo,
		customerRepo: customerRepo,
	}
}

// CreateOrder prices the requested items from the menu, applies the active
// tax rules, attaches (or creates) the customer by phone, and writes the
// order with its items in one transaction. A completed order also accrues
// loyalty inside the same transaction.
func (s *orderService) CreateOrder(db *sql.DB, req CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	if !models.IsValidOrderSource(req.Source) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOrderSource, req.Source)
	}
	status := req.Status
	if status == "" {
		status = string(models.OrderStatusNew)
	}
	if !models.IsValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOrderStatus, status)
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var subtotal float64
	subtotalByCategory := map[string]float64{}
	orderItems := make([]models.OrderItem, 0, len(req.Items))

	for _, itemReq := range req.Items {
		menuItem, repoErr := s.menuRepo.GetByID(tx, itemReq.MenuItemID)
		if repoErr != nil {
			if errors.Is(repoErr, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: item ID %d", ErrMenuItemNotFound, itemReq.MenuItemID)
			}
			return nil, fmt.Errorf("failed to fetch menu item %d: %w", itemReq.MenuItemID, repoErr)
		}
		if !menuItem.Available {
			return nil, fmt.Errorf("%w: %s", ErrMenuItemUnavailable, menuItem.Name)
		}

		lineTotal := roundCurrency(menuItem.Price * float64(itemReq.Quantity))
		subtotal = roundCurrency(subtotal + lineTotal)
		subtotalByCategory[menuItem.TaxCategory] += lineTotal

		orderItems = append(orderItems, models.OrderItem{
			MenuItemID: menuItem.ID,
			ItemName:   menuItem.Name,
			Quantity:   itemReq.Quantity,
			UnitPrice:  menuItem.Price,
			TotalPrice: lineTotal,
		})
	}

	taxRules, err := s.taxRepo.GetActive(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tax rules: %w", err)
	}
	breakdown := CalculateTaxes(taxRules, subtotalByCategory)
	totalAmount := roundCurrency(subtotal + breakdown.TotalTax)

	customerID, err := s.resolveCustomer(tx, req.CustomerName, req.CustomerPhone)
	if err != nil {
		return nil, err
	}

	order := models.Order{
		CustomerID:    customerID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		TableID:       req.TableID,
		Source:        req.Source,
		Status:        status,
		Subtotal:      subtotal,
		TaxAmount:     breakdown.TotalTax,
		TotalAmount:   totalAmount,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}
	orderID, err := s.orderRepo.CreateOrder(tx, &order)
	if err != nil {
		return nil, fmt.Errorf("failed to create order record: %w", err)
	}

	for i := range orderItems {
		orderItems[i].OrderID = orderID
		if _, err := s.orderRepo.CreateOrderItem(tx, &orderItems[i]); err != nil {
			return nil, fmt.Errorf("failed to create order item (menu_item_id: %d): %w", orderItems[i].MenuItemID, err)
		}
	}

	if order.Status == string(models.OrderStatusCompleted) && customerID != nil {
		if err := s.accrueLoyalty(tx, *customerID, orderID, totalAmount); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order transaction: %w", err)
	}
	return s.GetOrderByID(db, orderID)
}

// resolveCustomer returns the ID of the customer matching the phone number,
// creating the customer on first contact. Orders without a phone stay
// anonymous.
func (s *orderService) resolveCustomer(tx repositories.SQLExecutor, name, phone *string) (*int64, error) {
	if phone == nil || *phone == "" {
		return nil, nil
	}
	customer, err := s.customerRepo.GetByPhone(tx, *phone)
	if err == nil {
		return &customer.ID, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up customer by phone: %w", err)
	}

	customerName := *phone
	if name != nil && *name != "" {
		customerName = *name
	}
	newCustomer := models.Customer{Name: customerName, Phone: *phone}
	customerID, err := s.customerRepo.Create(tx, &newCustomer)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return &customerID, nil
}

// accrueLoyalty records one completed order against a customer: order count,
// spend, last visit, and earned points with a ledger entry.
func (s *orderService) accrueLoyalty(tx repositories.SQLExecutor, customerID, orderID int64, totalAmount float64) error {
	points := int(totalAmount / loyaltyEarnDivisor)
	if err := s.customerRepo.ApplyOrderTotals(tx, customerID, totalAmount, points, time.Now()); err != nil {
		return fmt.Errorf("failed to apply order totals to customer %d: %w", customerID, err)
	}
	if points > 0 {
		description := fmt.Sprintf("Earned from order #%d", orderID)
		entry := models.LoyaltyEntry{
			CustomerID:  customerID,
			OrderID:     &orderID,
			Points:      points,
			EntryType:   string(models.LoyaltyEntryEarned),
			Description: &description,
		}
		if _, err := s.customerRepo.CreateLoyaltyEntry(tx, &entry); err != nil {
			return fmt.Errorf("failed to record loyalty entry for customer %d: %w", customerID, err)
		}
	}
	return nil
}

func (s *orderService) GetOrders(db *sql.DB, filters models.OrderFilters) ([]models.Order, int, error) {
	orders, totalCount, err := s.orderRepo.GetOrders(db, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, totalCount, nil
}

func (s *orderService) GetOrderByID(db *sql.DB, orderID int64) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(db, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	items, err := s.orderRepo.GetOrderItemsByOrderID(db, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	order.OrderItems = items
	return order, nil
}

// UpdateOrder patches an order's metadata onto the existing record. Items,
// amounts and status are untouched.
func (s *orderService) UpdateOrder(db *sql.DB, orderID int64, req UpdateOrderRequest) (*models.Order, error) {
	if req.Source != nil && !models.IsValidOrderSource(*req.Source) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOrderSource, *req.Source)
	}

	order, err := s.orderRepo.GetOrderByID(db, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order for update: %w", err)
	}

	if req.CustomerName != nil {
		order.CustomerName = req.CustomerName
	}
	if req.CustomerPhone != nil {
		order.CustomerPhone = req.CustomerPhone
	}
	if req.TableID != nil {
		order.TableID = req.TableID
	}
	if req.Source != nil {
		order.Source = *req.Source
	}
	if req.PaymentMethod != nil {
		order.PaymentMethod = req.PaymentMethod
	}
	if req.Notes != nil {
		order.Notes = req.Notes
	}

	if err := s.orderRepo.UpdateOrder(db, order); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	return s.GetOrderByID(db, orderID)
}

// UpdateOrderStatus moves an order through its lifecycle. The transition into
// completed accrues loyalty exactly once; re-completing a completed order is
// a no-op for the customer's totals.
func (s *orderService) UpdateOrderStatus(db *sql.DB, orderID int64, req UpdateOrderStatusRequest) (*models.Order, error) {
	if !models.IsValidOrderStatus(req.Status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOrderStatus, req.Status)
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	order, err := s.orderRepo.GetOrderByID(tx, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order for status update: %w", err)
	}

	becomingCompleted := req.Status == string(models.OrderStatusCompleted) &&
		order.Status != string(models.OrderStatusCompleted)
	if becomingCompleted && order.CustomerID != nil {
		if err := s.accrueLoyalty(tx, *order.CustomerID, orderID, order.TotalAmount); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.UpdateOrderStatus(tx, orderID, req.Status, time.Now()); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit status update transaction: %w", err)
	}
	return s.GetOrderByID(db, orderID)
}

func (s *orderService) DeleteOrder(db *sql.DB, orderID int64) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.orderRepo.GetOrderByID(tx, orderID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to fetch order for deletion: %w", err)
	}

	if _, err := s.orderRepo.DeleteOrderItemsByOrderID(tx, orderID); err != nil {
		return fmt.Errorf("failed to delete order items: %w", err)
	}
	if err := s.orderRepo.DeleteOrder(tx, orderID); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return tx.Commit()
}
