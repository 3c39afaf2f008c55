package services

import (
	"errors"
	"testing"
	"time"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/repositories"
)

type fakeCustomerRepo struct {
	repositories.CustomerRepository

	getByPhone         func(phone string) (*models.Customer, error)
	create             func(customer *models.Customer) (int64, error)
	applyOrderTotals   func(customerID int64, orderTotal float64, points int, visitedAt time.Time) error
	createLoyaltyEntry func(entry *models.LoyaltyEntry) (int64, error)
}

func (f *fakeCustomerRepo) GetByPhone(_ repositories.SQLExecutor, phone string) (*models.Customer, error) {
	return f.getByPhone(phone)
}

func (f *fakeCustomerRepo) Create(_ repositories.SQLExecutor, customer *models.Customer) (int64, error) {
	return f.create(customer)
}

func (f *fakeCustomerRepo) ApplyOrderTotals(_ repositories.SQLExecutor, customerID int64, orderTotal float64, points int, visitedAt time.Time) error {
	return f.applyOrderTotals(customerID, orderTotal, points, visitedAt)
}

func (f *fakeCustomerRepo) CreateLoyaltyEntry(_ repositories.SQLExecutor, entry *models.LoyaltyEntry) (int64, error) {
	return f.createLoyaltyEntry(entry)
}

type fakeOrderRepo struct {
	repositories.OrderRepository

	getOrderByID           func(orderID int64) (*models.Order, error)
	updateOrder            func(order *models.Order) error
	getOrderItemsByOrderID func(orderID int64) ([]models.OrderItem, error)
}

func (f *fakeOrderRepo) GetOrderByID(_ repositories.SQLExecutor, orderID int64) (*models.Order, error) {
	return f.getOrderByID(orderID)
}

func (f *fakeOrderRepo) UpdateOrder(_ repositories.SQLExecutor, order *models.Order) error {
	return f.updateOrder(order)
}

func (f *fakeOrderRepo) GetOrderItemsByOrderID(_ repositories.SQLExecutor, orderID int64) ([]models.OrderItem, error) {
	return f.getOrderItemsByOrderID(orderID)
}

func strPtr(s string) *string { return &s }

func int64Ptr(n int64) *int64 { return &n }

func TestCreateOrderValidation(t *testing.T) {
	svc := &orderService{}

	tests := []struct {
		name    string
		req     CreateOrderRequest
		wantErr error
	}{
		{
			name:    "empty order rejected",
			req:     CreateOrderRequest{Source: "dine-in"},
			wantErr: ErrEmptyOrder,
		},
		{
			name: "invalid source rejected",
			req: CreateOrderRequest{
				Source: "carrier-pigeon",
				Items:  []OrderItemRequest{{MenuItemID: 1, Quantity: 1}},
			},
			wantErr: ErrInvalidOrderSource,
		},
		{
			name: "invalid status rejected",
			req: CreateOrderRequest{
				Source: "takeaway",
				Status: "teleported",
				Items:  []OrderItemRequest{{MenuItemID: 1, Quantity: 1}},
			},
			wantErr: ErrInvalidOrderStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Validation fails before any database work, so a nil handle
			// is fine here.
			if _, err := svc.CreateOrder(nil, tt.req); !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateOrderStatusValidation(t *testing.T) {
	svc := &orderService{}
	_, err := svc.UpdateOrderStatus(nil, 1, UpdateOrderStatusRequest{Status: "bogus"})
	if !errors.Is(err, ErrInvalidOrderStatus) {
		t.Fatalf("got %v, want ErrInvalidOrderStatus", err)
	}
}

func TestUpdateOrder(t *testing.T) {
	t.Run("patches metadata and keeps amounts", func(t *testing.T) {
		stored := models.Order{
			ID:          21,
			Source:      "dine-in",
			Status:      "preparing",
			Subtotal:    40.00,
			TaxAmount:   3.00,
			TotalAmount: 43.00,
			Notes:       strPtr("original note"),
		}
		var saved *models.Order
		svc := &orderService{orderRepo: &fakeOrderRepo{
			getOrderByID: func(orderID int64) (*models.Order, error) {
				if orderID != stored.ID {
					return nil, repositories.ErrNotFound
				}
				o := stored
				return &o, nil
			},
			updateOrder: func(order *models.Order) error {
				saved = order
				return nil
			},
			getOrderItemsByOrderID: func(orderID int64) ([]models.OrderItem, error) {
				return []models.OrderItem{{OrderID: orderID, ItemName: "Soup", Quantity: 2}}, nil
			},
		}}

		got, err := svc.UpdateOrder(nil, 21, UpdateOrderRequest{
			CustomerName: strPtr("Walk In"),
			TableID:      int64Ptr(4),
			Source:       strPtr("takeaway"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if saved == nil {
			t.Fatal("order was never written back")
		}
		if saved.CustomerName == nil || *saved.CustomerName != "Walk In" {
			t.Errorf("customer name = %v, want Walk In", saved.CustomerName)
		}
		if saved.TableID == nil || *saved.TableID != 4 {
			t.Errorf("table ID = %v, want 4", saved.TableID)
		}
		if saved.Source != "takeaway" {
			t.Errorf("source = %q, want takeaway", saved.Source)
		}
		if saved.Notes == nil || *saved.Notes != "original note" {
			t.Errorf("notes = %v, want the original note kept", saved.Notes)
		}
		if saved.Status != "preparing" || saved.Subtotal != 40.00 || saved.TaxAmount != 3.00 || saved.TotalAmount != 43.00 {
			t.Errorf("status/amounts changed: %+v", saved)
		}
		if len(got.OrderItems) != 1 {
			t.Errorf("returned order has %d items, want 1", len(got.OrderItems))
		}
	})

	t.Run("invalid source rejected", func(t *testing.T) {
		svc := &orderService{}
		_, err := svc.UpdateOrder(nil, 21, UpdateOrderRequest{Source: strPtr("carrier-pigeon")})
		if !errors.Is(err, ErrInvalidOrderSource) {
			t.Fatalf("got %v, want ErrInvalidOrderSource", err)
		}
	})

	t.Run("unknown order", func(t *testing.T) {
		svc := &orderService{orderRepo: &fakeOrderRepo{
			getOrderByID: func(orderID int64) (*models.Order, error) {
				return nil, repositories.ErrNotFound
			},
		}}
		_, err := svc.UpdateOrder(nil, 404, UpdateOrderRequest{Notes: strPtr("x")})
		if !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("got %v, want ErrOrderNotFound", err)
		}
	})
}

func TestResolveCustomer(t *testing.T) {
	t.Run("no phone stays anonymous", func(t *testing.T) {
		svc := &orderService{}
		id, err := svc.resolveCustomer(nil, strPtr("Walk In"), nil)
		if err != nil || id != nil {
			t.Fatalf("got (%v, %v), want (nil, nil)", id, err)
		}
		id, err = svc.resolveCustomer(nil, nil, strPtr(""))
		if err != nil || id != nil {
			t.Fatalf("empty phone: got (%v, %v), want (nil, nil)", id, err)
		}
	})

	t.Run("existing phone reuses the customer", func(t *testing.T) {
		svc := &orderService{customerRepo: &fakeCustomerRepo{
			getByPhone: func(phone string) (*models.Customer, error) {
				return &models.Customer{ID: 11, Name: "Regular", Phone: phone}, nil
			},
		}}
		id, err := svc.resolveCustomer(nil, strPtr("Someone Else"), strPtr("+100200300"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id == nil || *id != 11 {
			t.Fatalf("got %v, want customer ID 11", id)
		}
	})

	t.Run("unknown phone creates a customer", func(t *testing.T) {
		var created *models.Customer
		svc := &orderService{customerRepo: &fakeCustomerRepo{
			getByPhone: func(phone string) (*models.Customer, error) {
				return nil, repositories.ErrNotFound
			},
			create: func(customer *models.Customer) (int64, error) {
				created = customer
				return 12, nil
			},
		}}
		id, err := svc.resolveCustomer(nil, strPtr("New Guest"), strPtr("+700800900"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id == nil || *id != 12 {
			t.Fatalf("got %v, want customer ID 12", id)
		}
		if created == nil || created.Name != "New Guest" || created.Phone != "+700800900" {
			t.Fatalf("created customer = %+v", created)
		}
	})

	t.Run("missing name falls back to the phone", func(t *testing.T) {
		var created *models.Customer
		svc := &orderService{customerRepo: &fakeCustomerRepo{
			getByPhone: func(phone string) (*models.Customer, error) {
				return nil, repositories.ErrNotFound
			},
			create: func(customer *models.Customer) (int64, error) {
				created = customer
				return 13, nil
			},
		}}
		if _, err := svc.resolveCustomer(nil, nil, strPtr("+555666777")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created == nil || created.Name != "+555666777" {
			t.Fatalf("created customer = %+v, want name set to the phone", created)
		}
	})
}

func TestAccrueLoyalty(t *testing.T) {
	t.Run("earns one point per ten spent", func(t *testing.T) {
		var gotPoints int
		var gotEntry *models.LoyaltyEntry
		svc := &orderService{customerRepo: &fakeCustomerRepo{
			applyOrderTotals: func(customerID int64, orderTotal float64, points int, visitedAt time.Time) error {
				gotPoints = points
				return nil
			},
			createLoyaltyEntry: func(entry *models.LoyaltyEntry) (int64, error) {
				gotEntry = entry
				return 1, nil
			},
		}}
		if err := svc.accrueLoyalty(nil, 5, 77, 95.40); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotPoints != 9 {
			t.Errorf("got %d points, want 9", gotPoints)
		}
		if gotEntry == nil {
			t.Fatal("expected a loyalty ledger entry")
		}
		if gotEntry.Points != 9 || gotEntry.EntryType != string(models.LoyaltyEntryEarned) {
			t.Errorf("ledger entry = %+v", gotEntry)
		}
		if gotEntry.OrderID == nil || *gotEntry.OrderID != 77 {
			t.Errorf("ledger entry order ID = %v, want 77", gotEntry.OrderID)
		}
	})

	t.Run("small totals update the customer without a ledger entry", func(t *testing.T) {
		applied := false
		svc := &orderService{customerRepo: &fakeCustomerRepo{
			applyOrderTotals: func(customerID int64, orderTotal float64, points int, visitedAt time.Time) error {
				applied = true
				if points != 0 {
					t.Errorf("got %d points, want 0", points)
				}
				return nil
			},
			createLoyaltyEntry: func(entry *models.LoyaltyEntry) (int64, error) {
				t.Error("no ledger entry expected for zero points")
				return 0, nil
			},
		}}
		if err := svc.accrueLoyalty(nil, 5, 78, 9.99); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !applied {
			t.Error("order totals were not applied to the customer")
		}
	})
}
