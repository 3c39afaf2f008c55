package services

import (
	"database/sql"
	"errors"
	"fmt"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/repositories"
)

var (
	ErrInventoryItemNotFound = errors.New("inventory item not found")
	ErrSupplierNotFound      = errors.New("supplier not found")
	ErrInvalidStockLevel     = errors.New("stock levels must be non-negative")
)

// CreateInventoryItemRequest DTO
type CreateInventoryItemRequest struct {
	Name         string  `json:"name" binding:"required"`
	Category     string  `json:"category" binding:"required"`
	Unit         string  `json:"unit" binding:"required"`
	CurrentStock float64 `json:"current_stock"`
	MinStock     float64 `json:"min_stock"`
	MaxStock     float64 `json:"max_stock"`
	CostPerUnit  float64 `json:"cost_per_unit"`
	SupplierID   *int64  `json:"supplier_id"`
	ExpiryDate   *string `json:"expiry_date"` // YYYY-MM-DD
}

// UpdateInventoryItemRequest DTO
type UpdateInventoryItemRequest = CreateInventoryItemRequest

// SupplierRequest DTO, used for both create and update.
type SupplierRequest struct {
	Name        string  `json:"name" binding:"required"`
	ContactName *string `json:"contact_name"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
}

// --- InventoryService Interface ---
type InventoryService interface {
	CreateItem(db *sql.DB, req CreateInventoryItemRequest) (*models.InventoryItem, error)
	GetItems(db *sql.DB, filters models.InventoryFilters) ([]models.InventoryItem, error)
	GetItemByID(db *sql.DB, id int64) (*models.InventoryItem, error)
	UpdateItem(db *sql.DB, id int64, req UpdateInventoryItemRequest) (*models.InventoryItem, error)
	DeleteItem(db *sql.DB, id int64) error

	CreateSupplier(db *sql.DB, req SupplierRequest) (*models.Supplier, error)
	GetSuppliers(db *sql.DB) ([]models.Supplier, error)
	GetSupplierByID(db *sql.DB, id int64) (*models.Supplier, error)
	UpdateSupplier(db *sql.DB, id int64, req SupplierRequest) (*models.Supplier, error)
	DeleteSupplier(db *sql.DB, id int64) error
}

type inventoryService struct {
	inventoryRepo repositories.InventoryRepository
}

// NewInventoryService creates a new instance of InventoryService.
func NewInventoryService(inventoryRepo repositories.InventoryRepository) InventoryService {
	return &inventoryService{inventoryRepo: inventoryRepo}
}

func (s *inventoryService) CreateItem(db *sql.DB, req CreateInventoryItemRequest) (*models.InventoryItem, error) {
	if req.CurrentStock < 0 || req.MinStock < 0 || req.MaxStock < 0 {
		return nil, ErrInvalidStockLevel
	}
	item := models.InventoryItem{
		Name:         req.Name,
		Category:     req.Category,
		Unit:         req.Unit,
		CurrentStock: req.CurrentStock,
		MinStock:     req.MinStock,
		MaxStock:     req.MaxStock,
		CostPerUnit:  req.CostPerUnit,
		SupplierID:   req.SupplierID,
		ExpiryDate:   req.ExpiryDate,
	}
	if _, err := s.inventoryRepo.CreateItem(db, &item); err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}
	return &item, nil
}

func (s *inventoryService) GetItems(db *sql.DB, filters models.InventoryFilters) ([]models.InventoryItem, error) {
	items, err := s.inventoryRepo.GetItems(db, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory items: %w", err)
	}
	return items, nil
}

func (s *inventoryService) GetItemByID(db *sql.DB, id int64) (*models.InventoryItem, error) {
	item, err := s.inventoryRepo.GetItemByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInventoryItemNotFound
		}
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	return item, nil
}

func (s *inventoryService) UpdateItem(db *sql.DB, id int64, req UpdateInventoryItemRequest) (*models.InventoryItem, error) {
	if req.CurrentStock < 0 || req.MinStock < 0 || req.MaxStock < 0 {
		return nil, ErrInvalidStockLevel
	}
	item, err := s.inventoryRepo.GetItemByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInventoryItemNotFound
		}
		return nil, fmt.Errorf("failed to fetch inventory item for update: %w", err)
	}

	item.Name = req.Name
	item.Category = req.Category
	item.Unit = req.Unit
	item.CurrentStock = req.CurrentStock
	item.MinStock = req.MinStock
	item.MaxStock = req.MaxStock
	item.CostPerUnit = req.CostPerUnit
	item.SupplierID = req.SupplierID
	item.ExpiryDate = req.ExpiryDate

	if err := s.inventoryRepo.UpdateItem(db, item); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInventoryItemNotFound
		}
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}
	return item, nil
}

func (s *inventoryService) DeleteItem(db *sql.DB, id int64) error {
	if err := s.inventoryRepo.DeleteItem(db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrInventoryItemNotFound
		}
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	return nil
}

func (s *inventoryService) CreateSupplier(db *sql.DB, req SupplierRequest) (*models.Supplier, error) {
	supplier := models.Supplier{
		Name:        req.Name,
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
	}
	if _, err := s.inventoryRepo.CreateSupplier(db, &supplier); err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}
	return &supplier, nil
}

func (s *inventoryService) GetSuppliers(db *sql.DB) ([]models.Supplier, error) {
	suppliers, err := s.inventoryRepo.GetSuppliers(db)
	if err != nil {
		return nil, fmt.Errorf("failed to get suppliers: %w", err)
	}
	return suppliers, nil
}

func (s *inventoryService) GetSupplierByID(db *sql.DB, id int64) (*models.Supplier, error) {
	supplier, err := s.inventoryRepo.GetSupplierByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}
	return supplier, nil
}

func (s *inventoryService) UpdateSupplier(db *sql.DB, id int64, req SupplierRequest) (*models.Supplier, error) {
	supplier, err := s.inventoryRepo.GetSupplierByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, fmt.Errorf("failed to fetch supplier for update: %w", err)
	}

	supplier.Name = req.Name
	supplier.ContactName = req.ContactName
	supplier.Phone = req.Phone
	supplier.Email = req.Email
	supplier.Address = req.Address

	if err := s.inventoryRepo.UpdateSupplier(db, supplier); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}
	return supplier, nil
}

func (s *inventoryService) DeleteSupplier(db *sql.DB, id int64) error {
	if err := s.inventoryRepo.DeleteSupplier(db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSupplierNotFound
		}
		return fmt.Errorf("failed to delete supplier: %w", err)
	}
	return nil
}
