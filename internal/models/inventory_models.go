package models

import "time"

// InventoryItem represents a stock-tracked ingredient or supply.
type InventoryItem struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name" db:"name" binding:"required"`
	Category     string    `json:"category" db:"category"`
	Unit         string    `json:"unit" db:"unit"`
	CurrentStock float64   `json:"current_stock" db:"current_stock"`
	MinStock     float64   `json:"min_stock" db:"min_stock"`
	MaxStock     float64   `json:"max_stock" db:"max_stock"`
	CostPerUnit  float64   `json:"cost_per_unit" db:"cost_per_unit"`
	SupplierID   *int64    `json:"supplier_id,omitempty" db:"supplier_id"`
	ExpiryDate   *string   `json:"expiry_date,omitempty" db:"expiry_date"` // YYYY-MM-DD
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
	Supplier     *Supplier `json:"supplier,omitempty"`
}

// Supplier represents a vendor an inventory item is sourced from.
type Supplier struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" db:"name" binding:"required"`
	ContactName *string   `json:"contact_name,omitempty" db:"contact_name"`
	Phone       *string   `json:"phone,omitempty" db:"phone"`
	Email       *string   `json:"email,omitempty" db:"email"`
	Address     *string   `json:"address,omitempty" db:"address"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// InventoryFilters defines the available predicates for inventory search.
type InventoryFilters struct {
	Category *string
	LowStock *bool
}
