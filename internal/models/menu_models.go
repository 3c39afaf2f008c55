package models

import "time"

// MenuItem represents a sellable item on a restaurant's menu.
type MenuItem struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" db:"name" binding:"required"`
	Price       float64   `json:"price" db:"price"`
	Category    string    `json:"category" db:"category"`
	Available   bool      `json:"available" db:"available"`
	Vegetarian  bool      `json:"vegetarian" db:"vegetarian"`
	SpiceLevel  int       `json:"spice_level" db:"spice_level"`
	PrepMinutes int       `json:"prep_minutes" db:"prep_minutes"`
	Popular     bool      `json:"popular" db:"popular"`
	TaxCategory string    `json:"tax_category" db:"tax_category"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// MenuFilters defines the available predicates for menu search. All are
// optional and combined as a conjunction.
type MenuFilters struct {
	Name       *string
	Category   *string
	Vegetarian *bool
	Popular    *bool
	Available  *bool
}
