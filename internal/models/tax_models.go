package models

import "time"

// TaxCategoryAll is the wildcard entry in a tax rule's applicable-category
// set; a rule carrying it applies to every tax category.
const TaxCategoryAll = "all"

// TaxRule defines one tax applied to order amounts. Categories holds the tax
// categories the rule applies to, or the "all" wildcard.
type TaxRule struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name" db:"name" binding:"required"`
	Rate       float64   `json:"rate" db:"rate"` // percent
	Categories []string  `json:"categories" db:"categories"`
	IsActive   bool      `json:"is_active" db:"is_active"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// AppliesTo reports whether the rule covers the given tax category.
func (r TaxRule) AppliesTo(category string) bool {
	for _, c := range r.Categories {
		if c == category || c == TaxCategoryAll {
			return true
		}
	}
	return false
}

// TaxLine is one rule's contribution to a tax calculation.
type TaxLine struct {
	RuleID int64   `json:"rule_id"`
	Name   string  `json:"name"`
	Rate   float64 `json:"rate"`
	Amount float64 `json:"amount"`
}

// TaxBreakdown is the result of applying all matching tax rules to an amount.
type TaxBreakdown struct {
	Taxes    []TaxLine `json:"taxes"`
	TotalTax float64   `json:"total_tax"`
}
