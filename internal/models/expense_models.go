package models

import "time"

// Expense records one outgoing payment.
type Expense struct {
	ID            int64     `json:"id"`
	Description   string    `json:"description" db:"description" binding:"required"`
	Category      string    `json:"category" db:"category"`
	Amount        float64   `json:"amount" db:"amount"`
	ExpenseDate   string    `json:"expense_date" db:"expense_date"` // YYYY-MM-DD
	PaymentMethod *string   `json:"payment_method,omitempty" db:"payment_method"`
	Notes         *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// ExpenseFilters defines the available predicates for expense search.
type ExpenseFilters struct {
	Category *string
	DateFrom *string
	DateTo   *string
}
