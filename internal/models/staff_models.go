package models

import "time"

// StaffMember represents an employee of the restaurant. Permissions gate
// which management screens the member may use; PIN is the POS quick login.
type StaffMember struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" db:"name" binding:"required"`
	Role        string    `json:"role" db:"role"`
	PIN         string    `json:"pin,omitempty" db:"pin"`
	Permissions []string  `json:"permissions" db:"permissions"`
	Phone       *string   `json:"phone,omitempty" db:"phone"`
	Email       *string   `json:"email,omitempty" db:"email"`
	SalaryType  *string   `json:"salary_type,omitempty" db:"salary_type"` // monthly, hourly
	SalaryRate  *float64  `json:"salary_rate,omitempty" db:"salary_rate"`
	Active      bool      `json:"active" db:"active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Shift records one staff member's working period with the cash counts and
// manually entered sales/tips.
type Shift struct {
	ID          int64      `json:"id"`
	StaffID     int64      `json:"staff_id" db:"staff_id" binding:"required"`
	ClockIn     time.Time  `json:"clock_in" db:"clock_in"`
	ClockOut    *time.Time `json:"clock_out,omitempty" db:"clock_out"`
	OpeningCash *float64   `json:"opening_cash,omitempty" db:"opening_cash"`
	ClosingCash *float64   `json:"closing_cash,omitempty" db:"closing_cash"`
	Sales       *float64   `json:"sales,omitempty" db:"sales"`
	Tips        *float64   `json:"tips,omitempty" db:"tips"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	StaffName   *string    `json:"staff_name,omitempty"`
}

// SalaryPayment records one payout to a staff member.
type SalaryPayment struct {
	ID          int64     `json:"id"`
	StaffID     int64     `json:"staff_id" db:"staff_id" binding:"required"`
	Amount      float64   `json:"amount" db:"amount"`
	PaymentType string    `json:"payment_type" db:"payment_type"` // salary, advance, bonus
	PaymentDate string    `json:"payment_date" db:"payment_date"` // YYYY-MM-DD
	Notes       *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
