package models

import "time"

// Customer represents a restaurant guest. Phone is the de-duplication key;
// spend, order count and loyalty points accumulate from completed orders.
type Customer struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name" db:"name" binding:"required"`
	Phone         string     `json:"phone" db:"phone" binding:"required"`
	Email         *string    `json:"email,omitempty" db:"email"`
	TotalOrders   int        `json:"total_orders" db:"total_orders"`
	TotalSpent    float64    `json:"total_spent" db:"total_spent"`
	LoyaltyPoints int        `json:"loyalty_points" db:"loyalty_points"`
	LastVisit     *time.Time `json:"last_visit,omitempty" db:"last_visit"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// LoyaltyEntryType defines the type of a loyalty ledger entry.
type LoyaltyEntryType string

const (
	LoyaltyEntryEarned   LoyaltyEntryType = "earned"
	LoyaltyEntryRedeemed LoyaltyEntryType = "redeemed"
	LoyaltyEntryAdjusted LoyaltyEntryType = "adjusted"
)

// IsValidLoyaltyEntryType checks if the provided type string is a valid LoyaltyEntryType.
func IsValidLoyaltyEntryType(entryType string) bool {
	switch LoyaltyEntryType(entryType) {
	case LoyaltyEntryEarned, LoyaltyEntryRedeemed, LoyaltyEntryAdjusted:
		return true
	default:
		return false
	}
}

// LoyaltyEntry is one append-only row in a customer's loyalty ledger.
// Points is positive for earned entries and negative for redemptions.
type LoyaltyEntry struct {
	ID          int64     `json:"id"`
	CustomerID  int64     `json:"customer_id" db:"customer_id" binding:"required"`
	OrderID     *int64    `json:"order_id,omitempty" db:"order_id"`
	Points      int       `json:"points" db:"points"`
	EntryType   string    `json:"entry_type" db:"entry_type"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
