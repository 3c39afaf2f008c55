package models

import "time"

// TableStatus defines the type for table statuses.
type TableStatus string

const (
	TableStatusFree     TableStatus = "free"
	TableStatusOccupied TableStatus = "occupied"
	TableStatusReserved TableStatus = "reserved"
)

// IsValidTableStatus checks if the provided status string is a valid TableStatus.
func IsValidTableStatus(status string) bool {
	switch TableStatus(status) {
	case TableStatusFree, TableStatusOccupied, TableStatusReserved:
		return true
	default:
		return false
	}
}

// Table represents a physical table in the restaurant. An occupied or
// reserved table carries the associated customer and time metadata.
type Table struct {
	ID              int64      `json:"id"`
	Number          int        `json:"number" db:"number" binding:"required"`
	Capacity        int        `json:"capacity" db:"capacity"`
	Status          string     `json:"status" db:"status"`
	CurrentCustomer *string    `json:"current_customer,omitempty" db:"current_customer"`
	CustomerPhone   *string    `json:"customer_phone,omitempty" db:"customer_phone"`
	Waiter          *string    `json:"waiter,omitempty" db:"waiter"`
	OccupiedSince   *time.Time `json:"occupied_since,omitempty" db:"occupied_since"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// TableStats summarizes table occupancy for the floor view.
type TableStats struct {
	Total    int `json:"total"`
	Free     int `json:"free"`
	Occupied int `json:"occupied"`
	Reserved int `json:"reserved"`
}
