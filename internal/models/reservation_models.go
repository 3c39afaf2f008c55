package models

import "time"

// ReservationStatus defines the type for reservation statuses.
type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusSeated    ReservationStatus = "seated"
	ReservationStatusCompleted ReservationStatus = "completed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusNoShow    ReservationStatus = "no-show"
)

// IsValidReservationStatus checks if the provided status string is a valid ReservationStatus.
func IsValidReservationStatus(status string) bool {
	switch ReservationStatus(status) {
	case ReservationStatusPending,
		ReservationStatusConfirmed,
		ReservationStatusSeated,
		ReservationStatusCompleted,
		ReservationStatusCancelled,
		ReservationStatusNoShow:
		return true
	default:
		return false
	}
}

// Reservation represents a booked party.
type Reservation struct {
	ID            int64     `json:"id"`
	CustomerName  string    `json:"customer_name" db:"customer_name" binding:"required"`
	CustomerPhone string    `json:"customer_phone" db:"customer_phone" binding:"required"`
	Date          string    `json:"date" db:"date" binding:"required"` // YYYY-MM-DD
	Time          string    `json:"time" db:"time" binding:"required"` // HH:MM
	PartySize     int       `json:"party_size" db:"party_size"`
	TableID       *int64    `json:"table_id,omitempty" db:"table_id"`
	Status        string    `json:"status" db:"status"`
	Source        *string   `json:"source,omitempty" db:"source"`
	Priority      *string   `json:"priority,omitempty" db:"priority"`
	Notes         *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
	Table         *Table    `json:"table,omitempty"`
}

// ReservationFilters defines the available predicates for reservation search.
type ReservationFilters struct {
	Date   *string
	Status *string
}
