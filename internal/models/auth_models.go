package models

import "time"

// User represents a vendor/user account in the master registry store.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"full_name" db:"full_name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Restaurant is the master-store registry row for one tenant. Code is the
// 7-digit public identifier; DatabaseURL points at the tenant's dedicated
// database.
type Restaurant struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" db:"name"`
	Code        string    `json:"code" db:"code"`
	DatabaseURL string    `json:"-" db:"database_url"`
	OwnerEmail  string    `json:"owner_email" db:"owner_email"`
	Phone       *string   `json:"phone,omitempty" db:"phone"`
	Address     *string   `json:"address,omitempty" db:"address"`
	Country     *string   `json:"country,omitempty" db:"country"`
	Plan        string    `json:"plan" db:"plan"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// UserRestaurant links a user to a restaurant. At most one row exists per
// (user, restaurant) pair.
type UserRestaurant struct {
	UserID       int64     `json:"user_id" db:"user_id"`
	RestaurantID int64     `json:"restaurant_id" db:"restaurant_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
