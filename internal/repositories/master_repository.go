package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"resto_pos_backend/internal/models"

	"github.com/lib/pq"
)

// MasterRepository defines the registry-store operations: vendor accounts,
// the restaurant directory, and user↔restaurant associations.
type MasterRepository interface {
	CreateUser(executor SQLExecutor, user *models.User, hashedPassword string) (int64, error)
	FindUserByEmail(email string) (*models.User, string, error) // Returns User, PasswordHash, Error
	FindUserByID(userID int64) (*models.User, error)

	CreateRestaurant(executor SQLExecutor, restaurant *models.Restaurant) (int64, error)
	FindRestaurantByCode(code string) (*models.Restaurant, error)
	RestaurantCodeExists(code string) (bool, error)
	RestaurantExistsForOwnerEmail(email string) (bool, error)

	LinkUserToRestaurant(executor SQLExecutor, userID, restaurantID int64) error
	UserLinkedToRestaurant(userID, restaurantID int64) (bool, error)
}

type masterRepository struct {
	db *sql.DB
}

// NewMasterRepository creates a new instance of MasterRepository bound to the
// master registry database.
func NewMasterRepository(db *sql.DB) MasterRepository {
	return &masterRepository{db: db}
}

func (r *masterRepository) CreateUser(executor SQLExecutor, user *models.User, hashedPassword string) (int64, error) {
	query := `INSERT INTO users (email, password_hash, full_name, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`

	currentTime := time.Now()
	var userID int64
	err := executor.QueryRow(query, user.Email, hashedPassword, user.FullName, currentTime, currentTime).Scan(&userID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating user: %v", ErrDatabaseError, err)
	}
	user.ID = userID
	return userID, nil
}

func (r *masterRepository) FindUserByEmail(email string) (*models.User, string, error) {
	user := &models.User{}
	var passwordHash string
	query := `SELECT id, email, password_hash, full_name, created_at, updated_at
	          FROM users WHERE email = $1`
	err := r.db.QueryRow(query, email).Scan(
		&user.ID, &user.Email, &passwordHash, &user.FullName, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("%w: finding user by email: %v", ErrDatabaseError, err)
	}
	return user, passwordHash, nil
}

func (r *masterRepository) FindUserByID(userID int64) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, full_name, created_at, updated_at FROM users WHERE id = $1`
	err := r.db.QueryRow(query, userID).Scan(
		&user.ID, &user.Email, &user.FullName, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding user by ID %d: %v", ErrDatabaseError, userID, err)
	}
	return user, nil
}

func (r *masterRepository) CreateRestaurant(executor SQLExecutor, restaurant *models.Restaurant) (int64, error) {
	query := `INSERT INTO restaurants (name, code, database_url, owner_email, phone, address, country, plan, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`

	if restaurant.CreatedAt.IsZero() {
		restaurant.CreatedAt = time.Now()
	}
	err := executor.QueryRow(query,
		restaurant.Name, restaurant.Code, restaurant.DatabaseURL, restaurant.OwnerEmail,
		restaurant.Phone, restaurant.Address, restaurant.Country, restaurant.Plan, restaurant.CreatedAt,
	).Scan(&restaurant.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating restaurant: %v", ErrDatabaseError, err)
	}
	return restaurant.ID, nil
}

func (r *masterRepository) FindRestaurantByCode(code string) (*models.Restaurant, error) {
	restaurant := &models.Restaurant{}
	query := `SELECT id, name, code, database_url, owner_email, phone, address, country, plan, created_at
	          FROM restaurants WHERE code = $1`
	err := r.db.QueryRow(query, code).Scan(
		&restaurant.ID, &restaurant.Name, &restaurant.Code, &restaurant.DatabaseURL,
		&restaurant.OwnerEmail, &restaurant.Phone, &restaurant.Address, &restaurant.Country,
		&restaurant.Plan, &restaurant.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding restaurant by code %s: %v", ErrDatabaseError, code, err)
	}
	return restaurant, nil
}

func (r *masterRepository) RestaurantCodeExists(code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM restaurants WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%w: checking restaurant code %s: %v", ErrDatabaseError, code, err)
	}
	return exists, nil
}

func (r *masterRepository) RestaurantExistsForOwnerEmail(email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM restaurants WHERE owner_email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%w: checking owner email: %v", ErrDatabaseError, err)
	}
	return exists, nil
}

func (r *masterRepository) LinkUserToRestaurant(executor SQLExecutor, userID, restaurantID int64) error {
	query := `INSERT INTO user_restaurants (user_id, restaurant_id, created_at)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (user_id, restaurant_id) DO NOTHING`
	if _, err := executor.Exec(query, userID, restaurantID, time.Now()); err != nil {
		return fmt.Errorf("%w: linking user %d to restaurant %d: %v", ErrDatabaseError, userID, restaurantID, err)
	}
	return nil
}

func (r *masterRepository) UserLinkedToRestaurant(userID, restaurantID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM user_restaurants WHERE user_id = $1 AND restaurant_id = $2)`
	err := r.db.QueryRow(query, userID, restaurantID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%w: checking user %d link to restaurant %d: %v", ErrDatabaseError, userID, restaurantID, err)
	}
	return exists, nil
}
