package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"resto_pos_backend/internal/models"

	"github.com/lib/pq"
)

// CustomerRepository defines customer and loyalty-ledger operations against a
// tenant store.
type CustomerRepository interface {
	Create(executor SQLExecutor, customer *models.Customer) (int64, error)
	GetByID(executor SQLExecutor, id int64) (*models.Customer, error)
	GetByPhone(executor SQLExecutor, phone string) (*models.Customer, error)
	GetAll(executor SQLExecutor) ([]models.Customer, error)
	Search(executor SQLExecutor, term string) ([]models.Customer, error)
	Update(executor SQLExecutor, customer *models.Customer) error
	Delete(executor SQLExecutor, id int64) error

	// ApplyOrderTotals additively records one completed order against a
	// customer: spend, order count, loyalty points and last visit.
	ApplyOrderTotals(executor SQLExecutor, customerID int64, orderTotal float64, points int, visitedAt time.Time) error
	AdjustLoyaltyPoints(executor SQLExecutor, customerID int64, delta int) error

	CreateLoyaltyEntry(executor SQLExecutor, entry *models.LoyaltyEntry) (int64, error)
	GetLoyaltyEntriesByCustomerID(executor SQLExecutor, customerID int64) ([]models.LoyaltyEntry, error)
}

type customerRepository struct{}

// NewCustomerRepository creates a new instance of CustomerRepository.
func NewCustomerRepository() CustomerRepository {
	return &customerRepository{}
}

const customerColumns = `id, name, phone, email, total_orders, total_spent, loyalty_points, last_visit, created_at, updated_at`

func scanCustomer(row interface{ Scan(...interface{}) error }, c *models.Customer) error {
	return row.Scan(
		&c.ID, &c.Name, &c.Phone, &c.Email, &c.TotalOrders,
		&c.TotalSpent, &c.LoyaltyPoints, &c.LastVisit, &c.CreatedAt, &c.UpdatedAt,
	)
}

func (r *customerRepository) Create(executor SQLExecutor, customer *models.Customer) (int64, error) {
	query := `INSERT INTO customers (name, phone, email, total_orders, total_spent, loyalty_points, last_visit, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`

	currentTime := time.Now()
	customer.CreatedAt = currentTime
	customer.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		customer.Name, customer.Phone, customer.Email, customer.TotalOrders,
		customer.TotalSpent, customer.LoyaltyPoints, customer.LastVisit,
		customer.CreatedAt, customer.UpdatedAt,
	).Scan(&customer.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: phone %s already registered", ErrDuplicateKey, customer.Phone)
		}
		return 0, fmt.Errorf("%w: creating customer: %v", ErrDatabaseError, err)
	}
	return customer.ID, nil
}

func (r *customerRepository) GetByID(executor SQLExecutor, id int64) (*models.Customer, error) {
	customer := &models.Customer{}
	err := scanCustomer(executor.QueryRow(`SELECT `+customerColumns+` FROM customers WHERE id = $1`, id), customer)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting customer by ID %d: %v", ErrDatabaseError, id, err)
	}
	return customer, nil
}

func (r *customerRepository) GetByPhone(executor SQLExecutor, phone string) (*models.Customer, error) {
	customer := &models.Customer{}
	err := scanCustomer(executor.QueryRow(`SELECT `+customerColumns+` FROM customers WHERE phone = $1`, phone), customer)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting customer by phone %s: %v", ErrDatabaseError, phone, err)
	}
	return customer, nil
}

func (r *customerRepository) GetAll(executor SQLExecutor) ([]models.Customer, error) {
	return r.queryCustomers(executor, `SELECT `+customerColumns+` FROM customers ORDER BY name`)
}

func (r *customerRepository) Search(executor SQLExecutor, term string) ([]models.Customer, error) {
	pattern := "%" + term + "%"
	return r.queryCustomers(executor,
		`SELECT `+customerColumns+` FROM customers WHERE name ILIKE $1 OR phone ILIKE $1 ORDER BY name`, pattern)
}

func (r *customerRepository) queryCustomers(executor SQLExecutor, query string, args ...interface{}) ([]models.Customer, error) {
	customers := []models.Customer{}
	rows, err := executor.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying customers: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Customer
		if err := scanCustomer(rows, &c); err != nil {
			return nil, fmt.Errorf("%w: scanning customer: %v", ErrDatabaseError, err)
		}
		customers = append(customers, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating customer rows: %v", ErrDatabaseError, err)
	}
	return customers, nil
}

func (r *customerRepository) Update(executor SQLExecutor, customer *models.Customer) error {
	query := `UPDATE customers SET name = $1, phone = $2, email = $3, updated_at = $4 WHERE id = $5`

	customer.UpdatedAt = time.Now()
	result, err := executor.Exec(query, customer.Name, customer.Phone, customer.Email, customer.UpdatedAt, customer.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: phone %s already registered", ErrDuplicateKey, customer.Phone)
		}
		return fmt.Errorf("%w: updating customer ID %d: %v", ErrDatabaseError, customer.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for customer ID %d: %v", ErrDatabaseError, customer.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *customerRepository) Delete(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return fmt.Errorf("%w: customer ID %d is referenced by orders (constraint: %s)", ErrDatabaseError, id, pqErr.Constraint)
		}
		return fmt.Errorf("%w: deleting customer ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting customer ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *customerRepository) ApplyOrderTotals(executor SQLExecutor, customerID int64, orderTotal float64, points int, visitedAt time.Time) error {
	query := `UPDATE customers SET
	            total_orders = total_orders + 1,
	            total_spent = total_spent + $1,
	            loyalty_points = loyalty_points + $2,
	            last_visit = $3,
	            updated_at = $3
	          WHERE id = $4`
	result, err := executor.Exec(query, orderTotal, points, visitedAt, customerID)
	if err != nil {
		return fmt.Errorf("%w: applying order totals to customer ID %d: %v", ErrDatabaseError, customerID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for customer totals ID %d: %v", ErrDatabaseError, customerID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *customerRepository) AdjustLoyaltyPoints(executor SQLExecutor, customerID int64, delta int) error {
	result, err := executor.Exec(
		`UPDATE customers SET loyalty_points = loyalty_points + $1, updated_at = $2 WHERE id = $3`,
		delta, time.Now(), customerID,
	)
	if err != nil {
		return fmt.Errorf("%w: adjusting loyalty points for customer ID %d: %v", ErrDatabaseError, customerID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for loyalty adjustment ID %d: %v", ErrDatabaseError, customerID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *customerRepository) CreateLoyaltyEntry(executor SQLExecutor, entry *models.LoyaltyEntry) (int64, error) {
	query := `INSERT INTO loyalty_entries (customer_id, order_id, points, entry_type, description, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	err := executor.QueryRow(query,
		entry.CustomerID, entry.OrderID, entry.Points, entry.EntryType, entry.Description, entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return 0, fmt.Errorf("%w: creating loyalty entry (constraint: %s): %v", ErrDatabaseError, pqErr.Constraint, err)
		}
		return 0, fmt.Errorf("%w: creating loyalty entry: %v", ErrDatabaseError, err)
	}
	return entry.ID, nil
}

func (r *customerRepository) GetLoyaltyEntriesByCustomerID(executor SQLExecutor, customerID int64) ([]models.LoyaltyEntry, error) {
	entries := []models.LoyaltyEntry{}
	query := `SELECT id, customer_id, order_id, points, entry_type, description, created_at
	          FROM loyalty_entries WHERE customer_id = $1 ORDER BY created_at DESC`

	rows, err := executor.Query(query, customerID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying loyalty entries for customer ID %d: %v", ErrDatabaseError, customerID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.LoyaltyEntry
		if err := rows.Scan(&e.ID, &e.CustomerID, &e.OrderID, &e.Points, &e.EntryType, &e.Description, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning loyalty entry: %v", ErrDatabaseError, err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating loyalty entry rows: %v", ErrDatabaseError, err)
	}
	return entries, nil
}
