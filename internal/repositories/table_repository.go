package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"resto_pos_backend/internal/models"

	"github.com/lib/pq"
)

// TableRepository defines restaurant-table operations against a tenant store.
type TableRepository interface {
	Create(executor SQLExecutor, table *models.Table) (int64, error)
	GetByID(executor SQLExecutor, id int64) (*models.Table, error)
	GetAll(executor SQLExecutor) ([]models.Table, error)
	GetByStatus(executor SQLExecutor, status string) ([]models.Table, error)
	Update(executor SQLExecutor, table *models.Table) error
	Delete(executor SQLExecutor, id int64) error
	GetStats(executor SQLExecutor) (*models.TableStats, error)
}

type tableRepository struct{}

// NewTableRepository creates a new instance of TableRepository.
func NewTableRepository() TableRepository {
	return &tableRepository{}
}

const tableColumns = `id, number, capacity, status, current_customer, customer_phone, waiter, occupied_since, created_at, updated_at`

func scanTable(row interface{ Scan(...interface{}) error }, t *models.Table) error {
	return row.Scan(
		&t.ID, &t.Number, &t.Capacity, &t.Status, &t.CurrentCustomer,
		&t.CustomerPhone, &t.Waiter, &t.OccupiedSince, &t.CreatedAt, &t.UpdatedAt,
	)
}

func (r *tableRepository) Create(executor SQLExecutor, table *models.Table) (int64, error) {
	query := `INSERT INTO restaurant_tables
	            (number, capacity, status, current_customer, customer_phone, waiter, occupied_since, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`

	currentTime := time.Now()
	table.CreatedAt = currentTime
	table.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		table.Number, table.Capacity, table.Status, table.CurrentCustomer,
		table.CustomerPhone, table.Waiter, table.OccupiedSince,
		table.CreatedAt, table.UpdatedAt,
	).Scan(&table.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: table number %d already exists", ErrDuplicateKey, table.Number)
		}
		return 0, fmt.Errorf("%w: creating table: %v", ErrDatabaseError, err)
	}
	return table.ID, nil
}

func (r *tableRepository) GetByID(executor SQLExecutor, id int64) (*models.Table, error) {
	table := &models.Table{}
	query := `SELECT ` + tableColumns + ` FROM restaurant_tables WHERE id = $1`
	err := scanTable(executor.QueryRow(query, id), table)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting table by ID %d: %v", ErrDatabaseError, id, err)
	}
	return table, nil
}

func (r *tableRepository) GetAll(executor SQLExecutor) ([]models.Table, error) {
	return r.queryTables(executor, `SELECT `+tableColumns+` FROM restaurant_tables ORDER BY number`)
}

func (r *tableRepository) GetByStatus(executor SQLExecutor, status string) ([]models.Table, error) {
	return r.queryTables(executor, `SELECT `+tableColumns+` FROM restaurant_tables WHERE status = $1 ORDER BY number`, status)
}

func (r *tableRepository) queryTables(executor SQLExecutor, query string, args ...interface{}) ([]models.Table, error) {
	tables := []models.Table{}
	rows, err := executor.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying tables: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var t models.Table
		if err := scanTable(rows, &t); err != nil {
			return nil, fmt.Errorf("%w: scanning table: %v", ErrDatabaseError, err)
		}
		tables = append(tables, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating table rows: %v", ErrDatabaseError, err)
	}
	return tables, nil
}

func (r *tableRepository) Update(executor SQLExecutor, table *models.Table) error {
	query := `UPDATE restaurant_tables SET
	            number = $1, capacity = $2, status = $3, current_customer = $4,
	            customer_phone = $5, waiter = $6, occupied_since = $7, updated_at = $8
	          WHERE id = $9`

	table.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		table.Number, table.Capacity, table.Status, table.CurrentCustomer,
		table.CustomerPhone, table.Waiter, table.OccupiedSince, table.UpdatedAt, table.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: table number %d already exists", ErrDuplicateKey, table.Number)
		}
		return fmt.Errorf("%w: updating table ID %d: %v", ErrDatabaseError, table.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for table ID %d: %v", ErrDatabaseError, table.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *tableRepository) Delete(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM restaurant_tables WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return fmt.Errorf("%w: table ID %d is referenced by orders or reservations (constraint: %s)", ErrDatabaseError, id, pqErr.Constraint)
		}
		return fmt.Errorf("%w: deleting table ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting table ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *tableRepository) GetStats(executor SQLExecutor) (*models.TableStats, error) {
	stats := &models.TableStats{}
	query := `SELECT
	            COUNT(*),
	            COUNT(*) FILTER (WHERE status = 'free'),
	            COUNT(*) FILTER (WHERE status = 'occupied'),
	            COUNT(*) FILTER (WHERE status = 'reserved')
	          FROM restaurant_tables`
	err := executor.QueryRow(query).Scan(&stats.Total, &stats.Free, &stats.Occupied, &stats.Reserved)
	if err != nil {
		return nil, fmt.Errorf("%w: querying table stats: %v", ErrDatabaseError, err)
	}
	return stats, nil
}
