package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"resto_pos_backend/internal/models"

	"github.com/lib/pq"
)

// InventoryRepository defines inventory-item and supplier operations against
// a tenant store.
type InventoryRepository interface {
	CreateItem(executor SQLExecutor, item *models.InventoryItem) (int64, error)
	GetItemByID(executor SQLExecutor, id int64) (*models.InventoryItem, error)
	GetItems(executor SQLExecutor, filters models.InventoryFilters) ([]models.InventoryItem, error)
	UpdateItem(executor SQLExecutor, item *models.InventoryItem) error
	DeleteItem(executor SQLExecutor, id int64) error
	CountLowStock(executor SQLExecutor) (int, error)

	CreateSupplier(executor SQLExecutor, supplier *models.Supplier) (int64, error)
	GetSupplierByID(executor SQLExecutor, id int64) (*models.Supplier, error)
	GetSuppliers(executor SQLExecutor) ([]models.Supplier, error)
	UpdateSupplier(executor SQLExecutor, supplier *models.Supplier) error
	DeleteSupplier(executor SQLExecutor, id int64) error
}

type inventoryRepository struct{}

// NewInventoryRepository creates a new instance of InventoryRepository.
func NewInventoryRepository() InventoryRepository {
	return &inventoryRepository{}
}

const inventoryItemColumns = `id, name, category, unit, current_stock, min_stock, max_stock, cost_per_unit, supplier_id, expiry_date, created_at, updated_at`

func scanInventoryItem(row interface{ Scan(...interface{}) error }, item *models.InventoryItem) error {
	var expiry sql.NullTime
	if err := row.Scan(
		&item.ID, &item.Name, &item.Category, &item.Unit, &item.CurrentStock,
		&item.MinStock, &item.MaxStock, &item.CostPerUnit, &item.SupplierID, &expiry,
		&item.CreatedAt, &item.UpdatedAt,
	); err != nil {
		return err
	}
	if expiry.Valid {
		formatted := expiry.Time.Format("2006-01-02")
		item.ExpiryDate = &formatted
	}
	return nil
}

func (r *inventoryRepository) CreateItem(executor SQLExecutor, item *models.InventoryItem) (int64, error) {
	query := `INSERT INTO inventory_items
	            (name, category, unit, current_stock, min_stock, max_stock, cost_per_unit, supplier_id, expiry_date, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          RETURNING id`

	currentTime := time.Now()
	item.CreatedAt = currentTime
	item.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		item.Name, item.Category, item.Unit, item.CurrentStock, item.MinStock,
		item.MaxStock, item.CostPerUnit, item.SupplierID, item.ExpiryDate,
		item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return 0, fmt.Errorf("%w: creating inventory item (constraint: %s): %v", ErrDatabaseError, pqErr.Constraint, err)
		}
		return 0, fmt.Errorf("%w: creating inventory item: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

func (r *inventoryRepository) GetItemByID(executor SQLExecutor, id int64) (*models.InventoryItem, error) {
	item := &models.InventoryItem{}
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items WHERE id = $1`
	err := scanInventoryItem(executor.QueryRow(query, id), item)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting inventory item by ID %d: %v", ErrDatabaseError, id, err)
	}
	return item, nil
}

func (r *inventoryRepository) GetItems(executor SQLExecutor, filters models.InventoryFilters) ([]models.InventoryItem, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + inventoryItemColumns + ` FROM inventory_items`)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.Category != nil && *filters.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argCounter))
		args = append(args, *filters.Category)
		argCounter++
	}
	if filters.LowStock != nil && *filters.LowStock {
		conditions = append(conditions, "current_stock <= min_stock")
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY name")

	items := []models.InventoryItem{}
	rows, err := executor.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying inventory items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.InventoryItem
		if err := scanInventoryItem(rows, &item); err != nil {
			return nil, fmt.Errorf("%w: scanning inventory item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating inventory item rows: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *inventoryRepository) UpdateItem(executor SQLExecutor, item *models.InventoryItem) error {
	query := `UPDATE inventory_items SET
	            name = $1, category = $2, unit = $3, current_stock = $4, min_stock = $5,
	            max_stock = $6, cost_per_unit = $7, supplier_id = $8, expiry_date = $9, updated_at = $10
	          WHERE id = $11`

	item.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		item.Name, item.Category, item.Unit, item.CurrentStock, item.MinStock,
		item.MaxStock, item.CostPerUnit, item.SupplierID, item.ExpiryDate,
		item.UpdatedAt, item.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating inventory item ID %d: %v", ErrDatabaseError, item.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for inventory item ID %d: %v", ErrDatabaseError, item.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *inventoryRepository) DeleteItem(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting inventory item ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting inventory item ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *inventoryRepository) CountLowStock(executor SQLExecutor) (int, error) {
	var count int
	err := executor.QueryRow(`SELECT COUNT(*) FROM inventory_items WHERE current_stock <= min_stock`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting low stock items: %v", ErrDatabaseError, err)
	}
	return count, nil
}

// --- Supplier methods ---

const supplierColumns = `id, name, contact_name, phone, email, address, created_at, updated_at`

func scanSupplier(row interface{ Scan(...interface{}) error }, s *models.Supplier) error {
	return row.Scan(&s.ID, &s.Name, &s.ContactName, &s.Phone, &s.Email, &s.Address, &s.CreatedAt, &s.UpdatedAt)
}

func (r *inventoryRepository) CreateSupplier(executor SQLExecutor, supplier *models.Supplier) (int64, error) {
	query := `INSERT INTO suppliers (name, contact_name, phone, email, address, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`

	currentTime := time.Now()
	supplier.CreatedAt = currentTime
	supplier.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		supplier.Name, supplier.ContactName, supplier.Phone, supplier.Email, supplier.Address,
		supplier.CreatedAt, supplier.UpdatedAt,
	).Scan(&supplier.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating supplier: %v", ErrDatabaseError, err)
	}
	return supplier.ID, nil
}

func (r *inventoryRepository) GetSupplierByID(executor SQLExecutor, id int64) (*models.Supplier, error) {
	supplier := &models.Supplier{}
	err := scanSupplier(executor.QueryRow(`SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id), supplier)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting supplier by ID %d: %v", ErrDatabaseError, id, err)
	}
	return supplier, nil
}

func (r *inventoryRepository) GetSuppliers(executor SQLExecutor) ([]models.Supplier, error) {
	suppliers := []models.Supplier{}
	rows, err := executor.Query(`SELECT ` + supplierColumns + ` FROM suppliers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying suppliers: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.Supplier
		if err := scanSupplier(rows, &s); err != nil {
			return nil, fmt.Errorf("%w: scanning supplier: %v", ErrDatabaseError, err)
		}
		suppliers = append(suppliers, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating supplier rows: %v", ErrDatabaseError, err)
	}
	return suppliers, nil
}

func (r *inventoryRepository) UpdateSupplier(executor SQLExecutor, supplier *models.Supplier) error {
	query := `UPDATE suppliers SET name = $1, contact_name = $2, phone = $3, email = $4, address = $5, updated_at = $6
	          WHERE id = $7`

	supplier.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		supplier.Name, supplier.ContactName, supplier.Phone, supplier.Email, supplier.Address,
		supplier.UpdatedAt, supplier.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating supplier ID %d: %v", ErrDatabaseError, supplier.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for supplier ID %d: %v", ErrDatabaseError, supplier.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *inventoryRepository) DeleteSupplier(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting supplier ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting supplier ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
