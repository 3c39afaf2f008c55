package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"resto_pos_backend/internal/models"
)

// MenuRepository defines menu-item operations against a tenant store. All
// methods take an SQLExecutor because the tenant handle is request-scoped.
type MenuRepository interface {
	Create(executor SQLExecutor, item *models.MenuItem) (int64, error)
	GetByID(executor SQLExecutor, id int64) (*models.MenuItem, error)
	GetAll(executor SQLExecutor) ([]models.MenuItem, error)
	Search(executor SQLExecutor, filters models.MenuFilters) ([]models.MenuItem, error)
	Update(executor SQLExecutor, item *models.MenuItem) error
	Delete(executor SQLExecutor, id int64) error
	GetCategories(executor SQLExecutor) ([]string, error)
}

type menuRepository struct{}

// NewMenuRepository creates a new instance of MenuRepository.
func NewMenuRepository() MenuRepository {
	return &menuRepository{}
}

const menuItemColumns = `id, name, price, category, available, vegetarian, spice_level, prep_minutes, popular, tax_category, created_at, updated_at`

func scanMenuItem(row interface{ Scan(...interface{}) error }, item *models.MenuItem) error {
	return row.Scan(
		&item.ID, &item.Name, &item.Price, &item.Category, &item.Available,
		&item.Vegetarian, &item.SpiceLevel, &item.PrepMinutes, &item.Popular,
		&item.TaxCategory, &item.CreatedAt, &item.UpdatedAt,
	)
}

func (r *menuRepository) Create(executor SQLExecutor, item *models.MenuItem) (int64, error) {
	query := `INSERT INTO menu_items
	            (name, price, category, available, vegetarian, spice_level, prep_minutes, popular, tax_category, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          RETURNING id`

	currentTime := time.Now()
	item.CreatedAt = currentTime
	item.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		item.Name, item.Price, item.Category, item.Available, item.Vegetarian,
		item.SpiceLevel, item.PrepMinutes, item.Popular, item.TaxCategory,
		item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating menu item: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

func (r *menuRepository) GetByID(executor SQLExecutor, id int64) (*models.MenuItem, error) {
	item := &models.MenuItem{}
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE id = $1`
	err := scanMenuItem(executor.QueryRow(query, id), item)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting menu item by ID %d: %v", ErrDatabaseError, id, err)
	}
	return item, nil
}

func (r *menuRepository) GetAll(executor SQLExecutor) ([]models.MenuItem, error) {
	return r.queryItems(executor, `SELECT `+menuItemColumns+` FROM menu_items ORDER BY category, name`)
}

func (r *menuRepository) Search(executor SQLExecutor, filters models.MenuFilters) ([]models.MenuItem, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + menuItemColumns + ` FROM menu_items`)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.Name != nil && *filters.Name != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argCounter))
		args = append(args, "%"+*filters.Name+"%")
		argCounter++
	}
	if filters.Category != nil && *filters.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argCounter))
		args = append(args, *filters.Category)
		argCounter++
	}
	if filters.Vegetarian != nil {
		conditions = append(conditions, fmt.Sprintf("vegetarian = $%d", argCounter))
		args = append(args, *filters.Vegetarian)
		argCounter++
	}
	if filters.Popular != nil {
		conditions = append(conditions, fmt.Sprintf("popular = $%d", argCounter))
		args = append(args, *filters.Popular)
		argCounter++
	}
	if filters.Available != nil {
		conditions = append(conditions, fmt.Sprintf("available = $%d", argCounter))
		args = append(args, *filters.Available)
		argCounter++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY category, name")

	return r.queryItems(executor, queryBuilder.String(), args...)
}

func (r *menuRepository) queryItems(executor SQLExecutor, query string, args ...interface{}) ([]models.MenuItem, error) {
	items := []models.MenuItem{}
	rows, err := executor.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying menu items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.MenuItem
		if err := scanMenuItem(rows, &item); err != nil {
			return nil, fmt.Errorf("%w: scanning menu item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating menu item rows: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *menuRepository) Update(executor SQLExecutor, item *models.MenuItem) error {
	query := `UPDATE menu_items SET
	            name = $1, price = $2, category = $3, available = $4, vegetarian = $5,
	            spice_level = $6, prep_minutes = $7, popular = $8, tax_category = $9, updated_at = $10
	          WHERE id = $11`

	item.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		item.Name, item.Price, item.Category, item.Available, item.Vegetarian,
		item.SpiceLevel, item.PrepMinutes, item.Popular, item.TaxCategory,
		item.UpdatedAt, item.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating menu item ID %d: %v", ErrDatabaseError, item.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for menu item ID %d: %v", ErrDatabaseError, item.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *menuRepository) Delete(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting menu item ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting menu item ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *menuRepository) GetCategories(executor SQLExecutor) ([]string, error) {
	categories := []string{}
	rows, err := executor.Query(`SELECT DISTINCT category FROM menu_items WHERE category <> '' ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying menu categories: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("%w: scanning menu category: %v", ErrDatabaseError, err)
		}
		categories = append(categories, category)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating menu category rows: %v", ErrDatabaseError, err)
	}
	return categories, nil
}
