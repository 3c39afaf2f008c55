package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"resto_pos_backend/internal/models"

	"github.com/lib/pq"
)

// TaxRepository defines tax-rule operations against a tenant store.
type TaxRepository interface {
	Create(executor SQLExecutor, rule *models.TaxRule) (int64, error)
	GetByID(executor SQLExecutor, id int64) (*models.TaxRule, error)
	GetAll(executor SQLExecutor) ([]models.TaxRule, error)
	GetActive(executor SQLExecutor) ([]models.TaxRule, error)
	Update(executor SQLExecutor, rule *models.TaxRule) error
	Delete(executor SQLExecutor, id int64) error
}

type taxRepository struct{}

// NewTaxRepository creates a new instance of TaxRepository.
func NewTaxRepository() TaxRepository {
	return &taxRepository{}
}

const taxRuleColumns = `id, name, rate, categories, is_active, created_at, updated_at`

func scanTaxRule(row interface{ Scan(...interface{}) error }, rule *models.TaxRule) error {
	return row.Scan(&rule.ID, &rule.Name, &rule.Rate, pq.Array(&rule.Categories), &rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt)
}

func (r *taxRepository) Create(executor SQLExecutor, rule *models.TaxRule) (int64, error) {
	query := `INSERT INTO tax_rules (name, rate, categories, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	currentTime := time.Now()
	rule.CreatedAt = currentTime
	rule.UpdatedAt = currentTime
	if rule.Categories == nil {
		rule.Categories = []string{models.TaxCategoryAll}
	}

	err := executor.QueryRow(query,
		rule.Name, rule.Rate, pq.Array(rule.Categories), rule.IsActive, rule.CreatedAt, rule.UpdatedAt,
	).Scan(&rule.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating tax rule: %v", ErrDatabaseError, err)
	}
	return rule.ID, nil
}

func (r *taxRepository) GetByID(executor SQLExecutor, id int64) (*models.TaxRule, error) {
	rule := &models.TaxRule{}
	err := scanTaxRule(executor.QueryRow(`SELECT `+taxRuleColumns+` FROM tax_rules WHERE id = $1`, id), rule)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting tax rule by ID %d: %v", ErrDatabaseError, id, err)
	}
	return rule, nil
}

func (r *taxRepository) GetAll(executor SQLExecutor) ([]models.TaxRule, error) {
	return r.queryRules(executor, `SELECT `+taxRuleColumns+` FROM tax_rules ORDER BY name`)
}

func (r *taxRepository) GetActive(executor SQLExecutor) ([]models.TaxRule, error) {
	return r.queryRules(executor, `SELECT `+taxRuleColumns+` FROM tax_rules WHERE is_active = TRUE ORDER BY name`)
}

func (r *taxRepository) queryRules(executor SQLExecutor, query string, args ...interface{}) ([]models.TaxRule, error) {
	rules := []models.TaxRule{}
	rows, err := executor.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying tax rules: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var rule models.TaxRule
		if err := scanTaxRule(rows, &rule); err != nil {
			return nil, fmt.Errorf("%w: scanning tax rule: %v", ErrDatabaseError, err)
		}
		rules = append(rules, rule)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating tax rule rows: %v", ErrDatabaseError, err)
	}
	return rules, nil
}

func (r *taxRepository) Update(executor SQLExecutor, rule *models.TaxRule) error {
	query := `UPDATE tax_rules SET name = $1, rate = $2, categories = $3, is_active = $4, updated_at = $5
	          WHERE id = $6`

	rule.UpdatedAt = time.Now()
	if rule.Categories == nil {
		rule.Categories = []string{models.TaxCategoryAll}
	}
	result, err := executor.Exec(query,
		rule.Name, rule.Rate, pq.Array(rule.Categories), rule.IsActive, rule.UpdatedAt, rule.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating tax rule ID %d: %v", ErrDatabaseError, rule.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for tax rule ID %d: %v", ErrDatabaseError, rule.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *taxRepository) Delete(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM tax_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting tax rule ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting tax rule ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
