package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"resto_pos_backend/internal/models"
)

// ExpenseRepository defines expense operations against a tenant store.
type ExpenseRepository interface {
	Create(executor SQLExecutor, expense *models.Expense) (int64, error)
	GetByID(executor SQLExecutor, id int64) (*models.Expense, error)
	GetAll(executor SQLExecutor, filters models.ExpenseFilters) ([]models.Expense, error)
	Update(executor SQLExecutor, expense *models.Expense) error
	Delete(executor SQLExecutor, id int64) error
	GetStats(executor SQLExecutor, dateRange models.ReportRange) (*models.ExpenseStats, error)
}

type expenseRepository struct{}

// NewExpenseRepository creates a new instance of ExpenseRepository.
func NewExpenseRepository() ExpenseRepository {
	return &expenseRepository{}
}

const expenseColumns = `id, description, category, amount, to_char(expense_date, 'YYYY-MM-DD'), payment_method, notes, created_at, updated_at`

func scanExpense(row interface{ Scan(...interface{}) error }, e *models.Expense) error {
	return row.Scan(
		&e.ID, &e.Description, &e.Category, &e.Amount, &e.ExpenseDate,
		&e.PaymentMethod, &e.Notes, &e.CreatedAt, &e.UpdatedAt,
	)
}

func (r *expenseRepository) Create(executor SQLExecutor, expense *models.Expense) (int64, error) {
	query := `INSERT INTO expenses (description, category, amount, expense_date, payment_method, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`

	currentTime := time.Now()
	expense.CreatedAt = currentTime
	expense.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		expense.Description, expense.Category, expense.Amount, expense.ExpenseDate,
		expense.PaymentMethod, expense.Notes, expense.CreatedAt, expense.UpdatedAt,
	).Scan(&expense.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating expense: %v", ErrDatabaseError, err)
	}
	return expense.ID, nil
}

func (r *expenseRepository) GetByID(executor SQLExecutor, id int64) (*models.Expense, error) {
	expense := &models.Expense{}
	err := scanExpense(executor.QueryRow(`SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, id), expense)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting expense by ID %d: %v", ErrDatabaseError, id, err)
	}
	return expense, nil
}

func (r *expenseRepository) GetAll(executor SQLExecutor, filters models.ExpenseFilters) ([]models.Expense, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + expenseColumns + ` FROM expenses`)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.Category != nil && *filters.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argCounter))
		args = append(args, *filters.Category)
		argCounter++
	}
	if filters.DateFrom != nil && *filters.DateFrom != "" {
		conditions = append(conditions, fmt.Sprintf("expense_date >= $%d", argCounter))
		args = append(args, *filters.DateFrom)
		argCounter++
	}
	if filters.DateTo != nil && *filters.DateTo != "" {
		conditions = append(conditions, fmt.Sprintf("expense_date <= $%d", argCounter))
		args = append(args, *filters.DateTo)
		argCounter++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY expense_date DESC")

	expenses := []models.Expense{}
	rows, err := executor.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying expenses: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.Expense
		if err := scanExpense(rows, &e); err != nil {
			return nil, fmt.Errorf("%w: scanning expense: %v", ErrDatabaseError, err)
		}
		expenses = append(expenses, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating expense rows: %v", ErrDatabaseError, err)
	}
	return expenses, nil
}

func (r *expenseRepository) Update(executor SQLExecutor, expense *models.Expense) error {
	query := `UPDATE expenses SET
	            description = $1, category = $2, amount = $3, expense_date = $4,
	            payment_method = $5, notes = $6, updated_at = $7
	          WHERE id = $8`

	expense.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		expense.Description, expense.Category, expense.Amount, expense.ExpenseDate,
		expense.PaymentMethod, expense.Notes, expense.UpdatedAt, expense.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating expense ID %d: %v", ErrDatabaseError, expense.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for expense ID %d: %v", ErrDatabaseError, expense.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *expenseRepository) Delete(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting expense ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting expense ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *expenseRepository) GetStats(executor SQLExecutor, dateRange models.ReportRange) (*models.ExpenseStats, error) {
	stats := &models.ExpenseStats{ByCategory: map[string]float64{}}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT category, COUNT(*), COALESCE(SUM(amount), 0) FROM expenses`)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if dateRange.StartDate != nil && *dateRange.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("expense_date >= $%d", argCounter))
		args = append(args, *dateRange.StartDate)
		argCounter++
	}
	if dateRange.EndDate != nil && *dateRange.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("expense_date <= $%d", argCounter))
		args = append(args, *dateRange.EndDate)
		argCounter++
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" GROUP BY category")

	rows, err := executor.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying expense stats: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var count int
		var sum float64
		if err := rows.Scan(&category, &count, &sum); err != nil {
			return nil, fmt.Errorf("%w: scanning expense stats: %v", ErrDatabaseError, err)
		}
		stats.ByCategory[category] = sum
		stats.Count += count
		stats.TotalExpenses += sum
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating expense stats rows: %v", ErrDatabaseError, err)
	}
	return stats, nil
}
