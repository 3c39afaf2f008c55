package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/repositories"
)

var (
	ErrExpenseNotFound      = errors.New("expense not found")
	ErrInvalidExpenseAmount = errors.New("expense amount must be positive")
)

// ExpenseRequest DTO, used for both create and update.
type ExpenseRequest struct {
	Description   string  `json:"description" binding:"required"`
	Category      string  `json:"category" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	ExpenseDate   string  `json:"expense_date" binding:"required"` // YYYY-MM-DD
	PaymentMethod *string `json:"payment_method"`
	Notes         *string `json:"notes"`
}

// --- ExpenseService Interface ---
type ExpenseService interface {
	CreateExpense(db *sql.DB, req ExpenseRequest) (*models.Expense, error)
	GetExpenses(db *sql.DB, filters models.ExpenseFilters) ([]models.Expense, error)
	GetExpenseByID(db *sql.DB, id int64) (*models.Expense, error)
	UpdateExpense(db *sql.DB, id int64, req ExpenseRequest) (*models.Expense, error)
	DeleteExpense(db *sql.DB, id int64) error
	GetExpenseStats(db *sql.DB, dateRange models.ReportRange) (*models.ExpenseStats, error)
}

type expenseService struct {
	expenseRepo repositories.ExpenseRepository
}

// NewExpenseService creates a new instance of ExpenseService.
func NewExpenseService(expenseRepo repositories.ExpenseRepository) ExpenseService {
	return &expenseService{expenseRepo: expenseRepo}
}

func (s *expenseService) validate(req ExpenseRequest) error {
	if req.Amount <= 0 {
		return ErrInvalidExpenseAmount
	}
	if _, err := time.Parse("2006-01-02", req.ExpenseDate); err != nil {
		return fmt.Errorf("%w: expense_date must be YYYY-MM-DD", ErrValidation)
	}
	return nil
}

func (s *expenseService) CreateExpense(db *sql.DB, req ExpenseRequest) (*models.Expense, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	expense := models.Expense{
		Description:   req.Description,
		Category:      req.Category,
		Amount:        req.Amount,
		ExpenseDate:   req.ExpenseDate,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}
	if _, err := s.expenseRepo.Create(db, &expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	return &expense, nil
}

func (s *expenseService) GetExpenses(db *sql.DB, filters models.ExpenseFilters) ([]models.Expense, error) {
	expenses, err := s.expenseRepo.GetAll(db, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}
	return expenses, nil
}

func (s *expenseService) GetExpenseByID(db *sql.DB, id int64) (*models.Expense, error) {
	expense, err := s.expenseRepo.GetByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return expense, nil
}

func (s *expenseService) UpdateExpense(db *sql.DB, id int64, req ExpenseRequest) (*models.Expense, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	expense, err := s.expenseRepo.GetByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to fetch expense for update: %w", err)
	}

	expense.Description = req.Description
	expense.Category = req.Category
	expense.Amount = req.Amount
	expense.ExpenseDate = req.ExpenseDate
	expense.PaymentMethod = req.PaymentMethod
	expense.Notes = req.Notes

	if err := s.expenseRepo.Update(db, expense); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	return expense, nil
}

func (s *expenseService) DeleteExpense(db *sql.DB, id int64) error {
	if err := s.expenseRepo.Delete(db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrExpenseNotFound
		}
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}

func (s *expenseService) GetExpenseStats(db *sql.DB, dateRange models.ReportRange) (*models.ExpenseStats, error) {
	stats, err := s.expenseRepo.GetStats(db, dateRange)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense stats: %w", err)
	}
	return stats, nil
}
