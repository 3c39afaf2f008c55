package handlers

import (
	"errors"
	"net/http"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/services"
	"resto_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler holds the expense service.
type ExpenseHandler struct {
	expenseService services.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(es services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: es}
}

// CreateExpense records an outgoing payment.
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	var req services.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	expense, err := h.expenseService.CreateExpense(db, req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidExpenseAmount) || errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, err.Error(), ""))
		} else {
			utils.LogError(err, "CreateExpense: Error from expenseService")
			respondInternal(c, "Failed to create expense.")
		}
		return
	}
	c.JSON(http.StatusCreated, expense)
}

// GetExpenses lists expenses with optional category and date filters.
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	filters := models.ExpenseFilters{
		Category: optionalQueryString(c, "category"),
		DateFrom: optionalQueryString(c, "date_from"),
		DateTo:   optionalQueryString(c, "date_to"),
	}

	expenses, err := h.expenseService.GetExpenses(db, filters)
	if err != nil {
		utils.LogError(err, "GetExpenses: Error from expenseService")
		respondInternal(c, "Failed to retrieve expenses.")
		return
	}
	c.JSON(http.StatusOK, expenses)
}

// GetExpense retrieves one expense.
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	expense, err := h.expenseService.GetExpenseByID(db, id)
	if err != nil {
		if errors.Is(err, services.ErrExpenseNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Expense not found.", err.Error()))
		} else {
			utils.LogError(err, "GetExpense: Error from expenseService")
			respondInternal(c, "Failed to retrieve expense.")
		}
		return
	}
	c.JSON(http.StatusOK, expense)
}

// UpdateExpense replaces an expense's fields.
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	expense, err := h.expenseService.UpdateExpense(db, id, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrExpenseNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Expense not found.", err.Error()))
		case errors.Is(err, services.ErrInvalidExpenseAmount), errors.Is(err, services.ErrValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, err.Error(), ""))
		default:
			utils.LogError(err, "UpdateExpense: Error from expenseService")
			respondInternal(c, "Failed to update expense.")
		}
		return
	}
	c.JSON(http.StatusOK, expense)
}

// DeleteExpense removes an expense.
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.expenseService.DeleteExpense(db, id); err != nil {
		if errors.Is(err, services.ErrExpenseNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Expense not found.", err.Error()))
		} else {
			utils.LogError(err, "DeleteExpense: Error from expenseService")
			respondInternal(c, "Failed to delete expense.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully."})
}

// GetExpenseStats aggregates expenses over an optional date range.
func (h *ExpenseHandler) GetExpenseStats(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	dateRange := models.ReportRange{
		StartDate: optionalQueryString(c, "start_date"),
		EndDate:   optionalQueryString(c, "end_date"),
	}

	stats, err := h.expenseService.GetExpenseStats(db, dateRange)
	if err != nil {
		utils.LogError(err, "GetExpenseStats: Error from expenseService")
		respondInternal(c, "Failed to retrieve expense stats.")
		return
	}
	c.JSON(http.StatusOK, stats)
}
