package handlers

import (
	"errors"
	"net/http"

	"resto_pos_backend/internal/services"
	"resto_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// TaxHandler holds the tax service.
type TaxHandler struct {
	taxService services.TaxService
}

// NewTaxHandler creates a new TaxHandler.
func NewTaxHandler(ts services.TaxService) *TaxHandler {
	return &TaxHandler{taxService: ts}
}

// CreateTaxRule adds a tax rule.
func (h *TaxHandler) CreateTaxRule(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	var req services.CreateTaxRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	rule, err := h.taxService.CreateTaxRule(db, req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidTaxRate) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, err.Error(), ""))
		} else {
			utils.LogError(err, "CreateTaxRule: Error from taxService")
			respondInternal(c, "Failed to create tax rule.")
		}
		return
	}
	c.JSON(http.StatusCreated, rule)
}

// GetTaxRules lists all tax rules.
func (h *TaxHandler) GetTaxRules(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	rules, err := h.taxService.GetTaxRules(db)
	if err != nil {
		utils.LogError(err, "GetTaxRules: Error from taxService")
		respondInternal(c, "Failed to retrieve tax rules.")
		return
	}
	c.JSON(http.StatusOK, rules)
}

// GetTaxRule retrieves one tax rule.
func (h *TaxHandler) GetTaxRule(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	rule, err := h.taxService.GetTaxRuleByID(db, id)
	if err != nil {
		if errors.Is(err, services.ErrTaxRuleNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Tax rule not found.", err.Error()))
		} else {
			utils.LogError(err, "GetTaxRule: Error from taxService")
			respondInternal(c, "Failed to retrieve tax rule.")
		}
		return
	}
	c.JSON(http.StatusOK, rule)
}

// UpdateTaxRule replaces a tax rule's fields.
func (h *TaxHandler) UpdateTaxRule(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateTaxRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	rule, err := h.taxService.UpdateTaxRule(db, id, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaxRuleNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Tax rule not found.", err.Error()))
		case errors.Is(err, services.ErrInvalidTaxRate):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, err.Error(), ""))
		default:
			utils.LogError(err, "UpdateTaxRule: Error from taxService")
			respondInternal(c, "Failed to update tax rule.")
		}
		return
	}
	c.JSON(http.StatusOK, rule)
}

// DeleteTaxRule removes a tax rule.
func (h *TaxHandler) DeleteTaxRule(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.taxService.DeleteTaxRule(db, id); err != nil {
		if errors.Is(err, services.ErrTaxRuleNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Tax rule not found.", err.Error()))
		} else {
			utils.LogError(err, "DeleteTaxRule: Error from taxService")
			respondInternal(c, "Failed to delete tax rule.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tax rule deleted successfully."})
}
