package handlers

import (
	"errors"
	"net/http"

	"resto_pos_backend/internal/services"
	"resto_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CustomerHandler holds the customer service.
type CustomerHandler struct {
	customerService services.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(cs services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: cs}
}

// CreateCustomer registers a new customer.
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	var req services.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	customer, err := h.customerService.CreateCustomer(db, req)
	if err != nil {
		if errors.Is(err, services.ErrPhoneExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Phone number already registered.", err.Error()))
		} else {
			utils.LogError(err, "CreateCustomer: Error from customerService")
			respondInternal(c, "Failed to create customer.")
		}
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// GetCustomers lists customers, optionally filtered by a search term.
func (h *CustomerHandler) GetCustomers(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	customers, err := h.customerService.GetCustomers(db, c.Query("search"))
	if err != nil {
		utils.LogError(err, "GetCustomers: Error from customerService")
		respondInternal(c, "Failed to retrieve customers.")
		return
	}
	c.JSON(http.StatusOK, customers)
}

// GetCustomer retrieves one customer.
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	customer, err := h.customerService.GetCustomerByID(db, id)
	if err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Customer not found.", err.Error()))
		} else {
			utils.LogError(err, "GetCustomer: Error from customerService")
			respondInternal(c, "Failed to retrieve customer.")
		}
		return
	}
	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer replaces a customer's contact fields.
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	customer, err := h.customerService.UpdateCustomer(db, id, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCustomerNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Customer not found.", err.Error()))
		case errors.Is(err, services.ErrPhoneExists):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Phone number already registered.", err.Error()))
		default:
			utils.LogError(err, "UpdateCustomer: Error from customerService")
			respondInternal(c, "Failed to update customer.")
		}
		return
	}
	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer removes a customer.
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.customerService.DeleteCustomer(db, id); err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Customer not found.", err.Error()))
		} else {
			utils.LogError(err, "DeleteCustomer: Error from customerService")
			respondInternal(c, "Failed to delete customer.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully."})
}

// RedeemPoints deducts loyalty points against a customer's balance.
func (h *CustomerHandler) RedeemPoints(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.RedeemPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	customer, err := h.customerService.RedeemPoints(db, id, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCustomerNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Customer not found.", err.Error()))
		case errors.Is(err, services.ErrInsufficientPoints),
			errors.Is(err, services.ErrInvalidPointsAmount):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, err.Error(), ""))
		default:
			utils.LogError(err, "RedeemPoints: Error from customerService")
			respondInternal(c, "Failed to redeem points.")
		}
		return
	}
	c.JSON(http.StatusOK, customer)
}

// GetLoyaltyHistory lists a customer's loyalty ledger.
func (h *CustomerHandler) GetLoyaltyHistory(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	entries, err := h.customerService.GetLoyaltyHistory(db, id)
	if err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Customer not found.", err.Error()))
		} else {
			utils.LogError(err, "GetLoyaltyHistory: Error from customerService")
			respondInternal(c, "Failed to retrieve loyalty history.")
		}
		return
	}
	c.JSON(http.StatusOK, entries)
}
