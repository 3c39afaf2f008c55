package handlers

import (
	"errors"
	"net/http"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/services"
	"resto_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// InventoryHandler holds the inventory service.
type InventoryHandler struct {
	inventoryService services.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(is services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: is}
}

// CreateItem adds a stock-tracked item.
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	var req services.CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	item, err := h.inventoryService.CreateItem(db, req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStockLevel) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, err.Error(), ""))
		} else {
			utils.LogError(err, "CreateItem: Error from inventoryService")
			respondInternal(c, "Failed to create inventory item.")
		}
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GetItems lists inventory items with optional category and low-stock filters.
func (h *InventoryHandler) GetItems(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	filters := models.InventoryFilters{
		Category: optionalQueryString(c, "category"),
		LowStock: optionalQueryBool(c, "low_stock"),
	}

	items, err := h.inventoryService.GetItems(db, filters)
	if err != nil {
		utils.LogError(err, "GetItems: Error from inventoryService")
		respondInternal(c, "Failed to retrieve inventory items.")
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetItem retrieves one inventory item.
func (h *InventoryHandler) GetItem(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	item, err := h.inventoryService.GetItemByID(db, id)
	if err != nil {
		if errors.Is(err, services.ErrInventoryItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Inventory item not found.", err.Error()))
		} else {
			utils.LogError(err, "GetItem: Error from inventoryService")
			respondInternal(c, "Failed to retrieve inventory item.")
		}
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateItem replaces an inventory item's fields.
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	item, err := h.inventoryService.UpdateItem(db, id, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInventoryItemNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Inventory item not found.", err.Error()))
		case errors.Is(err, services.ErrInvalidStockLevel):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, err.Error(), ""))
		default:
			utils.LogError(err, "UpdateItem: Error from inventoryService")
			respondInternal(c, "Failed to update inventory item.")
		}
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteItem removes an inventory item.
func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.inventoryService.DeleteItem(db, id); err != nil {
		if errors.Is(err, services.ErrInventoryItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Inventory item not found.", err.Error()))
		} else {
			utils.LogError(err, "DeleteItem: Error from inventoryService")
			respondInternal(c, "Failed to delete inventory item.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inventory item deleted successfully."})
}

// CreateSupplier registers a supplier.
func (h *InventoryHandler) CreateSupplier(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	var req services.SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	supplier, err := h.inventoryService.CreateSupplier(db, req)
	if err != nil {
		utils.LogError(err, "CreateSupplier: Error from inventoryService")
		respondInternal(c, "Failed to create supplier.")
		return
	}
	c.JSON(http.StatusCreated, supplier)
}

// GetSuppliers lists suppliers.
func (h *InventoryHandler) GetSuppliers(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	suppliers, err := h.inventoryService.GetSuppliers(db)
	if err != nil {
		utils.LogError(err, "GetSuppliers: Error from inventoryService")
		respondInternal(c, "Failed to retrieve suppliers.")
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

// GetSupplier retrieves one supplier.
func (h *InventoryHandler) GetSupplier(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	supplier, err := h.inventoryService.GetSupplierByID(db, id)
	if err != nil {
		if errors.Is(err, services.ErrSupplierNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Supplier not found.", err.Error()))
		} else {
			utils.LogError(err, "GetSupplier: Error from inventoryService")
			respondInternal(c, "Failed to retrieve supplier.")
		}
		return
	}
	c.JSON(http.StatusOK, supplier)
}

// UpdateSupplier replaces a supplier's fields.
func (h *InventoryHandler) UpdateSupplier(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	supplier, err := h.inventoryService.UpdateSupplier(db, id, req)
	if err != nil {
		if errors.Is(err, services.ErrSupplierNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Supplier not found.", err.Error()))
		} else {
			utils.LogError(err, "UpdateSupplier: Error from inventoryService")
			respondInternal(c, "Failed to update supplier.")
		}
		return
	}
	c.JSON(http.StatusOK, supplier)
}

// DeleteSupplier removes a supplier.
func (h *InventoryHandler) DeleteSupplier(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.inventoryService.DeleteSupplier(db, id); err != nil {
		if errors.Is(err, services.ErrSupplierNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Supplier not found.", err.Error()))
		} else {
			utils.LogError(err, "DeleteSupplier: Error from inventoryService")
			respondInternal(c, "Failed to delete supplier.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Supplier deleted successfully."})
}
