package handlers

import (
	"errors"
	"net/http"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/services"
	"resto_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MenuHandler holds the menu service.
type MenuHandler struct {
	menuService services.MenuService
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(ms services.MenuService) *MenuHandler {
	return &MenuHandler{menuService: ms}
}

// CreateMenuItem adds an item to the restaurant's menu.
func (h *MenuHandler) CreateMenuItem(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	var req services.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	item, err := h.menuService.CreateMenuItem(db, req)
	if err != nil {
		utils.LogError(err, "CreateMenuItem: Error from menuService")
		if errors.Is(err, services.ErrInvalidPrice) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Price must be non-negative.", err.Error()))
		} else {
			respondInternal(c, "Failed to create menu item.")
		}
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GetMenuItems lists menu items, optionally filtered by query parameters.
func (h *MenuHandler) GetMenuItems(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	filters := models.MenuFilters{
		Name:       optionalQueryString(c, "search"),
		Category:   optionalQueryString(c, "category"),
		Vegetarian: optionalQueryBool(c, "vegetarian"),
		Popular:    optionalQueryBool(c, "popular"),
		Available:  optionalQueryBool(c, "available"),
	}

	items, err := h.menuService.GetMenuItems(db, filters)
	if err != nil {
		utils.LogError(err, "GetMenuItems: Error from menuService")
		respondInternal(c, "Failed to retrieve menu items.")
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetMenuItem retrieves one menu item.
func (h *MenuHandler) GetMenuItem(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	item, err := h.menuService.GetMenuItemByID(db, id)
	if err != nil {
		if errors.Is(err, services.ErrMenuItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Menu item not found.", err.Error()))
		} else {
			utils.LogError(err, "GetMenuItem: Error from menuService")
			respondInternal(c, "Failed to retrieve menu item.")
		}
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateMenuItem replaces a menu item's fields.
func (h *MenuHandler) UpdateMenuItem(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	item, err := h.menuService.UpdateMenuItem(db, id, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMenuItemNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Menu item not found.", err.Error()))
		case errors.Is(err, services.ErrInvalidPrice):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Price must be non-negative.", err.Error()))
		default:
			utils.LogError(err, "UpdateMenuItem: Error from menuService")
			respondInternal(c, "Failed to update menu item.")
		}
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteMenuItem removes a menu item.
func (h *MenuHandler) DeleteMenuItem(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.menuService.DeleteMenuItem(db, id); err != nil {
		if errors.Is(err, services.ErrMenuItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Menu item not found.", err.Error()))
		} else {
			utils.LogError(err, "DeleteMenuItem: Error from menuService")
			respondInternal(c, "Failed to delete menu item.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted successfully."})
}

// GetMenuCategories lists distinct menu categories.
func (h *MenuHandler) GetMenuCategories(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	categories, err := h.menuService.GetCategories(db)
	if err != nil {
		utils.LogError(err, "GetMenuCategories: Error from menuService")
		respondInternal(c, "Failed to retrieve menu categories.")
		return
	}
	c.JSON(http.StatusOK, categories)
}
