package handlers

import (
	"errors"
	"net/http"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/services"
	"resto_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// OrderHandler holds the order service.
type OrderHandler struct {
	orderService services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(os services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: os}
}

// CreateOrder prices and stores a new order.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	order, err := h.orderService.CreateOrder(db, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyOrder),
			errors.Is(err, services.ErrInvalidOrderSource),
			errors.Is(err, services.ErrInvalidOrderStatus),
			errors.Is(err, services.ErrMenuItemUnavailable):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, err.Error(), ""))
		case errors.Is(err, services.ErrMenuItemNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), ""))
		default:
			utils.LogError(err, "CreateOrder: Error from orderService")
			respondInternal(c, "Failed to create order.")
		}
		return
	}
	c.JSON(http.StatusCreated, order)
}

// GetOrders lists orders with optional filters and pagination.
func (h *OrderHandler) GetOrders(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	filters := models.OrderFilters{
		CustomerID: optionalQueryInt64(c, "customer_id"),
		TableID:    optionalQueryInt64(c, "table_id"),
		Status:     optionalQueryString(c, "status"),
		Source:     optionalQueryString(c, "source"),
		DateFrom:   optionalQueryString(c, "date_from"),
		DateTo:     optionalQueryString(c, "date_to"),
		Page:       queryInt(c, "page", 1),
		PageSize:   queryInt(c, "page_size", 50),
	}

	orders, totalCount, err := h.orderService.GetOrders(db, filters)
	if err != nil {
		utils.LogError(err, "GetOrders: Error from orderService")
		respondInternal(c, "Failed to retrieve orders.")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"orders":      orders,
		"total_count": totalCount,
		"page":        filters.Page,
		"page_size":   filters.PageSize,
	})
}

// GetOrder retrieves one order with its items.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrderByID(db, id)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found.", err.Error()))
		} else {
			utils.LogError(err, "GetOrder: Error from orderService")
			respondInternal(c, "Failed to retrieve order.")
		}
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrder patches an order's metadata (customer, table, source, payment,
// notes). Items and amounts are fixed at creation.
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	order, err := h.orderService.UpdateOrder(db, id, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found.", err.Error()))
		case errors.Is(err, services.ErrInvalidOrderSource):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, err.Error(), ""))
		default:
			utils.LogError(err, "UpdateOrder: Error from orderService")
			respondInternal(c, "Failed to update order.")
		}
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus moves an order through its lifecycle.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	order, err := h.orderService.UpdateOrderStatus(db, id, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found.", err.Error()))
		case errors.Is(err, services.ErrInvalidOrderStatus):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, err.Error(), ""))
		default:
			utils.LogError(err, "UpdateOrderStatus: Error from orderService")
			respondInternal(c, "Failed to update order status.")
		}
		return
	}
	c.JSON(http.StatusOK, order)
}

// DeleteOrder removes an order and its items.
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(db, id); err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found.", err.Error()))
		} else {
			utils.LogError(err, "DeleteOrder: Error from orderService")
			respondInternal(c, "Failed to delete order.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully."})
}
