package handlers

import (
	"errors"
	"net/http"

	"resto_pos_backend/internal/services"
	"resto_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// TableHandler holds the table service.
type TableHandler struct {
	tableService services.TableService
}

// NewTableHandler creates a new TableHandler.
func NewTableHandler(ts services.TableService) *TableHandler {
	return &TableHandler{tableService: ts}
}

// CreateTable registers a new floor table.
func (h *TableHandler) CreateTable(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	var req services.CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	table, err := h.tableService.CreateTable(db, req)
	if err != nil {
		utils.LogError(err, "CreateTable: Error from tableService")
		respondInternal(c, "Failed to create table.")
		return
	}
	c.JSON(http.StatusCreated, table)
}

// GetTables lists tables, optionally filtered by status.
func (h *TableHandler) GetTables(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	tables, err := h.tableService.GetTables(db, optionalQueryString(c, "status"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidTableStatus) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, err.Error(), ""))
		} else {
			utils.LogError(err, "GetTables: Error from tableService")
			respondInternal(c, "Failed to retrieve tables.")
		}
		return
	}
	c.JSON(http.StatusOK, tables)
}

// GetTable retrieves one table.
func (h *TableHandler) GetTable(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	table, err := h.tableService.GetTableByID(db, id)
	if err != nil {
		if errors.Is(err, services.ErrTableNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Table not found.", err.Error()))
		} else {
			utils.LogError(err, "GetTable: Error from tableService")
			respondInternal(c, "Failed to retrieve table.")
		}
		return
	}
	c.JSON(http.StatusOK, table)
}

// UpdateTableStatus changes a table's occupancy state.
func (h *TableHandler) UpdateTableStatus(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateTableStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	table, err := h.tableService.UpdateTableStatus(db, id, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTableNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Table not found.", err.Error()))
		case errors.Is(err, services.ErrInvalidTableStatus):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, err.Error(), ""))
		default:
			utils.LogError(err, "UpdateTableStatus: Error from tableService")
			respondInternal(c, "Failed to update table.")
		}
		return
	}
	c.JSON(http.StatusOK, table)
}

// DeleteTable removes a table.
func (h *TableHandler) DeleteTable(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.tableService.DeleteTable(db, id); err != nil {
		if errors.Is(err, services.ErrTableNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Table not found.", err.Error()))
		} else {
			utils.LogError(err, "DeleteTable: Error from tableService")
			respondInternal(c, "Failed to delete table.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Table deleted successfully."})
}

// GetTableStats summarizes the floor occupancy.
func (h *TableHandler) GetTableStats(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	stats, err := h.tableService.GetTableStats(db)
	if err != nil {
		utils.LogError(err, "GetTableStats: Error from tableService")
		respondInternal(c, "Failed to retrieve table stats.")
		return
	}
	c.JSON(http.StatusOK, stats)
}
