package handlers

import (
	"net/http"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/services"
	"resto_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler holds the report service.
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

func reportRange(c *gin.Context) models.ReportRange {
	return models.ReportRange{
		StartDate: optionalQueryString(c, "start_date"),
		EndDate:   optionalQueryString(c, "end_date"),
	}
}

// GetDashboard returns the summary metrics for the dashboard screen.
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	metrics, err := h.reportService.GetDashboardMetrics(db)
	if err != nil {
		utils.LogError(err, "GetDashboard: Error from reportService")
		respondInternal(c, "Failed to retrieve dashboard metrics.")
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// GetSalesByCategory returns revenue grouped by menu category.
func (h *ReportHandler) GetSalesByCategory(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	sales, err := h.reportService.GetSalesByCategory(db, reportRange(c))
	if err != nil {
		utils.LogError(err, "GetSalesByCategory: Error from reportService")
		respondInternal(c, "Failed to retrieve sales by category.")
		return
	}
	c.JSON(http.StatusOK, sales)
}

// GetTopItems returns the best-selling menu items.
func (h *ReportHandler) GetTopItems(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	items, err := h.reportService.GetTopItems(db, reportRange(c), queryInt(c, "limit", 0))
	if err != nil {
		utils.LogError(err, "GetTopItems: Error from reportService")
		respondInternal(c, "Failed to retrieve top items.")
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetOrderStats returns order counts and revenue over an optional date range.
func (h *ReportHandler) GetOrderStats(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	stats, err := h.reportService.GetOrderStats(db, reportRange(c))
	if err != nil {
		utils.LogError(err, "GetOrderStats: Error from reportService")
		respondInternal(c, "Failed to retrieve order stats.")
		return
	}
	c.JSON(http.StatusOK, stats)
}
