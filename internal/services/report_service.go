package services

import (
	"database/sql"
	"fmt"
	"time"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/repositories"
)

// defaultTopItemsLimit caps the top-selling-items report when the client does
// not ask for a specific size.
const defaultTopItemsLimit = 10

// --- ReportService Interface ---
type ReportService interface {
	GetDashboardMetrics(db *sql.DB) (*models.DashboardMetrics, error)
	GetSalesByCategory(db *sql.DB, dateRange models.ReportRange) ([]models.CategorySales, error)
	GetTopItems(db *sql.DB, dateRange models.ReportRange, limit int) ([]models.TopItem, error)
	GetOrderStats(db *sql.DB, dateRange models.ReportRange) (*models.OrderStats, error)
}

type reportService struct {
	reportRepo repositories.ReportRepository
}

// NewReportService creates a new instance of ReportService.
func NewReportService(reportRepo repositories.ReportRepository) ReportService {
	return &reportService{reportRepo: reportRepo}
}

func (s *reportService) GetDashboardMetrics(db *sql.DB) (*models.DashboardMetrics, error) {
	metrics, err := s.reportRepo.GetDashboardMetrics(db, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard metrics: %w", err)
	}
	return metrics, nil
}

func (s *reportService) GetSalesByCategory(db *sql.DB, dateRange models.ReportRange) ([]models.CategorySales, error) {
	sales, err := s.reportRepo.GetSalesByCategory(db, dateRange)
	if err != nil {
		return nil, fmt.Errorf("failed to get sales by category: %w", err)
	}
	return sales, nil
}

func (s *reportService) GetTopItems(db *sql.DB, dateRange models.ReportRange, limit int) ([]models.TopItem, error) {
	if limit <= 0 {
		limit = defaultTopItemsLimit
	}
	items, err := s.reportRepo.GetTopItems(db, dateRange, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top items: %w", err)
	}
	return items, nil
}

func (s *reportService) GetOrderStats(db *sql.DB, dateRange models.ReportRange) (*models.OrderStats, error) {
	stats, err := s.reportRepo.GetOrderStats(db, dateRange)
	if err != nil {
		return nil, fmt.Errorf("failed to get order stats: %w", err)
	}
	return stats, nil
}
