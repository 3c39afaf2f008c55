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
	ErrTableNotFound      = errors.New("table not found")
	ErrInvalidTableStatus = errors.New("invalid table status")
)

// CreateTableRequest DTO
type CreateTableRequest struct {
	Number   int `json:"number" binding:"required"`
	Capacity int `json:"capacity" binding:"required,gt=0"`
}

// UpdateTableStatusRequest DTO. Customer details accompany an occupation;
// freeing a table clears them.
type UpdateTableStatusRequest struct {
	Status          string  `json:"status" binding:"required"`
	CurrentCustomer *string `json:"current_customer"`
	CustomerPhone   *string `json:"customer_phone"`
	Waiter          *string `json:"waiter"`
}

// --- TableService Interface ---
type TableService interface {
	CreateTable(db *sql.DB, req CreateTableRequest) (*models.Table, error)
	GetTables(db *sql.DB, status *string) ([]models.Table, error)
	GetTableByID(db *sql.DB, id int64) (*models.Table, error)
	UpdateTableStatus(db *sql.DB, id int64, req UpdateTableStatusRequest) (*models.Table, error)
	DeleteTable(db *sql.DB, id int64) error
	GetTableStats(db *sql.DB) (*models.TableStats, error)
}

type tableService struct {
	tableRepo repositories.TableRepository
}

// NewTableService creates a new instance of TableService.
func NewTableService(tableRepo repositories.TableRepository) TableService {
	return &tableService{tableRepo: tableRepo}
}

func (s *tableService) CreateTable(db *sql.DB, req CreateTableRequest) (*models.Table, error) {
	table := models.Table{
		Number:   req.Number,
		Capacity: req.Capacity,
		Status:   string(models.TableStatusFree),
	}
	if _, err := s.tableRepo.Create(db, &table); err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	return &table, nil
}

func (s *tableService) GetTables(db *sql.DB, status *string) ([]models.Table, error) {
	if status != nil && *status != "" {
		if !models.IsValidTableStatus(*status) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidTableStatus, *status)
		}
		tables, err := s.tableRepo.GetByStatus(db, *status)
		if err != nil {
			return nil, fmt.Errorf("failed to get tables by status: %w", err)
		}
		return tables, nil
	}
	tables, err := s.tableRepo.GetAll(db)
	if err != nil {
		return nil, fmt.Errorf("failed to get tables: %w", err)
	}
	return tables, nil
}

func (s *tableService) GetTableByID(db *sql.DB, id int64) (*models.Table, error) {
	table, err := s.tableRepo.GetByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("failed to get table: %w", err)
	}
	return table, nil
}

// UpdateTableStatus applies the status transition invariants: an occupied
// table carries its customer and occupation time; a freed table carries
// neither.
func (s *tableService) UpdateTableStatus(db *sql.DB, id int64, req UpdateTableStatusRequest) (*models.Table, error) {
	if !models.IsValidTableStatus(req.Status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTableStatus, req.Status)
	}

	table, err := s.tableRepo.GetByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("failed to fetch table for status update: %w", err)
	}

	table.Status = req.Status
	switch models.TableStatus(req.Status) {
	case models.TableStatusOccupied:
		table.CurrentCustomer = req.CurrentCustomer
		table.CustomerPhone = req.CustomerPhone
		table.Waiter = req.Waiter
		if table.OccupiedSince == nil {
			now := time.Now()
			table.OccupiedSince = &now
		}
	case models.TableStatusReserved:
		table.CurrentCustomer = req.CurrentCustomer
		table.CustomerPhone = req.CustomerPhone
		table.Waiter = req.Waiter
		table.OccupiedSince = nil
	case models.TableStatusFree:
		table.CurrentCustomer = nil
		table.CustomerPhone = nil
		table.Waiter = nil
		table.OccupiedSince = nil
	}

	if err := s.tableRepo.Update(db, table); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("failed to update table: %w", err)
	}
	return table, nil
}

func (s *tableService) DeleteTable(db *sql.DB, id int64) error {
	if err := s.tableRepo.Delete(db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrTableNotFound
		}
		return fmt.Errorf("failed to delete table: %w", err)
	}
	return nil
}

func (s *tableService) GetTableStats(db *sql.DB) (*models.TableStats, error) {
	stats, err := s.tableRepo.GetStats(db)
	if err != nil {
		return nil, fmt.Errorf("failed to get table stats: %w", err)
	}
	return stats, nil
}
