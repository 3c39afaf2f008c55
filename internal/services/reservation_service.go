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
	ErrReservationNotFound      = errors.New("reservation not found")
	ErrInvalidReservationStatus = errors.New("invalid reservation status")
	ErrReservationNeedsTable    = errors.New("seating a reservation requires an assigned table")
)

// CreateReservationRequest DTO
type CreateReservationRequest struct {
	CustomerName  string  `json:"customer_name" binding:"required"`
	CustomerPhone string  `json:"customer_phone" binding:"required"`
	Date          string  `json:"date" binding:"required"` // YYYY-MM-DD
	Time          string  `json:"time" binding:"required"` // HH:MM
	PartySize     int     `json:"party_size" binding:"required,gt=0"`
	TableID       *int64  `json:"table_id"`
	Source        *string `json:"source"`
	Priority      *string `json:"priority"`
	Notes         *string `json:"notes"`
}

// UpdateReservationRequest DTO
type UpdateReservationRequest struct {
	CustomerName  string  `json:"customer_name" binding:"required"`
	CustomerPhone string  `json:"customer_phone" binding:"required"`
	Date          string  `json:"date" binding:"required"`
	Time          string  `json:"time" binding:"required"`
	PartySize     int     `json:"party_size" binding:"required,gt=0"`
	TableID       *int64  `json:"table_id"`
	Status        string  `json:"status"`
	Source        *string `json:"source"`
	Priority      *string `json:"priority"`
	Notes         *string `json:"notes"`
}

// UpdateReservationStatusRequest DTO
type UpdateReservationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// --- ReservationService Interface ---
type ReservationService interface {
	CreateReservation(db *sql.DB, req CreateReservationRequest) (*models.Reservation, error)
	GetReservations(db *sql.DB, filters models.ReservationFilters) ([]models.Reservation, error)
	GetReservationByID(db *sql.DB, id int64) (*models.Reservation, error)
	UpdateReservation(db *sql.DB, id int64, req UpdateReservationRequest) (*models.Reservation, error)
	UpdateReservationStatus(db *sql.DB, id int64, req UpdateReservationStatusRequest) (*models.Reservation, error)
	DeleteReservation(db *sql.DB, id int64) error
}

type reservationService struct {
	reservationRepo repositories.ReservationRepository
	tableRepo       repositories.TableRepository
}

// NewReservationService creates a new instance of ReservationService.
func NewReservationService(reservationRepo repositories.ReservationRepository, tableRepo repositories.TableRepository) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		tableRepo:       tableRepo,
	}
}

func (s *reservationService) CreateReservation(db *sql.DB, req CreateReservationRequest) (*models.Reservation, error) {
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	reservation := models.Reservation{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Date:          req.Date,
		Time:          req.Time,
		PartySize:     req.PartySize,
		TableID:       req.TableID,
		Status:        string(models.ReservationStatusPending),
		Source:        req.Source,
		Priority:      req.Priority,
		Notes:         req.Notes,
	}
	if _, err := s.reservationRepo.Create(db, &reservation); err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}
	return &reservation, nil
}

func (s *reservationService) GetReservations(db *sql.DB, filters models.ReservationFilters) ([]models.Reservation, error) {
	if filters.Status != nil && *filters.Status != "" && !models.IsValidReservationStatus(*filters.Status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidReservationStatus, *filters.Status)
	}
	reservations, err := s.reservationRepo.GetAll(db, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservations: %w", err)
	}
	return reservations, nil
}

func (s *reservationService) GetReservationByID(db *sql.DB, id int64) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	return reservation, nil
}

func (s *reservationService) UpdateReservation(db *sql.DB, id int64, req UpdateReservationRequest) (*models.Reservation, error) {
	if req.Status != "" && !models.IsValidReservationStatus(req.Status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidReservationStatus, req.Status)
	}
	reservation, err := s.reservationRepo.GetByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to fetch reservation for update: %w", err)
	}

	reservation.CustomerName = req.CustomerName
	reservation.CustomerPhone = req.CustomerPhone
	reservation.Date = req.Date
	reservation.Time = req.Time
	reservation.PartySize = req.PartySize
	reservation.TableID = req.TableID
	if req.Status != "" {
		reservation.Status = req.Status
	}
	reservation.Source = req.Source
	reservation.Priority = req.Priority
	reservation.Notes = req.Notes

	if err := s.reservationRepo.Update(db, reservation); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to update reservation: %w", err)
	}
	return reservation, nil
}

// UpdateReservationStatus moves a reservation through its lifecycle. Seating
// a reservation also marks the assigned table occupied with the party's
// details, in the same transaction.
func (s *reservationService) UpdateReservationStatus(db *sql.DB, id int64, req UpdateReservationStatusRequest) (*models.Reservation, error) {
	if !models.IsValidReservationStatus(req.Status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidReservationStatus, req.Status)
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	reservation, err := s.reservationRepo.GetByID(tx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to fetch reservation for status update: %w", err)
	}

	if req.Status == string(models.ReservationStatusSeated) {
		if reservation.TableID == nil {
			return nil, ErrReservationNeedsTable
		}
		if err := s.occupyTable(tx, *reservation.TableID, reservation); err != nil {
			return nil, err
		}
	}

	if err := s.reservationRepo.UpdateStatus(tx, id, req.Status, time.Now()); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to update reservation status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit reservation status transaction: %w", err)
	}
	return s.GetReservationByID(db, id)
}

func (s *reservationService) occupyTable(tx repositories.SQLExecutor, tableID int64, reservation *models.Reservation) error {
	table, err := s.tableRepo.GetByID(tx, tableID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrTableNotFound
		}
		return fmt.Errorf("failed to fetch table for seating: %w", err)
	}

	now := time.Now()
	table.Status = string(models.TableStatusOccupied)
	table.CurrentCustomer = &reservation.CustomerName
	table.CustomerPhone = &reservation.CustomerPhone
	table.OccupiedSince = &now

	if err := s.tableRepo.Update(tx, table); err != nil {
		return fmt.Errorf("failed to occupy table %d: %w", tableID, err)
	}
	return nil
}

func (s *reservationService) DeleteReservation(db *sql.DB, id int64) error {
	if err := s.reservationRepo.Delete(db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrReservationNotFound
		}
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	return nil
}
