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
	ErrStaffNotFound         = errors.New("staff member not found")
	ErrShiftNotFound         = errors.New("shift not found")
	ErrSalaryPaymentNotFound = errors.New("salary payment not found")
	ErrShiftAlreadyClosed    = errors.New("shift is already clocked out")
)

// CreateStaffRequest DTO
type CreateStaffRequest struct {
	Name        string   `json:"name" binding:"required"`
	Role        string   `json:"role" binding:"required"`
	PIN         string   `json:"pin" binding:"required,len=4"`
	Permissions []string `json:"permissions"`
	Phone       *string  `json:"phone"`
	Email       *string  `json:"email"`
	SalaryType  *string  `json:"salary_type"`
	SalaryRate  *float64 `json:"salary_rate"`
}

// UpdateStaffRequest DTO
type UpdateStaffRequest struct {
	Name        string   `json:"name" binding:"required"`
	Role        string   `json:"role" binding:"required"`
	PIN         string   `json:"pin"`
	Permissions []string `json:"permissions"`
	Phone       *string  `json:"phone"`
	Email       *string  `json:"email"`
	SalaryType  *string  `json:"salary_type"`
	SalaryRate  *float64 `json:"salary_rate"`
	Active      bool     `json:"active"`
}

// ClockInRequest DTO
type ClockInRequest struct {
	StaffID     int64    `json:"staff_id" binding:"required"`
	OpeningCash *float64 `json:"opening_cash"`
}

// ClockOutRequest DTO
type ClockOutRequest struct {
	ClosingCash *float64 `json:"closing_cash"`
	Sales       *float64 `json:"sales"`
	Tips        *float64 `json:"tips"`
}

// SalaryPaymentRequest DTO
type SalaryPaymentRequest struct {
	StaffID     int64   `json:"staff_id" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	PaymentType string  `json:"payment_type" binding:"required"`
	PaymentDate string  `json:"payment_date" binding:"required"` // YYYY-MM-DD
	Notes       *string `json:"notes"`
}

// --- StaffService Interface ---
type StaffService interface {
	CreateStaff(db *sql.DB, req CreateStaffRequest) (*models.StaffMember, error)
	GetStaff(db *sql.DB) ([]models.StaffMember, error)
	GetStaffByID(db *sql.DB, id int64) (*models.StaffMember, error)
	UpdateStaff(db *sql.DB, id int64, req UpdateStaffRequest) (*models.StaffMember, error)
	DeleteStaff(db *sql.DB, id int64) error
	GetRoles(db *sql.DB) ([]string, error)

	ClockIn(db *sql.DB, req ClockInRequest) (*models.Shift, error)
	ClockOut(db *sql.DB, shiftID int64, req ClockOutRequest) (*models.Shift, error)
	GetShifts(db *sql.DB, staffID *int64) ([]models.Shift, error)
	DeleteShift(db *sql.DB, id int64) error

	RecordSalaryPayment(db *sql.DB, req SalaryPaymentRequest) (*models.SalaryPayment, error)
	GetSalaryPayments(db *sql.DB, staffID *int64) ([]models.SalaryPayment, error)
	DeleteSalaryPayment(db *sql.DB, id int64) error
}

type staffService struct {
	staffRepo repositories.StaffRepository
}

// NewStaffService creates a new instance of StaffService.
func NewStaffService(staffRepo repositories.StaffRepository) StaffService {
	return &staffService{staffRepo: staffRepo}
}

func (s *staffService) CreateStaff(db *sql.DB, req CreateStaffRequest) (*models.StaffMember, error) {
	staff := models.StaffMember{
		Name:        req.Name,
		Role:        req.Role,
		PIN:         req.PIN,
		Permissions: req.Permissions,
		Phone:       req.Phone,
		Email:       req.Email,
		SalaryType:  req.SalaryType,
		SalaryRate:  req.SalaryRate,
		Active:      true,
	}
	if _, err := s.staffRepo.CreateStaff(db, &staff); err != nil {
		return nil, fmt.Errorf("failed to create staff member: %w", err)
	}
	return &staff, nil
}

func (s *staffService) GetStaff(db *sql.DB) ([]models.StaffMember, error) {
	staff, err := s.staffRepo.GetAllStaff(db)
	if err != nil {
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	return staff, nil
}

func (s *staffService) GetStaffByID(db *sql.DB, id int64) (*models.StaffMember, error) {
	staff, err := s.staffRepo.GetStaffByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to get staff member: %w", err)
	}
	return staff, nil
}

func (s *staffService) UpdateStaff(db *sql.DB, id int64, req UpdateStaffRequest) (*models.StaffMember, error) {
	staff, err := s.staffRepo.GetStaffByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to fetch staff member for update: %w", err)
	}

	staff.Name = req.Name
	staff.Role = req.Role
	if req.PIN != "" {
		staff.PIN = req.PIN
	}
	staff.Permissions = req.Permissions
	staff.Phone = req.Phone
	staff.Email = req.Email
	staff.SalaryType = req.SalaryType
	staff.SalaryRate = req.SalaryRate
	staff.Active = req.Active

	if err := s.staffRepo.UpdateStaff(db, staff); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to update staff member: %w", err)
	}
	return staff, nil
}

func (s *staffService) DeleteStaff(db *sql.DB, id int64) error {
	if err := s.staffRepo.DeleteStaff(db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrStaffNotFound
		}
		return fmt.Errorf("failed to delete staff member: %w", err)
	}
	return nil
}

func (s *staffService) GetRoles(db *sql.DB) ([]string, error) {
	roles, err := s.staffRepo.GetRoles(db)
	if err != nil {
		return nil, fmt.Errorf("failed to get staff roles: %w", err)
	}
	return roles, nil
}

func (s *staffService) ClockIn(db *sql.DB, req ClockInRequest) (*models.Shift, error) {
	if _, err := s.GetStaffByID(db, req.StaffID); err != nil {
		return nil, err
	}
	shift := models.Shift{
		StaffID:     req.StaffID,
		ClockIn:     time.Now(),
		OpeningCash: req.OpeningCash,
	}
	if _, err := s.staffRepo.CreateShift(db, &shift); err != nil {
		return nil, fmt.Errorf("failed to clock in staff member %d: %w", req.StaffID, err)
	}
	return &shift, nil
}

func (s *staffService) ClockOut(db *sql.DB, shiftID int64, req ClockOutRequest) (*models.Shift, error) {
	shift, err := s.staffRepo.GetShiftByID(db, shiftID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, fmt.Errorf("failed to fetch shift for clock out: %w", err)
	}
	if shift.ClockOut != nil {
		return nil, ErrShiftAlreadyClosed
	}

	now := time.Now()
	shift.ClockOut = &now
	shift.ClosingCash = req.ClosingCash
	shift.Sales = req.Sales
	shift.Tips = req.Tips

	if err := s.staffRepo.UpdateShift(db, shift); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, fmt.Errorf("failed to clock out shift %d: %w", shiftID, err)
	}
	return shift, nil
}

func (s *staffService) GetShifts(db *sql.DB, staffID *int64) ([]models.Shift, error) {
	shifts, err := s.staffRepo.GetShifts(db, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shifts: %w", err)
	}
	return shifts, nil
}

func (s *staffService) DeleteShift(db *sql.DB, id int64) error {
	if err := s.staffRepo.DeleteShift(db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrShiftNotFound
		}
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	return nil
}

func (s *staffService) RecordSalaryPayment(db *sql.DB, req SalaryPaymentRequest) (*models.SalaryPayment, error) {
	if _, err := s.GetStaffByID(db, req.StaffID); err != nil {
		return nil, err
	}
	payment := models.SalaryPayment{
		StaffID:     req.StaffID,
		Amount:      req.Amount,
		PaymentType: req.PaymentType,
		PaymentDate: req.PaymentDate,
		Notes:       req.Notes,
	}
	if _, err := s.staffRepo.CreateSalaryPayment(db, &payment); err != nil {
		return nil, fmt.Errorf("failed to record salary payment: %w", err)
	}
	return &payment, nil
}

func (s *staffService) GetSalaryPayments(db *sql.DB, staffID *int64) ([]models.SalaryPayment, error) {
	payments, err := s.staffRepo.GetSalaryPayments(db, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to get salary payments: %w", err)
	}
	return payments, nil
}

func (s *staffService) DeleteSalaryPayment(db *sql.DB, id int64) error {
	if err := s.staffRepo.DeleteSalaryPayment(db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSalaryPaymentNotFound
		}
		return fmt.Errorf("failed to delete salary payment: %w", err)
	}
	return nil
}
