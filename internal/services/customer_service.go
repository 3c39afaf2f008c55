package services

import (
	"database/sql"
	"errors"
	"fmt"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/repositories"
)

var (
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrPhoneExists         = errors.New("phone number already registered")
	ErrInsufficientPoints  = errors.New("customer does not have enough loyalty points")
	ErrInvalidPointsAmount = errors.New("points amount must be positive")
)

// CreateCustomerRequest DTO
type CreateCustomerRequest struct {
	Name  string  `json:"name" binding:"required"`
	Phone string  `json:"phone" binding:"required"`
	Email *string `json:"email"`
}

// UpdateCustomerRequest DTO
type UpdateCustomerRequest struct {
	Name  string  `json:"name" binding:"required"`
	Phone string  `json:"phone" binding:"required"`
	Email *string `json:"email"`
}

// RedeemPointsRequest DTO
type RedeemPointsRequest struct {
	Points      int     `json:"points" binding:"required"`
	Description *string `json:"description"`
}

// --- CustomerService Interface ---
type CustomerService interface {
	CreateCustomer(db *sql.DB, req CreateCustomerRequest) (*models.Customer, error)
	GetCustomers(db *sql.DB, search string) ([]models.Customer, error)
	GetCustomerByID(db *sql.DB, id int64) (*models.Customer, error)
	UpdateCustomer(db *sql.DB, id int64, req UpdateCustomerRequest) (*models.Customer, error)
	DeleteCustomer(db *sql.DB, id int64) error
	RedeemPoints(db *sql.DB, customerID int64, req RedeemPointsRequest) (*models.Customer, error)
	GetLoyaltyHistory(db *sql.DB, customerID int64) ([]models.LoyaltyEntry, error)
}

type customerService struct {
	customerRepo repositories.CustomerRepository
}

// NewCustomerService creates a new instance of CustomerService.
func NewCustomerService(customerRepo repositories.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) CreateCustomer(db *sql.DB, req CreateCustomerRequest) (*models.Customer, error) {
	customer := models.Customer{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	}
	if _, err := s.customerRepo.Create(db, &customer); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrPhoneExists
		}
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return &customer, nil
}

func (s *customerService) GetCustomers(db *sql.DB, search string) ([]models.Customer, error) {
	var customers []models.Customer
	var err error
	if search != "" {
		customers, err = s.customerRepo.Search(db, search)
	} else {
		customers, err = s.customerRepo.GetAll(db)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customers: %w", err)
	}
	return customers, nil
}

func (s *customerService) GetCustomerByID(db *sql.DB, id int64) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) UpdateCustomer(db *sql.DB, id int64, req UpdateCustomerRequest) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to fetch customer for update: %w", err)
	}

	customer.Name = req.Name
	customer.Phone = req.Phone
	customer.Email = req.Email

	if err := s.customerRepo.Update(db, customer); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrPhoneExists
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) DeleteCustomer(db *sql.DB, id int64) error {
	if err := s.customerRepo.Delete(db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCustomerNotFound
		}
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

// RedeemPoints deducts loyalty points and records a redemption ledger entry
// in one transaction. The balance may never go negative.
func (s *customerService) RedeemPoints(db *sql.DB, customerID int64, req RedeemPointsRequest) (*models.Customer, error) {
	if req.Points <= 0 {
		return nil, ErrInvalidPointsAmount
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	customer, err := s.customerRepo.GetByID(tx, customerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to fetch customer for redemption: %w", err)
	}
	if customer.LoyaltyPoints < req.Points {
		return nil, ErrInsufficientPoints
	}

	if err := s.customerRepo.AdjustLoyaltyPoints(tx, customerID, -req.Points); err != nil {
		return nil, fmt.Errorf("failed to deduct loyalty points: %w", err)
	}

	entry := models.LoyaltyEntry{
		CustomerID:  customerID,
		Points:      -req.Points,
		EntryType:   string(models.LoyaltyEntryRedeemed),
		Description: req.Description,
	}
	if _, err := s.customerRepo.CreateLoyaltyEntry(tx, &entry); err != nil {
		return nil, fmt.Errorf("failed to record redemption entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit redemption transaction: %w", err)
	}
	return s.GetCustomerByID(db, customerID)
}

func (s *customerService) GetLoyaltyHistory(db *sql.DB, customerID int64) ([]models.LoyaltyEntry, error) {
	if _, err := s.GetCustomerByID(db, customerID); err != nil {
		return nil, err
	}
	entries, err := s.customerRepo.GetLoyaltyEntriesByCustomerID(db, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get loyalty history: %w", err)
	}
	return entries, nil
}
