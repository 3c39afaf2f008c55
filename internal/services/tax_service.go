package services

import (
	"database/sql"
	"errors"
	"fmt"
	"math"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/repositories"
)

var (
	ErrTaxRuleNotFound = errors.New("tax rule not found")
	ErrInvalidTaxRate  = errors.New("tax rate must be between 0 and 100")
)

// CreateTaxRuleRequest DTO
type CreateTaxRuleRequest struct {
	Name       string   `json:"name" binding:"required"`
	Rate       float64  `json:"rate" binding:"required"`
	Categories []string `json:"categories"`
	IsActive   *bool    `json:"is_active"`
}

// UpdateTaxRuleRequest DTO
type UpdateTaxRuleRequest struct {
	Name       string   `json:"name" binding:"required"`
	Rate       float64  `json:"rate" binding:"required"`
	Categories []string `json:"categories"`
	IsActive   bool     `json:"is_active"`
}

// --- TaxService Interface ---
type TaxService interface {
	CreateTaxRule(db *sql.DB, req CreateTaxRuleRequest) (*models.TaxRule, error)
	GetTaxRules(db *sql.DB) ([]models.TaxRule, error)
	GetTaxRuleByID(db *sql.DB, id int64) (*models.TaxRule, error)
	UpdateTaxRule(db *sql.DB, id int64, req UpdateTaxRuleRequest) (*models.TaxRule, error)
	DeleteTaxRule(db *sql.DB, id int64) error
}

type taxService struct {
	taxRepo repositories.TaxRepository
}

// NewTaxService creates a new instance of TaxService.
func NewTaxService(taxRepo repositories.TaxRepository) TaxService {
	return &taxService{taxRepo: taxRepo}
}

func (s *taxService) CreateTaxRule(db *sql.DB, req CreateTaxRuleRequest) (*models.TaxRule, error) {
	if req.Rate < 0 || req.Rate > 100 {
		return nil, ErrInvalidTaxRate
	}
	rule := models.TaxRule{
		Name:       req.Name,
		Rate:       req.Rate,
		Categories: req.Categories,
		IsActive:   true,
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}
	if _, err := s.taxRepo.Create(db, &rule); err != nil {
		return nil, fmt.Errorf("failed to create tax rule: %w", err)
	}
	return &rule, nil
}

func (s *taxService) GetTaxRules(db *sql.DB) ([]models.TaxRule, error) {
	rules, err := s.taxRepo.GetAll(db)
	if err != nil {
		return nil, fmt.Errorf("failed to get tax rules: %w", err)
	}
	return rules, nil
}

func (s *taxService) GetTaxRuleByID(db *sql.DB, id int64) (*models.TaxRule, error) {
	rule, err := s.taxRepo.GetByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTaxRuleNotFound
		}
		return nil, fmt.Errorf("failed to get tax rule: %w", err)
	}
	return rule, nil
}

func (s *taxService) UpdateTaxRule(db *sql.DB, id int64, req UpdateTaxRuleRequest) (*models.TaxRule, error) {
	if req.Rate < 0 || req.Rate > 100 {
		return nil, ErrInvalidTaxRate
	}
	rule, err := s.taxRepo.GetByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTaxRuleNotFound
		}
		return nil, fmt.Errorf("failed to fetch tax rule for update: %w", err)
	}

	rule.Name = req.Name
	rule.Rate = req.Rate
	rule.Categories = req.Categories
	rule.IsActive = req.IsActive

	if err := s.taxRepo.Update(db, rule); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTaxRuleNotFound
		}
		return nil, fmt.Errorf("failed to update tax rule: %w", err)
	}
	return rule, nil
}

func (s *taxService) DeleteTaxRule(db *sql.DB, id int64) error {
	if err := s.taxRepo.Delete(db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrTaxRuleNotFound
		}
		return fmt.Errorf("failed to delete tax rule: %w", err)
	}
	return nil
}

// CalculateTaxes applies every active rule to the portions of the subtotal it
// covers. A rule with the "all" wildcard taxes the full subtotal; any other
// rule taxes only the sum of the categories it names. Each rule contributes
// one line, rounded to cents.
func CalculateTaxes(rules []models.TaxRule, subtotalByCategory map[string]float64) models.TaxBreakdown {
	breakdown := models.TaxBreakdown{Taxes: []models.TaxLine{}}

	for _, rule := range rules {
		if !rule.IsActive {
			continue
		}
		var base float64
		for category, amount := range subtotalByCategory {
			if rule.AppliesTo(category) {
				base += amount
			}
		}
		if base <= 0 {
			continue
		}
		amount := roundCurrency(base * rule.Rate / 100)
		breakdown.Taxes = append(breakdown.Taxes, models.TaxLine{
			RuleID: rule.ID,
			Name:   rule.Name,
			Rate:   rule.Rate,
			Amount: amount,
		})
		breakdown.TotalTax = roundCurrency(breakdown.TotalTax + amount)
	}
	return breakdown
}

// roundCurrency rounds a monetary amount to two decimal places.
func roundCurrency(amount float64) float64 {
	return math.Round(amount*100) / 100
}
