package services

import (
	"database/sql"
	"errors"
	"fmt"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/repositories"
)

var (
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrInvalidPrice     = errors.New("price must be non-negative")
)

// CreateMenuItemRequest DTO
type CreateMenuItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Available   *bool   `json:"available"`
	Vegetarian  bool    `json:"vegetarian"`
	SpiceLevel  int     `json:"spice_level"`
	PrepMinutes int     `json:"prep_minutes"`
	Popular     bool    `json:"popular"`
	TaxCategory string  `json:"tax_category"`
}

// UpdateMenuItemRequest DTO
type UpdateMenuItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Available   bool    `json:"available"`
	Vegetarian  bool    `json:"vegetarian"`
	SpiceLevel  int     `json:"spice_level"`
	PrepMinutes int     `json:"prep_minutes"`
	Popular     bool    `json:"popular"`
	TaxCategory string  `json:"tax_category"`
}

// --- MenuService Interface ---
type MenuService interface {
	CreateMenuItem(db *sql.DB, req CreateMenuItemRequest) (*models.MenuItem, error)
	GetMenuItems(db *sql.DB, filters models.MenuFilters) ([]models.MenuItem, error)
	GetMenuItemByID(db *sql.DB, id int64) (*models.MenuItem, error)
	UpdateMenuItem(db *sql.DB, id int64, req UpdateMenuItemRequest) (*models.MenuItem, error)
	DeleteMenuItem(db *sql.DB, id int64) error
	GetCategories(db *sql.DB) ([]string, error)
}

type menuService struct {
	menuRepo repositories.MenuRepository
}

// NewMenuService creates a new instance of MenuService.
func NewMenuService(menuRepo repositories.MenuRepository) MenuService {
	return &menuService{menuRepo: menuRepo}
}

func (s *menuService) CreateMenuItem(db *sql.DB, req CreateMenuItemRequest) (*models.MenuItem, error) {
	if req.Price < 0 {
		return nil, ErrInvalidPrice
	}
	taxCategory := req.TaxCategory
	if taxCategory == "" {
		taxCategory = models.TaxCategoryAll
	}
	item := models.MenuItem{
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Available:   true,
		Vegetarian:  req.Vegetarian,
		SpiceLevel:  req.SpiceLevel,
		PrepMinutes: req.PrepMinutes,
		Popular:     req.Popular,
		TaxCategory: taxCategory,
	}
	if req.Available != nil {
		item.Available = *req.Available
	}
	if _, err := s.menuRepo.Create(db, &item); err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}
	return &item, nil
}

func (s *menuService) GetMenuItems(db *sql.DB, filters models.MenuFilters) ([]models.MenuItem, error) {
	items, err := s.menuRepo.Search(db, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get menu items: %w", err)
	}
	return items, nil
}

func (s *menuService) GetMenuItemByID(db *sql.DB, id int64) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return item, nil
}

func (s *menuService) UpdateMenuItem(db *sql.DB, id int64, req UpdateMenuItemRequest) (*models.MenuItem, error) {
	if req.Price < 0 {
		return nil, ErrInvalidPrice
	}
	item, err := s.menuRepo.GetByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to fetch menu item for update: %w", err)
	}

	item.Name = req.Name
	item.Price = req.Price
	item.Category = req.Category
	item.Available = req.Available
	item.Vegetarian = req.Vegetarian
	item.SpiceLevel = req.SpiceLevel
	item.PrepMinutes = req.PrepMinutes
	item.Popular = req.Popular
	if req.TaxCategory != "" {
		item.TaxCategory = req.TaxCategory
	}

	if err := s.menuRepo.Update(db, item); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}
	return item, nil
}

func (s *menuService) DeleteMenuItem(db *sql.DB, id int64) error {
	if err := s.menuRepo.Delete(db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMenuItemNotFound
		}
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	return nil
}

func (s *menuService) GetCategories(db *sql.DB) ([]string, error) {
	categories, err := s.menuRepo.GetCategories(db)
	if err != nil {
		return nil, fmt.Errorf("failed to get menu categories: %w", err)
	}
	return categories, nil
}
