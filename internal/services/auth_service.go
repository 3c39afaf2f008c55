package services

import (
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/repositories"
	"resto_pos_backend/internal/tenant"
	"resto_pos_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrEmailExists           = errors.New("email already registered")
	ErrInvalidRestaurantCode = errors.New("restaurant code not recognized")
	ErrUserNotLinked         = errors.New("user has no access to this restaurant")
	ErrCodeGeneration        = errors.New("could not allocate a unique restaurant code")
	ErrProvisioningFailed    = errors.New("tenant database provisioning failed")
)

// maxCodeAttempts bounds the retry loop for restaurant code allocation.
const maxCodeAttempts = 5

// SignupRequest DTO. One signup creates the vendor account, the restaurant
// registry row and the restaurant's dedicated tenant database. The password
// must be confirmed; a mismatch is rejected at binding time.
type SignupRequest struct {
	RestaurantName  string  `json:"restaurant_name" binding:"required"`
	OwnerName       string  `json:"owner_name" binding:"required"`
	Email           string  `json:"email" binding:"required,email"`
	Password        string  `json:"password" binding:"required,min=8"`
	ConfirmPassword string  `json:"confirmPassword" binding:"required,eqfield=Password"`
	Phone           *string `json:"phone"`
	Address         *string `json:"address"`
	Country         *string `json:"country"`
	Plan            string  `json:"plan"`
}

// LoginRequest DTO. RestaurantCode is the 7-digit public identifier issued at
// signup; a session is always bound to one restaurant.
type LoginRequest struct {
	Email          string `json:"email" binding:"required"`
	Password       string `json:"password" binding:"required"`
	RestaurantCode string `json:"restaurantId" binding:"required"`
}

// AuthResponse DTO
type AuthResponse struct {
	User        *models.User       `json:"user"`
	Restaurant  *models.Restaurant `json:"restaurant"`
	AccessToken string             `json:"access_token"`
}

// --- AuthService Interface ---
type AuthService interface {
	Signup(req SignupRequest) (*AuthResponse, error)
	Login(req LoginRequest) (*AuthResponse, error)
	GetUserProfile(userID int64) (*models.User, error)
}

type authService struct {
	masterRepo  repositories.MasterRepository
	db          *sql.DB // master registry handle, used to manage transactions
	provisioner *tenant.Provisioner
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(masterRepo repositories.MasterRepository, db *sql.DB, provisioner *tenant.Provisioner) AuthService {
	return &authService{
		masterRepo:  masterRepo,
		db:          db,
		provisioner: provisioner,
	}
}

// Signup registers a vendor and provisions their restaurant. The tenant
// database is created before the registry rows are written; if the registry
// transaction fails afterwards, the database is dropped again so both sides
// stay consistent.
func (s *authService) Signup(req SignupRequest) (*AuthResponse, error) {
	if _, _, err := s.masterRepo.FindUserByEmail(req.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	// A restaurant row can outlive its owner account (the owner's login email
	// may change), so the directory is checked separately.
	if taken, err := s.masterRepo.RestaurantExistsForOwnerEmail(req.Email); err != nil {
		return nil, fmt.Errorf("failed to check owner email: %w", err)
	} else if taken {
		return nil, ErrEmailExists
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := s.allocateRestaurantCode()
	if err != nil {
		return nil, err
	}

	tenantDSN, err := s.provisioner.Provision(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvisioningFailed, err)
	}

	authResp, err := s.registerRestaurant(req, code, tenantDSN, string(hashedPasswordBytes))
	if err != nil {
		// Compensate: the tenant database exists but no registry row points
		// at it, so drop it before surfacing the error.
		s.provisioner.Deprovision(code)
		return nil, err
	}
	return authResp, nil
}

// registerRestaurant writes the user, restaurant and link rows in one
// registry transaction.
func (s *authService) registerRestaurant(req SignupRequest, code, tenantDSN, hashedPassword string) (*AuthResponse, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start registry transaction: %w", err)
	}
	defer tx.Rollback()

	user := models.User{
		Email:    req.Email,
		FullName: req.OwnerName,
	}
	userID, err := s.masterRepo.CreateUser(tx, &user, hashedPassword)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	plan := req.Plan
	if plan == "" {
		plan = "basic"
	}
	restaurant := models.Restaurant{
		Name:        req.RestaurantName,
		Code:        code,
		DatabaseURL: tenantDSN,
		OwnerEmail:  req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Country:     req.Country,
		Plan:        plan,
	}
	if _, err := s.masterRepo.CreateRestaurant(tx, &restaurant); err != nil {
		return nil, fmt.Errorf("failed to create restaurant: %w", err)
	}

	if err := s.masterRepo.LinkUserToRestaurant(tx, userID, restaurant.ID); err != nil {
		return nil, fmt.Errorf("failed to link user to restaurant: %w", err)
	}

	// Issue the token before committing so a signing failure rolls the
	// registry rows back instead of stranding them.
	accessToken, err := utils.GenerateSessionToken(userID, user.Email, code)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit registry transaction: %w", err)
	}

	return &AuthResponse{
		User:        &user,
		Restaurant:  &restaurant,
		AccessToken: accessToken,
	}, nil
}

// Login authenticates a vendor against one restaurant and issues a session
// token bound to that restaurant's code.
func (s *authService) Login(req LoginRequest) (*AuthResponse, error) {
	restaurant, err := s.masterRepo.FindRestaurantByCode(req.RestaurantCode)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidRestaurantCode
		}
		return nil, fmt.Errorf("failed to look up restaurant: %w", err)
	}

	user, storedHash, err := s.masterRepo.FindUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	linked, err := s.masterRepo.UserLinkedToRestaurant(user.ID, restaurant.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check restaurant access: %w", err)
	}
	if !linked {
		return nil, ErrUserNotLinked
	}

	accessToken, err := utils.GenerateSessionToken(user.ID, user.Email, restaurant.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	user.PasswordHash = ""
	return &AuthResponse{
		User:        user,
		Restaurant:  restaurant,
		AccessToken: accessToken,
	}, nil
}

// GetUserProfile retrieves a user's profile by their ID.
func (s *authService) GetUserProfile(userID int64) (*models.User, error) {
	user, err := s.masterRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to retrieve user profile: %w", err)
	}
	return user, nil
}

// allocateRestaurantCode draws random 7-digit codes until one is free in the
// registry, bounded by maxCodeAttempts.
func (s *authService) allocateRestaurantCode() (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := RandomRestaurantCode()
		if err != nil {
			return "", fmt.Errorf("failed to generate restaurant code: %w", err)
		}
		exists, err := s.masterRepo.RestaurantCodeExists(code)
		if err != nil {
			return "", fmt.Errorf("failed to check restaurant code: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", ErrCodeGeneration
}

// RandomRestaurantCode returns a random 7-digit code with no leading zero.
func RandomRestaurantCode() (string, error) {
	// 1000000..9999999
	n, err := rand.Int(rand.Reader, big.NewInt(9000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+1000000), nil
}
