package services

import (
	"errors"
	"strconv"
	"testing"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/repositories"
	"resto_pos_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// fakeMasterRepo implements the registry lookups Login and code allocation
// need; unused methods panic through the embedded nil interface.
type fakeMasterRepo struct {
	repositories.MasterRepository

	findRestaurantByCode          func(code string) (*models.Restaurant, error)
	findUserByEmail               func(email string) (*models.User, string, error)
	userLinkedToRestaurant        func(userID, restaurantID int64) (bool, error)
	restaurantCodeExists          func(code string) (bool, error)
	restaurantExistsForOwnerEmail func(email string) (bool, error)
	findUserByID                  func(userID int64) (*models.User, error)
}

func (f *fakeMasterRepo) FindRestaurantByCode(code string) (*models.Restaurant, error) {
	return f.findRestaurantByCode(code)
}

func (f *fakeMasterRepo) FindUserByEmail(email string) (*models.User, string, error) {
	return f.findUserByEmail(email)
}

func (f *fakeMasterRepo) UserLinkedToRestaurant(userID, restaurantID int64) (bool, error) {
	return f.userLinkedToRestaurant(userID, restaurantID)
}

func (f *fakeMasterRepo) RestaurantCodeExists(code string) (bool, error) {
	return f.restaurantCodeExists(code)
}

func (f *fakeMasterRepo) RestaurantExistsForOwnerEmail(email string) (bool, error) {
	return f.restaurantExistsForOwnerEmail(email)
}

func (f *fakeMasterRepo) FindUserByID(userID int64) (*models.User, error) {
	return f.findUserByID(userID)
}

func TestRandomRestaurantCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := RandomRestaurantCode()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(code) != 7 {
			t.Fatalf("code %q: want 7 digits", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("code %q is not numeric: %v", code, err)
		}
		if n < 1000000 || n > 9999999 {
			t.Fatalf("code %d out of range", n)
		}
	}
}

func TestAllocateRestaurantCode(t *testing.T) {
	t.Run("retries past taken codes", func(t *testing.T) {
		calls := 0
		svc := &authService{masterRepo: &fakeMasterRepo{
			restaurantCodeExists: func(code string) (bool, error) {
				calls++
				return calls <= 2, nil
			},
		}}
		code, err := svc.allocateRestaurantCode()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(code) != 7 {
			t.Errorf("got code %q, want a 7-digit code", code)
		}
		if calls != 3 {
			t.Errorf("got %d existence checks, want 3", calls)
		}
	})

	t.Run("gives up after bounded attempts", func(t *testing.T) {
		calls := 0
		svc := &authService{masterRepo: &fakeMasterRepo{
			restaurantCodeExists: func(code string) (bool, error) {
				calls++
				return true, nil
			},
		}}
		if _, err := svc.allocateRestaurantCode(); !errors.Is(err, ErrCodeGeneration) {
			t.Fatalf("got %v, want ErrCodeGeneration", err)
		}
		if calls != maxCodeAttempts {
			t.Errorf("got %d attempts, want %d", calls, maxCodeAttempts)
		}
	})
}

func TestLogin(t *testing.T) {
	utils.InitJWT("login-test-secret")

	password := "correct-horse-battery"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash test password: %v", err)
	}

	restaurant := &models.Restaurant{ID: 7, Name: "Test Bistro", Code: "1234567"}
	user := &models.User{ID: 42, Email: "owner@example.com", FullName: "Owner"}

	newRepo := func(linked bool) *fakeMasterRepo {
		return &fakeMasterRepo{
			findRestaurantByCode: func(code string) (*models.Restaurant, error) {
				if code != restaurant.Code {
					return nil, repositories.ErrNotFound
				}
				r := *restaurant
				return &r, nil
			},
			findUserByEmail: func(email string) (*models.User, string, error) {
				if email != user.Email {
					return nil, "", repositories.ErrNotFound
				}
				u := *user
				return &u, string(hash), nil
			},
			userLinkedToRestaurant: func(userID, restaurantID int64) (bool, error) {
				return linked, nil
			},
		}
	}

	tests := []struct {
		name    string
		req     LoginRequest
		linked  bool
		wantErr error
	}{
		{
			name:    "unknown restaurant code",
			req:     LoginRequest{Email: user.Email, Password: password, RestaurantCode: "0000000"},
			linked:  true,
			wantErr: ErrInvalidRestaurantCode,
		},
		{
			name:    "unknown email",
			req:     LoginRequest{Email: "nobody@example.com", Password: password, RestaurantCode: restaurant.Code},
			linked:  true,
			wantErr: ErrInvalidCredentials,
		},
		{
			name:    "wrong password",
			req:     LoginRequest{Email: user.Email, Password: "wrong", RestaurantCode: restaurant.Code},
			linked:  true,
			wantErr: ErrInvalidCredentials,
		},
		{
			name:    "user not linked to restaurant",
			req:     LoginRequest{Email: user.Email, Password: password, RestaurantCode: restaurant.Code},
			linked:  false,
			wantErr: ErrUserNotLinked,
		},
		{
			name:   "success",
			req:    LoginRequest{Email: user.Email, Password: password, RestaurantCode: restaurant.Code},
			linked: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &authService{masterRepo: newRepo(tt.linked)}
			resp, err := svc.Login(tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got error %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.AccessToken == "" {
				t.Error("expected a session token")
			}
			if resp.User.PasswordHash != "" {
				t.Error("password hash leaked in response")
			}
			claims, err := utils.ValidateToken(resp.AccessToken)
			if err != nil {
				t.Fatalf("issued token does not validate: %v", err)
			}
			if claims.UserID != user.ID || claims.RestaurantCode != restaurant.Code {
				t.Errorf("token claims = (%d, %q), want (%d, %q)",
					claims.UserID, claims.RestaurantCode, user.ID, restaurant.Code)
			}
		})
	}
}

func TestSignupRejectsTakenEmail(t *testing.T) {
	signupReq := SignupRequest{
		RestaurantName:  "Test Bistro",
		OwnerName:       "Owner",
		Email:           "owner@example.com",
		Password:        "password1",
		ConfirmPassword: "password1",
	}

	t.Run("existing user account", func(t *testing.T) {
		svc := &authService{masterRepo: &fakeMasterRepo{
			findUserByEmail: func(email string) (*models.User, string, error) {
				return &models.User{ID: 1, Email: email}, "hash", nil
			},
		}}
		if _, err := svc.Signup(signupReq); !errors.Is(err, ErrEmailExists) {
			t.Fatalf("got %v, want ErrEmailExists", err)
		}
	})

	t.Run("email owns a restaurant without a user account", func(t *testing.T) {
		// Nothing past the directory check runs, so no provisioner is needed.
		svc := &authService{masterRepo: &fakeMasterRepo{
			findUserByEmail: func(email string) (*models.User, string, error) {
				return nil, "", repositories.ErrNotFound
			},
			restaurantExistsForOwnerEmail: func(email string) (bool, error) {
				if email != signupReq.Email {
					t.Errorf("checked owner email %q, want %q", email, signupReq.Email)
				}
				return true, nil
			},
		}}
		if _, err := svc.Signup(signupReq); !errors.Is(err, ErrEmailExists) {
			t.Fatalf("got %v, want ErrEmailExists", err)
		}
	})
}

func TestGetUserProfileNotFound(t *testing.T) {
	svc := &authService{masterRepo: &fakeMasterRepo{
		findUserByID: func(userID int64) (*models.User, error) {
			return nil, repositories.ErrNotFound
		},
	}}
	if _, err := svc.GetUserProfile(99); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("got %v, want ErrUserNotFound", err)
	}
}
