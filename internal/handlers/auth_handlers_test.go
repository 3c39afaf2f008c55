package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/services"

	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// fakeAuthService records Signup calls; unused methods panic through the
// embedded nil interface.
type fakeAuthService struct {
	services.AuthService

	signup func(req services.SignupRequest) (*services.AuthResponse, error)
}

func (f *fakeAuthService) Signup(req services.SignupRequest) (*services.AuthResponse, error) {
	return f.signup(req)
}

func signupRouter(svc services.AuthService) *gin.Engine {
	r := gin.New()
	r.POST("/api/auth/signup", NewAuthHandler(svc).Signup)
	return r
}

func TestSignupPasswordConfirmation(t *testing.T) {
	t.Run("mismatched confirmation is rejected before the service", func(t *testing.T) {
		called := false
		svc := &fakeAuthService{signup: func(req services.SignupRequest) (*services.AuthResponse, error) {
			called = true
			return nil, nil
		}}

		body := bytes.NewBufferString(`{
			"restaurant_name": "Test Bistro",
			"owner_name": "Owner",
			"email": "owner@example.com",
			"password": "password1",
			"confirmPassword": "completely-different"
		}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		signupRouter(svc).ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("got status %d, want %d (body: %s)", w.Code, http.StatusBadRequest, w.Body.String())
		}
		if called {
			t.Error("service was called despite the password mismatch")
		}
	})

	t.Run("matching confirmation reaches the service", func(t *testing.T) {
		var got services.SignupRequest
		svc := &fakeAuthService{signup: func(req services.SignupRequest) (*services.AuthResponse, error) {
			got = req
			return &services.AuthResponse{
				User:        &models.User{ID: 1, Email: req.Email},
				Restaurant:  &models.Restaurant{ID: 1, Code: "1234567"},
				AccessToken: "token",
			}, nil
		}}

		body := bytes.NewBufferString(`{
			"restaurant_name": "Test Bistro",
			"owner_name": "Owner",
			"email": "owner@example.com",
			"password": "password1",
			"confirmPassword": "password1"
		}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		signupRouter(svc).ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("got status %d, want %d (body: %s)", w.Code, http.StatusCreated, w.Body.String())
		}
		if got.Password != "password1" {
			t.Errorf("service received password %q, want %q", got.Password, "password1")
		}
	})
}
