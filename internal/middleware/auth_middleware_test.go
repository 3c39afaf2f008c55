package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"resto_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

func TestAuthMiddleware(t *testing.T) {
	utils.InitJWT("auth-middleware-test-secret")

	token, err := utils.GenerateSessionToken(42, "owner@example.com", "1234567")
	if err != nil {
		t.Fatalf("failed to issue test token: %v", err)
	}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "valid bearer token",
			authHeader: "Bearer " + token,
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			authHeader: "Basic " + token,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			authHeader: "Bearer not-a-token",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := gin.New()
			engine.Use(AuthMiddleware())
			engine.GET("/me", func(c *gin.Context) {
				userID, ok := UserID(c)
				if !ok || userID != 42 {
					t.Errorf("user ID = %d (%v), want 42", userID, ok)
				}
				email, ok := UserEmail(c)
				if !ok || email != "owner@example.com" {
					t.Errorf("email = %q (%v)", email, ok)
				}
				code, ok := SessionRestaurantCode(c)
				if !ok || code != "1234567" {
					t.Errorf("restaurant code = %q (%v)", code, ok)
				}
				c.JSON(http.StatusOK, gin.H{"ok": true})
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}
