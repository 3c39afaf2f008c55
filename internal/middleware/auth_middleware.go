package middleware

import (
	"net/http"
	"strings"

	"resto_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Context keys for values set by AuthMiddleware. Read them through the typed
// accessors below rather than c.Get.
const (
	ctxKeyUserID         = "authUserID"
	ctxKeyUserEmail      = "authUserEmail"
	ctxKeyRestaurantCode = "authRestaurantCode"
)

// AuthMiddleware validates the Bearer session token and stores its claims in
// the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authorization header required.", ""))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid authorization header format. Use Bearer <token>.", ""))
			return
		}

		claims, err := utils.ValidateToken(parts[1])
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid or expired token.", err.Error()))
			return
		}

		c.Set(ctxKeyUserID, claims.UserID)
		c.Set(ctxKeyUserEmail, claims.Email)
		c.Set(ctxKeyRestaurantCode, claims.RestaurantCode)

		c.Next()
	}
}

// UserID returns the authenticated user's ID from the request context.
func UserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(ctxKeyUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// UserEmail returns the authenticated user's email from the request context.
func UserEmail(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxKeyUserEmail)
	if !exists {
		return "", false
	}
	email, ok := v.(string)
	return email, ok
}

// SessionRestaurantCode returns the restaurant code the session token is
// bound to.
func SessionRestaurantCode(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxKeyRestaurantCode)
	if !exists {
		return "", false
	}
	code, ok := v.(string)
	return code, ok
}
