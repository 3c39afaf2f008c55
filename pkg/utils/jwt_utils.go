package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// jwtSecretKey signs and verifies session tokens. Populated from JWT_SECRET
// by InitJWT during startup.
var jwtSecretKey []byte

// SessionTokenTTL is the fixed validity window for issued session tokens.
const SessionTokenTTL = 8 * time.Hour

var ErrJWTSecretNotSet = errors.New("jwt secret is not configured")

// InitJWT sets the signing key for session tokens.
func InitJWT(secret string) {
	jwtSecretKey = []byte(secret)
}

// Claims defines the session token claims structure.
type Claims struct {
	UserID         int64  `json:"user_id"`
	Email          string `json:"email"`
	RestaurantCode string `json:"restaurant_code"`
	jwt.RegisteredClaims
}

// GenerateSessionToken creates a signed session token embedding the user id,
// email and the 7-digit restaurant code the session is bound to.
func GenerateSessionToken(userID int64, email, restaurantCode string) (string, error) {
	if len(jwtSecretKey) == 0 {
		return "", ErrJWTSecretNotSet
	}
	expirationTime := time.Now().Add(SessionTokenTTL)
	claims := &Claims{
		UserID:         userID,
		Email:          email,
		RestaurantCode: restaurantCode,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "resto-pos-backend",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a session token string.
// It returns the claims if the token is valid, otherwise an error.
func ValidateToken(tokenString string) (*Claims, error) {
	if len(jwtSecretKey) == 0 {
		return nil, ErrJWTSecretNotSet
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecretKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
