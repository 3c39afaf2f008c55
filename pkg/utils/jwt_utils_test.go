package utils

import (
	"errors"
	"testing"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	InitJWT("round-trip-secret")

	token, err := GenerateSessionToken(42, "owner@example.com", "1234567")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("user ID = %d, want 42", claims.UserID)
	}
	if claims.Email != "owner@example.com" {
		t.Errorf("email = %q", claims.Email)
	}
	if claims.RestaurantCode != "1234567" {
		t.Errorf("restaurant code = %q, want 1234567", claims.RestaurantCode)
	}
	if claims.Issuer != "resto-pos-backend" {
		t.Errorf("issuer = %q", claims.Issuer)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	InitJWT("secret-one")
	token, err := GenerateSessionToken(1, "a@example.com", "1234567")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	InitJWT("secret-two")
	if _, err := ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail with a different secret")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	InitJWT("some-secret")
	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Fatal("expected validation to fail for a malformed token")
	}
}

func TestSessionTokenRequiresSecret(t *testing.T) {
	InitJWT("")
	if _, err := GenerateSessionToken(1, "a@example.com", "1234567"); !errors.Is(err, ErrJWTSecretNotSet) {
		t.Fatalf("got %v, want ErrJWTSecretNotSet", err)
	}
	if _, err := ValidateToken("whatever"); !errors.Is(err, ErrJWTSecretNotSet) {
		t.Fatalf("got %v, want ErrJWTSecretNotSet", err)
	}
}
