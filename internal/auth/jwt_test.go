package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	InitJWT("test-secret", time.Minute)

	token, err := GenerateToken(42, "user@example.com")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user ID 42, got %d", claims.UserID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("expected subject email, got %q", claims.Email)
	}
	if claims.Subject != "user@example.com" {
		t.Errorf("sub claim should carry the email, got %q", claims.Subject)
	}
	if claims.ID == "" {
		t.Error("token should carry a jti")
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	InitJWT("test-secret", time.Minute)

	token, err := GenerateToken(1, "user@example.com")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := ValidateToken(token + "x"); err == nil {
		t.Error("tampered token should not validate")
	}

	// A token signed under a different secret must be rejected
	InitJWT("other-secret", time.Minute)
	if _, err := ValidateToken(token); err == nil {
		t.Error("token signed with another secret should not validate")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	InitJWT("test-secret", time.Minute)
	tokenTTL = -time.Minute

	token, err := GenerateToken(1, "user@example.com")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	tokenTTL = time.Minute
	if _, err := ValidateToken(token); err == nil {
		t.Error("expired token should not validate")
	}
}
