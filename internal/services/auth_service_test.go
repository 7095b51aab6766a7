package services

import (
	"testing"

	"referral-system/internal/apperr"
	"referral-system/internal/models"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	service := NewAuthService(db)

	user, err := service.Register("user@example.com", "password123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.PasswordHash == "password123" {
		t.Error("password must not be stored in plaintext")
	}
	if !user.IsActive {
		t.Error("new user should be active")
	}

	logged, err := service.Login("user@example.com", "password123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if logged.ID != user.ID {
		t.Errorf("expected user %d, got %d", user.ID, logged.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	service := NewAuthService(db)

	if _, err := service.Register("user@example.com", "password123"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := service.Register("user@example.com", "different-password")
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Errorf("expected conflict for duplicate email, got %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := setupTestDB(t)
	service := NewAuthService(db)

	if _, err := service.Register("user@example.com", "password123"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := service.Login("user@example.com", "wrong-password")
	if apperr.KindOf(err) != apperr.KindAuth {
		t.Errorf("expected auth error for wrong password, got %v", err)
	}

	// Unknown email yields the same error kind as a wrong password
	_, err = service.Login("ghost@example.com", "password123")
	if apperr.KindOf(err) != apperr.KindAuth {
		t.Errorf("expected auth error for unknown email, got %v", err)
	}
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	db := setupTestDB(t)
	service := NewAuthService(db)

	user, err := service.Register("user@example.com", "password123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("is_active", false).Error; err != nil {
		t.Fatalf("failed to deactivate user: %v", err)
	}

	_, err = service.Login("user@example.com", "password123")
	if apperr.KindOf(err) != apperr.KindAuth {
		t.Errorf("expected auth error for inactive user, got %v", err)
	}
}
