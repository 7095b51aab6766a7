package services

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"referral-system/internal/apperr"
	"referral-system/internal/auth"
	"referral-system/internal/models"
)

// ReferralService manages the referral-code lifecycle and redemption.
// All coordination happens through database transactions; the service keeps
// no in-process state beyond its handle.
type ReferralService struct {
	db      *gorm.DB
	codeTTL time.Duration
}

// NewReferralService creates a new ReferralService. codeTTL controls how
// long a freshly issued code stays redeemable.
func NewReferralService(db *gorm.DB, codeTTL time.Duration) *ReferralService {
	if codeTTL <= 0 {
		codeTTL = 24 * time.Hour
	}
	return &ReferralService{db: db, codeTTL: codeTTL}
}

// Referee is a row of the referee projection
type Referee struct {
	RefereeEmail string    `json:"referee_email"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateCode issues a new referral code for ownerID. Fails with a conflict
// when an active code already exists; there is no auto-rotation.
func (s *ReferralService) CreateCode(ownerID uint) (*models.ReferralCode, error) {
	var created models.ReferralCode

	err := s.runTx(func(tx *gorm.DB) error {
		var existing models.ReferralCode
		err := tx.Where("user_id = ? AND is_active = ?", ownerID, true).First(&existing).Error
		if err == nil {
			return apperr.Conflict("active code already present")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		code, err := generateRandomCode()
		if err != nil {
			return err
		}

		created = models.ReferralCode{
			UserID:    ownerID,
			Code:      code,
			ExpiresAt: time.Now().Add(s.codeTTL),
			IsActive:  true,
		}

		if err := tx.Create(&created).Error; err != nil {
			// The partial unique index rejects a concurrent create that
			// slipped past the read above.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("active code already present")
			}
			return fmt.Errorf("failed to create referral code: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Generated referral code %s for user %d", created.Code, ownerID)
	return &created, nil
}

// DeactivateCode revokes the owner's active code. A second call fails with
// not-found rather than succeeding silently.
func (s *ReferralService) DeactivateCode(ownerID uint) error {
	return s.runTx(func(tx *gorm.DB) error {
		var code models.ReferralCode
		err := tx.Where("user_id = ? AND is_active = ?", ownerID, true).First(&code).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("no active referral code found")
			}
			return err
		}

		return tx.Model(&code).Update("is_active", false).Error
	})
}

// ValidateCode returns the code record when codeString is redeemable: it
// exists, is active, and has not passed its expiry. All three conditions are
// evaluated against tx's snapshot.
func (s *ReferralService) ValidateCode(tx *gorm.DB, codeString string) (*models.ReferralCode, error) {
	var code models.ReferralCode
	err := tx.Where("code = ? AND is_active = ? AND expires_at > ?", codeString, true, time.Now()).
		First(&code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.InvalidCode()
		}
		return nil, err
	}
	return &code, nil
}

// RedeemAndRegister registers a new user through someone else's referral
// code. The code check, user insert and referral insert run in one
// transaction: either the user and the referral edge both persist or
// neither does. The code is checked before the email, so when both are bad
// the caller sees the invalid-code error.
func (s *ReferralService) RedeemAndRegister(email, password, codeString string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	var user models.User

	err = s.runTx(func(tx *gorm.DB) error {
		// Validated inside the writing transaction: a concurrent deactivation
		// or an expiry crossed mid-request cannot leave a referral edge
		// pointing at a dead code.
		code, err := s.ValidateCode(tx, codeString)
		if err != nil {
			return err
		}

		user = models.User{
			Email:        email,
			PasswordHash: hash,
			IsActive:     true,
		}
		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("email already registered")
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		referral := models.Referral{
			ReferrerID:     code.UserID,
			RefereeID:      user.ID,
			ReferralCodeID: code.ID,
		}
		if err := tx.Create(&referral).Error; err != nil {
			return fmt.Errorf("failed to create referral: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("User %d registered with referral code %s", user.ID, codeString)
	return &user, nil
}

// ListReferees returns the emails and join times of everyone who registered
// through referrerID's codes, oldest first. Each call is a fresh read.
func (s *ReferralService) ListReferees(referrerID uint) ([]Referee, error) {
	var referees []Referee
	err := s.db.Model(&models.Referral{}).
		Select("users.email AS referee_email, referrals.created_at").
		Joins("JOIN users ON users.id = referrals.referee_id").
		Where("referrals.referrer_id = ?", referrerID).
		Order("referrals.created_at ASC").
		Scan(&referees).Error
	if err != nil {
		return nil, err
	}
	return referees, nil
}

// runTx runs fn in a transaction, retrying once on a transient storage
// failure. Business errors and constraint violations are never retried.
func (s *ReferralService) runTx(fn func(tx *gorm.DB) error) error {
	err := s.db.Transaction(fn)
	if err == nil || !isTransient(err) {
		return err
	}
	log.Printf("Transaction failed, retrying once: %v", err)
	return s.db.Transaction(fn)
}

func isTransient(err error) bool {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrRecordNotFound) {
		return false
	}
	return true
}

// generateRandomCode generates a random 8-character URL-safe code
func generateRandomCode() (string, error) {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b)[:8], nil
}
