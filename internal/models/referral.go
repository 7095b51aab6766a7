package models

import (
	"time"
)

// ReferralCode is a time-limited, revocable token that attributes new
// registrations to its owner. At most one code per user may be active at a
// time; the partial unique index on user_id enforces that in the store.
type ReferralCode struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uniq_referral_codes_active_owner,where:is_active = true" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Code      string    `gorm:"uniqueIndex;size:20;not null" json:"code"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (ReferralCode) TableName() string {
	return "referral_codes"
}

// Referral records that a referee registered through a referrer's code.
// Rows are append-only facts: created inside the redemption transaction and
// never updated or deleted afterwards.
type Referral struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	ReferrerID     uint          `gorm:"not null;index" json:"referrer_id"`
	Referrer       *User         `gorm:"foreignKey:ReferrerID" json:"referrer,omitempty"`
	RefereeID      uint          `gorm:"uniqueIndex;not null" json:"referee_id"`
	Referee        *User         `gorm:"foreignKey:RefereeID" json:"referee,omitempty"`
	ReferralCodeID uint          `gorm:"not null;index" json:"referral_code_id"`
	ReferralCode   *ReferralCode `gorm:"foreignKey:ReferralCodeID" json:"referral_code,omitempty"`
	CreatedAt      time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

func (Referral) TableName() string {
	return "referrals"
}
