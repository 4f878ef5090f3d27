package account

import (
	"time"

	"github.com/google/uuid"
)

// EmailVerification is one issued verification code. Only the most recently
// created row per email is authoritative; issuing a new code deletes the
// older rows outright.
type EmailVerification struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email      string    `gorm:"index;not null;column:email" json:"email"`
	Code       string    `gorm:"not null;size:6;column:code" json:"-"`
	ExpiryTime time.Time `gorm:"not null;column:expiry_time" json:"expiry_time"`
	Verified   bool      `gorm:"not null;default:false;column:verified" json:"verified"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (EmailVerification) TableName() string { return "email_verification" }

func (v *EmailVerification) Expired(now time.Time) bool {
	return now.After(v.ExpiryTime)
}
