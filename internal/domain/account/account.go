package account

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Provider identifies where an account's credentials live. LOCAL is the
// sentinel for password accounts; everything else is a social provider.
type Provider string

const (
	ProviderLocal  Provider = "LOCAL"
	ProviderGoogle Provider = "GOOGLE"
	ProviderNaver  Provider = "NAVER"
	ProviderKakao  Provider = "KAKAO"
)

// ParseProvider resolves a provider registration name case-insensitively.
// LOCAL is deliberately not parseable here: callers of the social flows must
// never be able to smuggle it in.
func ParseProvider(name string) (Provider, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case string(ProviderGoogle):
		return ProviderGoogle, nil
	case string(ProviderNaver):
		return ProviderNaver, nil
	case string(ProviderKakao):
		return ProviderKakao, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedProvider, name)
	}
}

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type Account struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Username        string    `gorm:"uniqueIndex;not null;column:username" json:"username"`
	Email           string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	PasswordDigest  *string   `gorm:"column:password_digest" json:"-"`
	PhoneNumber     string    `gorm:"column:phone_number" json:"phone_number,omitempty"`
	Provider        Provider  `gorm:"not null;default:'LOCAL';column:provider;uniqueIndex:idx_account_provider_id,priority:1" json:"provider"`
	ProviderID      *string   `gorm:"column:provider_id;uniqueIndex:idx_account_provider_id,priority:2" json:"provider_id,omitempty"`
	ProfileImageURL string    `gorm:"column:profile_image_url" json:"profile_image_url,omitempty"`
	Role            Role      `gorm:"not null;default:'USER';column:role" json:"role"`
	IsActive        bool      `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedAt       time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Account) TableName() string { return "account" }

// Local reports whether the account authenticates with a password.
func (a *Account) Local() bool { return a.Provider == ProviderLocal }
