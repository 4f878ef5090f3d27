package services

import (
	"fmt"
	"strings"

	types "github.com/yungbote/carprice-backend/internal/domain"
	"github.com/yungbote/carprice-backend/internal/domain/account"
)

// ProviderProfile is the canonical shape every social provider's user-info
// payload is reduced to before reconciliation sees it.
type ProviderProfile struct {
	ID       string
	Name     string
	Email    string
	ImageURL string
}

// NormalizeProfile maps a provider's raw attribute payload onto a
// ProviderProfile. The extraction rules mirror each provider's real API
// shape; a payload with no usable email fails with ErrEmailUnavailable for
// every provider, Kakao included. No placeholder address is synthesized.
func NormalizeProfile(provider types.Provider, attrs map[string]any) (ProviderProfile, error) {
	var p ProviderProfile
	switch provider {
	case types.ProviderGoogle:
		p = googleProfile(attrs)
	case types.ProviderNaver:
		p = naverProfile(attrs)
	case types.ProviderKakao:
		p = kakaoProfile(attrs)
	default:
		return ProviderProfile{}, fmt.Errorf("%w: %s", account.ErrUnsupportedProvider, provider)
	}
	if strings.TrimSpace(p.Email) == "" {
		return ProviderProfile{}, fmt.Errorf("%w (provider %s)", account.ErrEmailUnavailable, provider)
	}
	return p, nil
}

// Google returns a flat payload.
func googleProfile(attrs map[string]any) ProviderProfile {
	return ProviderProfile{
		ID:       stringAttr(attrs, "id"),
		Name:     stringAttr(attrs, "name"),
		Email:    stringAttr(attrs, "email"),
		ImageURL: stringAttr(attrs, "picture"),
	}
}

// Naver nests everything one level under "response"; a payload without that
// key resolves to empty fields rather than an error.
func naverProfile(attrs map[string]any) ProviderProfile {
	response := mapAttr(attrs, "response")
	if response == nil {
		return ProviderProfile{}
	}
	return ProviderProfile{
		ID:       stringAttr(response, "id"),
		Name:     stringAttr(response, "name"),
		Email:    stringAttr(response, "email"),
		ImageURL: stringAttr(response, "profile_image"),
	}
}

// Kakao: id is top-level (a JSON number), name/image live in "properties"
// with a fallback to kakao_account.profile, and email is only present when
// the app has email scope.
func kakaoProfile(attrs map[string]any) ProviderProfile {
	p := ProviderProfile{ID: stringAttr(attrs, "id")}

	kakaoAccount := mapAttr(attrs, "kakao_account")

	if properties := mapAttr(attrs, "properties"); properties != nil {
		p.Name = stringAttr(properties, "nickname")
		p.ImageURL = stringAttr(properties, "profile_image")
	} else if kakaoAccount != nil {
		if profile := mapAttr(kakaoAccount, "profile"); profile != nil {
			p.Name = stringAttr(profile, "nickname")
			p.ImageURL = stringAttr(profile, "profile_image_url")
		}
	}

	if kakaoAccount != nil {
		p.Email = stringAttr(kakaoAccount, "email")
	}
	return p
}

func stringAttr(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// JSON numbers decode as float64; provider ids are integral.
		return fmt.Sprintf("%.0f", t)
	default:
		return fmt.Sprint(t)
	}
}

func mapAttr(m map[string]any, key string) map[string]any {
	if sub, ok := m[key].(map[string]any); ok {
		return sub
	}
	return nil
}
