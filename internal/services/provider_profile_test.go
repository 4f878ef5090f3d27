package services

import (
	"errors"
	"testing"

	types "github.com/yungbote/carprice-backend/internal/domain"
	"github.com/yungbote/carprice-backend/internal/domain/account"
)

func TestNormalizeProfileGoogle(t *testing.T) {
	attrs := map[string]any{
		"id":      "108234",
		"name":    "Jane Roe",
		"email":   "jane@example.com",
		"picture": "https://lh3.example.com/jane.jpg",
	}

	got, err := NormalizeProfile(types.ProviderGoogle, attrs)
	if err != nil {
		t.Fatalf("NormalizeProfile: %v", err)
	}
	want := ProviderProfile{
		ID:       "108234",
		Name:     "Jane Roe",
		Email:    "jane@example.com",
		ImageURL: "https://lh3.example.com/jane.jpg",
	}
	if got != want {
		t.Fatalf("profile = %+v, want %+v", got, want)
	}
}

func TestNormalizeProfileNaver(t *testing.T) {
	attrs := map[string]any{
		"resultcode": "00",
		"response": map[string]any{
			"id":            "nv-77",
			"name":          "Kim",
			"email":         "kim@example.com",
			"profile_image": "https://phinf.example.com/kim.png",
		},
	}

	got, err := NormalizeProfile(types.ProviderNaver, attrs)
	if err != nil {
		t.Fatalf("NormalizeProfile: %v", err)
	}
	if got.ID != "nv-77" || got.Name != "Kim" || got.Email != "kim@example.com" || got.ImageURL != "https://phinf.example.com/kim.png" {
		t.Fatalf("unexpected profile: %+v", got)
	}
}

func TestNormalizeProfileNaverMissingResponse(t *testing.T) {
	_, err := NormalizeProfile(types.ProviderNaver, map[string]any{"resultcode": "00"})
	if !errors.Is(err, account.ErrEmailUnavailable) {
		t.Fatalf("err = %v, want ErrEmailUnavailable", err)
	}
}

func TestNormalizeProfileKakao(t *testing.T) {
	attrs := map[string]any{
		"id": float64(123456789),
		"properties": map[string]any{
			"nickname":      "choi",
			"profile_image": "https://k.example.com/choi.jpg",
		},
		"kakao_account": map[string]any{
			"email": "choi@example.com",
		},
	}

	got, err := NormalizeProfile(types.ProviderKakao, attrs)
	if err != nil {
		t.Fatalf("NormalizeProfile: %v", err)
	}
	if got.ID != "123456789" {
		t.Fatalf("ID = %q, want numeric id rendered without decimals", got.ID)
	}
	if got.Name != "choi" || got.Email != "choi@example.com" || got.ImageURL != "https://k.example.com/choi.jpg" {
		t.Fatalf("unexpected profile: %+v", got)
	}
}

func TestNormalizeProfileKakaoProfileFallback(t *testing.T) {
	attrs := map[string]any{
		"id": float64(42),
		"kakao_account": map[string]any{
			"email": "park@example.com",
			"profile": map[string]any{
				"nickname":          "park",
				"profile_image_url": "https://k.example.com/park.jpg",
			},
		},
	}

	got, err := NormalizeProfile(types.ProviderKakao, attrs)
	if err != nil {
		t.Fatalf("NormalizeProfile: %v", err)
	}
	if got.Name != "park" || got.ImageURL != "https://k.example.com/park.jpg" {
		t.Fatalf("fallback profile not used: %+v", got)
	}
}

func TestNormalizeProfileKakaoMissingEmail(t *testing.T) {
	attrs := map[string]any{
		"id":         float64(42),
		"properties": map[string]any{"nickname": "park"},
	}

	_, err := NormalizeProfile(types.ProviderKakao, attrs)
	if !errors.Is(err, account.ErrEmailUnavailable) {
		t.Fatalf("err = %v, want ErrEmailUnavailable", err)
	}
}

func TestNormalizeProfileUnsupportedProvider(t *testing.T) {
	_, err := NormalizeProfile(types.Provider("GITHUB"), map[string]any{"email": "x@example.com"})
	if !errors.Is(err, account.ErrUnsupportedProvider) {
		t.Fatalf("err = %v, want ErrUnsupportedProvider", err)
	}
}

func TestParseProviderRejectsLocal(t *testing.T) {
	if _, err := types.ParseProvider("local"); !errors.Is(err, account.ErrUnsupportedProvider) {
		t.Fatalf("parsing LOCAL should fail, got err = %v", err)
	}
	p, err := types.ParseProvider("  Google ")
	if err != nil {
		t.Fatalf("ParseProvider: %v", err)
	}
	if p != types.ProviderGoogle {
		t.Fatalf("provider = %q, want GOOGLE", p)
	}
}
