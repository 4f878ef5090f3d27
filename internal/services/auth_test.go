package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	repos "github.com/yungbote/carprice-backend/internal/data/repos/account"
	"github.com/yungbote/carprice-backend/internal/data/repos/testutil"
	types "github.com/yungbote/carprice-backend/internal/domain"
	"github.com/yungbote/carprice-backend/internal/domain/account"
)

type authFixture struct {
	svc      AuthService
	tokens   TokenService
	accounts repos.AccountRepo
	tx       *gorm.DB
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	accounts := repos.NewAccountRepo(tx, log)
	verifRepo := repos.NewVerificationRepo(tx, log)
	verification := NewVerificationService(tx, log, verifRepo, &fakeMailer{}, nil, 5*time.Minute, 0, 0)
	reconciler := NewReconcileService(tx, log, accounts)
	tokens := NewTokenService(log, "auth-test-secret", time.Hour)

	return &authFixture{
		svc:      NewAuthService(tx, log, accounts, verification, reconciler, tokens),
		tokens:   tokens,
		accounts: accounts,
		tx:       tx,
	}
}

// markVerified plants a consumed verification row so signup's gate passes.
func markVerified(t *testing.T, tx *gorm.DB, email string) {
	t.Helper()
	v := &types.EmailVerification{
		ID:         uuid.New(),
		Email:      email,
		Code:       "123456",
		ExpiryTime: time.Now().Add(5 * time.Minute),
		Verified:   true,
	}
	if err := tx.Create(v).Error; err != nil {
		t.Fatalf("seed verified row: %v", err)
	}
}

func TestLocalSignupRequiresVerifiedEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.LocalSignup(ctx, "jane", "jane.signup@example.com", "s3cret-pw", "")
	if !errors.Is(err, account.ErrEmailNotVerified) {
		t.Fatalf("err = %v, want ErrEmailNotVerified", err)
	}

	markVerified(t, f.tx, "jane.signup@example.com")
	acct, err := f.svc.LocalSignup(ctx, "jane", "jane.signup@example.com", "s3cret-pw", "010-1234-5678")
	if err != nil {
		t.Fatalf("LocalSignup: %v", err)
	}
	if acct.Provider != types.ProviderLocal || !acct.IsActive || acct.Role != types.RoleUser {
		t.Fatalf("unexpected account: %+v", acct)
	}
	if acct.PasswordDigest == nil || *acct.PasswordDigest == "s3cret-pw" {
		t.Fatal("password must be stored as a digest")
	}
}

func TestLocalSignupRejectsTakenIdentifiers(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	testutil.SeedAccount(t, ctx, f.tx, "held@example.com", "held_user")
	markVerified(t, f.tx, "held@example.com")
	markVerified(t, f.tx, "held2@example.com")

	if _, err := f.svc.LocalSignup(ctx, "someone", "held@example.com", "pw", ""); !errors.Is(err, account.ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
	if _, err := f.svc.LocalSignup(ctx, "held_user", "held2@example.com", "pw", ""); !errors.Is(err, account.ErrUsernameTaken) {
		t.Fatalf("err = %v, want ErrUsernameTaken", err)
	}
}

func TestLocalSignupReclaimsDeactivatedEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	seeded := testutil.SeedAccount(t, ctx, f.tx, "recycled@example.com", "recycled_old")
	seeded.IsActive = false
	if err := f.accounts.Save(ctx, nil, seeded); err != nil {
		t.Fatalf("deactivate seed: %v", err)
	}
	markVerified(t, f.tx, "recycled@example.com")

	acct, err := f.svc.LocalSignup(ctx, "recycled_new", "recycled@example.com", "pw123456", "")
	if err != nil {
		t.Fatalf("LocalSignup: %v", err)
	}
	if acct.ID == seeded.ID {
		t.Fatal("signup must not reuse the deactivated row")
	}
}

func TestLocalLoginFailsClosed(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	markVerified(t, f.tx, "login@example.com")
	if _, err := f.svc.LocalSignup(ctx, "login_user", "login@example.com", "right-horse", ""); err != nil {
		t.Fatalf("LocalSignup: %v", err)
	}

	token, acct, err := f.svc.LocalLogin(ctx, "login@example.com", "right-horse")
	if err != nil {
		t.Fatalf("LocalLogin: %v", err)
	}
	if !f.tokens.Validate(token, acct.Email) {
		t.Fatal("issued token should validate for the account email")
	}

	cases := []struct{ email, password string }{
		{"login@example.com", "wrong-horse"},
		{"nobody@example.com", "right-horse"},
		{"", ""},
	}
	for _, c := range cases {
		if _, _, err := f.svc.LocalLogin(ctx, c.email, c.password); !errors.Is(err, account.ErrInvalidCredentials) {
			t.Fatalf("LocalLogin(%q) err = %v, want ErrInvalidCredentials", c.email, err)
		}
	}
}

func TestLocalLoginRejectsSocialOnlyAccount(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	pid := "g-social"
	if _, err := f.accounts.Create(ctx, nil, &types.Account{
		Username:   "social_user",
		Email:      "social@example.com",
		Provider:   types.ProviderGoogle,
		ProviderID: &pid,
		Role:       types.RoleUser,
		IsActive:   true,
	}); err != nil {
		t.Fatalf("seed social account: %v", err)
	}

	if _, _, err := f.svc.LocalLogin(ctx, "social@example.com", "anything"); !errors.Is(err, account.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestProviderLoginFlow(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	attrs := map[string]any{
		"id":      "g-flow",
		"name":    "Flow",
		"email":   "flow@example.com",
		"picture": "https://img/flow",
	}

	// First contact: new principal, no token, nothing persisted yet.
	result, err := f.svc.ProviderLogin(ctx, "google", attrs)
	if err != nil {
		t.Fatalf("ProviderLogin: %v", err)
	}
	if !result.NewPrincipal || result.Token != "" {
		t.Fatalf("first contact = %+v, want new principal without token", result)
	}

	token, acct, err := f.svc.CompleteSignup(ctx, "google", attrs, "")
	if err != nil {
		t.Fatalf("CompleteSignup: %v", err)
	}
	if !f.tokens.Validate(token, acct.Email) {
		t.Fatal("signup token should validate")
	}

	// Second contact: returning user gets a session immediately.
	result, err = f.svc.ProviderLogin(ctx, "google", attrs)
	if err != nil {
		t.Fatalf("returning ProviderLogin: %v", err)
	}
	if result.NewPrincipal || result.Token == "" {
		t.Fatalf("returning login = %+v, want token without new principal", result)
	}
	if result.Account.ID != acct.ID {
		t.Fatal("returning login must resolve to the registered account")
	}
}

func TestProviderLoginUnsupportedProvider(t *testing.T) {
	f := newAuthFixture(t)
	if _, err := f.svc.ProviderLogin(context.Background(), "github", map[string]any{"email": "x@example.com"}); !errors.Is(err, account.ErrUnsupportedProvider) {
		t.Fatalf("err = %v, want ErrUnsupportedProvider", err)
	}
}
