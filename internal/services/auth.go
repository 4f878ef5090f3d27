package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	repos "github.com/yungbote/carprice-backend/internal/data/repos/account"
	types "github.com/yungbote/carprice-backend/internal/domain"
	"github.com/yungbote/carprice-backend/internal/domain/account"
	"github.com/yungbote/carprice-backend/internal/platform/logger"
)

// ProviderLoginResult is the outcome of a social login attempt. For a
// returning user Token is set; for a new principal Account is an unsaved
// draft and the caller must complete signup before a session exists.
type ProviderLoginResult struct {
	Account      *types.Account
	Token        string
	NewPrincipal bool
}

// AuthService owns the authentication entry points: local signup and login,
// and the social login flow built on the reconciler.
type AuthService interface {
	// LocalSignup creates a password-backed account. The email must have
	// passed verification first.
	LocalSignup(ctx context.Context, username, email, password, phone string) (*types.Account, error)
	// LocalLogin verifies credentials and issues a session token. All
	// failures surface as ErrInvalidCredentials.
	LocalLogin(ctx context.Context, email, password string) (string, *types.Account, error)
	// ProviderLogin normalizes the provider payload, reconciles it against
	// the account store, and issues a token for returning users.
	ProviderLogin(ctx context.Context, providerName string, attrs map[string]any) (*ProviderLoginResult, error)
	// CompleteSignup finishes the flow for a new social principal, persisting
	// the account and issuing its first session token.
	CompleteSignup(ctx context.Context, providerName string, attrs map[string]any, username string) (string, *types.Account, error)
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	accounts     repos.AccountRepo
	verification VerificationService
	reconciler   ReconcileService
	tokens       TokenService
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	accounts repos.AccountRepo,
	verification VerificationService,
	reconciler ReconcileService,
	tokens TokenService,
) AuthService {
	return &authService{
		db:           db,
		log:          log.With("service", "AuthService"),
		accounts:     accounts,
		verification: verification,
		reconciler:   reconciler,
		tokens:       tokens,
	}
}

func (s *authService) LocalSignup(ctx context.Context, username, email, password, phone string) (*types.Account, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)
	switch {
	case email == "":
		return nil, account.ErrEmailRequired
	case username == "":
		return nil, account.ErrUsernameRequired
	case password == "":
		return nil, account.ErrPasswordRequired
	}

	verified, err := s.verification.IsVerified(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email verification: %w", err)
	}
	if !verified {
		return nil, account.ErrEmailNotVerified
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var created *types.Account
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.accounts.GetByEmail(ctx, tx, email)
		if err != nil {
			return fmt.Errorf("lookup account by email: %w", err)
		}
		if existing != nil {
			if existing.IsActive {
				return account.ErrEmailTaken
			}
			if err := s.accounts.FullDelete(ctx, tx, existing); err != nil {
				return fmt.Errorf("purge deactivated account: %w", err)
			}
		}

		taken, err := s.accounts.ExistsActiveByUsername(ctx, tx, username)
		if err != nil {
			return fmt.Errorf("check username: %w", err)
		}
		if taken {
			return account.ErrUsernameTaken
		}

		digestStr := string(digest)
		created, err = s.accounts.Create(ctx, tx, &types.Account{
			Username:       username,
			Email:          email,
			PasswordDigest: &digestStr,
			PhoneNumber:    strings.TrimSpace(phone),
			Provider:       types.ProviderLocal,
			Role:           types.RoleUser,
			IsActive:       true,
		})
		if err != nil {
			return fmt.Errorf("create account: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Local account created", "email", email)
	return created, nil
}

func (s *authService) LocalLogin(ctx context.Context, email, password string) (string, *types.Account, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, account.ErrInvalidCredentials
	}

	acct, err := s.accounts.GetByEmail(ctx, nil, email)
	if err != nil {
		return "", nil, fmt.Errorf("lookup account by email: %w", err)
	}
	// Social-only accounts have no digest and cannot password-login. The
	// same error covers every miss so callers learn nothing.
	if acct == nil || !acct.IsActive || acct.PasswordDigest == nil {
		return "", nil, account.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*acct.PasswordDigest), []byte(password)); err != nil {
		return "", nil, account.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(acct)
	if err != nil {
		return "", nil, fmt.Errorf("issue session token: %w", err)
	}
	s.log.Info("Local login", "email", email)
	return token, acct, nil
}

func (s *authService) ProviderLogin(ctx context.Context, providerName string, attrs map[string]any) (*ProviderLoginResult, error) {
	provider, err := types.ParseProvider(providerName)
	if err != nil {
		return nil, err
	}
	profile, err := NormalizeProfile(provider, attrs)
	if err != nil {
		return nil, err
	}

	acct, newPrincipal, err := s.reconciler.Reconcile(ctx, provider, profile)
	if err != nil {
		return nil, err
	}
	result := &ProviderLoginResult{Account: acct, NewPrincipal: newPrincipal}
	if newPrincipal {
		return result, nil
	}

	token, err := s.tokens.Issue(acct)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}
	result.Token = token
	s.log.Info("Provider login", "email", acct.Email, "provider", provider)
	return result, nil
}

func (s *authService) CompleteSignup(ctx context.Context, providerName string, attrs map[string]any, username string) (string, *types.Account, error) {
	provider, err := types.ParseProvider(providerName)
	if err != nil {
		return "", nil, err
	}
	profile, err := NormalizeProfile(provider, attrs)
	if err != nil {
		return "", nil, err
	}

	acct, err := s.reconciler.RegisterNewUser(ctx, provider, profile, strings.TrimSpace(username))
	if err != nil {
		return "", nil, err
	}
	token, err := s.tokens.Issue(acct)
	if err != nil {
		return "", nil, fmt.Errorf("issue session token: %w", err)
	}
	return token, acct, nil
}
