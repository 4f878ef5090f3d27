package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	repos "github.com/yungbote/carprice-backend/internal/data/repos/account"
	types "github.com/yungbote/carprice-backend/internal/domain"
	"github.com/yungbote/carprice-backend/internal/domain/account"
	"github.com/yungbote/carprice-backend/internal/platform/logger"
)

// ReconcileService maps an incoming social login onto exactly one account.
// Email is the reconciliation key: a user's first contact may be a local
// signup, so their provider id is unknown until they link.
type ReconcileService interface {
	// Reconcile decides what an external-provider login means for the
	// account owning profile.Email. It returns the resolved account and
	// whether the caller is a new principal. For a new principal the account
	// is a temporary, unpersisted value (IsActive=false); nothing is written
	// until RegisterNewUser.
	Reconcile(ctx context.Context, provider types.Provider, profile ProviderProfile) (*types.Account, bool, error)

	// RegisterNewUser completes signup for a new social principal. This is
	// the only point where a social-only account is actually written.
	RegisterNewUser(ctx context.Context, provider types.Provider, profile ProviderProfile, username string) (*types.Account, error)
}

type reconcileService struct {
	db       *gorm.DB
	log      *logger.Logger
	accounts repos.AccountRepo
}

func NewReconcileService(db *gorm.DB, log *logger.Logger, accounts repos.AccountRepo) ReconcileService {
	return &reconcileService{
		db:       db,
		log:      log.With("service", "ReconcileService"),
		accounts: accounts,
	}
}

func (s *reconcileService) Reconcile(ctx context.Context, provider types.Provider, profile ProviderProfile) (*types.Account, bool, error) {
	email := normalizeEmail(profile.Email)
	if email == "" {
		return nil, false, account.ErrEmailUnavailable
	}

	var (
		resolved     *types.Account
		newPrincipal bool
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.accounts.GetByEmail(ctx, tx, email)
		if err != nil {
			return fmt.Errorf("lookup account by email: %w", err)
		}

		switch {
		case existing == nil || !existing.IsActive:
			// Unknown email, or a deactivated account that no longer counts
			// as existing. Hand back an unsaved draft and let signup
			// completion persist it.
			draft, err := s.temporaryAccount(ctx, tx, provider, profile, email)
			if err != nil {
				return err
			}
			resolved = draft
			newPrincipal = true
			if existing != nil {
				s.log.Info("Deactivated account treated as new principal", "email", email)
			}
			return nil

		case existing.Provider == types.ProviderLocal:
			// Link event: the local account gains the social channel and
			// keeps its password.
			existing.Provider = provider
			pid := profile.ID
			existing.ProviderID = &pid
			if profile.ImageURL != "" {
				existing.ProfileImageURL = profile.ImageURL
			}
			if err := s.accounts.Save(ctx, tx, existing); err != nil {
				return fmt.Errorf("link provider to local account: %w", err)
			}
			s.log.Info("Local account linked to provider", "email", email, "provider", provider)
			resolved = existing
			return nil

		case existing.Provider != provider:
			return fmt.Errorf("%w: %s", account.ErrProviderConflict, existing.Provider)

		default:
			// Returning social user: refresh mutable profile fields only.
			if profile.ImageURL != "" {
				existing.ProfileImageURL = profile.ImageURL
			}
			if err := s.accounts.Save(ctx, tx, existing); err != nil {
				return fmt.Errorf("refresh account profile: %w", err)
			}
			resolved = existing
			return nil
		}
	})
	if err != nil {
		return nil, false, err
	}
	return resolved, newPrincipal, nil
}

func (s *reconcileService) RegisterNewUser(ctx context.Context, provider types.Provider, profile ProviderProfile, username string) (*types.Account, error) {
	email := normalizeEmail(profile.Email)
	if email == "" {
		return nil, account.ErrEmailUnavailable
	}

	var created *types.Account
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.accounts.GetByEmail(ctx, tx, email)
		if err != nil {
			return fmt.Errorf("lookup account by email: %w", err)
		}
		if existing != nil {
			if existing.IsActive {
				return account.ErrEmailTaken
			}
			// A lingering deactivated row is purged so its unique columns
			// free up for the new account.
			if err := s.accounts.FullDelete(ctx, tx, existing); err != nil {
				return fmt.Errorf("purge deactivated account: %w", err)
			}
		}

		if username == "" {
			username, err = s.generateUniqueUsername(ctx, tx, usernameBase(provider, profile.Name))
			if err != nil {
				return err
			}
		} else {
			taken, err := s.accounts.ExistsActiveByUsername(ctx, tx, username)
			if err != nil {
				return fmt.Errorf("check username: %w", err)
			}
			if taken {
				return account.ErrUsernameTaken
			}
		}

		bound, err := s.accounts.GetByProviderID(ctx, tx, provider, profile.ID)
		if err != nil {
			return fmt.Errorf("lookup provider binding: %w", err)
		}
		if bound != nil && bound.IsActive {
			return account.ErrSocialAccountExists
		}

		pid := profile.ID
		created, err = s.accounts.Create(ctx, tx, &types.Account{
			Username:        username,
			Email:           email,
			Provider:        provider,
			ProviderID:      &pid,
			ProfileImageURL: profile.ImageURL,
			Role:            types.RoleUser,
			IsActive:        true,
		})
		if err != nil {
			return fmt.Errorf("create social account: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Social account registered", "email", email, "provider", provider)
	return created, nil
}

// temporaryAccount builds the unsaved draft handed to the signup flow. It
// reads the store only to pick a free username; it performs no writes.
func (s *reconcileService) temporaryAccount(ctx context.Context, tx *gorm.DB, provider types.Provider, profile ProviderProfile, email string) (*types.Account, error) {
	username, err := s.generateUniqueUsername(ctx, tx, usernameBase(provider, profile.Name))
	if err != nil {
		return nil, err
	}
	pid := profile.ID
	return &types.Account{
		Username:        username,
		Email:           email,
		Provider:        provider,
		ProviderID:      &pid,
		ProfileImageURL: profile.ImageURL,
		Role:            types.RoleUser,
		IsActive:        false,
	}, nil
}

func (s *reconcileService) generateUniqueUsername(ctx context.Context, tx *gorm.DB, base string) (string, error) {
	username := base
	for suffix := 1; ; suffix++ {
		taken, err := s.accounts.ExistsActiveByUsername(ctx, tx, username)
		if err != nil {
			return "", fmt.Errorf("check username: %w", err)
		}
		if !taken {
			return username, nil
		}
		username = fmt.Sprintf("%s_%d", base, suffix)
	}
}

func usernameBase(provider types.Provider, name string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	return strings.ToLower(string(provider)) + "_user"
}
