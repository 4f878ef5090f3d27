package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	repos "github.com/yungbote/carprice-backend/internal/data/repos/account"
	types "github.com/yungbote/carprice-backend/internal/domain"
	"github.com/yungbote/carprice-backend/internal/domain/account"
	"github.com/yungbote/carprice-backend/internal/platform/logger"
)

// DashboardStats is the admin overview: account totals broken down by
// activation state and role.
type DashboardStats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
	Admins   int64 `json:"admins"`
	Users    int64 `json:"users"`
}

// UserService covers account self-service and the admin account surface.
type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*types.Account, error)
	GetByEmail(ctx context.Context, email string) (*types.Account, error)
	// Deactivate soft-deletes the account: the row stays but drops out of
	// every active-scoped view, and the email becomes reusable for signup.
	Deactivate(ctx context.Context, id uuid.UUID) error

	List(ctx context.Context) ([]*types.Account, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role types.Role) (*types.Account, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*types.Account, error)
	Stats(ctx context.Context) (*DashboardStats, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	accounts repos.AccountRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, accounts repos.AccountRepo) UserService {
	return &userService{
		db:       db,
		log:      log.With("service", "UserService"),
		accounts: accounts,
	}
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*types.Account, error) {
	acct, err := s.accounts.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("lookup account: %w", err)
	}
	if acct == nil {
		return nil, account.ErrAccountNotFound
	}
	return acct, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*types.Account, error) {
	acct, err := s.accounts.GetByEmail(ctx, nil, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("lookup account: %w", err)
	}
	if acct == nil || !acct.IsActive {
		return nil, account.ErrAccountNotFound
	}
	return acct, nil
}

func (s *userService) Deactivate(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		acct, err := s.accounts.GetByID(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("lookup account: %w", err)
		}
		if acct == nil || !acct.IsActive {
			return account.ErrAccountNotFound
		}
		acct.IsActive = false
		if err := s.accounts.Save(ctx, tx, acct); err != nil {
			return fmt.Errorf("deactivate account: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info("Account deactivated", "account_id", id)
	return nil
}

func (s *userService) List(ctx context.Context) ([]*types.Account, error) {
	return s.accounts.List(ctx, nil)
}

func (s *userService) UpdateRole(ctx context.Context, id uuid.UUID, role types.Role) (*types.Account, error) {
	if role != types.RoleUser && role != types.RoleAdmin {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	var updated *types.Account
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		acct, err := s.accounts.GetByID(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("lookup account: %w", err)
		}
		if acct == nil {
			return account.ErrAccountNotFound
		}
		acct.Role = role
		if err := s.accounts.Save(ctx, tx, acct); err != nil {
			return fmt.Errorf("update role: %w", err)
		}
		updated = acct
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Account role updated", "account_id", id, "role", role)
	return updated, nil
}

func (s *userService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*types.Account, error) {
	var updated *types.Account
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		acct, err := s.accounts.GetByID(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("lookup account: %w", err)
		}
		if acct == nil {
			return account.ErrAccountNotFound
		}
		acct.IsActive = active
		if err := s.accounts.Save(ctx, tx, acct); err != nil {
			return fmt.Errorf("update activation: %w", err)
		}
		updated = acct
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Account activation changed", "account_id", id, "active", active)
	return updated, nil
}

func (s *userService) Stats(ctx context.Context) (*DashboardStats, error) {
	total, err := s.accounts.Count(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("count accounts: %w", err)
	}
	active, err := s.accounts.CountByActive(ctx, nil, true)
	if err != nil {
		return nil, fmt.Errorf("count active accounts: %w", err)
	}
	admins, err := s.accounts.CountByRole(ctx, nil, types.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("count admin accounts: %w", err)
	}
	users, err := s.accounts.CountByRole(ctx, nil, types.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("count user accounts: %w", err)
	}
	return &DashboardStats{
		Total:    total,
		Active:   active,
		Inactive: total - active,
		Admins:   admins,
		Users:    users,
	}, nil
}
