package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/carprice-backend/internal/domain"
	"github.com/yungbote/carprice-backend/internal/platform/logger"
)

// AccountRepo is the credential store. Get* lookups return (nil, nil) when no
// row matches so callers can branch without unwrapping gorm errors. The
// Exists* predicates are scoped to active accounts: that scoping is the
// uniqueness rule for signup, and deactivated rows must never satisfy it.
type AccountRepo interface {
	Create(ctx context.Context, tx *gorm.DB, acct *types.Account) (*types.Account, error)
	Save(ctx context.Context, tx *gorm.DB, acct *types.Account) error
	FullDelete(ctx context.Context, tx *gorm.DB, acct *types.Account) error

	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Account, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.Account, error)
	GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*types.Account, error)
	GetByProviderID(ctx context.Context, tx *gorm.DB, provider types.Provider, providerID string) (*types.Account, error)

	ExistsActiveByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	ExistsActiveByUsername(ctx context.Context, tx *gorm.DB, username string) (bool, error)

	List(ctx context.Context, tx *gorm.DB) ([]*types.Account, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	CountByActive(ctx context.Context, tx *gorm.DB, active bool) (int64, error)
	CountByRole(ctx context.Context, tx *gorm.DB, role types.Role) (int64, error)
}

type accountRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAccountRepo(db *gorm.DB, baseLog *logger.Logger) AccountRepo {
	return &accountRepo{
		db:  db,
		log: baseLog.With("repo", "AccountRepo"),
	}
}

func (r *accountRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *accountRepo) Create(ctx context.Context, tx *gorm.DB, acct *types.Account) (*types.Account, error) {
	if acct.ID == uuid.Nil {
		acct.ID = uuid.New()
	}
	if err := r.conn(tx).WithContext(ctx).Create(acct).Error; err != nil {
		return nil, err
	}
	return acct, nil
}

func (r *accountRepo) Save(ctx context.Context, tx *gorm.DB, acct *types.Account) error {
	return r.conn(tx).WithContext(ctx).Save(acct).Error
}

func (r *accountRepo) FullDelete(ctx context.Context, tx *gorm.DB, acct *types.Account) error {
	return r.conn(tx).WithContext(ctx).Delete(&types.Account{}, "id = ?", acct.ID).Error
}

func (r *accountRepo) getOne(ctx context.Context, tx *gorm.DB, query string, args ...interface{}) (*types.Account, error) {
	var out types.Account
	err := r.conn(tx).WithContext(ctx).Where(query, args...).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *accountRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Account, error) {
	return r.getOne(ctx, tx, "id = ?", id)
}

func (r *accountRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.Account, error) {
	return r.getOne(ctx, tx, "email = ?", email)
}

func (r *accountRepo) GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*types.Account, error) {
	return r.getOne(ctx, tx, "username = ?", username)
}

func (r *accountRepo) GetByProviderID(ctx context.Context, tx *gorm.DB, provider types.Provider, providerID string) (*types.Account, error) {
	return r.getOne(ctx, tx, "provider = ? AND provider_id = ?", provider, providerID)
}

func (r *accountRepo) ExistsActiveByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	var n int64
	err := r.conn(tx).WithContext(ctx).
		Model(&types.Account{}).
		Where("email = ? AND is_active = ?", email, true).
		Count(&n).Error
	return n > 0, err
}

func (r *accountRepo) ExistsActiveByUsername(ctx context.Context, tx *gorm.DB, username string) (bool, error) {
	var n int64
	err := r.conn(tx).WithContext(ctx).
		Model(&types.Account{}).
		Where("username = ? AND is_active = ?", username, true).
		Count(&n).Error
	return n > 0, err
}

func (r *accountRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Account, error) {
	var out []*types.Account
	if err := r.conn(tx).WithContext(ctx).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *accountRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	var n int64
	err := r.conn(tx).WithContext(ctx).Model(&types.Account{}).Count(&n).Error
	return n, err
}

func (r *accountRepo) CountByActive(ctx context.Context, tx *gorm.DB, active bool) (int64, error) {
	var n int64
	err := r.conn(tx).WithContext(ctx).
		Model(&types.Account{}).
		Where("is_active = ?", active).
		Count(&n).Error
	return n, err
}

func (r *accountRepo) CountByRole(ctx context.Context, tx *gorm.DB, role types.Role) (int64, error) {
	var n int64
	err := r.conn(tx).WithContext(ctx).
		Model(&types.Account{}).
		Where("role = ?", role).
		Count(&n).Error
	return n, err
}
