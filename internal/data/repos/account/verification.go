package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/carprice-backend/internal/domain"
	"github.com/yungbote/carprice-backend/internal/platform/logger"
)

// VerificationRepo is the ledger of issued email codes.
type VerificationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, v *types.EmailVerification) (*types.EmailVerification, error)
	Save(ctx context.Context, tx *gorm.DB, v *types.EmailVerification) error

	// DeleteByEmail removes every row for email, consumed or not. Issuing a
	// new code goes through here first so stale codes cannot resurface.
	DeleteByEmail(ctx context.Context, tx *gorm.DB, email string) error

	// GetPendingByEmailAndCode matches only unverified rows; a consumed code
	// is invisible here, which is what makes the verified flip one-time.
	GetPendingByEmailAndCode(ctx context.Context, tx *gorm.DB, email, code string) (*types.EmailVerification, error)

	// GetLatestByEmail returns the most recently created row, or (nil, nil).
	GetLatestByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.EmailVerification, error)
}

type verificationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVerificationRepo(db *gorm.DB, baseLog *logger.Logger) VerificationRepo {
	return &verificationRepo{
		db:  db,
		log: baseLog.With("repo", "VerificationRepo"),
	}
}

func (r *verificationRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *verificationRepo) Create(ctx context.Context, tx *gorm.DB, v *types.EmailVerification) (*types.EmailVerification, error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if err := r.conn(tx).WithContext(ctx).Create(v).Error; err != nil {
		return nil, err
	}
	return v, nil
}

func (r *verificationRepo) Save(ctx context.Context, tx *gorm.DB, v *types.EmailVerification) error {
	return r.conn(tx).WithContext(ctx).Save(v).Error
}

func (r *verificationRepo) DeleteByEmail(ctx context.Context, tx *gorm.DB, email string) error {
	return r.conn(tx).WithContext(ctx).
		Where("email = ?", email).
		Delete(&types.EmailVerification{}).Error
}

func (r *verificationRepo) GetPendingByEmailAndCode(ctx context.Context, tx *gorm.DB, email, code string) (*types.EmailVerification, error) {
	var out types.EmailVerification
	err := r.conn(tx).WithContext(ctx).
		Where("email = ? AND code = ? AND verified = ?", email, code, false).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *verificationRepo) GetLatestByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.EmailVerification, error) {
	var out types.EmailVerification
	err := r.conn(tx).WithContext(ctx).
		Where("email = ?", email).
		Order("created_at DESC").
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}
