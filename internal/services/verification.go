package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	"gorm.io/gorm"

	repos "github.com/yungbote/carprice-backend/internal/data/repos/account"
	types "github.com/yungbote/carprice-backend/internal/domain"
	"github.com/yungbote/carprice-backend/internal/domain/account"
	"github.com/yungbote/carprice-backend/internal/platform/logger"
	"github.com/yungbote/carprice-backend/internal/platform/ratelimit"
	"github.com/yungbote/carprice-backend/internal/platform/sendgrid"
)

// VerificationService gates local signup behind proof of email possession.
type VerificationService interface {
	// RequestCode issues a fresh 6-digit code for email, invalidating any
	// earlier codes, and dispatches it best-effort over mail.
	RequestCode(ctx context.Context, email string) error
	// CheckCode consumes a pending code. It reports false for a wrong,
	// already-consumed, never-issued, or expired code.
	CheckCode(ctx context.Context, email, code string) (bool, error)
	// IsVerified reports whether the most recent code for email has been
	// checked successfully.
	IsVerified(ctx context.Context, email string) (bool, error)
}

type verificationService struct {
	db           *gorm.DB
	log          *logger.Logger
	verifRepo    repos.VerificationRepo
	mailer       sendgrid.Client
	limiter      ratelimit.Limiter
	codeTTL      time.Duration
	requestLimit int
	limitWindow  time.Duration

	now        func() time.Time
	randSource io.Reader
}

func NewVerificationService(
	db *gorm.DB,
	log *logger.Logger,
	verifRepo repos.VerificationRepo,
	mailer sendgrid.Client,
	limiter ratelimit.Limiter,
	codeTTL time.Duration,
	requestLimit int,
	limitWindow time.Duration,
) VerificationService {
	if codeTTL <= 0 {
		codeTTL = 5 * time.Minute
	}
	if limitWindow <= 0 {
		limitWindow = 10 * time.Minute
	}
	return &verificationService{
		db:           db,
		log:          log.With("service", "VerificationService"),
		verifRepo:    verifRepo,
		mailer:       mailer,
		limiter:      limiter,
		codeTTL:      codeTTL,
		requestLimit: requestLimit,
		limitWindow:  limitWindow,
		now:          time.Now,
		randSource:   rand.Reader,
	}
}

func (s *verificationService) RequestCode(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return account.ErrEmailRequired
	}

	if s.limiter != nil && s.requestLimit > 0 {
		allowed, err := s.limiter.Allow(ctx, "email_code:"+email, s.requestLimit, s.limitWindow)
		if err != nil {
			// Throttling is protective, not load-bearing; a broken limiter
			// must not block verification.
			s.log.Warn("Rate limiter unavailable, allowing request", "error", err)
		} else if !allowed {
			return account.ErrTooManyCodeRequests
		}
	}

	code, err := s.generateCode()
	if err != nil {
		return fmt.Errorf("generate verification code: %w", err)
	}

	verification := &types.EmailVerification{
		Email:      email,
		Code:       code,
		ExpiryTime: s.now().Add(s.codeTTL),
		CreatedAt:  s.now(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.verifRepo.DeleteByEmail(ctx, tx, email); err != nil {
			return fmt.Errorf("invalidate prior codes: %w", err)
		}
		if _, err := s.verifRepo.Create(ctx, tx, verification); err != nil {
			return fmt.Errorf("store verification code: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// The code row is committed; delivery failure is logged and swallowed so
	// a flaky mail transport never blocks verification. The code itself never
	// reaches the logs.
	if s.mailer != nil {
		if _, err := s.mailer.Send(ctx, sendgrid.SendEmailRequest{
			To:      []sendgrid.EmailAddress{{Email: email}},
			Subject: "[Car Price] Email verification code",
			HTML:    verificationEmailHTML(code),
			Text:    fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, int(s.codeTTL.Minutes())),
		}); err != nil {
			s.log.Warn("Verification mail send failed, code remains valid", "email", email, "error", err)
		} else {
			s.log.Info("Verification code dispatched", "email", email)
		}
	} else {
		s.log.Info("Mailer disabled, verification code issued but not delivered", "email", email)
	}

	return nil
}

func (s *verificationService) CheckCode(ctx context.Context, email, code string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" || strings.TrimSpace(code) == "" {
		return false, nil
	}

	ok := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pending, err := s.verifRepo.GetPendingByEmailAndCode(ctx, tx, email, strings.TrimSpace(code))
		if err != nil {
			return err
		}
		if pending == nil {
			s.log.Debug("No pending verification code", "email", email)
			return nil
		}
		if pending.Expired(s.now()) {
			s.log.Debug("Verification code expired", "email", email)
			return nil
		}
		pending.Verified = true
		if err := s.verifRepo.Save(ctx, tx, pending); err != nil {
			return fmt.Errorf("mark code verified: %w", err)
		}
		ok = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if ok {
		s.log.Info("Email verified", "email", email)
	}
	return ok, nil
}

func (s *verificationService) IsVerified(ctx context.Context, email string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" {
		return false, nil
	}
	latest, err := s.verifRepo.GetLatestByEmail(ctx, nil, email)
	if err != nil {
		return false, err
	}
	if latest == nil {
		return false, nil
	}
	return latest.Verified, nil
}

// generateCode draws uniformly from [100000, 999999] so codes are always six
// digits with no leading zeros.
func (s *verificationService) generateCode() (string, error) {
	n, err := rand.Int(s.randSource, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func verificationEmailHTML(code string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2>Email verification code</h2>
  <p>Enter the code below to verify your email address.</p>
  <div style="font-size: 32px; font-weight: bold; letter-spacing: 8px; padding: 16px 0;">%s</div>
  <p style="color: #666;">If you did not request this code, you can ignore this message.</p>
</body>
</html>`, code)
}
