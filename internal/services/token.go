package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	types "github.com/yungbote/carprice-backend/internal/domain"
	"github.com/yungbote/carprice-backend/internal/platform/logger"
)

// SessionClaims is the JWT payload. The subject is the account's email, its
// authentication identity, with id and role carried alongside for API
// consumers.
type SessionClaims struct {
	AccountID string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService mints and validates session tokens. It is stateless once
// constructed: validation touches nothing but the signing key.
type TokenService interface {
	Issue(acct *types.Account) (string, error)
	// Validate fails closed: any signature mismatch, malformed token, or
	// elapsed expiry is false; otherwise the subject must equal subject.
	Validate(token, subject string) bool
	Parse(token string) (*SessionClaims, error)
	TTL() time.Duration
}

type tokenService struct {
	log    *logger.Logger
	secret []byte
	ttl    time.Duration

	now func() time.Time
}

func NewTokenService(log *logger.Logger, secret string, ttl time.Duration) TokenService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &tokenService{
		log:    log.With("service", "TokenService"),
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *tokenService) Issue(acct *types.Account) (string, error) {
	now := s.now()
	claims := SessionClaims{
		AccountID: acct.ID.String(),
		Email:     acct.Email,
		Role:      string(acct.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acct.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

func (s *tokenService) Parse(tokenString string) (*SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}
	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	return claims, nil
}

func (s *tokenService) Validate(tokenString, subject string) bool {
	claims, err := s.Parse(tokenString)
	if err != nil {
		return false
	}
	return claims.Subject == subject
}

func (s *tokenService) TTL() time.Duration {
	return s.ttl
}
