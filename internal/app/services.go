package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/carprice-backend/internal/platform/logger"
	"github.com/yungbote/carprice-backend/internal/services"
)

type Services struct {
	Token        services.TokenService
	Verification services.VerificationService
	Reconcile    services.ReconcileService
	Auth         services.AuthService
	User         services.UserService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, clients Clients) Services {
	log.Info("Wiring services...")

	tokens := services.NewTokenService(log, cfg.JWTSecretKey, cfg.AccessTokenTTL)
	verification := services.NewVerificationService(
		db, log,
		reposet.Verification,
		clients.Mailer,
		clients.Limiter,
		cfg.EmailCodeTTL,
		cfg.CodeRequestLimit,
		cfg.CodeRequestWindow,
	)
	reconciler := services.NewReconcileService(db, log, reposet.Account)
	auth := services.NewAuthService(db, log, reposet.Account, verification, reconciler, tokens)
	user := services.NewUserService(db, log, reposet.Account)

	return Services{
		Token:        tokens,
		Verification: verification,
		Reconcile:    reconciler,
		Auth:         auth,
		User:         user,
	}
}
