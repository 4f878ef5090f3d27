package app

import (
	httpH "github.com/yungbote/carprice-backend/internal/http/handlers"
	"github.com/yungbote/carprice-backend/internal/platform/logger"
)

type Handlers struct {
	Auth         *httpH.AuthHandler
	Verification *httpH.VerificationHandler
	User         *httpH.UserHandler
	Admin        *httpH.AdminHandler
	Health       *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:         httpH.NewAuthHandler(serviceset.Auth, serviceset.Token),
		Verification: httpH.NewVerificationHandler(serviceset.Verification),
		User:         httpH.NewUserHandler(serviceset.User),
		Admin:        httpH.NewAdminHandler(serviceset.User),
		Health:       httpH.NewHealthHandler(),
	}
}
