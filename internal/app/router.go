package app

import (
	"github.com/gin-gonic/gin"

	appHTTP "github.com/yungbote/carprice-backend/internal/http"
)

func wireRouter(handlerset Handlers, middleware Middleware) *gin.Engine {
	return appHTTP.NewRouter(appHTTP.RouterConfig{
		AuthHandler:         handlerset.Auth,
		VerificationHandler: handlerset.Verification,
		UserHandler:         handlerset.User,
		AdminHandler:        handlerset.Admin,
		HealthHandler:       handlerset.Health,

		AuthMiddleware: middleware.Auth,
	})
}
