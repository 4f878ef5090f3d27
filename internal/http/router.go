package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/yungbote/carprice-backend/internal/http/handlers"
	httpMW "github.com/yungbote/carprice-backend/internal/http/middleware"
)

type RouterConfig struct {
	AuthHandler         *httpH.AuthHandler
	VerificationHandler *httpH.VerificationHandler
	UserHandler         *httpH.UserHandler
	AdminHandler        *httpH.AdminHandler
	HealthHandler       *httpH.HealthHandler

	AuthMiddleware *httpMW.AuthMiddleware
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/auth/signup", cfg.AuthHandler.Signup)
			api.POST("/auth/login", cfg.AuthHandler.Login)
			api.POST("/auth/oauth/login", cfg.AuthHandler.OAuthLogin)
			api.POST("/auth/oauth/signup", cfg.AuthHandler.OAuthCompleteSignup)
		}

		// Email verification (public, pre-signup)
		if cfg.VerificationHandler != nil {
			api.POST("/auth/email/request-code", cfg.VerificationHandler.RequestCode)
			api.POST("/auth/email/verify", cfg.VerificationHandler.CheckCode)
			api.GET("/auth/email/verified", cfg.VerificationHandler.IsVerified)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.UserHandler != nil {
			protected.GET("/users/me", cfg.UserHandler.GetMe)
			protected.DELETE("/users/me", cfg.UserHandler.DeleteMe)
		}
	}

	admin := protected.Group("/admin")
	{
		if cfg.AuthMiddleware != nil {
			admin.Use(cfg.AuthMiddleware.RequireAdmin())
		}

		if cfg.AdminHandler != nil {
			admin.GET("/users", cfg.AdminHandler.ListAccounts)
			admin.GET("/stats", cfg.AdminHandler.Stats)
			admin.PATCH("/users/:id/role", cfg.AdminHandler.UpdateRole)
			admin.PATCH("/users/:id/activate", cfg.AdminHandler.Activate)
			admin.PATCH("/users/:id/deactivate", cfg.AdminHandler.Deactivate)
		}
	}

	return r
}
