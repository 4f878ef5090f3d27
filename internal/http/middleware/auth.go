package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/carprice-backend/internal/domain"
	"github.com/yungbote/carprice-backend/internal/platform/ctxutil"
	"github.com/yungbote/carprice-backend/internal/platform/logger"
	"github.com/yungbote/carprice-backend/internal/services"
)

type AuthMiddleware struct {
	log    *logger.Logger
	tokens services.TokenService
}

func NewAuthMiddleware(log *logger.Logger, tokens services.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		log:    log.With("middleware", "AuthMiddleware"),
		tokens: tokens,
	}
}

// RequireAuth validates the bearer token and attaches the principal to the
// request context. Any parse or signature failure is a 401.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			abortUnauthorized(c, "missing or invalid token")
			return
		}

		claims, err := am.tokens.Parse(tokenString)
		if err != nil {
			am.log.Debug("Token rejected", "error", err)
			abortUnauthorized(c, "missing or invalid token")
			return
		}
		accountID, err := uuid.Parse(claims.AccountID)
		if err != nil {
			abortUnauthorized(c, "missing or invalid token")
			return
		}

		ctx := ctxutil.WithPrincipal(c.Request.Context(), &ctxutil.Principal{
			AccountID: accountID,
			Email:     claims.Email,
			Role:      claims.Role,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireAdmin gates a route group on the ADMIN role. It must run after
// RequireAuth.
func (am *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := ctxutil.GetPrincipal(c.Request.Context())
		if p == nil {
			abortUnauthorized(c, "missing or invalid token")
			return
		}
		if p.Role != string(types.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{"message": "admin role required", "code": "forbidden"},
			})
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{"message": msg, "code": "unauthorized"},
	})
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}
