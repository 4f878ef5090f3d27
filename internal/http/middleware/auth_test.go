package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/carprice-backend/internal/domain"
	"github.com/yungbote/carprice-backend/internal/platform/ctxutil"
	"github.com/yungbote/carprice-backend/internal/platform/logger"
	"github.com/yungbote/carprice-backend/internal/services"
)

func newAuthTestRouter(t *testing.T) (*gin.Engine, services.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	tokens := services.NewTokenService(log, "middleware-test-secret", time.Hour)
	am := NewAuthMiddleware(log, tokens)

	r := gin.New()
	r.GET("/me", am.RequireAuth(), func(c *gin.Context) {
		p := ctxutil.GetPrincipal(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"email": p.Email, "role": p.Role})
	})
	r.GET("/admin", am.RequireAuth(), am.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, tokens
}

func issue(t *testing.T, tokens services.TokenService, role types.Role) string {
	t.Helper()
	token, err := tokens.Issue(&types.Account{
		ID:       uuid.New(),
		Email:    "mw@example.com",
		Role:     role,
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return token
}

func TestRequireAuth(t *testing.T) {
	r, tokens := newAuthTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: status = %d, want 401", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: status = %d, want 401", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, tokens, types.RoleUser))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("valid token: status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
}

func TestRequireAdmin(t *testing.T) {
	r, tokens := newAuthTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, tokens, types.RoleUser))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("user role: status = %d, want 403", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, tokens, types.RoleAdmin))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("admin role: status = %d, want 200", w.Code)
	}
}
