package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/carprice-backend/internal/http/response"
	"github.com/yungbote/carprice-backend/internal/platform/ctxutil"
	"github.com/yungbote/carprice-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
	p := ctxutil.GetPrincipal(c.Request.Context())
	if p == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	acct, err := uh.userService.GetByID(c.Request.Context(), p.AccountID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"account": acct})
}

// DeleteMe deactivates the caller's own account. The row stays for audit but
// the email frees up for a future signup.
func (uh *UserHandler) DeleteMe(c *gin.Context) {
	p := ctxutil.GetPrincipal(c.Request.Context())
	if p == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	if err := uh.userService.Deactivate(c.Request.Context(), p.AccountID); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
