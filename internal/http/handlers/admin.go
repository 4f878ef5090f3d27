package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/carprice-backend/internal/domain"
	"github.com/yungbote/carprice-backend/internal/http/response"
	"github.com/yungbote/carprice-backend/internal/services"
)

type AdminHandler struct {
	userService services.UserService
}

func NewAdminHandler(userService services.UserService) *AdminHandler {
	return &AdminHandler{userService: userService}
}

func (ah *AdminHandler) ListAccounts(c *gin.Context) {
	accounts, err := ah.userService.List(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"accounts": accounts})
}

func (ah *AdminHandler) Stats(c *gin.Context) {
	stats, err := ah.userService.Stats(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, stats)
}

func (ah *AdminHandler) UpdateRole(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_account_id", err)
		return
	}
	var req struct {
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	acct, err := ah.userService.UpdateRole(c.Request.Context(), id, types.Role(req.Role))
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"account": acct})
}

func (ah *AdminHandler) Activate(c *gin.Context) {
	ah.setActive(c, true)
}

func (ah *AdminHandler) Deactivate(c *gin.Context) {
	ah.setActive(c, false)
}

func (ah *AdminHandler) setActive(c *gin.Context, active bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_account_id", err)
		return
	}
	acct, err := ah.userService.SetActive(c.Request.Context(), id, active)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"account": acct})
}
