package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/carprice-backend/internal/http/response"
	"github.com/yungbote/carprice-backend/internal/services"
)

type VerificationHandler struct {
	verification services.VerificationService
}

func NewVerificationHandler(verification services.VerificationService) *VerificationHandler {
	return &VerificationHandler{verification: verification}
}

func (vh *VerificationHandler) RequestCode(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := vh.verification.RequestCode(c.Request.Context(), req.Email); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (vh *VerificationHandler) CheckCode(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	verified, err := vh.verification.CheckCode(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"verified": verified})
}

// IsVerified lets the signup form poll verification state before submitting.
func (vh *VerificationHandler) IsVerified(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", nil)
		return
	}
	verified, err := vh.verification.IsVerified(c.Request.Context(), email)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"verified": verified})
}
