package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/carprice-backend/internal/http/response"
	"github.com/yungbote/carprice-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
	tokens      services.TokenService
}

func NewAuthHandler(authService services.AuthService, tokens services.TokenService) *AuthHandler {
	return &AuthHandler{authService: authService, tokens: tokens}
}

func (ah *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		Username    string `json:"username"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		PhoneNumber string `json:"phone_number"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	acct, err := ah.authService.LocalSignup(c.Request.Context(), req.Username, req.Email, req.Password, req.PhoneNumber)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"account": acct})
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	token, acct, err := ah.authService.LocalLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"access_token": token,
		"expires_in":   int(ah.tokens.TTL().Seconds()),
		"account":      acct,
	})
}

// OAuthLogin takes the provider's user-info payload as delivered by the
// client after the OAuth dance. A returning user gets a session; a new one
// gets a signup_required response carrying the proposed account.
func (ah *AuthHandler) OAuthLogin(c *gin.Context) {
	var req struct {
		Provider   string         `json:"provider"`
		Attributes map[string]any `json:"attributes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	result, err := ah.authService.ProviderLogin(c.Request.Context(), req.Provider, req.Attributes)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	if result.NewPrincipal {
		response.RespondOK(c, gin.H{
			"signup_required": true,
			"account":         result.Account,
		})
		return
	}
	response.RespondOK(c, gin.H{
		"access_token": result.Token,
		"expires_in":   int(ah.tokens.TTL().Seconds()),
		"account":      result.Account,
	})
}

func (ah *AuthHandler) OAuthCompleteSignup(c *gin.Context) {
	var req struct {
		Provider   string         `json:"provider"`
		Attributes map[string]any `json:"attributes"`
		Username   string         `json:"username"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	token, acct, err := ah.authService.CompleteSignup(c.Request.Context(), req.Provider, req.Attributes, req.Username)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"access_token": token,
		"expires_in":   int(ah.tokens.TTL().Seconds()),
		"account":      acct,
	})
}
