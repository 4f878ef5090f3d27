package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/carprice-backend/internal/domain/account"
	"github.com/yungbote/carprice-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondDomainError maps the account sentinels onto HTTP statuses; anything
// unrecognized is a 500 with a generic message so internals never leak.
func RespondDomainError(c *gin.Context, err error) {
	ae := classify(err)
	RespondError(c, ae.Status, ae.Code, ae)
}

func classify(err error) *apierr.Error {
	switch {
	case errors.Is(err, account.ErrAccountNotFound):
		return apierr.New(http.StatusNotFound, "account_not_found", err)
	case errors.Is(err, account.ErrInvalidCredentials):
		return apierr.New(http.StatusUnauthorized, "invalid_credentials", err)
	case errors.Is(err, account.ErrEmailNotVerified):
		return apierr.New(http.StatusForbidden, "email_not_verified", err)
	case errors.Is(err, account.ErrProviderConflict):
		return apierr.New(http.StatusConflict, "provider_conflict", err)
	case errors.Is(err, account.ErrEmailTaken),
		errors.Is(err, account.ErrUsernameTaken),
		errors.Is(err, account.ErrSocialAccountExists):
		return apierr.New(http.StatusConflict, "already_exists", err)
	case errors.Is(err, account.ErrUnsupportedProvider),
		errors.Is(err, account.ErrEmailUnavailable),
		errors.Is(err, account.ErrEmailRequired),
		errors.Is(err, account.ErrUsernameRequired),
		errors.Is(err, account.ErrPasswordRequired):
		return apierr.New(http.StatusBadRequest, "invalid_request", err)
	case errors.Is(err, account.ErrTooManyCodeRequests):
		return apierr.New(http.StatusTooManyRequests, "rate_limited", err)
	default:
		return apierr.New(http.StatusInternalServerError, "internal_error", errors.New("internal error"))
	}
}
