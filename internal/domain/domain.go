package domain

import (
	"github.com/yungbote/carprice-backend/internal/domain/account"
)

type Account = account.Account
type EmailVerification = account.EmailVerification
type Provider = account.Provider
type Role = account.Role

const (
	ProviderLocal  = account.ProviderLocal
	ProviderGoogle = account.ProviderGoogle
	ProviderNaver  = account.ProviderNaver
	ProviderKakao  = account.ProviderKakao

	RoleUser  = account.RoleUser
	RoleAdmin = account.RoleAdmin
)

var ParseProvider = account.ParseProvider
