package app

import (
	"gorm.io/gorm"

	repos "github.com/yungbote/carprice-backend/internal/data/repos/account"
	"github.com/yungbote/carprice-backend/internal/platform/logger"
)

type Repos struct {
	Account      repos.AccountRepo
	Verification repos.VerificationRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Account:      repos.NewAccountRepo(db, log),
		Verification: repos.NewVerificationRepo(db, log),
	}
}
