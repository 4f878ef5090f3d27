package app

import (
	"fmt"
	"os"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/carprice-backend/internal/platform/envutil"
	"github.com/yungbote/carprice-backend/internal/platform/logger"
	"github.com/yungbote/carprice-backend/internal/platform/ratelimit"
	"github.com/yungbote/carprice-backend/internal/platform/sendgrid"
)

type Clients struct {
	Redis   *goredis.Client
	Limiter ratelimit.Limiter
	Mailer  sendgrid.Client
}

// wireClients builds the optional external clients. Redis and SendGrid are
// both opt-in by env: without them the verification service issues codes with
// no throttle and logs them instead of mailing.
func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")
	var out Clients

	if addr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); addr != "" {
		rdb := goredis.NewClient(&goredis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       envutil.Int("REDIS_DB", 0),
		})
		out.Redis = rdb
		out.Limiter = ratelimit.NewRedisLimiter(rdb, log)
	} else {
		log.Warn("REDIS_ADDR not set, code request throttling disabled")
	}

	if strings.TrimSpace(os.Getenv("SENDGRID_API_KEY")) != "" {
		mailer, err := sendgrid.NewFromEnv(log)
		if err != nil {
			return Clients{}, fmt.Errorf("init sendgrid client: %w", err)
		}
		out.Mailer = mailer
	} else {
		log.Warn("SENDGRID_API_KEY not set, verification mails disabled")
	}

	return out, nil
}
