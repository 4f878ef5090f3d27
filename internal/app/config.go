package app

import (
	"time"

	"github.com/yungbote/carprice-backend/internal/platform/envutil"
)

type Config struct {
	Port string

	JWTSecretKey   string
	AccessTokenTTL time.Duration

	EmailCodeTTL      time.Duration
	CodeRequestLimit  int
	CodeRequestWindow time.Duration
}

func LoadConfig() Config {
	return Config{
		Port: envutil.String("PORT", "8080"),

		JWTSecretKey:   envutil.String("JWT_SECRET_KEY", "defaultsecret"),
		AccessTokenTTL: envutil.DurationSeconds("JWT_TTL", time.Hour),

		EmailCodeTTL:      envutil.DurationSeconds("EMAIL_CODE_TTL", 5*time.Minute),
		CodeRequestLimit:  envutil.Int("EMAIL_CODE_REQUEST_LIMIT", 5),
		CodeRequestWindow: envutil.DurationSeconds("EMAIL_CODE_REQUEST_WINDOW", 10*time.Minute),
	}
}
