package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	HTTPAddr string `env:"HTTP_ADDR,default=:8080"`
	Env      string `env:"APP_ENV,default=development"`
	PGDSN    string `env:"PG_DSN,default=postgres://localhost:5432/auth?sslmode=disable"`

	// Both secrets are required: a process that cannot sign tokens or
	// key code hashes must not come up at all.
	TokenSecret string `env:"TOKEN_SECRET,required"`
	HMACSecret  string `env:"HMAC_VERIFICATION_CODE_SECRET,required"`

	AccessTTL time.Duration `env:"ACCESS_TTL,default=8h"`
	CodeTTL   time.Duration `env:"CODE_TTL,default=5m"`

	SMTP SMTP `env:",prefix=SMTP_"`
}

type SMTP struct {
	Host string `env:"HOST,default=localhost"`
	Port int    `env:"PORT,default=587"`
	User string `env:"USER"`
	Pass string `env:"PASS"`
	From string `env:"FROM,default=no-reply@example.com"`
	TLS  bool   `env:"TLS,default=false"`
}

func Load(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
