package main

import (
	"context"
	"os"

	"github.com/ermanaknc/auth-api/internal/db"
	"github.com/ermanaknc/auth-api/internal/platform/config"
	phttp "github.com/ermanaknc/auth-api/internal/platform/http"
	"github.com/ermanaknc/auth-api/internal/platform/logging"
	"github.com/ermanaknc/auth-api/internal/platform/notify"

	authhttp "github.com/ermanaknc/auth-api/internal/modules/auth/http"
	postshttp "github.com/ermanaknc/auth-api/internal/modules/posts/http"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		// missing secrets land here; refusing to start is the point
		logging.New("production").Error("invalid configuration", "err", err)
		os.Exit(1)
	}
	log := logging.New(cfg.Env)

	dbpool := db.MustOpen(cfg.PGDSN)
	defer dbpool.Close()

	mailer, err := notify.NewMailer(cfg.SMTP)
	if err != nil {
		log.Error("mailer setup failed", "err", err)
		os.Exit(1)
	}

	authModule := authhttp.NewModulePG(dbpool, authhttp.Options{
		Sender:     mailer,
		JWTSecret:  cfg.TokenSecret,
		HMACSecret: cfg.HMACSecret,
		AccessTTL:  cfg.AccessTTL,
		CodeTTL:    cfg.CodeTTL,
		Logger:     log,
	})
	postsModule := postshttp.NewModulePG(dbpool, authModule.JWTManager(), log)

	app := phttp.NewServer(phttp.Options{AppName: "auth-api", Logger: log}, authModule, postsModule)

	log.Info("listening", "addr", cfg.HTTPAddr)
	if err := app.Listen(cfg.HTTPAddr); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
