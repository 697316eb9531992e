package http

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Options struct {
	AppName string
	Logger  *slog.Logger
}

func NewServer(opts Options, modules ...Module) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: opts.AppName,
		// Domain errors are all mapped inside handlers; anything that
		// reaches here is unexpected and must not leak its cause.
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if opts.Logger != nil {
				opts.Logger.Error("unhandled request error", "path", c.Path(), "err", err)
			}
			return Fail(c, fiber.StatusInternalServerError, "SERVER_ERROR", "Server error")
		},
	})

	app.Use(recover.New())

	api := app.Group("/api")
	for _, m := range modules {
		m.Register(api)
	}

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })
	return app
}
