package http

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ermanaknc/auth-api/internal/modules/auth/domain"
	plathttp "github.com/ermanaknc/auth-api/internal/platform/http"
	"github.com/ermanaknc/auth-api/internal/platform/security"
)

type signUpReq struct {
	Email    string `json:"email" validate:"required,email,min=5,max=60"`
	Password string `json:"password" validate:"required,passwordchars"`
}

func SignUpHandler(users domain.UserRepo, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req signUpReq
		if err := c.BodyParser(&req); err != nil {
			return plathttp.Fail(c, fiber.StatusBadRequest, "INVALID_FIELDS", "Invalid request body")
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		if err := validate.Struct(req); err != nil {
			return plathttp.Fail(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
		defer cancel()

		exists, err := users.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return failDomain(c, log, err)
		}
		if exists {
			return plathttp.Fail(c, fiber.StatusConflict, "EMAIL_TAKEN", "User already exists")
		}

		pwHash, err := security.HashPassword(req.Password)
		if err != nil {
			log.Error("password hashing failed", "err", err)
			return plathttp.Fail(c, fiber.StatusInternalServerError, "SERVER_ERROR", "Server error")
		}

		u, err := users.Create(ctx, domain.CreateUserParams{Email: req.Email, PasswordHash: pwHash})
		if err != nil {
			return failDomain(c, log, err)
		}

		return plathttp.OK(c, fiber.StatusCreated, fiber.Map{
			"message": "User created successfully",
			"data":    fiber.Map{"user_id": u.ID, "email": u.Email, "verified": u.Verified},
		})
	}
}
