package http

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ermanaknc/auth-api/internal/modules/auth/domain"
	plathttp "github.com/ermanaknc/auth-api/internal/platform/http"
	"github.com/ermanaknc/auth-api/internal/platform/security"
)

type signInReq struct {
	Email    string `json:"email" validate:"required,email,min=5,max=60"`
	Password string `json:"password" validate:"required,passwordchars"`
}

func SignInHandler(users domain.UserRepo, jwtMgr *security.JWTManager, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req signInReq
		if err := c.BodyParser(&req); err != nil {
			return plathttp.Fail(c, fiber.StatusBadRequest, "INVALID_FIELDS", "Invalid request body")
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		if err := validate.Struct(req); err != nil {
			return plathttp.Fail(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
		defer cancel()

		// Missing user and wrong password share one answer so the
		// endpoint cannot be used to enumerate accounts.
		u, err := users.GetWithPassword(ctx, req.Email)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return plathttp.Fail(c, fiber.StatusBadRequest, "INVALID_CREDENTIALS", "Invalid email or password")
			}
			return failDomain(c, log, err)
		}
		if u.PasswordHash == nil || !security.CheckPassword(*u.PasswordHash, req.Password) {
			return plathttp.Fail(c, fiber.StatusBadRequest, "INVALID_CREDENTIALS", "Invalid email or password")
		}

		token, exp, err := jwtMgr.Issue(u.ID, u.Email, u.Verified)
		if err != nil {
			log.Error("token issuance failed", "err", err)
			return plathttp.Fail(c, fiber.StatusInternalServerError, "SERVER_ERROR", "Server error")
		}

		c.Cookie(&fiber.Cookie{
			Name:     "Authorization",
			Value:    "Bearer " + token,
			Expires:  exp,
			HTTPOnly: true,
		})

		return plathttp.OK(c, fiber.StatusOK, fiber.Map{
			"message":    "User signed in successfully",
			"token":      token,
			"expires_at": exp.UTC().Format(time.RFC3339),
		})
	}
}
