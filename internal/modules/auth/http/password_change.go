package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ermanaknc/auth-api/internal/modules/auth/domain"
	plathttp "github.com/ermanaknc/auth-api/internal/platform/http"
	"github.com/ermanaknc/auth-api/internal/platform/security"
)

type changePasswordReq struct {
	OldPassword string `json:"old_password" validate:"required,passwordchars"`
	NewPassword string `json:"new_password" validate:"required,passwordchars"`
}

// ChangePasswordHandler replaces the password of the authenticated,
// verified account after re-checking the old one.
func ChangePasswordHandler(users domain.UserRepo, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals(plathttp.LocalUserID).(string)
		verified, _ := c.Locals(plathttp.LocalVerified).(bool)

		var req changePasswordReq
		if err := c.BodyParser(&req); err != nil {
			return plathttp.Fail(c, fiber.StatusBadRequest, "INVALID_FIELDS", "Invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return plathttp.Fail(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		}

		if !verified {
			return plathttp.Fail(c, fiber.StatusForbidden, "FORBIDDEN", "User not verified")
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
		defer cancel()

		u, err := users.GetWithPasswordByID(ctx, userID)
		if err != nil {
			return failDomain(c, log, err)
		}
		if u.PasswordHash == nil || !security.CheckPassword(*u.PasswordHash, req.OldPassword) {
			return plathttp.Fail(c, fiber.StatusBadRequest, "INVALID_CREDENTIALS", "Invalid old password")
		}

		newHash, err := security.HashPassword(req.NewPassword)
		if err != nil {
			log.Error("password hashing failed", "err", err)
			return plathttp.Fail(c, fiber.StatusInternalServerError, "SERVER_ERROR", "Server error")
		}
		if err := users.UpdatePassword(ctx, userID, newHash); err != nil {
			return failDomain(c, log, err)
		}

		return plathttp.OK(c, fiber.StatusOK, fiber.Map{"message": "Password changed successfully"})
	}
}
