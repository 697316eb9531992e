package http

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/ermanaknc/auth-api/internal/modules/auth/domain"
	plathttp "github.com/ermanaknc/auth-api/internal/platform/http"
)

// failDomain maps a domain error to its stable wire shape. Anything not
// in the taxonomy is a server error: logged with its cause, reported
// without it.
func failDomain(c *fiber.Ctx, log *slog.Logger, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return plathttp.Fail(c, fiber.StatusNotFound, "NOT_FOUND", "User not found")
	case errors.Is(err, domain.ErrEmailTaken):
		return plathttp.Fail(c, fiber.StatusConflict, "EMAIL_TAKEN", "User already exists")
	case errors.Is(err, domain.ErrAlreadyVerified):
		return plathttp.Fail(c, fiber.StatusBadRequest, "ALREADY_VERIFIED", "User already verified")
	case errors.Is(err, domain.ErrCodeExpired):
		return plathttp.Fail(c, fiber.StatusBadRequest, "CODE_EXPIRED", "Code expired")
	case errors.Is(err, domain.ErrCodeInvalid):
		return plathttp.Fail(c, fiber.StatusBadRequest, "INVALID_CODE", "Invalid code")
	default:
		log.Error("auth operation failed", "path", c.Path(), "err", err)
		return plathttp.Fail(c, fiber.StatusInternalServerError, "SERVER_ERROR", "Server error")
	}
}
