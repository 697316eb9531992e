package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	plathttp "github.com/ermanaknc/auth-api/internal/platform/http"
)

// SignOutHandler clears the session cookie. The token itself stays
// valid until exp; there is no server-side revocation.
func SignOutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Cookie(&fiber.Cookie{
			Name:     "Authorization",
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
		})
		return plathttp.OK(c, fiber.StatusOK, fiber.Map{"message": "User logged out successfully"})
	}
}
