package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ermanaknc/auth-api/internal/platform/security"
)

const (
	LocalUserID   = "user_id"
	LocalEmail    = "email"
	LocalVerified = "verified"
)

// BearerAuth validates the session token and stashes its claims in the
// request locals. Non-browser clients declare themselves via the
// "client: not-browser" header and send the token in Authorization;
// browsers get it back from the Authorization cookie set at sign-in.
func BearerAuth(jwtMgr *security.JWTManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get("Authorization")
		if c.Get("client") != "not-browser" {
			raw = c.Cookies("Authorization")
		}
		if !strings.HasPrefix(raw, "Bearer ") {
			return Fail(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		}
		claims, err := jwtMgr.Verify(strings.TrimPrefix(raw, "Bearer "))
		if err != nil {
			if errors.Is(err, security.ErrTokenExpired) {
				return Fail(c, fiber.StatusUnauthorized, "TOKEN_EXPIRED", "Token expired")
			}
			return Fail(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalVerified, claims.Verified)
		return c.Next()
	}
}
