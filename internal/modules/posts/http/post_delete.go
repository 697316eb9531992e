package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ermanaknc/auth-api/internal/modules/posts/domain"
	plathttp "github.com/ermanaknc/auth-api/internal/platform/http"
)

func DeletePostHandler(posts domain.PostRepo, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals(plathttp.LocalUserID).(string)
		id := c.Query("_id")
		if id == "" {
			return plathttp.Fail(c, fiber.StatusBadRequest, "INVALID_FIELDS", "Post id is required")
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
		defer cancel()

		existing, err := posts.GetByID(ctx, id)
		if err != nil {
			return failDomain(c, log, err)
		}
		if err := existing.AuthorizeOwner(userID); err != nil {
			return failDomain(c, log, err)
		}

		if err := posts.Delete(ctx, id); err != nil {
			return failDomain(c, log, err)
		}
		return plathttp.OK(c, fiber.StatusOK, fiber.Map{"message": "Post deleted successfully"})
	}
}
