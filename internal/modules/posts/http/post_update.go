package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ermanaknc/auth-api/internal/modules/posts/domain"
	plathttp "github.com/ermanaknc/auth-api/internal/platform/http"
)

type updatePostReq struct {
	Title       string `json:"title" validate:"required,min=3,max=50"`
	Description string `json:"description" validate:"required,min=10,max=500"`
}

func UpdatePostHandler(posts domain.PostRepo, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals(plathttp.LocalUserID).(string)
		id := c.Query("_id")
		if id == "" {
			return plathttp.Fail(c, fiber.StatusBadRequest, "INVALID_FIELDS", "Post id is required")
		}

		var req updatePostReq
		if err := c.BodyParser(&req); err != nil {
			return plathttp.Fail(c, fiber.StatusBadRequest, "INVALID_FIELDS", "Invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return plathttp.Fail(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
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

		p, err := posts.Update(ctx, id, req.Title, req.Description)
		if err != nil {
			return failDomain(c, log, err)
		}
		return plathttp.OK(c, fiber.StatusOK, fiber.Map{
			"message": "Post updated successfully",
			"data":    postJSON(p),
		})
	}
}
