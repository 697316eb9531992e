package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ermanaknc/auth-api/internal/modules/posts/domain"
	plathttp "github.com/ermanaknc/auth-api/internal/platform/http"
)

type createPostReq struct {
	Title       string `json:"title" validate:"required,min=3,max=50"`
	Description string `json:"description" validate:"required,min=10,max=500"`
}

func CreatePostHandler(posts domain.PostRepo, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals(plathttp.LocalUserID).(string)

		var req createPostReq
		if err := c.BodyParser(&req); err != nil {
			return plathttp.Fail(c, fiber.StatusBadRequest, "INVALID_FIELDS", "Invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return plathttp.Fail(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
		defer cancel()

		p, err := posts.Create(ctx, domain.CreatePostParams{
			Title:       req.Title,
			Description: req.Description,
			UserID:      userID,
		})
		if err != nil {
			return failDomain(c, log, err)
		}
		return plathttp.OK(c, fiber.StatusCreated, fiber.Map{
			"message": "Post created successfully",
			"data":    postJSON(p),
		})
	}
}
