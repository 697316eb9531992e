package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ermanaknc/auth-api/internal/modules/posts/domain"
	plathttp "github.com/ermanaknc/auth-api/internal/platform/http"
)

func ListPostsHandler(posts domain.PostRepo, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := c.QueryInt("page", 1)

		ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
		defer cancel()

		result, err := posts.List(ctx, page, postsPerPage)
		if err != nil {
			return failDomain(c, log, err)
		}

		data := make([]fiber.Map, 0, len(result))
		for i := range result {
			data = append(data, postJSON(&result[i]))
		}
		return plathttp.OK(c, fiber.StatusOK, fiber.Map{
			"message": "Posts fetched successfully",
			"data":    data,
		})
	}
}

func SinglePostHandler(posts domain.PostRepo, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Query("_id")
		if id == "" {
			return plathttp.Fail(c, fiber.StatusBadRequest, "INVALID_FIELDS", "Post id is required")
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
		defer cancel()

		p, err := posts.GetByID(ctx, id)
		if err != nil {
			return failDomain(c, log, err)
		}
		return plathttp.OK(c, fiber.StatusOK, fiber.Map{
			"message": "Post fetched successfully",
			"data":    postJSON(p),
		})
	}
}
