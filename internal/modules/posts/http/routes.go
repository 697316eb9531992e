package http

import (
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/ermanaknc/auth-api/internal/modules/posts/domain"
	"github.com/ermanaknc/auth-api/internal/modules/posts/infra"
	pg "github.com/ermanaknc/auth-api/internal/modules/posts/infra/pg"
	plathttp "github.com/ermanaknc/auth-api/internal/platform/http"
	"github.com/ermanaknc/auth-api/internal/platform/security"
)

var validate = validator.New()

// postsPerPage matches the public listing contract.
const postsPerPage = 10

type Module struct {
	posts  domain.PostRepo
	jwtMgr *security.JWTManager
	log    *slog.Logger
}

func NewModule(posts domain.PostRepo, jwtMgr *security.JWTManager, log *slog.Logger) *Module {
	if posts == nil {
		posts = infra.NewMemPostRepo()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Module{posts: posts, jwtMgr: jwtMgr, log: log}
}

func NewModulePG(db pg.DB, jwtMgr *security.JWTManager, log *slog.Logger) *Module {
	return NewModule(pg.NewPostRepo(db), jwtMgr, log)
}

func (m *Module) Register(r fiber.Router) {
	posts := r.Group("/posts")

	posts.Get("/all-posts", ListPostsHandler(m.posts, m.log))
	posts.Get("/single-post", SinglePostHandler(m.posts, m.log))

	protected := posts.Group("", plathttp.BearerAuth(m.jwtMgr))
	protected.Post("/create-post", CreatePostHandler(m.posts, m.log))
	protected.Put("/update-post", UpdatePostHandler(m.posts, m.log))
	protected.Delete("/delete-post", DeletePostHandler(m.posts, m.log))
}

func failDomain(c *fiber.Ctx, log *slog.Logger, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return plathttp.Fail(c, fiber.StatusNotFound, "NOT_FOUND", "Post not found")
	case errors.Is(err, domain.ErrForbidden):
		return plathttp.Fail(c, fiber.StatusForbidden, "FORBIDDEN", "Not the owner of this post")
	default:
		log.Error("posts operation failed", "path", c.Path(), "err", err)
		return plathttp.Fail(c, fiber.StatusInternalServerError, "SERVER_ERROR", "Server error")
	}
}

func postJSON(p *domain.Post) fiber.Map {
	return fiber.Map{
		"id":          p.ID,
		"title":       p.Title,
		"description": p.Description,
		"user_id":     p.UserID,
		"user_email":  p.UserEmail,
		"created_at":  p.CreatedAt,
		"updated_at":  p.UpdatedAt,
	}
}
