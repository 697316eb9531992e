package http

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ermanaknc/auth-api/internal/modules/auth/domain"
	"github.com/ermanaknc/auth-api/internal/modules/auth/infra"
	pg "github.com/ermanaknc/auth-api/internal/modules/auth/infra/pg"
	"github.com/ermanaknc/auth-api/internal/modules/auth/service"
	plathttp "github.com/ermanaknc/auth-api/internal/platform/http"
	"github.com/ermanaknc/auth-api/internal/platform/security"
)

// Module wires up dependencies for the auth HTTP module.
type Module struct {
	users  domain.UserRepo
	codes  *service.CodeService
	jwtMgr *security.JWTManager
	log    *slog.Logger
}

type Options struct {
	Users      domain.UserRepo
	Sender     service.CodeSender
	JWTSecret  string
	HMACSecret string
	AccessTTL  time.Duration
	CodeTTL    time.Duration
	Logger     *slog.Logger
}

func NewModule(opts Options) *Module {
	if opts.Users == nil {
		opts.Users = infra.NewMemUserRepo()
	}
	if opts.AccessTTL == 0 {
		opts.AccessTTL = 8 * time.Hour
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	hasher := security.NewCodeHasher(opts.HMACSecret)
	return &Module{
		users:  opts.Users,
		codes:  service.NewCodeService(opts.Users, opts.Sender, hasher, opts.CodeTTL),
		jwtMgr: security.NewJWTManager(opts.JWTSecret, opts.AccessTTL),
		log:    opts.Logger,
	}
}

// NewModulePG creates the module backed by postgres repos.
func NewModulePG(db pg.DB, opts Options) *Module {
	opts.Users = pg.NewUserRepo(db)
	return NewModule(opts)
}

func (m *Module) Register(r fiber.Router) {
	auth := r.Group("/auth")

	auth.Post("/signup", SignUpHandler(m.users, m.log))
	auth.Post("/signin", SignInHandler(m.users, m.jwtMgr, m.log))
	auth.Patch("/send-forgot-password-code", SendForgotPasswordCodeHandler(m.codes, m.log))
	auth.Patch("/verify-forgot-password-code", VerifyForgotPasswordCodeHandler(m.codes, m.log))

	protected := auth.Group("", plathttp.BearerAuth(m.jwtMgr))
	protected.Post("/signout", SignOutHandler())
	protected.Patch("/send-verification-code", SendVerificationCodeHandler(m.codes, m.log))
	protected.Patch("/verify-verification-code", VerifyVerificationCodeHandler(m.codes, m.log))
	protected.Patch("/change-password", ChangePasswordHandler(m.users, m.log))
}

// JWTManager exposes the module's token manager so sibling modules can
// share the same bearer middleware.
func (m *Module) JWTManager() *security.JWTManager { return m.jwtMgr }
