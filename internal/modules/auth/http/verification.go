package http

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ermanaknc/auth-api/internal/modules/auth/domain"
	"github.com/ermanaknc/auth-api/internal/modules/auth/service"
	plathttp "github.com/ermanaknc/auth-api/internal/platform/http"
)

type sendCodeReq struct {
	Email string `json:"email" validate:"required,email,min=5,max=60"`
}

type acceptCodeReq struct {
	Email        string `json:"email" validate:"required,email,min=5,max=60"`
	ProvidedCode string `json:"provided_code" validate:"required,len=6,numeric"`
}

func SendVerificationCodeHandler(codes *service.CodeService, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req sendCodeReq
		if err := c.BodyParser(&req); err != nil {
			return plathttp.Fail(c, fiber.StatusBadRequest, "INVALID_FIELDS", "Invalid request body")
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if err := validate.Struct(req); err != nil {
			return plathttp.Fail(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), 15*time.Second)
		defer cancel()

		if err := codes.Issue(ctx, req.Email, domain.PurposeVerification); err != nil {
			return failDomain(c, log, err)
		}
		return plathttp.OK(c, fiber.StatusOK, fiber.Map{"message": "Verification code sent successfully"})
	}
}

func VerifyVerificationCodeHandler(codes *service.CodeService, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req acceptCodeReq
		if err := c.BodyParser(&req); err != nil {
			return plathttp.Fail(c, fiber.StatusBadRequest, "INVALID_FIELDS", "Invalid request body")
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		req.ProvidedCode = strings.TrimSpace(req.ProvidedCode)
		if err := validate.Struct(req); err != nil {
			return plathttp.Fail(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
		defer cancel()

		if err := codes.ConsumeVerification(ctx, req.Email, req.ProvidedCode); err != nil {
			return failDomain(c, log, err)
		}
		return plathttp.OK(c, fiber.StatusOK, fiber.Map{"message": "User verified successfully"})
	}
}
