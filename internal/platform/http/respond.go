package http

import "github.com/gofiber/fiber/v2"

// Fail writes the stable error envelope. Messages are fixed strings per
// error code; only SERVER_ERROR logging may carry the underlying cause,
// and that never goes to the client.
func Fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success":    false,
		"error_code": code,
		"message":    message,
	})
}

func OK(c *fiber.Ctx, status int, body fiber.Map) error {
	body["success"] = true
	return c.Status(status).JSON(body)
}
