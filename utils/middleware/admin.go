package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// AdminAuditLog writes one audit entry per admin action once the handler has run.
// It expects the auth middleware to have stored the caller.
func AdminAuditLog(log zerolog.Logger, action, resource string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		adminID, ok := GetUserID(c)
		if !ok {
			return c.Next()
		}

		resourceID := c.Params("id")

		err := c.Next()

		event := log.Info()
		status := c.Response().StatusCode()
		if err != nil || status >= fiber.StatusBadRequest {
			event = log.Warn().Err(err)
		}
		event.
			Str("audit", action).
			Str("resource", resource).
			Str("resource_id", resourceID).
			Uint("admin_id", adminID).
			Int("status", status).
			Str("ip", c.IP()).
			Str("user_agent", c.Get(fiber.HeaderUserAgent)).
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Msg(c.Method() + " " + c.Path())

		return err
	}
}
