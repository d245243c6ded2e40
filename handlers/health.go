package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexpertia/marketplace-api/database"
	"github.com/nexpertia/marketplace-api/utils/response"
)

// HandleCheckHealth reports 503 while the database is unreachable
func HandleCheckHealth(c *fiber.Ctx, store database.Storage) error {
	if err := store.HealthCheck(); err != nil {
		return response.ServiceUnavailable(c, "Database unavailable")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
