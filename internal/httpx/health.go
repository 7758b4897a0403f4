package httpx

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler reports liveness and the seconds since started.
func HealthHandler(started time.Time) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"uptime":    time.Since(started).Seconds(),
		})
	}
}
