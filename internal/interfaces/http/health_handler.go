package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger dependencia verificable por /health (pool PostgreSQL, almacén de carritos).
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health responde 200 si todas las dependencias responden, 503 si alguna falla.
func Health(service string, deps map[string]Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		checks := make(map[string]string, len(deps))
		status := fiber.StatusOK
		for name, d := range deps {
			if err := d.Ping(ctx); err != nil {
				checks[name] = "down"
				status = fiber.StatusServiceUnavailable
				continue
			}
			checks[name] = "up"
		}
		state := "ok"
		if status != fiber.StatusOK {
			state = "degraded"
		}
		return c.Status(status).JSON(fiber.Map{"status": state, "service": service, "checks": checks})
	}
}
