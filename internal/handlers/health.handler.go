package handlers

import (
	"time"

	"pomodo/config"

	"github.com/gofiber/fiber/v2"
)

func HealthHandler(router fiber.Router, config config.Config) {
	router.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"message":   "Pomodoro API is running",
			"version":   config.GeneralVersion,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
}
