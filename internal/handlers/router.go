package handlers

import (
	"pomodo/internal/app"
	"pomodo/internal/handlers/middleware"
	"pomodo/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) (err error) {
	api := router.Group("/api")
	HealthHandler(api, app.Config)
	NewAuthHandler(*app, api).Register()
	NewPreferencesHandler(*app, api).Register()
	NewPresetsHandler(*app, api).Register()

	return nil
}
