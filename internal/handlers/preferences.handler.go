package handlers

import (
	"pomodo/internal/app"
	"pomodo/internal/handlers/middleware"
	"pomodo/internal/logger"

	preferencesController "pomodo/internal/controllers/preferences"

	"github.com/gofiber/fiber/v2"
)

type PreferencesHandler struct {
	Handler
	preferencesController preferencesController.PreferencesControllerInterface
}

func NewPreferencesHandler(app app.App, router fiber.Router) *PreferencesHandler {
	log := logger.New("handlers").File("preferences_handler")
	return &PreferencesHandler{
		preferencesController: app.PreferencesController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *PreferencesHandler) Register() {
	preferences := h.router.Group("/preferences", h.middleware.RequireAuth())

	preferences.Get("/", h.get)
	preferences.Put("/", h.update)
}

func (h *PreferencesHandler) get(c *fiber.Ctx) error {
	user := middleware.GetUser(c)

	preference, err := h.preferencesController.Get(c.UserContext(), user)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"preferences": preference,
	})
}

func (h *PreferencesHandler) update(c *fiber.Ctx) error {
	log := h.log.Function("update")
	user := middleware.GetUser(c)

	var req preferencesController.UpdatePreferencesRequest
	if err := c.BodyParser(&req); err != nil {
		log.Info("failed to parse preferences request", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	preference, err := h.preferencesController.Update(c.UserContext(), user, req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message":     "Preferences updated successfully",
		"preferences": preference,
	})
}
