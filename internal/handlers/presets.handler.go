package handlers

import (
	"pomodo/internal/app"
	"pomodo/internal/handlers/middleware"
	"pomodo/internal/logger"

	presetsController "pomodo/internal/controllers/presets"

	"github.com/gofiber/fiber/v2"
)

type PresetsHandler struct {
	Handler
	presetsController presetsController.PresetsControllerInterface
}

func NewPresetsHandler(app app.App, router fiber.Router) *PresetsHandler {
	log := logger.New("handlers").File("presets_handler")
	return &PresetsHandler{
		presetsController: app.PresetsController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *PresetsHandler) Register() {
	presets := h.router.Group("/presets", h.middleware.RequireAuth())

	presets.Get("/", h.list)
	presets.Post("/", h.create)
	presets.Put("/:id", h.update)
	presets.Delete("/:id", h.delete)
}

func (h *PresetsHandler) list(c *fiber.Ctx) error {
	user := middleware.GetUser(c)

	presets, err := h.presetsController.List(c.UserContext(), user)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"presets": presets,
	})
}

func (h *PresetsHandler) create(c *fiber.Ctx) error {
	log := h.log.Function("create")
	user := middleware.GetUser(c)

	var req presetsController.CreatePresetRequest
	if err := c.BodyParser(&req); err != nil {
		log.Info("failed to parse preset request", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	preset, err := h.presetsController.Create(c.UserContext(), user, req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Preset created successfully",
		"preset":  preset,
	})
}

func (h *PresetsHandler) update(c *fiber.Ctx) error {
	log := h.log.Function("update")
	user := middleware.GetUser(c)

	var req presetsController.UpdatePresetRequest
	if err := c.BodyParser(&req); err != nil {
		log.Info("failed to parse preset request", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	preset, err := h.presetsController.Update(c.UserContext(), user, c.Params("id"), req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Preset updated successfully",
		"preset":  preset,
	})
}

func (h *PresetsHandler) delete(c *fiber.Ctx) error {
	user := middleware.GetUser(c)

	if err := h.presetsController.Delete(c.UserContext(), user, c.Params("id")); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Preset deleted successfully",
	})
}
