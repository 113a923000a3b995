package api

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRouter(app *fiber.App, handler *GeminiHandler) {
	// Middleware
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"version": os.Getenv("APP_VERSION"),
		})
	})

	grp := app.Group("/api")

	// Pre-flight support: OPTIONS answers 200 with an empty body, every
	// other non-POST method gets fiber's 405.
	grp.Options("/gemini", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	grp.Post("/gemini", handler.HandleGemini)

	grp.Post("/content", handler.HandleContent)
}
