package routes

import (
	"github.com/gofiber/fiber/v2"

	"undangan.link/handlers/api"
	"undangan.link/middlewares"
)

func registerTemplateRoutes(app *fiber.App) {
	templateHandler := api.NewTemplateHandler()
	templateGroup := app.Group("/api/templates")

	// Browsing the catalog is public; adding to it is not.
	templateGroup.Get("/", templateHandler.ListTemplates)
	templateGroup.Get("/category/:category", templateHandler.ListTemplatesByCategory)
	templateGroup.Get("/:id", templateHandler.GetTemplate)
	templateGroup.Post("/", middlewares.AuthMiddleware, templateHandler.CreateTemplate)
}
