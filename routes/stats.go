package routes

import (
	"github.com/gofiber/fiber/v2"

	"undangan.link/handlers/api"
	"undangan.link/middlewares"
)

func registerStatsRoutes(app *fiber.App) {
	visitorHandler := api.NewVisitorHandler()

	// Visit logging is public so the invitation page can report itself.
	app.Post("/api/visitors", visitorHandler.LogVisitor)

	statsGroup := app.Group("/api/stats")
	statsGroup.Use(middlewares.AuthMiddleware)
	statsGroup.Get("/visitors", visitorHandler.VisitorStats)
	statsGroup.Get("/users", visitorHandler.UserStats)
	statsGroup.Get("/invitations", visitorHandler.InvitationStats)
}
