package routes

import (
	"github.com/gofiber/fiber/v2"

	publicHandlers "undangan.link/handlers/public"
)

// registerPublicRoutes serves the guest-facing invitation pages.
func registerPublicRoutes(app *fiber.App) {
	pageHandler := publicHandlers.NewInvitationPageHandler()

	app.Get("/u/:slug", pageHandler.ShowInvitation)
}
