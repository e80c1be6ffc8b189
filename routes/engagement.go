package routes

import (
	"github.com/gofiber/fiber/v2"

	"undangan.link/handlers/api"
	"undangan.link/middlewares"
)

// registerEngagementRoutes covers the guest-submitted content: RSVPs and
// guestbook messages.
func registerEngagementRoutes(app *fiber.App) {
	rsvpHandler := api.NewRSVPHandler()
	guestbookHandler := api.NewGuestbookHandler()

	// Guests submit without an account.
	app.Post("/api/rsvps", rsvpHandler.CreateRSVP)
	app.Post("/api/guestbooks", guestbookHandler.CreateGuestbook)

	// Moderation belongs to the invitation owner.
	app.Post("/api/guestbooks/:id/approve", middlewares.AuthMiddleware, guestbookHandler.ApproveGuestbook)
	app.Delete("/api/guestbooks/:id", middlewares.AuthMiddleware, guestbookHandler.DeleteGuestbook)
}
