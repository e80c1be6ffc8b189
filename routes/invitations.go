package routes

import (
	"github.com/gofiber/fiber/v2"

	"undangan.link/handlers/api"
	"undangan.link/middlewares"
)

func registerInvitationRoutes(app *fiber.App) {
	invitationHandler := api.NewInvitationHandler()
	rsvpHandler := api.NewRSVPHandler()
	guestbookHandler := api.NewGuestbookHandler()

	invitationGroup := app.Group("/api/invitations")

	// Reads resolve anonymously to published rows; a bearer token widens
	// visibility to the caller's own (or, for super admins, all) rows.
	invitationGroup.Get("/", middlewares.OptionalAuthMiddleware, invitationHandler.ListInvitations)
	invitationGroup.Get("/check-slug/:slug", invitationHandler.CheckSlug)
	invitationGroup.Get("/slug/:slug", invitationHandler.GetBySlug)
	invitationGroup.Get("/:id", middlewares.OptionalAuthMiddleware, invitationHandler.GetByID)
	invitationGroup.Get("/:id/guestbooks", middlewares.OptionalAuthMiddleware, guestbookHandler.ListGuestbook)

	invitationGroup.Post("/", middlewares.AuthMiddleware, invitationHandler.CreateInvitation)
	invitationGroup.Put("/:id", middlewares.AuthMiddleware, invitationHandler.UpdateInvitation)
	invitationGroup.Post("/:id/publish", middlewares.AuthMiddleware, invitationHandler.PublishInvitation)
	invitationGroup.Delete("/:id", middlewares.AuthMiddleware, invitationHandler.DeleteInvitation)

	invitationGroup.Get("/:id/rsvps", middlewares.AuthMiddleware, rsvpHandler.ListRSVPs)
	invitationGroup.Get("/:id/rsvps/stats", middlewares.AuthMiddleware, rsvpHandler.RSVPStats)
}
