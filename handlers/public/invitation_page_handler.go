package public

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"undangan.link/configs/configslog"
	"undangan.link/services"
)

// InvitationPageHandler serves the guest-facing invitation pages.
type InvitationPageHandler struct {
	invitationService services.IInvitationService
	visitorService    services.IVisitorService
}

// NewInvitationPageHandler builds the handler with the default services.
func NewInvitationPageHandler() *InvitationPageHandler {
	return &InvitationPageHandler{
		invitationService: services.NewInvitationService(),
		visitorService:    services.NewVisitorService(),
	}
}

// ShowInvitation handles GET /u/:slug. It resolves the published
// invitation, records the visit (which also bumps the view counter) and
// renders the page. Unknown, unpublished and expired slugs all land on
// the same 404 page.
func (h *InvitationPageHandler) ShowInvitation(c *fiber.Ctx) error {
	slug := c.Params("slug")
	ctx := c.UserContext()

	invitation, err := h.invitationService.GetPublishedForDisplay(ctx, slug)
	if err != nil {
		configslog.Log.Error("ShowInvitation: lookup failed", zap.String("slug", slug), zap.Error(err))
		return h.renderError(c, "Halaman tidak dapat dimuat.")
	}
	if invitation == nil {
		return h.renderNotFound(c, "Undangan tidak ditemukan.")
	}

	var referrer *string
	if ref := c.Get(fiber.HeaderReferer); ref != "" {
		referrer = &ref
	}
	if _, err := h.visitorService.LogVisitor(ctx, invitation.ID, c.IP(), c.Get(fiber.HeaderUserAgent), referrer); err != nil {
		// The page still renders when the visit cannot be recorded.
		configslog.Log.Error("ShowInvitation: visitor log failed", zap.Uint("invitationID", invitation.ID), zap.Error(err))
	}

	return c.Render("public/invitation", fiber.Map{
		"Title":      invitation.Title,
		"Invitation": invitation,
	}, "layouts/main")
}

// renderNotFound renders the standard 404 page.
func (h *InvitationPageHandler) renderNotFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{
		"Title":   "Tidak Ditemukan",
		"Message": message,
	}, "layouts/main")
}

// renderError renders the standard 500 page.
func (h *InvitationPageHandler) renderError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).Render("errors/500", fiber.Map{
		"Title":   "Terjadi Kesalahan",
		"Message": message,
	}, "layouts/main")
}
