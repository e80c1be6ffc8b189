package api

import (
	"github.com/gofiber/fiber/v2"

	"undangan.link/services"
)

// GuestbookHandler covers guestbook messages and their moderation.
type GuestbookHandler struct {
	guestbookService services.IGuestbookService
}

// NewGuestbookHandler builds the handler with the default service.
func NewGuestbookHandler() *GuestbookHandler {
	return &GuestbookHandler{guestbookService: services.NewGuestbookService()}
}

type createGuestbookRequest struct {
	InvitationID uint   `json:"invitation_id" validate:"required,gt=0"`
	GuestName    string `json:"guest_name" validate:"required,max=255"`
	Message      string `json:"message" validate:"required,max=2000"`
}

// CreateGuestbook (POST /api/guestbooks) posts a message on a published
// invitation. Messages that trip the moderation filter are stored
// unapproved.
func (h *GuestbookHandler) CreateGuestbook(c *fiber.Ctx) error {
	var req createGuestbookRequest
	if !parseBody(c, &req) {
		return nil
	}

	entry, err := h.guestbookService.CreateGuestbook(c.UserContext(), services.CreateGuestbookInput{
		InvitationID: req.InvitationID,
		GuestName:    req.GuestName,
		Message:      req.Message,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusCreated, entry)
}

// ListGuestbook (GET /api/invitations/:id/guestbooks) lists entries;
// include_unapproved=true adds held messages for the owner view.
func (h *GuestbookHandler) ListGuestbook(c *fiber.Ctx) error {
	invitationID, ok := paramID(c, "id")
	if !ok {
		return nil
	}
	includeUnapproved := c.QueryBool("include_unapproved", false)

	entries, err := h.guestbookService.GetGuestbookEntries(c.UserContext(), invitationID, includeUnapproved)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, entries)
}

// ApproveGuestbook (POST /api/guestbooks/:id/approve) releases a held
// message for the invitation owner.
func (h *GuestbookHandler) ApproveGuestbook(c *fiber.Ctx) error {
	entryID, ok := paramID(c, "id")
	if !ok {
		return nil
	}
	caller := callerID(c)
	if caller == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}

	entry, err := h.guestbookService.ApproveGuestbookEntry(c.UserContext(), entryID, *caller)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, entry)
}

// DeleteGuestbook (DELETE /api/guestbooks/:id) removes a message for the
// invitation owner.
func (h *GuestbookHandler) DeleteGuestbook(c *fiber.Ctx) error {
	entryID, ok := paramID(c, "id")
	if !ok {
		return nil
	}
	caller := callerID(c)
	if caller == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}

	if err := h.guestbookService.DeleteGuestbookEntry(c.UserContext(), entryID, *caller); err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, fiber.Map{"deleted": true})
}
