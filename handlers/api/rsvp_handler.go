package api

import (
	"github.com/gofiber/fiber/v2"

	"undangan.link/models"
	"undangan.link/services"
)

// RSVPHandler covers guest responses and their owner-facing reads.
type RSVPHandler struct {
	rsvpService services.IRSVPService
}

// NewRSVPHandler builds the handler with the default service.
func NewRSVPHandler() *RSVPHandler {
	return &RSVPHandler{rsvpService: services.NewRSVPService()}
}

type createRSVPRequest struct {
	InvitationID uint    `json:"invitation_id" validate:"required,gt=0"`
	GuestName    string  `json:"guest_name" validate:"required,max=255"`
	GuestEmail   *string `json:"guest_email,omitempty" validate:"omitempty,email"`
	GuestPhone   *string `json:"guest_phone,omitempty" validate:"omitempty,max=20"`
	Status       string  `json:"status" validate:"required,oneof=attending not_attending maybe"`
	GuestCount   int     `json:"guest_count" validate:"required,gte=1"`
	Message      *string `json:"message,omitempty"`
}

// CreateRSVP (POST /api/rsvps) records a guest response on a published
// invitation. Public, no authentication.
func (h *RSVPHandler) CreateRSVP(c *fiber.Ctx) error {
	var req createRSVPRequest
	if !parseBody(c, &req) {
		return nil
	}

	rsvp, err := h.rsvpService.CreateRSVP(c.UserContext(), services.CreateRSVPInput{
		InvitationID: req.InvitationID,
		GuestName:    req.GuestName,
		GuestEmail:   req.GuestEmail,
		GuestPhone:   req.GuestPhone,
		Status:       models.RSVPStatus(req.Status),
		GuestCount:   req.GuestCount,
		Message:      req.Message,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusCreated, rsvp)
}

// ListRSVPs (GET /api/invitations/:id/rsvps) lists responses for the
// invitation owner.
func (h *RSVPHandler) ListRSVPs(c *fiber.Ctx) error {
	invitationID, ok := paramID(c, "id")
	if !ok {
		return nil
	}
	caller := callerID(c)
	if caller == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}

	rsvps, err := h.rsvpService.GetRSVPsByInvitation(c.UserContext(), invitationID, *caller)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, rsvps)
}

// RSVPStats (GET /api/invitations/:id/rsvps/stats) aggregates responses
// by status for the invitation owner.
func (h *RSVPHandler) RSVPStats(c *fiber.Ctx) error {
	invitationID, ok := paramID(c, "id")
	if !ok {
		return nil
	}
	caller := callerID(c)
	if caller == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}

	stats, err := h.rsvpService.GetRSVPStats(c.UserContext(), invitationID, *caller)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, stats)
}
