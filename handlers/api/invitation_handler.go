package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"undangan.link/models"
	"undangan.link/services"
)

// InvitationHandler covers the invitation lifecycle.
type InvitationHandler struct {
	invitationService services.IInvitationService
}

// NewInvitationHandler builds the handler with the default service.
func NewInvitationHandler() *InvitationHandler {
	return &InvitationHandler{invitationService: services.NewInvitationService()}
}

// callerID resolves the authenticated user id set by the bearer
// middleware, nil on public routes.
func callerID(c *fiber.Ctx) *uint {
	if id, ok := c.Locals("userID").(uint); ok && id != 0 {
		return &id
	}
	return nil
}

type createInvitationRequest struct {
	UserID      uint       `json:"user_id" validate:"required,gt=0"`
	TemplateID  uint       `json:"template_id" validate:"required,gt=0"`
	Title       string     `json:"title" validate:"required,max=255"`
	Slug        string     `json:"slug" validate:"required,min=3,max=255"`
	WeddingData string     `json:"wedding_data" validate:"required"`
	CustomCSS   *string    `json:"custom_css,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// CreateInvitation (POST /api/invitations) creates a draft.
func (h *InvitationHandler) CreateInvitation(c *fiber.Ctx) error {
	var req createInvitationRequest
	if !parseBody(c, &req) {
		return nil
	}

	invitation, err := h.invitationService.CreateInvitation(c.UserContext(), services.CreateInvitationInput{
		UserID:      req.UserID,
		TemplateID:  req.TemplateID,
		Title:       req.Title,
		Slug:        req.Slug,
		WeddingData: req.WeddingData,
		CustomCSS:   req.CustomCSS,
		ExpiresAt:   req.ExpiresAt,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusCreated, invitation)
}

// CheckSlug (GET /api/invitations/check-slug/:slug) reports availability.
func (h *InvitationHandler) CheckSlug(c *fiber.Ctx) error {
	available, err := h.invitationService.CheckSlugAvailability(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, fiber.Map{"available": available})
}

// ListInvitations (GET /api/invitations) is the gallery for anonymous
// callers and the role-scoped list for authenticated ones.
func (h *InvitationHandler) ListInvitations(c *fiber.Ctx) error {
	invitations, err := h.invitationService.GetInvitations(c.UserContext(), callerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, invitations)
}

// GetBySlug (GET /api/invitations/slug/:slug) resolves a published
// invitation and counts the view. Unknown or unpublished slugs answer
// null.
func (h *InvitationHandler) GetBySlug(c *fiber.Ctx) error {
	invitation, err := h.invitationService.GetInvitationBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	if invitation == nil {
		return respondData(c, fiber.StatusOK, nil)
	}
	return respondData(c, fiber.StatusOK, invitation)
}

// GetByID (GET /api/invitations/:id) applies the shared visibility rule;
// an invisible invitation answers null rather than confirming existence.
func (h *InvitationHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return nil
	}
	invitation, err := h.invitationService.GetInvitationByID(c.UserContext(), id, callerID(c))
	if err != nil {
		return respondError(c, err)
	}
	if invitation == nil {
		return respondData(c, fiber.StatusOK, nil)
	}
	return respondData(c, fiber.StatusOK, invitation)
}

type updateInvitationRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,max=255"`
	Slug        *string    `json:"slug,omitempty" validate:"omitempty,min=3,max=255"`
	WeddingData *string    `json:"wedding_data,omitempty"`
	CustomCSS   *string    `json:"custom_css,omitempty"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=draft published unpublished archived"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// UpdateInvitation (PUT /api/invitations/:id) applies a partial update.
func (h *InvitationHandler) UpdateInvitation(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return nil
	}
	var req updateInvitationRequest
	if !parseBody(c, &req) {
		return nil
	}

	var status *models.InvitationStatus
	if req.Status != nil {
		s := models.InvitationStatus(*req.Status)
		status = &s
	}

	invitation, err := h.invitationService.UpdateInvitation(c.UserContext(), services.UpdateInvitationInput{
		ID:          id,
		Title:       req.Title,
		Slug:        req.Slug,
		WeddingData: req.WeddingData,
		CustomCSS:   req.CustomCSS,
		Status:      status,
		ExpiresAt:   req.ExpiresAt,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, invitation)
}

// PublishInvitation (POST /api/invitations/:id/publish) publishes after
// verifying a completed payment exists.
func (h *InvitationHandler) PublishInvitation(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return nil
	}
	invitation, err := h.invitationService.PublishInvitation(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, invitation)
}

// DeleteInvitation (DELETE /api/invitations/:id) cascades the delete for
// the authenticated owner.
func (h *InvitationHandler) DeleteInvitation(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return nil
	}
	caller := callerID(c)
	if caller == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}

	if err := h.invitationService.DeleteInvitation(c.UserContext(), id, *caller); err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, fiber.Map{"deleted": true})
}
