package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"undangan.link/repositories"
	"undangan.link/services"
)

// VisitorHandler covers visit logging and the aggregated statistics.
type VisitorHandler struct {
	visitorService services.IVisitorService
}

// NewVisitorHandler builds the handler with the default service.
func NewVisitorHandler() *VisitorHandler {
	return &VisitorHandler{visitorService: services.NewVisitorService()}
}

type logVisitorRequest struct {
	InvitationID uint    `json:"invitation_id" validate:"required,gt=0"`
	IPAddress    string  `json:"ip_address,omitempty"`
	UserAgent    string  `json:"user_agent,omitempty"`
	Referrer     *string `json:"referrer,omitempty"`
}

// LogVisitor (POST /api/visitors) records a page visit. IP and
// user-agent default to the request's own values when the body omits
// them.
func (h *VisitorHandler) LogVisitor(c *fiber.Ctx) error {
	var req logVisitorRequest
	if !parseBody(c, &req) {
		return nil
	}
	if req.IPAddress == "" {
		req.IPAddress = c.IP()
	}
	if req.UserAgent == "" {
		req.UserAgent = c.Get(fiber.HeaderUserAgent)
	}

	visitor, err := h.visitorService.LogVisitor(c.UserContext(), req.InvitationID, req.IPAddress, req.UserAgent, req.Referrer)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusCreated, visitor)
}

// VisitorStats (GET /api/stats/visitors) aggregates visits, optionally
// scoped by invitation_id and a from/to date range (RFC 3339).
func (h *VisitorHandler) VisitorStats(c *fiber.Ctx) error {
	query := repositories.VisitorStatsQuery{
		InvitationID: uint(c.QueryInt("invitation_id", 0)),
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid from date"})
		}
		query.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid to date"})
		}
		query.To = &t
	}

	stats, err := h.visitorService.GetVisitorStats(c.UserContext(), query)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, stats)
}

// UserStats (GET /api/stats/users) reports user totals by role and the
// pending-approval backlog.
func (h *VisitorHandler) UserStats(c *fiber.Ctx) error {
	stats, err := h.visitorService.GetUserStats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, stats)
}

// InvitationStats (GET /api/stats/invitations) reports invitation
// totals; user_id scopes to one owner, absent means platform-wide.
func (h *VisitorHandler) InvitationStats(c *fiber.Ctx) error {
	var userID *uint
	if raw := c.QueryInt("user_id", 0); raw > 0 {
		id := uint(raw)
		userID = &id
	}

	stats, err := h.visitorService.GetInvitationStats(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, stats)
}
