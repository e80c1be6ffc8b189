// Package api holds the JSON procedure handlers. Every handler follows
// the same shape: parse and validate the payload, call the service, map
// the typed service error to a status code.
package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"undangan.link/configs/configslog"
	"undangan.link/services"
)

var validate = validator.New()

// parseBody binds and validates a JSON payload. A false return means the
// error response has already been written.
func parseBody(c *fiber.Ctx, dst interface{}) bool {
	if err := c.BodyParser(dst); err != nil {
		configslog.Log.Warn("request body parse failed", zap.String("path", c.Path()), zap.Error(err))
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		return false
	}
	if err := validate.Struct(dst); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation failed: " + err.Error()})
		return false
	}
	return true
}

// respondData writes the success envelope.
func respondData(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{"data": data})
}

// respondError translates a service error into a status code. The
// taxonomy: conflicts 409, validation 400, business rules 422, ownership
// 403, lookups 404, gateway trouble 502, everything else 500.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	switch {
	case errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrSlugTaken),
		errors.Is(err, services.ErrGuestAlreadyResponded):
		status = fiber.StatusConflict

	case errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrInvalidCategory),
		errors.Is(err, services.ErrInvalidTemplateData),
		errors.Is(err, services.ErrInvalidWeddingData),
		errors.Is(err, services.ErrInvalidRSVPStatus),
		errors.Is(err, services.ErrInvalidGuestCount),
		errors.Is(err, services.ErrOwnerNotActive),
		errors.Is(err, services.ErrTemplateUnavailable):
		status = fiber.StatusBadRequest

	case errors.Is(err, services.ErrInvitationNotPublished),
		errors.Is(err, services.ErrInvitationExpired),
		errors.Is(err, services.ErrGuestbookNotPublished),
		errors.Is(err, services.ErrNoCompletedPayment):
		status = fiber.StatusUnprocessableEntity

	case errors.Is(err, services.ErrRSVPAccessDenied),
		errors.Is(err, services.ErrGuestbookNotOwner),
		errors.Is(err, services.ErrInvitationNotOwnedByUser):
		status = fiber.StatusForbidden

	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrOwnerNotFound),
		errors.Is(err, services.ErrTemplateNotFound),
		errors.Is(err, services.ErrInvitationNotFound),
		errors.Is(err, services.ErrInvitationAccessDenied),
		errors.Is(err, services.ErrRSVPInvitationNotFound),
		errors.Is(err, services.ErrRSVPCallerNotFound),
		errors.Is(err, services.ErrGuestbookInvitationNotFound),
		errors.Is(err, services.ErrGuestbookEntryNotFound),
		errors.Is(err, services.ErrPaymentNotFound),
		errors.Is(err, services.ErrPayerNotFound),
		errors.Is(err, services.ErrPaidInvitationNotFound),
		errors.Is(err, services.ErrVisitInvitationNotFound),
		errors.Is(err, services.ErrStatsUserNotFound):
		status = fiber.StatusNotFound

	case errors.Is(err, services.ErrChargeFailed):
		status = fiber.StatusBadGateway
	}

	if status == fiber.StatusInternalServerError {
		configslog.Log.Error("unhandled service error", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(status).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// paramID reads a positive integer path parameter.
func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}
