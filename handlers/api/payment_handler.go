package api

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"undangan.link/services"
)

// PaymentHandler covers charges, settlement and the provider webhook.
type PaymentHandler struct {
	paymentService services.IPaymentService
}

// NewPaymentHandler builds the handler with the default service.
func NewPaymentHandler() *PaymentHandler {
	return &PaymentHandler{paymentService: services.NewPaymentService()}
}

type createPaymentRequest struct {
	UserID        uint   `json:"user_id" validate:"required,gt=0"`
	InvitationID  uint   `json:"invitation_id" validate:"required,gt=0"`
	Amount        int64  `json:"amount" validate:"required,gt=0"`
	Currency      string `json:"currency" validate:"required,len=3"`
	PaymentMethod string `json:"payment_method" validate:"required,max=50"`
}

// CreatePayment (POST /api/payments) opens a charge at the gateway and
// records the pending payment.
func (h *PaymentHandler) CreatePayment(c *fiber.Ctx) error {
	var req createPaymentRequest
	if !parseBody(c, &req) {
		return nil
	}

	result, err := h.paymentService.CreatePayment(c.UserContext(), services.CreatePaymentInput{
		UserID:        req.UserID,
		InvitationID:  req.InvitationID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusCreated, result)
}

type processPaymentRequest struct {
	Success bool            `json:"success"`
	Raw     json.RawMessage `json:"raw,omitempty"`
}

// ProcessPayment (POST /api/payments/:id/process) settles a pending
// payment from a gateway response delivered by the client.
func (h *PaymentHandler) ProcessPayment(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return nil
	}
	var req processPaymentRequest
	if !parseBody(c, &req) {
		return nil
	}

	payment, err := h.paymentService.ProcessPayment(c.UserContext(), id, services.GatewayResponse{
		Success: req.Success,
		Raw:     req.Raw,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, payment)
}

type paymentNotificationRequest struct {
	OrderID string `json:"order_id" validate:"required"`
}

// PaymentNotification (POST /api/payments/notification) is the provider
// webhook. The order id is re-verified against the gateway, the payload
// itself is never trusted.
func (h *PaymentHandler) PaymentNotification(c *fiber.Ctx) error {
	var req paymentNotificationRequest
	if !parseBody(c, &req) {
		return nil
	}

	payment, err := h.paymentService.HandleNotification(c.UserContext(), req.OrderID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, payment)
}

// ListPayments (GET /api/users/:id/payments) lists a user's payment
// history, newest first.
func (h *PaymentHandler) ListPayments(c *fiber.Ctx) error {
	userID, ok := paramID(c, "id")
	if !ok {
		return nil
	}
	payments, err := h.paymentService.GetPaymentsByUser(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, payments)
}
