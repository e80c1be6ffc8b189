package routes

import (
	"github.com/gofiber/fiber/v2"

	"undangan.link/handlers/api"
	"undangan.link/middlewares"
)

func registerPaymentRoutes(app *fiber.App) {
	paymentHandler := api.NewPaymentHandler()
	paymentGroup := app.Group("/api/payments")

	// The provider webhook authenticates by re-verifying the order id
	// against the gateway, not by bearer token.
	paymentGroup.Post("/notification", paymentHandler.PaymentNotification)

	paymentGroup.Post("/", middlewares.AuthMiddleware, paymentHandler.CreatePayment)
	paymentGroup.Post("/:id/process", middlewares.AuthMiddleware, paymentHandler.ProcessPayment)
}
