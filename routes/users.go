package routes

import (
	"github.com/gofiber/fiber/v2"

	"undangan.link/handlers/api"
	"undangan.link/middlewares"
)

func registerUserRoutes(app *fiber.App) {
	userHandler := api.NewUserHandler()
	paymentHandler := api.NewPaymentHandler()

	userGroup := app.Group("/api/users")
	userGroup.Use(middlewares.AuthMiddleware)

	userGroup.Get("/", userHandler.ListUsers)
	userGroup.Get("/pending", userHandler.ListPendingUsers)
	userGroup.Put("/:id", userHandler.UpdateUser)
	userGroup.Post("/:id/approve", userHandler.ApproveUser)
	userGroup.Get("/:id/payments", paymentHandler.ListPayments)
}
