package routes

import (
	"github.com/gofiber/fiber/v2"

	"undangan.link/handlers/api"
)

func registerAuthRoutes(app *fiber.App) {
	authHandler := api.NewAuthHandler()
	authGroup := app.Group("/api/auth")

	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
}
