package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupRoutes wires the shared middleware and all route groups.
func SetupRoutes(app *fiber.App) {
	app.Use(recoverMiddleware.New())
	app.Use(logger.New())

	registerAuthRoutes(app)
	registerUserRoutes(app)
	registerTemplateRoutes(app)
	registerInvitationRoutes(app)
	registerEngagementRoutes(app)
	registerPaymentRoutes(app)
	registerStatsRoutes(app)

	registerPublicRoutes(app)

	app.Use(notFoundHandler)
}

// notFoundHandler answers JSON for API clients and the error view for
// browsers.
func notFoundHandler(c *fiber.Ctx) error {
	accepts := c.Accepts("application/json", "text/html")
	switch accepts {
	case "application/json":
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "resource not found"})
	default:
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{
			"Title":   "Tidak Ditemukan",
			"Message": "Halaman yang Anda cari tidak ada.",
		}, "layouts/main")
	}
}
