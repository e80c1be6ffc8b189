package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"undangan.link/configs"
	"undangan.link/utils"
)

// AuthMiddleware requires a valid bearer token and stores the caller's
// id and role in Locals for the handlers.
func AuthMiddleware(c *fiber.Ctx) error {
	claims, ok := bearerClaims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}
	c.Locals("userID", claims.UserID)
	c.Locals("userRole", claims.Role)
	return c.Next()
}

// OptionalAuthMiddleware populates Locals when a valid bearer token is
// present and lets anonymous requests through untouched.
func OptionalAuthMiddleware(c *fiber.Ctx) error {
	if claims, ok := bearerClaims(c); ok {
		c.Locals("userID", claims.UserID)
		c.Locals("userRole", claims.Role)
	}
	return c.Next()
}

func bearerClaims(c *fiber.Ctx) (*utils.Claims, bool) {
	auth := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(auth, "Bearer ") {
		return nil, false
	}
	raw := strings.TrimPrefix(auth, "Bearer ")
	claims, err := utils.ParseAccessToken(configs.JWTSecret(), raw)
	if err != nil {
		return nil, false
	}
	return claims, true
}
