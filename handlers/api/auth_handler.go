package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"undangan.link/configs"
	"undangan.link/models"
	"undangan.link/services"
	"undangan.link/utils"
)

// AuthHandler covers registration and login.
type AuthHandler struct {
	userService services.IUserService
}

// NewAuthHandler builds the handler with the default service.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{userService: services.NewUserService()}
}

type registerRequest struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Username string  `json:"username" validate:"required,min=3,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Password string  `json:"password" validate:"required,min=8"`
	Role     string  `json:"role" validate:"required,oneof=super_admin user_mitra user_customer"`
}

// Register (POST /api/auth/register) creates an account. Mitra accounts
// come back with status pending.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if !parseBody(c, &req) {
		return nil
	}

	user, err := h.userService.CreateUser(c.UserContext(), services.CreateUserInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     models.UserRole(req.Role),
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusCreated, user)
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login (POST /api/auth/login) authenticates and issues an access token.
// A credential mismatch is a 401, not an error blob; account status is
// not checked here.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if !parseBody(c, &req) {
		return nil
	}

	user, err := h.userService.AuthenticateUser(c.UserContext(), req.Username, req.Password, c.IP(), c.Get(fiber.HeaderUserAgent))
	if err != nil {
		return respondError(c, err)
	}
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid username or password"})
	}

	token, err := utils.NewAccessToken(configs.JWTSecret(), user.ID, string(user.Role), 24*time.Hour)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, fiber.Map{"user": user, "token": token})
}
