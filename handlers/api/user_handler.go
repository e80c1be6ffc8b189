package api

import (
	"github.com/gofiber/fiber/v2"

	"undangan.link/pkg/queryparams"
	"undangan.link/services"
)

// UserHandler covers user administration.
type UserHandler struct {
	userService services.IUserService
}

// NewUserHandler builds the handler with the default service.
func NewUserHandler() *UserHandler {
	return &UserHandler{userService: services.NewUserService()}
}

// ListUsers (GET /api/users) returns one page of accounts. Supports
// page, per_page, sort_by, order_by and status query parameters.
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	params := queryparams.DefaultListParams("created_at")
	if err := c.QueryParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid query parameters"})
	}

	result, err := h.userService.GetUsers(c.UserContext(), params)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, result)
}

// ListPendingUsers (GET /api/users/pending) returns accounts awaiting
// approval.
func (h *UserHandler) ListPendingUsers(c *fiber.Ctx) error {
	users, err := h.userService.GetUsersPendingApproval(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, users)
}

type updateUserRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"`
}

// UpdateUser (PUT /api/users/:id) applies a partial profile update.
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return nil
	}
	var req updateUserRequest
	if !parseBody(c, &req) {
		return nil
	}

	user, err := h.userService.UpdateUser(c.UserContext(), services.UpdateUserInput{
		ID:       id,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, user)
}

type approveUserRequest struct {
	ApproverID uint `json:"approver_id" validate:"required,gt=0"`
}

// ApproveUser (POST /api/users/:id/approve) activates a pending account
// and stamps who approved it.
func (h *UserHandler) ApproveUser(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return nil
	}
	var req approveUserRequest
	if !parseBody(c, &req) {
		return nil
	}

	user, err := h.userService.ApproveUser(c.UserContext(), id, req.ApproverID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, user)
}
