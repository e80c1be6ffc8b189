package api

import (
	"github.com/gofiber/fiber/v2"

	"undangan.link/models"
	"undangan.link/services"
)

// TemplateHandler covers the template catalogue.
type TemplateHandler struct {
	templateService services.ITemplateService
}

// NewTemplateHandler builds the handler with the default service.
func NewTemplateHandler() *TemplateHandler {
	return &TemplateHandler{templateService: services.NewTemplateService()}
}

type createTemplateRequest struct {
	Name         string `json:"name" validate:"required,max=255"`
	Category     string `json:"category" validate:"required,oneof=romantic contemporary formal traditional"`
	ThumbnailURL string `json:"thumbnail_url" validate:"omitempty,url"`
	PreviewURL   string `json:"preview_url" validate:"omitempty,url"`
	TemplateData string `json:"template_data" validate:"required"`
}

// CreateTemplate (POST /api/templates) adds a design to the catalogue.
func (h *TemplateHandler) CreateTemplate(c *fiber.Ctx) error {
	var req createTemplateRequest
	if !parseBody(c, &req) {
		return nil
	}

	template, err := h.templateService.CreateTemplate(c.UserContext(), services.CreateTemplateInput{
		Name:         req.Name,
		Category:     models.TemplateCategory(req.Category),
		ThumbnailURL: req.ThumbnailURL,
		PreviewURL:   req.PreviewURL,
		TemplateData: req.TemplateData,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusCreated, template)
}

// ListTemplates (GET /api/templates) returns active designs, newest first.
func (h *TemplateHandler) ListTemplates(c *fiber.Ctx) error {
	templates, err := h.templateService.GetTemplates(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, templates)
}

// ListTemplatesByCategory (GET /api/templates/category/:category) filters
// the active designs by category.
func (h *TemplateHandler) ListTemplatesByCategory(c *fiber.Ctx) error {
	category := models.TemplateCategory(c.Params("category"))
	templates, err := h.templateService.GetTemplatesByCategory(c.UserContext(), category)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, templates)
}

// GetTemplate (GET /api/templates/:id) returns one design regardless of
// its active flag. Missing ids answer null, not an error.
func (h *TemplateHandler) GetTemplate(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return nil
	}
	template, err := h.templateService.GetTemplateByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	if template == nil {
		return respondData(c, fiber.StatusOK, nil)
	}
	return respondData(c, fiber.StatusOK, template)
}
