package services

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"undangan.link/configs/configslog"
	"undangan.link/models"
	"undangan.link/repositories"
)

// TemplateServiceError is the typed error set for template operations.
type TemplateServiceError string

func (e TemplateServiceError) Error() string { return string(e) }

const (
	ErrTemplateNotFound       TemplateServiceError = "template not found"
	ErrInvalidTemplateData    TemplateServiceError = "template_data is not valid JSON"
	ErrInvalidCategory        TemplateServiceError = "invalid template category"
	ErrTemplateCreationFailed TemplateServiceError = "template could not be created"
)

// CreateTemplateInput is the template creation payload.
type CreateTemplateInput struct {
	Name         string
	Category     models.TemplateCategory
	ThumbnailURL string
	PreviewURL   string
	TemplateData string
}

// ITemplateService is the template operations interface.
type ITemplateService interface {
	CreateTemplate(ctx context.Context, input CreateTemplateInput) (*models.Template, error)
	GetTemplates(ctx context.Context) ([]models.Template, error)
	GetTemplatesByCategory(ctx context.Context, category models.TemplateCategory) ([]models.Template, error)
	// GetTemplateByID ignores the active flag; edit flows need inactive
	// rows. Returns (nil, nil) when the id does not exist.
	GetTemplateByID(ctx context.Context, id uint) (*models.Template, error)
}

// TemplateService implements ITemplateService.
type TemplateService struct {
	repo repositories.ITemplateRepository
}

// NewTemplateService builds the service with the default repository.
func NewTemplateService() ITemplateService {
	return &TemplateService{repo: repositories.NewTemplateRepository()}
}

func (s *TemplateService) CreateTemplate(ctx context.Context, input CreateTemplateInput) (*models.Template, error) {
	if !input.Category.Valid() {
		return nil, ErrInvalidCategory
	}
	if !json.Valid([]byte(input.TemplateData)) {
		return nil, ErrInvalidTemplateData
	}

	template := models.Template{
		Name:         input.Name,
		Category:     input.Category,
		ThumbnailURL: input.ThumbnailURL,
		PreviewURL:   input.PreviewURL,
		TemplateData: input.TemplateData,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, &template); err != nil {
		configslog.Log.Error("CreateTemplate: insert failed", zap.String("name", input.Name), zap.Error(err))
		return nil, ErrTemplateCreationFailed
	}
	configslog.SLog.Infof("template created: id=%d name=%s category=%s", template.ID, template.Name, template.Category)
	return &template, nil
}

func (s *TemplateService) GetTemplates(ctx context.Context) ([]models.Template, error) {
	return s.repo.FindActive(ctx)
}

func (s *TemplateService) GetTemplatesByCategory(ctx context.Context, category models.TemplateCategory) ([]models.Template, error) {
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}
	return s.repo.FindActiveByCategory(ctx, category)
}

func (s *TemplateService) GetTemplateByID(ctx context.Context, id uint) (*models.Template, error) {
	template, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return template, nil
}

var _ ITemplateService = (*TemplateService)(nil)
