package repositories

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"undangan.link/configs"
	"undangan.link/configs/configslog"
	"undangan.link/models"
)

// ITemplateRepository handles template persistence.
type ITemplateRepository interface {
	Create(ctx context.Context, template *models.Template) error
	FindByID(ctx context.Context, id uint) (*models.Template, error)
	FindActive(ctx context.Context) ([]models.Template, error)
	FindActiveByCategory(ctx context.Context, category models.TemplateCategory) ([]models.Template, error)
}

// TemplateRepository implements ITemplateRepository.
type TemplateRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Template]
}

// NewTemplateRepository builds a repository on the global DB handle.
func NewTemplateRepository() ITemplateRepository {
	return NewTemplateRepositoryTx(configs.GetDB())
}

// NewTemplateRepositoryTx builds a repository bound to an open transaction.
func NewTemplateRepositoryTx(tx *gorm.DB) ITemplateRepository {
	base := NewBaseRepository[models.Template](tx)
	base.SetAllowedSortColumns([]string{"id", "created_at", "name", "category"})
	return &TemplateRepository{db: tx, base: base}
}

func (r *TemplateRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *TemplateRepository) Create(ctx context.Context, template *models.Template) error {
	return r.getDB(ctx).Create(template).Error
}

// FindByID is unfiltered by the active flag: edit flows need inactive rows.
func (r *TemplateRepository) FindByID(ctx context.Context, id uint) (*models.Template, error) {
	return r.base.FindByID(ctx, id)
}

func (r *TemplateRepository) FindActive(ctx context.Context) ([]models.Template, error) {
	var templates []models.Template
	err := r.getDB(ctx).Where("is_active = ?", true).Order("created_at desc").Find(&templates).Error
	if err != nil {
		configslog.Log.Error("TemplateRepository.FindActive: DB error", zap.Error(err))
		return nil, err
	}
	return templates, nil
}

func (r *TemplateRepository) FindActiveByCategory(ctx context.Context, category models.TemplateCategory) ([]models.Template, error) {
	var templates []models.Template
	err := r.getDB(ctx).
		Where("is_active = ? AND category = ?", true, category).
		Order("created_at desc").
		Find(&templates).Error
	if err != nil {
		configslog.Log.Error("TemplateRepository.FindActiveByCategory: DB error",
			zap.String("category", string(category)), zap.Error(err))
		return nil, err
	}
	return templates, nil
}

var _ ITemplateRepository = (*TemplateRepository)(nil)
