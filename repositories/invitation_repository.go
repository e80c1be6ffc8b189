package repositories

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"undangan.link/configs"
	"undangan.link/configs/configslog"
	"undangan.link/models"
)

// InvitationStats is the dashboard aggregate over invitations, optionally
// scoped to one owner.
type InvitationStats struct {
	TotalInvitations int64 `json:"total_invitations"`
	PublishedCount   int64 `json:"published_count"`
	DraftCount       int64 `json:"draft_count"`
	TotalViews       int64 `json:"total_views"`
	TotalRSVPs       int64 `json:"total_rsvps"`
}

// IInvitationRepository handles invitation persistence, including the
// composite operations that must be transactional (view counting, the
// cascade delete).
type IInvitationRepository interface {
	Create(ctx context.Context, invitation *models.Invitation) error
	FindByID(ctx context.Context, id uint) (*models.Invitation, error)
	FindBySlug(ctx context.Context, slug string) (*models.Invitation, error)
	SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)
	FindPublished(ctx context.Context) ([]models.Invitation, error)
	FindAll(ctx context.Context) ([]models.Invitation, error)
	FindByUserID(ctx context.Context, userID uint) ([]models.Invitation, error)
	FindPublishedBySlugForView(ctx context.Context, slug string) (*models.Invitation, error)
	Update(ctx context.Context, invitation *models.Invitation) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	DeleteCascade(ctx context.Context, id, userID uint) error
	Stats(ctx context.Context, userID uint) (*InvitationStats, error)
}

// InvitationRepository implements IInvitationRepository.
type InvitationRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Invitation]
}

// NewInvitationRepository builds a repository on the global DB handle.
func NewInvitationRepository() IInvitationRepository {
	return NewInvitationRepositoryTx(configs.GetDB())
}

// NewInvitationRepositoryTx builds a repository bound to an open transaction.
func NewInvitationRepositoryTx(tx *gorm.DB) IInvitationRepository {
	base := NewBaseRepository[models.Invitation](tx)
	base.SetAllowedSortColumns([]string{"id", "created_at", "title", "status", "view_count"})
	return &InvitationRepository{db: tx, base: base}
}

func (r *InvitationRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *InvitationRepository) Create(ctx context.Context, invitation *models.Invitation) error {
	return r.getDB(ctx).Create(invitation).Error
}

func (r *InvitationRepository) FindByID(ctx context.Context, id uint) (*models.Invitation, error) {
	return r.base.FindByID(ctx, id)
}

// FindBySlug matches case-sensitively and ignores status.
func (r *InvitationRepository) FindBySlug(ctx context.Context, slug string) (*models.Invitation, error) {
	if slug == "" {
		return nil, ErrNotFound
	}
	var invitation models.Invitation
	err := r.getDB(ctx).Where("slug = ?", slug).First(&invitation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("InvitationRepository.FindBySlug: DB error", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}
	return &invitation, nil
}

// SlugExists reports whether another invitation already holds the slug.
// excludeID 0 checks against all rows.
func (r *InvitationRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.getDB(ctx).Model(&models.Invitation{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		configslog.Log.Error("InvitationRepository.SlugExists: DB error", zap.String("slug", slug), zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

func (r *InvitationRepository) FindPublished(ctx context.Context) ([]models.Invitation, error) {
	var invitations []models.Invitation
	err := r.getDB(ctx).
		Where("status = ?", models.InvitationStatusPublished).
		Order("published_at desc").
		Find(&invitations).Error
	if err != nil {
		configslog.Log.Error("InvitationRepository.FindPublished: DB error", zap.Error(err))
		return nil, err
	}
	return invitations, nil
}

func (r *InvitationRepository) FindAll(ctx context.Context) ([]models.Invitation, error) {
	var invitations []models.Invitation
	err := r.getDB(ctx).Order("created_at desc").Find(&invitations).Error
	if err != nil {
		configslog.Log.Error("InvitationRepository.FindAll: DB error", zap.Error(err))
		return nil, err
	}
	return invitations, nil
}

func (r *InvitationRepository) FindByUserID(ctx context.Context, userID uint) ([]models.Invitation, error) {
	var invitations []models.Invitation
	err := r.getDB(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&invitations).Error
	if err != nil {
		configslog.Log.Error("InvitationRepository.FindByUserID: DB error", zap.Uint("userID", userID), zap.Error(err))
		return nil, err
	}
	return invitations, nil
}

// FindPublishedBySlugForView resolves a published invitation by slug and
// bumps its view counter server-side, returning the post-increment value.
// The row lock keeps concurrent visits from under-counting.
func (r *InvitationRepository) FindPublishedBySlugForView(ctx context.Context, slug string) (*models.Invitation, error) {
	if slug == "" {
		return nil, ErrNotFound
	}
	var invitation models.Invitation
	err := r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("slug = ? AND status = ?", slug, models.InvitationStatusPublished).
			First(&invitation).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		err = tx.Model(&models.Invitation{}).Where("id = ?", invitation.ID).
			UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
		if err != nil {
			return err
		}
		invitation.ViewCount++
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("InvitationRepository.FindPublishedBySlugForView: DB error", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}
	return &invitation, nil
}

func (r *InvitationRepository) Update(ctx context.Context, invitation *models.Invitation) error {
	if invitation == nil || invitation.ID == 0 {
		return errors.New("invalid invitation for update")
	}
	return r.getDB(ctx).Save(invitation).Error
}

func (r *InvitationRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	result := r.getDB(ctx).Model(&models.Invitation{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		configslog.Log.Error("InvitationRepository.UpdateFields: DB error", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCascade removes an invitation and all its dependents. Ownership is
// part of the lookup itself so a wrong owner and a missing row are the
// same ErrNotFound, deliberately. Children go first, in FK order:
// visitors, guestbooks, rsvps, payments, then the invitation.
func (r *InvitationRepository) DeleteCascade(ctx context.Context, id, userID uint) error {
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		var invitation models.Invitation
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", id, userID).
			First(&invitation).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		for _, target := range []interface{}{
			&models.Visitor{},
			&models.Guestbook{},
			&models.RSVP{},
			&models.Payment{},
		} {
			if err := tx.Where("invitation_id = ?", id).Delete(target).Error; err != nil {
				configslog.Log.Error("InvitationRepository.DeleteCascade: child delete failed",
					zap.Uint("invitationID", id), zap.Error(err))
				return err
			}
		}

		return tx.Delete(&invitation).Error
	})
}

// Stats aggregates the invitation dashboard numbers. userID 0 means all
// invitations.
func (r *InvitationRepository) Stats(ctx context.Context, userID uint) (*InvitationStats, error) {
	db := r.getDB(ctx)
	scoped := func() *gorm.DB {
		q := db.Model(&models.Invitation{})
		if userID != 0 {
			q = q.Where("user_id = ?", userID)
		}
		return q
	}

	var stats InvitationStats
	if err := scoped().Count(&stats.TotalInvitations).Error; err != nil {
		return nil, err
	}
	if err := scoped().Where("status = ?", models.InvitationStatusPublished).Count(&stats.PublishedCount).Error; err != nil {
		return nil, err
	}
	if err := scoped().Where("status = ?", models.InvitationStatusDraft).Count(&stats.DraftCount).Error; err != nil {
		return nil, err
	}

	type sums struct {
		Views int64
		Rsvps int64
	}
	var s sums
	if err := scoped().Select("coalesce(sum(view_count),0) as views, coalesce(sum(rsvp_count),0) as rsvps").
		Scan(&s).Error; err != nil {
		configslog.Log.Error("InvitationRepository.Stats: DB error", zap.Uint("userID", userID), zap.Error(err))
		return nil, err
	}
	stats.TotalViews = s.Views
	stats.TotalRSVPs = s.Rsvps
	return &stats, nil
}

var _ IInvitationRepository = (*InvitationRepository)(nil)
