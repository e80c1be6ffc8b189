package repositories

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"undangan.link/configs"
	"undangan.link/configs/configslog"
	"undangan.link/models"
)

// IGuestbookRepository handles guestbook persistence.
type IGuestbookRepository interface {
	Create(ctx context.Context, entry *models.Guestbook) error
	FindByID(ctx context.Context, id uint) (*models.Guestbook, error)
	FindByInvitationID(ctx context.Context, invitationID uint, includeUnapproved bool) ([]models.Guestbook, error)
	SetApproved(ctx context.Context, id uint, approved bool) error
	Delete(ctx context.Context, id uint) error
}

// GuestbookRepository implements IGuestbookRepository.
type GuestbookRepository struct {
	db *gorm.DB
}

// NewGuestbookRepository builds a repository on the global DB handle.
func NewGuestbookRepository() IGuestbookRepository {
	return &GuestbookRepository{db: configs.GetDB()}
}

// NewGuestbookRepositoryTx builds a repository bound to an open transaction.
func NewGuestbookRepositoryTx(tx *gorm.DB) IGuestbookRepository {
	return &GuestbookRepository{db: tx}
}

func (r *GuestbookRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *GuestbookRepository) Create(ctx context.Context, entry *models.Guestbook) error {
	return r.getDB(ctx).Create(entry).Error
}

func (r *GuestbookRepository) FindByID(ctx context.Context, id uint) (*models.Guestbook, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var entry models.Guestbook
	err := r.getDB(ctx).First(&entry, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("GuestbookRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &entry, nil
}

func (r *GuestbookRepository) FindByInvitationID(ctx context.Context, invitationID uint, includeUnapproved bool) ([]models.Guestbook, error) {
	query := r.getDB(ctx).Where("invitation_id = ?", invitationID)
	if !includeUnapproved {
		query = query.Where("is_approved = ?", true)
	}

	var entries []models.Guestbook
	err := query.Order("created_at desc").Find(&entries).Error
	if err != nil {
		configslog.Log.Error("GuestbookRepository.FindByInvitationID: DB error",
			zap.Uint("invitationID", invitationID), zap.Error(err))
		return nil, err
	}
	return entries, nil
}

func (r *GuestbookRepository) SetApproved(ctx context.Context, id uint, approved bool) error {
	result := r.getDB(ctx).Model(&models.Guestbook{}).Where("id = ?", id).
		UpdateColumn("is_approved", approved)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GuestbookRepository) Delete(ctx context.Context, id uint) error {
	result := r.getDB(ctx).Delete(&models.Guestbook{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ IGuestbookRepository = (*GuestbookRepository)(nil)
