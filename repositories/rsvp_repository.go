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

// RSVPStats aggregates the answers for one invitation.
type RSVPStats struct {
	Total        int64 `json:"total"`
	Attending    int64 `json:"attending"`
	NotAttending int64 `json:"not_attending"`
	Maybe        int64 `json:"maybe"`
	TotalGuests  int64 `json:"total_guests"`
}

// IRSVPRepository handles RSVP persistence.
type IRSVPRepository interface {
	// CreateWithCount inserts the RSVP and bumps the invitation's
	// rsvp_count in one transaction.
	CreateWithCount(ctx context.Context, rsvp *models.RSVP) error
	FindDuplicate(ctx context.Context, invitationID uint, guestName string, guestEmail, guestPhone *string) (*models.RSVP, error)
	FindByInvitationID(ctx context.Context, invitationID uint) ([]models.RSVP, error)
	StatsByInvitationID(ctx context.Context, invitationID uint) (*RSVPStats, error)
}

// RSVPRepository implements IRSVPRepository.
type RSVPRepository struct {
	db *gorm.DB
}

// NewRSVPRepository builds a repository on the global DB handle.
func NewRSVPRepository() IRSVPRepository {
	return &RSVPRepository{db: configs.GetDB()}
}

// NewRSVPRepositoryTx builds a repository bound to an open transaction.
func NewRSVPRepositoryTx(tx *gorm.DB) IRSVPRepository {
	return &RSVPRepository{db: tx}
}

func (r *RSVPRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *RSVPRepository) CreateWithCount(ctx context.Context, rsvp *models.RSVP) error {
	if rsvp == nil || rsvp.InvitationID == 0 {
		return errors.New("invalid rsvp: missing invitation")
	}
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rsvp).Error; err != nil {
			return err
		}
		return tx.Model(&models.Invitation{}).Where("id = ?", rsvp.InvitationID).
			UpdateColumn("rsvp_count", gorm.Expr("rsvp_count + 1")).Error
	})
}

// FindDuplicate looks for an existing answer by the same guest identity on
// the same invitation: same name, same non-null email or same non-null
// phone. Nil when no duplicate exists.
func (r *RSVPRepository) FindDuplicate(ctx context.Context, invitationID uint, guestName string, guestEmail, guestPhone *string) (*models.RSVP, error) {
	db := r.getDB(ctx)

	match := db.Where("guest_name = ?", guestName)
	if guestEmail != nil && *guestEmail != "" {
		match = match.Or("guest_email = ?", *guestEmail)
	}
	if guestPhone != nil && *guestPhone != "" {
		match = match.Or("guest_phone = ?", *guestPhone)
	}

	var rsvp models.RSVP
	err := db.Where("invitation_id = ?", invitationID).Where(match).First(&rsvp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		configslog.Log.Error("RSVPRepository.FindDuplicate: DB error", zap.Uint("invitationID", invitationID), zap.Error(err))
		return nil, err
	}
	return &rsvp, nil
}

func (r *RSVPRepository) FindByInvitationID(ctx context.Context, invitationID uint) ([]models.RSVP, error) {
	var rsvps []models.RSVP
	err := r.getDB(ctx).Where("invitation_id = ?", invitationID).
		Order("created_at asc").
		Find(&rsvps).Error
	if err != nil {
		configslog.Log.Error("RSVPRepository.FindByInvitationID: DB error", zap.Uint("invitationID", invitationID), zap.Error(err))
		return nil, err
	}
	return rsvps, nil
}

func (r *RSVPRepository) StatsByInvitationID(ctx context.Context, invitationID uint) (*RSVPStats, error) {
	db := r.getDB(ctx)

	type row struct {
		Status models.RSVPStatus
		Count  int64
		Guests int64
	}
	var rows []row
	err := db.Model(&models.RSVP{}).
		Select("status, count(*) as count, coalesce(sum(guest_count),0) as guests").
		Where("invitation_id = ?", invitationID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		configslog.Log.Error("RSVPRepository.StatsByInvitationID: DB error", zap.Uint("invitationID", invitationID), zap.Error(err))
		return nil, err
	}

	stats := &RSVPStats{}
	for _, r := range rows {
		stats.Total += r.Count
		stats.TotalGuests += r.Guests
		switch r.Status {
		case models.RSVPStatusAttending:
			stats.Attending = r.Count
		case models.RSVPStatusNotAttending:
			stats.NotAttending = r.Count
		case models.RSVPStatusMaybe:
			stats.Maybe = r.Count
		}
	}
	return stats, nil
}

var _ IRSVPRepository = (*RSVPRepository)(nil)
