package repositories

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"undangan.link/configs"
	"undangan.link/configs/configslog"
	"undangan.link/models"
)

// VisitorStatsQuery scopes the visitor aggregates. Zero values widen the
// scope: no invitation filter, no date bounds.
type VisitorStatsQuery struct {
	InvitationID uint
	From         *time.Time
	To           *time.Time
}

// DayCount is one row of the visits-per-day aggregate.
type DayCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// VisitorStats is the visit aggregate for dashboards. UniqueVisitors
// counts distinct stored IPs; the IP column is masked deterministically
// exactly so this stays meaningful.
type VisitorStats struct {
	TotalVisits    int64      `json:"total_visits"`
	UniqueVisitors int64      `json:"unique_visitors"`
	ByDay          []DayCount `json:"by_day"`
}

// IVisitorRepository handles visitor persistence and aggregates.
type IVisitorRepository interface {
	// CreateWithViewCount inserts the visitor row and bumps the
	// invitation's view_count as one all-or-nothing unit.
	CreateWithViewCount(ctx context.Context, visitor *models.Visitor) error
	Stats(ctx context.Context, query VisitorStatsQuery) (*VisitorStats, error)
}

// VisitorRepository implements IVisitorRepository.
type VisitorRepository struct {
	db *gorm.DB
}

// NewVisitorRepository builds a repository on the global DB handle.
func NewVisitorRepository() IVisitorRepository {
	return &VisitorRepository{db: configs.GetDB()}
}

// NewVisitorRepositoryTx builds a repository bound to an open transaction.
func NewVisitorRepositoryTx(tx *gorm.DB) IVisitorRepository {
	return &VisitorRepository{db: tx}
}

func (r *VisitorRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *VisitorRepository) CreateWithViewCount(ctx context.Context, visitor *models.Visitor) error {
	if visitor == nil || visitor.InvitationID == 0 {
		return errors.New("invalid visitor: missing invitation")
	}
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(visitor).Error; err != nil {
			return err
		}
		return tx.Model(&models.Invitation{}).Where("id = ?", visitor.InvitationID).
			UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	})
}

func (r *VisitorRepository) scope(ctx context.Context, query VisitorStatsQuery) *gorm.DB {
	q := r.getDB(ctx).Model(&models.Visitor{})
	if query.InvitationID != 0 {
		q = q.Where("invitation_id = ?", query.InvitationID)
	}
	if query.From != nil {
		q = q.Where("visited_at >= ?", *query.From)
	}
	if query.To != nil {
		q = q.Where("visited_at <= ?", *query.To)
	}
	return q
}

func (r *VisitorRepository) Stats(ctx context.Context, query VisitorStatsQuery) (*VisitorStats, error) {
	stats := &VisitorStats{}

	if err := r.scope(ctx, query).Count(&stats.TotalVisits).Error; err != nil {
		configslog.Log.Error("VisitorRepository.Stats: count failed", zap.Error(err))
		return nil, err
	}
	if err := r.scope(ctx, query).Distinct("ip_address").Count(&stats.UniqueVisitors).Error; err != nil {
		configslog.Log.Error("VisitorRepository.Stats: distinct count failed", zap.Error(err))
		return nil, err
	}
	err := r.scope(ctx, query).
		Select("to_char(visited_at, 'YYYY-MM-DD') as day, count(*) as count").
		Group("day").
		Order("day asc").
		Scan(&stats.ByDay).Error
	if err != nil {
		configslog.Log.Error("VisitorRepository.Stats: by-day scan failed", zap.Error(err))
		return nil, err
	}
	return stats, nil
}

var _ IVisitorRepository = (*VisitorRepository)(nil)
