package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"undangan.link/configs"
	"undangan.link/configs/configslog"
	"undangan.link/models"
	"undangan.link/pkg/fieldmask"
	"undangan.link/repositories"
)

// VisitorServiceError is the typed error set for visitor/analytics
// operations.
type VisitorServiceError string

func (e VisitorServiceError) Error() string { return string(e) }

const (
	ErrVisitInvitationNotFound VisitorServiceError = "invitation not found"
	ErrVisitorLogFailed        VisitorServiceError = "visitor could not be logged"
	ErrStatsUserNotFound       VisitorServiceError = "user not found"
)

// UserStats is the users dashboard aggregate.
type UserStats struct {
	TotalUsers      int64                   `json:"total_users"`
	ByRole          []repositories.RoleCount `json:"by_role"`
	PendingApproval int64                   `json:"pending_approval"`
}

// IVisitorService covers visit logging and the read-only analytics.
type IVisitorService interface {
	// LogVisitor masks ip/user-agent at rest, inserts the row and bumps
	// the invitation's view counter in one unit, and returns the record
	// with the plain values for the caller's own logging.
	LogVisitor(ctx context.Context, invitationID uint, ip, userAgent string, referrer *string) (*models.Visitor, error)
	GetVisitorStats(ctx context.Context, query repositories.VisitorStatsQuery) (*repositories.VisitorStats, error)
	GetUserStats(ctx context.Context) (*UserStats, error)
	GetInvitationStats(ctx context.Context, userID *uint) (*repositories.InvitationStats, error)
}

// VisitorService implements IVisitorService.
type VisitorService struct {
	repo           repositories.IVisitorRepository
	invitationRepo repositories.IInvitationRepository
	userRepo       repositories.IUserRepository
	masker         fieldmask.Masker
}

// NewVisitorService builds the service with the default repositories and
// the configured masker.
func NewVisitorService() IVisitorService {
	return &VisitorService{
		repo:           repositories.NewVisitorRepository(),
		invitationRepo: repositories.NewInvitationRepository(),
		userRepo:       repositories.NewUserRepository(),
		masker:         configs.Masker(),
	}
}

func (s *VisitorService) LogVisitor(ctx context.Context, invitationID uint, ip, userAgent string, referrer *string) (*models.Visitor, error) {
	if _, err := s.invitationRepo.FindByID(ctx, invitationID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrVisitInvitationNotFound
		}
		return nil, err
	}

	// IP masks deterministically so distinct-visitor counts stay
	// meaningful at rest; the user agent does not need that property.
	maskedIP, err := s.masker.MaskDeterministic(ip)
	if err != nil {
		return nil, ErrVisitorLogFailed
	}
	maskedUA, err := s.masker.Mask(userAgent)
	if err != nil {
		return nil, ErrVisitorLogFailed
	}

	visitor := models.Visitor{
		InvitationID: invitationID,
		IPAddress:    maskedIP,
		UserAgent:    maskedUA,
		Referrer:     referrer,
		VisitedAt:    time.Now().UTC(),
	}
	if err := s.repo.CreateWithViewCount(ctx, &visitor); err != nil {
		configslog.Log.Error("LogVisitor: insert failed", zap.Uint("invitationID", invitationID), zap.Error(err))
		return nil, ErrVisitorLogFailed
	}

	// The persisted row keeps the masked values; the response carries
	// the plain ones.
	visitor.IPAddress = ip
	visitor.UserAgent = userAgent
	return &visitor, nil
}

func (s *VisitorService) GetVisitorStats(ctx context.Context, query repositories.VisitorStatsQuery) (*repositories.VisitorStats, error) {
	return s.repo.Stats(ctx, query)
}

func (s *VisitorService) GetUserStats(ctx context.Context) (*UserStats, error) {
	byRole, err := s.userRepo.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.userRepo.CountByStatus(ctx, models.UserStatusPending)
	if err != nil {
		return nil, err
	}

	stats := &UserStats{ByRole: byRole, PendingApproval: pending}
	for _, rc := range byRole {
		stats.TotalUsers += rc.Count
	}
	return stats, nil
}

func (s *VisitorService) GetInvitationStats(ctx context.Context, userID *uint) (*repositories.InvitationStats, error) {
	var scope uint
	if userID != nil {
		if _, err := s.userRepo.FindByID(ctx, *userID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrStatsUserNotFound
			}
			return nil, err
		}
		scope = *userID
	}
	return s.invitationRepo.Stats(ctx, scope)
}

var _ IVisitorService = (*VisitorService)(nil)
