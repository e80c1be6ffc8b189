package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"undangan.link/configs/configslog"
	"undangan.link/models"
	"undangan.link/repositories"
)

// RSVPServiceError is the typed error set for RSVP operations.
type RSVPServiceError string

func (e RSVPServiceError) Error() string { return string(e) }

const (
	ErrRSVPInvitationNotFound RSVPServiceError = "invitation not found"
	ErrInvitationNotPublished RSVPServiceError = "invitation is not published"
	ErrInvitationExpired      RSVPServiceError = "invitation has expired"
	ErrGuestAlreadyResponded  RSVPServiceError = "guest has already responded"
	ErrInvalidRSVPStatus      RSVPServiceError = "invalid rsvp status"
	ErrInvalidGuestCount      RSVPServiceError = "guest count must be positive"
	ErrRSVPCreationFailed     RSVPServiceError = "rsvp could not be created"
	ErrRSVPAccessDenied       RSVPServiceError = "caller does not own this invitation"
	ErrRSVPCallerNotFound     RSVPServiceError = "user not found"
)

// CreateRSVPInput is the guest's attendance answer.
type CreateRSVPInput struct {
	InvitationID uint
	GuestName    string
	GuestEmail   *string
	GuestPhone   *string
	Status       models.RSVPStatus
	GuestCount   int
	Message      *string
}

// IRSVPService is the RSVP operations interface.
type IRSVPService interface {
	CreateRSVP(ctx context.Context, input CreateRSVPInput) (*models.RSVP, error)
	// GetRSVPsByInvitation requires the caller to own the invitation or
	// be a super admin.
	GetRSVPsByInvitation(ctx context.Context, invitationID, callerID uint) ([]models.RSVP, error)
	GetRSVPStats(ctx context.Context, invitationID, callerID uint) (*repositories.RSVPStats, error)
}

// RSVPService implements IRSVPService.
type RSVPService struct {
	repo           repositories.IRSVPRepository
	invitationRepo repositories.IInvitationRepository
	userRepo       repositories.IUserRepository
}

// NewRSVPService builds the service with the default repositories.
func NewRSVPService() IRSVPService {
	return &RSVPService{
		repo:           repositories.NewRSVPRepository(),
		invitationRepo: repositories.NewInvitationRepository(),
		userRepo:       repositories.NewUserRepository(),
	}
}

func (s *RSVPService) CreateRSVP(ctx context.Context, input CreateRSVPInput) (*models.RSVP, error) {
	if !input.Status.Valid() {
		return nil, ErrInvalidRSVPStatus
	}
	if input.GuestCount < 1 {
		return nil, ErrInvalidGuestCount
	}

	invitation, err := s.invitationRepo.FindByID(ctx, input.InvitationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRSVPInvitationNotFound
		}
		return nil, err
	}
	if invitation.Status != models.InvitationStatusPublished {
		return nil, ErrInvitationNotPublished
	}
	if invitation.IsExpired(time.Now().UTC()) {
		return nil, ErrInvitationExpired
	}

	// Duplicate-guest guard, scoped per invitation: same name, or same
	// non-null email/phone, all block a second answer.
	duplicate, err := s.repo.FindDuplicate(ctx, input.InvitationID, input.GuestName, input.GuestEmail, input.GuestPhone)
	if err != nil {
		return nil, err
	}
	if duplicate != nil {
		return nil, ErrGuestAlreadyResponded
	}

	rsvp := models.RSVP{
		InvitationID: input.InvitationID,
		GuestName:    input.GuestName,
		GuestEmail:   input.GuestEmail,
		GuestPhone:   input.GuestPhone,
		Status:       input.Status,
		GuestCount:   input.GuestCount,
		Message:      input.Message,
	}
	if err := s.repo.CreateWithCount(ctx, &rsvp); err != nil {
		configslog.Log.Error("CreateRSVP: insert failed", zap.Uint("invitationID", input.InvitationID), zap.Error(err))
		return nil, ErrRSVPCreationFailed
	}
	configslog.SLog.Infof("rsvp created: id=%d invitation=%d status=%s", rsvp.ID, rsvp.InvitationID, rsvp.Status)
	return &rsvp, nil
}

// requireManageAccess loads the invitation and verifies the caller may
// moderate it.
func (s *RSVPService) requireManageAccess(ctx context.Context, invitationID, callerID uint) error {
	invitation, err := s.invitationRepo.FindByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrRSVPInvitationNotFound
		}
		return err
	}
	caller, err := s.userRepo.FindByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrRSVPCallerNotFound
		}
		return err
	}
	if !CanManageInvitation(caller, invitation) {
		return ErrRSVPAccessDenied
	}
	return nil
}

func (s *RSVPService) GetRSVPsByInvitation(ctx context.Context, invitationID, callerID uint) ([]models.RSVP, error) {
	if err := s.requireManageAccess(ctx, invitationID, callerID); err != nil {
		return nil, err
	}
	return s.repo.FindByInvitationID(ctx, invitationID)
}

func (s *RSVPService) GetRSVPStats(ctx context.Context, invitationID, callerID uint) (*repositories.RSVPStats, error) {
	if err := s.requireManageAccess(ctx, invitationID, callerID); err != nil {
		return nil, err
	}
	return s.repo.StatsByInvitationID(ctx, invitationID)
}

var _ IRSVPService = (*RSVPService)(nil)
