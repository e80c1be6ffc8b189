package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"undangan.link/configs/configslog"
	"undangan.link/models"
	"undangan.link/repositories"
)

// GuestbookServiceError is the typed error set for guestbook operations.
type GuestbookServiceError string

func (e GuestbookServiceError) Error() string { return string(e) }

const (
	ErrGuestbookInvitationNotFound GuestbookServiceError = "invitation not found"
	ErrGuestbookNotPublished       GuestbookServiceError = "invitation is not published"
	ErrGuestbookEntryNotFound      GuestbookServiceError = "guestbook entry not found"
	ErrGuestbookNotOwner           GuestbookServiceError = "caller does not own this invitation"
	ErrGuestbookCreationFailed     GuestbookServiceError = "guestbook entry could not be created"
)

// moderationDenylist holds the substrings that park a new entry as
// unapproved until the owner reviews it. Matching is case-insensitive.
var moderationDenylist = []string{"spam", "scam", "fake", "hate"}

// MessagePassesModeration reports whether a message avoids every denylist
// term. Clean messages are approved immediately; this is a deliberately
// permissive policy.
func MessagePassesModeration(message string) bool {
	lowered := strings.ToLower(message)
	for _, term := range moderationDenylist {
		if strings.Contains(lowered, term) {
			return false
		}
	}
	return true
}

// CreateGuestbookInput is a guest's message.
type CreateGuestbookInput struct {
	InvitationID uint
	GuestName    string
	Message      string
}

// IGuestbookService is the guestbook operations interface.
type IGuestbookService interface {
	CreateGuestbook(ctx context.Context, input CreateGuestbookInput) (*models.Guestbook, error)
	GetGuestbookEntries(ctx context.Context, invitationID uint, includeUnapproved bool) ([]models.Guestbook, error)
	ApproveGuestbookEntry(ctx context.Context, entryID, userID uint) (*models.Guestbook, error)
	DeleteGuestbookEntry(ctx context.Context, entryID, userID uint) error
}

// GuestbookService implements IGuestbookService.
type GuestbookService struct {
	repo           repositories.IGuestbookRepository
	invitationRepo repositories.IInvitationRepository
}

// NewGuestbookService builds the service with the default repositories.
func NewGuestbookService() IGuestbookService {
	return &GuestbookService{
		repo:           repositories.NewGuestbookRepository(),
		invitationRepo: repositories.NewInvitationRepository(),
	}
}

func (s *GuestbookService) CreateGuestbook(ctx context.Context, input CreateGuestbookInput) (*models.Guestbook, error) {
	invitation, err := s.invitationRepo.FindByID(ctx, input.InvitationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGuestbookInvitationNotFound
		}
		return nil, err
	}
	if invitation.Status != models.InvitationStatusPublished {
		return nil, ErrGuestbookNotPublished
	}

	entry := models.Guestbook{
		InvitationID: input.InvitationID,
		GuestName:    input.GuestName,
		Message:      input.Message,
		IsApproved:   MessagePassesModeration(input.Message),
	}
	if err := s.repo.Create(ctx, &entry); err != nil {
		configslog.Log.Error("CreateGuestbook: insert failed", zap.Uint("invitationID", input.InvitationID), zap.Error(err))
		return nil, ErrGuestbookCreationFailed
	}
	return &entry, nil
}

func (s *GuestbookService) GetGuestbookEntries(ctx context.Context, invitationID uint, includeUnapproved bool) ([]models.Guestbook, error) {
	return s.repo.FindByInvitationID(ctx, invitationID, includeUnapproved)
}

// resolveOwnedEntry loads an entry and verifies the caller owns its
// parent invitation.
func (s *GuestbookService) resolveOwnedEntry(ctx context.Context, entryID, userID uint) (*models.Guestbook, error) {
	entry, err := s.repo.FindByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGuestbookEntryNotFound
		}
		return nil, err
	}
	invitation, err := s.invitationRepo.FindByID(ctx, entry.InvitationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGuestbookInvitationNotFound
		}
		return nil, err
	}
	if invitation.UserID != userID {
		return nil, ErrGuestbookNotOwner
	}
	return entry, nil
}

func (s *GuestbookService) ApproveGuestbookEntry(ctx context.Context, entryID, userID uint) (*models.Guestbook, error) {
	entry, err := s.resolveOwnedEntry(ctx, entryID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetApproved(ctx, entryID, true); err != nil {
		return nil, err
	}
	entry.IsApproved = true
	return entry, nil
}

func (s *GuestbookService) DeleteGuestbookEntry(ctx context.Context, entryID, userID uint) error {
	if _, err := s.resolveOwnedEntry(ctx, entryID, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, entryID)
}

var _ IGuestbookService = (*GuestbookService)(nil)
