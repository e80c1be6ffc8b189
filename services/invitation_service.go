package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"undangan.link/configs/configslog"
	"undangan.link/models"
	"undangan.link/repositories"
)

// InvitationServiceError is the typed error set for invitation operations.
type InvitationServiceError string

func (e InvitationServiceError) Error() string { return string(e) }

const (
	ErrInvitationNotFound       InvitationServiceError = "invitation not found"
	ErrSlugTaken                InvitationServiceError = "slug already exists"
	ErrInvalidWeddingData       InvitationServiceError = "wedding_data is not valid JSON"
	ErrOwnerNotFound            InvitationServiceError = "user not found"
	ErrOwnerNotActive           InvitationServiceError = "user is not active"
	ErrTemplateUnavailable      InvitationServiceError = "template not found or inactive"
	ErrNoCompletedPayment       InvitationServiceError = "no completed payment found"
	ErrInvitationAccessDenied   InvitationServiceError = "invitation not found or access denied"
	ErrInvitationCreationFailed InvitationServiceError = "invitation could not be created"
	ErrInvitationUpdateFailed   InvitationServiceError = "invitation could not be updated"
)

// CreateInvitationInput is the invitation creation payload.
type CreateInvitationInput struct {
	UserID      uint
	TemplateID  uint
	Title       string
	Slug        string
	WeddingData string
	CustomCSS   *string
	ExpiresAt   *time.Time
}

// UpdateInvitationInput is a partial invitation update; nil fields stay
// untouched.
type UpdateInvitationInput struct {
	ID          uint
	Title       *string
	Slug        *string
	WeddingData *string
	CustomCSS   *string
	Status      *models.InvitationStatus
	ExpiresAt   *time.Time
}

// IInvitationService is the invitation operations interface.
type IInvitationService interface {
	CreateInvitation(ctx context.Context, input CreateInvitationInput) (*models.Invitation, error)
	CheckSlugAvailability(ctx context.Context, slug string) (bool, error)
	// GetInvitations lists per the visibility rule: nil userID is the
	// public gallery (published only), super admins see all, other users
	// see their own rows.
	GetInvitations(ctx context.Context, userID *uint) ([]models.Invitation, error)
	// GetInvitationBySlug resolves a published invitation and counts the
	// view; (nil, nil) when absent or unpublished.
	GetInvitationBySlug(ctx context.Context, slug string) (*models.Invitation, error)
	// GetPublishedForDisplay resolves a published, non-expired invitation
	// without touching the view counter; the page visit is counted by the
	// visitor log instead.
	GetPublishedForDisplay(ctx context.Context, slug string) (*models.Invitation, error)
	// GetInvitationByID returns (nil, nil) when the invitation is not
	// visible to the caller, hiding existence from non-owners.
	GetInvitationByID(ctx context.Context, id uint, userID *uint) (*models.Invitation, error)
	UpdateInvitation(ctx context.Context, input UpdateInvitationInput) (*models.Invitation, error)
	// PublishInvitation is the single authoritative publish path; it
	// requires a completed payment and stamps published_at once.
	PublishInvitation(ctx context.Context, id uint) (*models.Invitation, error)
	DeleteInvitation(ctx context.Context, id, userID uint) error
}

// InvitationService implements IInvitationService.
type InvitationService struct {
	repo        repositories.IInvitationRepository
	userRepo    repositories.IUserRepository
	tmplRepo    repositories.ITemplateRepository
	paymentRepo repositories.IPaymentRepository
}

// NewInvitationService builds the service with the default repositories.
func NewInvitationService() IInvitationService {
	return &InvitationService{
		repo:        repositories.NewInvitationRepository(),
		userRepo:    repositories.NewUserRepository(),
		tmplRepo:    repositories.NewTemplateRepository(),
		paymentRepo: repositories.NewPaymentRepository(),
	}
}

func (s *InvitationService) CreateInvitation(ctx context.Context, input CreateInvitationInput) (*models.Invitation, error) {
	// Validation order is part of the contract: slug, owner, template,
	// payload; short-circuit on the first failure.
	taken, err := s.repo.SlugExists(ctx, input.Slug, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlugTaken
	}

	owner, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOwnerNotFound
		}
		return nil, err
	}
	if owner.Status != models.UserStatusActive {
		return nil, ErrOwnerNotActive
	}

	template, err := s.tmplRepo.FindByID(ctx, input.TemplateID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTemplateUnavailable
		}
		return nil, err
	}
	if !template.IsActive {
		return nil, ErrTemplateUnavailable
	}

	if !json.Valid([]byte(input.WeddingData)) {
		return nil, ErrInvalidWeddingData
	}

	invitation := models.Invitation{
		UserID:      input.UserID,
		TemplateID:  input.TemplateID,
		Title:       input.Title,
		Slug:        input.Slug,
		Status:      models.InvitationStatusDraft,
		WeddingData: input.WeddingData,
		CustomCSS:   input.CustomCSS,
		ExpiresAt:   input.ExpiresAt,
	}
	if err := s.repo.Create(ctx, &invitation); err != nil {
		configslog.Log.Error("CreateInvitation: insert failed", zap.String("slug", input.Slug), zap.Error(err))
		return nil, ErrInvitationCreationFailed
	}
	configslog.SLog.Infof("invitation created: id=%d slug=%s owner=%d", invitation.ID, invitation.Slug, invitation.UserID)
	return &invitation, nil
}

func (s *InvitationService) CheckSlugAvailability(ctx context.Context, slug string) (bool, error) {
	taken, err := s.repo.SlugExists(ctx, slug, 0)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

func (s *InvitationService) GetInvitations(ctx context.Context, userID *uint) ([]models.Invitation, error) {
	if userID == nil {
		return s.repo.FindPublished(ctx)
	}

	caller, err := s.userRepo.FindByID(ctx, *userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOwnerNotFound
		}
		return nil, err
	}
	if caller.IsSuperAdmin() {
		return s.repo.FindAll(ctx)
	}
	return s.repo.FindByUserID(ctx, caller.ID)
}

func (s *InvitationService) GetInvitationBySlug(ctx context.Context, slug string) (*models.Invitation, error) {
	invitation, err := s.repo.FindPublishedBySlugForView(ctx, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return invitation, nil
}

func (s *InvitationService) GetPublishedForDisplay(ctx context.Context, slug string) (*models.Invitation, error) {
	invitation, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if invitation.Status != models.InvitationStatusPublished || invitation.IsExpired(time.Now().UTC()) {
		return nil, nil
	}
	return invitation, nil
}

func (s *InvitationService) GetInvitationByID(ctx context.Context, id uint, userID *uint) (*models.Invitation, error) {
	invitation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var viewer *models.User
	if userID != nil {
		viewer, err = s.userRepo.FindByID(ctx, *userID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrOwnerNotFound
			}
			return nil, err
		}
	}
	if !CanViewInvitation(viewer, invitation) {
		return nil, nil
	}
	return invitation, nil
}

func (s *InvitationService) UpdateInvitation(ctx context.Context, input UpdateInvitationInput) (*models.Invitation, error) {
	invitation, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}

	if input.Slug != nil && *input.Slug != invitation.Slug {
		taken, err := s.repo.SlugExists(ctx, *input.Slug, invitation.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrSlugTaken
		}
		invitation.Slug = *input.Slug
	}
	if input.WeddingData != nil {
		if !json.Valid([]byte(*input.WeddingData)) {
			return nil, ErrInvalidWeddingData
		}
		invitation.WeddingData = *input.WeddingData
	}
	if input.Title != nil {
		invitation.Title = *input.Title
	}
	if input.CustomCSS != nil {
		invitation.CustomCSS = input.CustomCSS
	}
	if input.ExpiresAt != nil {
		invitation.ExpiresAt = input.ExpiresAt
	}
	if input.Status != nil && *input.Status != invitation.Status {
		applyStatus(invitation, *input.Status, time.Now().UTC())
	}

	if err := s.repo.Update(ctx, invitation); err != nil {
		configslog.Log.Error("UpdateInvitation: save failed", zap.Uint("id", input.ID), zap.Error(err))
		return nil, ErrInvitationUpdateFailed
	}
	return invitation, nil
}

// applyStatus is the one place a status write happens, so the
// published_at invariant holds on every path that reaches published.
func applyStatus(invitation *models.Invitation, status models.InvitationStatus, now time.Time) {
	if status == models.InvitationStatusPublished && invitation.Status != models.InvitationStatusPublished {
		if invitation.PublishedAt == nil {
			invitation.PublishedAt = &now
		}
	}
	invitation.Status = status
}

func (s *InvitationService) PublishInvitation(ctx context.Context, id uint) (*models.Invitation, error) {
	invitation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}

	paid, err := s.paymentRepo.HasCompletedForInvitation(ctx, id)
	if err != nil {
		return nil, err
	}
	if !paid {
		return nil, ErrNoCompletedPayment
	}

	applyStatus(invitation, models.InvitationStatusPublished, time.Now().UTC())
	if err := s.repo.Update(ctx, invitation); err != nil {
		configslog.Log.Error("PublishInvitation: save failed", zap.Uint("id", id), zap.Error(err))
		return nil, ErrInvitationUpdateFailed
	}
	configslog.SLog.Infof("invitation published: id=%d slug=%s", invitation.ID, invitation.Slug)
	return invitation, nil
}

func (s *InvitationService) DeleteInvitation(ctx context.Context, id, userID uint) error {
	err := s.repo.DeleteCascade(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// Not-found and not-owned are reported identically so a
			// non-owner cannot probe for existence.
			return ErrInvitationAccessDenied
		}
		configslog.Log.Error("DeleteInvitation: cascade failed", zap.Uint("id", id), zap.Uint("userID", userID), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("invitation deleted: id=%d owner=%d", id, userID)
	return nil
}

var _ IInvitationService = (*InvitationService)(nil)
