package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"undangan.link/configs"
	"undangan.link/configs/configslog"
	"undangan.link/models"
	"undangan.link/pkg/paygate"
	"undangan.link/repositories"
)

// PaymentServiceError is the typed error set for payment operations.
type PaymentServiceError string

func (e PaymentServiceError) Error() string { return string(e) }

const (
	ErrPaymentNotFound          PaymentServiceError = "payment not found"
	ErrPayerNotFound            PaymentServiceError = "user not found"
	ErrPaidInvitationNotFound   PaymentServiceError = "invitation not found"
	ErrInvitationNotOwnedByUser PaymentServiceError = "invitation does not belong to this user"
	ErrChargeFailed             PaymentServiceError = "payment gateway charge failed"
	ErrPaymentCreationFailed    PaymentServiceError = "payment could not be created"
	ErrPaymentUpdateFailed      PaymentServiceError = "payment could not be updated"
)

// transactionIDPrefix gives payment references a readable prefix before
// the random token, matching what support staff search by.
const transactionIDPrefix = "TRX-"

// CreatePaymentInput is the charge request payload.
type CreatePaymentInput struct {
	UserID        uint
	InvitationID  uint
	Amount        int64
	Currency      string
	PaymentMethod string
}

// CreatePaymentResult returns the pending payment plus the gateway's
// redirect URL for the hosted checkout page.
type CreatePaymentResult struct {
	Payment     *models.Payment `json:"payment"`
	RedirectURL string          `json:"redirect_url,omitempty"`
}

// GatewayResponse is the opaque confirmation a caller or webhook
// delivers. Raw is stored verbatim for audit.
type GatewayResponse struct {
	Success bool            `json:"success"`
	Raw     json.RawMessage `json:"raw,omitempty"`
}

// IPaymentService is the payment operations interface.
type IPaymentService interface {
	CreatePayment(ctx context.Context, input CreatePaymentInput) (*CreatePaymentResult, error)
	// ProcessPayment settles a pending payment from a gateway response.
	// On success it publishes the linked invitation through the single
	// authoritative publish path; on failure the invitation is untouched.
	ProcessPayment(ctx context.Context, paymentID uint, response GatewayResponse) (*models.Payment, error)
	// HandleNotification verifies a provider webhook against the gateway
	// before settling, instead of trusting the payload.
	HandleNotification(ctx context.Context, orderID string) (*models.Payment, error)
	GetPaymentsByUser(ctx context.Context, userID uint) ([]models.Payment, error)
}

// PaymentService implements IPaymentService.
type PaymentService struct {
	repo           repositories.IPaymentRepository
	userRepo       repositories.IUserRepository
	invitationRepo repositories.IInvitationRepository
	invitations    IInvitationService
	gateway        paygate.Gateway
}

// NewPaymentService builds the service with the default repositories and
// the configured gateway.
func NewPaymentService() IPaymentService {
	return &PaymentService{
		repo:           repositories.NewPaymentRepository(),
		userRepo:       repositories.NewUserRepository(),
		invitationRepo: repositories.NewInvitationRepository(),
		invitations:    NewInvitationService(),
		gateway:        configs.PaymentGateway(),
	}
}

func (s *PaymentService) CreatePayment(ctx context.Context, input CreatePaymentInput) (*CreatePaymentResult, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPayerNotFound
		}
		return nil, err
	}

	invitation, err := s.invitationRepo.FindByID(ctx, input.InvitationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPaidInvitationNotFound
		}
		return nil, err
	}
	if invitation.UserID != input.UserID {
		return nil, ErrInvitationNotOwnedByUser
	}

	transactionID := transactionIDPrefix + uuid.NewString()
	charge, err := s.gateway.Charge(paygate.ChargeRequest{
		OrderID:      transactionID,
		Amount:       input.Amount,
		Currency:     input.Currency,
		Method:       input.PaymentMethod,
		CustomerName: user.Username,
	})
	if err != nil {
		configslog.Log.Error("CreatePayment: gateway charge failed",
			zap.String("transactionID", transactionID), zap.Error(err))
		return nil, ErrChargeFailed
	}

	payment := models.Payment{
		UserID:        input.UserID,
		InvitationID:  input.InvitationID,
		Amount:        input.Amount,
		Currency:      input.Currency,
		PaymentMethod: input.PaymentMethod,
		Status:        models.PaymentStatusPending,
		TransactionID: &transactionID,
	}
	if err := s.repo.Create(ctx, &payment); err != nil {
		configslog.Log.Error("CreatePayment: insert failed", zap.String("transactionID", transactionID), zap.Error(err))
		return nil, ErrPaymentCreationFailed
	}

	configslog.SLog.Infof("payment created: id=%d transaction=%s invitation=%d",
		payment.ID, transactionID, payment.InvitationID)
	return &CreatePaymentResult{Payment: &payment, RedirectURL: charge.RedirectURL}, nil
}

func (s *PaymentService) ProcessPayment(ctx context.Context, paymentID uint, response GatewayResponse) (*models.Payment, error) {
	payment, err := s.repo.FindByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	if response.Success {
		payment.Status = models.PaymentStatusCompleted
	} else {
		payment.Status = models.PaymentStatusFailed
	}
	if len(response.Raw) > 0 {
		raw := string(response.Raw)
		payment.PaymentData = &raw
	}

	if err := s.repo.Update(ctx, payment); err != nil {
		configslog.Log.Error("ProcessPayment: save failed", zap.Uint("paymentID", paymentID), zap.Error(err))
		return nil, ErrPaymentUpdateFailed
	}
	configslog.SLog.Infof("payment processed: id=%d status=%s", payment.ID, payment.Status)

	if payment.Status == models.PaymentStatusCompleted {
		// The completed row is in place, so the publish path's own
		// payment check passes and both publish routes converge.
		if _, err := s.invitations.PublishInvitation(ctx, payment.InvitationID); err != nil {
			configslog.Log.Error("ProcessPayment: publish after completion failed",
				zap.Uint("invitationID", payment.InvitationID), zap.Error(err))
			return nil, err
		}
	}
	return payment, nil
}

func (s *PaymentService) HandleNotification(ctx context.Context, orderID string) (*models.Payment, error) {
	payment, err := s.repo.FindByTransactionID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	verdict, err := s.gateway.Verify(orderID)
	if err != nil {
		configslog.Log.Error("HandleNotification: gateway verify failed", zap.String("orderID", orderID), zap.Error(err))
		return nil, ErrChargeFailed
	}
	return s.ProcessPayment(ctx, payment.ID, GatewayResponse{
		Success: verdict.Success,
		Raw:     json.RawMessage(verdict.Raw),
	})
}

func (s *PaymentService) GetPaymentsByUser(ctx context.Context, userID uint) ([]models.Payment, error) {
	return s.repo.FindByUserID(ctx, userID)
}

var _ IPaymentService = (*PaymentService)(nil)
