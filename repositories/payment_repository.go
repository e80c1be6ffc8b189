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

// IPaymentRepository handles payment persistence.
type IPaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByID(ctx context.Context, id uint) (*models.Payment, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	FindByUserID(ctx context.Context, userID uint) ([]models.Payment, error)
	Update(ctx context.Context, payment *models.Payment) error
	HasCompletedForInvitation(ctx context.Context, invitationID uint) (bool, error)
}

// PaymentRepository implements IPaymentRepository.
type PaymentRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Payment]
}

// NewPaymentRepository builds a repository on the global DB handle.
func NewPaymentRepository() IPaymentRepository {
	return NewPaymentRepositoryTx(configs.GetDB())
}

// NewPaymentRepositoryTx builds a repository bound to an open transaction.
func NewPaymentRepositoryTx(tx *gorm.DB) IPaymentRepository {
	base := NewBaseRepository[models.Payment](tx)
	base.SetAllowedSortColumns([]string{"id", "created_at", "status", "amount"})
	return &PaymentRepository{db: tx, base: base}
}

func (r *PaymentRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.getDB(ctx).Create(payment).Error
}

func (r *PaymentRepository) FindByID(ctx context.Context, id uint) (*models.Payment, error) {
	return r.base.FindByID(ctx, id)
}

func (r *PaymentRepository) FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	if transactionID == "" {
		return nil, ErrNotFound
	}
	var payment models.Payment
	err := r.getDB(ctx).Where("transaction_id = ?", transactionID).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("PaymentRepository.FindByTransactionID: DB error",
			zap.String("transactionID", transactionID), zap.Error(err))
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepository) FindByUserID(ctx context.Context, userID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.getDB(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&payments).Error
	if err != nil {
		configslog.Log.Error("PaymentRepository.FindByUserID: DB error", zap.Uint("userID", userID), zap.Error(err))
		return nil, err
	}
	return payments, nil
}

func (r *PaymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	if payment == nil || payment.ID == 0 {
		return errors.New("invalid payment for update")
	}
	return r.getDB(ctx).Save(payment).Error
}

func (r *PaymentRepository) HasCompletedForInvitation(ctx context.Context, invitationID uint) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Payment{}).
		Where("invitation_id = ? AND status = ?", invitationID, models.PaymentStatusCompleted).
		Count(&count).Error
	if err != nil {
		configslog.Log.Error("PaymentRepository.HasCompletedForInvitation: DB error",
			zap.Uint("invitationID", invitationID), zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

var _ IPaymentRepository = (*PaymentRepository)(nil)
