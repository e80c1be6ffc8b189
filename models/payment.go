package models

// PaymentStatus defines the payment lifecycle states.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Payment is a charge for publishing an invitation. PaymentData stores the
// raw gateway response verbatim for audit; the core never interprets it
// beyond the success flag on the callback.
type Payment struct {
	BaseModel
	UserID        uint          `gorm:"index;not null" json:"user_id"`
	InvitationID  uint          `gorm:"index;not null" json:"invitation_id"`
	Amount        int64         `gorm:"not null" json:"amount"`
	Currency      string        `gorm:"type:varchar(10);not null" json:"currency"`
	PaymentMethod string        `gorm:"type:varchar(50);not null" json:"payment_method"`
	Status        PaymentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	TransactionID *string       `gorm:"type:varchar(100);index" json:"transaction_id,omitempty"`
	PaymentData   *string       `gorm:"type:jsonb" json:"payment_data,omitempty"`

	User       User       `gorm:"foreignKey:UserID" json:"-"`
	Invitation Invitation `gorm:"foreignKey:InvitationID" json:"-"`
}
