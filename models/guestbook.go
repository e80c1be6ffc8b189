package models

import "time"

// Guestbook is a public message left on an invitation. IsApproved starts
// false when the message trips the moderation denylist, true otherwise,
// and can later be toggled by the invitation owner.
type Guestbook struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	InvitationID uint      `gorm:"index;not null" json:"invitation_id"`
	GuestName    string    `gorm:"type:varchar(150);not null" json:"guest_name"`
	Message      string    `gorm:"type:text;not null" json:"message"`
	IsApproved   bool      `gorm:"not null;default:false;index" json:"is_approved"`
	CreatedAt    time.Time `gorm:"type:timestamptz;not null" json:"created_at"`

	Invitation Invitation `gorm:"foreignKey:InvitationID" json:"-"`
}
