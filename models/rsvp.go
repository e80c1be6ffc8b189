package models

import "time"

// RSVPStatus defines the possible attendance answers.
type RSVPStatus string

const (
	RSVPStatusAttending    RSVPStatus = "attending"
	RSVPStatusNotAttending RSVPStatus = "not_attending"
	RSVPStatusMaybe        RSVPStatus = "maybe"
)

// Valid reports whether the status is one of the known values.
func (s RSVPStatus) Valid() bool {
	switch s {
	case RSVPStatusAttending, RSVPStatusNotAttending, RSVPStatusMaybe:
		return true
	}
	return false
}

// RSVP is a guest's attendance answer. Per invitation a guest may appear
// only once: the same name, the same non-null email or the same non-null
// phone all count as the same guest. Rows are append-only.
type RSVP struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	InvitationID uint       `gorm:"index;not null" json:"invitation_id"`
	GuestName    string     `gorm:"type:varchar(150);not null" json:"guest_name"`
	GuestEmail   *string    `gorm:"type:varchar(150);index" json:"guest_email,omitempty"`
	GuestPhone   *string    `gorm:"type:varchar(30);index" json:"guest_phone,omitempty"`
	Status       RSVPStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	GuestCount   int        `gorm:"not null;default:1" json:"guest_count"`
	Message      *string    `gorm:"type:text" json:"message,omitempty"`
	CreatedAt    time.Time  `gorm:"type:timestamptz;not null" json:"created_at"`

	Invitation Invitation `gorm:"foreignKey:InvitationID" json:"-"`
}
