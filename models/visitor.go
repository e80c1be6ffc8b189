package models

import "time"

// Visitor is an append-only page-view record. IPAddress and UserAgent are
// stored masked; the unmasked values only exist in the create response.
type Visitor struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	InvitationID uint      `gorm:"index;not null" json:"invitation_id"`
	IPAddress    string    `gorm:"type:varchar(255);not null" json:"ip_address"`
	UserAgent    string    `gorm:"type:varchar(1024)" json:"user_agent"`
	Referrer     *string   `gorm:"type:varchar(500)" json:"referrer,omitempty"`
	VisitedAt    time.Time `gorm:"type:timestamptz;not null;index" json:"visited_at"`

	Invitation Invitation `gorm:"foreignKey:InvitationID" json:"-"`
}
