package models

import "time"

// InvitationStatus defines the publication states.
type InvitationStatus string

const (
	InvitationStatusDraft       InvitationStatus = "draft"
	InvitationStatusPublished   InvitationStatus = "published"
	InvitationStatusUnpublished InvitationStatus = "unpublished"
	InvitationStatusArchived    InvitationStatus = "archived"
)

// Valid reports whether the status is one of the known values.
func (s InvitationStatus) Valid() bool {
	switch s {
	case InvitationStatusDraft, InvitationStatusPublished,
		InvitationStatusUnpublished, InvitationStatusArchived:
		return true
	}
	return false
}

// Invitation is a wedding invitation owned by a user and rendered from a
// template. Slug is the public, case-sensitive URL segment. The counters
// are only ever incremented server-side.
type Invitation struct {
	BaseModel
	UserID      uint             `gorm:"index;not null" json:"user_id"`
	TemplateID  uint             `gorm:"index;not null" json:"template_id"`
	Title       string           `gorm:"type:varchar(255);not null" json:"title"`
	Slug        string           `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Status      InvitationStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	WeddingData string           `gorm:"type:jsonb;not null" json:"wedding_data"`
	CustomCSS   *string          `gorm:"type:text" json:"custom_css,omitempty"`
	ViewCount   int64            `gorm:"not null;default:0" json:"view_count"`
	RSVPCount   int64            `gorm:"not null;default:0" json:"rsvp_count"`
	PublishedAt *time.Time       `gorm:"type:timestamptz" json:"published_at,omitempty"`
	ExpiresAt   *time.Time       `gorm:"type:timestamptz;index" json:"expires_at,omitempty"`

	User     User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	Template Template `gorm:"foreignKey:TemplateID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
}

// IsExpired reports whether the invitation has passed its expiry.
func (i *Invitation) IsExpired(now time.Time) bool {
	return i.ExpiresAt != nil && now.After(*i.ExpiresAt)
}
