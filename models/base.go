package models

import "time"

// BaseModel carries the surrogate key and timestamps shared by the
// mutable entities. Append-only rows (logs, RSVPs, visitors) declare
// their own narrower column set.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;not null" json:"updated_at"`
}
