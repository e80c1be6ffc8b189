package models

import "time"

// LoginLog is an append-only record of authentication attempts.
// UserID 0 marks an attempt against an unknown username, so no FK
// constraint is declared.
type LoginLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null;default:0" json:"user_id"`
	LoginTime time.Time `gorm:"type:timestamptz;not null;index" json:"login_time"`
	IPAddress string    `gorm:"type:varchar(64)" json:"ip_address"`
	UserAgent string    `gorm:"type:varchar(512)" json:"user_agent"`
	Success   bool      `gorm:"not null" json:"success"`
}
