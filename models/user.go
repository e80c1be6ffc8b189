package models

import "time"

// UserRole defines the account types.
type UserRole string

const (
	RoleSuperAdmin UserRole = "super_admin"
	RoleMitra      UserRole = "user_mitra"    // partner account, needs admin approval
	RoleCustomer   UserRole = "user_customer" // end customer, active immediately
)

// UserStatus defines the account lifecycle states.
type UserStatus string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusRejected  UserStatus = "rejected"
)

// InitialStatus returns the status a freshly registered account starts in.
// Mitra accounts wait for approval, everyone else is active.
func (r UserRole) InitialStatus() UserStatus {
	if r == RoleMitra {
		return UserStatusPending
	}
	return UserStatusActive
}

// Valid reports whether the role is one of the known values.
func (r UserRole) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleMitra, RoleCustomer:
		return true
	}
	return false
}

// User is an account. Name, Email and Phone are stored masked; the
// email mask is deterministic so the unique index stays enforceable.
type User struct {
	BaseModel
	Name         string     `gorm:"type:varchar(255);not null" json:"name"`
	Username     string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone        *string    `gorm:"type:varchar(255)" json:"phone,omitempty"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	Role         UserRole   `gorm:"type:varchar(20);not null;index" json:"role"`
	Status       UserStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	LastLogin    *time.Time `gorm:"type:timestamptz" json:"last_login,omitempty"`
	ApprovedBy   *uint      `gorm:"index" json:"approved_by,omitempty"`
	ApprovedAt   *time.Time `gorm:"type:timestamptz" json:"approved_at,omitempty"`

	Approver *User `gorm:"foreignKey:ApprovedBy" json:"-"`
}

// IsSuperAdmin reports whether the user holds the admin role.
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}
