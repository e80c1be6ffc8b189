package seeders

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"undangan.link/configs"
	"undangan.link/configs/configslog"
	"undangan.link/models"
)

const (
	superAdminUsername = "superadmin"
	superAdminEmail    = "admin@undangan.link"
	// Default credential for fresh installs, change it immediately.
	superAdminPassword = "undangan-admin"
)

// SeedSuperAdmin creates the platform super admin when no row with the
// reserved username exists. Name and email are masked at rest the same
// way the user service stores them.
func SeedSuperAdmin(db *gorm.DB) error {
	var existing models.User
	result := db.Where("username = ?", superAdminUsername).First(&existing)
	if result.Error == nil {
		configslog.SLog.Debugf("Super admin '%s' already exists, skipping.", superAdminUsername)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Failed to check super admin", zap.Error(result.Error))
		return result.Error
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(superAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	masker := configs.Masker()
	maskedName, err := masker.Mask("Platform Administrator")
	if err != nil {
		return err
	}
	maskedEmail, err := masker.MaskDeterministic(superAdminEmail)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	admin := models.User{
		Name:         maskedName,
		Username:     superAdminUsername,
		Email:        maskedEmail,
		PasswordHash: string(hash),
		Role:         models.RoleSuperAdmin,
		Status:       models.UserStatusActive,
		ApprovedAt:   &now,
	}
	if err := db.Create(&admin).Error; err != nil {
		configslog.Log.Error("Failed to create super admin", zap.Error(err))
		return err
	}

	configslog.SLog.Infof("Super admin '%s' created (ID: %d).", superAdminUsername, admin.ID)
	return nil
}
