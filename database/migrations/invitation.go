package migrations

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"undangan.link/configs/configslog"
	"undangan.link/models"
)

func MigrateInvitationsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating invitations table...")
	if err := db.AutoMigrate(&models.Invitation{}); err != nil {
		configslog.Log.Error("Failed to migrate invitations table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Invitations table migrated successfully")
	return nil
}

func MigrateRSVPsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating rsvps table...")
	if err := db.AutoMigrate(&models.RSVP{}); err != nil {
		configslog.Log.Error("Failed to migrate rsvps table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Rsvps table migrated successfully")
	return nil
}

func MigrateGuestbooksTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating guestbooks table...")
	if err := db.AutoMigrate(&models.Guestbook{}); err != nil {
		configslog.Log.Error("Failed to migrate guestbooks table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Guestbooks table migrated successfully")
	return nil
}
