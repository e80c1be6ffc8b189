package migrations

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"undangan.link/configs/configslog"
	"undangan.link/models"
)

func MigrateUsersTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating users table...")
	if err := db.AutoMigrate(&models.User{}); err != nil {
		configslog.Log.Error("Failed to migrate users table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Users table migrated successfully")
	return nil
}

func MigrateLoginLogsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating login_logs table...")
	if err := db.AutoMigrate(&models.LoginLog{}); err != nil {
		configslog.Log.Error("Failed to migrate login_logs table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Login_logs table migrated successfully")
	return nil
}
