package migrations

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"undangan.link/configs/configslog"
	"undangan.link/models"
)

func MigratePaymentsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating payments table...")
	if err := db.AutoMigrate(&models.Payment{}); err != nil {
		configslog.Log.Error("Failed to migrate payments table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Payments table migrated successfully")
	return nil
}

func MigrateVisitorsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating visitors table...")
	if err := db.AutoMigrate(&models.Visitor{}); err != nil {
		configslog.Log.Error("Failed to migrate visitors table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Visitors table migrated successfully")
	return nil
}
