package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"undangan.link/configs/configslog"
	"undangan.link/database/migrations"
	"undangan.link/database/seeders"
)

// Initialize runs migrations and/or seeders inside one transaction so a
// half-applied schema never survives a failure.
func Initialize(db *gorm.DB, migrate bool, seed bool) {
	if !migrate && !seed {
		configslog.SLog.Info("Neither -migrate nor -seed given, nothing to do.")
		return
	}

	tx := db.Begin()
	if tx.Error != nil {
		configslog.Log.Fatal("Failed to begin database transaction", zap.Error(tx.Error))
		return
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			configslog.Log.Fatal("Database initialization panicked", zap.Any("panic_info", r))
		} else if err := tx.Error; err != nil && err != gorm.ErrInvalidTransaction {
			configslog.SLog.Warn("Rolling back after initialization error.", zap.Error(err))
			rbErr := tx.Rollback().Error
			if rbErr != nil && rbErr != gorm.ErrInvalidTransaction {
				configslog.Log.Error("Rollback failed", zap.Error(rbErr))
			}
		}
	}()

	configslog.SLog.Info("Database initialization starting...")

	if migrate {
		configslog.SLog.Info("Running migrations...")
		if err := RunMigrationsInOrder(tx); err != nil {
			configslog.Log.Error("Migration failed", zap.Error(err))
			return
		}
		configslog.SLog.Info("Migrations finished.")
	}

	if seed {
		configslog.SLog.Info("Running seeders...")
		if err := CheckAndRunSeeders(tx); err != nil {
			configslog.Log.Error("Seeding failed", zap.Error(err))
			return
		}
		configslog.SLog.Info("Seeders finished.")
	}

	if err := tx.Commit().Error; err != nil {
		tx.Error = err
		configslog.Log.Error("Commit failed", zap.Error(err))
		return
	}

	configslog.SLog.Info("Database initialization completed successfully")
}

// RunMigrationsInOrder migrates tables parents-first so foreign keys
// always find their targets.
func RunMigrationsInOrder(db *gorm.DB) error {
	steps := []struct {
		name string
		fn   func(*gorm.DB) error
	}{
		{"users", migrations.MigrateUsersTable},
		{"templates", migrations.MigrateTemplatesTable},
		{"invitations", migrations.MigrateInvitationsTable},
		{"rsvps", migrations.MigrateRSVPsTable},
		{"guestbooks", migrations.MigrateGuestbooksTable},
		{"payments", migrations.MigratePaymentsTable},
		{"visitors", migrations.MigrateVisitorsTable},
		{"login_logs", migrations.MigrateLoginLogsTable},
	}

	for _, step := range steps {
		configslog.SLog.Infof(" -> Migrating %s...", step.name)
		if err := step.fn(db); err != nil {
			configslog.Log.Error("Migration step failed", zap.String("table", step.name), zap.Error(err))
			return err
		}
	}

	configslog.SLog.Info("All migrations ran successfully.")
	return nil
}

// CheckAndRunSeeders runs the idempotent seeders.
func CheckAndRunSeeders(db *gorm.DB) error {
	configslog.SLog.Info(" -> Seeding super admin...")
	if err := seeders.SeedSuperAdmin(db); err != nil {
		configslog.Log.Error("Super admin seeding failed", zap.Error(err))
		return err
	}

	configslog.SLog.Info(" -> Seeding starter templates...")
	if err := seeders.SeedTemplates(db); err != nil {
		configslog.Log.Error("Template seeding failed", zap.Error(err))
		return err
	}

	configslog.SLog.Info("All seeders checked/ran successfully.")
	return nil
}
