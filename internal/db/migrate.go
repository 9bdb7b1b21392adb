package db

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"dataconsult/internal/model"
)

// Models lists every table in dependency order (referenced tables first).
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Job{},
		&model.Application{},
		&model.Category{},
		&model.Blog{},
		&model.Solution{},
		&model.Notification{},
		&model.ContactSubmission{},
		&model.FAQQuestion{},
	}
}

// Migrate runs AutoMigrate for all models.
func Migrate(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Reset drops all tables, dependents first. Missing tables are logged and skipped.
func Reset(gormDB *gorm.DB, logger *slog.Logger) {
	models := Models()
	for i := len(models) - 1; i >= 0; i-- {
		if err := gormDB.Migrator().DropTable(models[i]); err != nil {
			logger.Warn("drop table failed (may not exist)", slog.Any("error", err))
		}
	}
}
