package database

import (
	"fmt"
	"time"

	"github.com/FehCode/financeflow1/internal/models"

	"gorm.io/gorm"
)

// Schema versions:
// v1: users, transactions, goals, activities collections with their
//     secondary indexes (users.email unique, transactions.user_id/date,
//     goals.user_id/deadline, activities.user_id/timestamp)
//
// Upgrades are additive only: a step may create missing tables, columns or
// indexes but never rewrites or drops existing records.
const schemaVersion = 1

type schemaMigration struct {
	Version   int `gorm:"primaryKey"`
	AppliedAt time.Time
}

func (schemaMigration) TableName() string { return "schema_migrations" }

var migrationSteps = map[int]func(*gorm.DB) error{
	1: func(db *gorm.DB) error {
		return db.AutoMigrate(
			&models.User{},
			&models.Transaction{},
			&models.Goal{},
			&models.Activity{},
		)
	},
}

// migrate upgrades the schema to the current version. Re-running on an
// up-to-date database is a no-op.
func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&schemaMigration{}); err != nil {
		return fmt.Errorf("migrate version table: %w", err)
	}

	var current int
	if err := db.Model(&schemaMigration{}).
		Select("COALESCE(MAX(version), 0)").
		Scan(&current).Error; err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for v := current + 1; v <= schemaVersion; v++ {
		step, ok := migrationSteps[v]
		if !ok {
			return fmt.Errorf("missing migration step for version %d", v)
		}
		if err := step(db); err != nil {
			return fmt.Errorf("apply migration v%d: %w", v, err)
		}
		if err := db.Create(&schemaMigration{Version: v, AppliedAt: time.Now()}).Error; err != nil {
			return fmt.Errorf("record migration v%d: %w", v, err)
		}
	}
	return nil
}
