package database

import (
	"fmt"
	"log"
	"time"

	"github.com/unibo-dtm-se-2025-MoneyMate/artifact-sub000/internal/models"

	"gorm.io/gorm"
)

// SchemaVersion records every migration step applied to this database.
type SchemaVersion struct {
	Version   int `gorm:"primaryKey;autoIncrement:false"`
	Name      string
	AppliedAt time.Time
}

type migration struct {
	version int
	name    string
	run     func(*gorm.DB) error
}

// Numbered, idempotent migration steps. Older databases created before a
// column existed are patched in place with safe defaults, never rebuilt.
var migrations = []migration{
	{1, "base tables", func(db *gorm.DB) error {
		return db.AutoMigrate(
			&models.User{},
			&models.Contact{},
			&models.Expense{},
			&models.Transaction{},
		)
	}},
	{2, "categories and weak category reference", func(db *gorm.DB) error {
		if err := db.AutoMigrate(&models.Category{}); err != nil {
			return err
		}
		m := db.Migrator()
		if !m.HasColumn(&models.Expense{}, "category_id") {
			if err := m.AddColumn(&models.Expense{}, "category_id"); err != nil {
				return err
			}
		}
		return nil
	}},
	{3, "auth tables and lockout bookkeeping", func(db *gorm.DB) error {
		if err := db.AutoMigrate(&models.Session{}, &models.AccessLog{}); err != nil {
			return err
		}
		m := db.Migrator()
		for _, col := range []string{"email", "role", "is_active", "failed_attempts", "locked_until"} {
			if !m.HasColumn(&models.User{}, col) {
				if err := m.AddColumn(&models.User{}, col); err != nil {
					return err
				}
			}
		}
		return nil
	}},
}

// Migrate applies all pending migration steps, tracked in schema_versions.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&SchemaVersion{}); err != nil {
		return fmt.Errorf("migrate schema_versions: %w", err)
	}

	var current int
	if err := db.Model(&SchemaVersion{}).
		Select("COALESCE(MAX(version), 0)").
		Scan(&current).Error; err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := m.run(db); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
		rec := SchemaVersion{Version: m.version, Name: m.name, AppliedAt: time.Now().UTC()}
		if err := db.Create(&rec).Error; err != nil {
			return fmt.Errorf("record migration %d: %w", m.version, err)
		}
		log.Printf("applied migration %d: %s", m.version, m.name)
	}
	return nil
}
