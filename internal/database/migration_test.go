package database

import (
	"path/filepath"
	"testing"

	"github.com/unibo-dtm-se-2025-MoneyMate/artifact-sub000/internal/config"
	"github.com/unibo-dtm-se-2025-MoneyMate/artifact-sub000/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Init(config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	return db
}

func TestMigrateFreshDatabase(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))

	tables, err := ListTables(db)
	require.NoError(t, err)
	for _, want := range []string{
		"users", "sessions", "access_logs",
		"categories", "contacts", "expenses", "transactions",
		"schema_versions",
	} {
		assert.Contains(t, tables, want)
	}

	var current int
	require.NoError(t, db.Model(&SchemaVersion{}).
		Select("COALESCE(MAX(version), 0)").Scan(&current).Error)
	assert.Equal(t, len(migrations), current)
}

func TestMigrateIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	var count int64
	require.NoError(t, db.Model(&SchemaVersion{}).Count(&count).Error)
	assert.EqualValues(t, len(migrations), count)
}

func TestMigratePatchesOlderSchema(t *testing.T) {
	db := openTestDB(t)

	// simulate a first-generation database: users without the auth
	// columns, expenses without the weak category reference
	require.NoError(t, db.Exec(`CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	)`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE expenses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		title TEXT NOT NULL,
		price REAL NOT NULL,
		date TEXT NOT NULL,
		category TEXT,
		created_at DATETIME
	)`).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO users (username, password_hash) VALUES ('old-timer', 'x')`).Error)

	require.NoError(t, Migrate(db))

	m := db.Migrator()
	for _, col := range []string{"role", "is_active", "failed_attempts", "locked_until"} {
		assert.True(t, m.HasColumn(&models.User{}, col), "users.%s", col)
	}
	assert.True(t, m.HasColumn(&models.Expense{}, "category_id"))

	// existing rows survive the additive patch
	var user models.User
	require.NoError(t, db.Where("username = ?", "old-timer").First(&user).Error)
	assert.Zero(t, user.FailedAttempts)
}
