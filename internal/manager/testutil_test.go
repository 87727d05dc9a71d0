package manager

import (
	"path/filepath"
	"testing"

	"github.com/unibo-dtm-se-2025-MoneyMate/artifact-sub000/internal/config"

	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *DatabaseManager {
	t.Helper()
	cfg := config.Default()
	cfg.Database.Path = filepath.Join(t.TempDir(), "moneymate.db")
	cfg.Auth.PBKDF2Iterations = 1000 // keep the suite fast
	cfg.Auth.AdminPassword = "bootstrap-secret"

	dm, err := Open("", cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = dm.Close() })
	return dm
}

func registerUser(t *testing.T, dm *DatabaseManager, username string) uint {
	t.Helper()
	id, err := dm.Auth.Register(username, "", "long-enough-password")
	require.NoError(t, err)
	return id
}

func deletedCount(t *testing.T, res interface{}) int64 {
	t.Helper()
	r, ok := res.(map[string]interface{})
	require.True(t, ok, "expected a map payload, got %T", res)
	n, ok := r["deleted"].(int64)
	require.True(t, ok, "expected an int64 deleted count, got %T", r["deleted"])
	return n
}
