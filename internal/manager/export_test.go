package manager

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedExportExpenses(t *testing.T, dm *DatabaseManager, userID uint) {
	t.Helper()
	for _, in := range []CreateExpenseInput{
		{UserID: userID, Title: "Groceries", Price: 42.5, Date: "2025-01-10", Category: "Food"},
		{UserID: userID, Title: "Train ticket", Price: 9.9, Date: "2025-01-12", Category: "Travel"},
	} {
		require.True(t, dm.Expenses.Add(in).Success)
	}
}

func TestExportExpensesCSV(t *testing.T) {
	dm := newTestManager(t)
	alice := registerUser(t, dm, "alice")
	seedExportExpenses(t, dm, alice)

	var buf bytes.Buffer
	res := dm.Export.ExpensesCSV(alice, &buf)
	require.True(t, res.Success, res.Error)
	assert.Equal(t, 2, res.Data.(map[string]interface{})["rows"])

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Title,Price,Date,Category", lines[0])
	// newest first
	assert.Contains(t, lines[1], "Train ticket")
	assert.Contains(t, lines[2], "Groceries")
}

func TestExportExpensesCSVScopedToUser(t *testing.T) {
	dm := newTestManager(t)
	alice := registerUser(t, dm, "alice")
	bob := registerUser(t, dm, "bob")
	seedExportExpenses(t, dm, alice)

	var buf bytes.Buffer
	res := dm.Export.ExpensesCSV(bob, &buf)
	require.True(t, res.Success)
	assert.Equal(t, 0, res.Data.(map[string]interface{})["rows"])
}

func TestExportExpensesXLSXWritesWorkbook(t *testing.T) {
	dm := newTestManager(t)
	alice := registerUser(t, dm, "alice")
	seedExportExpenses(t, dm, alice)

	path := filepath.Join(t.TempDir(), "expenses.xlsx")
	res := dm.ExportExpensesXLSX(alice, path)
	require.True(t, res.Success, res.Error)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
