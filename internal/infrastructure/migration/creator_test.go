package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := map[string]string{
		"create orders":       "create_orders",
		"Add-Order Meta":      "add_order_meta",
		"  spaced   name  ":   "spaced_name",
		"vat_number index!!":  "vat_number_index",
		"---":                 "",
		"ÜberTable":           "bertable",
		"add__double__under_": "add_double_under",
	}
	for in, want := range tests {
		assert.Equal(t, want, sanitizeName(in), in)
	}
}

func TestCreateMigration(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "migrations")

	first, err := CreateMigration(dir, "create orders", "")
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_create_orders.up.sql"), first.UpPath)
	assert.FileExists(t, first.DownPath)

	up, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- create orders")

	second, err := CreateMigration(dir, "Add order meta", "Order meta key-value table")
	require.NoError(t, err)
	assert.Equal(t, uint(2), second.Version)

	down, err := os.ReadFile(second.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "Rollback: Order meta key-value table")
}

func TestCreateMigration_InvalidName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"000002_create_order_meta.up.sql",
		"000002_create_order_meta.down.sql",
		"000001_create_orders.up.sql",
		"000001_create_orders.down.sql",
		"README.md",
		"000003_Bad-Name.up.sql",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("--"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "000004_dir.up.sql"), 0o755))

	got, err := ListMigrations(os.DirFS(dir))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, uint(1), got[0].Version)
	assert.Equal(t, "create_orders", got[0].Name)
	assert.Equal(t, "000001_create_orders.down.sql", got[0].DownPath)
	assert.Equal(t, "create_order_meta", got[1].Name)
}

func TestListMigrations_MissingDirectory(t *testing.T) {
	got, err := ListMigrations(os.DirFS(filepath.Join(t.TempDir(), "missing")))
	require.NoError(t, err)
	assert.Empty(t, got)
}
