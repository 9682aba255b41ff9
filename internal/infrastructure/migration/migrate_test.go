package migration

import (
	"io"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations_ArePaired(t *testing.T) {
	got, err := ListMigrations(Migrations())
	require.NoError(t, err)
	require.Len(t, got, 2)

	for i, mf := range got {
		assert.Equal(t, uint(i+1), mf.Version)
		assert.NotEmpty(t, mf.UpPath, mf.Name)
		assert.NotEmpty(t, mf.DownPath, mf.Name)
	}
}

func TestEmbeddedMigrations_Source(t *testing.T) {
	src, err := iofs.New(Migrations(), ".")
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	next, err := src.Next(first)
	require.NoError(t, err)
	assert.Equal(t, uint(2), next)

	r, _, err := src.ReadUp(next)
	require.NoError(t, err)
	body, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS order_meta")
	assert.Contains(t, string(body), "idx_order_meta_order_key")
}
