package database_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/infrastructure/database"
	"github.com/jhoicas/tienda-api/pkg/config"
)

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	b, err := database.Open(ctx, config.DBConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "nested", "tienda.db"),
	})
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, b.Admins.Create(ctx, &entity.Admin{ID: "admin", SecretHash: "h"}))
	a, err := b.Admins.GetByID(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", a.ID)
}

func TestOpen_DriverDesconocido(t *testing.T) {
	_, err := database.Open(context.Background(), config.DBConfig{Driver: "oracle"})
	assert.Error(t, err)
}
