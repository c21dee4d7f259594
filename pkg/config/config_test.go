package config_test

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/pkg/config"
)

func TestLoadFrom_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.LoadFrom(afero.NewMemMapFs(), "/etc/tienda")
	require.NoError(t, err)

	assert.Equal(t, config.DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "data/tienda.db", cfg.DB.SQLitePath)
	assert.Equal(t, 20*time.Minute, cfg.Session.TTL())
	assert.Equal(t, time.Duration(0), cfg.Session.SweepInterval())
	assert.Equal(t, "media/images", cfg.Storage.PhotosDir)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoadFrom_ArchivoYEntorno(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/tienda/config.env", []byte(
		"DB_DRIVER=postgres\nHTTP_PORT=9090\nSESSION_TTL_MINUTES=5\nPHOTOS_DIR=/srv/fotos\n"), 0o644))
	t.Setenv("HTTP_PORT", "7070")

	cfg, err := config.LoadFrom(fs, "/etc/tienda")
	require.NoError(t, err)

	assert.Equal(t, config.DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, 7070, cfg.HTTP.Port, "la variable de entorno tiene prioridad sobre el archivo")
	assert.Equal(t, 5*time.Minute, cfg.Session.TTL())
	assert.Equal(t, "/srv/fotos", cfg.Storage.PhotosDir)
}

func TestLoadFrom_DriverInvalido(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	_, err := config.LoadFrom(afero.NewMemMapFs(), "/etc/tienda")
	assert.Error(t, err)
}

func TestLoadFrom_TTLInvalido(t *testing.T) {
	t.Setenv("SESSION_TTL_MINUTES", "0")
	_, err := config.LoadFrom(afero.NewMemMapFs(), "/etc/tienda")
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "tienda", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/tienda?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
