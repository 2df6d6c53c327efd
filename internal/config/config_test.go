package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("APP_BASE_PATH", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "/api", cfg.App.BasePath)

	t.Setenv("STORE_DRIVER", "mysql")
	_, err = Load("")
	require.Error(t, err)

	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("APP_BASE_PATH", "api/")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, StoreDriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "/api", cfg.App.BasePath)
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
}

func TestLoad_FileThenEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "employee-service.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app_port: \"9090\"\nlog_level: debug\nstore_driver: sqlite\n"), 0o600))

	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "warn", cfg.Logger.Level)
	assert.Equal(t, StoreDriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestNormalizeBasePath(t *testing.T) {
	assert.Equal(t, "", normalizeBasePath("/"))
	assert.Equal(t, "", normalizeBasePath("  "))
	assert.Equal(t, "/v1/api", normalizeBasePath("/v1/api/"))
}

func TestAccessTokenTTL(t *testing.T) {
	assert.Equal(t, time.Hour, AuthConfig{}.AccessTokenTTL())
	assert.Equal(t, 15*time.Minute, AuthConfig{AccessTokenTTLMinutes: 15}.AccessTokenTTL())
}

func TestLoad_RejectsBcryptCostOutOfRange(t *testing.T) {
	t.Setenv("AUTH_BCRYPT_COST", "40")
	_, err := Load("")
	require.Error(t, err)

	t.Setenv("AUTH_BCRYPT_COST", "0")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Auth.BcryptCost)
}
