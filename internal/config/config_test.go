package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_OverridesDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "/tmp/pms.db")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")

	cfg := Default()
	cfg.ParseEnv()

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "/tmp/pms.db", cfg.DBPath)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "3306", cfg.DBPort)
}

func TestLoadFile_ThenEnvWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "db_driver: postgres\ndb_port: \"5432\"\nsession_store: cookie\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("DB_PORT", "6543")

	cfg := Default()
	require.NoError(t, cfg.LoadFile(path))
	cfg.ParseEnv()

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "cookie", cfg.SessionStore)
	assert.Equal(t, "6543", cfg.DBPort)
}

func TestIsProduction(t *testing.T) {
	cfg := Default()
	assert.False(t, cfg.IsProduction())
	cfg.GinMode = "release"
	assert.True(t, cfg.IsProduction())
}
