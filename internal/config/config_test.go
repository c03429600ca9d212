package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"SERVER_PORT", "LOG_LEVEL", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD",
	"DB_NAME", "DB_SSLMODE", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS",
	"STRICT_PUBKEYS", "RUN_MIGRATIONS", "REQUEST_TIMEOUT",
}

// clearEnv blanks every variable LoadConfig reads; t.Setenv restores them.
func clearEnv(t *testing.T) {
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "5500", cfg.ServerPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.RunMigrations)
	assert.False(t, cfg.StrictPubkeys)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 25, cfg.DB.MaxOpenConns)
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
server_port: "9000"
log_level: debug
strict_pubkeys: true
request_timeout: 5s
database:
  host: db.internal
  port: 6432
  dbname: credits
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("DB_NAME", "credits_override")
	t.Setenv("RUN_MIGRATIONS", "false")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.StrictPubkeys)
	assert.False(t, cfg.RunMigrations)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 6432, cfg.DB.Port)
	assert.Equal(t, "credits_override", cfg.DB.DBName)
	assert.Equal(t, "user", cfg.DB.User, "unset keys keep their defaults")
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("InvalidDBPort", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DB_PORT", "abc")
		_, err := LoadConfig("")
		assert.ErrorContains(t, err, "invalid DB_PORT")
	})

	t.Run("ServerPortOutOfRange", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SERVER_PORT", "70000")
		_, err := LoadConfig("")
		assert.ErrorContains(t, err, "server port")
	})

	t.Run("InvalidBool", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STRICT_PUBKEYS", "maybe")
		_, err := LoadConfig("")
		assert.ErrorContains(t, err, "invalid STRICT_PUBKEYS")
	})

	t.Run("MissingFile", func(t *testing.T) {
		clearEnv(t)
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorContains(t, err, "failed to read config file")
	})
}
