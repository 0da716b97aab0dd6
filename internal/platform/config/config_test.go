package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_DefaultValues tests that hardcoded defaults are applied correctly.
// This test doesn't depend on YAML files - it only tests the defaults() function.
func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "quote-service", cfg.App.Name)
	assert.Equal(t, "dev", cfg.App.Version)
	assert.Equal(t, "local", cfg.App.Environment)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	require.NoError(t, cfg.Validate())
}

// TestLoad_StorageDefaults tests that the embedded backend is the default.
func TestLoad_StorageDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.False(t, cfg.Storage.Remote)
	assert.Equal(t, "sqlite", cfg.Storage.Backend())
	assert.Equal(t, DefaultSQLitePath, cfg.Storage.SQLite.Path)
	assert.Equal(t, 5*time.Second, cfg.Storage.SQLite.BusyTimeout)
	assert.Empty(t, cfg.Storage.Mongo.URI)
	assert.Equal(t, "quotes", cfg.Storage.Mongo.Database)
	assert.Equal(t, "quotes", cfg.Storage.Mongo.Collection)
	assert.Equal(t, 5*time.Second, cfg.Storage.Mongo.ConnectTimeout)
	assert.Equal(t, 10*time.Second, cfg.Storage.Mongo.OperationTimeout)
}

// TestLoad_EnvVarOverrides tests that environment variables override defaults.
func TestLoad_EnvVarOverrides(t *testing.T) {
	t.Setenv("APP_SERVER_PORT", "9090")
	t.Setenv("APP_LOG_LEVEL", "warn")
	t.Setenv("APP_STORAGE_REMOTE", "true")
	t.Setenv("APP_STORAGE_MONGO_URI", "mongodb://db:27017")
	t.Setenv("APP_STORAGE_MONGO_CONNECT_TIMEOUT", "2s")
	t.Setenv("APP_SERVER_REQUEST_TIMEOUT", "3s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Storage.Remote)
	assert.Equal(t, "mongodb://db:27017", cfg.Storage.Mongo.URI)
	assert.Equal(t, 2*time.Second, cfg.Storage.Mongo.ConnectTimeout)
	assert.Equal(t, 3*time.Second, cfg.Server.RequestTimeout)
}

// TestLoad_LegacyEnvVars tests the deployment variable names.
func TestLoad_LegacyEnvVars(t *testing.T) {
	t.Setenv("REMOTE_DB", "true")
	t.Setenv("SPRING_DATA_MONGODB_URI", "mongodb://spring:27017")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.True(t, cfg.Storage.Remote)
	assert.Equal(t, "mongodb://spring:27017", cfg.Storage.Mongo.URI)

	t.Setenv("MONGODB_URI", "mongodb://plain:27017")

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "mongodb://plain:27017", cfg.Storage.Mongo.URI)

	t.Setenv("APP_STORAGE_MONGO_URI", "mongodb://app:27017")

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "mongodb://app:27017", cfg.Storage.Mongo.URI, "APP_ variables win over legacy names")
}

func TestLegacyValues(t *testing.T) {
	env := map[string]string{
		"REMOTE_DB":   "false",
		"MONGODB_URI": "",
	}
	lookup := func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}

	assert.Equal(t, map[string]any{"storage.remote": "false"}, legacyValues(lookup))
}

func TestEnvKeyMapper(t *testing.T) {
	mapper := envKeyMapper(defaults())

	tests := []struct {
		env  string
		want string
	}{
		{"APP_SERVER_PORT", "server.port"},
		{"APP_SERVER_READ_TIMEOUT", "server.read_timeout"},
		{"APP_STORAGE_SQLITE_BUSY_TIMEOUT", "storage.sqlite.busy_timeout"},
		{"APP_STORAGE_MONGO_OPERATION_TIMEOUT", "storage.mongo.operation_timeout"},
		{"APP_LOG_FILE_MAX_BACKUPS", "log.file.max_backups"},
		{"APP_UNKNOWN_SETTING", "unknown.setting"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			assert.Equal(t, tt.want, mapper(tt.env))
		})
	}
}

// TestLoad_ProfileFile tests layering of base and profile YAML files.
func TestLoad_ProfileFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "base.yaml"), []byte(`
app:
  name: quotes-base
storage:
  sqlite:
    path: /tmp/base.db
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "prod.yaml"), []byte(`
storage:
  remote: true
  mongo:
    uri: mongodb://prod:27017
`), 0o600))

	t.Chdir(dir)

	cfg, err := Load("prod")
	require.NoError(t, err)

	assert.Equal(t, "quotes-base", cfg.App.Name)
	assert.Equal(t, "/tmp/base.db", cfg.Storage.SQLite.Path)
	assert.True(t, cfg.Storage.Remote)
	assert.Equal(t, "mongodb://prod:27017", cfg.Storage.Mongo.URI)

	cfg, err = Load("missing")
	require.NoError(t, err)
	assert.False(t, cfg.Storage.Remote)
}

// TestLoad_LogFileDefaults tests that log file defaults are set correctly.
func TestLoad_LogFileDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.False(t, cfg.Log.File.Enabled)
	assert.Equal(t, "./logs/app.log", cfg.Log.File.Path)
	assert.Equal(t, DefaultLogFileMaxSizeMB, cfg.Log.File.MaxSizeMB)
	assert.Equal(t, DefaultLogFileMaxBackups, cfg.Log.File.MaxBackups)
	assert.Equal(t, DefaultLogFileMaxAgeDays, cfg.Log.File.MaxAgeDays)
	assert.True(t, cfg.Log.File.Compress)
}

// TestLoad_TelemetryDefaults tests that telemetry defaults are set correctly.
func TestLoad_TelemetryDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "quote-service", cfg.Telemetry.ServiceName)
	assert.Equal(t, 1.0, cfg.Telemetry.SamplingRate)
}

// TestDefaults tests that the defaults map contains expected values.
func TestDefaults(t *testing.T) {
	d := defaults()

	assert.Equal(t, "quote-service", d["app.name"])
	assert.Equal(t, "local", d["app.environment"])
	assert.Equal(t, DefaultServerPort, d["server.port"])
	assert.Equal(t, false, d["storage.remote"])
	assert.Equal(t, DefaultSQLitePath, d["storage.sqlite.path"])
	assert.Equal(t, "", d["storage.mongo.uri"])
}
