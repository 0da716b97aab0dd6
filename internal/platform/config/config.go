// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultMaxRequestSize is the default maximum request body size (1MB).
	DefaultMaxRequestSize = 1 << 20 // 1048576 bytes

	// DefaultSQLitePath is the embedded database file.
	DefaultSQLitePath = "./data/quotes.db"

	// DefaultMongoDatabase is the default MongoDB database and collection name.
	DefaultMongoDatabase = "quotes"

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 100

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28
)

// Config is the root configuration structure.
type Config struct {
	App       AppConfig       `koanf:"app"       validate:"required"`
	Server    ServerConfig    `koanf:"server"    validate:"required"`
	Log       LogConfig       `koanf:"log"       validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Storage   StorageConfig   `koanf:"storage"   validate:"required"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	RequestTimeout  time.Duration `koanf:"request_timeout"  validate:"min=0"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true,omitempty,url"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// StorageConfig selects and configures the quote backend. Remote is read once
// at startup: true uses MongoDB, false the embedded SQLite database.
type StorageConfig struct {
	Remote bool         `koanf:"remote"`
	SQLite SQLiteConfig `koanf:"sqlite" validate:"required"`
	Mongo  MongoConfig  `koanf:"mongo"  validate:"required"`
}

// SQLiteConfig configures the embedded database.
type SQLiteConfig struct {
	Path        string        `koanf:"path"         validate:"required"`
	BusyTimeout time.Duration `koanf:"busy_timeout" validate:"min=0"`
}

// MongoConfig configures the MongoDB backend. An empty URI is allowed and
// leaves the backend disconnected.
type MongoConfig struct {
	URI              string        `koanf:"uri"               validate:"omitempty,uri"`
	Database         string        `koanf:"database"          validate:"required"`
	Collection       string        `koanf:"collection"        validate:"required"`
	ConnectTimeout   time.Duration `koanf:"connect_timeout"   validate:"required,min=100ms"`
	OperationTimeout time.Duration `koanf:"operation_timeout" validate:"required,min=100ms"`
}

// Backend names the configured storage backend.
func (s StorageConfig) Backend() string {
	if s.Remote {
		return "mongodb"
	}

	return "sqlite"
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "quote-service",
		"app.version":     "dev",
		"app.environment": "local",

		"server.port":             DefaultServerPort,
		"server.host":             "0.0.0.0",
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "10s",
		"server.request_timeout":  "30s",
		"server.max_request_size": DefaultMaxRequestSize,

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/app.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "quote-service",
		"telemetry.sampling_rate": 1.0,

		"storage.remote":                  false,
		"storage.sqlite.path":             DefaultSQLitePath,
		"storage.sqlite.busy_timeout":     "5s",
		"storage.mongo.uri":               "",
		"storage.mongo.database":          DefaultMongoDatabase,
		"storage.mongo.collection":        DefaultMongoDatabase,
		"storage.mongo.connect_timeout":   "5s",
		"storage.mongo.operation_timeout": "10s",
	}
}

// legacyEnv maps environment names used by earlier deployments onto config
// keys. Later entries win when several are set.
var legacyEnv = []struct {
	name string
	key  string
}{
	{name: "REMOTE_DB", key: "storage.remote"},
	{name: "SPRING_DATA_MONGODB_URI", key: "storage.mongo.uri"},
	{name: "MONGODB_URI", key: "storage.mongo.uri"},
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Environment variables (APP_ prefix)
//  2. Legacy environment variables (REMOTE_DB, MONGODB_URI, SPRING_DATA_MONGODB_URI)
//  3. Profile config file (configs/{profile}.yaml)
//  4. Base config file (configs/base.yaml)
//  5. Default values
func Load(profile string) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	err := k.Load(confmap.Provider(defaults(), "."), nil)
	if err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// 2. Load base config file if it exists
	err = loadFileIfExists(k, "configs/base.yaml")
	if err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	// 3. Load profile config file if it exists
	if profile != "" {
		profilePath := fmt.Sprintf("configs/%s.yaml", profile)

		err := loadFileIfExists(k, profilePath)
		if err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
		}
	}

	// 4. Legacy variable names
	err = k.Load(confmap.Provider(legacyValues(os.LookupEnv), "."), nil)
	if err != nil {
		return nil, fmt.Errorf("loading legacy env vars: %w", err)
	}

	// 5. Load environment variables with APP_ prefix
	err = k.Load(env.Provider("APP_", ".", envKeyMapper(defaults())), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	// Unmarshal into Config struct
	var cfg Config

	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// legacyValues collects the legacy variables that are set.
func legacyValues(lookup func(string) (string, bool)) map[string]any {
	values := make(map[string]any)

	for _, e := range legacyEnv {
		if v, ok := lookup(e.name); ok && v != "" {
			values[e.key] = v
		}
	}

	return values
}

// envKeyMapper turns APP_STORAGE_MONGO_CONNECT_TIMEOUT into
// storage.mongo.connect_timeout. Known keys keep their underscores; anything
// else maps every underscore to a dot.
func envKeyMapper(known map[string]any) func(string) string {
	byEnv := make(map[string]string, len(known))
	for key := range known {
		byEnv[strings.ReplaceAll(key, ".", "_")] = key
	}

	return func(s string) string {
		name := strings.ToLower(strings.TrimPrefix(s, "APP_"))
		if key, ok := byEnv[name]; ok {
			return key
		}

		return strings.ReplaceAll(name, "_", ".")
	}
}

// loadFileIfExists loads a YAML config file if it exists.
// Returns nil if the file doesn't exist, error only for parse/read failures.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil // File doesn't exist, that's fine
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
