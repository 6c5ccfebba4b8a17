// Package config loads the accountsd configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Persistence backends.
const (
	BackendNone     = "none"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
)

// Persistence modes.
const (
	ModeAsync = "async"
	ModeSync  = "sync"
)

// Config holds every setting of the server binary.
type Config struct {
	GRPCAddr             string `env:"GRPC_ADDR" envDefault:":50051"`
	HTTPAddr             string `env:"HTTP_ADDR" envDefault:":8080"`
	GRPCWorkers          uint32 `env:"GRPC_WORKERS" envDefault:"10"`
	MaxConcurrentStreams uint32 `env:"GRPC_MAX_CONCURRENT_STREAMS" envDefault:"100"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	DuplicateIDs string `env:"DUPLICATE_IDS" envDefault:"allow"`
	DevSeed      bool   `env:"DEV_SEED" envDefault:"false"`

	PersistBackend       string        `env:"PERSIST_BACKEND" envDefault:"none"`
	PersistMode          string        `env:"PERSIST_MODE" envDefault:"async"`
	QueueSize            int           `env:"PERSIST_QUEUE_SIZE" envDefault:"1024"`
	QueueWorkers         int           `env:"PERSIST_QUEUE_WORKERS" envDefault:"1"`
	OpTimeout            time.Duration `env:"PERSIST_OP_TIMEOUT" envDefault:"30s"`
	MaxDeadLetters       int           `env:"PERSIST_MAX_DEAD_LETTERS" envDefault:"1000"`
	RetryMaxTries        uint          `env:"PERSIST_RETRY_MAX_TRIES" envDefault:"5"`
	RetryInitialInterval time.Duration `env:"PERSIST_RETRY_INITIAL_INTERVAL" envDefault:"100ms"`
	RetryMaxInterval     time.Duration `env:"PERSIST_RETRY_MAX_INTERVAL" envDefault:"5s"`

	DatabaseURL       string `env:"DATABASE_URL"`
	SQLitePath        string `env:"SQLITE_PATH" envDefault:"accounts.db"`
	RedisAddr         string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword     string `env:"REDIS_PASSWORD"`
	RedisDB           int    `env:"REDIS_DB" envDefault:"0"`
	RedisStream       string `env:"REDIS_STREAM" envDefault:"account.events"`
	RedisStreamMaxLen int64  `env:"REDIS_STREAM_MAXLEN" envDefault:"0"`

	OTelEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `env:"OTEL_SERVICE_NAME" envDefault:"accountsd"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.PersistBackend = strings.ToLower(strings.TrimSpace(c.PersistBackend))
	c.PersistMode = strings.ToLower(strings.TrimSpace(c.PersistMode))
	c.DuplicateIDs = strings.ToLower(strings.TrimSpace(c.DuplicateIDs))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	switch c.PersistBackend {
	case BackendNone, BackendSQLite, BackendRedis:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown PERSIST_BACKEND %q", c.PersistBackend)
	}
	switch c.PersistMode {
	case ModeAsync, ModeSync:
	default:
		return fmt.Errorf("unknown PERSIST_MODE %q", c.PersistMode)
	}
	switch c.DuplicateIDs {
	case "allow", "reject":
	default:
		return fmt.Errorf("unknown DUPLICATE_IDS %q", c.DuplicateIDs)
	}
	// Table sinks keep one row per id, so duplicates in memory could not be mirrored.
	if c.DuplicateIDs == "allow" && (c.PersistBackend == BackendPostgres || c.PersistBackend == BackendSQLite) {
		return fmt.Errorf("PERSIST_BACKEND=%s requires DUPLICATE_IDS=reject", c.PersistBackend)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("unknown LOG_FORMAT %q", c.LogFormat)
	}
	if c.GRPCAddr == "" {
		return fmt.Errorf("GRPC_ADDR must not be empty")
	}
	return nil
}
