package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `env:"MAPPORTAL_ADDR" envDefault:":8080"`
	RequestTimeout  time.Duration `env:"MAPPORTAL_REQUEST_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"MAPPORTAL_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Catalog configures where known layers and records come from.
type Catalog struct {
	LayersFile      string        `env:"MAPPORTAL_LAYERS_FILE" envDefault:"config/layers.yaml"`
	RecordsFile     string        `env:"MAPPORTAL_RECORDS_FILE"`
	RefreshInterval time.Duration `env:"MAPPORTAL_REFRESH_INTERVAL" envDefault:"5m"`
	SourceTTL       time.Duration `env:"MAPPORTAL_SOURCE_TTL" envDefault:"30m"`
	Concurrency     int           `env:"MAPPORTAL_HARVEST_CONCURRENCY" envDefault:"4"`
	BreakerFailures int           `env:"MAPPORTAL_SOURCE_BREAKER_FAILURES" envDefault:"3"`
	BreakerCooldown time.Duration `env:"MAPPORTAL_SOURCE_BREAKER_COOLDOWN" envDefault:"1m"`
}

// PostgresConfig enables the PostgreSQL record source when DSN is set.
type PostgresConfig struct {
	DSN          string        `env:"DATABASE_URL"`
	MaxOpenConns int           `env:"DATABASE_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns int           `env:"DATABASE_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLife  time.Duration `env:"DATABASE_CONN_MAX_LIFETIME" envDefault:"30m"`
}

// RedisConfig enables the shared Redis record store when URL is set.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	KeyPrefix    string        `env:"REDIS_KEY_PREFIX" envDefault:"catalog:records"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// KafkaConfig enables the harvest feed consumer when Brokers is non-empty.
type KafkaConfig struct {
	Brokers      []string `env:"KAFKA_BROKERS" envSeparator:","`
	RecordsTopic string   `env:"KAFKA_RECORDS_TOPIC" envDefault:"catalog.records"`
	GroupID      string   `env:"KAFKA_GROUP_ID" envDefault:"mapportal"`
	CreateTopic  bool     `env:"KAFKA_CREATE_TOPIC" envDefault:"true"`
}

// Logging selects the slog handler.
type Logging struct {
	Format string `env:"LOG_FORMAT" envDefault:"json"`
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
}

// Config is the full process configuration.
type Config struct {
	Server   Server
	Catalog  Catalog
	Postgres PostgresConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Logging  Logging
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the process cannot run with.
func (c Config) Validate() error {
	if c.Catalog.LayersFile == "" {
		return fmt.Errorf("MAPPORTAL_LAYERS_FILE is required")
	}
	if c.Catalog.RefreshInterval <= 0 {
		return fmt.Errorf("MAPPORTAL_REFRESH_INTERVAL must be positive")
	}
	if c.Catalog.RecordsFile == "" && c.Postgres.DSN == "" && c.Redis.URL == "" && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("no record source configured: set MAPPORTAL_RECORDS_FILE, DATABASE_URL, REDIS_URL or KAFKA_BROKERS")
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.RecordsTopic == "" {
		return fmt.Errorf("KAFKA_RECORDS_TOPIC is required when KAFKA_BROKERS is set")
	}
	return nil
}
