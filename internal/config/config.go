package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	StoreEngineRedis    = "redis"
	StoreEnginePostgres = "postgres"
	StoreEngineSQLite   = "sqlite"
	StoreEngineMemory   = "memory"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// prometheus
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// storage
	StoreEngine    string `toml:"store_engine"`
	StoreKeyPrefix string `toml:"store_key_prefix"`
	SQLitePath     string `toml:"sqlite_path"`
	RedisHost      string `toml:"redis_host"`
	RedisPort      string `toml:"redis_port"`
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`

	// coach backend
	CoachBaseURL        string `toml:"coach_base_url"`
	CoachTimeoutSeconds int    `toml:"coach_timeout_seconds"`
	AIRateLimitPerMin   int    `toml:"ai_rate_limit_per_min"`

	// sessions
	SessionTTLMinutes  int  `toml:"session_ttl_minutes"`
	EvictEveryMinutes  int  `toml:"evict_every_minutes"`
	TrackLongestStreak bool `toml:"track_longest_streak"`

	AllowedOrigins []string `toml:"allowed_origins"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

func Load(env, path string) (*Config, error) {
	var tomlConfig Toml
	if _, err := toml.DecodeFile(path, &tomlConfig); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}

	cfg, err := tomlConfig.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] missing", env)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port <= 0 {
		return errors.New("port must be positive")
	}

	switch c.StoreEngine {
	case StoreEngineRedis, StoreEnginePostgres, StoreEngineMemory:
	case StoreEngineSQLite:
		if c.SQLitePath == "" {
			return errors.New("sqlite_path must be set for the sqlite store engine")
		}
	default:
		return fmt.Errorf("unknown store engine: [%s]", c.StoreEngine)
	}

	if c.CoachBaseURL == "" {
		return errors.New("coach_base_url must be set")
	}
	if c.CoachTimeoutSeconds <= 0 {
		c.CoachTimeoutSeconds = 10
	}
	if c.AIRateLimitPerMin <= 0 {
		c.AIRateLimitPerMin = 20
	}
	if c.SessionTTLMinutes <= 0 {
		c.SessionTTLMinutes = 60
	}
	if c.EvictEveryMinutes <= 0 {
		c.EvictEveryMinutes = 5
	}

	return nil
}
