package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"-"`

	Host string `toml:"host"`
	Port int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
	MigrationsPath string `toml:"migrations_path"`
	RunMigrations  bool   `toml:"run_migrations"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// http
	CorsAllowedOrigins []string `toml:"cors_allowed_origins"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// auth
	SessionTTL                  Duration `toml:"session_ttl"`
	SessionCleanupSpec          string   `toml:"session_cleanup_spec"`
	LoginRateLimitAllowedPerMin int      `toml:"login_rate_limit_allowed_per_min"`

	// gymstats
	DefaultRepScheme   int    `toml:"default_rep_scheme"`
	RefDataRefreshSpec string `toml:"ref_data_refresh_spec"`
	RefDataCacheSizeMB int    `toml:"ref_data_cache_size_mb"`
	MCPEnabled         bool   `toml:"mcp_enabled"`
}

// Duration lets TOML carry values like "168h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

type Toml struct {
	Development *Config `toml:"development"`
	Production  *Config `toml:"production"`
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}

	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}

	cfg.Environment = strings.ToLower(env)
	cfg.setDefaults()
	return cfg, nil
}

// Load reads the TOML file and returns the section for the given environment.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return t.Get(env)
}

func (c *Config) setDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 3001
	}
	if c.SessionTTL.Duration == 0 {
		c.SessionTTL.Duration = 7 * 24 * time.Hour
	}
	if c.SessionCleanupSpec == "" {
		c.SessionCleanupSpec = "@every 8h"
	}
	if c.LoginRateLimitAllowedPerMin == 0 {
		c.LoginRateLimitAllowedPerMin = 15
	}
	if c.DefaultRepScheme == 0 {
		c.DefaultRepScheme = 6
	}
	if c.RefDataRefreshSpec == "" {
		c.RefDataRefreshSpec = "@every 30m"
	}
	if c.RefDataCacheSizeMB == 0 {
		c.RefDataCacheSizeMB = 1
	}
	if len(c.CorsAllowedOrigins) == 0 {
		c.CorsAllowedOrigins = []string{"http://localhost:5173"}
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
}
