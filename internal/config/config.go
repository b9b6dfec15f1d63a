package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"

	"github.com/2beens/stravastats/pkg"
)

const (
	ActivitiesStoreRedis    = "redis"
	ActivitiesStorePostgres = "postgres"
)

type Config struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	Environment string `toml:"environment"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	LogMaxBackups int    `toml:"log_max_backups"`
	LogMaxAgeDays int    `toml:"log_max_age_days"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// postgres, used only with the postgres activities store
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// activities
	ActivitiesStore    string   `toml:"activities_store"`
	ActivitiesCacheTTL Duration `toml:"activities_cache_ttl"`
	HistoryPageSize    int      `toml:"history_page_size"`
	// strava
	StravaBaseURL     string   `toml:"strava_base_url"`
	StravaRedirectURL string   `toml:"strava_redirect_url"`
	StravaCacheSizeMB int      `toml:"strava_cache_size_mb"`
	IPInfoCacheTTL    Duration `toml:"ipinfo_cache_ttl"`
	// sessions
	FrontendURL                 string   `toml:"frontend_url"`
	CookieSecure                bool     `toml:"cookie_secure"`
	SessionTTL                  Duration `toml:"session_ttl"`
	LoginRateLimitAllowedPerMin int      `toml:"login_rate_limit_allowed_per_min"`
	AllowedOrigins              []string `toml:"allowed_origins"`
}

// Duration reads durations like "15m" or "168h" from the toml file.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration [%s]: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type Toml struct {
	Development *Config `toml:"development"`
	Production  *Config `toml:"production"`
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

// Load reads the config of the given env from the toml file at path.
func Load(env, path string) (*Config, error) {
	if exists, err := pkg.PathExists(path, false); err != nil {
		return nil, fmt.Errorf("stat config [%s]: %w", path, err)
	} else if !exists {
		return nil, fmt.Errorf("config file [%s] not found", path)
	}

	tomlConfig := &Toml{}
	if _, err := toml.DecodeFile(path, tomlConfig); err != nil {
		return nil, fmt.Errorf("decode toml config [%s]: %w", path, err)
	}

	cfg, err := tomlConfig.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] not found in %s", env, path)
	}

	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid [%s] config: %w", env, err)
	}

	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.ActivitiesStore == "" {
		c.ActivitiesStore = ActivitiesStoreRedis
	}
	if c.HistoryPageSize <= 0 {
		c.HistoryPageSize = 200
	}
	if c.StravaBaseURL == "" {
		c.StravaBaseURL = "https://www.strava.com/api/v3"
	}
	if c.StravaCacheSizeMB <= 0 {
		c.StravaCacheSizeMB = 100
	}
	if c.SessionTTL.Duration <= 0 {
		c.SessionTTL.Duration = 7 * 24 * time.Hour
	}
	if c.IPInfoCacheTTL.Duration <= 0 {
		c.IPInfoCacheTTL.Duration = 24 * time.Hour
	}
	if c.LoginRateLimitAllowedPerMin <= 0 {
		c.LoginRateLimitAllowedPerMin = 10
	}
}

func (c *Config) Validate() error {
	var err error
	if c.Port <= 0 {
		err = multierr.Append(err, fmt.Errorf("port must be positive, got %d", c.Port))
	}
	if c.RedisHost == "" || c.RedisPort == "" {
		err = multierr.Append(err, errors.New("redis host and port must be set"))
	}
	switch c.ActivitiesStore {
	case ActivitiesStoreRedis:
	case ActivitiesStorePostgres:
		if c.PostgresHost == "" || c.PostgresPort == "" || c.PostgresDBName == "" {
			err = multierr.Append(err, errors.New("postgres activities store needs postgres host, port and db name"))
		}
	default:
		err = multierr.Append(err, fmt.Errorf("unknown activities store: %s", c.ActivitiesStore))
	}
	if c.StravaRedirectURL == "" {
		err = multierr.Append(err, errors.New("strava redirect url must be set"))
	}
	return err
}
