package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"StockDashboard/internal/model"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr            string `yaml:"addr"`
		ReadTimeoutSec  int    `yaml:"read_timeout_sec"`
		WriteTimeoutSec int    `yaml:"write_timeout_sec"`
	} `yaml:"server"`
	DataSource struct {
		Provider   string `yaml:"provider"` // yahoo | financego | rest | mock
		BaseURL    string `yaml:"base_url"`
		APIKey     string `yaml:"api_key"`
		TimeoutSec int    `yaml:"timeout_sec"`
		Location   string `yaml:"location"` // exchange time zone
	} `yaml:"data_source"`
	Cache struct {
		MaxSizeMB int64 `yaml:"max_size_mb"` // 0 disables the fetch cache
		TTLSec    int64 `yaml:"ttl_sec"`
	} `yaml:"cache"`
	Defaults struct {
		Symbol      string `yaml:"symbol"`
		StartDate   string `yaml:"start_date"`
		EndDate     string `yaml:"end_date"`
		RangeSlider *bool  `yaml:"range_slider"`
	} `yaml:"defaults"`
	Database struct {
		Driver string `yaml:"driver"` // sqlite | postgres | none
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`
	Schedule struct {
		PruneCron     string `yaml:"prune_cron"`
		RetentionDays *int   `yaml:"retention_days"` // 0 disables pruning
		WarmCron      string `yaml:"warm_cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides. A missing file or .env is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// .env only fills variables that are not already set.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	// Environment variable overrides
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("DATA_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("DB_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("CACHE_MAX_SIZE_MB"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Cache.MaxSizeMB = n
		}
	}
	if v := os.Getenv("CACHE_TTL_SEC"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Cache.TTLSec = n
		}
	}
	if v := os.Getenv("PRUNE_CRON"); v != "" {
		cfg.Schedule.PruneCron = v
	}
	if v := os.Getenv("WARM_CRON"); v != "" {
		cfg.Schedule.WarmCron = v
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8050"
	}
	if cfg.Server.ReadTimeoutSec == 0 {
		cfg.Server.ReadTimeoutSec = 15
	}
	if cfg.Server.WriteTimeoutSec == 0 {
		cfg.Server.WriteTimeoutSec = 60
	}
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if cfg.DataSource.TimeoutSec == 0 {
		cfg.DataSource.TimeoutSec = 30
	}
	if cfg.DataSource.Location == "" {
		cfg.DataSource.Location = "America/New_York"
	}
	if cfg.Cache.TTLSec == 0 {
		cfg.Cache.TTLSec = 10800
	}
	if cfg.Defaults.Symbol == "" {
		cfg.Defaults.Symbol = "^GSPC"
	}
	if cfg.Defaults.StartDate == "" {
		cfg.Defaults.StartDate = "2021-01-01"
	}
	if cfg.Defaults.EndDate == "" {
		cfg.Defaults.EndDate = "2021-02-02"
	}
	if cfg.Defaults.RangeSlider == nil {
		on := true
		cfg.Defaults.RangeSlider = &on
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.DSN == "" && cfg.Database.Driver == "sqlite" {
		cfg.Database.DSN = "data/dashboard.db"
	}
	if cfg.Schedule.PruneCron == "" {
		cfg.Schedule.PruneCron = "0 0 3 * * *"
	}
	if cfg.Schedule.RetentionDays == nil {
		days := 30
		cfg.Schedule.RetentionDays = &days
	}

	return cfg, nil
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case "yahoo", "financego", "mock":
	case "rest":
		if c.DataSource.BaseURL == "" {
			return fmt.Errorf("data_source.base_url is required for the rest provider")
		}
	default:
		return fmt.Errorf("data_source.provider %q is not one of yahoo, financego, rest, mock", c.DataSource.Provider)
	}
	switch c.Database.Driver {
	case "sqlite", "none":
	case "postgres":
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for postgres")
		}
	default:
		return fmt.Errorf("database.driver %q is not one of sqlite, postgres, none", c.Database.Driver)
	}
	if _, err := model.ParseDate(c.Defaults.StartDate); err != nil {
		return fmt.Errorf("defaults.start_date: %w", err)
	}
	if _, err := model.ParseDate(c.Defaults.EndDate); err != nil {
		return fmt.Errorf("defaults.end_date: %w", err)
	}
	if c.Cache.MaxSizeMB < 0 {
		return fmt.Errorf("cache.max_size_mb must not be negative")
	}
	if c.Schedule.RetentionDays != nil && *c.Schedule.RetentionDays < 0 {
		return fmt.Errorf("schedule.retention_days must not be negative")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("data_source.location: %w", err)
	}
	return nil
}

// Location loads the exchange time zone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.DataSource.Location)
}

// FetchTimeout returns the provider HTTP timeout.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.DataSource.TimeoutSec) * time.Second
}
