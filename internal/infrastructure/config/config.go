package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/devstefancho/claude-hook-logger/internal/util"
)

// Config holds every setting read from the environment. CLI flags override
// individual fields per command.
type Config struct {
	Dir string `envconfig:"HOOKLOG_DIR"`

	Port            int           `envconfig:"HOOKLOG_PORT" default:"7777"`
	ShutdownTimeout time.Duration `envconfig:"HOOKLOG_SHUTDOWN_TIMEOUT" default:"5s"`

	LogLevel  string `envconfig:"HOOKLOG_LOG_LEVEL" default:"info"`
	LogPretty bool   `envconfig:"HOOKLOG_LOG_PRETTY"`

	LiveThreshold time.Duration `envconfig:"HOOKLOG_LIVE_THRESHOLD" default:"5m"`
	SearchLimit   int           `envconfig:"HOOKLOG_SEARCH_LIMIT" default:"50"`
	SearchMax     int           `envconfig:"HOOKLOG_SEARCH_MAX" default:"500"`

	OTelEnabled  bool   `envconfig:"HOOKLOG_OTEL_ENABLED"`
	OTelEndpoint string `envconfig:"HOOKLOG_OTEL_ENDPOINT" default:"localhost:4317"`
	OTelInsecure bool   `envconfig:"HOOKLOG_OTEL_INSECURE" default:"true"`

	DatabaseURL   string `envconfig:"HOOKLOG_DATABASE_URL"`
	DatabaseToken string `envconfig:"HOOKLOG_DATABASE_TOKEN"`
}

// Load reads the configuration from environment variables and fills in the
// directory-dependent defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.fillPaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Fallback returns the built-in defaults with only the string settings that
// locate the log read from the environment. It never fails on a malformed
// value, so the hook command can still record an event when Load rejects the
// environment.
func Fallback() (*Config, error) {
	var env struct {
		Dir           string `envconfig:"HOOKLOG_DIR"`
		LogLevel      string `envconfig:"HOOKLOG_LOG_LEVEL" default:"info"`
		DatabaseURL   string `envconfig:"HOOKLOG_DATABASE_URL"`
		DatabaseToken string `envconfig:"HOOKLOG_DATABASE_TOKEN"`
	}
	if err := envconfig.Process("", &env); err != nil {
		return nil, err
	}

	cfg := Config{
		Dir:             env.Dir,
		Port:            7777,
		ShutdownTimeout: 5 * time.Second,
		LogLevel:        env.LogLevel,
		LiveThreshold:   5 * time.Minute,
		SearchLimit:     50,
		SearchMax:       500,
		OTelEndpoint:    "localhost:4317",
		OTelInsecure:    true,
		DatabaseURL:     env.DatabaseURL,
		DatabaseToken:   env.DatabaseToken,
	}
	if err := cfg.fillPaths(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) fillPaths() error {
	if c.Dir == "" {
		dir, err := util.GetXDGDataDir()
		if err != nil {
			return err
		}
		c.Dir = dir
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = "file:" + filepath.Join(c.Dir, "hooklog.db")
	}
	return nil
}

// Validate rejects values no command can work with.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("HOOKLOG_PORT out of range: %d", c.Port)
	}
	if c.LiveThreshold <= 0 {
		return fmt.Errorf("HOOKLOG_LIVE_THRESHOLD must be positive")
	}
	if c.SearchLimit <= 0 || c.SearchMax <= 0 {
		return fmt.Errorf("search limits must be positive")
	}
	if c.SearchLimit > c.SearchMax {
		return fmt.Errorf("HOOKLOG_SEARCH_LIMIT (%d) exceeds HOOKLOG_SEARCH_MAX (%d)", c.SearchLimit, c.SearchMax)
	}
	return nil
}

// Addr is the listen address for serve.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
