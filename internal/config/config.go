// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Store backends
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// EnvPrefix prefixes every environment variable read by Load (HIRELENS_PORT, ...)
const EnvPrefix = "HIRELENS"

// DefaultConfigName is the config file looked up in the working directory when none is given
const DefaultConfigName = "hirelens"

// Config represents the application configuration. Values come from, in increasing
// priority: defaults, the config file, HIRELENS_* environment variables, bound flags.
type Config struct {
	DatabaseURL    string          `mapstructure:"database_url"`
	Port           int             `mapstructure:"port"`
	Store          string          `mapstructure:"store"`
	DictionaryPath string          `mapstructure:"dictionary_path"`
	MaxUploadBytes int64           `mapstructure:"max_upload_bytes"`
	Log            LogConfig       `mapstructure:"log"`
	RateLimit      RateLimitConfig `mapstructure:"rate_limit"`
}

// LogConfig selects the logger output
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// RateLimitConfig configures per-client request limits
type RateLimitConfig struct {
	Enabled   bool    `mapstructure:"enabled"`
	RPS       float64 `mapstructure:"rps"`
	Burst     int     `mapstructure:"burst"`
	Whitelist string  `mapstructure:"whitelist"` // comma-separated IPs
	Blacklist string  `mapstructure:"blacklist"` // comma-separated IPs
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Port:           8080,
		Store:          StoreMemory,
		MaxUploadBytes: 10 << 20,
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     10,
			Burst:   20,
		},
	}
}

// SetDefaults registers the built-in values with v so that every key is known to
// environment lookups
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("database_url", d.DatabaseURL)
	v.SetDefault("port", d.Port)
	v.SetDefault("store", d.Store)
	v.SetDefault("dictionary_path", d.DictionaryPath)
	v.SetDefault("max_upload_bytes", d.MaxUploadBytes)
	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("log.debug", d.Log.Debug)
	v.SetDefault("rate_limit.enabled", d.RateLimit.Enabled)
	v.SetDefault("rate_limit.rps", d.RateLimit.RPS)
	v.SetDefault("rate_limit.burst", d.RateLimit.Burst)
	v.SetDefault("rate_limit.whitelist", d.RateLimit.Whitelist)
	v.SetDefault("rate_limit.blacklist", d.RateLimit.Blacklist)
}

// Load reads configuration into v and decodes it. An explicit path must exist; without
// one, hirelens.yaml (or .json/.toml) in the working directory is used when present.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(DefaultConfigName)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required when store is %q", StorePostgres)
		}
	default:
		return fmt.Errorf("config error: 'store' must be %q or %q, got %q", StoreMemory, StorePostgres, c.Store)
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("config error: 'max_upload_bytes' must be positive")
	}
	if c.RateLimit.RPS < 0 {
		return fmt.Errorf("config error: 'rate_limit.rps' must be non-negative")
	}
	if c.RateLimit.Burst < 0 {
		return fmt.Errorf("config error: 'rate_limit.burst' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Store == "" {
		result.Store = defaults.Store
	}
	if result.DictionaryPath == "" {
		result.DictionaryPath = defaults.DictionaryPath
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if result.RateLimit.RPS == 0 {
		result.RateLimit.RPS = defaults.RateLimit.RPS
	}
	if result.RateLimit.Burst == 0 {
		result.RateLimit.Burst = defaults.RateLimit.Burst
	}

	// Bools cannot distinguish unset from false, so they are never merged

	return result
}
