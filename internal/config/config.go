package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"bizexpense/internal/core"
)

// Keys understood by the config layer. Environment variables use the
// BIZEXP_ prefix with dots replaced by underscores (BIZEXP_LOG_LEVEL).
const (
	KeyBackend       = "backend"
	KeySQLitePath    = "sqlite_path"
	KeyDefaultBudget = "default_budget"
	KeyCacheSize     = "cache_size"
	KeyLogLevel      = "log.level"
	KeyLogFormat     = "log.format"
)

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

var validBackends = []string{BackendMemory, BackendSQLite}

type Config struct {
	// Backend selection
	Backend string

	// Database
	SQLitePath string

	// Per-category ceiling (whole rupees) used when no budget record exists
	DefaultBudget float64

	// Aggregation memo entries
	CacheSize int

	// Logging
	LogLevel  string
	LogFormat string
}

// NewViper returns a viper instance with defaults, BIZEXP_ environment
// binding and, when present, the YAML config file. An explicit configFile
// must exist; otherwise ./bizexpense.yaml and $HOME/.config/bizexpense are
// searched and a missing file is not an error.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(KeyBackend, BackendSQLite)
	v.SetDefault(KeySQLitePath, "./data/bizexpense.db")
	v.SetDefault(KeyDefaultBudget, 1000)
	v.SetDefault(KeyCacheSize, 256)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")

	v.SetEnvPrefix("BIZEXP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("bizexpense")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "bizexpense"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// FromViper snapshots the resolved settings.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		Backend:       strings.ToLower(strings.TrimSpace(v.GetString(KeyBackend))),
		SQLitePath:    v.GetString(KeySQLitePath),
		DefaultBudget: v.GetFloat64(KeyDefaultBudget),
		CacheSize:     v.GetInt(KeyCacheSize),
		LogLevel:      v.GetString(KeyLogLevel),
		LogFormat:     v.GetString(KeyLogFormat),
	}
}

// Load reads configuration from the optional file and the environment.
func Load(configFile string) (*Config, error) {
	v, err := NewViper(configFile)
	if err != nil {
		return nil, err
	}
	return FromViper(v), nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if !slices.Contains(validBackends, c.Backend) {
		errors = append(errors, fmt.Sprintf("invalid backend '%s': must be one of %v", c.Backend, validBackends))
	}

	// Validate SQLite configuration if backend is sqlite
	if c.Backend == BackendSQLite {
		if c.SQLitePath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			// Check if directory exists or can be created
			dir := filepath.Dir(c.SQLitePath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if _, err := core.MoneyFromFloat(c.DefaultBudget); err != nil {
		errors = append(errors, fmt.Sprintf("invalid default budget %v: must be a finite amount in range", c.DefaultBudget))
	} else if c.DefaultBudget < 0 {
		errors = append(errors, fmt.Sprintf("invalid default budget %v: must not be negative", c.DefaultBudget))
	}

	if c.CacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid cache size %d: must be at least 1", c.CacheSize))
	} else if c.CacheSize > 100000 {
		errors = append(errors, fmt.Sprintf("invalid cache size %d: must be at most 100000", c.CacheSize))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'text' or 'json'", c.LogFormat))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}
