// Package config loads tool configuration from defaults, an optional yaml
// file, and GPXBIDE_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all tool configuration.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Query  QueryConfig  `mapstructure:"query"`
	Schema SchemaConfig `mapstructure:"schema"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// QueryConfig carries defaults for the geometry queries.
type QueryConfig struct {
	// Delta is the default tolerance in meters for loop tests and
	// proximity searches when a command does not pass its own.
	Delta float64 `mapstructure:"delta"`
}

// SchemaConfig points at an optional GPX schema file for the external
// validator, when one is wired in.
type SchemaConfig struct {
	Path string `mapstructure:"path"`
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("query.delta", 10.0)
	v.SetDefault("schema.path", "")

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: GPXBIDE_LOG_LEVEL, GPXBIDE_QUERY_DELTA, ...
	v.SetEnvPrefix("GPXBIDE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
