package config

import (
	"fmt"
	"time"
)

// Config represents the application configuration
type Config struct {
	Build    BuildConfig    `mapstructure:"build" yaml:"build"`
	Cache    CacheConfig    `mapstructure:"cache" yaml:"cache"`
	Manifest ManifestConfig `mapstructure:"manifest" yaml:"manifest"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// BuildConfig contains build settings
type BuildConfig struct {
	Workers      int  `mapstructure:"workers" yaml:"workers"`
	ShowProgress bool `mapstructure:"show_progress" yaml:"show_progress"`
}

// CacheConfig contains import cache settings
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled" yaml:"enabled"`
	TTL       time.Duration `mapstructure:"ttl" yaml:"ttl"`
	Directory string        `mapstructure:"directory" yaml:"directory"`
}

// ManifestConfig contains manifest loading settings
type ManifestConfig struct {
	Path        string `mapstructure:"path" yaml:"path"`
	StrictTypes bool   `mapstructure:"strict_types" yaml:"strict_types"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

var validLogFormats = map[string]bool{"pretty": true, "json": true, "auto": true}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Build.Workers < 1 {
		c.Build.Workers = DefaultWorkers()
	}
	if c.Build.Workers > MaxWorkers {
		c.Build.Workers = MaxWorkers
	}
	if c.Cache.TTL < time.Minute {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Cache.Directory == "" {
		c.Cache.Directory = CacheDir()
	}
	if c.Manifest.Path == "" {
		c.Manifest.Path = DefaultManifestPath
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	} else if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("invalid logging.level %q", c.Logging.Level)
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	} else if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("invalid logging.format %q", c.Logging.Format)
	}
	return nil
}
