package config

import (
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Default values
const (
	// Build defaults
	MaxWorkers          = 64
	defaultWorkerCap    = 8
	DefaultShowProgress = true

	// Cache defaults
	DefaultCacheEnabled = true
	DefaultCacheTTL     = 7 * 24 * time.Hour

	// Manifest defaults
	DefaultManifestPath = "Content.manifest"

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "auto"
)

// DefaultWorkers returns the number of CPUs, capped at 8
func DefaultWorkers() int {
	n := runtime.NumCPU()
	if n > defaultWorkerCap {
		n = defaultWorkerCap
	}
	if n < 1 {
		n = 1
	}
	return n
}

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".xnpak"
	}
	return filepath.Join(home, ".xnpak")
}

// CacheDir returns the cache directory path
func CacheDir() string {
	return filepath.Join(ConfigDir(), "cache")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// LocalConfigFile is the project-local config file, preferred over the user one
const LocalConfigFile = "xnpak.yaml"

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Build: BuildConfig{
			Workers:      DefaultWorkers(),
			ShowProgress: DefaultShowProgress,
		},
		Cache: CacheConfig{
			Enabled:   DefaultCacheEnabled,
			TTL:       DefaultCacheTTL,
			Directory: CacheDir(),
		},
		Manifest: ManifestConfig{
			Path:        DefaultManifestPath,
			StrictTypes: false,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
