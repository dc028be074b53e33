package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all toolchain plugin configuration
type Config struct {
	// Plugins configuration
	Plugins PluginConfig

	// Verifier configuration
	Verifier VerifierConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// PluginConfig holds plugin loading configuration
type PluginConfig struct {
	// Dirs are the plugin search directories, in priority order
	Dirs []string

	// CacheSize bounds the number of loaded modules kept alive
	CacheSize int
}

// VerifierConfig holds plugin verifier configuration
type VerifierConfig struct {
	MaxConcurrent int
	Watch         bool
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	LogLevel       string
	MetricsEnabled bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Plugins: PluginConfig{
			Dirs:      getEnvPathList("QUILL_PLUGIN_DIRS", DefaultPluginDirectories()),
			CacheSize: getEnvInt("QUILL_PLUGIN_CACHE_SIZE", 64),
		},
		Verifier: VerifierConfig{
			MaxConcurrent: getEnvInt("QUILL_VERIFY_MAX_CONCURRENT", 4),
			Watch:         getEnvBool("QUILL_VERIFY_WATCH", false),
		},
		Observability: ObservabilityConfig{
			LogLevel:       getEnv("QUILL_LOG_LEVEL", "info"),
			MetricsEnabled: getEnvBool("QUILL_METRICS_ENABLED", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if len(c.Plugins.Dirs) == 0 {
		return fmt.Errorf("at least one plugin directory is required")
	}
	if c.Plugins.CacheSize <= 0 {
		return fmt.Errorf("plugin cache size must be positive, got %d", c.Plugins.CacheSize)
	}
	if c.Verifier.MaxConcurrent <= 0 {
		return fmt.Errorf("verifier max concurrent must be positive, got %d", c.Verifier.MaxConcurrent)
	}

	switch strings.ToLower(c.Observability.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level: %s", c.Observability.LogLevel)
	}

	return nil
}

// DefaultPluginDirectories returns the default plugin search directories
func DefaultPluginDirectories() []string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "/tmp"
	}

	return []string{
		filepath.Join(homeDir, ".quill", "plugins"),
		"/etc/quill/plugins",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return strings.ToLower(value) == "true"
}

func getEnvPathList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var dirs []string
	for _, dir := range strings.Split(value, string(os.PathListSeparator)) {
		if dir = strings.TrimSpace(dir); dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}
