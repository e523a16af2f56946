package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds all runtime configuration for the pipeline and CLI.
type Config struct {
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Verify      VerifyConfig      `yaml:"verify"`
	Output      OutputConfig      `yaml:"output"`
}

// CacheConfig controls the layered analysis-result cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// ConcurrencyConfig controls batch processing parallelism.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// VerifyConfig controls the optional AI verification step.
// Verification only annotates match confidence; it never changes
// deterministic scores.
type VerifyConfig struct {
	Provider          string  `yaml:"provider"` // "openai" or "" (disabled)
	Model             string  `yaml:"model"`
	APIKey            string  `yaml:"-"` // From env only, never persisted
	BaseURL           string  `yaml:"base_url"`
	TimeoutSeconds    int     `yaml:"timeout_seconds"`
	RequestsPerMinute float64 `yaml:"requests_per_minute"`
	HTTPProxy         string  `yaml:"http_proxy"`
	HTTPSProxy        string  `yaml:"https_proxy"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	cacheDir := ".domus-cache"
	if home, err := os.UserHomeDir(); err == nil {
		cacheDir = filepath.Join(home, ".domus", "cache")
	}

	return &Config{
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       cacheDir,
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Verify: VerifyConfig{
			Provider:          "", // Disabled by default
			TimeoutSeconds:    20,
			RequestsPerMinute: 30,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
