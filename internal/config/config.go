package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds vidsift configuration.
type Config struct {
	YouTube YouTubeConfig `yaml:"youtube"`
	Filter  FilterConfig  `yaml:"filter"`
	Sort    string        `yaml:"sort"` // likes | date_desc | date_asc
	Export  ExportConfig  `yaml:"export"`
	Server  ServerConfig  `yaml:"server"`
}

type YouTubeConfig struct {
	APIKeyEnv string `yaml:"api_key_env"` // e.g. "YOUTUBE_API_KEY"
	BaseURL   string `yaml:"base_url"`    // override for tests/proxies
	PageDelay string `yaml:"page_delay"`  // e.g. "500ms", pause between pages
}

type FilterConfig struct {
	Enabled        bool     `yaml:"enabled"`
	Strength       string   `yaml:"strength"`  // light | moderate | aggressive | strict
	Threshold      float64  `yaml:"threshold"` // explicit override; 0 uses strength
	MinLikes       int      `yaml:"min_likes"`
	MaxComments    int      `yaml:"max_comments"` // 0 = unlimited
	ExcludeCreator bool     `yaml:"exclude_creator"`
	Words          []string `yaml:"words"`
	DateFrom       string   `yaml:"date_from"` // YYYY-MM-DD
	DateTo         string   `yaml:"date_to"`   // YYYY-MM-DD
	Blacklist      []string `yaml:"blacklist"`
	Whitelist      []string `yaml:"whitelist"`
}

type ExportConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // csv | json | both
}

type ServerConfig struct {
	Addr     string `yaml:"addr"`      // HTTP listen address, e.g. ":8080"
	CacheURL string `yaml:"cache_url"` // redis address, empty disables caching
	CacheTTL string `yaml:"cache_ttl"` // e.g. "10m"
}

// Strength presets mapped to thresholds. Lower threshold = more aggressive.
var strengthThresholds = map[string]float64{
	"light":      0.65,
	"moderate":   0.50,
	"aggressive": 0.40,
	"strict":     0.30,
}

// Load reads configuration from a YAML file.
// If the file doesn't exist, it returns a default config and no error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		YouTube: YouTubeConfig{
			APIKeyEnv: "YOUTUBE_API_KEY",
			PageDelay: "500ms",
		},
		Filter: FilterConfig{
			Enabled:  true,
			Strength: "moderate",
		},
		Sort: "likes",
		Export: ExportConfig{
			Dir:    ".",
			Format: "csv",
		},
		Server: ServerConfig{
			Addr:     ":8080",
			CacheTTL: "10m",
		},
	}
}

func applyDefaults(cfg *Config) {
	if cfg.YouTube.APIKeyEnv == "" {
		cfg.YouTube.APIKeyEnv = "YOUTUBE_API_KEY"
	}
	if cfg.YouTube.PageDelay == "" {
		cfg.YouTube.PageDelay = "500ms"
	}
	if cfg.Filter.Strength == "" && cfg.Filter.Threshold == 0 {
		cfg.Filter.Strength = "moderate"
	}
	if cfg.Sort == "" {
		cfg.Sort = "likes"
	}
	if cfg.Export.Dir == "" {
		cfg.Export.Dir = "."
	}
	if cfg.Export.Format == "" {
		cfg.Export.Format = "csv"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.CacheTTL == "" {
		cfg.Server.CacheTTL = "10m"
	}
}

// APIKey resolves the YouTube API key from the configured environment
// variable. The key itself is never stored in the config file.
func (c *Config) APIKey() (string, error) {
	key := os.Getenv(c.YouTube.APIKeyEnv)
	if key == "" {
		return "", fmt.Errorf("environment variable %s is not set", c.YouTube.APIKeyEnv)
	}
	return key, nil
}

// SpamThreshold returns the explicit threshold when set, otherwise the
// strength preset's value.
func (c *Config) SpamThreshold() float64 {
	if c.Filter.Threshold > 0 {
		return c.Filter.Threshold
	}
	if t, ok := strengthThresholds[c.Filter.Strength]; ok {
		return t
	}
	return strengthThresholds["moderate"]
}

// PageDelay parses the configured inter-page delay.
func (c *Config) PageDelay() time.Duration {
	d, err := time.ParseDuration(c.YouTube.PageDelay)
	if err != nil || d < 0 {
		return 500 * time.Millisecond
	}
	return d
}

// CacheTTL parses the verdict cache TTL.
func (c *Config) CacheTTL() time.Duration {
	d, err := time.ParseDuration(c.Server.CacheTTL)
	if err != nil || d <= 0 {
		return 10 * time.Minute
	}
	return d
}
