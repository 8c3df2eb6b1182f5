package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := defaultConfig()
	return cfg
}

func TestValidateFailures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{
			name:   "missing api key env",
			mutate: func(c *Config) { c.YouTube.APIKeyEnv = "" },
			want:   "api_key_env",
		},
		{
			name:   "bad page delay",
			mutate: func(c *Config) { c.YouTube.PageDelay = "soon" },
			want:   "page_delay",
		},
		{
			name:   "threshold out of range",
			mutate: func(c *Config) { c.Filter.Threshold = 1.5 },
			want:   "threshold",
		},
		{
			name:   "unknown strength",
			mutate: func(c *Config) { c.Filter.Strength = "nuclear" },
			want:   "strength",
		},
		{
			name:   "negative min likes",
			mutate: func(c *Config) { c.Filter.MinLikes = -1 },
			want:   "min_likes",
		},
		{
			name:   "bad date",
			mutate: func(c *Config) { c.Filter.DateFrom = "2024-13-01" },
			want:   "date",
		},
		{
			name:   "unknown sort",
			mutate: func(c *Config) { c.Sort = "controversial" },
			want:   "sort",
		},
		{
			name:   "unknown export format",
			mutate: func(c *Config) { c.Export.Format = "xlsx" },
			want:   "format",
		},
		{
			name:   "missing server addr",
			mutate: func(c *Config) { c.Server.Addr = " " },
			want:   "server.addr",
		},
		{
			name:   "bad cache ttl",
			mutate: func(c *Config) { c.Server.CacheTTL = "forever" },
			want:   "cache_ttl",
		},
	}

	for _, tc := range cases {
		cfg := validConfig()
		tc.mutate(cfg)
		err := Validate(cfg)
		if err == nil {
			t.Fatalf("%s: expected validation error, got nil", tc.name)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: expected error mentioning %q, got: %v", tc.name, tc.want, err)
		}
	}
}

func TestValidate_DefaultConfigIsValid(t *testing.T) {
	if err := Validate(defaultConfig()); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.Sort != "likes" || cfg.Server.Addr != ":8080" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_ParsesAndAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
youtube:
  api_key_env: MY_YT_KEY
filter:
  enabled: true
  strength: strict
  min_likes: 5
  blacklist:
    - buy followers
sort: date_desc
server:
  cache_url: localhost:6379
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.YouTube.APIKeyEnv != "MY_YT_KEY" {
		t.Fatalf("expected api_key_env honored, got %q", cfg.YouTube.APIKeyEnv)
	}
	if cfg.SpamThreshold() != 0.30 {
		t.Fatalf("expected strict preset threshold 0.30, got %v", cfg.SpamThreshold())
	}
	if cfg.Filter.Blacklist[0] != "buy followers" {
		t.Fatalf("expected blacklist parsed, got %v", cfg.Filter.Blacklist)
	}
	// Unset fields fall back to defaults.
	if cfg.Export.Format != "csv" || cfg.YouTube.PageDelay != "500ms" {
		t.Fatalf("expected defaults applied, got %+v", cfg)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected loaded config to validate, got %v", err)
	}
}

func TestSpamThreshold_ExplicitOverridesStrength(t *testing.T) {
	cfg := defaultConfig()
	cfg.Filter.Strength = "light"
	cfg.Filter.Threshold = 0.42
	if got := cfg.SpamThreshold(); got != 0.42 {
		t.Fatalf("expected explicit threshold to win, got %v", got)
	}
}

func TestAPIKey_FromEnvironment(t *testing.T) {
	cfg := defaultConfig()
	cfg.YouTube.APIKeyEnv = "VIDSIFT_TEST_KEY"
	t.Setenv("VIDSIFT_TEST_KEY", "abc123")
	key, err := cfg.APIKey()
	if err != nil || key != "abc123" {
		t.Fatalf("expected key from env, got %q/%v", key, err)
	}

	cfg.YouTube.APIKeyEnv = "VIDSIFT_TEST_KEY_UNSET"
	if _, err := cfg.APIKey(); err == nil {
		t.Fatalf("expected error when env var unset")
	}
}
