package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vidsift/vidsift/internal/extract"
)

// Validate checks the loaded config for required fields and safe values.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	if strings.TrimSpace(cfg.YouTube.APIKeyEnv) == "" {
		return errors.New("youtube.api_key_env must be set")
	}
	if _, err := time.ParseDuration(cfg.YouTube.PageDelay); err != nil {
		return fmt.Errorf("youtube.page_delay %q is not a duration", cfg.YouTube.PageDelay)
	}

	if cfg.Filter.Threshold < 0 || cfg.Filter.Threshold > 1 {
		return fmt.Errorf("filter.threshold %v must be in [0,1]", cfg.Filter.Threshold)
	}
	if cfg.Filter.Strength != "" {
		if _, ok := strengthThresholds[cfg.Filter.Strength]; !ok {
			return fmt.Errorf("filter.strength %q must be one of light, moderate, aggressive, strict", cfg.Filter.Strength)
		}
	}
	if cfg.Filter.MinLikes < 0 {
		return errors.New("filter.min_likes cannot be negative")
	}
	if cfg.Filter.MaxComments < 0 {
		return errors.New("filter.max_comments cannot be negative")
	}
	if err := extract.ValidateDateRange(cfg.Filter.DateFrom, cfg.Filter.DateTo); err != nil {
		return fmt.Errorf("filter date range: %w", err)
	}

	if _, err := extract.ParseSortOption(cfg.Sort); err != nil {
		return fmt.Errorf("sort: %w", err)
	}

	switch cfg.Export.Format {
	case "csv", "json", "both":
	default:
		return fmt.Errorf("export.format %q must be csv, json or both", cfg.Export.Format)
	}

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return errors.New("server.addr must be set")
	}
	if _, err := time.ParseDuration(cfg.Server.CacheTTL); err != nil {
		return fmt.Errorf("server.cache_ttl %q is not a duration", cfg.Server.CacheTTL)
	}

	return nil
}
