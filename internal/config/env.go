package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names recognized by LoadEnvironment.
// Each overrides the corresponding Config field. CLI flags still take
// precedence over all of them.
const (
	EnvDBDir            = "VIDHARVEST_DB_DIR"
	EnvVideoDir         = "VIDHARVEST_VIDEO_DIR"
	EnvSubtitleDir      = "VIDHARVEST_SUBTITLE_DIR"
	EnvMappingFile      = "VIDHARVEST_MAPPING_FILE"
	EnvUserAgent        = "VIDHARVEST_USER_AGENT"
	EnvVideoProvider    = "VIDHARVEST_VIDEO_PROVIDER"
	EnvSubtitleProvider = "VIDHARVEST_SUBTITLE_PROVIDER"
	EnvThreshold        = "VIDHARVEST_THRESHOLD"
	EnvMaxVideos        = "VIDHARVEST_MAX_VIDEOS"
	EnvWorkers          = "VIDHARVEST_WORKERS"
	EnvCrawlDelay       = "VIDHARVEST_CRAWL_DELAY"
	EnvLanguages        = "VIDHARVEST_LANGUAGES"
	EnvChannels         = "VIDHARVEST_CHANNELS"
)

// LoadEnvironment loads a .env file from the working directory if one
// exists and applies VIDHARVEST_* environment variables to cfg.
// Unset or empty variables leave the corresponding field untouched.
// Malformed numeric or duration values return an error naming the
// variable so shell typos surface immediately instead of silently
// running with defaults.
func LoadEnvironment(cfg *Config) error {
	// A missing .env file is the normal case, not an error.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}

	if v := os.Getenv(EnvDBDir); v != "" {
		cfg.DBDir = v
	}
	if v := os.Getenv(EnvVideoDir); v != "" {
		cfg.VideoDir = v
	}
	if v := os.Getenv(EnvSubtitleDir); v != "" {
		cfg.SubtitleDir = v
	}
	if v := os.Getenv(EnvMappingFile); v != "" {
		cfg.MappingFile = v
	}
	if v := os.Getenv(EnvUserAgent); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv(EnvVideoProvider); v != "" {
		cfg.VideoProviderURL = v
	}
	if v := os.Getenv(EnvSubtitleProvider); v != "" {
		cfg.SubtitleProviderURL = v
	}

	if v := os.Getenv(EnvThreshold); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvThreshold, err)
		}
		cfg.Threshold = f
	}
	if v := os.Getenv(EnvMaxVideos); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvMaxVideos, err)
		}
		cfg.MaxVideos = n
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvWorkers, err)
		}
		cfg.Workers = n
	}
	if v := os.Getenv(EnvCrawlDelay); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvCrawlDelay, err)
		}
		cfg.CrawlDelay = d
	}

	if v := os.Getenv(EnvLanguages); v != "" {
		cfg.SubtitleLanguages = splitList(v)
	}
	if v := os.Getenv(EnvChannels); v != "" {
		cfg.AllowedChannels = splitList(v)
	}

	return nil
}

// splitList splits a comma-separated environment value into trimmed,
// non-empty entries.
func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
