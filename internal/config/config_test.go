package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
// This test ensures that defaults are documented through tests and that changes
// to defaults are intentional (tests will fail if defaults change unexpectedly).
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	// Verify each default value explicitly
	// This serves as living documentation of the defaults
	t.Run("default MaxVideos is 50", func(t *testing.T) {
		t.Parallel()
		if cfg.MaxVideos != 50 {
			t.Errorf("expected MaxVideos to be 50, got %d", cfg.MaxVideos)
		}
	})

	t.Run("default Threshold is 0.10", func(t *testing.T) {
		t.Parallel()
		if cfg.Threshold != 0.10 {
			t.Errorf("expected Threshold to be 0.10, got %f", cfg.Threshold)
		}
	})

	t.Run("default Workers is 3", func(t *testing.T) {
		t.Parallel()
		if cfg.Workers != 3 {
			t.Errorf("expected Workers to be 3, got %d", cfg.Workers)
		}
	})

	t.Run("default MaxDepth is 10", func(t *testing.T) {
		t.Parallel()
		if cfg.MaxDepth != 10 {
			t.Errorf("expected MaxDepth to be 10, got %d", cfg.MaxDepth)
		}
	})

	t.Run("default CrawlDelay is 1 second", func(t *testing.T) {
		t.Parallel()
		if cfg.CrawlDelay != 1*time.Second {
			t.Errorf("expected CrawlDelay to be 1s, got %v", cfg.CrawlDelay)
		}
	})

	t.Run("default ProviderDelay is 2 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.ProviderDelay != 2*time.Second {
			t.Errorf("expected ProviderDelay to be 2s, got %v", cfg.ProviderDelay)
		}
	})

	t.Run("default Timeout is 30 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.Timeout != 30*time.Second {
			t.Errorf("expected Timeout to be 30s, got %v", cfg.Timeout)
		}
	})

	t.Run("default CallTimeout is 60 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.CallTimeout != 60*time.Second {
			t.Errorf("expected CallTimeout to be 60s, got %v", cfg.CallTimeout)
		}
	})

	t.Run("default DownloadRetries is 3", func(t *testing.T) {
		t.Parallel()
		if cfg.DownloadRetries != 3 {
			t.Errorf("expected DownloadRetries to be 3, got %d", cfg.DownloadRetries)
		}
	})

	t.Run("default subtitle languages are fa and en", func(t *testing.T) {
		t.Parallel()
		if len(cfg.SubtitleLanguages) != 2 {
			t.Fatalf("expected 2 subtitle languages, got %d", len(cfg.SubtitleLanguages))
		}
		if cfg.SubtitleLanguages[0] != "fa" || cfg.SubtitleLanguages[1] != "en" {
			t.Errorf("expected [fa en], got %v", cfg.SubtitleLanguages)
		}
	})

	t.Run("default ExtractSubtitles is true", func(t *testing.T) {
		t.Parallel()
		if !cfg.ExtractSubtitles {
			t.Error("expected ExtractSubtitles to be true")
		}
	})

	t.Run("default DownloadVideos is false", func(t *testing.T) {
		t.Parallel()
		if cfg.DownloadVideos {
			t.Error("expected DownloadVideos to be false")
		}
	})

	t.Run("default provider URLs are set", func(t *testing.T) {
		t.Parallel()
		if cfg.VideoProviderURL != "https://ytdown.to/en2/" {
			t.Errorf("expected default video provider URL, got %q", cfg.VideoProviderURL)
		}
		if cfg.SubtitleProviderURL != "https://downsub.com/" {
			t.Errorf("expected default subtitle provider URL, got %q", cfg.SubtitleProviderURL)
		}
	})

	t.Run("default paths live under the data directory", func(t *testing.T) {
		t.Parallel()
		if cfg.DBDir != XDGDataDir() {
			t.Errorf("expected DBDir %q, got %q", XDGDataDir(), cfg.DBDir)
		}
		if filepath.Dir(cfg.MappingFile) != XDGDataDir() {
			t.Errorf("expected MappingFile under data dir, got %q", cfg.MappingFile)
		}
		if filepath.Base(cfg.MappingFile) != DefaultMappingFile {
			t.Errorf("expected MappingFile name %q, got %q", DefaultMappingFile, cfg.MappingFile)
		}
		if filepath.Dir(cfg.VideoDir) != XDGDataDir() {
			t.Errorf("expected VideoDir under data dir, got %q", cfg.VideoDir)
		}
		if filepath.Dir(cfg.SubtitleDir) != XDGDataDir() {
			t.Errorf("expected SubtitleDir under data dir, got %q", cfg.SubtitleDir)
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
// Each test case is designed to test one specific validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	// validConfig returns a minimal valid configuration.
	// Tests can modify specific fields to test validation rules.
	validConfig := func() *Config {
		cfg := NewConfig()
		cfg.Seeds = []string{"https://www.youtube.com/watch?v=dQw4w9WgXcQ"}
		return cfg
	}

	t.Run("valid config returns nil", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("multiple seeds is valid", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Seeds = []string{
			"https://www.youtube.com/watch?v=aaaaaaaaaaa",
			"https://youtu.be/bbbbbbbbbbb",
		}

		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("empty seeds returns ErrNoSeed", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Seeds = []string{}

		err := cfg.Validate()
		if !errors.Is(err, ErrNoSeed) {
			t.Errorf("expected ErrNoSeed, got %v", err)
		}
	})

	t.Run("nil seeds returns ErrNoSeed", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Seeds = nil

		err := cfg.Validate()
		if !errors.Is(err, ErrNoSeed) {
			t.Errorf("expected ErrNoSeed, got %v", err)
		}
	})

	t.Run("zero max videos returns ErrInvalidMaxVideos", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.MaxVideos = 0

		err := cfg.Validate()
		if !errors.Is(err, ErrInvalidMaxVideos) {
			t.Errorf("expected ErrInvalidMaxVideos, got %v", err)
		}
	})

	t.Run("negative threshold returns ErrInvalidThreshold", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Threshold = -0.1

		err := cfg.Validate()
		if !errors.Is(err, ErrInvalidThreshold) {
			t.Errorf("expected ErrInvalidThreshold, got %v", err)
		}
	})

	t.Run("threshold above one returns ErrInvalidThreshold", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Threshold = 1.5

		err := cfg.Validate()
		if !errors.Is(err, ErrInvalidThreshold) {
			t.Errorf("expected ErrInvalidThreshold, got %v", err)
		}
	})

	t.Run("threshold boundaries are valid", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Threshold = 0
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error at threshold 0, got %v", err)
		}
		cfg.Threshold = 1
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error at threshold 1, got %v", err)
		}
	})

	t.Run("zero workers returns ErrInvalidWorkers", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Workers = 0

		err := cfg.Validate()
		if !errors.Is(err, ErrInvalidWorkers) {
			t.Errorf("expected ErrInvalidWorkers, got %v", err)
		}
	})

	t.Run("negative max depth returns ErrInvalidMaxDepth", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.MaxDepth = -1

		err := cfg.Validate()
		if !errors.Is(err, ErrInvalidMaxDepth) {
			t.Errorf("expected ErrInvalidMaxDepth, got %v", err)
		}
	})

	t.Run("zero max depth is valid", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.MaxDepth = 0

		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("zero timeout returns ErrInvalidTimeout", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Timeout = 0

		err := cfg.Validate()
		if !errors.Is(err, ErrInvalidTimeout) {
			t.Errorf("expected ErrInvalidTimeout, got %v", err)
		}
	})

	t.Run("negative crawl delay returns ErrInvalidCrawlDelay", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.CrawlDelay = -1 * time.Second

		err := cfg.Validate()
		if !errors.Is(err, ErrInvalidCrawlDelay) {
			t.Errorf("expected ErrInvalidCrawlDelay, got %v", err)
		}
	})

	t.Run("negative provider delay returns ErrInvalidProviderDelay", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.ProviderDelay = -1 * time.Second

		err := cfg.Validate()
		if !errors.Is(err, ErrInvalidProviderDelay) {
			t.Errorf("expected ErrInvalidProviderDelay, got %v", err)
		}
	})

	t.Run("negative download retries returns ErrInvalidDownloadRetries", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.DownloadRetries = -1

		err := cfg.Validate()
		if !errors.Is(err, ErrInvalidDownloadRetries) {
			t.Errorf("expected ErrInvalidDownloadRetries, got %v", err)
		}
	})

	t.Run("zero download retries is valid", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.DownloadRetries = 0

		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("zero call timeout returns ErrInvalidCallTimeout", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.CallTimeout = 0

		err := cfg.Validate()
		if !errors.Is(err, ErrInvalidCallTimeout) {
			t.Errorf("expected ErrInvalidCallTimeout, got %v", err)
		}
	})

	t.Run("negative max body size returns ErrInvalidMaxBodySize", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.MaxBodySize = -1

		err := cfg.Validate()
		if !errors.Is(err, ErrInvalidMaxBodySize) {
			t.Errorf("expected ErrInvalidMaxBodySize, got %v", err)
		}
	})

	t.Run("json and markdown both enabled returns ErrConflictingReportFormats", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.JSONReport = true
		cfg.MarkdownReport = true

		err := cfg.Validate()
		if !errors.Is(err, ErrConflictingReportFormats) {
			t.Errorf("expected ErrConflictingReportFormats, got %v", err)
		}
	})

	t.Run("json only is valid", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.JSONReport = true
		cfg.MarkdownReport = false

		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("subtitles enabled with empty languages returns ErrNoSubtitleLanguage", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.ExtractSubtitles = true
		cfg.SubtitleLanguages = nil

		err := cfg.Validate()
		if !errors.Is(err, ErrNoSubtitleLanguage) {
			t.Errorf("expected ErrNoSubtitleLanguage, got %v", err)
		}
	})

	t.Run("subtitles disabled with empty languages is valid", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.ExtractSubtitles = false
		cfg.SubtitleLanguages = nil

		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("malformed language code returns ErrInvalidLanguage", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.SubtitleLanguages = []string{"fa", "!!"}

		err := cfg.Validate()
		if !errors.Is(err, ErrInvalidLanguage) {
			t.Errorf("expected ErrInvalidLanguage, got %v", err)
		}
	})

	t.Run("regional language codes are valid", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.SubtitleLanguages = []string{"fa-IR", "en-US"}

		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})
}

// TestFileApply tests that config file values override cfg only when present.
func TestFileApply(t *testing.T) {
	t.Parallel()

	t.Run("full file overrides all fields", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		f := &File{
			Providers: ProviderConfig{
				VideoURL:    "https://video.example/form/",
				SubtitleURL: "https://subs.example/",
			},
			Channels:  []string{"UCfarsi1", "UCfarsi2"},
			Languages: []string{"fa"},
		}

		f.Apply(cfg)

		if cfg.VideoProviderURL != "https://video.example/form/" {
			t.Errorf("expected video provider override, got %q", cfg.VideoProviderURL)
		}
		if cfg.SubtitleProviderURL != "https://subs.example/" {
			t.Errorf("expected subtitle provider override, got %q", cfg.SubtitleProviderURL)
		}
		if len(cfg.AllowedChannels) != 2 {
			t.Errorf("expected 2 allowed channels, got %v", cfg.AllowedChannels)
		}
		if len(cfg.SubtitleLanguages) != 1 || cfg.SubtitleLanguages[0] != "fa" {
			t.Errorf("expected languages [fa], got %v", cfg.SubtitleLanguages)
		}
	})

	t.Run("empty file leaves defaults untouched", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		f := &File{}

		f.Apply(cfg)

		if cfg.VideoProviderURL != DefaultVideoProviderURL {
			t.Errorf("expected default video provider, got %q", cfg.VideoProviderURL)
		}
		if cfg.SubtitleProviderURL != DefaultSubtitleProviderURL {
			t.Errorf("expected default subtitle provider, got %q", cfg.SubtitleProviderURL)
		}
		if len(cfg.AllowedChannels) != 0 {
			t.Errorf("expected no allowed channels, got %v", cfg.AllowedChannels)
		}
		if len(cfg.SubtitleLanguages) != 2 {
			t.Errorf("expected default languages, got %v", cfg.SubtitleLanguages)
		}
	})

	t.Run("nil file is a no-op", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		var f *File

		f.Apply(cfg)

		if cfg.VideoProviderURL != DefaultVideoProviderURL {
			t.Errorf("expected default video provider, got %q", cfg.VideoProviderURL)
		}
	})
}

// TestLoadConfigFile tests the LoadConfigFile function.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfigFile("/nonexistent/path/.vidharvest")
		if err == nil {
			t.Fatal("expected error for non-existent file")
		}
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cfg != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, ".vidharvest")

		content := `providers:
  videoURL: "https://video.example/form/"
  subtitleURL: "https://subs.example/"
channels:
  - UCfarsi1
  - UCfarsi2
languages:
  - fa
  - en
  - de
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Providers.VideoURL != "https://video.example/form/" {
			t.Errorf("expected video provider URL, got %q", cfg.Providers.VideoURL)
		}
		if cfg.Providers.SubtitleURL != "https://subs.example/" {
			t.Errorf("expected subtitle provider URL, got %q", cfg.Providers.SubtitleURL)
		}
		if len(cfg.Channels) != 2 {
			t.Errorf("expected 2 channels, got %v", cfg.Channels)
		}
		if len(cfg.Languages) != 3 {
			t.Errorf("expected 3 languages, got %v", cfg.Languages)
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, ".vidharvest")

		content := `invalid: yaml: content: [}`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfigFile(configPath)
		if err == nil {
			t.Error("expected error for invalid YAML")
		}
	})

	t.Run("loads sparse config", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, ".vidharvest")

		content := `channels:
  - UConly
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Providers.VideoURL != "" {
			t.Errorf("expected empty video provider, got %q", cfg.Providers.VideoURL)
		}
		if len(cfg.Channels) != 1 || cfg.Channels[0] != "UConly" {
			t.Errorf("expected channels [UConly], got %v", cfg.Channels)
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Run("returns explicit path if exists", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "custom.yaml")

		if err := os.WriteFile(configPath, []byte("channels: []"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		result := FindConfigFile(configPath)
		if result != configPath {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		result := FindConfigFile("/nonexistent/path/config.yaml")
		if result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})

	t.Run("returns empty when no config found", func(_ *testing.T) {
		result := FindConfigFile("")
		// This may or may not find a config depending on the system
		// Just ensure it doesn't panic
		_ = result
	})
}

// TestLoadEnvironment tests environment variable overrides.
// These subtests use t.Setenv and therefore must not run in parallel.
func TestLoadEnvironment(t *testing.T) {
	t.Run("string overrides", func(t *testing.T) {
		t.Setenv(EnvDBDir, "/tmp/vidharvest-data")
		t.Setenv(EnvVideoDir, "/tmp/vidharvest-videos")
		t.Setenv(EnvSubtitleDir, "/tmp/vidharvest-subs")
		t.Setenv(EnvMappingFile, "/tmp/mapping.txt")
		t.Setenv(EnvUserAgent, "test-agent/1.0")
		t.Setenv(EnvVideoProvider, "https://video.example/")
		t.Setenv(EnvSubtitleProvider, "https://subs.example/")

		cfg := NewConfig()
		if err := LoadEnvironment(cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.DBDir != "/tmp/vidharvest-data" {
			t.Errorf("expected DBDir override, got %q", cfg.DBDir)
		}
		if cfg.VideoDir != "/tmp/vidharvest-videos" {
			t.Errorf("expected VideoDir override, got %q", cfg.VideoDir)
		}
		if cfg.SubtitleDir != "/tmp/vidharvest-subs" {
			t.Errorf("expected SubtitleDir override, got %q", cfg.SubtitleDir)
		}
		if cfg.MappingFile != "/tmp/mapping.txt" {
			t.Errorf("expected MappingFile override, got %q", cfg.MappingFile)
		}
		if cfg.UserAgent != "test-agent/1.0" {
			t.Errorf("expected UserAgent override, got %q", cfg.UserAgent)
		}
		if cfg.VideoProviderURL != "https://video.example/" {
			t.Errorf("expected video provider override, got %q", cfg.VideoProviderURL)
		}
		if cfg.SubtitleProviderURL != "https://subs.example/" {
			t.Errorf("expected subtitle provider override, got %q", cfg.SubtitleProviderURL)
		}
	})

	t.Run("numeric overrides", func(t *testing.T) {
		t.Setenv(EnvThreshold, "0.25")
		t.Setenv(EnvMaxVideos, "100")
		t.Setenv(EnvWorkers, "5")
		t.Setenv(EnvCrawlDelay, "500ms")

		cfg := NewConfig()
		if err := LoadEnvironment(cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Threshold != 0.25 {
			t.Errorf("expected threshold 0.25, got %f", cfg.Threshold)
		}
		if cfg.MaxVideos != 100 {
			t.Errorf("expected max videos 100, got %d", cfg.MaxVideos)
		}
		if cfg.Workers != 5 {
			t.Errorf("expected workers 5, got %d", cfg.Workers)
		}
		if cfg.CrawlDelay != 500*time.Millisecond {
			t.Errorf("expected crawl delay 500ms, got %v", cfg.CrawlDelay)
		}
	})

	t.Run("list overrides split and trim", func(t *testing.T) {
		t.Setenv(EnvLanguages, "fa, en ,de")
		t.Setenv(EnvChannels, "UCone,, UCtwo ")

		cfg := NewConfig()
		if err := LoadEnvironment(cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"fa", "en", "de"}
		if len(cfg.SubtitleLanguages) != len(want) {
			t.Fatalf("expected %d languages, got %v", len(want), cfg.SubtitleLanguages)
		}
		for i, lang := range want {
			if cfg.SubtitleLanguages[i] != lang {
				t.Errorf("expected language %q at %d, got %q", lang, i, cfg.SubtitleLanguages[i])
			}
		}
		if len(cfg.AllowedChannels) != 2 {
			t.Fatalf("expected 2 channels, got %v", cfg.AllowedChannels)
		}
		if cfg.AllowedChannels[0] != "UCone" || cfg.AllowedChannels[1] != "UCtwo" {
			t.Errorf("expected [UCone UCtwo], got %v", cfg.AllowedChannels)
		}
	})

	t.Run("invalid threshold returns error", func(t *testing.T) {
		t.Setenv(EnvThreshold, "not-a-number")

		cfg := NewConfig()
		if err := LoadEnvironment(cfg); err == nil {
			t.Error("expected error for malformed threshold")
		}
	})

	t.Run("invalid workers returns error", func(t *testing.T) {
		t.Setenv(EnvWorkers, "three")

		cfg := NewConfig()
		if err := LoadEnvironment(cfg); err == nil {
			t.Error("expected error for malformed workers")
		}
	})

	t.Run("invalid crawl delay returns error", func(t *testing.T) {
		t.Setenv(EnvCrawlDelay, "soon")

		cfg := NewConfig()
		if err := LoadEnvironment(cfg); err == nil {
			t.Error("expected error for malformed crawl delay")
		}
	})
}

// TestXDGDirs tests XDG directory functions.
func TestXDGDirs(t *testing.T) {
	t.Parallel()

	t.Run("XDGDataDir returns non-empty path", func(t *testing.T) {
		t.Parallel()

		dir := XDGDataDir()
		if dir == "" {
			t.Error("expected non-empty XDG data dir")
		}
	})

	t.Run("XDGConfigDir returns non-empty path", func(t *testing.T) {
		t.Parallel()

		dir := XDGConfigDir()
		if dir == "" {
			t.Error("expected non-empty XDG config dir")
		}
	})
}
