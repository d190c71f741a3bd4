package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"golang.org/x/text/language"
)

// Default configuration values.
// These values are chosen based on the behavior of the external services
// involved (watch pages, conversion providers) and are deliberately
// conservative toward them.
const (
	// DefaultThreshold is the minimum language score for a video to be
	// accepted as Farsi content. 0.10 admits titles that mix Farsi with
	// Latin-script channel branding while still rejecting pages whose only
	// Perso-Arabic content is a stray word or two.
	DefaultThreshold = 0.10

	// DefaultMaxVideos caps the number of accepted videos per crawl run.
	// The budget counts accepted videos only, so a run through a mostly
	// non-Farsi region of the related-video graph can visit far more
	// pages than this before stopping.
	DefaultMaxVideos = 50

	// DefaultWorkers is the number of concurrent crawl workers.
	// Three workers keep the pipeline busy while staying well under the
	// request rate that triggers throttling. Fetch pacing is enforced
	// separately by DefaultCrawlDelay.
	DefaultWorkers = 3

	// DefaultMaxDepth bounds how far from the seeds the crawler follows
	// related-video links. Depth 0 is a seed itself. Ten hops reaches far
	// beyond any seed's neighborhood; deeper exploration adds runtime
	// without finding meaningfully different content.
	DefaultMaxDepth = 10

	// DefaultCrawlDelay is the minimum interval between watch-page
	// fetches, shared across all workers. This is a politeness setting;
	// shorter intervals risk rate limiting or consent interstitials.
	DefaultCrawlDelay = 1 * time.Second

	// DefaultProviderDelay is the minimum interval between calls to the
	// same download provider. Conversion services queue work server-side
	// and respond poorly to bursts, so this is more conservative than
	// the crawl delay.
	DefaultProviderDelay = 2 * time.Second

	// DefaultDownloadRetries is the number of retry attempts after a
	// failed provider call. Combined with exponential backoff this rides
	// out transient provider errors without stalling the run.
	DefaultDownloadRetries = 3

	// DefaultCallTimeout bounds a single provider call attempt.
	// Conversion services can take tens of seconds to prepare a file;
	// 60 seconds covers the slow path while keeping each retry finite.
	DefaultCallTimeout = 60 * time.Second

	// DefaultTimeout is the HTTP timeout for watch-page fetches.
	// Watch pages are served quickly; 30 seconds is generous.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is the User-Agent header sent with HTTP requests.
	// Watch pages serve a reduced consent page to clients that do not
	// look like a browser, so a mainstream browser string is required
	// for the embedded player JSON to be present.
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// DefaultMaxBodySize limits the maximum response body size to read.
	// Watch pages embed large player JSON blobs and routinely exceed 1MB;
	// 10MB covers them while preventing memory exhaustion from
	// unexpectedly large responses.
	DefaultMaxBodySize = 10 * 1024 * 1024 // 10MB

	// DefaultVideoProviderURL is the base URL of the video conversion
	// service. The trailing path segment is part of the form endpoint.
	DefaultVideoProviderURL = "https://ytdown.to/en2/"

	// DefaultSubtitleProviderURL is the base URL of the subtitle
	// extraction service.
	DefaultSubtitleProviderURL = "https://downsub.com/"

	// DefaultMappingFile is the file name of the mapping ledger inside
	// the data directory.
	DefaultMappingFile = "video_subtitle_mapping.txt"

	// AppName is the application name used for XDG directory paths.
	AppName = "vidharvest"
)

// Subtitle language codes downloaded by default. Farsi is the content
// language; English subtitles double as translation material.
const (
	SubtitleLangFarsi   = "fa"
	SubtitleLangEnglish = "en"
)

// Config holds all configuration options for vidharvest.
// This struct is designed to be populated from CLI flags, environment
// variables, and the optional config file, then passed through the
// application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., CrawlConfig, DownloadConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant
// benefit. If the configuration grows significantly, consider refactoring
// into sub-structs.
type Config struct {
	// Seeds is the list of YouTube watch URLs the crawl starts from.
	// Must contain at least one URL with a recognizable video id.
	Seeds []string

	// MaxVideos is the accept budget: the maximum number of videos
	// accepted as Farsi content in one run. Visited-but-rejected pages
	// do not consume the budget.
	MaxVideos int

	// Threshold is the minimum language score in [0,1] for a video to
	// be accepted. Lower values admit more mixed-language content.
	Threshold float64

	// Workers is the number of concurrent crawl workers.
	Workers int

	// MaxDepth is the maximum distance from a seed at which related
	// videos are still enqueued. Depth 0 means only the seeds themselves.
	MaxDepth int

	// CrawlDelay is the minimum interval between watch-page fetches,
	// shared across all workers.
	CrawlDelay time.Duration

	// AllowedChannels restricts accepted videos to the listed channel
	// ids when non-empty. Videos from other channels are rejected before
	// scoring, but their related links are still followed.
	AllowedChannels []string

	// KeepRejected persists visited-but-rejected videos to the database
	// with Accepted=false. Off by default; rejected nodes are normally
	// only counted.
	KeepRejected bool

	// Timeout is the HTTP timeout for each watch-page fetch.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Responses larger than this are truncated to prevent memory
	// exhaustion. Set to 0 to use the default (10MB).
	MaxBodySize int64

	// DownloadVideos enables fetching the media file for each accepted
	// video through the video provider. Disabled by default because
	// video downloads dominate run time and disk usage.
	DownloadVideos bool

	// ExtractSubtitles enables fetching subtitles for each accepted
	// video through the subtitle provider.
	ExtractSubtitles bool

	// SubtitleLanguages is the list of subtitle language codes to
	// request for each accepted video.
	SubtitleLanguages []string

	// VideoProviderURL is the base URL of the video conversion service.
	VideoProviderURL string

	// SubtitleProviderURL is the base URL of the subtitle extraction
	// service.
	SubtitleProviderURL string

	// ProviderDelay is the minimum interval between calls to the same
	// download provider.
	ProviderDelay time.Duration

	// DownloadRetries is the number of retry attempts after a failed
	// provider call. Zero disables retries; the first failure is final.
	DownloadRetries int

	// CallTimeout bounds a single provider call attempt, including the
	// time the provider spends preparing the file.
	CallTimeout time.Duration

	// VideoDir is the directory where downloaded video files are stored.
	VideoDir string

	// SubtitleDir is the directory where downloaded subtitle files are
	// stored.
	SubtitleDir string

	// DBDir is the directory path for storing the SQLite database.
	// Defaults to the XDG data directory (~/.local/share/vidharvest on
	// Linux).
	DBDir string

	// MappingFile is the path of the mapping ledger, the append-only
	// URL-to-artifacts table that survives crashes and resumed runs.
	MappingFile string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, informational and higher messages are logged.
	Verbose bool

	// JSONReport enables JSON report output instead of human-readable
	// format. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the run report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .vidharvest in the current
	// directory, the XDG config directory, and the user's home directory.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use
// cases. Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., timeouts, the
// accept budget). This also serves as documentation of what the defaults
// are.
func NewConfig() *Config {
	dataDir := XDGDataDir()
	return &Config{
		MaxVideos:           DefaultMaxVideos,
		Threshold:           DefaultThreshold,
		Workers:             DefaultWorkers,
		MaxDepth:            DefaultMaxDepth,
		CrawlDelay:          DefaultCrawlDelay,
		Timeout:             DefaultTimeout,
		UserAgent:           DefaultUserAgent,
		MaxBodySize:         DefaultMaxBodySize,
		ExtractSubtitles:    true,
		SubtitleLanguages:   []string{SubtitleLangFarsi, SubtitleLangEnglish},
		VideoProviderURL:    DefaultVideoProviderURL,
		SubtitleProviderURL: DefaultSubtitleProviderURL,
		ProviderDelay:       DefaultProviderDelay,
		DownloadRetries:     DefaultDownloadRetries,
		CallTimeout:         DefaultCallTimeout,
		VideoDir:            filepath.Join(dataDir, "videos"),
		SubtitleDir:         filepath.Join(dataDir, "subtitles"),
		DBDir:               dataDir,
		MappingFile:         filepath.Join(dataDir, DefaultMappingFile),
	}
}

// XDGDataDir returns the XDG data directory for vidharvest.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/vidharvest
// On macOS: ~/Library/Application Support/vidharvest
// On Windows: %LOCALAPPDATA%\vidharvest
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for vidharvest.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.config/vidharvest
// On macOS: ~/Library/Application Support/vidharvest
// On Windows: %APPDATA%\vidharvest
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any crawling begins.
//
// We chose to return the first error found rather than collecting all
// errors because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	// We must have at least one seed to start the crawl from
	if len(c.Seeds) == 0 {
		return ErrNoSeed
	}

	// MaxVideos must be positive; a zero budget would accept nothing
	if c.MaxVideos <= 0 {
		return ErrInvalidMaxVideos
	}

	// Threshold is a score and must stay inside the score range
	if c.Threshold < 0 || c.Threshold > 1 {
		return ErrInvalidThreshold
	}

	// Workers must be positive; zero would mean no crawling
	if c.Workers <= 0 {
		return ErrInvalidWorkers
	}

	// MaxDepth must be non-negative; 0 restricts the run to the seeds
	if c.MaxDepth < 0 {
		return ErrInvalidMaxDepth
	}

	// Timeout must be positive; zero timeout would cause immediate failures
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	// CrawlDelay must be non-negative
	if c.CrawlDelay < 0 {
		return ErrInvalidCrawlDelay
	}

	// ProviderDelay must be non-negative
	if c.ProviderDelay < 0 {
		return ErrInvalidProviderDelay
	}

	// DownloadRetries must be non-negative; 0 means no retries
	if c.DownloadRetries < 0 {
		return ErrInvalidDownloadRetries
	}

	// CallTimeout must be positive or provider calls would never start
	if c.CallTimeout <= 0 {
		return ErrInvalidCallTimeout
	}

	// MaxBodySize must be non-negative
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	// Subtitle extraction needs at least one language to request
	if c.ExtractSubtitles && len(c.SubtitleLanguages) == 0 {
		return ErrNoSubtitleLanguage
	}

	// Language codes must be well-formed BCP 47 tags so provider pages
	// and the subtitles table stay consistent
	for _, lang := range c.SubtitleLanguages {
		if _, err := language.Parse(lang); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidLanguage, lang)
		}
	}

	return nil
}
