package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/parsavid/vidharvest/internal/classify"
	"github.com/parsavid/vidharvest/internal/config"
	"github.com/parsavid/vidharvest/internal/crawler"
	"github.com/parsavid/vidharvest/internal/database"
	"github.com/parsavid/vidharvest/internal/download"
	"github.com/parsavid/vidharvest/internal/log"
	"github.com/parsavid/vidharvest/internal/mapping"
	"github.com/parsavid/vidharvest/internal/model"
	"github.com/parsavid/vidharvest/internal/report"
	"github.com/parsavid/vidharvest/internal/youtube"
	"github.com/spf13/cobra"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl [watch-url...]",
		Short: "Crawl the related-video graph for Farsi videos",
		Long: `Crawl walks the YouTube related-video graph breadth-first from one or
more seed watch URLs. Each visited video is scored on the Perso-Arabic
content of its title and description; videos that clear the threshold
are accepted and recorded in the metadata store, and the crawl stops
once the accept budget is spent or the graph is exhausted.

Accepted videos can optionally be downloaded through external provider
sites, together with their Farsi and English subtitles. Every accepted
video gets a row in the pipe-delimited mapping file tying its URL to
the files on disk.

Examples:
  # Crawl from a single seed, metadata only
  vidharvest crawl https://www.youtube.com/watch?v=dQw4w9WgXcQ

  # Accept up to 200 videos using 5 workers
  vidharvest crawl -n 200 -w 5 https://www.youtube.com/watch?v=dQw4w9WgXcQ

  # Download videos and subtitles for everything accepted
  vidharvest crawl --download-videos https://www.youtube.com/watch?v=dQw4w9WgXcQ

  # Only accept uploads from specific channels
  vidharvest crawl --channels UCabc,UCdef https://www.youtube.com/watch?v=dQw4w9WgXcQ

  # Write a JSON report to a file
  vidharvest crawl -j -o report.json https://www.youtube.com/watch?v=dQw4w9WgXcQ

Configuration file (.vidharvest) example:
  providers:
    videoURL: "https://ytdown.to/en2/"
    subtitleURL: "https://downsub.com/"
  channels:
    - UCabc123
  languages:
    - fa
    - en`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCrawlCmd,
	}

	cmd.Flags().IntP("max-videos", "n", config.DefaultMaxVideos,
		"Maximum number of videos to accept before stopping")
	cmd.Flags().Float64P("threshold", "t", config.DefaultThreshold,
		"Farsi likelihood threshold in [0,1] for accepting a video")
	cmd.Flags().IntP("workers", "w", config.DefaultWorkers,
		"Number of concurrent crawl workers")
	cmd.Flags().IntP("depth", "d", config.DefaultMaxDepth,
		"Maximum breadth-first distance from a seed")
	cmd.Flags().Duration("crawl-delay", config.DefaultCrawlDelay,
		"Minimum delay between watch-page fetches")
	cmd.Flags().Duration("timeout", config.DefaultTimeout,
		"HTTP timeout for a single watch-page fetch")
	cmd.Flags().Bool("download-videos", false,
		"Download the video file for each accepted video")
	cmd.Flags().Bool("subtitles", true,
		"Download subtitles for each accepted video")
	cmd.Flags().StringSliceP("languages", "l",
		[]string{config.SubtitleLangFarsi, config.SubtitleLangEnglish},
		"Subtitle language tags to download")
	cmd.Flags().StringSlice("channels", nil,
		"Channel allowlist; only uploads from these channels are accepted")
	cmd.Flags().Bool("keep-rejected", false,
		"Store rejected videos in the database instead of dropping them")
	cmd.Flags().String("video-dir", "",
		"Directory for downloaded video files (default: XDG data dir)")
	cmd.Flags().String("subtitle-dir", "",
		"Directory for downloaded subtitle files (default: XDG data dir)")
	cmd.Flags().String("db-dir", "",
		"Directory for the video database (default: XDG data dir)")
	cmd.Flags().String("mapping-file", "",
		"Path of the mapping ledger (default: XDG data dir)")
	cmd.Flags().String("video-provider", "",
		"Base URL of the video conversion provider")
	cmd.Flags().String("subtitle-provider", "",
		"Base URL of the subtitle extraction provider")
	cmd.Flags().Duration("provider-delay", config.DefaultProviderDelay,
		"Minimum delay between calls to the same provider")
	cmd.Flags().Int("retries", config.DefaultDownloadRetries,
		"Retry attempts per provider download")
	cmd.Flags().Duration("call-timeout", config.DefaultCallTimeout,
		"Time limit for one provider interaction")
	cmd.Flags().StringP("config", "c", "",
		"Path to configuration file")
	cmd.Flags().BoolP("json", "j", false,
		"Output the crawl report as JSON")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output the crawl report as Markdown")
	cmd.Flags().StringP("output", "o", "",
		"Write the report to a file (the terminal still gets a text summary)")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	// Build config from file, environment, and flags
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	verbose := getVerboseFlag(cmd)
	cfg.Verbose = verbose
	logger := setupLogger(verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runCrawl(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates the process logger. Log output goes to stderr so
// reports on stdout stay machine-readable.
func setupLogger(verbose bool) *slog.Logger {
	return log.NewLogger(os.Stderr, verbose)
}

// buildConfig creates a Config from the configuration file, environment
// variables, and cobra command flags, in ascending precedence.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Seeds = normalizeSeeds(args)

	flags := cmd.Flags()

	// Layer 1: the configuration file. An explicitly requested file must
	// exist; the searched-for default is optional.
	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	if found := config.FindConfigFile(configPath); found != "" {
		file, err := config.LoadConfigFile(found)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", found, err)
		}
		file.Apply(cfg)
		cfg.ConfigFilePath = found
	} else if configPath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, configPath)
	}

	// Layer 2: .env file and VIDHARVEST_* environment variables.
	if err := config.LoadEnvironment(cfg); err != nil {
		return nil, err
	}

	// Layer 3: flags. Defaults mirror the config package, so flags that
	// also have a file or environment counterpart only override the
	// lower layers when the user set them explicitly.
	if flags.Changed("max-videos") {
		cfg.MaxVideos, err = flags.GetInt("max-videos")
		if err != nil {
			return nil, err
		}
	}
	if flags.Changed("threshold") {
		cfg.Threshold, err = flags.GetFloat64("threshold")
		if err != nil {
			return nil, err
		}
	}
	if flags.Changed("workers") {
		cfg.Workers, err = flags.GetInt("workers")
		if err != nil {
			return nil, err
		}
	}
	if flags.Changed("crawl-delay") {
		cfg.CrawlDelay, err = flags.GetDuration("crawl-delay")
		if err != nil {
			return nil, err
		}
	}
	if flags.Changed("languages") {
		cfg.SubtitleLanguages, err = flags.GetStringSlice("languages")
		if err != nil {
			return nil, err
		}
	}
	if flags.Changed("channels") {
		cfg.AllowedChannels, err = flags.GetStringSlice("channels")
		if err != nil {
			return nil, err
		}
	}

	// Path and provider flags default to empty; non-empty means the user
	// asked for an override.
	videoDir, err := flags.GetString("video-dir")
	if err != nil {
		return nil, err
	}
	if videoDir != "" {
		cfg.VideoDir = videoDir
	}

	subtitleDir, err := flags.GetString("subtitle-dir")
	if err != nil {
		return nil, err
	}
	if subtitleDir != "" {
		cfg.SubtitleDir = subtitleDir
	}

	dbDir, err := flags.GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if dbDir != "" {
		cfg.DBDir = dbDir
	}

	mappingFile, err := flags.GetString("mapping-file")
	if err != nil {
		return nil, err
	}
	if mappingFile != "" {
		cfg.MappingFile = mappingFile
	}

	videoProvider, err := flags.GetString("video-provider")
	if err != nil {
		return nil, err
	}
	if videoProvider != "" {
		cfg.VideoProviderURL = videoProvider
	}

	subtitleProvider, err := flags.GetString("subtitle-provider")
	if err != nil {
		return nil, err
	}
	if subtitleProvider != "" {
		cfg.SubtitleProviderURL = subtitleProvider
	}

	// Flags with no file or environment counterpart.
	cfg.MaxDepth, err = flags.GetInt("depth")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = flags.GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.DownloadVideos, err = flags.GetBool("download-videos")
	if err != nil {
		return nil, err
	}

	cfg.ExtractSubtitles, err = flags.GetBool("subtitles")
	if err != nil {
		return nil, err
	}

	cfg.KeepRejected, err = flags.GetBool("keep-rejected")
	if err != nil {
		return nil, err
	}

	cfg.ProviderDelay, err = flags.GetDuration("provider-delay")
	if err != nil {
		return nil, err
	}

	cfg.DownloadRetries, err = flags.GetInt("retries")
	if err != nil {
		return nil, err
	}

	cfg.CallTimeout, err = flags.GetDuration("call-timeout")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = flags.GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = flags.GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = flags.GetString("output")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// normalizeSeeds canonicalizes seed arguments that carry a recognizable
// video id. Short links and embed URLs become watch URLs, and playlist
// parameters are stripped. Arguments no pattern matches are passed
// through unchanged so the crawl reports them as fetch errors instead
// of silently dropping them.
func normalizeSeeds(args []string) []string {
	seeds := make([]string, 0, len(args))
	for _, arg := range args {
		if id, ok := youtube.ExtractVideoID(arg); ok {
			seeds = append(seeds, youtube.WatchURL(id))
			continue
		}
		seeds = append(seeds, arg)
	}
	return seeds
}

// runCrawl wires the crawl components together and runs the crawl.
func runCrawl(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open video database: %w", err)
	}
	defer db.Close()

	ledger, err := mapping.Open(cfg.MappingFile)
	if err != nil {
		return fmt.Errorf("failed to open mapping ledger: %w", err)
	}
	defer ledger.Close()

	fetcher := youtube.NewClient(
		youtube.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		youtube.WithUserAgent(cfg.UserAgent),
		youtube.WithMaxBodySize(cfg.MaxBodySize),
		youtube.WithFetchInterval(cfg.CrawlDelay),
		youtube.WithLogger(logger),
	)

	opts := []crawler.Option{
		crawler.WithWorkers(cfg.Workers),
		crawler.WithThreshold(cfg.Threshold),
		crawler.WithMaxDepth(cfg.MaxDepth),
		crawler.WithSubtitleLanguages(cfg.SubtitleLanguages),
		crawler.WithAllowedChannels(cfg.AllowedChannels),
		crawler.WithKeepRejected(cfg.KeepRejected),
		crawler.WithLogger(logger),
	}

	if cfg.DownloadVideos || cfg.ExtractSubtitles {
		orch, err := newOrchestrator(cfg, logger)
		if err != nil {
			return err
		}
		opts = append(opts, crawler.WithDownloader(orch))
	}

	c := crawler.New(fetcher, classify.New(), db, ledger, opts...)

	fmt.Printf("Crawling the related-video graph from %d seed(s)...\n\n", len(cfg.Seeds))

	summary, runErr := c.Run(ctx, cfg.Seeds, cfg.MaxVideos, cfg.ExtractSubtitles)

	// The summary of an interrupted run is still worth keeping, so the
	// save does not ride on the cancelled crawl context.
	if err := db.SaveRunSummary(context.WithoutCancel(ctx), summary); err != nil {
		logger.Warn("failed to save run summary", "run_id", summary.RunID, "error", err)
	}

	if err := outputReport(cfg, summary); err != nil {
		return err
	}

	return runErr
}

// newOrchestrator builds the download orchestrator for the providers the
// configuration enables.
func newOrchestrator(cfg *config.Config, logger *slog.Logger) (*download.Orchestrator, error) {
	var video download.VideoDownloader
	if cfg.DownloadVideos {
		if err := os.MkdirAll(cfg.VideoDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create video directory: %w", err)
		}
		video = download.NewYTDown(cfg.VideoProviderURL, cfg.VideoDir,
			download.WithUserAgent(cfg.UserAgent),
			download.WithLogger(logger),
		)
	}

	var subtitles download.SubtitleDownloader
	if cfg.ExtractSubtitles {
		if err := os.MkdirAll(cfg.SubtitleDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create subtitle directory: %w", err)
		}
		subtitles = download.NewDownSub(cfg.SubtitleProviderURL, cfg.SubtitleDir,
			download.WithUserAgent(cfg.UserAgent),
			download.WithLogger(logger),
		)
	}

	return download.NewOrchestrator(video, subtitles,
		download.WithRetries(cfg.DownloadRetries),
		download.WithProviderDelay(cfg.ProviderDelay),
		download.WithCallTimeout(cfg.CallTimeout),
		download.WithOrchestratorLogger(logger),
	), nil
}

// outputReport writes the crawl report in the requested format.
func outputReport(cfg *config.Config, summary *model.CrawlRunSummary) error {
	if cfg.ReportFile == "" {
		_, err := newReportWriter(cfg, os.Stdout).Write(summary)
		return err
	}

	// Create directories if they don't exist
	dir := filepath.Dir(cfg.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided report path is intentional
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	// The file gets the requested format and the terminal still gets the
	// text summary, so a run that writes a report is not silent.
	writer := report.NewMultiWriter(
		newReportWriter(cfg, f),
		report.NewTextWriter(os.Stdout, report.WithVerbose(cfg.Verbose)),
	)
	_, err = writer.Write(summary)
	return err
}

// newReportWriter picks the report format the configuration asks for.
func newReportWriter(cfg *config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewTextWriter(output, report.WithVerbose(cfg.Verbose))
	}
}
