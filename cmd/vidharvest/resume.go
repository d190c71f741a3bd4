package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/parsavid/vidharvest/internal/config"
	"github.com/parsavid/vidharvest/internal/database"
	"github.com/parsavid/vidharvest/internal/download"
	"github.com/parsavid/vidharvest/internal/mapping"
	"github.com/parsavid/vidharvest/internal/model"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
)

// NewResumeCmd creates the resume command.
func NewResumeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Retry missing subtitle downloads for stored videos",
		Long: `Resume re-attempts subtitle downloads for accepted videos in the
metadata store that have no subtitle file on disk for one of the
requested languages. Provider sites fail often enough that a crawl
rarely gets everything on the first pass; resume picks up the stragglers
without crawling again.

Each video that gains a subtitle gets a superseding row in the mapping
ledger. Earlier rows are left untouched, so the ledger stays a history.

Examples:
  # Retry Farsi and English subtitles for everything that lacks them
  vidharvest resume

  # Only Farsi, at most 10 videos
  vidharvest resume -l fa --limit 10`,
		Args: cobra.NoArgs,
		RunE: runResumeCmd,
	}

	cmd.Flags().StringSliceP("languages", "l",
		[]string{config.SubtitleLangFarsi, config.SubtitleLangEnglish},
		"Subtitle language tags to retry")
	cmd.Flags().Int("limit", 0,
		"Maximum number of videos to process (0 means no limit)")
	cmd.Flags().String("db-dir", "",
		"Directory of the video database (default: XDG data dir)")
	cmd.Flags().String("subtitle-dir", "",
		"Directory for downloaded subtitle files (default: XDG data dir)")
	cmd.Flags().String("mapping-file", "",
		"Path of the mapping ledger (default: XDG data dir)")
	cmd.Flags().String("subtitle-provider", "",
		"Base URL of the subtitle extraction provider")
	cmd.Flags().Duration("provider-delay", config.DefaultProviderDelay,
		"Minimum delay between calls to the provider")
	cmd.Flags().Int("retries", config.DefaultDownloadRetries,
		"Retry attempts per provider download")
	cmd.Flags().Duration("call-timeout", config.DefaultCallTimeout,
		"Time limit for one provider interaction")

	return cmd
}

// runResumeCmd executes the resume command.
func runResumeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildResumeConfig(cmd)
	if err != nil {
		return err
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	// Set up structured logging
	verbose := getVerboseFlag(cmd)
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

	return runResume(ctx, cfg, limit, logger)
}

// buildResumeConfig creates a Config for the resume command from the
// environment and flags.
func buildResumeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	if err := config.LoadEnvironment(cfg); err != nil {
		return nil, err
	}

	flags := cmd.Flags()

	var err error
	if flags.Changed("languages") {
		cfg.SubtitleLanguages, err = flags.GetStringSlice("languages")
		if err != nil {
			return nil, err
		}
	}

	dbDir, err := flags.GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if dbDir != "" {
		cfg.DBDir = dbDir
	}

	subtitleDir, err := flags.GetString("subtitle-dir")
	if err != nil {
		return nil, err
	}
	if subtitleDir != "" {
		cfg.SubtitleDir = subtitleDir
	}

	mappingFile, err := flags.GetString("mapping-file")
	if err != nil {
		return nil, err
	}
	if mappingFile != "" {
		cfg.MappingFile = mappingFile
	}

	subtitleProvider, err := flags.GetString("subtitle-provider")
	if err != nil {
		return nil, err
	}
	if subtitleProvider != "" {
		cfg.SubtitleProviderURL = subtitleProvider
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

	// The full config validation requires seed URLs, which resume does
	// not take, so the language tags are checked here.
	if len(cfg.SubtitleLanguages) == 0 {
		return nil, config.ErrNoSubtitleLanguage
	}
	for _, lang := range cfg.SubtitleLanguages {
		if _, err := language.Parse(lang); err != nil {
			return nil, fmt.Errorf("%w: %q", config.ErrInvalidLanguage, lang)
		}
	}

	return cfg, nil
}

// pendingVideo is one video owed subtitles, with the languages still
// missing for it.
type pendingVideo struct {
	node      *model.VideoNode
	languages []string
}

// collectMissing lists accepted videos that lack a subtitle file for at
// least one requested language. A video missing several languages
// appears once, with all of them.
func collectMissing(ctx context.Context, db *database.VideoDB, languages []string) ([]*pendingVideo, error) {
	queue := make([]*pendingVideo, 0)
	index := make(map[string]*pendingVideo)

	for _, lang := range languages {
		nodes, err := db.VideosMissingSubtitles(ctx, lang)
		if err != nil {
			return nil, fmt.Errorf("failed to find videos missing %s subtitles: %w", lang, err)
		}
		for _, node := range nodes {
			p, ok := index[node.VideoID]
			if !ok {
				p = &pendingVideo{node: node}
				index[node.VideoID] = p
				queue = append(queue, p)
			}
			p.languages = append(p.languages, lang)
		}
	}

	return queue, nil
}

// runResume retries the missing subtitle downloads.
func runResume(ctx context.Context, cfg *config.Config, limit int, logger *slog.Logger) error {
	db, err := database.Open(cfg.DBDir, database.Options{EnableWAL: true})
	if err != nil {
		if errors.Is(err, database.ErrDatabaseNotFound) {
			return fmt.Errorf("%w (run 'vidharvest crawl' first)", err)
		}
		return fmt.Errorf("failed to open video database: %w", err)
	}
	defer db.Close()

	queue, err := collectMissing(ctx, db, cfg.SubtitleLanguages)
	if err != nil {
		return err
	}
	if limit > 0 && len(queue) > limit {
		queue = queue[:limit]
	}

	if len(queue) == 0 {
		fmt.Println("Nothing to resume: every accepted video has its subtitles.")
		return nil
	}

	// Current ledger state, so superseding rows carry the columns that
	// are not changing.
	prior := make(map[string]mapping.Record)
	records, err := mapping.ReadFile(cfg.MappingFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read mapping ledger: %w", err)
	}
	for _, rec := range mapping.Summarize(records) {
		prior[rec.URL] = rec
	}

	ledger, err := mapping.Open(cfg.MappingFile)
	if err != nil {
		return fmt.Errorf("failed to open mapping ledger: %w", err)
	}
	defer ledger.Close()

	if err := os.MkdirAll(cfg.SubtitleDir, 0750); err != nil {
		return fmt.Errorf("failed to create subtitle directory: %w", err)
	}

	subtitles := download.NewDownSub(cfg.SubtitleProviderURL, cfg.SubtitleDir,
		download.WithUserAgent(cfg.UserAgent),
		download.WithLogger(logger),
	)
	orch := download.NewOrchestrator(nil, subtitles,
		download.WithRetries(cfg.DownloadRetries),
		download.WithProviderDelay(cfg.ProviderDelay),
		download.WithCallTimeout(cfg.CallTimeout),
		download.WithOrchestratorLogger(logger),
	)

	fmt.Printf("Retrying subtitles for %d video(s)...\n", len(queue))

	var videosUpdated, subtitlesFetched int
	for _, p := range queue {
		if ctx.Err() != nil {
			return fmt.Errorf("resume interrupted: %w", ctx.Err())
		}

		fetched, err := resumeVideo(ctx, db, ledger, orch, prior, p, logger)
		if err != nil {
			return err
		}
		if fetched > 0 {
			subtitlesFetched += fetched
			videosUpdated++
		}
	}

	fmt.Printf("\nResume finished: %d subtitle(s) fetched for %d of %d video(s).\n",
		subtitlesFetched, videosUpdated, len(queue))

	logger.Info("resume finished",
		"videos_processed", len(queue),
		"videos_updated", videosUpdated,
		"subtitles_fetched", subtitlesFetched,
	)
	return nil
}

// resumeVideo retries one video's missing languages and, when anything
// was obtained, appends the superseding ledger row. The returned count
// is the number of subtitle files fetched.
func resumeVideo(ctx context.Context, db *database.VideoDB, ledger *mapping.Ledger, orch *download.Orchestrator, prior map[string]mapping.Record, p *pendingVideo, logger *slog.Logger) (int, error) {
	paths := orch.FetchSubtitles(ctx, p.node.VideoID, p.languages)

	rec, ok := prior[p.node.URL]
	if !ok {
		rec = mapping.Record{URL: p.node.URL}
	}

	fetched := 0
	for _, lang := range p.languages {
		path := paths[lang]

		// A failed retry is stored with an empty path, same as a failed
		// first attempt, so the video stays on the missing list.
		sub := &model.SubtitleRecord{
			VideoID:   p.node.VideoID,
			Language:  lang,
			Source:    model.SubtitleSourceProvider,
			Format:    model.SubtitleFormatFromPath(path),
			FilePath:  path,
			CreatedAt: time.Now(),
		}
		if err := db.UpsertSubtitle(ctx, sub); err != nil {
			return fetched, fmt.Errorf("failed to record %s subtitle for %s: %w", lang, p.node.VideoID, err)
		}

		if path == "" {
			continue
		}
		fetched++

		switch lang {
		case config.SubtitleLangFarsi:
			rec.FarsiSubtitle = path
		case config.SubtitleLangEnglish:
			rec.EnglishSubtitle = path
		}
	}

	if fetched == 0 {
		return 0, nil
	}

	if err := ledger.Record(rec); err != nil {
		logger.Warn("failed to append ledger row", "url", p.node.URL, "error", err)
	}
	return fetched, nil
}
