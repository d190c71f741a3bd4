package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/parsavid/vidharvest/internal/config"
	"github.com/parsavid/vidharvest/internal/database"
	"github.com/parsavid/vidharvest/internal/mapping"
	"github.com/parsavid/vidharvest/internal/model"
	"github.com/spf13/cobra"
)

// NewStatsCmd creates the stats command.
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show metadata store and mapping ledger statistics",
		Long: `Stats summarizes the harvest so far: how many videos the metadata
store holds, how many were accepted, subtitle counts per language, and
what the mapping ledger says is actually on disk.

Examples:
  # Summarize the default store and ledger
  vidharvest stats

  # List the last 10 crawl runs
  vidharvest stats --runs 10

  # Machine-readable output
  vidharvest stats --json`,
		Args: cobra.NoArgs,
		RunE: runStatsCmd,
	}

	cmd.Flags().String("db-dir", "",
		"Directory of the video database (default: XDG data dir)")
	cmd.Flags().String("mapping-file", "",
		"Path of the mapping ledger (default: XDG data dir)")
	cmd.Flags().IntP("runs", "r", 5,
		"Number of recent crawl runs to list (0 lists none)")
	cmd.Flags().BoolP("json", "j", false,
		"Output statistics as JSON")

	return cmd
}

// ledgerStats tallies the mapping ledger by artifact presence. Counts
// are over the latest row per URL, not the full append-only history.
type ledgerStats struct {
	// Entries is the number of distinct URLs in the ledger.
	Entries int `json:"entries"`

	// WithVideoFile counts entries whose latest row has a video path.
	WithVideoFile int `json:"with_video_file"`

	// WithFarsiSubtitle counts entries whose latest row has a Farsi
	// subtitle path.
	WithFarsiSubtitle int `json:"with_farsi_subtitle"`

	// WithEnglishSubtitle counts entries whose latest row has an
	// English subtitle path.
	WithEnglishSubtitle int `json:"with_english_subtitle"`
}

// statsReport is the JSON shape of the stats command output.
type statsReport struct {
	StorePath  string                   `json:"store_path"`
	Store      *model.StoreStats        `json:"store"`
	LedgerPath string                   `json:"ledger_path,omitempty"`
	Ledger     *ledgerStats             `json:"ledger,omitempty"`
	RecentRuns []*model.CrawlRunSummary `json:"recent_runs,omitempty"`
}

// runStatsCmd executes the stats command.
func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildPathsConfig(cmd)
	if err != nil {
		return err
	}

	runs, err := cmd.Flags().GetInt("runs")
	if err != nil {
		return err
	}

	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	ctx := context.Background()

	db, err := database.Open(cfg.DBDir, database.Options{EnableWAL: true})
	if err != nil {
		if errors.Is(err, database.ErrDatabaseNotFound) {
			return fmt.Errorf("%w (run 'vidharvest crawl' first)", err)
		}
		return fmt.Errorf("failed to open video database: %w", err)
	}
	defer db.Close()

	rep := &statsReport{StorePath: db.Path()}

	rep.Store, err = db.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to read store statistics: %w", err)
	}

	// A missing ledger just means nothing was harvested to disk yet.
	records, err := mapping.ReadFile(cfg.MappingFile)
	switch {
	case err == nil:
		rep.LedgerPath = cfg.MappingFile
		rep.Ledger = tallyLedger(records)
	case errors.Is(err, os.ErrNotExist):
		// keep the ledger section empty
	default:
		return fmt.Errorf("failed to read mapping ledger: %w", err)
	}

	if runs > 0 {
		rep.RecentRuns, err = db.RecentRuns(ctx, runs)
		if err != nil {
			return fmt.Errorf("failed to list recent runs: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	if asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(rep)
	}

	writeStatsText(out, rep)
	return nil
}

// buildPathsConfig resolves the store and ledger locations from the
// environment and the db-dir/mapping-file flags.
func buildPathsConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	if err := config.LoadEnvironment(cfg); err != nil {
		return nil, err
	}

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if dbDir != "" {
		cfg.DBDir = dbDir
	}

	if f := cmd.Flags().Lookup("mapping-file"); f != nil {
		mappingFile, err := cmd.Flags().GetString("mapping-file")
		if err != nil {
			return nil, err
		}
		if mappingFile != "" {
			cfg.MappingFile = mappingFile
		}
	}

	return cfg, nil
}

// tallyLedger folds the ledger history to its latest state and counts
// which artifacts exist.
func tallyLedger(records []mapping.Record) *ledgerStats {
	stats := &ledgerStats{}
	for _, rec := range mapping.Summarize(records) {
		stats.Entries++
		if rec.VideoFile != mapping.Absent {
			stats.WithVideoFile++
		}
		if rec.FarsiSubtitle != mapping.Absent {
			stats.WithFarsiSubtitle++
		}
		if rec.EnglishSubtitle != mapping.Absent {
			stats.WithEnglishSubtitle++
		}
	}
	return stats
}

// writeStatsText prints the human-readable statistics.
func writeStatsText(w io.Writer, rep *statsReport) {
	fmt.Fprintf(w, "Video store: %s\n\n", rep.StorePath)
	fmt.Fprintf(w, "  Videos:       %d\n", rep.Store.Videos)
	fmt.Fprintf(w, "  Accepted:     %d\n", rep.Store.AcceptedVideos)
	fmt.Fprintf(w, "  Subtitles:    %d\n", rep.Store.Subtitles)

	// Deterministic order for the per-language lines.
	langs := make([]string, 0, len(rep.Store.SubtitlesByLanguage))
	for lang := range rep.Store.SubtitlesByLanguage {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	for _, lang := range langs {
		fmt.Fprintf(w, "    %-10s  %d\n", lang+":", rep.Store.SubtitlesByLanguage[lang])
	}

	fmt.Fprintf(w, "  Crawl runs:   %d\n", rep.Store.CrawlRuns)

	if rep.Ledger != nil {
		fmt.Fprintf(w, "\nMapping ledger: %s\n\n", rep.LedgerPath)
		fmt.Fprintf(w, "  Entries:                %d\n", rep.Ledger.Entries)
		fmt.Fprintf(w, "  With video file:        %d\n", rep.Ledger.WithVideoFile)
		fmt.Fprintf(w, "  With Farsi subtitle:    %d\n", rep.Ledger.WithFarsiSubtitle)
		fmt.Fprintf(w, "  With English subtitle:  %d\n", rep.Ledger.WithEnglishSubtitle)
	}

	if len(rep.RecentRuns) > 0 {
		fmt.Fprintf(w, "\nRecent runs:\n\n")
		for _, run := range rep.RecentRuns {
			finished := "-"
			if !run.FinishedAt.IsZero() {
				finished = run.FinishedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(w, "  %s  %s  %-10s  accepted=%d  errors=%d\n",
				run.RunID, finished, run.Termination.String(),
				run.VideosAccepted, run.Errors)
		}
	}
}
