package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/parsavid/vidharvest/internal/config"
	"github.com/parsavid/vidharvest/internal/mapping"
	"github.com/spf13/cobra"
)

// NewMappingCmd creates the mapping command.
func NewMappingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mapping",
		Short: "Print the URL-to-file mapping ledger",
		Long: `Mapping prints the pipe-delimited ledger that ties each accepted watch
URL to the downloaded video and subtitle files.

The ledger is append-only: when a video is harvested again, a new row
supersedes the old one instead of editing it, so the raw file is a
history. Use --latest to fold the history down to the current state,
one row per URL.

Examples:
  # Full history
  vidharvest mapping

  # Current state only
  vidharvest mapping --latest`,
		Args: cobra.NoArgs,
		RunE: runMappingCmd,
	}

	cmd.Flags().Bool("latest", false,
		"Show only the most recent row per URL")
	cmd.Flags().String("mapping-file", "",
		"Path of the mapping ledger (default: XDG data dir)")

	return cmd
}

// runMappingCmd executes the mapping command.
func runMappingCmd(cmd *cobra.Command, _ []string) error {
	cfg := config.NewConfig()
	if err := config.LoadEnvironment(cfg); err != nil {
		return err
	}

	mappingFile, err := cmd.Flags().GetString("mapping-file")
	if err != nil {
		return err
	}
	if mappingFile != "" {
		cfg.MappingFile = mappingFile
	}

	latest, err := cmd.Flags().GetBool("latest")
	if err != nil {
		return err
	}

	records, err := mapping.ReadFile(cfg.MappingFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("no mapping ledger at %s (run 'vidharvest crawl' first)", cfg.MappingFile)
		}
		return err
	}

	if latest {
		records = mapping.Summarize(records)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, mapping.Header)
	for _, rec := range records {
		fmt.Fprintf(out, "%s | %s | %s | %s\n",
			rec.URL, rec.VideoFile, rec.FarsiSubtitle, rec.EnglishSubtitle)
	}

	return nil
}
