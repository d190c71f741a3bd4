package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/parsavid/vidharvest/internal/database"
	"github.com/spf13/cobra"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored video metadata as CSV or JSON",
		Long: `Export writes every video row in the metadata store to stdout or a
file, for spreadsheets (CSV) or downstream tooling (JSON).

Examples:
  # CSV to stdout
  vidharvest export

  # JSON to a file
  vidharvest export -f json -o videos.json`,
		Args: cobra.NoArgs,
		RunE: runExportCmd,
	}

	cmd.Flags().StringP("format", "f", "csv",
		"Export format: csv or json")
	cmd.Flags().StringP("output", "o", "",
		"Output file path (default: stdout)")
	cmd.Flags().String("db-dir", "",
		"Directory of the video database (default: XDG data dir)")

	return cmd
}

// runExportCmd executes the export command.
func runExportCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildPathsConfig(cmd)
	if err != nil {
		return err
	}

	formatName, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	format, err := database.ParseExportFormat(formatName)
	if err != nil {
		return err
	}

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DBDir, database.Options{EnableWAL: true})
	if err != nil {
		if errors.Is(err, database.ErrDatabaseNotFound) {
			return fmt.Errorf("%w (run 'vidharvest crawl' first)", err)
		}
		return fmt.Errorf("failed to open video database: %w", err)
	}
	defer db.Close()

	var output io.Writer = cmd.OutOrStdout()
	if outputPath != "" {
		dir := filepath.Dir(outputPath)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided export path is intentional
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	if err := db.ExportVideos(context.Background(), output, format); err != nil {
		return fmt.Errorf("failed to export videos: %w", err)
	}

	if outputPath != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Exported video metadata to %s\n", outputPath)
	}
	return nil
}
