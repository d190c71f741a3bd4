// Package main provides the entry point for the vidharvest CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for vidharvest.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vidharvest",
		Short: "Farsi YouTube video discovery and harvesting tool",
		Long: `vidharvest discovers Farsi-language YouTube videos by crawling the
related-video graph from seed watch URLs. Candidates are scored on the
Perso-Arabic content of their titles and descriptions; videos that clear
the threshold are recorded, and optionally downloaded together with
their Farsi and English subtitles through external provider sites.

Every crawl appends to a pipe-delimited mapping file that ties each
accepted watch URL to the video and subtitle files on disk.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewResumeCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewMappingCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
