package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/parsavid/vidharvest/internal/model"
)

// lineWidth is the ruler width for text report sections.
const lineWidth = 70

// TextWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type TextWriter struct {
	baseWriter

	// verbose adds the seed URL list to the output.
	verbose bool
}

// TextWriterOption configures a TextWriter.
type TextWriterOption func(*TextWriter)

// WithVerbose enables verbose output with the full seed URL list.
func WithVerbose(verbose bool) TextWriterOption {
	return func(w *TextWriter) {
		w.verbose = verbose
	}
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer, opts ...TextWriterOption) *TextWriter {
	w := &TextWriter{
		baseWriter: newBaseWriter(output),
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write renders the run summary in human-readable format.
func (w *TextWriter) Write(summary *model.CrawlRunSummary) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, summary)
	w.writeResults(&sb, summary)
	if w.verbose {
		w.writeSeeds(&sb, summary)
	}
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with run information.
func (w *TextWriter) writeHeader(sb *strings.Builder, summary *model.CrawlRunSummary) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", lineWidth))
	sb.WriteString("\n")
	sb.WriteString("                        VIDHARVEST CRAWL REPORT\n")
	sb.WriteString(strings.Repeat("=", lineWidth))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Run ID:      %s\n", summary.RunID))
	sb.WriteString(fmt.Sprintf("Started:     %s\n", summary.StartedAt.Format(timeLayout)))
	if !summary.FinishedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("Finished:    %s\n", summary.FinishedAt.Format(timeLayout)))
	}
	sb.WriteString(fmt.Sprintf("Duration:    %s\n", summary.Duration().Round(time.Second)))
	sb.WriteString(fmt.Sprintf("Termination: %s\n", terminationLabel(summary.Termination)))
	sb.WriteString(fmt.Sprintf("Seeds:       %d\n", len(summary.SeedURLs)))

	sb.WriteString("\n")
}

// writeResults writes the run counter section.
func (w *TextWriter) writeResults(sb *strings.Builder, summary *model.CrawlRunSummary) {
	sb.WriteString(strings.Repeat("-", lineWidth))
	sb.WriteString("\n")
	sb.WriteString("RESULTS\n")
	sb.WriteString(strings.Repeat("-", lineWidth))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  URLs visited:        %d\n", summary.URLsVisited))
	sb.WriteString(fmt.Sprintf("  Videos found:        %d\n", summary.VideosFound))
	sb.WriteString(fmt.Sprintf("  Videos accepted:     %d\n", summary.VideosAccepted))
	sb.WriteString(fmt.Sprintf("  Videos downloaded:   %d\n", summary.VideosDownloaded))
	sb.WriteString(fmt.Sprintf("  Subtitles extracted: %d\n", summary.SubtitlesExtracted))
	sb.WriteString(fmt.Sprintf("  Skipped existing:    %d\n", summary.SkippedExisting))
	sb.WriteString(fmt.Sprintf("  Errors:              %d\n", summary.Errors))

	sb.WriteString("\n")
}

// writeSeeds lists the seed URLs the run started from.
func (w *TextWriter) writeSeeds(sb *strings.Builder, summary *model.CrawlRunSummary) {
	sb.WriteString(strings.Repeat("-", lineWidth))
	sb.WriteString("\n")
	sb.WriteString("SEED URLS\n")
	sb.WriteString(strings.Repeat("-", lineWidth))
	sb.WriteString("\n\n")

	if len(summary.SeedURLs) == 0 {
		sb.WriteString("  No seed URLs recorded\n")
	} else {
		for i, seed := range summary.SeedURLs {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, seed))
		}
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *TextWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", lineWidth))
	sb.WriteString("\n")
	sb.WriteString("Report generated by vidharvest\n")
	sb.WriteString("https://github.com/parsavid/vidharvest\n")
	sb.WriteString(strings.Repeat("=", lineWidth))
	sb.WriteString("\n")
}
