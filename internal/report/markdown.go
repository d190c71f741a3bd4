package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/parsavid/vidharvest/internal/model"
)

// MarkdownWriter outputs run summaries in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write renders the run summary in Markdown format.
func (w *MarkdownWriter) Write(summary *model.CrawlRunSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writeResults(md, summary)
	w.writeSeeds(md, summary)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, summary *model.CrawlRunSummary) {
	md.H1("Crawl Report")
	md.PlainText("")

	finished := "-"
	if !summary.FinishedAt.IsZero() {
		finished = summary.FinishedAt.Format(timeLayout)
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Run ID", "`" + summary.RunID + "`"},
			{"Started", summary.StartedAt.Format(timeLayout)},
			{"Finished", finished},
			{"Duration", summary.Duration().Round(time.Second).String()},
			{"Termination", w.statusText(summary)},
			{"Seeds", strconv.Itoa(len(summary.SeedURLs))},
		},
	})
	md.PlainText("")
}

// statusText returns the termination label with a status marker.
func (w *MarkdownWriter) statusText(summary *model.CrawlRunSummary) string {
	label := terminationLabel(summary.Termination)
	switch summary.Termination {
	case model.TerminationBudget, model.TerminationExhausted:
		return "✅ " + label
	case model.TerminationCancelled:
		return "⚠️ " + label
	case model.TerminationAborted:
		return "❌ " + label
	default:
		return label
	}
}

// writeResults writes the run counter section.
func (w *MarkdownWriter) writeResults(md *markdown.Markdown, summary *model.CrawlRunSummary) {
	md.H2("Results")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Count"},
		Rows: [][]string{
			{"URLs visited", strconv.Itoa(summary.URLsVisited)},
			{"Videos found", strconv.Itoa(summary.VideosFound)},
			{"Videos accepted", strconv.Itoa(summary.VideosAccepted)},
			{"Videos downloaded", strconv.Itoa(summary.VideosDownloaded)},
			{"Subtitles extracted", strconv.Itoa(summary.SubtitlesExtracted)},
			{"Skipped existing", strconv.Itoa(summary.SkippedExisting)},
			{"Errors", strconv.Itoa(summary.Errors)},
		},
	})
	md.PlainText("")

	if summary.VideosFound+summary.SkippedExisting+summary.Errors > 0 {
		w.writePieChart(md, summary)
	}

	w.writeAlert(md, summary)
}

// writePieChart writes a mermaid pie chart of the crawl outcome mix.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, summary *model.CrawlRunSummary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Crawl Outcome Distribution"),
		piechart.WithShowData(true),
	)

	rejected := summary.VideosFound - summary.VideosAccepted
	if summary.VideosAccepted > 0 {
		chart.LabelAndIntValue("Accepted", uint64(summary.VideosAccepted))
	}
	if rejected > 0 {
		chart.LabelAndIntValue("Rejected", uint64(rejected))
	}
	if summary.SkippedExisting > 0 {
		chart.LabelAndIntValue("Skipped", uint64(summary.SkippedExisting))
	}
	if summary.Errors > 0 {
		chart.LabelAndIntValue("Errors", uint64(summary.Errors))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert for the run outcome.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, summary *model.CrawlRunSummary) {
	switch {
	case summary.Termination == model.TerminationAborted:
		md.Cautionf(
			"The run aborted after repeated storage failures; %d error(s) were recorded and results are partial.",
			summary.Errors,
		)
	case summary.Errors > summary.VideosAccepted:
		md.Warningf(
			"Errors (%d) outnumber accepted videos (%d). The sources may be unreachable or rate limiting.",
			summary.Errors, summary.VideosAccepted,
		)
	case summary.VideosAccepted == 0:
		md.Importantf(
			"No videos cleared the language threshold out of %d found. Consider different seeds or a lower threshold.",
			summary.VideosFound,
		)
	case summary.Errors > 0:
		md.Note("Some pages or downloads failed; see the error count above.")
	default:
		md.Tip("The run completed without errors.")
	}
	md.PlainText("")
}

// writeSeeds writes the seed URL section.
func (w *MarkdownWriter) writeSeeds(md *markdown.Markdown, summary *model.CrawlRunSummary) {
	md.H2("Seed URLs")
	md.PlainText("")

	if len(summary.SeedURLs) == 0 {
		md.PlainText("No seed URLs recorded.")
		md.PlainText("")
		return
	}

	md.BulletList(summary.SeedURLs...)
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [vidharvest](https://github.com/parsavid/vidharvest)*")
}
