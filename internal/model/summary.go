package model

import "time"

// terminationUnknownStr is the string representation for unknown reasons.
const terminationUnknownStr = "unknown"

// TerminationReason explains why a crawl run stopped. Budget exhaustion
// and graph exhaustion are both valid terminal states and callers must
// be able to tell them apart, so the reason is part of the summary.
type TerminationReason string

// Termination reason constants.
const (
	// TerminationUnknown represents a run that has not finished yet.
	TerminationUnknown TerminationReason = ""
	// TerminationBudget means the accepted-video budget was reached.
	TerminationBudget TerminationReason = "budget_exhausted"
	// TerminationExhausted means the frontier drained before the budget
	// was reached. This is a normal outcome on small graphs, not an error.
	TerminationExhausted TerminationReason = "graph_exhausted"
	// TerminationCancelled means the run context was cancelled.
	TerminationCancelled TerminationReason = "cancelled"
	// TerminationAborted means repeated persistence failures forced the
	// run to stop early to avoid silently losing data.
	TerminationAborted TerminationReason = "aborted"
)

// String returns the string representation of the TerminationReason.
func (r TerminationReason) String() string {
	if r == TerminationUnknown {
		return terminationUnknownStr
	}
	return string(r)
}

// IsValid returns true if this is a known termination reason.
func (r TerminationReason) IsValid() bool {
	switch r {
	case TerminationBudget, TerminationExhausted, TerminationCancelled, TerminationAborted:
		return true
	default:
		return false
	}
}

// ParseTerminationReason converts a string to TerminationReason.
func ParseTerminationReason(s string) TerminationReason {
	switch s {
	case "budget_exhausted":
		return TerminationBudget
	case "graph_exhausted":
		return TerminationExhausted
	case "cancelled", "canceled":
		return TerminationCancelled
	case "aborted":
		return TerminationAborted
	default:
		return TerminationUnknown
	}
}

// CrawlRunSummary is the aggregate result of one crawl run.
// It is created at run start, mutated only by the crawl orchestrator,
// and finalized when the run terminates.
//
// Design decision: counters live in one flat struct rather than being
// spread across components because:
// 1. The CLI and report writers need a single serializable result
// 2. The database stores one row per run from this struct
// 3. Error accounting stays in one place instead of per-component tallies
type CrawlRunSummary struct {
	// RunID uniquely identifies the crawl run (UUID).
	RunID string `json:"run_id"`

	// SeedURLs are the URLs the run started from.
	SeedURLs []string `json:"seed_urls"`

	// VideosFound counts unique videos whose pages were fetched and
	// classified, accepted or not.
	VideosFound int `json:"videos_found"`

	// VideosAccepted counts videos whose language score cleared the
	// threshold while accept budget remained. Never exceeds the budget.
	VideosAccepted int `json:"videos_accepted"`

	// VideosDownloaded counts accepted videos whose media download
	// produced a local file.
	VideosDownloaded int `json:"videos_downloaded"`

	// SubtitlesExtracted counts subtitle files obtained across all
	// accepted videos and requested languages.
	SubtitlesExtracted int `json:"subtitles_extracted"`

	// SkippedExisting counts videos already present in the metadata
	// store from earlier runs and therefore not re-processed.
	SkippedExisting int `json:"skipped_existing"`

	// Errors counts non-fatal failures: unreachable pages, parse
	// failures, exhausted download retries. Individual failures never
	// abort the run; callers judge overall health from this counter.
	Errors int `json:"errors"`

	// URLsVisited counts frontier entries that were dequeued and
	// processed, including pages that failed to fetch.
	URLsVisited int `json:"urls_visited"`

	// Termination records why the run stopped.
	Termination TerminationReason `json:"termination"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when the run terminated. Zero until finalized.
	FinishedAt time.Time `json:"finished_at"`
}

// NewCrawlRunSummary creates a summary for a run starting now.
func NewCrawlRunSummary(runID string, seeds []string) *CrawlRunSummary {
	return &CrawlRunSummary{
		RunID:     runID,
		SeedURLs:  seeds,
		StartedAt: time.Now(),
	}
}

// Finalize records the termination reason and the finish time.
// Calling it again replaces both, so the last recorded reason wins.
func (s *CrawlRunSummary) Finalize(reason TerminationReason) {
	s.Termination = reason
	s.FinishedAt = time.Now()
}

// Duration returns how long the run took. For an unfinalized summary it
// returns the elapsed time since the run started.
func (s *CrawlRunSummary) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return time.Since(s.StartedAt)
	}
	return s.FinishedAt.Sub(s.StartedAt)
}
