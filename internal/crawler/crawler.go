package crawler

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/parsavid/vidharvest/internal/frontier"
	"github.com/parsavid/vidharvest/internal/mapping"
	"github.com/parsavid/vidharvest/internal/model"
)

// Default crawler settings. They mirror the config package defaults so
// a zero-option crawler behaves like a configured one.
const (
	defaultWorkers            = 3
	defaultThreshold          = 0.10
	defaultMaxDepth           = 10
	defaultMaxPersistFailures = 3
)

// defaultSubtitleLanguages are the subtitle languages requested for
// accepted videos: the content language plus English for reference.
var defaultSubtitleLanguages = []string{"fa", "en"}

// Fetcher resolves a watch-page URL into normalized page data.
// Failures are reported as *youtube.FetchError values, but the crawler
// treats any error the same way: count it and move on.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*model.PageData, error)
}

// Scorer rates text for target-language likelihood in [0,1].
type Scorer interface {
	Score(text string) float64
}

// Store persists video and subtitle rows keyed by video id.
type Store interface {
	UpsertVideo(ctx context.Context, v *model.VideoNode) error
	UpsertSubtitle(ctx context.Context, s *model.SubtitleRecord) error
	HasVideo(ctx context.Context, videoID string) (bool, error)
}

// Recorder appends rows to the mapping ledger.
type Recorder interface {
	Record(rec mapping.Record) error
}

// Downloader obtains media and subtitle artifacts for accepted videos.
// Absence is reported in the result, never as an error: a false ok or
// a missing map key means the artifact could not be obtained.
type Downloader interface {
	FetchVideo(ctx context.Context, videoID string) (string, bool)
	FetchSubtitles(ctx context.Context, videoID string, languages []string) map[string]string
}

// Crawler walks the related-video graph breadth-first from seed URLs,
// scores every page it reaches, and harvests the ones that read as
// Farsi. One Crawler can serve many runs; all per-run state lives in
// the frontier and summary created by Run.
//
// Design decision: the crawler consumes interfaces it declares itself
// rather than the concrete collaborator types because:
//  1. Tests drive the whole engine with in-memory fakes
//  2. Swapping a provider or store touches no crawler code
//  3. The dependency arrow points outward, keeping this package leaf-like
type Crawler struct {
	// fetcher resolves watch pages.
	fetcher Fetcher

	// scorer rates title+description for Farsi likelihood.
	scorer Scorer

	// store persists video and subtitle rows.
	store Store

	// recorder writes the mapping ledger.
	recorder Recorder

	// downloader fetches media and subtitles for accepted videos.
	// Nil disables downloads; ledger rows then carry only sentinels.
	downloader Downloader

	// workers is the number of concurrent crawl goroutines.
	workers int

	// threshold is the minimum language score for acceptance.
	threshold float64

	// maxDepth bounds how far from a seed new URLs still enqueue.
	// Entries at maxDepth are visited but contribute no children.
	maxDepth int

	// subtitleLanguages are requested for each accepted video.
	subtitleLanguages []string

	// allowedChannels restricts acceptance to the listed channel ids or
	// titles. Empty means no restriction.
	allowedChannels []string

	// keepRejected persists below-threshold nodes with Accepted=false.
	keepRejected bool

	// maxPersistFailures is how many consecutive store failures abort
	// the run.
	maxPersistFailures int

	// logger receives crawl progress and diagnostics.
	logger *slog.Logger
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithDownloader sets the artifact downloader for accepted videos.
// Without one the crawl only discovers and records.
func WithDownloader(d Downloader) Option {
	return func(c *Crawler) {
		c.downloader = d
	}
}

// WithWorkers sets the number of concurrent crawl workers.
func WithWorkers(n int) Option {
	return func(c *Crawler) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithThreshold sets the minimum language score for acceptance.
func WithThreshold(t float64) Option {
	return func(c *Crawler) {
		if t >= 0 && t <= 1 {
			c.threshold = t
		}
	}
}

// WithMaxDepth bounds how far from the seeds the crawl enqueues new
// URLs. Pages at the limit are still visited; their links are not.
func WithMaxDepth(depth int) Option {
	return func(c *Crawler) {
		if depth >= 0 {
			c.maxDepth = depth
		}
	}
}

// WithSubtitleLanguages sets the subtitle languages requested for each
// accepted video.
func WithSubtitleLanguages(langs []string) Option {
	return func(c *Crawler) {
		if len(langs) > 0 {
			c.subtitleLanguages = langs
		}
	}
}

// WithAllowedChannels restricts acceptance to videos from the listed
// channel ids or titles. Pages from other channels are still visited
// for their related links.
func WithAllowedChannels(channels []string) Option {
	return func(c *Crawler) {
		c.allowedChannels = channels
	}
}

// WithKeepRejected persists below-threshold nodes with Accepted=false
// instead of dropping them. Useful for tuning the threshold afterwards.
func WithKeepRejected(keep bool) Option {
	return func(c *Crawler) {
		c.keepRejected = keep
	}
}

// WithMaxPersistFailures sets how many consecutive persistence failures
// abort the run.
func WithMaxPersistFailures(n int) Option {
	return func(c *Crawler) {
		if n > 0 {
			c.maxPersistFailures = n
		}
	}
}

// WithLogger sets the logger for crawl progress and diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Crawler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Crawler over the given collaborators. The fetcher,
// scorer, store, and recorder are required; a downloader is optional
// (see WithDownloader).
func New(fetcher Fetcher, scorer Scorer, store Store, recorder Recorder, opts ...Option) *Crawler {
	c := &Crawler{
		fetcher:            fetcher,
		scorer:             scorer,
		store:              store,
		recorder:           recorder,
		workers:            defaultWorkers,
		threshold:          defaultThreshold,
		maxDepth:           defaultMaxDepth,
		subtitleLanguages:  defaultSubtitleLanguages,
		maxPersistFailures: defaultMaxPersistFailures,
		logger:             slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Run crawls outward from the seed URLs until maxVideos are accepted,
// the graph is exhausted, or ctx is cancelled. The returned summary is
// complete in every case; the error is non-nil only when repeated
// persistence failures aborted the run.
//
// Design decision: individual page failures never surface as errors
// because:
//  1. A single dead video must not end a crawl of thousands
//  2. The summary's error counter is the health signal callers read
//  3. The only unrecoverable condition is a store that stopped storing
func (c *Crawler) Run(ctx context.Context, seeds []string, maxVideos int, extractSubtitles bool) (*model.CrawlRunSummary, error) {
	summary := model.NewCrawlRunSummary(uuid.NewString(), seeds)

	f := frontier.New(maxVideos)
	for _, seed := range seeds {
		f.Push(seed, 0)
	}

	r := &run{
		c:                c,
		frontier:         f,
		summary:          summary,
		extractSubtitles: extractSubtitles,
		claimed:          make(map[string]bool),
	}

	c.logger.Info("crawl started",
		"run_id", summary.RunID,
		"seeds", len(seeds),
		"max_videos", maxVideos,
		"workers", c.workers,
		"threshold", c.threshold,
	)

	g, gctx := errgroup.WithContext(ctx)

	// Cancellation must unblock workers waiting in Pop. The group
	// context also cancels when a worker returns a fatal error, so one
	// hook covers both shutdown paths.
	stop := context.AfterFunc(gctx, f.Close)
	defer stop()

	for i := 0; i < c.workers; i++ {
		g.Go(func() error {
			return c.worker(gctx, r)
		})
	}

	err := g.Wait()

	switch {
	case err != nil:
		summary.Finalize(model.TerminationAborted)
	case ctx.Err() != nil:
		summary.Finalize(model.TerminationCancelled)
	case f.Exhausted():
		summary.Finalize(model.TerminationBudget)
	default:
		summary.Finalize(model.TerminationExhausted)
	}

	c.logger.Info("crawl finished",
		"run_id", summary.RunID,
		"termination", summary.Termination.String(),
		"urls_visited", summary.URLsVisited,
		"videos_found", summary.VideosFound,
		"videos_accepted", summary.VideosAccepted,
		"videos_downloaded", summary.VideosDownloaded,
		"subtitles_extracted", summary.SubtitlesExtracted,
		"errors", summary.Errors,
		"duration", summary.Duration(),
	)

	return summary, err
}

// worker drains the frontier until the run is over. A non-nil return
// is fatal: it cancels the group context, which closes the frontier
// and ends the other workers.
func (c *Crawler) worker(ctx context.Context, r *run) error {
	for {
		entry, ok := r.frontier.Pop()
		if !ok {
			return nil
		}

		err := c.process(ctx, r, entry)
		r.frontier.Done()
		if err != nil {
			return err
		}
	}
}
