package crawler

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/parsavid/vidharvest/internal/frontier"
	"github.com/parsavid/vidharvest/internal/mapping"
	"github.com/parsavid/vidharvest/internal/model"
)

// run holds the shared mutable state of one crawl run. The frontier
// serializes URL handout; everything else a worker touches goes
// through the run mutex.
type run struct {
	// c is the crawler driving this run.
	c *Crawler

	// frontier is the work-list, visited set, and accept budget.
	frontier *frontier.Frontier

	// summary accumulates the run counters. Guarded by mu.
	summary *model.CrawlRunSummary

	// extractSubtitles enables subtitle downloads for accepted videos.
	extractSubtitles bool

	// mu guards summary, claimed, and persistFailures.
	mu sync.Mutex

	// claimed maps video ids to the fact that some worker owns them.
	// The first worker to claim an id runs its full accept sequence;
	// the same video reached through another URL is not reprocessed.
	claimed map[string]bool

	// persistFailures counts consecutive store failures. Any
	// successful write resets it.
	persistFailures int
}

// claim reserves a video id for the calling worker.
func (r *run) claim(videoID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.claimed[videoID] {
		return false
	}
	r.claimed[videoID] = true
	return true
}

func (r *run) countVisit()      { r.mu.Lock(); r.summary.URLsVisited++; r.mu.Unlock() }
func (r *run) countFound()      { r.mu.Lock(); r.summary.VideosFound++; r.mu.Unlock() }
func (r *run) countAccepted()   { r.mu.Lock(); r.summary.VideosAccepted++; r.mu.Unlock() }
func (r *run) countDownloaded() { r.mu.Lock(); r.summary.VideosDownloaded++; r.mu.Unlock() }
func (r *run) countSubtitle()   { r.mu.Lock(); r.summary.SubtitlesExtracted++; r.mu.Unlock() }
func (r *run) countSkipped()    { r.mu.Lock(); r.summary.SkippedExisting++; r.mu.Unlock() }
func (r *run) countError()      { r.mu.Lock(); r.summary.Errors++; r.mu.Unlock() }

// persist runs one store write under the retry policy: a failed write
// is retried once, and a retried failure counts toward the consecutive
// failure ceiling. ok reports whether the write landed. The error is
// non-nil only when the ceiling is reached, which aborts the run: a
// store that keeps failing would silently lose everything the crawl
// still finds.
func (r *run) persist(write func() error, op, key string) (bool, error) {
	err := write()
	if err != nil {
		err = write()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err == nil {
		r.persistFailures = 0
		return true, nil
	}

	r.persistFailures++
	r.summary.Errors++
	r.c.logger.Warn("persist failed",
		"op", op,
		"key", key,
		"consecutive", r.persistFailures,
		"error", err,
	)

	if r.persistFailures >= r.c.maxPersistFailures {
		return false, fmt.Errorf("%d consecutive persistence failures, aborting: %w", r.persistFailures, err)
	}
	return false, nil
}

// process handles one popped frontier entry end to end. Only a
// persistence abort returns an error; every other failure is counted
// and the crawl moves on.
func (c *Crawler) process(ctx context.Context, r *run, entry frontier.Entry) error {
	r.countVisit()

	page, err := c.fetcher.Fetch(ctx, entry.URL)
	if err != nil {
		r.countError()
		c.logger.Debug("fetch failed",
			"url", entry.URL,
			"depth", entry.Depth,
			"error", err,
		)
		return nil
	}

	// Related URLs enqueue no matter how this node is judged: a
	// non-Farsi video can link to Farsi ones, so rejection of a node
	// never rejects its neighbors.
	c.pushRelated(r, page, entry.Depth)

	if !r.claim(page.VideoID) {
		// Same video reached through a second URL. Its related links
		// were taken above; the node itself is not reclassified.
		c.logger.Debug("video already claimed", "video_id", page.VideoID, "url", entry.URL)
		return nil
	}

	exists, err := c.store.HasVideo(ctx, page.VideoID)
	if err != nil {
		r.countError()
		c.logger.Warn("store lookup failed", "video_id", page.VideoID, "error", err)
	}
	if exists {
		r.countSkipped()
		c.logger.Debug("video already stored", "video_id", page.VideoID)
		return nil
	}

	r.countFound()
	node := page.Node(entry.Depth)

	if !c.channelAllowed(page) {
		c.logger.Debug("channel not allowed",
			"video_id", page.VideoID,
			"channel_id", page.ChannelID,
			"channel_title", page.ChannelTitle,
		)
		return c.finishRejected(ctx, r, node)
	}

	node.LanguageScore = c.scorer.Score(page.ClassifierText())

	// Acceptance needs both the score and a unit of budget. Accept is
	// atomic, so concurrent workers can never overshoot maxVideos.
	if node.LanguageScore < c.threshold || !r.frontier.Accept() {
		c.logger.Debug("video rejected",
			"video_id", node.VideoID,
			"score", node.LanguageScore,
			"depth", node.Depth,
		)
		return c.finishRejected(ctx, r, node)
	}

	node.Accepted = true
	r.countAccepted()
	c.logger.Info("video accepted",
		"video_id", node.VideoID,
		"score", node.LanguageScore,
		"depth", node.Depth,
	)

	ok, err := r.persist(func() error { return c.store.UpsertVideo(ctx, node) }, "upsert video", node.VideoID)
	if err != nil {
		return err
	}
	if !ok {
		// The row is lost; fetching artifacts no record would point at
		// only wastes provider calls.
		return nil
	}

	return c.harvest(ctx, r, node)
}

// harvest fetches artifacts for an accepted node and writes its ledger
// row. Every accepted node gets a row, with the absent sentinel for
// anything that could not be obtained.
func (c *Crawler) harvest(ctx context.Context, r *run, node *model.VideoNode) error {
	rec := mapping.Record{URL: node.URL}

	if c.downloader != nil {
		if path, got := c.downloader.FetchVideo(ctx, node.VideoID); got {
			rec.VideoFile = path
			r.countDownloaded()
		}

		if r.extractSubtitles {
			paths := c.downloader.FetchSubtitles(ctx, node.VideoID, c.subtitleLanguages)

			for _, lang := range c.subtitleLanguages {
				path := paths[lang]
				sub := &model.SubtitleRecord{
					VideoID:  node.VideoID,
					Language: lang,
					Source:   model.SubtitleSourceProvider,
					Format:   model.SubtitleFormatFromPath(path),
					FilePath: path,
				}

				// A failed download is stored with an empty path, so
				// the attempt itself is on record.
				if _, err := r.persist(func() error { return c.store.UpsertSubtitle(ctx, sub) }, "upsert subtitle", node.VideoID); err != nil {
					return err
				}
				if path != "" {
					r.countSubtitle()
				}
			}

			rec.FarsiSubtitle = paths["fa"]
			rec.EnglishSubtitle = paths["en"]
		}
	}

	if err := c.recorder.Record(rec); err != nil {
		r.countError()
		c.logger.Warn("ledger write failed", "url", node.URL, "error", err)
	}

	return nil
}

// finishRejected ends processing for a node that was not accepted.
// Rejected nodes get no ledger row; they are persisted only when
// keepRejected is on.
func (c *Crawler) finishRejected(ctx context.Context, r *run, node *model.VideoNode) error {
	if !c.keepRejected {
		return nil
	}

	_, err := r.persist(func() error { return c.store.UpsertVideo(ctx, node) }, "upsert video", node.VideoID)
	return err
}

// pushRelated enqueues a page's related URLs one level deeper, unless
// the entry already sits at the depth limit.
func (c *Crawler) pushRelated(r *run, page *model.PageData, depth int) {
	if depth >= c.maxDepth {
		return
	}
	for _, related := range page.RelatedURLs {
		r.frontier.Push(related, depth+1)
	}
}

// channelAllowed reports whether the page's channel passes the
// allowlist. An empty allowlist allows everything.
func (c *Crawler) channelAllowed(page *model.PageData) bool {
	if len(c.allowedChannels) == 0 {
		return true
	}
	for _, ch := range c.allowedChannels {
		if strings.EqualFold(ch, page.ChannelID) || strings.EqualFold(ch, page.ChannelTitle) {
			return true
		}
	}
	return false
}
