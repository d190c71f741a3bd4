package download

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"
)

// Default orchestrator settings. They mirror the config package
// defaults so a zero-option orchestrator behaves like a configured one.
const (
	// defaultRetries is the number of retry attempts after a failed
	// provider call. Zero would mean a single attempt.
	defaultRetries = 3

	// defaultProviderDelay is the minimum interval between calls to the
	// same provider.
	defaultProviderDelay = 2 * time.Second

	// defaultCallTimeout bounds a single provider call attempt.
	defaultCallTimeout = 60 * time.Second
)

// Orchestrator coordinates artifact downloads for accepted videos. It
// paces calls per provider, retries transient failures with exponential
// backoff, and reports absence rather than errors (see the package
// documentation).
//
// A nil provider disables that artifact type: FetchVideo reports absent
// without a network call, FetchSubtitles returns no paths.
type Orchestrator struct {
	// video downloads media files. May be nil.
	video VideoDownloader

	// subtitles downloads subtitle files. May be nil.
	subtitles SubtitleDownloader

	// retries is the number of retry attempts after a failed call.
	retries int

	// callTimeout bounds each provider call attempt.
	callTimeout time.Duration

	// videoLimiter and subtitleLimiter pace calls per provider, so a
	// slow video service never starves subtitle downloads.
	videoLimiter    *rate.Limiter
	subtitleLimiter *rate.Limiter

	// logger receives download failure diagnostics.
	logger *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRetries sets the number of retry attempts after a failed provider
// call. Zero means a single attempt per artifact.
func WithRetries(n int) Option {
	return func(o *Orchestrator) {
		if n >= 0 {
			o.retries = n
		}
	}
}

// WithProviderDelay sets the minimum interval between calls to the same
// provider. Zero disables pacing.
func WithProviderDelay(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.videoLimiter = newLimiter(d)
		o.subtitleLimiter = newLimiter(d)
	}
}

// WithCallTimeout bounds a single provider call attempt, including the
// file transfer.
func WithCallTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.callTimeout = d
		}
	}
}

// WithOrchestratorLogger sets the logger for download diagnostics.
func WithOrchestratorLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewOrchestrator creates a download orchestrator over the given
// providers. Either provider may be nil to disable that artifact type.
func NewOrchestrator(video VideoDownloader, subtitles SubtitleDownloader, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		video:           video,
		subtitles:       subtitles,
		retries:         defaultRetries,
		callTimeout:     defaultCallTimeout,
		videoLimiter:    newLimiter(defaultProviderDelay),
		subtitleLimiter: newLimiter(defaultProviderDelay),
		logger:          slog.Default(),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// FetchVideo downloads the media file for videoID and returns its local
// path. ok is false when the artifact could not be obtained; the cause
// is logged, not returned.
func (o *Orchestrator) FetchVideo(ctx context.Context, videoID string) (string, bool) {
	if o.video == nil {
		return "", false
	}

	path, err := o.fetch(ctx, o.videoLimiter, func(callCtx context.Context) (string, error) {
		p, err := o.video.DownloadVideo(callCtx, videoID)
		if err != nil && errors.Is(err, ErrNoVideoLink) {
			return "", backoff.Permanent(err)
		}
		return p, err
	})
	if err != nil {
		o.logger.Warn("video download failed",
			"video_id", videoID,
			"error", err,
		)
		return "", false
	}

	return path, true
}

// FetchSubtitles downloads subtitle files for videoID in each requested
// language and returns local paths keyed by language. A missing key
// means that language could not be obtained; each failure is logged and
// the remaining languages are still attempted.
func (o *Orchestrator) FetchSubtitles(ctx context.Context, videoID string, languages []string) map[string]string {
	paths := make(map[string]string, len(languages))
	if o.subtitles == nil {
		return paths
	}

	for _, lang := range languages {
		path, err := o.fetch(ctx, o.subtitleLimiter, func(callCtx context.Context) (string, error) {
			p, err := o.subtitles.DownloadSubtitles(callCtx, videoID, lang)
			if err != nil && errors.Is(err, ErrNoSubtitleLink) {
				return "", backoff.Permanent(err)
			}
			return p, err
		})
		if err != nil {
			o.logger.Warn("subtitle download failed",
				"video_id", videoID,
				"language", lang,
				"error", err,
			)
			continue
		}

		paths[lang] = path
	}

	return paths
}

// fetch runs one provider call under the retry policy: wait on the
// provider's rate limiter, bound the attempt with callTimeout, and back
// off exponentially between attempts. A Permanent error from call stops
// the retries immediately.
func (o *Orchestrator) fetch(ctx context.Context, limiter *rate.Limiter, call func(context.Context) (string, error)) (string, error) {
	var path string

	operation := func() error {
		if err := limiter.Wait(ctx); err != nil {
			// The context is done; retrying cannot help.
			return backoff.Permanent(err)
		}

		callCtx, cancel := context.WithTimeout(ctx, o.callTimeout)
		defer cancel()

		p, err := call(callCtx)
		if err != nil {
			return err
		}

		path = p
		return nil
	}

	if err := backoff.Retry(operation, o.newBackOff(ctx)); err != nil {
		return "", err
	}

	return path, nil
}

// newBackOff builds the per-artifact retry policy: exponential backoff
// capped at the configured retry count and cancelled with ctx.
func (o *Orchestrator) newBackOff(ctx context.Context) backoff.BackOff {
	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(o.retries))
	return backoff.WithContext(b, ctx)
}

// newLimiter builds a provider pacer for the given minimum interval.
func newLimiter(d time.Duration) *rate.Limiter {
	if d > 0 {
		return rate.NewLimiter(rate.Every(d), 1)
	}
	return rate.NewLimiter(rate.Inf, 1)
}
