package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Using errors.New() here rather than fmt.Errorf()
// because we don't need to include dynamic values in these messages.
var (
	// ErrNoSeed is returned when no seed URL is specified.
	// The crawl has nowhere to start without at least one watch URL.
	ErrNoSeed = errors.New("no seed specified: provide at least one YouTube watch URL")

	// ErrInvalidMaxVideos is returned when the accept budget is not positive.
	// A budget of zero would terminate the run before accepting anything.
	ErrInvalidMaxVideos = errors.New("invalid max videos: must be positive")

	// ErrInvalidThreshold is returned when the language score threshold
	// falls outside the [0,1] score range.
	ErrInvalidThreshold = errors.New("invalid threshold: must be between 0 and 1")

	// ErrInvalidWorkers is returned when the worker count is not positive.
	// Zero workers would mean no crawling at all.
	ErrInvalidWorkers = errors.New("invalid workers: must be positive")

	// ErrInvalidMaxDepth is returned when the depth limit is negative.
	// Use 0 to restrict the crawl to the seed URLs themselves.
	ErrInvalidMaxDepth = errors.New("invalid max depth: must be non-negative")

	// ErrInvalidTimeout is returned when the fetch timeout is not positive.
	// A timeout of zero or negative would cause immediate request failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidCrawlDelay is returned when the crawl delay is negative.
	// A negative delay is invalid; use 0 for no delay between fetches.
	ErrInvalidCrawlDelay = errors.New("invalid crawl delay: must be non-negative")

	// ErrInvalidProviderDelay is returned when the provider delay is negative.
	// A negative delay is invalid; use 0 for no delay between provider calls.
	ErrInvalidProviderDelay = errors.New("invalid provider delay: must be non-negative")

	// ErrInvalidDownloadRetries is returned when the retry count is negative.
	// Use 0 to make the first provider failure final.
	ErrInvalidDownloadRetries = errors.New("invalid download retries: must be non-negative")

	// ErrInvalidCallTimeout is returned when the per-call timeout is not
	// positive. Provider calls must have a finite, positive bound.
	ErrInvalidCallTimeout = errors.New("invalid call timeout: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// A negative body size is invalid; use 0 to use the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrNoSubtitleLanguage is returned when subtitle extraction is enabled
	// but the language list is empty.
	ErrNoSubtitleLanguage = errors.New("no subtitle language specified: provide at least one language code")

	// ErrInvalidLanguage is returned when a subtitle language code is not
	// a well-formed BCP 47 tag. The offending code is wrapped alongside.
	ErrInvalidLanguage = errors.New("invalid subtitle language")
)
