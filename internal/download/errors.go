package download

import (
	"errors"
	"fmt"
)

// Sentinel errors for provider scraping.
//
// Design decision: "no link on the page" gets its own sentinel, apart
// from transport errors, because:
// 1. A page without a link will not grow one; retrying is pointless
// 2. The orchestrator turns these into permanent backoff failures
// 3. Tests can assert the cause without string matching
var (
	// ErrNoVideoLink indicates the provider result page contained no
	// usable MP4 download link.
	ErrNoVideoLink = errors.New("no video download link found")

	// ErrNoSubtitleLink indicates the provider result page contained no
	// subtitle link for the requested language.
	ErrNoSubtitleLink = errors.New("no subtitle link found")
)

// DownloadError describes a failed provider download.
// The orchestrator retries transient kinds and logs the final failure;
// the provider and video id exist for logs and debugging.
type DownloadError struct {
	// Provider names the service that failed ("ytdown", "downsub").
	Provider string

	// VideoID is the video whose artifact was requested.
	VideoID string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *DownloadError) Error() string {
	return fmt.Sprintf("%s: video %s: %v", e.Provider, e.VideoID, e.Err)
}

// Unwrap returns the underlying error so errors.Is and errors.As can
// reach the sentinel or transport-level causes.
func (e *DownloadError) Unwrap() error {
	return e.Err
}
