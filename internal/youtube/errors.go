package youtube

import "fmt"

// FetchErrorKind classifies fetch failures so the crawler can count and
// log them without inspecting error strings.
type FetchErrorKind string

const (
	// FetchErrorNetwork covers transport failures: DNS errors, connection
	// resets, timeouts, and unexpected HTTP statuses.
	FetchErrorNetwork FetchErrorKind = "network"

	// FetchErrorParse covers responses that arrived but could not be
	// interpreted as a watch page.
	FetchErrorParse FetchErrorKind = "parse"

	// FetchErrorUnavailable covers pages that are gone rather than broken:
	// private, removed, or region-blocked videos.
	FetchErrorUnavailable FetchErrorKind = "unavailable"
)

// FetchError describes a failed watch-page fetch.
// The crawler treats every kind the same way (skip the node, count the
// error); the kind exists for logs and debugging.
type FetchError struct {
	// URL is the watch page that failed.
	URL string

	// Kind classifies the failure.
	Kind FetchErrorKind

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Kind)
}

// Unwrap returns the underlying error so errors.Is and errors.As can
// reach transport-level causes.
func (e *FetchError) Unwrap() error {
	return e.Err
}
