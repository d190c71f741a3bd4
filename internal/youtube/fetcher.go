package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"github.com/parsavid/vidharvest/internal/model"
)

// playabilityRegex matches the player JSON status of pages that return
// 200 but carry no playable video (private, removed, region-blocked).
var playabilityRegex = regexp.MustCompile(`"playabilityStatus"\s*:\s*\{\s*"status"\s*:\s*"(ERROR|LOGIN_REQUIRED|UNPLAYABLE)"`)

// Fetch retrieves and parses the watch page for pageURL.
// The returned PageData carries the metadata and related URLs the
// crawler needs. All failures come back as *FetchError so callers can
// classify them without string matching.
func (c *Client) Fetch(ctx context.Context, pageURL string) (*model.PageData, error) {
	videoID, ok := ExtractVideoID(pageURL)
	if !ok {
		return nil, &FetchError{URL: pageURL, Kind: FetchErrorParse, Err: errors.New("no video id in URL")}
	}

	body, status, err := c.get(ctx, pageURL)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Kind: FetchErrorNetwork, Err: err}
	}

	switch {
	case status == http.StatusNotFound || status == http.StatusGone:
		return nil, &FetchError{URL: pageURL, Kind: FetchErrorUnavailable, Err: fmt.Errorf("status %d", status)}
	case status < 200 || status >= 300:
		return nil, &FetchError{URL: pageURL, Kind: FetchErrorNetwork, Err: fmt.Errorf("status %d", status)}
	}

	// Unavailable videos are served as a 200 page with an error status
	// in the player JSON.
	if m := playabilityRegex.FindSubmatch(body); m != nil {
		return nil, &FetchError{URL: pageURL, Kind: FetchErrorUnavailable, Err: fmt.Errorf("playability status %s", m[1])}
	}

	page, err := parseWatchPage(videoID, pageURL, body)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Kind: FetchErrorParse, Err: err}
	}

	c.logger.Debug("fetched watch page",
		"video_id", videoID,
		"title", page.Title,
		"related", len(page.RelatedURLs))

	return page, nil
}
