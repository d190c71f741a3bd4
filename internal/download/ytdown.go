package download

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/parsavid/vidharvest/internal/youtube"
)

// ytdownName identifies the provider in errors and logs.
const ytdownName = "ytdown"

// formFieldSubmit and submitValue name the submit button the ytdown
// form expects alongside the watch URL.
const (
	formFieldSubmit = "submit"
	submitValue     = "Download"
)

// qualityPreference orders MP4 qualities from most to least desirable.
var qualityPreference = []string{"720p", "480p", "360p"}

// qualityRegex extracts a quality label ("720p") from anchor text.
var qualityRegex = regexp.MustCompile(`(\d+p)`)

// unknownQuality labels links whose anchor text carries no quality.
const unknownQuality = "unknown"

// YTDown downloads video files through a ytdown-style conversion
// service: POST the watch URL to the service's form, then scan the
// result page anchors for MP4 links.
type YTDown struct {
	providerClient

	// baseURL is the service's form endpoint.
	baseURL string

	// dir is where downloaded video files land.
	dir string
}

// NewYTDown creates a video provider for the service at baseURL,
// saving files under dir.
func NewYTDown(baseURL, dir string, opts ...ProviderOption) *YTDown {
	return &YTDown{
		providerClient: newProviderClient(ytdownName, opts...),
		baseURL:        baseURL,
		dir:            dir,
	}
}

// DownloadVideo implements VideoDownloader.
// It prefers 720p, then 480p, then 360p, then whatever the page offers
// first, and saves the file as <dir>/<videoID>_<quality>.mp4.
func (y *YTDown) DownloadVideo(ctx context.Context, videoID string) (string, error) {
	watchURL := youtube.WatchURL(videoID)

	doc, pageURL, err := y.submitWatchURL(ctx, y.baseURL, url.Values{
		formFieldURL:    {watchURL},
		formFieldSubmit: {submitValue},
	})
	if err != nil {
		return "", &DownloadError{Provider: ytdownName, VideoID: videoID, Err: err}
	}

	fileURL, quality := pickVideoLink(videoLinks(doc, pageURL))
	if fileURL == "" {
		return "", &DownloadError{Provider: ytdownName, VideoID: videoID, Err: ErrNoVideoLink}
	}

	path := filepath.Join(y.dir, fmt.Sprintf("%s_%s.mp4", videoID, quality))
	if err := y.saveFile(ctx, fileURL, path); err != nil {
		return "", &DownloadError{Provider: ytdownName, VideoID: videoID, Err: err}
	}

	y.logger.Debug("downloaded video",
		"video_id", videoID,
		"quality", quality,
		"path", path,
	)

	return path, nil
}

// videoLink pairs a download URL with the quality its anchor advertised.
type videoLink struct {
	quality string
	href    string
}

// videoLinks scans result-page anchors for MP4 download links, in
// document order. A link qualifies when its href mentions "download"
// or "mp4"; the quality comes from the anchor text.
func videoLinks(doc *goquery.Document, pageURL *url.URL) []videoLink {
	var links []videoLink

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return
		}

		lower := strings.ToLower(href)
		if !strings.Contains(lower, "download") && !strings.Contains(lower, "mp4") {
			return
		}

		quality := unknownQuality
		if m := qualityRegex.FindStringSubmatch(sel.Text()); m != nil {
			quality = m[1]
		}

		links = append(links, videoLink{
			quality: quality,
			href:    resolveHref(pageURL, href),
		})
	})

	return links
}

// pickVideoLink chooses the best available link: the preference order
// first, then the first link on the page.
func pickVideoLink(links []videoLink) (href, quality string) {
	for _, pref := range qualityPreference {
		for _, l := range links {
			if l.quality == pref {
				return l.href, l.quality
			}
		}
	}
	if len(links) > 0 {
		return links[0].href, links[0].quality
	}
	return "", ""
}
