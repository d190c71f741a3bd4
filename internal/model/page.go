package model

import (
	"strings"
	"time"
)

// MaxRelatedVideos caps how many related-video URLs a single page
// contributes to the frontier. Watch pages routinely embed dozens of
// recommendations; following all of them makes the frontier balloon
// without improving topical breadth.
const MaxRelatedVideos = 20

// PageData is the normalized result of fetching one watch page.
// It is the only shape the crawler sees; how the page was obtained
// (plain HTTP client, headless browser) is the fetcher's concern.
type PageData struct {
	// VideoID is the video identifier extracted from the page URL.
	VideoID string `json:"video_id"`

	// URL is the fetched watch-page URL after normalization.
	URL string `json:"url"`

	// Title is the video title. Empty if the page carried none.
	Title string `json:"title,omitempty"`

	// Description is the video description from the page metadata.
	Description string `json:"description,omitempty"`

	// ChannelID is the uploading channel's identifier, when present.
	ChannelID string `json:"channel_id,omitempty"`

	// ChannelTitle is the uploading channel's display name, when present.
	ChannelTitle string `json:"channel_title,omitempty"`

	// RelatedURLs holds the watch URLs of related videos in page order,
	// deduplicated and capped at MaxRelatedVideos. The page's own video
	// is never included.
	RelatedURLs []string `json:"related_urls,omitempty"`

	// FetchedAt is when the page was retrieved.
	FetchedAt time.Time `json:"fetched_at"`
}

// ClassifierText returns the text the language classifier scores for
// this page: title and description joined by a newline. Either part
// may be empty.
func (p *PageData) ClassifierText() string {
	if p.Description == "" {
		return p.Title
	}
	return p.Title + "\n" + p.Description
}

// Node builds the VideoNode for this page at the given crawl depth.
// Score and acceptance are left zero; the crawl orchestrator fills
// them when it makes the accept/reject decision.
func (p *PageData) Node(depth int) *VideoNode {
	return &VideoNode{
		VideoID:      p.VideoID,
		URL:          p.URL,
		Title:        strings.TrimSpace(p.Title),
		Description:  strings.TrimSpace(p.Description),
		ChannelID:    p.ChannelID,
		ChannelTitle: p.ChannelTitle,
		Depth:        depth,
		DiscoveredAt: p.FetchedAt,
	}
}
