package model

import "time"

// VideoNode represents one video discovered during a crawl run.
// A node is created the first time its watch page is fetched and becomes
// immutable once the accept/reject decision is made. The crawler never
// deletes nodes; cleanup, if any, belongs to the metadata store.
type VideoNode struct {
	// VideoID is the platform-global video identifier.
	// On YouTube this is the 11-character watch id.
	VideoID string `json:"video_id"`

	// URL is the watch-page URL the node was first reached through.
	// The same video reached later via a different URL keeps this one.
	URL string `json:"url"`

	// Title is the video title as shown on the watch page.
	Title string `json:"title"`

	// Description is the video description. May be empty.
	Description string `json:"description,omitempty"`

	// ChannelID is the uploading channel's identifier.
	ChannelID string `json:"channel_id,omitempty"`

	// ChannelTitle is the uploading channel's display name.
	ChannelTitle string `json:"channel_title,omitempty"`

	// Depth is the breadth-first distance from the nearest seed URL.
	// Seed URLs are depth 0.
	Depth int `json:"depth"`

	// LanguageScore is the Farsi likelihood in [0,1] computed over
	// title and description at discovery time.
	LanguageScore float64 `json:"language_score"`

	// Accepted is true if LanguageScore cleared the configured threshold
	// and the run still had accept budget when the decision was made.
	Accepted bool `json:"accepted"`

	// DiscoveredAt is when the node's watch page was first fetched.
	DiscoveredAt time.Time `json:"discovered_at"`
}
