package model

// StoreStats holds the row counts the metadata store reports.
// Used by the stats command and by report writers.
type StoreStats struct {
	// Videos is the total number of stored video rows.
	Videos int `json:"videos"`

	// AcceptedVideos is the number of stored videos with Accepted=true.
	AcceptedVideos int `json:"accepted_videos"`

	// Subtitles is the total number of stored subtitle rows.
	Subtitles int `json:"subtitles"`

	// SubtitlesByLanguage maps a language tag to its subtitle row count.
	SubtitlesByLanguage map[string]int `json:"subtitles_by_language,omitempty"`

	// CrawlRuns is the number of recorded crawl runs.
	CrawlRuns int `json:"crawl_runs"`
}
