package youtube

import "regexp"

// WatchURLPrefix is the canonical watch-page prefix for building URLs
// from video ids.
const WatchURLPrefix = "https://www.youtube.com/watch?v="

// Video id extraction patterns. Ids are exactly 11 characters from a
// base64-like alphabet; the URL shapes cover the watch page, the short
// link domain, embeds, and the legacy /v/ player.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/v/([A-Za-z0-9_-]{11})`),
}

// ExtractVideoID extracts the 11-character video id from a YouTube URL.
// It recognizes watch, short-link, embed, and legacy player URL shapes.
// Returns the id and true, or "" and false when no id is present.
func ExtractVideoID(rawURL string) (string, bool) {
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(rawURL); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// WatchURL returns the canonical watch-page URL for a video id.
func WatchURL(videoID string) string {
	return WatchURLPrefix + videoID
}
