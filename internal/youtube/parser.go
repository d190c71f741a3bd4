package youtube

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/parsavid/vidharvest/internal/model"
)

// Watch pages embed the player and related-video data as JSON inside
// script tags. Instead of unmarshaling the multi-megabyte structure we
// scan for the handful of tokens we need.
var (
	videoIDTokenRegex     = regexp.MustCompile(`"videoId"\s*:\s*"([A-Za-z0-9_-]{11})"`)
	channelIDTokenRegex   = regexp.MustCompile(`"channelId"\s*:\s*"(UC[A-Za-z0-9_-]{22})"`)
	shortDescriptionRegex = regexp.MustCompile(`"shortDescription"\s*:\s*"((?:[^"\\]|\\.)*)"`)
)

// parseWatchPage extracts metadata and related video URLs from a watch
// page body.
//
// Design decision: We combine an HTML walk (for meta tags, which are
// stable across page layouts) with token scans over the raw body (for
// data that only exists inside the embedded JSON) because:
//  1. Meta tags give clean title and channel values without JSON decoding
//  2. Related video ids appear only in the player JSON
//  3. Unmarshaling the full structure would tie us to an undocumented
//     and frequently shifting schema
func parseWatchPage(videoID, pageURL string, body []byte) (*model.PageData, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	page := &model.PageData{
		VideoID:   videoID,
		URL:       pageURL,
		FetchedAt: time.Now(),
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			processElement(n, page)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	// The full description lives only in the player JSON; the meta tag
	// carries a truncated version.
	if m := shortDescriptionRegex.FindSubmatch(body); m != nil {
		page.Description = unescapeJSON(string(m[1]))
	}
	if page.ChannelID == "" {
		if m := channelIDTokenRegex.FindSubmatch(body); m != nil {
			page.ChannelID = string(m[1])
		}
	}

	page.RelatedURLs = relatedWatchURLs(videoID, body)

	if page.Title == "" {
		return nil, fmt.Errorf("no title found for %s", videoID)
	}

	return page, nil
}

// processElement extracts metadata from title, meta, and link elements.
func processElement(n *html.Node, page *model.PageData) {
	switch n.Data {
	case "title":
		// The document title carries a " - YouTube" suffix; og:title,
		// when present, overwrites with the clean value.
		if page.Title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
			title := strings.TrimSpace(n.FirstChild.Data)
			page.Title = strings.TrimSpace(strings.TrimSuffix(title, "- YouTube"))
		}

	case "meta":
		content := getAttr(n, "content")
		if content == "" {
			return
		}
		switch {
		case getAttr(n, "property") == "og:title" || getAttr(n, "name") == "title":
			page.Title = content
		case getAttr(n, "property") == "og:description" || getAttr(n, "name") == "description":
			page.Description = content
		case getAttr(n, "itemprop") == "channelId":
			page.ChannelID = content
		}

	case "link":
		// The author microdata span carries the channel name as a link
		// element with a content attribute.
		if getAttr(n, "itemprop") == "name" {
			if content := getAttr(n, "content"); content != "" {
				page.ChannelTitle = content
			}
		}
	}
}

// relatedWatchURLs scans the embedded player JSON for related video ids.
// The page's own id appears many times and is excluded; the rest keep
// their order of first appearance, deduplicated and capped at
// model.MaxRelatedVideos.
func relatedWatchURLs(selfID string, body []byte) []string {
	matches := videoIDTokenRegex.FindAllSubmatch(body, -1)

	seen := make(map[string]bool)
	urls := make([]string, 0, model.MaxRelatedVideos)
	for _, m := range matches {
		id := string(m[1])
		if id == selfID || seen[id] {
			continue
		}
		seen[id] = true
		urls = append(urls, WatchURL(id))
		if len(urls) == model.MaxRelatedVideos {
			break
		}
	}

	return urls
}

// unescapeJSON decodes the escape sequences inside a JSON string literal.
// Falls back to the raw text if the literal is malformed.
func unescapeJSON(s string) string {
	// JSON allows \/ but Go string literals do not.
	s = strings.ReplaceAll(s, `\/`, "/")
	unquoted, err := strconv.Unquote(`"` + s + `"`)
	if err != nil {
		return s
	}
	return unquoted
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
