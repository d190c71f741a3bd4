package youtube

import (
	"fmt"
	"strings"
	"testing"
)

// watchPage builds a synthetic watch page with the metadata shapes the
// parser looks for: og tags, microdata, and embedded player JSON.
func watchPage(selfID string, relatedIDs []string) string {
	var sb strings.Builder
	sb.WriteString(`<!DOCTYPE html><html><head>`)
	sb.WriteString(`<title>آموزش آشپزی ایرانی - YouTube</title>`)
	sb.WriteString(`<meta name="description" content="truncated meta description">`)
	sb.WriteString(`<meta property="og:title" content="آموزش آشپزی ایرانی">`)
	sb.WriteString(`<meta property="og:description" content="truncated og description">`)
	sb.WriteString(`<meta itemprop="channelId" content="UCabcdefghijklmnopqrstuv">`)
	sb.WriteString(`<span itemprop="author"><link itemprop="url" href="https://www.youtube.com/@ashpazi"><link itemprop="name" content="آشپزخانه ایرانی"></span>`)
	sb.WriteString(`</head><body><script>var ytInitialPlayerResponse = {"videoDetails":{"videoId":"`)
	sb.WriteString(selfID)
	sb.WriteString(`","shortDescription":"در این ویدیو\nآشپزی یاد می‌گیرید"}};</script>`)
	sb.WriteString(`<script>var ytInitialData = {"contents":[`)
	for i, id := range relatedIDs {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, `{"videoId":"%s"}`, id)
	}
	sb.WriteString(`]};</script></body></html>`)
	return sb.String()
}

// relatedIDs generates n distinct 11-character video ids.
func relatedIDs(n int) []string {
	ids := make([]string, 0, n)
	for i := range n {
		ids = append(ids, fmt.Sprintf("rel%08d", i))
	}
	return ids
}

// TestParseWatchPage tests metadata extraction from a full watch page.
func TestParseWatchPage(t *testing.T) {
	t.Parallel()

	body := []byte(watchPage("dQw4w9WgXcQ", []string{"rel00000001", "rel00000002"}))

	page, err := parseWatchPage("dQw4w9WgXcQ", WatchURL("dQw4w9WgXcQ"), body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if page.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("expected video id dQw4w9WgXcQ, got %q", page.VideoID)
	}
	if page.Title != "آموزش آشپزی ایرانی" {
		t.Errorf("expected og:title to win, got %q", page.Title)
	}
	if page.ChannelID != "UCabcdefghijklmnopqrstuv" {
		t.Errorf("expected channel id, got %q", page.ChannelID)
	}
	if page.ChannelTitle != "آشپزخانه ایرانی" {
		t.Errorf("expected channel title, got %q", page.ChannelTitle)
	}
	if page.FetchedAt.IsZero() {
		t.Error("expected FetchedAt to be set")
	}
}

// TestParseWatchPageDescription verifies the player JSON description wins
// over the truncated meta tag and has its escapes decoded.
func TestParseWatchPageDescription(t *testing.T) {
	t.Parallel()

	body := []byte(watchPage("dQw4w9WgXcQ", nil))

	page, err := parseWatchPage("dQw4w9WgXcQ", WatchURL("dQw4w9WgXcQ"), body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "در این ویدیو\nآشپزی یاد می‌گیرید"
	if page.Description != want {
		t.Errorf("expected decoded description %q, got %q", want, page.Description)
	}
}

// TestParseWatchPageRelated tests related URL extraction rules.
func TestParseWatchPageRelated(t *testing.T) {
	t.Parallel()

	t.Run("related ids become canonical watch URLs", func(t *testing.T) {
		t.Parallel()

		body := []byte(watchPage("dQw4w9WgXcQ", []string{"rel00000001", "rel00000002"}))

		page, err := parseWatchPage("dQw4w9WgXcQ", WatchURL("dQw4w9WgXcQ"), body)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(page.RelatedURLs) != 2 {
			t.Fatalf("expected 2 related URLs, got %d", len(page.RelatedURLs))
		}
		if page.RelatedURLs[0] != WatchURL("rel00000001") {
			t.Errorf("expected first related URL in order, got %q", page.RelatedURLs[0])
		}
	})

	t.Run("own id is excluded", func(t *testing.T) {
		t.Parallel()

		body := []byte(watchPage("dQw4w9WgXcQ", []string{"dQw4w9WgXcQ", "rel00000001"}))

		page, err := parseWatchPage("dQw4w9WgXcQ", WatchURL("dQw4w9WgXcQ"), body)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(page.RelatedURLs) != 1 {
			t.Fatalf("expected 1 related URL, got %d", len(page.RelatedURLs))
		}
		if page.RelatedURLs[0] != WatchURL("rel00000001") {
			t.Errorf("expected only the other id, got %q", page.RelatedURLs[0])
		}
	})

	t.Run("duplicates collapse to first appearance", func(t *testing.T) {
		t.Parallel()

		body := []byte(watchPage("dQw4w9WgXcQ", []string{"rel00000001", "rel00000001", "rel00000002"}))

		page, err := parseWatchPage("dQw4w9WgXcQ", WatchURL("dQw4w9WgXcQ"), body)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(page.RelatedURLs) != 2 {
			t.Errorf("expected 2 deduplicated URLs, got %d", len(page.RelatedURLs))
		}
	})

	t.Run("related URLs are capped", func(t *testing.T) {
		t.Parallel()

		body := []byte(watchPage("dQw4w9WgXcQ", relatedIDs(35)))

		page, err := parseWatchPage("dQw4w9WgXcQ", WatchURL("dQw4w9WgXcQ"), body)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(page.RelatedURLs) != 20 {
			t.Errorf("expected cap of 20 related URLs, got %d", len(page.RelatedURLs))
		}
	})

	t.Run("page with no player JSON has no related URLs", func(t *testing.T) {
		t.Parallel()

		body := []byte(`<html><head><title>plain - YouTube</title></head><body></body></html>`)

		page, err := parseWatchPage("dQw4w9WgXcQ", WatchURL("dQw4w9WgXcQ"), body)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(page.RelatedURLs) != 0 {
			t.Errorf("expected no related URLs, got %v", page.RelatedURLs)
		}
	})
}

// TestParseWatchPageTitleFallback verifies the document title is used when
// no og:title meta tag is present, with the suffix stripped.
func TestParseWatchPageTitleFallback(t *testing.T) {
	t.Parallel()

	body := []byte(`<html><head><title>ویدیو نمونه - YouTube</title></head><body></body></html>`)

	page, err := parseWatchPage("dQw4w9WgXcQ", WatchURL("dQw4w9WgXcQ"), body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if page.Title != "ویدیو نمونه" {
		t.Errorf("expected suffix-trimmed title, got %q", page.Title)
	}
}

// TestParseWatchPageNoTitle verifies pages without any title fail to parse.
func TestParseWatchPageNoTitle(t *testing.T) {
	t.Parallel()

	body := []byte(`<html><head></head><body><p>not a watch page</p></body></html>`)

	_, err := parseWatchPage("dQw4w9WgXcQ", WatchURL("dQw4w9WgXcQ"), body)
	if err == nil {
		t.Fatal("expected error for page without title")
	}
}

// TestUnescapeJSON tests JSON string literal decoding.
func TestUnescapeJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text", in: "hello", want: "hello"},
		{name: "newline escape", in: `line1\nline2`, want: "line1\nline2"},
		{name: "unicode escape", in: `در`, want: "در"},
		{name: "escaped slash", in: `a\/b`, want: "a/b"},
		{name: "escaped quote", in: `say \"hi\"`, want: `say "hi"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := unescapeJSON(tt.in); got != tt.want {
				t.Errorf("unescapeJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
