package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// testClient returns a Client pointed at the given server with request
// pacing disabled, so tests run at full speed.
func testClient(srv *httptest.Server) *Client {
	return NewClient(
		WithHTTPClient(srv.Client()),
		WithFetchInterval(0),
	)
}

// watchPath embeds a recognizable watch URL shape in the test server
// path so id extraction sees the same string a real crawl would.
func watchPath(srv *httptest.Server, videoID string) string {
	return srv.URL + "/youtube.com/watch?v=" + videoID
}

// TestFetch tests a successful watch-page fetch end to end.
func TestFetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(watchPage("dQw4w9WgXcQ", []string{"rel00000001"})))
	}))
	defer srv.Close()

	client := testClient(srv)

	page, err := client.Fetch(context.Background(), watchPath(srv, "dQw4w9WgXcQ"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if page.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("expected video id dQw4w9WgXcQ, got %q", page.VideoID)
	}
	if page.Title == "" {
		t.Error("expected non-empty title")
	}
	if len(page.RelatedURLs) != 1 {
		t.Errorf("expected 1 related URL, got %d", len(page.RelatedURLs))
	}
}

// TestFetchErrors tests that failures map to the right FetchError kinds.
func TestFetchErrors(t *testing.T) {
	t.Parallel()

	t.Run("URL without video id is a parse error", func(t *testing.T) {
		t.Parallel()

		client := NewClient(WithFetchInterval(0))

		_, err := client.Fetch(context.Background(), "https://example.com/nothing")
		var fe *FetchError
		if !errors.As(err, &fe) {
			t.Fatalf("expected FetchError, got %v", err)
		}
		if fe.Kind != FetchErrorParse {
			t.Errorf("expected parse kind, got %q", fe.Kind)
		}
	})

	t.Run("404 is unavailable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := testClient(srv).Fetch(context.Background(), watchPath(srv, "dQw4w9WgXcQ"))
		var fe *FetchError
		if !errors.As(err, &fe) {
			t.Fatalf("expected FetchError, got %v", err)
		}
		if fe.Kind != FetchErrorUnavailable {
			t.Errorf("expected unavailable kind, got %q", fe.Kind)
		}
	})

	t.Run("500 is a network error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := testClient(srv).Fetch(context.Background(), watchPath(srv, "dQw4w9WgXcQ"))
		var fe *FetchError
		if !errors.As(err, &fe) {
			t.Fatalf("expected FetchError, got %v", err)
		}
		if fe.Kind != FetchErrorNetwork {
			t.Errorf("expected network kind, got %q", fe.Kind)
		}
	})

	t.Run("playability error page is unavailable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html><head><title>YouTube</title></head><body>` +
				`<script>var ytInitialPlayerResponse = {"playabilityStatus":{"status":"ERROR","reason":"Video unavailable"}};</script>` +
				`</body></html>`))
		}))
		defer srv.Close()

		_, err := testClient(srv).Fetch(context.Background(), watchPath(srv, "dQw4w9WgXcQ"))
		var fe *FetchError
		if !errors.As(err, &fe) {
			t.Fatalf("expected FetchError, got %v", err)
		}
		if fe.Kind != FetchErrorUnavailable {
			t.Errorf("expected unavailable kind, got %q", fe.Kind)
		}
	})

	t.Run("connection failure is a network error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
		url := watchPath(srv, "dQw4w9WgXcQ")
		srv.Close() // Server gone before the fetch

		client := NewClient(WithFetchInterval(0))

		_, err := client.Fetch(context.Background(), url)
		var fe *FetchError
		if !errors.As(err, &fe) {
			t.Fatalf("expected FetchError, got %v", err)
		}
		if fe.Kind != FetchErrorNetwork {
			t.Errorf("expected network kind, got %q", fe.Kind)
		}
	})

	t.Run("page without title is a parse error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html><body>not a watch page</body></html>`))
		}))
		defer srv.Close()

		_, err := testClient(srv).Fetch(context.Background(), watchPath(srv, "dQw4w9WgXcQ"))
		var fe *FetchError
		if !errors.As(err, &fe) {
			t.Fatalf("expected FetchError, got %v", err)
		}
		if fe.Kind != FetchErrorParse {
			t.Errorf("expected parse kind, got %q", fe.Kind)
		}
	})

	t.Run("cancelled context is a network error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(watchPage("dQw4w9WgXcQ", nil)))
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := testClient(srv).Fetch(ctx, watchPath(srv, "dQw4w9WgXcQ"))
		var fe *FetchError
		if !errors.As(err, &fe) {
			t.Fatalf("expected FetchError, got %v", err)
		}
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled in chain, got %v", err)
		}
	})
}

// TestFetchSendsUserAgent verifies the configured User-Agent reaches the
// server.
func TestFetchSendsUserAgent(t *testing.T) {
	t.Parallel()

	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(watchPage("dQw4w9WgXcQ", nil)))
	}))
	defer srv.Close()

	client := NewClient(
		WithHTTPClient(srv.Client()),
		WithFetchInterval(0),
		WithUserAgent("vidharvest-test/1.0"),
	)

	if _, err := client.Fetch(context.Background(), watchPath(srv, "dQw4w9WgXcQ")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotUA != "vidharvest-test/1.0" {
		t.Errorf("expected custom User-Agent, got %q", gotUA)
	}
}

// TestFetchBodySizeLimit verifies oversized responses are truncated
// rather than read fully.
func TestFetchBodySizeLimit(t *testing.T) {
	t.Parallel()

	page := watchPage("dQw4w9WgXcQ", relatedIDs(20))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	// Cap below the fixture size: the title still parses (it appears
	// early) but the trailing related list is cut off.
	client := NewClient(
		WithHTTPClient(srv.Client()),
		WithFetchInterval(0),
		WithMaxBodySize(600),
	)

	got, err := client.Fetch(context.Background(), watchPath(srv, "dQw4w9WgXcQ"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.RelatedURLs) == 20 {
		t.Error("expected truncated body to drop trailing related ids")
	}
}
