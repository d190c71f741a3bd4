package download

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// VideoDownloader fetches the media file for a video and returns the
// local file path.
type VideoDownloader interface {
	DownloadVideo(ctx context.Context, videoID string) (string, error)
}

// SubtitleDownloader fetches one subtitle track for a video and
// returns the local file path.
type SubtitleDownloader interface {
	DownloadSubtitles(ctx context.Context, videoID, language string) (string, error)
}

// Default provider client settings. The user agent mirrors the config
// default so a zero-option provider behaves like a configured one.
const (
	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// maxBodySize limits how much of a provider result page is parsed.
	maxBodySize = 10 * 1024 * 1024 // 10MB
)

// formFieldURL is the form field both services use for the watch URL.
const formFieldURL = "url"

// providerClient carries the HTTP plumbing shared by the scraping
// providers: session client, headers, and result-page handling.
//
// Design decision: the client carries no timeout of its own. Video
// files stream for longer than any fixed request timeout would allow,
// so per-call deadlines come from the caller's context instead.
type providerClient struct {
	// name identifies the provider in errors and logs.
	name string

	// hc is the underlying HTTP client. The default keeps a cookie jar
	// because the services track form sessions the way browsers do.
	hc *http.Client

	// userAgent is the User-Agent header sent with every request.
	userAgent string

	// logger receives download diagnostics.
	logger *slog.Logger
}

// ProviderOption configures a scraping provider.
type ProviderOption func(*providerClient)

// WithHTTPClient sets the underlying HTTP client.
// Useful for tests and custom transports.
func WithHTTPClient(hc *http.Client) ProviderOption {
	return func(p *providerClient) {
		if hc != nil {
			p.hc = hc
		}
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) ProviderOption {
	return func(p *providerClient) {
		if ua != "" {
			p.userAgent = ua
		}
	}
}

// WithLogger sets the logger for download diagnostics.
func WithLogger(logger *slog.Logger) ProviderOption {
	return func(p *providerClient) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// newProviderClient builds the shared plumbing with defaults applied.
func newProviderClient(name string, opts ...ProviderOption) providerClient {
	hc := &http.Client{}
	if jar, err := cookiejar.New(nil); err == nil {
		hc.Jar = jar
	}

	p := providerClient{
		name:      name,
		hc:        hc,
		userAgent: defaultUserAgent,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(&p)
	}

	return p
}

// setHeaders applies the browser-like headers both services expect.
func (p *providerClient) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
}

// submitWatchURL drives a provider's HTML form: GET the form page the
// way a browser lands on it, then POST the form and parse the result
// page. Returns the parsed document and the final response URL, which
// anchors relative links after redirects.
func (p *providerClient) submitWatchURL(ctx context.Context, baseURL string, form url.Values) (*goquery.Document, *url.URL, error) {
	// Land on the form first so session cookies are in the jar
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid provider URL: %w", err)
	}
	p.setHeaders(req)

	resp, err := p.hc.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load form page: %w", err)
	}
	// The form page itself is not parsed; drain it so the connection is reused
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
	resp.Body.Close()

	postReq, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid provider URL: %w", err)
	}
	p.setHeaders(postReq)
	postReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	postResp, err := p.hc.Do(postReq)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to submit watch URL: %w", err)
	}
	defer postResp.Body.Close()

	if postResp.StatusCode < 200 || postResp.StatusCode >= 300 {
		return nil, nil, fmt.Errorf("unexpected status %d from provider", postResp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(postResp.Body, maxBodySize))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse result page: %w", err)
	}

	return doc, postResp.Request.URL, nil
}

// saveFile streams fileURL into path, creating parent directories.
func (p *providerClient) saveFile(ctx context.Context, fileURL, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return fmt.Errorf("invalid download URL: %w", err)
	}
	p.setHeaders(req)

	resp, err := p.hc.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d downloading file", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create download directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(path) // remove the partial file
		return fmt.Errorf("failed to write file: %w", err)
	}

	return f.Close()
}

// resolveHref resolves a possibly-relative link against the result
// page URL. Providers mostly emit absolute links, but redirects and
// relative hrefs both happen in the wild.
func resolveHref(base *url.URL, href string) string {
	if base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
