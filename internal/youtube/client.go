package youtube

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Default client settings. They mirror the config package defaults so a
// zero-option client behaves like a configured one.
const (
	defaultTimeout       = 30 * time.Second
	defaultFetchInterval = 1 * time.Second
	defaultMaxBodySize   = 10 * 1024 * 1024 // 10MB
	defaultUserAgent     = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Client fetches watch pages over plain HTTP.
//
// Design decision: We scrape the static watch page rather than drive a
// browser because:
//  1. The embedded player JSON already contains everything we extract
//  2. No browser dependency keeps deployment to a single binary
//  3. A shared rate limiter gives precise control over request pacing
type Client struct {
	// hc is the underlying HTTP client.
	hc *http.Client

	// userAgent is the User-Agent header sent with every request.
	userAgent string

	// maxBodySize limits the response bytes read per page.
	maxBodySize int64

	// limiter paces fetches across all callers sharing this client.
	limiter *rate.Limiter

	// logger receives fetch diagnostics.
	logger *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the underlying HTTP client.
// Useful for tests and custom transports.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.hc = hc
		}
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithMaxBodySize limits the maximum response body size in bytes.
func WithMaxBodySize(size int64) ClientOption {
	return func(c *Client) {
		if size > 0 {
			c.maxBodySize = size
		}
	}
}

// WithFetchInterval sets the minimum interval between fetches, shared
// across all workers using this client. Zero disables pacing.
func WithFetchInterval(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.limiter = rate.NewLimiter(rate.Every(d), 1)
		} else {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
		}
	}
}

// WithLogger sets the logger for fetch diagnostics.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a watch-page client with sensible defaults.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		hc:          &http.Client{Timeout: defaultTimeout},
		userAgent:   defaultUserAgent,
		maxBodySize: defaultMaxBodySize,
		limiter:     rate.NewLimiter(rate.Every(defaultFetchInterval), 1),
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// get fetches pageURL and returns the body (up to maxBodySize) and the
// HTTP status code. It waits on the shared rate limiter first, so the
// politeness delay holds no matter how many workers call in.
func (c *Client) get(ctx context.Context, pageURL string) ([]byte, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, 0, err
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return nil, resp.StatusCode, err
	}

	return body, resp.StatusCode, nil
}
