package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Defaults for a Client built without options.
const (
	DefaultUserAgent    = "xmlprobe/1.0"
	DefaultMaxBodyBytes = 10 << 20
)

// Client fetches documents over HTTP.
type Client struct {
	httpClient   *http.Client
	userAgent    string
	maxBodyBytes int64
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithMaxBodyBytes caps how much of a response body is read. Larger bodies
// fail with ErrBodyTooLarge.
func WithMaxBodyBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBodyBytes = n
		}
	}
}

// New creates a new document client.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient:   http.DefaultClient,
		userAgent:    DefaultUserAgent,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch performs a GET request for url and returns the response body. The
// request is bounded by ctx; callers apply their timeout there. Non-2xx
// responses return a *StatusError.
func (c *Client) Fetch(ctx context.Context, url string) (*Document, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/xml, text/xml;q=0.9, */*;q=0.5")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("HTTP request failed",
			slog.String("method", "GET"),
			slog.String("url", url),
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Debug("HTTP request returned error",
			slog.String("method", "GET"),
			slog.String("url", url),
			slog.Int("status", resp.StatusCode),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		// drain a little so the connection can be reused
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if int64(len(body)) > c.maxBodyBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, c.maxBodyBytes)
	}

	slog.Debug("HTTP request completed",
		slog.String("method", "GET"),
		slog.String("url", url),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(body)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return &Document{
		URL:         url,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
		FetchedAt:   time.Now(),
	}, nil
}

// IsTimeout reports whether err came from a request that ran out of time.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}
