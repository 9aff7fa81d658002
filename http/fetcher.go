// Package http provides an HTTP-based implementation of linkex.Fetcher
// for fetching public pages that don't require JavaScript rendering, and
// a robots.txt gate for the same client.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/linkex"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 15 * time.Second

// DefaultUserAgent identifies the tool honestly to the sites it reads.
const DefaultUserAgent = "linkex/1.0 (+https://github.com/fwojciec/linkex)"

// MaxBodySize is the largest response body read from a page.
const MaxBodySize = 5 << 20

// Ensure Fetcher implements linkex.Fetcher at compile time.
var _ linkex.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	language  string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithAcceptLanguage sets the Accept-Language header.
func WithAcceptLanguage(lang string) Option {
	return func(f *Fetcher) {
		f.language = lang
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
		language:  "en-US,en;q=0.8",
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// UserAgent returns the User-Agent header value the fetcher sends.
func (f *Fetcher) UserAgent() string {
	return f.userAgent
}

// Fetch retrieves the HTML content from the given URL.
//
// Login walls (a redirect to an authwall or login page) and 401, 403 and
// 999 responses are reported as EUNAUTHORIZED. 404 and 410 are ENOTFOUND.
// 429, 5xx and transport failures are EUNAVAILABLE so callers may retry.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", linkex.Errorf(linkex.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	if f.language != "" {
		req.Header.Set("Accept-Language", f.language)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", linkex.Errorf(linkex.EUNAVAILABLE, "fetching %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.Request != nil && linkex.IsAuthwallURL(resp.Request.URL.String()) {
		return "", linkex.Errorf(linkex.EUNAUTHORIZED, "%s is behind a login wall", url)
	}

	if err := statusError(resp.StatusCode, url); err != nil {
		return "", err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return "", linkex.Errorf(linkex.EUNAVAILABLE, "reading %s: %v", url, err)
	}
	if len(body) > MaxBodySize {
		return "", linkex.Errorf(linkex.EINVALID, "%s exceeds %d bytes", url, MaxBodySize)
	}

	return string(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

func statusError(code int, url string) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound || code == http.StatusGone:
		return linkex.Errorf(linkex.ENOTFOUND, "HTTP %d for %s", code, url)
	case code == http.StatusUnauthorized || code == http.StatusForbidden || code == 999:
		return linkex.Errorf(linkex.EUNAUTHORIZED, "HTTP %d for %s: page is not publicly accessible", code, url)
	case code == http.StatusTooManyRequests || code >= 500 && code < 600:
		return linkex.Errorf(linkex.EUNAVAILABLE, "HTTP %d for %s", code, url)
	default:
		return fmt.Errorf("HTTP %d for %s", code, url)
	}
}
