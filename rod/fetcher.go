// Package rod provides a headless Chrome implementation of linkex.Fetcher
// for public pages that only render their content with JavaScript.
package rod

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fwojciec/linkex"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout is the default time allowed for one page load.
const DefaultFetchTimeout = 15 * time.Second

// DefaultMaxPages is the default number of pages before browser recycling.
const DefaultMaxPages = 50

// Ensure Fetcher implements linkex.Fetcher at compile time.
var _ linkex.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// The browser is recycled after a number of pages because Chrome's memory
// baseline grows under sustained load.
//
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	timeout   time.Duration
	userAgent string
	maxPages  int

	mu        sync.Mutex
	browser   *rod.Browser
	launcher  *launcher.Launcher
	pageCount int
	closed    bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-page load timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent reported by the browser.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxPages sets the number of pages after which the browser is recycled.
func WithMaxPages(n int) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	if err := f.launchBrowser(); err != nil {
		return nil, err
	}
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
// A navigation that ends on a login interstitial returns EUNAUTHORIZED.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser, err := f.acquire()
	if err != nil {
		return "", err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", linkex.Errorf(linkex.EUNAVAILABLE, "opening browser page: %v", err)
	}
	defer page.Close()

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	page = page.Context(ctx)

	if f.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
			return "", fmt.Errorf("setting user agent: %w", err)
		}
	}

	if err := page.Navigate(url); err != nil {
		return "", navigationError(ctx, url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", navigationError(ctx, url, err)
	}

	info, err := page.Info()
	if err == nil && linkex.IsAuthwallURL(info.URL) {
		return "", linkex.Errorf(linkex.EUNAUTHORIZED, "%s is behind a login wall", url)
	}

	html, err := page.HTML()
	if err != nil {
		return "", navigationError(ctx, url, err)
	}

	return html, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true
	return f.closeBrowser()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.launcher == nil {
		return 0
	}
	return f.launcher.PID()
}

// acquire returns the current browser, recycling it once maxPages pages
// have been served. If relaunching fails, the old browser is kept.
func (f *Fetcher) acquire() (*rod.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, linkex.Errorf(linkex.EINVALID, "fetcher closed")
	}

	if f.maxPages > 0 && f.pageCount >= f.maxPages {
		oldBrowser, oldLauncher := f.browser, f.launcher
		if err := f.launchBrowser(); err == nil {
			_ = oldBrowser.Close()
			oldLauncher.Kill()
			f.pageCount = 0
		}
	}

	f.pageCount++
	return f.browser, nil
}

// launchBrowser starts a new browser instance with stability flags.
func (f *Fetcher) launchBrowser() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = l
	return nil
}

// closeBrowser shuts down the current browser and launcher.
// Must be called with mu held.
func (f *Fetcher) closeBrowser() error {
	var err error
	if f.browser != nil {
		err = f.browser.Close()
		f.browser = nil
	}
	if f.launcher != nil {
		f.launcher.Kill()
		f.launcher = nil
	}
	return err
}

func navigationError(ctx context.Context, url string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return linkex.Errorf(linkex.EUNAVAILABLE, "loading %s: %v", url, err)
}
