package linkex

import "context"

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its HTML.
	// The context controls timeout and cancellation.
	// Returns ENOTFOUND, EUNAUTHORIZED (login wall) or EUNAVAILABLE
	// (rate limited, upstream error) for the corresponding conditions.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// RobotsChecker decides whether robots.txt allows fetching a URL.
type RobotsChecker interface {
	Allowed(ctx context.Context, url string) (bool, error)
}
