package linkex

import "context"

// QueuedURL is a URL waiting to be scraped.
type QueuedURL struct {
	URL      string
	Kind     Kind
	Priority int

	// Index is the position of the URL in the caller's input.
	Index int
}

// URLFrontier manages a scrape queue with deduplication.
type URLFrontier interface {
	// Push adds a URL to the frontier.
	// Returns false if the URL has already been seen.
	Push(item QueuedURL) bool

	// Pop returns the next URL by priority.
	// Returns false if the frontier is empty.
	Pop() (QueuedURL, bool)

	// Len returns the number of URLs in the queue.
	Len() int

	// Seen returns true if the URL has been processed or queued.
	Seen(url string) bool
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
