package scrape

import (
	"context"
	"sync"

	"github.com/fwojciec/linkex"
	"golang.org/x/time/rate"
)

var _ linkex.DomainLimiter = (*DomainLimiter)(nil)

// DefaultRate is the default number of requests per second sent to one host.
const DefaultRate = 1.0

// DomainLimiter provides per-host rate limiting using token buckets.
// Requests to different hosts proceed independently.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// to each host, without bursting. A non-positive rps uses DefaultRate.
func NewDomainLimiter(rps float64) *DomainLimiter {
	if rps <= 0 {
		rps = DefaultRate
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the host.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
