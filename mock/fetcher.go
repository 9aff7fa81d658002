package mock

import (
	"context"

	"github.com/fwojciec/linkex"
)

var _ linkex.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of linkex.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ linkex.RobotsChecker = (*RobotsChecker)(nil)

// RobotsChecker is a mock implementation of linkex.RobotsChecker.
type RobotsChecker struct {
	AllowedFn func(ctx context.Context, url string) (bool, error)
}

func (r *RobotsChecker) Allowed(ctx context.Context, url string) (bool, error) {
	return r.AllowedFn(ctx, url)
}
