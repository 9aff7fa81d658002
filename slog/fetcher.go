// Package slog decorates linkex services with structured logging.
package slog

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/linkex"
)

// Ensure LoggingFetcher implements linkex.Fetcher.
var _ linkex.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   linkex.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next linkex.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the page size. Failures
// carry the domain error code and whether a retry may help; login walls
// are logged as warnings.
func (f *LoggingFetcher) Fetch(ctx context.Context, rawURL string) (html string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", rawURL,
			"host", host(rawURL),
			"bytes", len(html),
			"duration", time.Since(begin),
		}
		if err == nil {
			f.logger.Info("fetch", attrs...)
			return
		}
		attrs = append(attrs,
			"code", linkex.ErrorCode(err),
			"retryable", linkex.IsRetryable(err),
			"err", err,
		)
		if linkex.ErrorCode(err) == linkex.EUNAUTHORIZED {
			f.logger.Warn("fetch blocked", attrs...)
			return
		}
		f.logger.Info("fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, rawURL)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

func host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
