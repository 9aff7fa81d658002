package scrape

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/fwojciec/linkex"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// RetryFunc is called before each retry with the failed attempt number
// and the delay until the next one.
type RetryFunc func(url string, attempt int, delay time.Duration, err error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry fetches url, retrying errors that linkex.IsRetryable
// accepts once per delay.
// A nil delays slice uses exponential backoff starting at one second with
// three retries.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, delays []time.Duration, onRetry RetryFunc) (string, error) {
	attempt := 0
	op := func() (string, error) {
		attempt++
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		if ctx.Err() != nil {
			return "", backoff.Permanent(ctx.Err())
		}
		if !linkex.IsRetryable(err) {
			return "", backoff.Permanent(err)
		}
		return "", err
	}

	var notify backoff.Notify
	if onRetry != nil {
		notify = func(err error, d time.Duration) {
			onRetry(url, attempt, d, err)
		}
	}

	return backoff.RetryNotifyWithData(op, backoff.WithContext(newBackOff(delays), ctx), notify)
}

func newBackOff(delays []time.Duration) backoff.BackOff {
	if delays == nil {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = time.Second
		b.Multiplier = 2
		b.RandomizationFactor = 0
		b.MaxElapsedTime = 0
		return backoff.WithMaxRetries(b, 3)
	}
	return &scheduleBackOff{delays: delays}
}

// scheduleBackOff waits the given delays in order, then stops.
type scheduleBackOff struct {
	delays []time.Duration
	next   int
}

func (b *scheduleBackOff) NextBackOff() time.Duration {
	if b.next >= len(b.delays) {
		return backoff.Stop
	}
	d := b.delays[b.next]
	b.next++
	return d
}

func (b *scheduleBackOff) Reset() { b.next = 0 }
