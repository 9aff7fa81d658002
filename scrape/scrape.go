// Package scrape orchestrates fetching public pages, extracting records
// from them, storing the records and indexing them for questions.
package scrape

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/fwojciec/linkex"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages fetched in parallel.
const DefaultConcurrency = 3

// Frontier sizing for a single batch.
const (
	frontierMinURLs           = 1000
	frontierFalsePositiveRate = 0.001
)

// Scraper turns page URLs into stored, indexed records.
type Scraper struct {
	Fetcher      linkex.Fetcher
	Robots       linkex.RobotsChecker // nil skips robots.txt checks
	Extractors   linkex.ExtractorRegistry
	Records      linkex.RecordService
	Indexer      linkex.Indexer      // nil disables indexing
	Chunks       linkex.ChunkService // nil skips re-indexing unchanged records
	TokenCounter linkex.TokenCounter // nil skips token counts
	RateLimiter  linkex.DomainLimiter
	Concurrency  int
	RetryDelays  []time.Duration
	OnRetry      RetryFunc

	// Now returns the fetch time stamped on records. Defaults to time.Now.
	Now func() time.Time
}

// Options configures a single scrape.
type Options struct {
	// Kind forces the record kind instead of classifying each URL.
	// It is required for hosts other than the canonical one.
	Kind linkex.Kind

	// Preview extracts records without storing or indexing them.
	Preview bool

	// NoIndex stores records without building their chunk index.
	NoIndex bool
}

// Status is the outcome of scraping one URL.
type Status int

const (
	StatusSaved Status = iota
	StatusUnchanged
	StatusSkipped
	StatusFailed
	StatusPreviewed
)

func (s Status) String() string {
	switch s {
	case StatusSaved:
		return "saved"
	case StatusUnchanged:
		return "unchanged"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	case StatusPreviewed:
		return "previewed"
	}
	return "unknown"
}

// Item is the outcome for one input URL.
type Item struct {
	// URL is the input as given by the caller.
	URL string

	// NormalizedURL is empty when the input could not be normalized.
	NormalizedURL string

	Kind   linkex.Kind
	Status Status
	Record *linkex.Record
	Chunks int
	Err    error
}

// Result holds the outcome of a scrape.
type Result struct {
	Saved     int
	Unchanged int
	Skipped   int
	Failed    int
	Bytes     int
	Tokens    int

	// Items holds one entry per input URL, in input order.
	Items []*Item
}

// Records returns the records extracted during the scrape, in input order.
func (r *Result) Records() []*linkex.Record {
	var records []*linkex.Record
	for _, item := range r.Items {
		if item.Record != nil {
			records = append(records, item.Record)
		}
	}
	return records
}

func (r *Result) count(item *Item) {
	switch item.Status {
	case StatusSaved, StatusPreviewed:
		r.Saved++
	case StatusUnchanged:
		r.Unchanged++
	case StatusSkipped:
		r.Skipped++
	case StatusFailed:
		r.Failed++
	}
}

// ProgressEvent reports progress during a scrape.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Status    Status
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event ProgressEvent)

// fetched holds the outcome of fetching and extracting a single URL.
type fetched struct {
	index int
	html  string
	rec   *linkex.Record
	err   error
}

// Scrape fetches, extracts and stores every URL.
//
// Invalid URLs fail without a fetch and duplicates after normalization are
// skipped. The remaining URLs are fetched concurrently, profiles first.
// Records are stored in input order. The returned error is non-nil only
// when the context is canceled; per-URL failures are reported in Items.
func (s *Scraper) Scrape(ctx context.Context, urls []string, opts Options, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	result := &Result{Items: make([]*Item, len(urls))}
	total := len(urls)
	progress(ProgressEvent{Type: ProgressStarted, Total: total})

	completed := 0
	report := func(item *Item) {
		completed++
		result.count(item)
		ev := ProgressEvent{
			Completed: completed,
			Total:     total,
			URL:       item.URL,
			Status:    item.Status,
			Error:     item.Err,
		}
		switch item.Status {
		case StatusFailed:
			ev.Type = ProgressFailed
		case StatusSkipped:
			ev.Type = ProgressSkipped
		default:
			ev.Type = ProgressCompleted
		}
		progress(ev)
	}

	frontier := NewFrontier(uint(max(len(urls), frontierMinURLs)), frontierFalsePositiveRate)
	for i, raw := range urls {
		item := &Item{URL: raw}
		result.Items[i] = item

		normalized, kind, err := resolve(raw, opts.Kind)
		if err != nil {
			item.Status = StatusFailed
			item.Err = err
			report(item)
			continue
		}
		item.NormalizedURL = normalized
		item.Kind = kind

		if !frontier.Push(linkex.QueuedURL{URL: normalized, Kind: kind, Priority: KindPriority(kind), Index: i}) {
			item.Status = StatusSkipped
			item.Err = linkex.Errorf(linkex.ECONFLICT, "duplicate of an earlier URL: %s", normalized)
			report(item)
		}
	}

	var queue []linkex.QueuedURL
	for {
		q, ok := frontier.Pop()
		if !ok {
			break
		}
		queue = append(queue, q)
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	outcomes := make([]*fetched, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, q := range queue {
		g.Go(func() error {
			outcomes[q.Index] = s.fetchAndExtract(gctx, q)
			return nil
		})
	}
	_ = g.Wait()

	for i, out := range outcomes {
		if out == nil {
			continue
		}
		item := result.Items[i]
		if out.err != nil {
			item.Status = StatusFailed
			item.Err = out.err
			report(item)
			continue
		}
		result.Bytes += len(out.html)
		s.store(ctx, item, out.rec, opts)
		if item.Record != nil && s.TokenCounter != nil {
			if tokens, err := s.TokenCounter.CountTokens(ctx, linkex.FormatRecord(item.Record)); err == nil {
				result.Tokens += tokens
			}
		}
		report(item)
	}

	progress(ProgressEvent{Type: ProgressFinished, Completed: completed, Total: total})

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// ScrapeHTML extracts and stores a record from a saved page. No network
// request is made. When kind is KindUnknown it is taken from the URL or,
// failing that, detected from the HTML.
func (s *Scraper) ScrapeHTML(ctx context.Context, html, sourceURL string, opts Options) (*Item, error) {
	item := &Item{URL: sourceURL}

	normalized, err := linkex.NormalizeURL(sourceURL)
	if err != nil {
		return nil, err
	}
	item.NormalizedURL = normalized

	var extractor linkex.Extractor
	kind := opts.Kind
	if kind == linkex.KindUnknown {
		if k, err := linkex.ClassifyURL(normalized); err == nil {
			kind = k
		}
	}
	if kind == linkex.KindUnknown {
		extractor, kind, err = s.Extractors.ForHTML(html)
	} else {
		extractor, err = s.Extractors.ForKind(kind)
	}
	if err != nil {
		return nil, err
	}
	item.Kind = kind

	rec, err := s.extract(extractor, html, normalized, kind)
	if err != nil {
		return nil, err
	}

	s.store(ctx, item, rec, opts)
	if item.Status == StatusFailed {
		return item, item.Err
	}
	return item, nil
}

// fetchAndExtract runs the network half of the pipeline for one URL.
func (s *Scraper) fetchAndExtract(ctx context.Context, q linkex.QueuedURL) *fetched {
	out := &fetched{index: q.Index}

	if s.Robots != nil {
		allowed, err := s.Robots.Allowed(ctx, q.URL)
		if err != nil {
			out.err = err
			return out
		}
		if !allowed {
			out.err = linkex.Errorf(linkex.EUNAUTHORIZED, "robots.txt disallows %s", q.URL)
			return out
		}
	}

	extractor, err := s.Extractors.ForKind(q.Kind)
	if err != nil {
		out.err = err
		return out
	}

	host := ""
	if u, err := url.Parse(q.URL); err == nil {
		host = u.Host
	}
	fetch := func(ctx context.Context, url string) (string, error) {
		if s.RateLimiter != nil {
			if err := s.RateLimiter.Wait(ctx, host); err != nil {
				return "", err
			}
		}
		return s.Fetcher.Fetch(ctx, url)
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetry(ctx, q.URL, fetch, delays, s.OnRetry)
	if err != nil {
		out.err = err
		return out
	}
	out.html = html

	out.rec, out.err = s.extract(extractor, html, q.URL, q.Kind)
	return out
}

func (s *Scraper) extract(extractor linkex.Extractor, html, normalized string, kind linkex.Kind) (*linkex.Record, error) {
	rec, err := extractor.Extract(html, normalized)
	if err != nil {
		return nil, err
	}
	rec.Kind = kind
	rec.SourceURL = normalized
	rec.FetchedAt = s.now()
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("extract %s: %w", normalized, err)
	}
	return rec, nil
}

// store upserts the record and indexes it when its content changed or
// when an unchanged record has no chunks yet.
func (s *Scraper) store(ctx context.Context, item *Item, rec *linkex.Record, opts Options) {
	item.Record = rec
	if opts.Preview {
		item.Status = StatusPreviewed
		return
	}

	changed, err := s.Records.UpsertRecord(ctx, rec)
	if err != nil {
		item.Record = nil
		item.Status = StatusFailed
		item.Err = err
		return
	}
	item.Status = StatusSaved
	if !changed {
		item.Status = StatusUnchanged
	}

	if s.Indexer == nil || opts.NoIndex {
		return
	}
	if !changed {
		indexed, err := s.hasChunks(ctx, rec.ID)
		if err != nil {
			item.Status = StatusFailed
			item.Err = fmt.Errorf("check index of record %s: %w", rec.ID, err)
			return
		}
		if indexed {
			return
		}
	}
	n, err := s.Indexer.Index(ctx, rec)
	if err != nil {
		item.Status = StatusFailed
		item.Err = fmt.Errorf("record %s stored but not indexed: %w", rec.ID, err)
		return
	}
	item.Chunks = n
}

// hasChunks reports whether the record already has an index. Without a
// chunk service the index of an unchanged record is assumed current.
func (s *Scraper) hasChunks(ctx context.Context, recordID string) (bool, error) {
	if s.Chunks == nil {
		return true, nil
	}
	chunks, err := s.Chunks.FindChunks(ctx, linkex.ChunkFilter{RecordID: &recordID, Limit: 1})
	if err != nil {
		return false, err
	}
	return len(chunks) > 0, nil
}

func (s *Scraper) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC().Truncate(time.Second)
	}
	return time.Now().UTC().Truncate(time.Second)
}

// resolve normalizes raw and determines its kind. A forced kind skips
// classification so that other hosts can be scraped.
func resolve(raw string, forced linkex.Kind) (string, linkex.Kind, error) {
	normalized, err := linkex.NormalizeURL(raw)
	if err != nil {
		return "", linkex.KindUnknown, err
	}
	if forced != linkex.KindUnknown {
		if !forced.Valid() {
			return "", linkex.KindUnknown, linkex.Errorf(linkex.EINVALID, "record kind %q invalid", forced)
		}
		return normalized, forced, nil
	}
	kind, err := linkex.ClassifyURL(normalized)
	if err != nil {
		return "", linkex.KindUnknown, err
	}
	return normalized, kind, nil
}
