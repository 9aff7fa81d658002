package scrape

import (
	"container/heap"
	"strings"
	"sync"

	"github.com/fwojciec/linkex"
	"github.com/fwojciec/linkex/bloom"
)

// Compile-time interface verification.
var _ linkex.URLFrontier = (*Frontier)(nil)

// KindPriority returns the queue priority of a kind. Profiles are scraped
// first, then companies, articles and posts.
func KindPriority(kind linkex.Kind) int {
	switch kind {
	case linkex.KindProfile:
		return 4
	case linkex.KindCompany:
		return 3
	case linkex.KindArticle:
		return 2
	case linkex.KindPost:
		return 1
	}
	return 0
}

// Frontier is an in-memory scrape queue with Bloom filter deduplication.
// A positive filter answer is confirmed against the exact set of queued
// URLs, so distinct URLs are never dropped.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu     sync.Mutex
	seen   *bloom.Filter
	queued map[string]struct{}
	queue  *urlHeap
}

// NewFrontier creates a new Frontier sized for n expected URLs
// with the given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	h := &urlHeap{}
	heap.Init(h)
	return &Frontier{
		seen:   bloom.NewFilter(n, fpRate),
		queued: make(map[string]struct{}, n),
		queue:  h,
	}
}

// Push adds a URL to the frontier.
// Returns false if the URL has already been seen. Fragments are ignored.
func (f *Frontier) Push(item linkex.QueuedURL) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	item.URL = stripFragment(item.URL)
	if f.has(item.URL) {
		return false
	}
	f.seen.Add(item.URL)
	f.queued[item.URL] = struct{}{}
	heap.Push(f.queue, item)
	return true
}

// Pop returns the next URL by priority. URLs of equal priority come out
// in input order.
func (f *Frontier) Pop() (linkex.QueuedURL, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return linkex.QueuedURL{}, false
	}
	item, _ := heap.Pop(f.queue).(linkex.QueuedURL)
	return item, true
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// Seen returns true if the URL has been queued.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.has(stripFragment(rawURL))
}

func (f *Frontier) has(u string) bool {
	if !f.seen.Test(u) {
		return false
	}
	_, ok := f.queued[u]
	return ok
}

func stripFragment(u string) string {
	if idx := strings.Index(u, "#"); idx != -1 {
		return u[:idx]
	}
	return u
}

// urlHeap is a max-heap on Priority with Index as tie breaker.
type urlHeap []linkex.QueuedURL

func (h urlHeap) Len() int { return len(h) }

func (h urlHeap) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority > h[j].Priority
	}
	return h[i].Index < h[j].Index
}

func (h urlHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *urlHeap) Push(x any) {
	item, _ := x.(linkex.QueuedURL)
	*h = append(*h, item)
}

func (h *urlHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
