package goquery

import (
	"sort"

	"github.com/fwojciec/linkex"
)

var _ linkex.ExtractorRegistry = (*Registry)(nil)

// Registry manages kind-specific extractors and detects the kind of a page
// from its HTML when the caller does not know it.
type Registry struct {
	detector   linkex.KindDetector
	extractors map[linkex.Kind]linkex.Extractor
}

// NewRegistry creates a new Registry with the given detector.
func NewRegistry(detector linkex.KindDetector) *Registry {
	return &Registry{
		detector:   detector,
		extractors: make(map[linkex.Kind]linkex.Extractor),
	}
}

// ForKind returns the extractor for a specific kind.
func (r *Registry) ForKind(kind linkex.Kind) (linkex.Extractor, error) {
	if extractor, ok := r.extractors[kind]; ok {
		return extractor, nil
	}
	return nil, linkex.Errorf(linkex.EINVALID, "no extractor registered for kind %q", kind)
}

// ForHTML detects the kind from HTML and returns its extractor.
func (r *Registry) ForHTML(html string) (linkex.Extractor, linkex.Kind, error) {
	kind := r.detector.Detect(html)
	if kind == linkex.KindUnknown {
		return nil, kind, linkex.Errorf(linkex.EINVALID, "could not determine page kind; pass an explicit kind")
	}
	extractor, err := r.ForKind(kind)
	if err != nil {
		return nil, kind, err
	}
	return extractor, kind, nil
}

// Register adds an extractor for a kind.
// If an extractor is already registered for the kind, it is replaced.
func (r *Registry) Register(kind linkex.Kind, extractor linkex.Extractor) {
	r.extractors[kind] = extractor
}

// List returns all registered kinds in sorted order.
func (r *Registry) List() []linkex.Kind {
	kinds := make([]linkex.Kind, 0, len(r.extractors))
	for k := range r.extractors {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
