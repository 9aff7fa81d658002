package mock

import "github.com/fwojciec/linkex"

var _ linkex.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of linkex.Extractor.
type Extractor struct {
	ExtractFn func(html string, sourceURL string) (*linkex.Record, error)
}

func (e *Extractor) Extract(html string, sourceURL string) (*linkex.Record, error) {
	return e.ExtractFn(html, sourceURL)
}

var _ linkex.KindDetector = (*KindDetector)(nil)

// KindDetector is a mock implementation of linkex.KindDetector.
type KindDetector struct {
	DetectFn func(html string) linkex.Kind
}

func (d *KindDetector) Detect(html string) linkex.Kind {
	return d.DetectFn(html)
}

var _ linkex.ExtractorRegistry = (*ExtractorRegistry)(nil)

// ExtractorRegistry is a mock implementation of linkex.ExtractorRegistry.
type ExtractorRegistry struct {
	ForKindFn  func(kind linkex.Kind) (linkex.Extractor, error)
	ForHTMLFn  func(html string) (linkex.Extractor, linkex.Kind, error)
	RegisterFn func(kind linkex.Kind, extractor linkex.Extractor)
	ListFn     func() []linkex.Kind
}

func (r *ExtractorRegistry) ForKind(kind linkex.Kind) (linkex.Extractor, error) {
	return r.ForKindFn(kind)
}

func (r *ExtractorRegistry) ForHTML(html string) (linkex.Extractor, linkex.Kind, error) {
	return r.ForHTMLFn(html)
}

func (r *ExtractorRegistry) Register(kind linkex.Kind, extractor linkex.Extractor) {
	r.RegisterFn(kind, extractor)
}

func (r *ExtractorRegistry) List() []linkex.Kind {
	return r.ListFn()
}

var _ linkex.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of linkex.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html string) (*linkex.ContentResult, error)
}

func (e *ContentExtractor) Extract(html string) (*linkex.ContentResult, error) {
	return e.ExtractFn(html)
}

var _ linkex.Converter = (*Converter)(nil)

// Converter is a mock implementation of linkex.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
