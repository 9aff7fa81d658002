// Package textsplitter chunks record text with langchaingo's recursive
// character splitter.
package textsplitter

import (
	"strings"

	"github.com/fwojciec/linkex"
	"github.com/tmc/langchaingo/textsplitter"
)

// Ensure Splitter implements linkex.Splitter at compile time.
var _ linkex.Splitter = (*Splitter)(nil)

// Chunking defaults. Formatted records are line oriented, so lines are
// the only separator.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
	DefaultSeparator    = "\n"
)

// Splitter splits text into overlapping chunks of at most ChunkSize runes.
type Splitter struct {
	inner textsplitter.RecursiveCharacter
}

// Option configures a Splitter.
type Option func(*config)

type config struct {
	size    int
	overlap int
}

// WithChunkSize sets the maximum chunk size.
func WithChunkSize(size int) Option {
	return func(c *config) {
		c.size = size
	}
}

// WithChunkOverlap sets how much consecutive chunks overlap.
func WithChunkOverlap(overlap int) Option {
	return func(c *config) {
		c.overlap = overlap
	}
}

// NewSplitter creates a new Splitter. Returns EINVALID when the overlap is
// not smaller than the chunk size.
func NewSplitter(opts ...Option) (*Splitter, error) {
	cfg := config{size: DefaultChunkSize, overlap: DefaultChunkOverlap}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.size <= 0 {
		return nil, linkex.Errorf(linkex.EINVALID, "chunk size must be positive")
	}
	if cfg.overlap < 0 || cfg.overlap >= cfg.size {
		return nil, linkex.Errorf(linkex.EINVALID, "chunk overlap %d must be between 0 and chunk size %d", cfg.overlap, cfg.size)
	}

	return &Splitter{
		inner: textsplitter.NewRecursiveCharacter(
			textsplitter.WithSeparators([]string{DefaultSeparator}),
			textsplitter.WithChunkSize(cfg.size),
			textsplitter.WithChunkOverlap(cfg.overlap),
		),
	}, nil
}

// Split returns the chunks of text. Blank text yields no chunks.
func (s *Splitter) Split(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	chunks, err := s.inner.SplitText(text)
	if err != nil {
		return nil, err
	}

	out := chunks[:0]
	for _, c := range chunks {
		if strings.TrimSpace(c) != "" {
			out = append(out, c)
		}
	}
	return out, nil
}
