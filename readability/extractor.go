// Package readability extracts long-form articles with go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/linkex"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements linkex.ContentExtractor at compile time.
var _ linkex.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*linkex.ContentResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, linkex.Errorf(linkex.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, linkex.Errorf(linkex.ENOTFOUND, "no readable content: %v", err)
	}

	var date string
	if article.PublishedTime != nil {
		date = article.PublishedTime.Format("2006-01-02")
	}

	return &linkex.ContentResult{
		Title:       strings.TrimSpace(article.Title),
		Author:      strings.TrimSpace(article.Byline),
		Date:        date,
		ContentHTML: article.Content,
		Text:        strings.TrimSpace(article.TextContent),
	}, nil
}
