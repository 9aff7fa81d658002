// Package trafilatura wraps go-trafilatura as a linkex.ContentExtractor. It
// finds the main text of pages whose structure the goquery extractors do
// not recognize.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/linkex"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements linkex.ContentExtractor at compile time.
var _ linkex.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor. Comments sections are excluded so
// that replies are not mistaken for the post body.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback:  true,
			ExcludeComments: true,
		},
	}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*linkex.ContentResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, linkex.Errorf(linkex.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, linkex.Errorf(linkex.ENOTFOUND, "no main content found: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	var date string
	if !result.Metadata.Date.IsZero() {
		date = result.Metadata.Date.Format("2006-01-02")
	}

	return &linkex.ContentResult{
		Title:       result.Metadata.Title,
		Author:      result.Metadata.Author,
		Date:        date,
		ContentHTML: contentHTML,
		Text:        strings.TrimSpace(result.ContentText),
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
