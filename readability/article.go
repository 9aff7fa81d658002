package readability

import (
	"strings"

	"github.com/fwojciec/linkex"
	"github.com/fwojciec/linkex/goquery"
)

// Ensure ArticleExtractor implements linkex.Extractor at compile time.
var _ linkex.Extractor = (*ArticleExtractor)(nil)

// ArticleExtractor turns a long-form article page into an article record
// whose content is Markdown.
type ArticleExtractor struct {
	content   linkex.ContentExtractor
	converter linkex.Converter
}

// NewArticleExtractor creates an ArticleExtractor from a content extractor
// and an HTML to Markdown converter.
func NewArticleExtractor(content linkex.ContentExtractor, converter linkex.Converter) *ArticleExtractor {
	return &ArticleExtractor{content: content, converter: converter}
}

// Extract parses an article page.
func (e *ArticleExtractor) Extract(html string, sourceURL string) (*linkex.Record, error) {
	if goquery.IsAuthwallHTML(html) {
		return nil, linkex.Errorf(linkex.EUNAUTHORIZED, "%s returned a login wall instead of public content", sourceURL)
	}

	result, err := e.content.Extract(html)
	if err != nil {
		return nil, err
	}

	content := result.Text
	if strings.TrimSpace(result.ContentHTML) != "" {
		if md, err := e.converter.Convert(result.ContentHTML); err == nil && strings.TrimSpace(md) != "" {
			content = md
		}
	}

	a := &linkex.Article{
		Author:      result.Author,
		Title:       stripSiteSuffix(result.Title),
		PublishedAt: result.Date,
		Content:     strings.TrimSpace(content),
	}

	return &linkex.Record{
		Kind:      linkex.KindArticle,
		SourceURL: sourceURL,
		Title:     firstNonEmpty(a.Title, linkex.SlugFromURL(sourceURL)),
		Article:   a,
	}, nil
}

// stripSiteSuffix removes a trailing " | Site" from a page title.
func stripSiteSuffix(title string) string {
	if i := strings.LastIndex(title, " | "); i > 0 {
		return strings.TrimSpace(title[:i])
	}
	return strings.TrimSpace(title)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
