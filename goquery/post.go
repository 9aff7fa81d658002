package goquery

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/linkex"
)

// Ensure PostExtractor implements linkex.Extractor at compile time.
var _ linkex.Extractor = (*PostExtractor)(nil)

// PostExtractor extracts feed posts with their engagement counts. When the
// post body cannot be located by selector, the optional content extractor
// supplies the page's main text.
type PostExtractor struct {
	content linkex.ContentExtractor
}

// NewPostExtractor creates a new PostExtractor. content may be nil.
func NewPostExtractor(content linkex.ContentExtractor) *PostExtractor {
	return &PostExtractor{content: content}
}

// Extract parses a post page.
func (e *PostExtractor) Extract(html string, sourceURL string) (*linkex.Record, error) {
	doc, err := checkPage(html, sourceURL)
	if err != nil {
		return nil, err
	}

	p := &linkex.Post{
		Reactions: linkex.UnknownCount,
		Comments:  linkex.UnknownCount,
		Reposts:   linkex.UnknownCount,
	}
	if posting := findJSONLD(jsonLDNodes(doc), "SocialMediaPosting", "DiscussionForumPosting"); posting != nil {
		e.fromJSONLD(p, posting)
	}
	e.fromLayout(p, doc, sourceURL)

	if p.Content == "" && e.content != nil {
		if result, err := e.content.Extract(html); err == nil {
			p.Content = strings.TrimSpace(result.Text)
			setIfEmpty(&p.Author, result.Author)
			setIfEmpty(&p.PublishedAt, result.Date)
		}
	}
	setIfEmpty(&p.Content, metaContent(doc, "og:description"))

	return &linkex.Record{
		Kind:      linkex.KindPost,
		SourceURL: sourceURL,
		Title:     postTitle(p, sourceURL),
		Post:      p,
	}, nil
}

func (e *PostExtractor) fromJSONLD(p *linkex.Post, posting jsonLD) {
	p.Content = firstNonEmpty(posting.str("articleBody"), posting.str("text"))
	p.PublishedAt = posting.str("datePublished")
	if author := posting.node("author"); author != nil {
		p.Author = author.str("name")
		p.AuthorURL = author.str("url")
	} else {
		p.Author = posting.str("author")
	}
	p.Reactions = posting.interaction("LikeAction")
	p.Comments = posting.interaction("CommentAction")
	p.Reposts = posting.interaction("ShareAction")
	if p.Comments < 0 {
		if n, ok := posting["commentCount"].(float64); ok {
			p.Comments = int(n)
		}
	}
}

func (e *PostExtractor) fromLayout(p *linkex.Post, doc *goquery.Document, sourceURL string) {
	root := doc.Selection

	setIfEmpty(&p.Content, firstText(root,
		".attributed-text-segment-list__content",
		".feed-shared-update-v2__description",
		".update-components-text",
		"[data-test-id='main-feed-activity-card__commentary']"))

	if p.Author == "" {
		actor := root.Find("a[data-tracking-control-name*='actor-name'], .base-main-card__title, .update-components-actor__name, .feed-shared-actor__name").First()
		p.Author = text(actor)
		if p.AuthorURL == "" {
			if href, ok := actor.Attr("href"); ok {
				p.AuthorURL = absoluteURL(sourceURL, href)
			}
		}
	}
	setIfEmpty(&p.PublishedAt, firstText(root, "time", ".update-components-actor__sub-description"))

	if p.Reactions < 0 {
		p.Reactions = countFrom(root, "[data-test-id='social-actions__reaction-count']", ".social-details-social-counts__reactions-count")
	}
	if p.Comments < 0 {
		p.Comments = countFrom(root, "[data-test-id='social-actions__comments']", ".social-details-social-counts__comments")
	}
	if p.Reposts < 0 {
		p.Reposts = countFrom(root, "[data-test-id='social-actions__reposts']", ".social-details-social-counts__item--reposts")
	}
}

func countFrom(root *goquery.Selection, selectors ...string) int {
	for _, selector := range selectors {
		sel := root.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if n := parseCount(firstNonEmpty(text(sel), sel.AttrOr("data-num-reactions", ""))); n >= 0 {
			return n
		}
	}
	return linkex.UnknownCount
}

func absoluteURL(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	resolved := b.ResolveReference(ref)
	resolved.RawQuery = ""
	resolved.Fragment = ""
	return resolved.String()
}

const postTitleLength = 60

func postTitle(p *linkex.Post, sourceURL string) string {
	if p.Author != "" {
		return "Post by " + p.Author
	}
	if p.Content != "" {
		if utf8.RuneCountInString(p.Content) <= postTitleLength {
			return p.Content
		}
		runes := []rune(p.Content)
		return strings.TrimSpace(string(runes[:postTitleLength])) + "..."
	}
	return linkex.SlugFromURL(sourceURL)
}
