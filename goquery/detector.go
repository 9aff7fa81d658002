package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/linkex"
)

// Ensure Detector implements linkex.KindDetector at compile time.
var _ linkex.KindDetector = (*Detector)(nil)

// Detector identifies the kind of public page from HTML content.
// It checks the canonical URL, JSON-LD types, Open Graph metadata and
// finally layout classes, in that order.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes HTML and returns the identified kind.
// Returns KindUnknown if the kind cannot be determined.
func (d *Detector) Detect(html string) linkex.Kind {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return linkex.KindUnknown
	}

	// The canonical URL is most reliable when present.
	for _, u := range []string{canonicalURL(doc), metaContent(doc, "og:url")} {
		if u == "" {
			continue
		}
		if kind, err := linkex.ClassifyURL(u); err == nil {
			return kind
		}
	}

	if kind := d.detectFromJSONLD(doc); kind != linkex.KindUnknown {
		return kind
	}

	switch strings.ToLower(metaContent(doc, "og:type")) {
	case "profile":
		return linkex.KindProfile
	case "article":
		return linkex.KindArticle
	}

	switch {
	case d.hasSelector(doc, "section.experience, section.education, .pv-top-card"):
		return linkex.KindProfile
	case d.hasSelector(doc, "[data-test-id='about-us'], .org-top-card, .top-card-layout__entity-info .top-card-layout__first-subline"):
		return linkex.KindCompany
	case d.hasSelector(doc, ".attributed-text-segment-list__content, .feed-shared-update-v2"):
		return linkex.KindPost
	case d.hasSelector(doc, ".article-main, .reader-article-content"):
		return linkex.KindArticle
	}

	return linkex.KindUnknown
}

func (d *Detector) detectFromJSONLD(doc *goquery.Document) linkex.Kind {
	for _, node := range jsonLDNodes(doc) {
		for _, t := range node.types() {
			switch t {
			case "Person", "ProfilePage":
				return linkex.KindProfile
			case "Organization", "Corporation", "EducationalOrganization", "CollegeOrUniversity":
				return linkex.KindCompany
			case "SocialMediaPosting", "DiscussionForumPosting":
				return linkex.KindPost
			case "Article", "NewsArticle", "BlogPosting":
				return linkex.KindArticle
			}
		}
	}
	return linkex.KindUnknown
}

// hasSelector checks if the document contains at least one element matching the selector.
func (d *Detector) hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}

func canonicalURL(doc *goquery.Document) string {
	href, _ := doc.Find(`link[rel="canonical"]`).First().Attr("href")
	return strings.TrimSpace(href)
}
