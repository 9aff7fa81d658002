package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/linkex"
)

// Ensure CompanyExtractor implements linkex.Extractor at compile time.
var _ linkex.Extractor = (*CompanyExtractor)(nil)

// CompanyExtractor extracts company and school pages from JSON-LD
// Organization data, the about-us definition list and the top card.
type CompanyExtractor struct{}

// NewCompanyExtractor creates a new CompanyExtractor.
func NewCompanyExtractor() *CompanyExtractor {
	return &CompanyExtractor{}
}

// Extract parses a company page.
func (e *CompanyExtractor) Extract(html string, sourceURL string) (*linkex.Record, error) {
	doc, err := checkPage(html, sourceURL)
	if err != nil {
		return nil, err
	}

	c := &linkex.Company{Followers: linkex.UnknownCount}
	if org := findJSONLD(jsonLDNodes(doc), "Organization", "Corporation", "EducationalOrganization", "CollegeOrUniversity"); org != nil {
		e.fromJSONLD(c, org)
	}
	e.fromAboutList(c, doc)
	e.fromLayout(c, doc)

	return &linkex.Record{
		Kind:      linkex.KindCompany,
		SourceURL: sourceURL,
		Title:     firstNonEmpty(c.Name, linkex.SlugFromURL(sourceURL)),
		Company:   c,
	}, nil
}

func (e *CompanyExtractor) fromJSONLD(c *linkex.Company, org jsonLD) {
	c.Name = org.str("name")
	c.Description = org.str("description")
	c.Tagline = org.str("slogan")
	c.Industry = org.str("industry")
	c.Founded = org.str("foundingDate")
	c.Website = firstNonEmpty(org.str("sameAs"), org.str("url"))
	if addr := org.node("address"); addr != nil {
		c.Headquarters = joinNonEmpty(", ", addr.str("addressLocality"), addr.str("addressRegion"), addr.str("addressCountry"))
	}
	if employees := org.node("numberOfEmployees"); employees != nil {
		lo, hi := employees.str("minValue"), employees.str("maxValue")
		switch {
		case lo != "" && hi != "":
			c.Size = lo + "-" + hi + " employees"
		case employees.str("value") != "":
			c.Size = employees.str("value") + " employees"
		}
	}
	if n := org.interaction("FollowAction"); n >= 0 {
		c.Followers = n
	}
	c.Specialties = org.list("knowsAbout")
}

// fromAboutList reads dt/dd pairs of the about-us section.
func (e *CompanyExtractor) fromAboutList(c *linkex.Company, doc *goquery.Document) {
	doc.Find("dt").Each(func(_ int, dt *goquery.Selection) {
		dd := dt.NextFiltered("dd")
		if dd.Length() == 0 {
			return
		}
		label := strings.ToLower(text(dt))
		value := text(dd)
		if value == "" {
			return
		}

		switch {
		case strings.HasPrefix(label, "industr"):
			setIfEmpty(&c.Industry, value)
		case strings.HasPrefix(label, "company size"), label == "size":
			setIfEmpty(&c.Size, value)
		case strings.HasPrefix(label, "headquarters"):
			setIfEmpty(&c.Headquarters, value)
		case strings.HasPrefix(label, "website"):
			if href, ok := dd.Find("a").Attr("href"); ok && strings.HasPrefix(href, "http") && !strings.Contains(href, "linkedin.com/redir") {
				value = href
			}
			setIfEmpty(&c.Website, value)
		case strings.HasPrefix(label, "founded"):
			setIfEmpty(&c.Founded, value)
		case strings.HasPrefix(label, "specialties"):
			if len(c.Specialties) == 0 {
				c.Specialties = splitList(value)
			}
		}
	})
}

func (e *CompanyExtractor) fromLayout(c *linkex.Company, doc *goquery.Document) {
	root := doc.Selection

	setIfEmpty(&c.Name, firstText(root, "h1.top-card-layout__title", "h1.org-top-card-summary__title", "h1"))
	setIfEmpty(&c.Tagline, firstText(root, "h4.top-card-layout__second-subline", ".org-top-card-summary__tagline"))
	setIfEmpty(&c.Description, firstText(root,
		"[data-test-id='about-us__description']",
		"p.about-us__description",
		"section.about-us p",
		"section.core-section-container p"))
	setIfEmpty(&c.Description, metaContent(doc, "og:description"))

	if c.Name == "" {
		title, _, _ := strings.Cut(metaContent(doc, "og:title"), " | ")
		c.Name = strings.TrimSpace(title)
	}

	if c.Followers < 0 {
		root.Find(".top-card-layout__first-subline, .org-top-card-summary-info-list__info-item, .top-card-layout__entity-info").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if n := followerCount(text(s)); n >= 0 {
				c.Followers = n
				return false
			}
			return true
		})
	}
}

// followerCount finds "<count> followers" in s.
func followerCount(s string) int {
	lower := strings.ToLower(s)
	i := strings.Index(lower, "follower")
	if i < 0 {
		return linkex.UnknownCount
	}
	fields := strings.Fields(strings.TrimSpace(s[:i]))
	if len(fields) == 0 {
		return linkex.UnknownCount
	}
	return parseCount(fields[len(fields)-1])
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		v := cleanText(part)
		v = strings.TrimPrefix(v, "and ")
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func setIfEmpty(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}
