package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/linkex"
)

// Default caps on list sections of a profile.
const (
	DefaultMaxExperiences = 5
	DefaultMaxEducations  = 3
)

// Ensure ProfileExtractor implements linkex.Extractor at compile time.
var _ linkex.Extractor = (*ProfileExtractor)(nil)

// ProfileExtractor extracts person profiles. It reads JSON-LD Person data
// first, then the public profile layout classes, then generic headings and
// Open Graph metadata. Fields that cannot be found are left empty.
type ProfileExtractor struct {
	maxExperiences int
	maxEducations  int
}

// ProfileOption configures a ProfileExtractor.
type ProfileOption func(*ProfileExtractor)

// WithMaxExperiences caps the number of experiences kept. Zero means no cap.
func WithMaxExperiences(n int) ProfileOption {
	return func(e *ProfileExtractor) {
		e.maxExperiences = n
	}
}

// WithMaxEducations caps the number of education entries kept. Zero means no cap.
func WithMaxEducations(n int) ProfileOption {
	return func(e *ProfileExtractor) {
		e.maxEducations = n
	}
}

// NewProfileExtractor creates a new ProfileExtractor.
func NewProfileExtractor(opts ...ProfileOption) *ProfileExtractor {
	e := &ProfileExtractor{
		maxExperiences: DefaultMaxExperiences,
		maxEducations:  DefaultMaxEducations,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses a profile page.
func (e *ProfileExtractor) Extract(html string, sourceURL string) (*linkex.Record, error) {
	doc, err := checkPage(html, sourceURL)
	if err != nil {
		return nil, err
	}

	p := &linkex.Profile{}
	if person := findJSONLD(jsonLDNodes(doc), "Person"); person != nil {
		e.fromJSONLD(p, person)
	}
	e.fromLayout(p, doc)
	e.fromMeta(p, doc)

	p.Experiences = capList(p.Experiences, e.maxExperiences)
	p.Educations = capList(p.Educations, e.maxEducations)

	return &linkex.Record{
		Kind:      linkex.KindProfile,
		SourceURL: sourceURL,
		Title:     firstNonEmpty(p.Name, linkex.SlugFromURL(sourceURL)),
		Profile:   p,
	}, nil
}

func (e *ProfileExtractor) fromJSONLD(p *linkex.Profile, person jsonLD) {
	p.Name = person.str("name")
	p.Headline = firstNonEmpty(person.str("jobTitle"), person.str("headline"))
	p.About = person.str("description")
	if addr := person.node("address"); addr != nil {
		p.Location = joinNonEmpty(", ", addr.str("addressLocality"), addr.str("addressRegion"), addr.str("addressCountry"))
	}
	for _, org := range person.nodes("worksFor") {
		exp := linkex.Experience{Company: org.str("name")}
		if member := org.node("member"); member != nil {
			exp.Title = member.str("roleName")
			exp.Duration = dateRange(member.str("startDate"), member.str("endDate"))
		}
		if exp.Company != "" {
			p.Experiences = append(p.Experiences, exp)
		}
	}
	for _, school := range person.nodes("alumniOf") {
		edu := linkex.Education{School: school.str("name")}
		if member := school.node("member"); member != nil {
			edu.Degree = member.str("roleName")
			edu.Duration = dateRange(member.str("startDate"), member.str("endDate"))
		}
		if edu.School != "" {
			p.Educations = append(p.Educations, edu)
		}
	}
	p.Skills = person.list("knowsAbout")
}

func (e *ProfileExtractor) fromLayout(p *linkex.Profile, doc *goquery.Document) {
	root := doc.Selection

	if p.Name == "" {
		p.Name = firstText(root, "h1.top-card-layout__title", "h1.text-heading-xlarge", "h1")
	}
	if p.Headline == "" {
		p.Headline = firstText(root, "h2.top-card-layout__headline", "h2.text-body-medium", "div.text-body-medium", "h2")
	}
	if p.Location == "" {
		p.Location = firstText(root, ".top-card__subline-item:not(.top-card__subline-item--connections)", ".top-card-layout__first-subline .not-first-middot span:first-child")
	}
	if p.Connections == "" {
		p.Connections = firstText(root, ".top-card__subline-item--connections", ".top-card__connections", ".top-card-layout__connections")
	}
	if p.About == "" {
		p.About = sectionText(root, "section.summary", "section.about", "div.core-section-container__content", "div.break-words")
	}

	if exps := e.layoutExperiences(root); len(exps) > 0 {
		p.Experiences = exps
	}
	if edus := e.layoutEducations(root); len(edus) > 0 {
		p.Educations = edus
	}

	if len(p.Skills) == 0 {
		root.Find("section.skills li, section.skills-section li").Each(func(_ int, s *goquery.Selection) {
			if skill := firstNonEmpty(firstText(s, "h3", "span"), text(s)); skill != "" {
				p.Skills = append(p.Skills, skill)
			}
		})
	}
}

func (e *ProfileExtractor) layoutExperiences(root *goquery.Selection) []linkex.Experience {
	var exps []linkex.Experience
	section := root.Find("section.experience, section.experience-section").First()
	section.Find("li.experience-item, li.experience-list__item, li.profile-section-card").Each(func(_ int, item *goquery.Selection) {
		title, company := titleAndOrg(item)
		exp := linkex.Experience{
			Title:       title,
			Company:     company,
			Duration:    firstText(item, "span.date-range", "span.experience-item__duration"),
			Location:    firstText(item, ".experience-item__location", "p.experience-item__meta-item:last-child"),
			Description: firstText(item, ".show-more-less-text__text--less", ".experience-item__description", "p.description"),
		}
		if exp.Title != "" || exp.Company != "" {
			exps = append(exps, exp)
		}
	})
	return exps
}

func (e *ProfileExtractor) layoutEducations(root *goquery.Selection) []linkex.Education {
	var edus []linkex.Education
	section := root.Find("section.education, section.education-section").First()
	section.Find("li.education__item, li.education-list__item, li.profile-section-card").Each(func(_ int, item *goquery.Selection) {
		school, degree := titleAndOrg(item)
		edu := linkex.Education{
			School:   school,
			Degree:   degree,
			Duration: firstText(item, "span.date-range", "span.education__item--duration"),
		}
		if edu.School != "" {
			edus = append(edus, edu)
		}
	})
	return edus
}

func (e *ProfileExtractor) fromMeta(p *linkex.Profile, doc *goquery.Document) {
	if p.Name == "" {
		// Open Graph titles look like "Jane Doe - Acme | LinkedIn".
		title := firstNonEmpty(metaContent(doc, "og:title"), text(doc.Find("title").First()))
		title, _, _ = strings.Cut(title, " | ")
		name, rest, _ := strings.Cut(title, " - ")
		p.Name = strings.TrimSpace(name)
		if p.Headline == "" {
			p.Headline = strings.TrimSpace(rest)
		}
	}
	if p.About == "" {
		p.About = metaContent(doc, "og:description")
	}
}

// titleAndOrg reads the heading pair of a list item: the first h3 (or h4)
// is the primary line and the next h4 or h5 the secondary line.
func titleAndOrg(item *goquery.Selection) (string, string) {
	primary := item.Find("h3, h4").First()
	var secondary string
	item.Find("h4, h5").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.IsSelection(primary) {
			return true
		}
		secondary = text(s)
		return secondary == ""
	})
	return text(primary), secondary
}

// sectionText returns the text of the first non-empty matching section with
// its headings removed.
func sectionText(root *goquery.Selection, selectors ...string) string {
	for _, selector := range selectors {
		var found string
		root.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			clone := s.Clone()
			clone.Find("h1, h2, h3").Remove()
			found = text(clone)
			return found == ""
		})
		if found != "" {
			return found
		}
	}
	return ""
}

func dateRange(start, end string) string {
	switch {
	case start == "" && end == "":
		return ""
	case end == "":
		return start + " - Present"
	default:
		return start + " - " + end
	}
}

func capList[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func joinNonEmpty(sep string, values ...string) string {
	var parts []string
	for _, v := range values {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, sep)
}
