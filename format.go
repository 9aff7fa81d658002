package linkex

import (
	"fmt"
	"strconv"
	"strings"
)

// Placeholders used when a field could not be extracted.
const (
	NotFound     = "Not found"
	NotSpecified = "Not specified"
)

// FormatRecord renders a record as plain text for display, chunking and
// language model context. The layout is deterministic so that its hash can
// be used for change detection.
func FormatRecord(rec *Record) string {
	if rec == nil {
		return ""
	}

	var b strings.Builder
	switch rec.Kind {
	case KindProfile:
		formatProfile(&b, rec.SourceURL, rec.Profile)
	case KindCompany:
		formatCompany(&b, rec.SourceURL, rec.Company)
	case KindPost:
		formatPost(&b, rec.SourceURL, rec.Post)
	case KindArticle:
		formatArticle(&b, rec.SourceURL, rec.Article)
	}
	return b.String()
}

// FormatRecords formats records for display or LLM context.
// Records are separated by blank lines.
func FormatRecords(records []*Record) string {
	if len(records) == 0 {
		return ""
	}

	parts := make([]string, 0, len(records))
	for _, rec := range records {
		parts = append(parts, strings.TrimRight(FormatRecord(rec), "\n"))
	}
	return strings.Join(parts, "\n\n")
}

const rule = "============================================================"

func formatProfile(b *strings.Builder, sourceURL string, p *Profile) {
	if p == nil {
		return
	}
	b.WriteString("LINKEDIN PROFILE ANALYSIS\n\n")
	fmt.Fprintf(b, "Profile URL: %s\n", sourceURL)
	fmt.Fprintf(b, "Name: %s\n", orNotFound(p.Name))
	fmt.Fprintf(b, "Headline: %s\n", orNotFound(p.Headline))
	if p.Location != "" {
		fmt.Fprintf(b, "Location: %s\n", p.Location)
	}
	if p.Connections != "" {
		fmt.Fprintf(b, "Connections: %s\n", p.Connections)
	}
	b.WriteString(rule + "\n\n")

	b.WriteString("ABOUT:\n")
	fmt.Fprintf(b, "%s\n\n", orNotFound(p.About))

	b.WriteString("EXPERIENCE:\n")
	for i, exp := range p.Experiences {
		fmt.Fprintf(b, "%d. %s at %s (%s)\n", i+1,
			orNotSpecified(exp.Title), orNotSpecified(exp.Company), orNotSpecified(exp.Duration))
		if exp.Description != "" {
			fmt.Fprintf(b, "   %s\n", exp.Description)
		}
	}
	b.WriteString("\n")

	b.WriteString("EDUCATION:\n")
	for i, edu := range p.Educations {
		fmt.Fprintf(b, "%d. %s at %s (%s)\n", i+1,
			orNotSpecified(edu.Degree), orNotSpecified(edu.School), orNotSpecified(edu.Duration))
	}

	if len(p.Skills) > 0 {
		b.WriteString("\nSKILLS:\n")
		fmt.Fprintf(b, "%s\n", strings.Join(p.Skills, ", "))
	}
}

func formatCompany(b *strings.Builder, sourceURL string, c *Company) {
	if c == nil {
		return
	}
	b.WriteString("LINKEDIN COMPANY ANALYSIS\n\n")
	fmt.Fprintf(b, "Company URL: %s\n", sourceURL)
	fmt.Fprintf(b, "Name: %s\n", orNotFound(c.Name))
	if c.Tagline != "" {
		fmt.Fprintf(b, "Tagline: %s\n", c.Tagline)
	}
	fmt.Fprintf(b, "Industry: %s\n", orNotFound(c.Industry))
	fmt.Fprintf(b, "Company size: %s\n", orNotFound(c.Size))
	if c.Headquarters != "" {
		fmt.Fprintf(b, "Headquarters: %s\n", c.Headquarters)
	}
	if c.Website != "" {
		fmt.Fprintf(b, "Website: %s\n", c.Website)
	}
	if c.Founded != "" {
		fmt.Fprintf(b, "Founded: %s\n", c.Founded)
	}
	if c.Followers > 0 {
		fmt.Fprintf(b, "Followers: %d\n", c.Followers)
	}
	b.WriteString(rule + "\n\n")

	b.WriteString("DESCRIPTION:\n")
	fmt.Fprintf(b, "%s\n", orNotFound(c.Description))

	if len(c.Specialties) > 0 {
		b.WriteString("\nSPECIALTIES:\n")
		fmt.Fprintf(b, "%s\n", strings.Join(c.Specialties, ", "))
	}
}

func formatPost(b *strings.Builder, sourceURL string, p *Post) {
	if p == nil {
		return
	}
	b.WriteString("LINKEDIN POST ANALYSIS\n\n")
	fmt.Fprintf(b, "Post URL: %s\n", sourceURL)
	fmt.Fprintf(b, "Author: %s\n", orNotFound(p.Author))
	if p.PublishedAt != "" {
		fmt.Fprintf(b, "Published: %s\n", p.PublishedAt)
	}
	fmt.Fprintf(b, "Engagement: %s reactions, %s comments, %s reposts\n",
		formatCount(p.Reactions), formatCount(p.Comments), formatCount(p.Reposts))
	b.WriteString(rule + "\n\n")

	b.WriteString("CONTENT:\n")
	fmt.Fprintf(b, "%s\n", orNotFound(p.Content))
}

func formatArticle(b *strings.Builder, sourceURL string, a *Article) {
	if a == nil {
		return
	}
	b.WriteString("LINKEDIN ARTICLE ANALYSIS\n\n")
	fmt.Fprintf(b, "Article URL: %s\n", sourceURL)
	fmt.Fprintf(b, "Title: %s\n", orNotFound(a.Title))
	fmt.Fprintf(b, "Author: %s\n", orNotFound(a.Author))
	if a.PublishedAt != "" {
		fmt.Fprintf(b, "Published: %s\n", a.PublishedAt)
	}
	b.WriteString(rule + "\n\n")

	b.WriteString("CONTENT:\n")
	fmt.Fprintf(b, "%s\n", orNotFound(a.Content))
}

func orNotFound(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotFound
	}
	return s
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotSpecified
	}
	return s
}

func formatCount(n int) string {
	if n < 0 {
		return "unknown"
	}
	return strconv.Itoa(n)
}

// Stats summarizes the size of a record's formatted text.
type Stats struct {
	Characters int `json:"characters"`
	Words      int `json:"words"`
	Lines      int `json:"lines"`
	Chunks     int `json:"chunks"`
}

// ComputeStats counts characters, words and lines of text.
// Chunks is left for the caller, which knows the splitter in use.
func ComputeStats(text string) Stats {
	return Stats{
		Characters: len([]rune(text)),
		Words:      len(strings.Fields(text)),
		Lines:      strings.Count(text, "\n") + 1,
	}
}
