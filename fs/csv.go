package fs

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/fwojciec/linkex"
)

// listSeparator joins list fields inside a single CSV cell.
const listSeparator = "; "

// TableName returns the CSV file name for records of kind.
func TableName(kind linkex.Kind) string {
	switch kind {
	case linkex.KindCompany:
		return "companies.csv"
	case linkex.KindUnknown:
		return "records.csv"
	}
	return string(kind) + "s.csv"
}

// CSVHeader returns the column names of the table for kind.
func CSVHeader(kind linkex.Kind) []string {
	common := []string{"id", "source_url", "fetched_at"}
	switch kind {
	case linkex.KindProfile:
		return append(common, "name", "headline", "location", "about", "connections", "experiences", "educations", "skills")
	case linkex.KindCompany:
		return append(common, "name", "tagline", "industry", "size", "headquarters", "website", "founded", "followers", "specialties", "description")
	case linkex.KindPost:
		return append(common, "author", "author_url", "published_at", "reactions", "comments", "reposts", "content")
	case linkex.KindArticle:
		return append(common, "title", "author", "published_at", "content")
	}
	return common
}

// WriteCSV writes records of one kind as a table with a header row.
// Records of other kinds are rejected with EINVALID.
func WriteCSV(w io.Writer, kind linkex.Kind, records []*linkex.Record) error {
	if !kind.Valid() {
		return linkex.Errorf(linkex.EINVALID, "record kind %q invalid", kind)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader(kind)); err != nil {
		return err
	}
	for _, rec := range records {
		if rec.Kind != kind {
			return linkex.Errorf(linkex.EINVALID, "record %s is a %s, not a %s", rec.ID, rec.Kind, kind)
		}
		if err := cw.Write(csvRow(rec)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRow(rec *linkex.Record) []string {
	fetched := ""
	if !rec.FetchedAt.IsZero() {
		fetched = rec.FetchedAt.UTC().Format("2006-01-02T15:04:05Z")
	}
	row := []string{rec.ID, rec.SourceURL, fetched}

	switch {
	case rec.Profile != nil:
		p := rec.Profile
		exps := make([]string, len(p.Experiences))
		for i, e := range p.Experiences {
			exps[i] = e.Title + " at " + e.Company + " (" + e.Duration + ")"
		}
		edus := make([]string, len(p.Educations))
		for i, e := range p.Educations {
			edus[i] = e.Degree + " at " + e.School + " (" + e.Duration + ")"
		}
		row = append(row, p.Name, p.Headline, p.Location, p.About, p.Connections,
			strings.Join(exps, listSeparator), strings.Join(edus, listSeparator), strings.Join(p.Skills, listSeparator))
	case rec.Company != nil:
		c := rec.Company
		row = append(row, c.Name, c.Tagline, c.Industry, c.Size, c.Headquarters, c.Website, c.Founded,
			strconv.Itoa(c.Followers), strings.Join(c.Specialties, listSeparator), c.Description)
	case rec.Post != nil:
		p := rec.Post
		row = append(row, p.Author, p.AuthorURL, p.PublishedAt,
			countCell(p.Reactions), countCell(p.Comments), countCell(p.Reposts), p.Content)
	case rec.Article != nil:
		a := rec.Article
		row = append(row, a.Title, a.Author, a.PublishedAt, a.Content)
	}
	return row
}

// countCell leaves unknown counts empty.
func countCell(n int) string {
	if n < 0 {
		return ""
	}
	return strconv.Itoa(n)
}
