package linkex_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/linkex"
	"github.com/stretchr/testify/assert"
)

func TestFormatRecord_Profile(t *testing.T) {
	t.Parallel()

	rec := &linkex.Record{
		Kind:      linkex.KindProfile,
		SourceURL: "https://www.linkedin.com/in/jane-doe/",
		Profile: &linkex.Profile{
			Name:     "Jane Doe",
			Headline: "Staff Engineer at Acme",
			Experiences: []linkex.Experience{
				{Title: "Staff Engineer", Company: "Acme", Duration: "2020 - Present"},
				{Title: "Engineer", Company: "Initech"},
			},
			Educations: []linkex.Education{
				{School: "MIT", Degree: "BSc Computer Science", Duration: "2010 - 2014"},
			},
			Skills: []string{"Go", "Distributed Systems"},
		},
	}

	want := "LINKEDIN PROFILE ANALYSIS\n\n" +
		"Profile URL: https://www.linkedin.com/in/jane-doe/\n" +
		"Name: Jane Doe\n" +
		"Headline: Staff Engineer at Acme\n" +
		strings.Repeat("=", 60) + "\n\n" +
		"ABOUT:\n" +
		"Not found\n\n" +
		"EXPERIENCE:\n" +
		"1. Staff Engineer at Acme (2020 - Present)\n" +
		"2. Engineer at Initech (Not specified)\n" +
		"\n" +
		"EDUCATION:\n" +
		"1. BSc Computer Science at MIT (2010 - 2014)\n" +
		"\nSKILLS:\n" +
		"Go, Distributed Systems\n"

	assert.Equal(t, want, linkex.FormatRecord(rec))
}

func TestFormatRecord_Company(t *testing.T) {
	t.Parallel()

	rec := &linkex.Record{
		Kind:      linkex.KindCompany,
		SourceURL: "https://www.linkedin.com/company/acme/",
		Company: &linkex.Company{
			Name:        "Acme",
			Industry:    "Manufacturing",
			Size:        "51-200 employees",
			Description: "We make anvils.",
			Followers:   1200,
			Specialties: []string{"Anvils", "Rockets"},
		},
	}

	out := linkex.FormatRecord(rec)

	assert.Contains(t, out, "LINKEDIN COMPANY ANALYSIS")
	assert.Contains(t, out, "Industry: Manufacturing\n")
	assert.Contains(t, out, "Company size: 51-200 employees\n")
	assert.Contains(t, out, "Followers: 1200\n")
	assert.Contains(t, out, "DESCRIPTION:\nWe make anvils.\n")
	assert.Contains(t, out, "SPECIALTIES:\nAnvils, Rockets\n")
	assert.NotContains(t, out, "Headquarters")
}

func TestFormatRecord_PostWithUnknownCounts(t *testing.T) {
	t.Parallel()

	rec := &linkex.Record{
		Kind:      linkex.KindPost,
		SourceURL: "https://www.linkedin.com/posts/jane_hello-123",
		Post: &linkex.Post{
			Author:    "Jane Doe",
			Content:   "Hello world",
			Reactions: 42,
			Comments:  linkex.UnknownCount,
			Reposts:   0,
		},
	}

	out := linkex.FormatRecord(rec)

	assert.Contains(t, out, "Engagement: 42 reactions, unknown comments, 0 reposts\n")
	assert.Contains(t, out, "CONTENT:\nHello world\n")
}

func TestFormatRecord_Nil(t *testing.T) {
	t.Parallel()

	assert.Empty(t, linkex.FormatRecord(nil))
	assert.Empty(t, linkex.FormatRecord(&linkex.Record{Kind: linkex.KindProfile}))
}

func TestFormatRecords(t *testing.T) {
	t.Parallel()

	t.Run("returns empty string for no records", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, linkex.FormatRecords(nil))
	})

	t.Run("separates records with a blank line", func(t *testing.T) {
		t.Parallel()

		records := []*linkex.Record{
			{Kind: linkex.KindArticle, SourceURL: "https://www.linkedin.com/pulse/a", Article: &linkex.Article{Title: "A"}},
			{Kind: linkex.KindArticle, SourceURL: "https://www.linkedin.com/pulse/b", Article: &linkex.Article{Title: "B"}},
		}

		out := linkex.FormatRecords(records)

		assert.Contains(t, out, "Not found\n\nLINKEDIN ARTICLE ANALYSIS")
		assert.Equal(t, 2, strings.Count(out, "LINKEDIN ARTICLE ANALYSIS"))
	})
}

func TestComputeStats(t *testing.T) {
	t.Parallel()

	stats := linkex.ComputeStats("héllo world\nsecond line")

	assert.Equal(t, 23, stats.Characters)
	assert.Equal(t, 4, stats.Words)
	assert.Equal(t, 2, stats.Lines)
	assert.Zero(t, stats.Chunks)
}
