package main_test

import (
	"bytes"
	"context"
	"time"

	"github.com/fwojciec/linkex"
	main "github.com/fwojciec/linkex/cmd/linkex"
)

func testDeps() (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
	}, stdout, stderr
}

func janeDoe() *linkex.Record {
	return &linkex.Record{
		ID:        "rec-1",
		Kind:      linkex.KindProfile,
		SourceURL: "https://www.linkedin.com/in/jane-doe/",
		Title:     "Jane Doe",
		FetchedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Profile: &linkex.Profile{
			Name:     "Jane Doe",
			Headline: "Staff Engineer at Acme",
			About:    "Builds data platforms.",
		},
	}
}

func acme() *linkex.Record {
	return &linkex.Record{
		ID:        "rec-2",
		Kind:      linkex.KindCompany,
		SourceURL: "https://www.linkedin.com/company/acme/",
		Title:     "Acme",
		Company:   &linkex.Company{Name: "Acme", Industry: "Software"},
	}
}
