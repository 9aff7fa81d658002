package main

import (
	"fmt"

	"github.com/fwojciec/linkex"
	"github.com/fwojciec/linkex/scrape"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	if deps.Scraper == nil {
		return report(deps, linkex.Errorf(linkex.EINTERNAL, "scraper not configured"))
	}

	var kind linkex.Kind
	if c.Kind != "" {
		k, err := linkex.ParseKind(c.Kind)
		if err != nil {
			return report(deps, err)
		}
		kind = k
	}
	opts := scrape.Options{Kind: kind, Preview: c.Preview, NoIndex: c.NoIndex}

	if c.File != "" {
		return c.runFile(deps, opts)
	}

	if c.Concurrency > 0 {
		deps.Scraper.Concurrency = c.Concurrency
	}

	progress := func(event scrape.ProgressEvent) {
		switch event.Type {
		case scrape.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Scraping %d URLs\n", event.Total)
		case scrape.ProgressSkipped:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", scrape.TruncateURL(event.URL, 60), message(event.Error))
		case scrape.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  fail %s: %s\n", scrape.TruncateURL(event.URL, 60), message(event.Error))
		case scrape.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %-9s %s\n", event.Completed, event.Total, event.Status, scrape.TruncateURL(event.URL, 60))
		}
	}

	result, err := deps.Scraper.Scrape(deps.Ctx, c.URLs, opts, progress)
	if err != nil {
		return report(deps, err)
	}

	for _, item := range result.Items {
		printItem(deps, item)
	}
	fmt.Fprintf(deps.Stdout, "%s\n", result.Summary())

	if result.Failed > 0 && result.Saved+result.Unchanged == 0 {
		for _, item := range result.Items {
			if item.Status == scrape.StatusFailed {
				return &reportedError{err: item.Err}
			}
		}
	}
	return nil
}

// runFile extracts a record from a saved page.
func (c *AddCmd) runFile(deps *Dependencies, opts scrape.Options) error {
	if len(c.URLs) != 1 {
		return report(deps, linkex.Errorf(linkex.EINVALID, "--file requires exactly one URL, the page's source"))
	}
	data, err := deps.readFile(c.File)
	if err != nil {
		return report(deps, fmt.Errorf("reading %s: %w", c.File, err))
	}

	item, err := deps.Scraper.ScrapeHTML(deps.Ctx, string(data), c.URLs[0], opts)
	if err != nil {
		return report(deps, err)
	}
	printItem(deps, item)
	return nil
}

// printItem prints a stored record's summary line, or the full record text
// in preview mode.
func printItem(deps *Dependencies, item *scrape.Item) {
	if item.Record == nil {
		return
	}
	if item.Status == scrape.StatusPreviewed {
		fmt.Fprintln(deps.Stdout, linkex.FormatRecord(item.Record))
		return
	}
	line := fmt.Sprintf("%s  %-7s  %s (%s)", item.Record.ID, item.Record.Kind, item.Record.DisplayTitle(), item.Status)
	if item.Chunks > 0 {
		line += fmt.Sprintf(", %d chunks", item.Chunks)
	}
	fmt.Fprintln(deps.Stdout, line)
}
