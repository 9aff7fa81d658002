package main

import (
	"fmt"

	"github.com/fwojciec/linkex"
	"github.com/fwojciec/linkex/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	format, err := fs.ParseFormat(c.Format)
	if err != nil {
		return report(deps, err)
	}

	filter := linkex.RecordFilter{}
	if c.Kind != "" {
		kind, err := linkex.ParseKind(c.Kind)
		if err != nil {
			return report(deps, err)
		}
		filter.Kind = &kind
	}

	records, err := deps.Records.FindRecords(deps.Ctx, filter)
	if err != nil {
		return report(deps, err)
	}
	if len(records) == 0 {
		return report(deps, linkex.Errorf(linkex.ENOTFOUND, "no records to export. Use 'linkex add <url>' first."))
	}

	exporter := deps.exporter(c.Dir, format)
	for _, rec := range records {
		if err := exporter.Save(deps.Ctx, rec); err != nil {
			_ = exporter.Abort()
			return report(deps, fmt.Errorf("exporting %s: %w", rec.ID, err))
		}
	}
	if err := exporter.Commit(); err != nil {
		_ = exporter.Abort()
		return report(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Exported %d records to %s (%s)\n", len(records), c.Dir, format)
	return nil
}
