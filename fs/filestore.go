// Package fs exports records to files.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fwojciec/linkex"
)

// Ensure FileStore implements linkex.RecordExporter at compile time.
var _ linkex.RecordExporter = (*FileStore)(nil)

// Format selects the export layout.
type Format string

// Supported export formats.
const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat converts a user-supplied string into a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatCSV:
		return Format(s), nil
	}
	return "", linkex.Errorf(linkex.EINVALID, "unknown export format %q (want json or csv)", s)
}

// FileStore implements linkex.RecordExporter with atomic update semantics.
// Files are written to baseDir/name.tmp and moved to baseDir/name on Commit.
//
// In JSON format every record becomes <kind>/<slug>.json plus a Markdown
// rendering <kind>/<slug>.md. In CSV format records are buffered and one
// table per kind, named by TableName, is written on Commit.
type FileStore struct {
	baseDir string
	name    string
	format  Format
	pending []*linkex.Record
}

// NewFileStore creates a new FileStore.
func NewFileStore(baseDir, name string, format Format) *FileStore {
	if format == "" {
		format = FormatJSON
	}
	return &FileStore{
		baseDir: baseDir,
		name:    name,
		format:  format,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes or buffers one record.
func (s *FileStore) Save(ctx context.Context, rec *linkex.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.format == FormatCSV {
		s.pending = append(s.pending, rec)
		return nil
	}

	base := filepath.Join(s.tempDir(), RecordPath(rec))
	if err := os.MkdirAll(filepath.Dir(base), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	if err := os.WriteFile(base+".json", append(data, '\n'), 0644); err != nil {
		return err
	}
	return os.WriteFile(base+".md", []byte(FormatMarkdown(rec)), 0644)
}

// Commit writes buffered tables and replaces the output directory.
func (s *FileStore) Commit() error {
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}

	if s.format == FormatCSV {
		for _, kind := range linkex.Kinds() {
			if err := s.writeTable(kind); err != nil {
				return err
			}
		}
		s.pending = nil
	}

	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

func (s *FileStore) writeTable(kind linkex.Kind) error {
	var records []*linkex.Record
	for _, rec := range s.pending {
		if rec.Kind == kind {
			records = append(records, rec)
		}
	}
	if len(records) == 0 {
		return nil
	}

	f, err := os.Create(filepath.Join(s.tempDir(), TableName(kind)))
	if err != nil {
		return err
	}
	if err := WriteCSV(f, kind, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Abort discards everything saved since the last Commit.
func (s *FileStore) Abort() error {
	s.pending = nil
	return os.RemoveAll(s.tempDir())
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// RecordPath returns the extension-less relative path of a record's files,
// e.g. profile/jane-doe.
func RecordPath(rec *linkex.Record) string {
	slug := unsafeChars.ReplaceAllString(linkex.SlugFromURL(rec.SourceURL), "_")
	slug = strings.Trim(slug, "._")
	if slug == "" {
		slug = rec.ID
	}
	if slug == "" {
		slug = "record"
	}
	return filepath.Join(string(rec.Kind), slug)
}

// FormatMarkdown renders a record as Markdown with YAML frontmatter.
func FormatMarkdown(rec *linkex.Record) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(rec.SourceURL)
	b.WriteString("\nkind: ")
	b.WriteString(string(rec.Kind))
	b.WriteString("\ntitle: ")
	b.WriteString(rec.DisplayTitle())
	if !rec.FetchedAt.IsZero() {
		b.WriteString("\nfetched: ")
		b.WriteString(rec.FetchedAt.Format("2006-01-02"))
	}
	b.WriteString("\n---\n\n")
	b.WriteString(linkex.FormatRecord(rec))
	return b.String()
}
