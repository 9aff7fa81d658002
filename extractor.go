package linkex

// Extractor turns the HTML of a public page into a structured record.
type Extractor interface {
	// Extract parses html served at sourceURL.
	// The returned record has Kind, SourceURL, Title and payload set.
	// Returns EINVALID for empty input and EUNAUTHORIZED for login walls.
	Extract(html string, sourceURL string) (*Record, error)
}

// KindDetector identifies the kind of page from its HTML.
type KindDetector interface {
	// Detect returns KindUnknown if the kind cannot be determined.
	Detect(html string) Kind
}

// ExtractorRegistry manages kind-specific extractors.
type ExtractorRegistry interface {
	// ForKind returns the extractor registered for kind.
	// Returns EINVALID if none is registered.
	ForKind(kind Kind) (Extractor, error)

	// ForHTML detects the kind from HTML and returns its extractor.
	ForHTML(html string) (Extractor, Kind, error)

	// Register adds an extractor for a kind.
	Register(kind Kind, extractor Extractor)

	// List returns all registered kinds.
	List() []Kind
}

// ContentResult holds the main content of an HTML page.
type ContentResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// Author is the byline, when the page exposes one.
	Author string

	// Date is the publication date as found on the page.
	Date string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string

	// Text is the main content as plain text.
	Text string
}

// ContentExtractor extracts main content from HTML pages, removing boilerplate.
type ContentExtractor interface {
	Extract(html string) (*ContentResult, error)
}
