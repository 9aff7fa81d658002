package linkex

import (
	"context"
	"time"
)

// Kind identifies the type of public page a record was extracted from.
type Kind string

// Supported record kinds.
const (
	KindUnknown Kind = ""
	KindProfile Kind = "profile"
	KindCompany Kind = "company"
	KindPost    Kind = "post"
	KindArticle Kind = "article"
)

// Kinds returns all supported kinds in priority order.
func Kinds() []Kind {
	return []Kind{KindProfile, KindCompany, KindArticle, KindPost}
}

// Valid returns true if k is a supported kind.
func (k Kind) Valid() bool {
	switch k {
	case KindProfile, KindCompany, KindPost, KindArticle:
		return true
	}
	return false
}

// ParseKind converts a user-supplied string into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return KindUnknown, Errorf(EINVALID, "unknown kind %q (want profile, company, post or article)", s)
	}
	return k, nil
}

// Experience is a single position listed on a profile.
type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
}

// Education is a single school entry listed on a profile.
type Education struct {
	School   string `json:"school"`
	Degree   string `json:"degree"`
	Duration string `json:"duration"`
}

// Profile holds the public fields of a person's profile page.
type Profile struct {
	Name        string       `json:"name"`
	Headline    string       `json:"headline"`
	Location    string       `json:"location,omitempty"`
	About       string       `json:"about"`
	Connections string       `json:"connections,omitempty"`
	Experiences []Experience `json:"experiences"`
	Educations  []Education  `json:"educations"`
	Skills      []string     `json:"skills,omitempty"`
}

// Company holds the public fields of a company or school page.
type Company struct {
	Name         string   `json:"name"`
	Tagline      string   `json:"tagline,omitempty"`
	Description  string   `json:"description"`
	Industry     string   `json:"industry"`
	Size         string   `json:"size"`
	Headquarters string   `json:"headquarters,omitempty"`
	Website      string   `json:"website,omitempty"`
	Founded      string   `json:"founded,omitempty"`
	Specialties  []string `json:"specialties,omitempty"`
	Followers    int      `json:"followers"`
}

// UnknownCount marks an engagement metric that could not be read from the page.
const UnknownCount = -1

// Post holds the public fields of a feed post, including engagement metrics.
// Counts are UnknownCount when the page does not expose them.
type Post struct {
	Author      string `json:"author"`
	AuthorURL   string `json:"authorUrl,omitempty"`
	Content     string `json:"content"`
	PublishedAt string `json:"publishedAt,omitempty"`
	Reactions   int    `json:"reactions"`
	Comments    int    `json:"comments"`
	Reposts     int    `json:"reposts"`
}

// Article holds a long-form article. Content is Markdown.
type Article struct {
	Author      string `json:"author"`
	Title       string `json:"title"`
	PublishedAt string `json:"publishedAt,omitempty"`
	Content     string `json:"content"`
}

// Record represents a single extracted public page.
// Exactly one payload, the one matching Kind, is set.
type Record struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	SourceURL   string    `json:"sourceUrl"`
	Title       string    `json:"title"`
	Profile     *Profile  `json:"profile,omitempty"`
	Company     *Company  `json:"company,omitempty"`
	Post        *Post     `json:"post,omitempty"`
	Article     *Article  `json:"article,omitempty"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.SourceURL == "" {
		return Errorf(EINVALID, "record source URL required")
	}
	if !r.Kind.Valid() {
		return Errorf(EINVALID, "record kind %q invalid", r.Kind)
	}

	payloads := map[Kind]bool{
		KindProfile: r.Profile != nil,
		KindCompany: r.Company != nil,
		KindPost:    r.Post != nil,
		KindArticle: r.Article != nil,
	}
	for kind, set := range payloads {
		if kind == r.Kind && !set {
			return Errorf(EINVALID, "record of kind %s requires a %s payload", r.Kind, r.Kind)
		}
		if kind != r.Kind && set {
			return Errorf(EINVALID, "record of kind %s must not carry a %s payload", r.Kind, kind)
		}
	}
	return nil
}

// DisplayTitle returns the record title, falling back to the source URL.
func (r *Record) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return r.SourceURL
}

// RecordService represents a service for managing records.
type RecordService interface {
	// CreateRecord creates a new record.
	// Returns ECONFLICT if a record with the same source URL exists.
	CreateRecord(ctx context.Context, rec *Record) error

	// FindRecordByID retrieves a record by ID.
	// Returns ENOTFOUND if record does not exist.
	FindRecordByID(ctx context.Context, id string) (*Record, error)

	// FindRecordByURL retrieves a record by its normalized source URL.
	// Returns ENOTFOUND if record does not exist.
	FindRecordByURL(ctx context.Context, sourceURL string) (*Record, error)

	// FindRecords retrieves records matching the filter.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*Record, error)

	// UpdateRecord updates an existing record.
	// Returns ENOTFOUND if record does not exist.
	UpdateRecord(ctx context.Context, id string, upd RecordUpdate) (*Record, error)

	// UpsertRecord creates the record or replaces the payload of the record
	// with the same source URL. The returned bool reports whether the stored
	// content changed (always true for new records).
	UpsertRecord(ctx context.Context, rec *Record) (bool, error)

	// DeleteRecord permanently removes a record with its chunks and turns.
	// Returns ENOTFOUND if record does not exist.
	DeleteRecord(ctx context.Context, id string) error
}

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	ID        *string `json:"id"`
	Kind      *Kind   `json:"kind"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RecordUpdate represents fields that can be updated on a record.
type RecordUpdate struct {
	Title *string `json:"title"`
}
