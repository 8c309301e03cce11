package interfaces

import (
	"context"
	"time"
)

// MarkdownParser defines how raw Markdown bytes are converted into HTML.
// Implementations should be reusable across render calls; all behaviour
// toggles travel through ParseOptions so hosts can tailor rendering without
// rewriting the service layer.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown parsing behaviour. Values are immutable
// once handed to a render call; derived configurations are produced by
// building a new value from a base plus overrides.
type ParseOptions struct {
	// Tables enables pipe-table parsing.
	Tables bool
	// Breaks converts single newlines into <br> elements.
	Breaks bool
	// DefaultLanguage is applied to fenced code blocks that carry no info
	// string, so downstream highlighters treat them as that language.
	DefaultLanguage string
	// HighlightStyle selects a chroma style for server-side syntax
	// highlighting. Empty leaves code blocks as plain class-annotated markup.
	HighlightStyle string
	// Sanitize escapes raw HTML found in the Markdown source. When false the
	// caller vouches for the input and raw HTML passes through untouched.
	Sanitize bool
	// SmartyPants applies typographic substitutions (curly quotes, dashes).
	SmartyPants bool
}

// MarkdownService exposes the rendering workflows used by the blog runtime:
// string rendering, file rendering, and post discovery.
type MarkdownService interface {
	Render(ctx context.Context, markdown []byte, opts ParseOptions) ([]byte, error)
	RenderFile(ctx context.Context, path string, opts ParseOptions) ([]byte, error)
	Load(ctx context.Context, path string) (*Post, error)
	LoadDirectory(ctx context.Context, dir string) ([]*Post, error)
	RenderPost(ctx context.Context, post *Post, opts ParseOptions) ([]byte, error)
}

// Post represents a Markdown source file with parsed metadata and content.
// The struct is shared between the interfaces package and internal
// implementations so consumers can depend on a stable contract.
type Post struct {
	FilePath     string
	Meta         PostMeta
	Body         []byte
	BodyHTML     []byte
	LastModified time.Time
	// Checksum stores a SHA-256 digest of the original file content so build
	// workflows can skip artifacts that have not changed.
	Checksum []byte
}

// PostMeta models the YAML frontmatter of a post. Author holds a registry
// handle resolved against the configured author table at composition time.
type PostMeta struct {
	Title   string         `yaml:"title" json:"title"`
	Slug    string         `yaml:"slug" json:"slug"`
	Summary string         `yaml:"summary" json:"summary"`
	Author  string         `yaml:"author" json:"author"`
	Tags    []string       `yaml:"tags" json:"tags"`
	Date    time.Time      `yaml:"date" json:"date"`
	Draft   bool           `yaml:"draft" json:"draft"`
	Custom  map[string]any `yaml:",inline" json:"custom"`
}
