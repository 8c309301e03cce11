package markdown

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// ParseFrontMatter extracts metadata and Markdown body content from the
// provided source bytes. It returns the structured frontmatter, the Markdown
// body without delimiters, and any error encountered. Sources without a
// frontmatter block yield zero-value metadata and the full body.
func ParseFrontMatter(source []byte) (interfaces.PostMeta, []byte, error) {
	var meta interfaces.PostMeta

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return interfaces.PostMeta{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	if meta.Custom == nil {
		meta.Custom = map[string]any{}
	}

	return meta, body, nil
}

// BuildPost assembles an interfaces.Post from the supplied file path, raw
// content, and modification time. BodyHTML is intentionally left empty so
// callers can render lazily. Posts without an explicit slug derive one from
// the title.
func BuildPost(path string, source []byte, modified time.Time) (*interfaces.Post, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(meta.Slug) == "" && strings.TrimSpace(meta.Title) != "" {
		normalized, err := slug.Normalize(meta.Title)
		if err != nil {
			return nil, fmt.Errorf("derive slug for %s: %w", path, err)
		}
		meta.Slug = normalized
	}

	return &interfaces.Post{
		FilePath:     path,
		Meta:         meta,
		Body:         body,
		LastModified: modified,
	}, nil
}
