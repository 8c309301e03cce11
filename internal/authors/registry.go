// Package authors holds the static author table consulted while composing
// pages. The registry is immutable once constructed; lookups hand out copies
// so callers never share mutable state.
package authors

import (
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/goliatone/go-blog/internal/runtimeconfig"
)

// Author is a single entry of the author table.
type Author struct {
	Handle   string
	FullName string
	ImageURL string
}

// TwitterURL builds the profile link that accompanies the author bio.
// The handle is appended without a path separator; published pages have
// always carried the link in this form, so it stays until content is
// migrated alongside a fix.
func (a Author) TwitterURL() string {
	return "https://twitter.com" + a.Handle
}

// Registry resolves author handles to their display records.
type Registry struct {
	byHandle map[string]Author
}

// NewRegistry validates the configured author table and builds an immutable
// registry from it. Handles are case sensitive and taken as configured.
func NewRegistry(configured map[string]runtimeconfig.AuthorConfig) (*Registry, error) {
	byHandle := make(map[string]Author, len(configured))

	// Deterministic validation order keeps error output stable.
	handles := make([]string, 0, len(configured))
	for handle := range configured {
		handles = append(handles, handle)
	}
	sort.Strings(handles)

	for _, handle := range handles {
		cfg := configured[handle]
		if strings.TrimSpace(handle) == "" {
			return nil, fmt.Errorf("authors: empty handle for %q", cfg.FullName)
		}
		if err := validateAuthorConfig(cfg); err != nil {
			return nil, fmt.Errorf("authors: invalid entry %s: %w", handle, err)
		}
		byHandle[handle] = Author{
			Handle:   handle,
			FullName: cfg.FullName,
			ImageURL: cfg.ImageURL,
		}
	}

	return &Registry{byHandle: byHandle}, nil
}

func validateAuthorConfig(cfg runtimeconfig.AuthorConfig) error {
	return validation.ValidateStruct(&cfg,
		validation.Field(&cfg.FullName, validation.Required),
		validation.Field(&cfg.ImageURL, validation.Required, is.URL),
	)
}

// Lookup returns the author registered under handle.
func (r *Registry) Lookup(handle string) (Author, bool) {
	if r == nil {
		return Author{}, false
	}
	author, ok := r.byHandle[handle]
	return author, ok
}

// Handles returns the registered handles in sorted order.
func (r *Registry) Handles() []string {
	if r == nil {
		return nil
	}
	handles := make([]string, 0, len(r.byHandle))
	for handle := range r.byHandle {
		handles = append(handles, handle)
	}
	sort.Strings(handles)
	return handles
}
