// Package view composes full HTML pages out of rendered markdown fragments.
// The layout is fixed: stylesheet links, a page title, the content block, and
// an optional author bio.
package view

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/goliatone/go-blog/internal/authors"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const pageLayout = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
{{- if .FontStylesheet}}
<link rel="stylesheet" href="{{.FontStylesheet}}">
{{- end}}
{{- range .Stylesheets}}
<link rel="stylesheet" href="{{.}}">
{{- end}}
</head>
<body>
<main>
<h1 class="page-title">{{.Title}}</h1>
{{.Content}}
{{- if .Author}}
<aside class="author-bio">
<img src="{{.Author.ImageURL}}" alt="{{.Author.FullName}}" class="author-image">
<span class="author-name">{{.Author.FullName}}</span>
<a href="{{.Author.ProfileURL}}" class="author-link">{{.Author.Handle}}</a>
</aside>
{{- end}}
</main>
</body>
</html>
`

type pageData struct {
	Title          string
	Content        template.HTML
	Stylesheets    []string
	FontStylesheet string
	Author         *authorData
}

type authorData struct {
	Handle     string
	FullName   string
	ImageURL   string
	ProfileURL string
}

// Composer renders the fixed page layout.
type Composer struct {
	cfg      runtimeconfig.ViewConfig
	template *template.Template
	logger   interfaces.Logger
}

// ComposerOption configures the composer instance.
type ComposerOption func(*Composer)

// WithComposerLogger overrides the default no-op logger.
func WithComposerLogger(logger interfaces.Logger) ComposerOption {
	return func(c *Composer) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewComposer parses the page layout once and returns a reusable composer.
func NewComposer(cfg runtimeconfig.ViewConfig, opts ...ComposerOption) (*Composer, error) {
	tmpl, err := template.New("page").Parse(pageLayout)
	if err != nil {
		return nil, fmt.Errorf("view: parse layout: %w", err)
	}

	c := &Composer{
		cfg:      cfg,
		template: tmpl,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ComposePage wraps content in the page layout. The content fragment is
// trusted: it comes out of the markdown renderer, whose escaping rules are
// authoritative. A nil author omits the bio block entirely.
func (c *Composer) ComposePage(title string, content template.HTML, author *authors.Author) (template.HTML, error) {
	data := pageData{
		Title:          title,
		Content:        content,
		Stylesheets:    c.cfg.Stylesheets,
		FontStylesheet: c.cfg.FontStylesheet,
	}
	if author != nil {
		data.Author = &authorData{
			Handle:     author.Handle,
			FullName:   author.FullName,
			ImageURL:   author.ImageURL,
			ProfileURL: author.TwitterURL(),
		}
	}

	var buf bytes.Buffer
	if err := c.template.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("view: compose %q: %w", title, err)
	}

	c.logger.Debug("page composed", "title", title, "has_author", author != nil)
	return template.HTML(buf.String()), nil
}
