// Package blog assembles Markdown rendering, page composition, and static
// site generation behind a single runtime façade.
package blog

import (
	"context"
	"database/sql"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-blog/internal/authors"
	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/logging/console"
	"github.com/goliatone/go-blog/internal/logging/gologger"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/view"
	"github.com/goliatone/go-blog/pkg/interfaces"

	_ "github.com/mattn/go-sqlite3"
)

// MarkdownService exports the markdown rendering contract.
type MarkdownService = interfaces.MarkdownService

// ParseOptions exports the per-call markdown rendering options.
type ParseOptions = interfaces.ParseOptions

// Post exports the parsed post model.
type Post = interfaces.Post

// Author exports the author record resolved from the static registry.
type Author = authors.Author

// GeneratorService exports the static build contract.
type GeneratorService = generator.Service

// BuildResult exports the static build summary.
type BuildResult = generator.BuildResult

// Option customises module construction.
type Option func(*moduleOptions)

type moduleOptions struct {
	parser   interfaces.MarkdownParser
	provider interfaces.LoggerProvider
	storage  interfaces.ArtifactStorage
	db       *bun.DB
}

// WithMarkdownParser overrides the default goldmark parser.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(o *moduleOptions) {
		o.parser = parser
	}
}

// WithLoggerProvider bypasses the configured logging provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(o *moduleOptions) {
		o.provider = provider
	}
}

// WithArtifactStorage overrides the filesystem storage used for builds.
func WithArtifactStorage(storage interfaces.ArtifactStorage) Option {
	return func(o *moduleOptions) {
		o.storage = storage
	}
}

// WithManifestDB supplies the database backing the build manifest, replacing
// the SQLite database opened from Generator.ManifestDSN.
func WithManifestDB(db *bun.DB) Option {
	return func(o *moduleOptions) {
		o.db = db
	}
}

// Module is the top level blog runtime.
type Module struct {
	cfg       Config
	provider  interfaces.LoggerProvider
	logger    interfaces.Logger
	markdown  interfaces.MarkdownService
	composer  *view.Composer
	authors   *authors.Registry
	generator *generator.Service
	manifest  *generator.ManifestStore

	schemaOnce sync.Once
	schemaErr  error
}

// New validates cfg and wires the module services.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &moduleOptions{}
	for _, opt := range opts {
		opt(options)
	}

	provider := options.provider
	if provider == nil && cfg.Features.Logger {
		built, err := newLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		provider = built
	}

	markdownService, err := markdown.NewService(markdown.Config{
		BasePath:  cfg.Markdown.ContentDir,
		Pattern:   cfg.Markdown.Pattern,
		Recursive: cfg.Markdown.Recursive,
		Parser:    markdown.OptionsFromConfig(cfg.Markdown.Parser),
	}, options.parser, provider)
	if err != nil {
		return nil, err
	}

	registry, err := authors.NewRegistry(cfg.Authors)
	if err != nil {
		return nil, err
	}

	composer, err := view.NewComposer(cfg.View,
		view.WithComposerLogger(logging.ViewLogger(provider)))
	if err != nil {
		return nil, err
	}

	m := &Module{
		cfg:      cfg,
		provider: provider,
		logger:   logging.ModuleLogger(provider, ""),
		markdown: markdownService,
		composer: composer,
		authors:  registry,
	}

	if cfg.Features.Generator && cfg.Generator.Enabled {
		if err := m.wireGenerator(cfg, options); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Module) wireGenerator(cfg Config, options *moduleOptions) error {
	storage := options.storage
	if storage == nil {
		storage = generator.NewFilesystemStorage(cfg.Generator.OutputDir)
	}

	genOpts := []generator.Option{
		generator.WithAuthors(m.authors),
		generator.WithLoggerProvider(m.provider),
	}

	if cfg.Generator.Incremental {
		db := options.db
		if db == nil {
			dsn := strings.TrimSpace(cfg.Generator.ManifestDSN)
			if dsn == "" {
				dsn = "file:blog-manifest?mode=memory&cache=shared"
			}
			sqldb, err := sql.Open("sqlite3", dsn)
			if err != nil {
				return fmt.Errorf("blog: open manifest db: %w", err)
			}
			db = bun.NewDB(sqldb, sqlitedialect.New())
		}
		m.manifest = generator.NewManifestStore(db)
		genOpts = append(genOpts, generator.WithManifest(m.manifest))
	}

	service, err := generator.NewService(generator.Config{
		OutputDir:   cfg.Generator.OutputDir,
		CleanBuild:  cfg.Generator.CleanBuild,
		Incremental: cfg.Generator.Incremental,
		Parser:      markdown.OptionsFromConfig(cfg.Markdown.Parser),
	}, m.markdown, m.composer, storage, genOpts...)
	if err != nil {
		return err
	}
	m.generator = service
	return nil
}

// Markdown returns the configured markdown service.
func (m *Module) Markdown() MarkdownService {
	return m.markdown
}

// Composer returns the page composer.
func (m *Module) Composer() *view.Composer {
	return m.composer
}

// Authors returns the static author registry.
func (m *Module) Authors() *authors.Registry {
	return m.authors
}

// Generator returns the static build service, or nil when the generator
// feature is disabled.
func (m *Module) Generator() *GeneratorService {
	return m.generator
}

// Render converts Markdown bytes into HTML using the configured defaults.
func (m *Module) Render(ctx context.Context, source []byte) ([]byte, error) {
	return m.markdown.Render(ctx, source, interfaces.ParseOptions{})
}

// RenderFile renders the Markdown file at path, wrapped in the content
// container. Missing files surface as not-found errors.
func (m *Module) RenderFile(ctx context.Context, path string) ([]byte, error) {
	return m.markdown.RenderFile(ctx, path, interfaces.ParseOptions{})
}

// ComposePost loads the post at path and produces a full HTML page, resolving
// the frontmatter author handle against the registry.
func (m *Module) ComposePost(ctx context.Context, path string) (template.HTML, error) {
	post, err := m.markdown.Load(ctx, path)
	if err != nil {
		return "", err
	}

	fragment, err := m.markdown.RenderPost(ctx, post, interfaces.ParseOptions{})
	if err != nil {
		return "", err
	}

	var author *authors.Author
	if handle := strings.TrimSpace(post.Meta.Author); handle != "" {
		if found, ok := m.authors.Lookup(handle); ok {
			author = &found
		} else {
			m.logger.Warn("unknown author handle", "author", handle, "post_path", path)
		}
	}

	title := post.Meta.Title
	if strings.TrimSpace(title) == "" {
		title = m.cfg.Site.Title
	}

	content := `<div class="content">` + string(fragment) + "</div>"
	return m.composer.ComposePage(title, template.HTML(content), author)
}

// Build runs a static build. The manifest schema is created on first use.
func (m *Module) Build(ctx context.Context) (*BuildResult, error) {
	if m.generator == nil {
		return nil, fmt.Errorf("blog: generator feature is disabled")
	}
	if m.manifest != nil {
		m.schemaOnce.Do(func() {
			m.schemaErr = m.manifest.EnsureSchema(ctx)
		})
		if m.schemaErr != nil {
			return nil, m.schemaErr
		}
	}
	return m.generator.Build(ctx)
}

// IsNotFound reports whether err marks a missing post file.
func IsNotFound(err error) bool {
	return markdown.IsNotFound(err)
}

func newLoggerProvider(cfg LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "console":
		level := consoleLevel(cfg.Level)
		return console.NewProvider(console.Options{MinLevel: &level}), nil
	case "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
	default:
		return nil, fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, cfg.Provider)
	}
}

func consoleLevel(level string) console.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return console.LevelTrace
	case "debug":
		return console.LevelDebug
	case "warn", "warning":
		return console.LevelWarn
	case "error":
		return console.LevelError
	case "fatal":
		return console.LevelFatal
	default:
		return console.LevelInfo
	}
}
