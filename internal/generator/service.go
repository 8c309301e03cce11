// Package generator turns a directory of Markdown posts into a static site.
// Each post becomes <slug>/index.html in the output directory; a manifest
// database records checksums so incremental builds skip unchanged sources.
package generator

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"
	"path"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/authors"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/view"
	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/goliatone/go-slug"
)

// Config controls build behaviour.
type Config struct {
	// OutputDir is recorded on build results; writes go through the storage
	// provider, which is already rooted there.
	OutputDir string
	// CleanBuild removes previous outputs before rendering.
	CleanBuild bool
	// Incremental skips posts whose checksum matches the manifest record.
	// Ignored when CleanBuild is set.
	Incremental bool
	// Parser options applied when rendering each post.
	Parser interfaces.ParseOptions
}

// Service orchestrates the build pipeline: load, render, compose, persist.
type Service struct {
	cfg      Config
	markdown interfaces.MarkdownService
	composer *view.Composer
	authors  *authors.Registry
	storage  interfaces.ArtifactStorage
	manifest *ManifestStore
	logger   interfaces.Logger
}

// Option configures the build service.
type Option func(*Service)

// WithManifest enables incremental tracking through store.
func WithManifest(store *ManifestStore) Option {
	return func(s *Service) {
		s.manifest = store
	}
}

// WithAuthors supplies the author registry used for bio blocks.
func WithAuthors(registry *authors.Registry) Option {
	return func(s *Service) {
		s.authors = registry
	}
}

// WithLoggerProvider overrides the default no-op logger.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(s *Service) {
		s.logger = logging.GeneratorLogger(provider)
	}
}

// NewService wires the build pipeline. markdown and composer are required;
// a nil storage discards outputs, which is useful for dry runs.
func NewService(cfg Config, markdown interfaces.MarkdownService, composer *view.Composer, storage interfaces.ArtifactStorage, opts ...Option) (*Service, error) {
	if markdown == nil {
		return nil, errors.New("generator: markdown service is required")
	}
	if composer == nil {
		return nil, errors.New("generator: view composer is required")
	}
	if storage == nil {
		storage = noopStorage{}
	}

	s := &Service{
		cfg:      cfg,
		markdown: markdown,
		composer: composer,
		storage:  storage,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// BuildResult summarises one build run.
type BuildResult struct {
	Pages    int
	Skipped  int
	Drafts   int
	Duration time.Duration
}

// Build renders every non-draft post into the output storage. Draft posts are
// counted and skipped. With a manifest attached and Incremental enabled,
// posts whose checksum matches the last recorded build are not re-rendered.
func (s *Service) Build(ctx context.Context) (*BuildResult, error) {
	start := time.Now()

	if s.cfg.CleanBuild {
		if err := s.storage.Remove(ctx, "."); err != nil {
			return nil, fmt.Errorf("generator: clean output: %w", err)
		}
	}
	if err := s.storage.EnsureDir(ctx, "."); err != nil {
		return nil, fmt.Errorf("generator: prepare output: %w", err)
	}

	posts, err := s.markdown.LoadDirectory(ctx, ".")
	if err != nil {
		return nil, fmt.Errorf("generator: load posts: %w", err)
	}

	result := &BuildResult{}
	for _, post := range posts {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if post.Meta.Draft {
			result.Drafts++
			s.logger.Debug("draft skipped", "post_path", post.FilePath)
			continue
		}

		pageSlug := s.slugFor(post)
		outputPath := path.Join(pageSlug, "index.html")
		checksum := hex.EncodeToString(post.Checksum)

		if s.shouldSkip(ctx, pageSlug, checksum) {
			result.Skipped++
			s.logger.Debug("unchanged post skipped", "post_slug", pageSlug)
			continue
		}

		if err := s.renderPage(ctx, post, pageSlug, outputPath, checksum); err != nil {
			return nil, err
		}
		result.Pages++
	}

	result.Duration = time.Since(start)
	s.logger.Info("build complete",
		"pages", result.Pages,
		"skipped", result.Skipped,
		"drafts", result.Drafts,
		"output_dir", s.cfg.OutputDir,
		"duration", result.Duration.String(),
	)
	return result, nil
}

func (s *Service) renderPage(ctx context.Context, post *interfaces.Post, pageSlug, outputPath, checksum string) error {
	logger := logging.WithPostContext(s.logger, post.FilePath, pageSlug, "render")

	fragment, err := s.markdown.RenderPost(ctx, post, s.cfg.Parser)
	if err != nil {
		return fmt.Errorf("generator: render %s: %w", post.FilePath, err)
	}

	var content bytes.Buffer
	content.WriteString(`<div class="content">`)
	content.Write(fragment)
	content.WriteString("</div>")

	page, err := s.composer.ComposePage(s.titleFor(post), template.HTML(content.String()), s.authorFor(post))
	if err != nil {
		return fmt.Errorf("generator: compose %s: %w", post.FilePath, err)
	}

	body := []byte(page)
	if err := s.storage.EnsureDir(ctx, pageSlug); err != nil {
		return fmt.Errorf("generator: ensure dir %s: %w", pageSlug, err)
	}
	err = s.storage.WriteFile(ctx, interfaces.WriteFileRequest{
		Path:        outputPath,
		Content:     bytes.NewReader(body),
		Size:        int64(len(body)),
		ContentType: "text/html; charset=utf-8",
		Checksum:    checksum,
		Metadata: map[string]string{
			"source": post.FilePath,
		},
	})
	if err != nil {
		return fmt.Errorf("generator: write %s: %w", outputPath, err)
	}

	if s.manifest != nil {
		_, err := s.manifest.Record(ctx, &BuildRecord{
			Slug:       pageSlug,
			SourcePath: post.FilePath,
			OutputPath: outputPath,
			Checksum:   checksum,
		})
		if err != nil {
			return err
		}
	}

	logger.Info("page built", "bytes", len(body))
	return nil
}

func (s *Service) shouldSkip(ctx context.Context, pageSlug, checksum string) bool {
	if !s.cfg.Incremental || s.cfg.CleanBuild || s.manifest == nil {
		return false
	}
	record, err := s.manifest.GetBySlug(ctx, pageSlug)
	if err != nil {
		if !IsManifestNotFound(err) {
			s.logger.Warn("manifest lookup failed", "post_slug", pageSlug, "error", err)
		}
		return false
	}
	return record.Checksum == checksum
}

func (s *Service) titleFor(post *interfaces.Post) string {
	if title := strings.TrimSpace(post.Meta.Title); title != "" {
		return title
	}
	return post.FilePath
}

// slugFor prefers the frontmatter slug, then a normalised file name.
func (s *Service) slugFor(post *interfaces.Post) string {
	// Frontmatter slugs are author input: normalize before they become an
	// artifact path so separators and dot segments never reach storage.
	if configured := strings.TrimSpace(post.Meta.Slug); configured != "" {
		if normalized, err := slug.Normalize(configured); err == nil && normalized != "" {
			return normalized
		}
	}
	base := path.Base(post.FilePath)
	base = strings.TrimSuffix(base, path.Ext(base))
	if normalized, err := slug.Normalize(base); err == nil && normalized != "" {
		return normalized
	}
	return base
}

func (s *Service) authorFor(post *interfaces.Post) *authors.Author {
	handle := strings.TrimSpace(post.Meta.Author)
	if handle == "" || s.authors == nil {
		return nil
	}
	author, ok := s.authors.Lookup(handle)
	if !ok {
		s.logger.Warn("unknown author handle", "author", handle, "post_path", post.FilePath)
		return nil
	}
	return &author
}
