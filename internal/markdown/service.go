package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Config controls how the markdown service discovers and parses post files.
type Config struct {
	BasePath  string
	Pattern   string
	Recursive bool
	Parser    interfaces.ParseOptions
}

// Service implements interfaces.MarkdownService for filesystem-backed posts.
type Service struct {
	cfg    Config
	parser interfaces.MarkdownParser
	loader *Loader
	logger interfaces.Logger
}

var _ interfaces.MarkdownService = (*Service)(nil)

// NewService constructs a markdown service rooted at cfg.BasePath. When
// parser is nil, a goldmark parser with the configured default options is
// created.
func NewService(cfg Config, parser interfaces.MarkdownParser, provider interfaces.LoggerProvider) (*Service, error) {
	filesystem, err := prepareFilesystem(cfg.BasePath)
	if err != nil {
		return nil, err
	}
	return NewServiceWithFS(cfg, parser, provider, filesystem)
}

// NewServiceWithFS is the fs.FS flavoured constructor used by tests and hosts
// embedding content.
func NewServiceWithFS(cfg Config, parser interfaces.MarkdownParser, provider interfaces.LoggerProvider, filesystem fs.FS) (*Service, error) {
	if filesystem == nil {
		return nil, errors.New("markdown service: filesystem is required")
	}

	if parser == nil {
		parser = NewGoldmarkParser(cfg.Parser)
	}

	loader := NewLoader(filesystem, LoaderConfig{
		BasePath:  cfg.BasePath,
		Pattern:   cfg.Pattern,
		Recursive: cfg.Recursive,
	})

	return &Service{
		cfg:    cfg,
		parser: parser,
		loader: loader,
		logger: logging.MarkdownLogger(provider),
	}, nil
}

// Render parses Markdown bytes into HTML using the configured parser. The
// service defaults are merged with the supplied overrides per call.
func (s *Service) Render(ctx context.Context, markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return s.parser.ParseWithOptions(markdown, MergeOptions(s.cfg.Parser, opts))
}

// RenderFile loads markdown from path, renders it, and wraps the result in a
// content container element. The rendered fragment is injected as raw HTML,
// so callers running with Sanitize disabled must trust the source file. A
// missing file surfaces as a not-found error, never as an empty fragment.
func (s *Service) RenderFile(ctx context.Context, path string, opts interfaces.ParseOptions) ([]byte, error) {
	source, err := s.loader.ReadSource(ctx, path)
	if err != nil {
		if IsNotFound(err) {
			s.logger.Error("post file missing", "post_path", path)
		}
		return nil, err
	}

	html, err := s.Render(ctx, source, opts)
	if err != nil {
		return nil, fmt.Errorf("markdown render file %s: %w", path, err)
	}

	var out []byte
	out = append(out, `<div class="content">`...)
	out = append(out, html...)
	out = append(out, "</div>"...)

	s.logger.Debug("post file rendered", "post_path", path, "bytes", len(out))
	return out, nil
}

// Load reads a single post relative to the configured base path.
func (s *Service) Load(ctx context.Context, path string) (*interfaces.Post, error) {
	return s.loader.LoadFile(ctx, path)
}

// LoadDirectory reads every post within the supplied directory, sorted by
// file path for deterministic builds.
func (s *Service) LoadDirectory(ctx context.Context, dir string) ([]*interfaces.Post, error) {
	posts, err := s.loader.LoadDirectory(ctx, dir)
	if err != nil {
		return nil, err
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].FilePath < posts[j].FilePath
	})
	return posts, nil
}

// RenderPost converts the post's Markdown body into HTML using the configured
// parser and caches it on the post.
func (s *Service) RenderPost(ctx context.Context, post *interfaces.Post, opts interfaces.ParseOptions) ([]byte, error) {
	if post == nil {
		return nil, errors.New("markdown service: post is nil")
	}
	html, err := s.Render(ctx, post.Body, opts)
	if err != nil {
		return nil, fmt.Errorf("markdown render post %s: %w", post.FilePath, err)
	}
	post.BodyHTML = html
	return html, nil
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	if _, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("markdown service: stat base path %s: %w", basePath, err)
	}
	return os.DirFS(basePath), nil
}
