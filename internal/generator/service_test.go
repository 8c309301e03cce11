package generator

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-blog/internal/authors"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/internal/view"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

func newTestMarkdown(t *testing.T) interfaces.MarkdownService {
	t.Helper()

	service, err := markdown.NewService(markdown.Config{
		BasePath:  filepath.Join("testdata", "content"),
		Pattern:   "*.md",
		Recursive: true,
	}, nil, nil)
	if err != nil {
		t.Fatalf("markdown.NewService() error = %v", err)
	}
	return service
}

func newTestComposer(t *testing.T) *view.Composer {
	t.Helper()

	composer, err := view.NewComposer(runtimeconfig.ViewConfig{
		Stylesheets: []string{"/css/app.css"},
	})
	if err != nil {
		t.Fatalf("view.NewComposer() error = %v", err)
	}
	return composer
}

func newTestAuthors(t *testing.T) *authors.Registry {
	t.Helper()

	registry, err := authors.NewRegistry(map[string]runtimeconfig.AuthorConfig{
		"jose": {
			FullName: "José Valim",
			ImageURL: "https://example.com/images/jose.png",
		},
	})
	if err != nil {
		t.Fatalf("authors.NewRegistry() error = %v", err)
	}
	return registry
}

func TestBuildWritesPages(t *testing.T) {
	outputDir := t.TempDir()
	service, err := NewService(
		Config{OutputDir: outputDir},
		newTestMarkdown(t),
		newTestComposer(t),
		NewFilesystemStorage(outputDir),
		WithAuthors(newTestAuthors(t)),
	)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	result, err := service.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if result.Pages != 2 {
		t.Fatalf("Pages = %d, want 2", result.Pages)
	}
	if result.Drafts != 1 {
		t.Fatalf("Drafts = %d, want 1", result.Drafts)
	}

	page, err := os.ReadFile(filepath.Join(outputDir, "first-post", "index.html"))
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	html := string(page)
	if !strings.Contains(html, "<title>First Post</title>") {
		t.Fatalf("page missing title:\n%s", html)
	}
	if !strings.Contains(html, `<div class="content">`) {
		t.Fatalf("page missing content container:\n%s", html)
	}
	if !strings.Contains(html, "José Valim") {
		t.Fatalf("page missing author bio:\n%s", html)
	}
	if !strings.Contains(html, `href="https://twitter.comjose"`) {
		t.Fatalf("page missing author link:\n%s", html)
	}

	// Slug derived from the file name when frontmatter has none.
	if _, err := os.Stat(filepath.Join(outputDir, "notes", "index.html")); err != nil {
		t.Fatalf("expected notes page: %v", err)
	}

	// Drafts do not produce output.
	if _, err := os.Stat(filepath.Join(outputDir, "work-in-progress")); !os.IsNotExist(err) {
		t.Fatalf("draft should not be built, stat err = %v", err)
	}
}

func TestBuildOmitsAuthorBlockWithoutRegistry(t *testing.T) {
	outputDir := t.TempDir()
	service, err := NewService(
		Config{OutputDir: outputDir},
		newTestMarkdown(t),
		newTestComposer(t),
		NewFilesystemStorage(outputDir),
	)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	if _, err := service.Build(context.Background()); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	page, err := os.ReadFile(filepath.Join(outputDir, "first-post", "index.html"))
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	if strings.Contains(string(page), "author-bio") {
		t.Fatalf("page should not carry author block:\n%s", page)
	}
}

func TestBuildIncrementalSkipsUnchanged(t *testing.T) {
	outputDir := t.TempDir()
	manifest := newTestManifest(t)
	service, err := NewService(
		Config{OutputDir: outputDir, Incremental: true},
		newTestMarkdown(t),
		newTestComposer(t),
		NewFilesystemStorage(outputDir),
		WithManifest(manifest),
	)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	ctx := context.Background()

	first, err := service.Build(ctx)
	if err != nil {
		t.Fatalf("first Build() error = %v", err)
	}
	if first.Pages != 2 || first.Skipped != 0 {
		t.Fatalf("first build Pages = %d Skipped = %d", first.Pages, first.Skipped)
	}

	second, err := service.Build(ctx)
	if err != nil {
		t.Fatalf("second Build() error = %v", err)
	}
	if second.Pages != 0 || second.Skipped != 2 {
		t.Fatalf("second build Pages = %d Skipped = %d", second.Pages, second.Skipped)
	}
}

func TestBuildNormalizesTraversalSlug(t *testing.T) {
	contentDir := t.TempDir()
	source := "---\ntitle: Escape Attempt\nslug: ../escaped\n---\n\nBody.\n"
	if err := os.WriteFile(filepath.Join(contentDir, "escape.md"), []byte(source), 0o644); err != nil {
		t.Fatalf("write post: %v", err)
	}

	parent := t.TempDir()
	outputDir := filepath.Join(parent, "dist")
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	mdService, err := markdown.NewService(markdown.Config{
		BasePath:  contentDir,
		Pattern:   "*.md",
		Recursive: true,
	}, nil, nil)
	if err != nil {
		t.Fatalf("markdown.NewService() error = %v", err)
	}

	service, err := NewService(
		Config{OutputDir: outputDir},
		mdService,
		newTestComposer(t),
		NewFilesystemStorage(outputDir),
	)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	result, err := service.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if result.Pages != 1 {
		t.Fatalf("Pages = %d, want 1", result.Pages)
	}

	// The dot segments in the frontmatter slug must not place the page
	// above the output directory.
	if _, err := os.Stat(filepath.Join(parent, "escaped", "index.html")); !os.IsNotExist(err) {
		t.Fatalf("page escaped output dir, stat err = %v", err)
	}

	var pages []string
	err = filepath.WalkDir(outputDir, func(path string, entry os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !entry.IsDir() && entry.Name() == "index.html" {
			pages = append(pages, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk output: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("output pages = %v, want one inside %s", pages, outputDir)
	}
}

func TestBuildCleanRemovesPreviousOutput(t *testing.T) {
	outputDir := t.TempDir()
	stale := filepath.Join(outputDir, "stale", "index.html")
	if err := os.MkdirAll(filepath.Dir(stale), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatalf("write stale: %v", err)
	}

	service, err := NewService(
		Config{OutputDir: outputDir, CleanBuild: true},
		newTestMarkdown(t),
		newTestComposer(t),
		NewFilesystemStorage(outputDir),
	)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	if _, err := service.Build(context.Background()); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatalf("stale output should be removed, stat err = %v", err)
	}
}
