package markdown

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

func TestServiceRenderFileWrapsContent(t *testing.T) {
	svc := newTestService(t, true)

	html, err := svc.RenderFile(context.Background(), "hello-world.md", interfaces.ParseOptions{})
	if err != nil {
		t.Fatalf("RenderFile: %v", err)
	}

	got := string(html)
	if !strings.HasPrefix(got, `<div class="content">`) || !strings.HasSuffix(got, "</div>") {
		t.Fatalf("expected content container wrapper, got %q", got)
	}
	if !strings.Contains(got, `<span class="marker">raw html</span>`) {
		t.Fatalf("expected raw HTML to pass through with default options, got %q", got)
	}
}

func TestServiceRenderFileMissingPath(t *testing.T) {
	svc := newTestService(t, true)

	html, err := svc.RenderFile(context.Background(), "no-such-post.md", interfaces.ParseOptions{})
	if err == nil {
		t.Fatalf("expected error for missing file, got fragment %q", string(html))
	}
	if !IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if len(html) != 0 {
		t.Fatalf("expected no fragment on error, got %q", string(html))
	}
}

func TestServiceRenderMergesDefaults(t *testing.T) {
	cfg := Config{
		BasePath: filepath.Join("testdata", "site"),
		Pattern:  "*.md",
		Parser:   interfaces.ParseOptions{DefaultLanguage: "elixir"},
	}
	svc, err := NewService(cfg, nil, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	html, err := svc.Render(context.Background(), []byte("```\nIO.puts 1\n```\n"), interfaces.ParseOptions{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(html), `class="language-elixir"`) {
		t.Fatalf("expected service default language to apply, got %q", string(html))
	}
}

func TestServiceLoad(t *testing.T) {
	svc := newTestService(t, true)

	post, err := svc.Load(context.Background(), "hello-world.md")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if post.Meta.Title != "Hello World" {
		t.Fatalf("expected parsed title, got %q", post.Meta.Title)
	}
	if len(post.Checksum) == 0 {
		t.Fatalf("expected checksum to be populated")
	}
	if len(post.BodyHTML) != 0 {
		t.Fatalf("expected lazy rendering")
	}

	if _, err := svc.RenderPost(context.Background(), post, interfaces.ParseOptions{}); err != nil {
		t.Fatalf("RenderPost: %v", err)
	}
	if len(post.BodyHTML) == 0 {
		t.Fatalf("expected BodyHTML to be cached on the post")
	}
}

func TestServiceLoadDirectory(t *testing.T) {
	svc := newTestService(t, true)

	posts, err := svc.LoadDirectory(context.Background(), ".")
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}

	if len(posts) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(posts))
	}
	for i := 1; i < len(posts); i++ {
		if posts[i-1].FilePath > posts[i].FilePath {
			t.Fatalf("expected posts sorted by path: %s > %s", posts[i-1].FilePath, posts[i].FilePath)
		}
	}
}

func TestServiceLoadDirectoryNonRecursive(t *testing.T) {
	svc := newTestService(t, false)

	posts, err := svc.LoadDirectory(context.Background(), ".")
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}

	if len(posts) != 2 {
		t.Fatalf("expected 2 top-level posts, got %d", len(posts))
	}
	for _, post := range posts {
		if strings.Contains(post.FilePath, "notes/") {
			t.Fatalf("expected nested posts to be skipped, got %s", post.FilePath)
		}
	}
}

func newTestService(tb testing.TB, recursive bool) *Service {
	tb.Helper()

	svc, err := NewService(Config{
		BasePath:  filepath.Join("testdata", "site"),
		Pattern:   "*.md",
		Recursive: recursive,
	}, nil, nil)
	if err != nil {
		tb.Fatalf("NewService: %v", err)
	}
	return svc
}
