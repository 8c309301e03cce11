package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	blog "github.com/goliatone/go-blog"
)

func main() {
	var (
		contentDir  = flag.String("content-dir", "content", "Path to the markdown content root")
		pattern     = flag.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
		filePath    = flag.String("file", "", "Markdown file to preview (relative to the content root)")
		composePage = flag.Bool("compose", false, "Wrap the rendered post in the full page layout")
		sanitize    = flag.Bool("sanitize", false, "Escape raw HTML found in the markdown source")
	)

	flag.Parse()

	if *filePath == "" {
		log.Fatalf("--file is required")
	}

	cfg := blog.DefaultConfig()
	cfg.Markdown.ContentDir = *contentDir
	cfg.Markdown.Pattern = *pattern
	cfg.Markdown.Parser.Sanitize = *sanitize

	module, err := blog.New(cfg)
	if err != nil {
		log.Fatalf("bootstrap module: %v", err)
	}

	ctx := context.Background()

	if *composePage {
		page, err := module.ComposePost(ctx, *filePath)
		if err != nil {
			log.Fatalf("compose post: %v", err)
		}
		fmt.Fprintln(os.Stdout, string(page))
		return
	}

	post, err := module.Markdown().Load(ctx, *filePath)
	if err != nil {
		log.Fatalf("load post: %v", err)
	}

	html, err := module.Markdown().RenderPost(ctx, post, blog.ParseOptions{Sanitize: *sanitize})
	if err != nil {
		log.Fatalf("render post: %v", err)
	}

	fmt.Fprintf(os.Stdout, "Path: %s\nSlug: %s\nChecksum: %x\n\n", post.FilePath, post.Meta.Slug, post.Checksum)

	if meta, err := json.MarshalIndent(post.Meta, "", "  "); err == nil {
		fmt.Fprintf(os.Stdout, "Frontmatter:\n%s\n\n", meta)
	}

	fmt.Fprintf(os.Stdout, "Rendered HTML:\n%s\n", string(html))
}
