package main

import (
	"context"
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
		outputDir   = flag.String("output-dir", "dist", "Directory receiving the generated site")
		clean       = flag.Bool("clean", true, "Remove previous outputs before building")
		incremental = flag.Bool("incremental", false, "Skip posts whose checksum matches the manifest")
		manifestDSN = flag.String("manifest-dsn", "", "SQLite DSN for the build manifest (incremental builds)")
		defaultLang = flag.String("default-language", "", "Language applied to untagged fenced code blocks")
		style       = flag.String("highlight-style", "", "Chroma style for server-side syntax highlighting")
		sanitize    = flag.Bool("sanitize", false, "Escape raw HTML found in the markdown source")
	)

	flag.Parse()

	cfg := blog.DefaultConfig()
	cfg.Markdown.ContentDir = *contentDir
	cfg.Markdown.Pattern = *pattern
	cfg.Markdown.Parser.DefaultLanguage = *defaultLang
	cfg.Markdown.Parser.HighlightStyle = *style
	cfg.Markdown.Parser.Sanitize = *sanitize
	cfg.Features.Generator = true
	cfg.Generator.Enabled = true
	cfg.Generator.OutputDir = *outputDir
	cfg.Generator.CleanBuild = *clean
	cfg.Generator.Incremental = *incremental
	cfg.Generator.ManifestDSN = *manifestDSN

	module, err := blog.New(cfg)
	if err != nil {
		log.Fatalf("bootstrap module: %v", err)
	}

	result, err := module.Build(context.Background())
	if err != nil {
		log.Fatalf("build site: %v", err)
	}

	fmt.Fprintf(os.Stdout, "Built %d pages (%d skipped, %d drafts) into %s in %s\n",
		result.Pages, result.Skipped, result.Drafts, *outputDir, result.Duration)
}
