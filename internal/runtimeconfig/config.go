package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMarkdownContentDirRequired indicates the markdown content directory is missing.
var ErrMarkdownContentDirRequired = errors.New("blog config: markdown content directory is required")

// ErrGeneratorFeatureRequired indicates generator settings without the feature flag.
var ErrGeneratorFeatureRequired = errors.New("blog config: generator feature must be enabled to configure builds")

// ErrGeneratorOutputDirRequired indicates a generator build without a destination.
var ErrGeneratorOutputDirRequired = errors.New("blog config: generator output directory is required when generator is enabled")

// ErrLoggingProviderRequired indicates logging is enabled without a provider.
var ErrLoggingProviderRequired = errors.New("blog config: logging provider is required when logging feature is enabled")

// ErrLoggingProviderUnknown indicates an unrecognised logging provider.
var ErrLoggingProviderUnknown = errors.New("blog config: logging provider is invalid")

// ErrLoggingLevelInvalid indicates an unrecognised logging level.
var ErrLoggingLevelInvalid = errors.New("blog config: logging level is invalid")

// ErrLoggingFormatInvalid indicates an unrecognised logging format.
var ErrLoggingFormatInvalid = errors.New("blog config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the blog module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Site      SiteConfig
	Markdown  MarkdownConfig
	View      ViewConfig
	Authors   map[string]AuthorConfig
	Generator GeneratorConfig
	Logging   LoggingConfig
	Features  Features
}

// SiteConfig carries site-wide presentation values.
type SiteConfig struct {
	Title   string
	BaseURL string
}

// MarkdownConfig captures filesystem and parser behaviour for post loading.
type MarkdownConfig struct {
	ContentDir string
	Pattern    string
	Recursive  bool
	Parser     ParserConfig
}

// ParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type ParserConfig struct {
	Tables          bool
	Breaks          bool
	DefaultLanguage string
	HighlightStyle  string
	Sanitize        bool
	SmartyPants     bool
}

// ViewConfig controls the fixed page layout produced by the composer.
type ViewConfig struct {
	Stylesheets    []string
	FontStylesheet string
}

// AuthorConfig declares a single entry of the static author table.
type AuthorConfig struct {
	FullName string
	ImageURL string
}

// GeneratorConfig captures behaviour for static builds.
type GeneratorConfig struct {
	Enabled     bool
	OutputDir   string
	CleanBuild  bool
	Incremental bool
	ManifestDSN string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Features toggles module functionality.
type Features struct {
	Generator bool
	Logger    bool
}

// DefaultConfig returns opinionated defaults: plain CommonMark rendering with
// raw HTML passed through, post discovery under ./content, no static builds.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			Title: "Blog",
		},
		Markdown: MarkdownConfig{
			ContentDir: "content",
			Pattern:    "*.md",
			Recursive:  true,
			Parser:     ParserConfig{},
		},
		View: ViewConfig{
			Stylesheets: []string{
				"/css/app.css",
				"/css/highlight.css",
			},
			FontStylesheet: "https://fonts.googleapis.com/css?family=Merriweather:300,400,700",
		},
		Authors: map[string]AuthorConfig{},
		Generator: GeneratorConfig{
			OutputDir:  "dist",
			CleanBuild: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Features: Features{},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Markdown.ContentDir) == "" {
		return ErrMarkdownContentDirRequired
	}
	if cfg.Generator.Enabled {
		if !cfg.Features.Generator {
			return ErrGeneratorFeatureRequired
		}
		if strings.TrimSpace(cfg.Generator.OutputDir) == "" {
			return ErrGeneratorOutputDirRequired
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
