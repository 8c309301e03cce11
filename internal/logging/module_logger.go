package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

const (
	rootModule      = "blog"
	markdownModule  = "blog.markdown"
	viewModule      = "blog.view"
	authorsModule   = "blog.authors"
	generatorModule = "blog.generator"
)

const (
	fieldPostPath  = "post_path"
	fieldPostSlug  = "slug"
	fieldBuildStep = "build_step"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// MarkdownLogger returns the logger namespace reserved for markdown rendering.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// ViewLogger returns the logger namespace reserved for page composition.
func ViewLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, viewModule)
}

// AuthorsLogger returns the logger namespace reserved for the author registry.
func AuthorsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, authorsModule)
}

// GeneratorLogger returns the logger namespace reserved for static builds.
func GeneratorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, generatorModule)
}

// WithPostContext enriches the provided logger with common post fields such as
// file path, slug, and the active build step. Empty values are ignored.
func WithPostContext(logger interfaces.Logger, path, slug, step string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldPostPath] = trimmed
	}
	if trimmed := strings.TrimSpace(slug); trimmed != "" {
		fields[fieldPostSlug] = trimmed
	}
	if trimmed := strings.TrimSpace(step); trimmed != "" {
		fields[fieldBuildStep] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
