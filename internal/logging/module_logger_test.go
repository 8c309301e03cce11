package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "blog.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	// Ensure WithContext/WithFields do not panic.
	logger = logger.WithContext(context.Background())
	logger = logger.(interfaces.FieldsLogger).WithFields(map[string]any{"foo": "bar"})
	logger.Debug("noop")
}

func TestModuleLoggerUsesProviderAndAnnotatesFields(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	logger := ModuleLogger(provider, markdownModule)

	if len(provider.requested) != 1 || provider.requested[0] != markdownModule {
		t.Fatalf("expected module %s, got %v", markdownModule, provider.requested)
	}

	if len(rec.fields) != 1 {
		t.Fatalf("expected module fields to be applied once, got %d", len(rec.fields))
	}

	if got, ok := rec.fields[0]["module"]; !ok || got != markdownModule {
		t.Fatalf("expected module field %s, got %v", markdownModule, rec.fields[0]["module"])
	}

	logger.Info("with provider")
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, "")

	if len(provider.requested) != 1 || provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
	if rec.fields[0]["module"] != rootModule {
		t.Fatalf("expected module field %s, got %v", rootModule, rec.fields[0]["module"])
	}
}

func TestGeneratorLoggerRequestsGeneratorModule(t *testing.T) {
	provider := &stubProvider{logger: &recordingLogger{}}
	_ = GeneratorLogger(provider)
	if len(provider.requested) == 0 || provider.requested[0] != generatorModule {
		t.Fatalf("expected generator module request, got %v", provider.requested)
	}
}

func TestWithPostContextSkipsEmptyValues(t *testing.T) {
	rec := &recordingLogger{}

	_ = WithPostContext(rec, "posts/hello.md", "", "render")

	if len(rec.fields) != 1 {
		t.Fatalf("expected one fields application, got %d", len(rec.fields))
	}
	fields := rec.fields[0]
	if fields[fieldPostPath] != "posts/hello.md" {
		t.Fatalf("expected post path field, got %v", fields)
	}
	if _, ok := fields[fieldPostSlug]; ok {
		t.Fatalf("expected empty slug to be skipped, got %v", fields)
	}
	if fields[fieldBuildStep] != "render" {
		t.Fatalf("expected build step field, got %v", fields)
	}
}
