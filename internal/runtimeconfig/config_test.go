package runtimeconfig

import (
	"errors"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig should validate, got %v", err)
	}
	if cfg.Markdown.Parser.Sanitize {
		t.Fatal("expected sanitize to default to false")
	}
	if cfg.Markdown.Parser.Tables || cfg.Markdown.Parser.Breaks {
		t.Fatal("expected flavored toggles to default to false")
	}
	if cfg.Markdown.Parser.DefaultLanguage != "" {
		t.Fatalf("expected no default highlight language, got %q", cfg.Markdown.Parser.DefaultLanguage)
	}
	if cfg.Markdown.Parser.SmartyPants {
		t.Fatal("expected smartypants to default to false")
	}
}

func TestValidateRequiresContentDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Markdown.ContentDir = "  "
	if err := cfg.Validate(); !errors.Is(err, ErrMarkdownContentDirRequired) {
		t.Fatalf("expected ErrMarkdownContentDirRequired, got %v", err)
	}
}

func TestValidateGeneratorRequiresFeature(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Generator.Enabled = true
	if err := cfg.Validate(); !errors.Is(err, ErrGeneratorFeatureRequired) {
		t.Fatalf("expected ErrGeneratorFeatureRequired, got %v", err)
	}

	cfg.Features.Generator = true
	cfg.Generator.OutputDir = ""
	if err := cfg.Validate(); !errors.Is(err, ErrGeneratorOutputDirRequired) {
		t.Fatalf("expected ErrGeneratorOutputDirRequired, got %v", err)
	}

	cfg.Generator.OutputDir = "dist"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid generator config, got %v", err)
	}
}

func TestValidateLoggingProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Features.Logger = true

	cfg.Logging.Provider = ""
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}

	cfg.Logging.Provider = "syslog"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}

	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}

	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}

	cfg.Logging.Format = "pretty"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid logging config, got %v", err)
	}
}
