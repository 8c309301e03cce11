package markdown

import (
	"strings"

	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// OptionsFromConfig maps runtime parser configuration onto the immutable
// options value handed to render calls.
func OptionsFromConfig(cfg runtimeconfig.ParserConfig) interfaces.ParseOptions {
	return interfaces.ParseOptions{
		Tables:          cfg.Tables,
		Breaks:          cfg.Breaks,
		DefaultLanguage: strings.TrimSpace(cfg.DefaultLanguage),
		HighlightStyle:  strings.TrimSpace(cfg.HighlightStyle),
		Sanitize:        cfg.Sanitize,
		SmartyPants:     cfg.SmartyPants,
	}
}

// MergeOptions builds a derived options value from a base plus overrides.
// Boolean toggles can only be switched on by an override; string fields win
// when non-empty. Neither input is mutated.
func MergeOptions(base, override interfaces.ParseOptions) interfaces.ParseOptions {
	result := base
	if override.Tables {
		result.Tables = true
	}
	if override.Breaks {
		result.Breaks = true
	}
	if override.Sanitize {
		result.Sanitize = true
	}
	if override.SmartyPants {
		result.SmartyPants = true
	}
	if lang := strings.TrimSpace(override.DefaultLanguage); lang != "" {
		result.DefaultLanguage = lang
	}
	if style := strings.TrimSpace(override.HighlightStyle); style != "" {
		result.HighlightStyle = style
	}
	return result
}
