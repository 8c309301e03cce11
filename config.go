package blog

import "github.com/goliatone/go-blog/internal/runtimeconfig"

var (
	ErrMarkdownContentDirRequired = runtimeconfig.ErrMarkdownContentDirRequired
	ErrGeneratorFeatureRequired   = runtimeconfig.ErrGeneratorFeatureRequired
	ErrGeneratorOutputDirRequired = runtimeconfig.ErrGeneratorOutputDirRequired
	ErrLoggingProviderRequired    = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config          = runtimeconfig.Config
	SiteConfig      = runtimeconfig.SiteConfig
	MarkdownConfig  = runtimeconfig.MarkdownConfig
	ParserConfig    = runtimeconfig.ParserConfig
	ViewConfig      = runtimeconfig.ViewConfig
	AuthorConfig    = runtimeconfig.AuthorConfig
	GeneratorConfig = runtimeconfig.GeneratorConfig
	LoggingConfig   = runtimeconfig.LoggingConfig
	Features        = runtimeconfig.Features
)

// DefaultConfig returns the default module configuration.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
