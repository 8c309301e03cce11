package markdown

import (
	"bytes"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// GoldmarkParser implements interfaces.MarkdownParser using the goldmark
// engine. The parser is intentionally stateless so callers can reuse a single
// instance across requests without additional locking.
type GoldmarkParser struct {
	defaultOptions interfaces.ParseOptions
}

// NewGoldmarkParser constructs a parser whose Parse method applies the
// provided defaults. Callers can override behaviour per invocation through
// ParseWithOptions.
func NewGoldmarkParser(defaults interfaces.ParseOptions) *GoldmarkParser {
	return &GoldmarkParser{
		defaultOptions: defaults,
	}
}

// Parse satisfies interfaces.MarkdownParser by rendering Markdown into HTML
// using the parser's default configuration.
func (p *GoldmarkParser) Parse(markdown []byte) ([]byte, error) {
	return p.ParseWithOptions(markdown, p.defaultOptions)
}

// ParseWithOptions renders Markdown into HTML using the provided options.
// Rendering the same input with the same options yields identical output.
func (p *GoldmarkParser) ParseWithOptions(markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	engine := newGoldmarkEngine(opts)
	var buf bytes.Buffer
	if err := engine.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("markdown parse: %w", err)
	}
	return buf.Bytes(), nil
}

// newGoldmarkEngine builds a goldmark.Markdown configured from the supplied
// parse options. Sanitize maps onto goldmark's safe rendering: raw HTML from
// the source never reaches the output. When Sanitize is false the caller owns
// the trust boundary and raw HTML passes through unchanged.
func newGoldmarkEngine(opts interfaces.ParseOptions) goldmark.Markdown {
	parserOptions := []parser.Option{
		parser.WithAutoHeadingID(),
	}

	rendererOptions := []renderer.Option{}
	if opts.Breaks {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if !opts.Sanitize {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	var exts []goldmark.Extender
	if opts.Tables {
		exts = append(exts, extension.Table)
	}
	if opts.SmartyPants {
		exts = append(exts, extension.Typographer)
	}

	// DefaultLanguage wins over HighlightStyle: class-annotated output keeps
	// untagged blocks addressable by client-side highlighters, which chroma's
	// server-side pass cannot do for an unknown language.
	if lang := strings.TrimSpace(opts.DefaultLanguage); lang != "" {
		exts = append(exts, newDefaultLanguage(lang))
	} else if style := strings.TrimSpace(opts.HighlightStyle); style != "" {
		exts = append(exts, highlighting.NewHighlighting(
			highlighting.WithStyle(style),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true),
			),
		))
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parserOptions...),
	}
	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}
	if len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}

	return goldmark.New(engineOptions...)
}
