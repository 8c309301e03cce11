package markdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// defaultLanguage is a goldmark extension that annotates fenced code blocks
// lacking an info string with a configured language, so downstream
// highlighters treat them as if the author had tagged them.
type defaultLanguage struct {
	language []byte
}

func newDefaultLanguage(language string) goldmark.Extender {
	return &defaultLanguage{language: []byte(language)}
}

// Extend registers the code block renderer ahead of goldmark's built-in one.
func (e *defaultLanguage) Extend(m goldmark.Markdown) {
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(newCodeBlockRenderer(e.language), 100),
	))
}

type codeBlockRenderer struct {
	html.Config
	language []byte
}

func newCodeBlockRenderer(language []byte) renderer.NodeRenderer {
	return &codeBlockRenderer{
		Config:   html.NewConfig(),
		language: language,
	}
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

// renderFencedCodeBlock mirrors goldmark's built-in fenced code rendering,
// substituting the configured language when the fence carries none.
func (r *codeBlockRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.FencedCodeBlock)
	if !entering {
		_, _ = w.WriteString("</code></pre>\n")
		return ast.WalkContinue, nil
	}

	_, _ = w.WriteString("<pre><code")
	language := n.Language(source)
	if len(language) == 0 {
		language = r.language
	}
	if len(language) > 0 {
		_, _ = w.WriteString(` class="language-`)
		r.Writer.Write(w, language)
		_, _ = w.WriteString(`"`)
	}
	_ = w.WriteByte('>')

	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		r.Writer.RawWrite(w, line.Value(source))
	}
	return ast.WalkContinue, nil
}
