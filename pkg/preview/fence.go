package preview

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/mdcheck/pkg/langdetect"
)

// fenceRenderer writes fenced code blocks with a language class and turns
// mermaid fences into diagram containers.
type fenceRenderer struct{}

func newFenceRenderer() renderer.NodeRenderer {
	return &fenceRenderer{}
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *fenceRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *fenceRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	block, ok := node.(*ast.FencedCodeBlock)
	if !ok {
		return ast.WalkContinue, nil
	}

	code := blockText(block, source)
	lang := fenceLanguage(block, source, code)
	if lang == langdetect.Mermaid {
		_, _ = w.WriteString("<div class=\"mermaid\">\n")
		_, _ = w.Write(util.EscapeHTML(code))
		_, _ = w.WriteString("</div>\n")
		return ast.WalkSkipChildren, nil
	}

	_, _ = w.WriteString(`<pre><code class="language-`)
	_, _ = w.Write(util.EscapeHTML([]byte(lang)))
	_, _ = w.WriteString(`">`)
	_, _ = w.Write(util.EscapeHTML(code))
	_, _ = w.WriteString("</code></pre>\n")
	return ast.WalkSkipChildren, nil
}

func blockText(block *ast.FencedCodeBlock, source []byte) []byte {
	var code bytes.Buffer
	lines := block.Lines()
	for i := range lines.Len() {
		segment := lines.At(i)
		code.Write(segment.Value(source))
	}
	return code.Bytes()
}

func fenceLanguage(block *ast.FencedCodeBlock, source, code []byte) string {
	var info string
	if block.Info != nil {
		info = string(block.Info.Segment.Value(source))
	}
	return langdetect.ForFence(info, code)
}

// hasMermaid reports whether doc contains a mermaid fence.
func hasMermaid(doc ast.Node, source []byte) bool {
	found := false
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		block, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		if bytes.EqualFold(block.Language(source), []byte(langdetect.Mermaid)) {
			found = true
			return ast.WalkStop, nil
		}
		return ast.WalkSkipChildren, nil
	})
	return found
}
