// Package preview renders Markdown to a standalone HTML page: GitHub
// flavored tables and fences, language classes on code blocks, and mermaid
// fences as diagrams.
package preview

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// MermaidScript is the mermaid bundle loaded by pages that contain diagrams.
const MermaidScript = "https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.min.js"

// fenceRendererPriority runs the fence renderer ahead of goldmark's default
// HTML renderer (priority 1000).
const fenceRendererPriority = 100

//go:embed page.html.tmpl
var pageTemplate string

//nolint:gochecknoglobals // Parsed once; templates are safe for concurrent use.
var page = template.Must(template.New("page").Parse(pageTemplate))

// Options configures a Renderer.
type Options struct {
	// RawHTML passes HTML embedded in the Markdown through unchanged.
	// When false it is replaced by a comment.
	RawHTML bool

	// Lang is the page language attribute. Empty means "en".
	Lang string
}

// Renderer converts Markdown to HTML. It is safe for concurrent use.
type Renderer struct {
	md   goldmark.Markdown
	opts Options
}

// Page is the data passed to the page template.
type Page struct {
	Title         string
	Lang          string
	Body          template.HTML
	Mermaid       bool
	MermaidScript string
}

// New creates a Renderer.
func New(opts Options) *Renderer {
	rendererOpts := []renderer.Option{
		renderer.WithNodeRenderers(util.Prioritized(newFenceRenderer(), fenceRendererPriority)),
	}
	if opts.RawHTML {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}
	if opts.Lang == "" {
		opts.Lang = "en"
	}

	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(rendererOpts...),
		),
		opts: opts,
	}
}

// RenderBody converts Markdown to an HTML fragment and reports whether it
// contains a mermaid diagram.
func (r *Renderer) RenderBody(source []byte) ([]byte, bool, error) {
	doc := r.md.Parser().Parse(text.NewReader(source))

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, source, doc); err != nil {
		return nil, false, fmt.Errorf("render markdown: %w", err)
	}
	return buf.Bytes(), hasMermaid(doc, source), nil
}

// RenderPage writes a complete HTML document for source. The mermaid
// script is only included when the document has a diagram.
func (r *Renderer) RenderPage(w io.Writer, source []byte, title string) error {
	body, hasMermaid, err := r.RenderBody(source)
	if err != nil {
		return err
	}
	return r.writePage(w, Page{
		Title:   title,
		Body:    template.HTML(body), //nolint:gosec // Produced by goldmark, which escapes text content.
		Mermaid: hasMermaid,
	})
}

// RenderPlaceholder writes the page shown before any document is loaded.
func (r *Renderer) RenderPlaceholder(w io.Writer, message, title string) error {
	body := `<p class="placeholder">` + template.HTMLEscapeString(message) + `</p>`
	return r.writePage(w, Page{
		Title: title,
		Body:  template.HTML(body), //nolint:gosec // message is escaped above.
	})
}

func (r *Renderer) writePage(w io.Writer, data Page) error {
	data.Lang = r.opts.Lang
	data.MermaidScript = MermaidScript
	if err := page.Execute(w, data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
