package preview_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcheck/pkg/preview"
)

func TestRenderBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		source      string
		contains    []string
		notContains []string
		wantMermaid bool
	}{
		{
			name:     "heading and paragraph",
			source:   "# Title\n\nHello *world*\n",
			contains: []string{"<h1>Title</h1>", "<em>world</em>"},
		},
		{
			name:     "gfm table",
			source:   "| a | b |\n|---|---|\n| 1 | 2 |\n",
			contains: []string{"<table>", "<th>a</th>", "<td>2</td>"},
		},
		{
			name:        "mermaid fence",
			source:      "```mermaid\ngraph TD\n  A-->B\n```\n",
			contains:    []string{"<div class=\"mermaid\">\ngraph TD\n  A--&gt;B\n</div>"},
			notContains: []string{"<pre>"},
			wantMermaid: true,
		},
		{
			name:     "labeled fence",
			source:   "```go\nfmt.Println(\"<hi>\")\n```\n",
			contains: []string{`<pre><code class="language-go">fmt.Println(&quot;&lt;hi&gt;&quot;)`},
		},
		{
			name:     "unlabeled fence detected",
			source:   "```\npackage main\n```\n",
			contains: []string{`<code class="language-go">package main`},
		},
		{
			name:        "raw html omitted by default",
			source:      "<script>alert(1)</script>\n",
			notContains: []string{"<script>"},
		},
	}

	renderer := preview.New(preview.Options{})
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			body, mermaid, err := renderer.RenderBody([]byte(testCase.source))
			require.NoError(t, err)
			for _, want := range testCase.contains {
				assert.Contains(t, string(body), want)
			}
			for _, unwanted := range testCase.notContains {
				assert.NotContains(t, string(body), unwanted)
			}
			assert.Equal(t, testCase.wantMermaid, mermaid)
		})
	}
}

func TestRenderBodyRawHTML(t *testing.T) {
	t.Parallel()

	body, _, err := preview.New(preview.Options{RawHTML: true}).RenderBody([]byte("<div class=\"note\">x</div>\n"))
	require.NoError(t, err)
	assert.Contains(t, string(body), `<div class="note">x</div>`)
}

func TestRenderPage(t *testing.T) {
	t.Parallel()

	renderer := preview.New(preview.Options{Lang: "ja"})

	var buf bytes.Buffer
	require.NoError(t, renderer.RenderPage(&buf, []byte("# 見出し\n\n```mermaid\ngraph TD\n```\n"), "doc.md"))
	page := buf.String()

	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, `<html lang="ja">`)
	assert.Contains(t, page, "<title>doc.md</title>")
	assert.Contains(t, page, "<h1>見出し</h1>")
	assert.Contains(t, page, preview.MermaidScript)

	buf.Reset()
	require.NoError(t, renderer.RenderPage(&buf, []byte("plain\n"), "plain.md"))
	assert.NotContains(t, buf.String(), preview.MermaidScript)
}

func TestRenderPlaceholder(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, preview.New(preview.Options{}).RenderPlaceholder(&buf, "<nothing> yet", "MDCheck"))
	assert.Contains(t, buf.String(), `<p class="placeholder">&lt;nothing&gt; yet</p>`)
}
