package lint

import (
	"sort"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// CodeBlockLines parses source as GitHub-flavored Markdown and returns the set
// of 1-based content lines that belong to fenced or indented code blocks.
// Fence lines are not included; they can never look like headings.
func CodeBlockLines(source []byte) map[int]bool {
	lineSet := make(map[int]bool)
	if len(source) == 0 {
		return lineSet
	}

	starts := lineStarts(source)
	lineOf := func(offset int) int {
		return sort.Search(len(starts), func(i int) bool { return starts[i] > offset })
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	doc := md.Parser().Parse(text.NewReader(source))

	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node.Kind() {
		case ast.KindFencedCodeBlock, ast.KindCodeBlock:
			segments := node.Lines()
			for i := range segments.Len() {
				lineSet[lineOf(segments.At(i).Start)] = true
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return lineSet
}

// lineStarts returns the byte offset at which each line begins.
func lineStarts(source []byte) []int {
	starts := []int{0}
	for i, b := range source {
		if b == '\n' && i+1 < len(source) {
			starts = append(starts, i+1)
		}
	}
	return starts
}
