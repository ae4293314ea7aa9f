// Package runner resolves the path given on the command line and checks each
// Markdown file in turn.
package runner

import (
	"github.com/yaklabco/mdcheck/pkg/advisory"
	"github.com/yaklabco/mdcheck/pkg/lint"
	"github.com/yaklabco/mdcheck/pkg/locale"
)

// MarkdownExtension is the only extension picked up in directory mode.
const MarkdownExtension = ".md"

// Options controls a check run.
type Options struct {
	// Engine runs the rule checks. Required.
	Engine *lint.Engine

	// Analyzer produces model advice. Nil skips the advisory path.
	Analyzer advisory.Analyzer

	// Messages localizes advisory error findings. Nil means English.
	Messages *locale.Catalog

	// Observer receives progress events while files are processed.
	// Nil discards them.
	Observer Observer
}

// observer returns the configured observer or a no-op one.
func (o Options) observer() Observer {
	if o.Observer == nil {
		return NopObserver{}
	}
	return o.Observer
}
