// Package reporter renders finding reports as terminal text, as the
// interactive issue list behind the editor, and as JSON or SARIF documents.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/mdcheck/pkg/runner"
)

// Reporter formats and writes check results. It observes the run so that
// streaming formats can print each file as it is processed.
type Reporter interface {
	runner.Observer

	// Report writes the end-of-run output for result.
	// It returns the number of findings reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatSARIF:
		return NewSARIFReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// countFindings totals the findings of the readable files.
func countFindings(result *runner.Result) int {
	var total int
	for _, report := range result.Reports() {
		total += report.Len()
	}
	return total
}
