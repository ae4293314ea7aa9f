package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/mdcheck/pkg/locale"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// Compact uses minified output where applicable.
	Compact bool

	// ShowSummary prints run totals after the per-file reports (text format).
	ShowSummary bool

	// Model labels the advisory report title.
	Model string

	// Messages is the catalog for titles and section names. Nil means English.
	Messages *locale.Catalog

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is.
	WorkingDir string

	// Version is the tool version recorded in SARIF output.
	Version string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:   os.Stdout,
		Format:   FormatText,
		Color:    "auto",
		Messages: &locale.English,
	}
}

func (o Options) messages() *locale.Catalog {
	if o.Messages == nil {
		return &locale.English
	}
	return o.Messages
}
