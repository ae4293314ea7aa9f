package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdcheck/internal/logging"
	"github.com/yaklabco/mdcheck/pkg/fsutil"
	"github.com/yaklabco/mdcheck/pkg/locale"
	"github.com/yaklabco/mdcheck/pkg/preview"
)

type previewFlags struct {
	output  string
	rawHTML bool
}

func newPreviewCommand(global *globalFlags, info BuildInfo) *cobra.Command {
	flags := &previewFlags{}

	cmd := &cobra.Command{
		Use:   "preview <file.md>",
		Short: "Render a Markdown file as a standalone HTML page",
		Long: `Render a Markdown file as a standalone HTML page with GFM tables,
highlighted code fence classes and mermaid diagrams.

Examples:
  mdcheck preview README.md > readme.html
  mdcheck preview README.md -o readme.html`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := global.load(cmd, nil, info)
			if err != nil {
				return err
			}
			renderer := preview.New(preview.Options{RawHTML: flags.rawHTML, Lang: application.cfg.Language})

			source, _, err := fsutil.ReadFile(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			return writePreview(commandContext(cmd), previewTarget{
				renderer: renderer,
				output:   flags.output,
				stdout:   cmd.OutOrStdout(),
				stderr:   cmd.ErrOrStderr(),
				messages: application.messages,
			}, args[0], source)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the page to a file instead of stdout")
	cmd.Flags().BoolVar(&flags.rawHTML, "raw-html", false, "pass HTML embedded in the Markdown through unchanged")

	return cmd
}

// previewTarget is where a rendered page goes.
type previewTarget struct {
	renderer *preview.Renderer
	output   string
	stdout   io.Writer
	stderr   io.Writer
	messages *locale.Catalog
}

// writePreview renders source as a page titled after path. Without an
// output path the page goes to stdout.
func writePreview(ctx context.Context, target previewTarget, path string, source []byte) error {
	var page bytes.Buffer
	if err := target.renderer.RenderPage(&page, source, filepath.Base(path)); err != nil {
		return fmt.Errorf("render preview: %w", err)
	}

	if target.output == "" {
		if _, err := target.stdout.Write(page.Bytes()); err != nil {
			return fmt.Errorf("write preview: %w", err)
		}
		return nil
	}

	if _, err := fsutil.WriteAtomic(ctx, target.output, page.Bytes(), 0); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}
	fmt.Fprintln(target.stderr, fmt.Sprintf(target.messages.PreviewWrittenf, target.output))
	logging.FromContext(ctx).Debug("preview written", logging.FieldOutput, target.output, "bytes", page.Len())
	return nil
}
