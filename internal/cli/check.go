package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdcheck/internal/configloader"
	"github.com/yaklabco/mdcheck/internal/logging"
	"github.com/yaklabco/mdcheck/pkg/advisory"
	"github.com/yaklabco/mdcheck/pkg/reporter"
	"github.com/yaklabco/mdcheck/pkg/runner"
)

// errPathRequired is reported when the root command runs without a path.
var errPathRequired = errors.New("a Markdown file or directory is required")

type checkFlags struct {
	llm              bool
	pullModel        bool
	format           string
	strict           bool
	summary          bool
	ignoreCodeBlocks bool
	disable          []string
}

const checkLongDescription = `Check a Markdown file, or every .md file directly inside a directory.

The rule checks always run: missing space after a heading marker, trailing
whitespace, and TODO/FIXME markers. With --llm the document is also sent to
a local Ollama-compatible model for terminology, consistency and style advice.

Examples:
  mdcheck README.md              # Check one file
  mdcheck docs/                  # Check every .md file in docs/
  mdcheck README.md --llm        # Add the AI check
  mdcheck --pull-model           # Download the configured model and exit
  mdcheck docs/ --format sarif   # One SARIF document for CI
  mdcheck docs/ --strict         # Exit 1 when anything was reported`

func addCheckFlags(cmd *cobra.Command, flags *checkFlags) {
	cmd.Flags().BoolVar(&flags.llm, "llm", false, "enable the AI check")
	cmd.Flags().BoolVar(&flags.pullModel, "pull-model", false, "pull the configured model and exit")
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, json, sarif")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit 1 when any finding was reported")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print run totals after a single-file check")
	cmd.Flags().BoolVar(&flags.ignoreCodeBlocks, "ignore-code-blocks", false,
		"skip heading checks inside fenced code blocks")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs or names to disable")
}

func (f *checkFlags) overrides(cmd *cobra.Command) *configloader.Overrides {
	overrides := &configloader.Overrides{
		Format:  f.format,
		Disable: f.disable,
		UseLLM:  f.llm,
		Strict:  f.strict,
	}
	if cmd.Flags().Changed("ignore-code-blocks") {
		value := f.ignoreCodeBlocks
		overrides.IgnoreCodeBlocks = &value
	}
	return overrides
}

func runCheck(cmd *cobra.Command, args []string, global *globalFlags, flags *checkFlags, info BuildInfo) error {
	ctx := commandContext(cmd)

	application, err := global.load(cmd, flags.overrides(cmd), info)
	if err != nil {
		return err
	}

	if flags.pullModel {
		return runPull(cmd, application)
	}

	if len(args) == 0 {
		_ = cmd.Usage()
		return &usageError{err: errPathRequired}
	}
	path := args[0]

	engine, err := application.engine()
	if err != nil {
		return err
	}
	analyzer, err := application.analyzer()
	if err != nil {
		return err
	}

	opts, err := application.reporterOptions(cmd.OutOrStdout(), global.color)
	if err != nil {
		return err
	}
	stat, statErr := os.Stat(path)
	opts.ShowSummary = flags.summary || (statErr == nil && stat.IsDir())

	rep, err := reporter.New(opts)
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	checker, err := runner.New(runner.Options{
		Engine:   engine,
		Analyzer: analyzer,
		Messages: application.messages,
		Observer: rep,
	})
	if err != nil {
		return fmt.Errorf("create runner: %w", err)
	}

	application.logger.Debug("starting check",
		logging.FieldPath, path,
		"llm", analyzer != nil,
		"format", opts.Format)

	result, err := checker.Run(ctx, path)
	if err != nil {
		return fmt.Errorf("check %s: %w", path, err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if application.cfg.Strict && result.HasFindings() {
		return ErrFindingsReported
	}
	return nil
}

// runPull asks the server to download the configured model.
func runPull(cmd *cobra.Command, application *app) error {
	client, err := application.client()
	if err != nil {
		return err
	}

	msgs := application.messages
	out := cmd.OutOrStdout()
	model := client.Model()
	fmt.Fprintln(out, fmt.Sprintf(msgs.PullingModelf, model))

	result, err := client.EnsureModel(commandContext(cmd), func(progress advisory.PullProgress) {
		application.logger.Debug("pull progress",
			logging.FieldStatus, progress.Status,
			"completed", progress.Completed,
			"total", progress.Total)
	})
	if err != nil {
		return fmt.Errorf("pull model %s: %w", model, err)
	}

	if result.Warning != "" {
		fmt.Fprintln(out, fmt.Sprintf(msgs.PullWarningf, result.Warning))
	}
	fmt.Fprintln(out, fmt.Sprintf(msgs.ModelPulledf, model))
	return nil
}
