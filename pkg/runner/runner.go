package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/mdcheck/pkg/analysis"
	"github.com/yaklabco/mdcheck/pkg/finding"
	"github.com/yaklabco/mdcheck/pkg/fsutil"
)

// ErrNoEngine is returned when Options.Engine is nil.
var ErrNoEngine = errors.New("runner: no rule engine configured")

// Runner checks files one at a time.
type Runner struct {
	opts       Options
	aggregator *analysis.Aggregator
}

// New creates a Runner.
func New(opts Options) (*Runner, error) {
	if opts.Engine == nil {
		return nil, ErrNoEngine
	}
	return &Runner{
		opts:       opts,
		aggregator: analysis.NewAggregator(opts.Messages),
	}, nil
}

// Run resolves path and checks every file it names. Unreadable files are
// reported through the observer and recorded in the result; processing
// continues with the next file. Only path resolution and cancellation
// produce an error.
func (r *Runner) Run(ctx context.Context, path string) (*Result, error) {
	target, err := Resolve(ctx, path)
	if err != nil {
		return nil, err
	}

	obs := r.opts.observer()
	if target.IsDir {
		obs.DirectoryScanned(target.Path, len(target.Files))
	}

	result := &Result{
		Target: target,
		Files:  make([]FileOutcome, 0, len(target.Files)),
	}
	for _, file := range target.Files {
		if ctx.Err() != nil {
			return result, fmt.Errorf("run cancelled: %w", ctx.Err())
		}
		result.Files = append(result.Files, r.CheckFile(ctx, file))
	}
	return result, nil
}

// CheckFile reads and checks one file. A read failure is reported to the
// observer and returned in the outcome as a *FileError.
func (r *Runner) CheckFile(ctx context.Context, path string) FileOutcome {
	obs := r.opts.observer()
	obs.FileStarted(path)

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		fileErr := &FileError{Path: path, Op: "read", Err: err}
		obs.FileFailed(path, fileErr)
		return FileOutcome{Path: path, Error: fileErr}
	}

	report := r.Check(ctx, path, string(content))
	return FileOutcome{Path: path, Report: report}
}

// Check runs the rules and, when an analyzer is configured, the model over
// text. The observer sees the two single-source reports; the merged report
// is returned.
func (r *Runner) Check(ctx context.Context, path, text string) *finding.Report {
	obs := r.opts.observer()

	rules := r.opts.Engine.Lint(text)
	obs.RulesDone(path, r.aggregator.RulesOnly(path, rules))

	if r.opts.Analyzer == nil {
		obs.AdvisorySkipped(path)
		return r.aggregator.Aggregate(path, rules, nil)
	}

	obs.AdvisoryStarted(path)
	result, err := r.opts.Analyzer.Analyze(ctx, text)
	advice := &analysis.Advice{Result: result, Err: err}
	obs.AdvisoryDone(path, r.aggregator.AdvisoryOnly(path, advice))

	return r.aggregator.Aggregate(path, rules, advice)
}
