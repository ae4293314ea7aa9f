package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdcheck/internal/configloader"
	"github.com/yaklabco/mdcheck/internal/logging"
	"github.com/yaklabco/mdcheck/pkg/fsutil"
	"github.com/yaklabco/mdcheck/pkg/preview"
	"github.com/yaklabco/mdcheck/pkg/reporter"
	"github.com/yaklabco/mdcheck/pkg/runner"
)

// defaultWatchDebounce matches the editor preview delay.
const defaultWatchDebounce = 500 * time.Millisecond

type watchFlags struct {
	llm      bool
	output   string
	debounce time.Duration
}

func newWatchCommand(global *globalFlags, info BuildInfo) *cobra.Command {
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch <file.md>",
		Short: "Re-check a Markdown file every time it changes",
		Long: `Check a Markdown file, then check it again after each change until
interrupted. With --output the HTML preview is regenerated as well.

Examples:
  mdcheck watch README.md
  mdcheck watch README.md --llm -o readme.html`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0], global, flags, info)
		},
	}

	cmd.Flags().BoolVar(&flags.llm, "llm", false, "enable the AI check")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "regenerate an HTML preview at this path")
	cmd.Flags().DurationVar(&flags.debounce, "debounce", defaultWatchDebounce, "quiet period before re-checking")

	return cmd
}

// watcher re-checks one file. All fields are owned by the run loop.
type watcher struct {
	path    string
	checker *runner.Runner
	obs     runner.Observer
	preview *previewTarget
}

func runWatch(cmd *cobra.Command, path string, global *globalFlags, flags *watchFlags, info BuildInfo) error {
	ctx := commandContext(cmd)

	application, err := global.load(cmd, &configloader.Overrides{UseLLM: flags.llm}, info)
	if err != nil {
		return err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	stat, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("%w: %s", runner.ErrNotFound, path)
	}
	if !stat.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", runner.ErrNotRegular, path)
	}

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
	opts.Format = reporter.FormatText
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

	state := &watcher{path: absPath, checker: checker, obs: rep}
	if flags.output != "" {
		state.preview = &previewTarget{
			renderer: preview.New(preview.Options{Lang: application.cfg.Language}),
			output:   flags.output,
			stdout:   cmd.OutOrStdout(),
			stderr:   cmd.ErrOrStderr(),
			messages: application.messages,
		}
	}

	notify, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = notify.Close() }()

	// Editors often save by rename, so the directory is watched.
	if err := notify.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(absPath), err)
	}

	fmt.Fprintln(cmd.ErrOrStderr(), fmt.Sprintf(application.messages.Watchingf, path))
	state.check(ctx)

	debounce := flags.debounce
	if debounce <= 0 {
		debounce = defaultWatchDebounce
	}
	return state.loop(ctx, notify, debounce)
}

func (w *watcher) loop(ctx context.Context, notify *fsnotify.Watcher, debounce time.Duration) error {
	logger := logging.FromContext(ctx)

	trigger := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-notify.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("file changed", logging.FieldPath, event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.AfterFunc(debounce, func() {
					select {
					case trigger <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(debounce)
			}

		case err, ok := <-notify.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", logging.FieldError, err)

		case <-trigger:
			w.check(ctx)
		}
	}
}

// check runs one pass over the file. Read failures are reported and the
// watch continues.
func (w *watcher) check(ctx context.Context) {
	content, _, err := fsutil.ReadFile(ctx, w.path)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		w.obs.FileFailed(w.path, &runner.FileError{Path: w.path, Op: "read", Err: err})
		return
	}

	w.obs.FileStarted(w.path)
	w.checker.Check(ctx, w.path, string(content))

	if w.preview == nil {
		return
	}
	if err := writePreview(ctx, *w.preview, w.path, content); err != nil {
		logging.FromContext(ctx).Warn("preview failed", logging.FieldError, err)
	}
}
