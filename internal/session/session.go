// Package session is the headless model behind the editor window: the
// document buffer, the issue list, status messages, file open and save,
// the debounced preview and background advisory runs.
//
// A Session is owned by one goroutine (the UI loop). Background work never
// touches session state; it sends an Update on the Updates channel and the
// owner passes it to Apply.
package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/mdcheck/internal/logging"
	"github.com/yaklabco/mdcheck/pkg/advisory"
	"github.com/yaklabco/mdcheck/pkg/analysis"
	"github.com/yaklabco/mdcheck/pkg/finding"
	"github.com/yaklabco/mdcheck/pkg/fsutil"
	"github.com/yaklabco/mdcheck/pkg/lint"
	"github.com/yaklabco/mdcheck/pkg/locale"
	"github.com/yaklabco/mdcheck/pkg/preview"
	"github.com/yaklabco/mdcheck/pkg/reporter"
)

// DefaultDebounce is the quiet period before the preview is refreshed.
const DefaultDebounce = 500 * time.Millisecond

// updateBuffer is the capacity of the Updates channel.
const updateBuffer = 8

var (
	// ErrNoPath is returned by Save when the document was never saved;
	// the caller should ask for a name and use SaveAs.
	ErrNoPath = errors.New("document has no file name")

	// ErrNoAnalyzer is reported when the AI check is not configured.
	ErrNoAnalyzer = errors.New("AI check is not configured")
)

// Options configures a Session.
type Options struct {
	// Engine runs the rule checks. Required.
	Engine *lint.Engine

	// Analyzer runs the AI check. Nil disables RunAdvisory.
	Analyzer advisory.Analyzer

	// Messages is the message catalog. Nil means English.
	Messages *locale.Catalog

	// Preview renders the preview page. Nil disables the preview.
	Preview *preview.Renderer

	// Debounce overrides DefaultDebounce.
	Debounce time.Duration

	// Logger receives diagnostics. Nil uses the default logger.
	Logger *log.Logger
}

// UpdateKind identifies what an Update carries.
type UpdateKind int

const (
	// UpdatePreview carries a freshly rendered preview page.
	UpdatePreview UpdateKind = iota

	// UpdateAdvisory carries the outcome of a background AI check.
	UpdateAdvisory
)

// Update is the result of background work, applied on the owner goroutine.
type Update struct {
	Kind UpdateKind

	// Preview is the rendered page for UpdatePreview.
	Preview []byte

	// Report is the advisory report for UpdateAdvisory.
	Report *finding.Report

	// Err is the rendering or advisory error, if any.
	Err error

	seq uint64
}

// Session is the state of one editor window.
type Session struct {
	opts       Options
	messages   *locale.Catalog
	aggregator *analysis.Aggregator
	logger     *log.Logger

	doc    *Document
	path   string
	info   *fsutil.FileInfo
	status string
	issues reporter.List

	previewHTML []byte
	previewSeq  uint64

	busy    atomic.Bool
	updates chan Update
	done    chan struct{}

	// mu guards the preview timer, the advisory cancel func and closed.
	mu             sync.Mutex
	timer          *time.Timer
	cancelAdvisory context.CancelFunc
	closed         bool
	wg             sync.WaitGroup
}

// New creates an empty, untitled session.
func New(opts Options) (*Session, error) {
	if opts.Engine == nil {
		return nil, errors.New("session: engine is required")
	}
	if opts.Messages == nil {
		opts.Messages = &locale.English
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}

	return &Session{
		opts:       opts,
		messages:   opts.Messages,
		aggregator: analysis.NewAggregator(opts.Messages),
		logger:     opts.Logger,
		doc:        NewDocument(""),
		status:     opts.Messages.StatusReady,
		updates:    make(chan Update, updateBuffer),
		done:       make(chan struct{}),
	}, nil
}

// Updates delivers background results. The owner passes each to Apply.
func (s *Session) Updates() <-chan Update {
	return s.updates
}

// Document returns the editor buffer.
func (s *Session) Document() *Document {
	return s.doc
}

// Path returns the current file path, or "" for an untitled document.
func (s *Session) Path() string {
	return s.path
}

// Title returns the window title.
func (s *Session) Title() string {
	if s.path == "" {
		return s.messages.WindowTitle
	}
	return fmt.Sprintf(s.messages.WindowTitlef, filepath.Base(s.path))
}

// Status returns the status bar message.
func (s *Session) Status() string {
	return s.status
}

// Issues returns the issue list.
func (s *Session) Issues() reporter.List {
	return s.issues
}

// Busy reports whether an AI check is in flight.
func (s *Session) Busy() bool {
	return s.busy.Load()
}

// PreviewHTML returns the last applied preview page.
func (s *Session) PreviewHTML() []byte {
	return s.previewHTML
}

// JumpToLine moves the editor cursor to a 1-based line.
func (s *Session) JumpToLine(line int) {
	s.doc.JumpToLine(line)
}

// Activate activates the issue at index, jumping to its line when it has one.
func (s *Session) Activate(index int) {
	if index < 0 || index >= s.issues.Len() {
		return
	}
	s.issues.Items[index].Activate(s.doc)
}

// SetText replaces the buffer and schedules a preview refresh.
func (s *Session) SetText(text string) {
	s.doc.SetText(text)
	s.schedulePreview(text)
}

// Open loads a Markdown file into the buffer.
func (s *Session) Open(ctx context.Context, path string) error {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		s.status = fmt.Sprintf(s.messages.StatusErrorf, err)
		s.logger.Error("open failed", logging.FieldPath, path, logging.FieldError, err)
		return fmt.Errorf("open %s: %w", path, err)
	}

	s.path = path
	s.info = info
	s.doc = NewDocument(string(content))
	s.status = fmt.Sprintf(s.messages.StatusLoadedf, filepath.Base(path))
	s.schedulePreview(s.doc.Text())
	return nil
}

// Save writes the buffer to the current file.
func (s *Session) Save(ctx context.Context) error {
	if s.path == "" {
		return ErrNoPath
	}
	return s.save(ctx, s.path)
}

// SaveAs writes the buffer to path and makes it the current file.
func (s *Session) SaveAs(ctx context.Context, path string) error {
	if err := s.save(ctx, path); err != nil {
		return err
	}
	s.path = path
	return nil
}

func (s *Session) save(ctx context.Context, path string) error {
	modified := false
	if s.info != nil && s.info.Path == path {
		changed, err := fsutil.CheckModified(ctx, s.info)
		if err == nil && changed {
			modified = true
			s.logger.Warn("file changed on disk; overwriting", logging.FieldPath, path)
		}
	}

	info, err := fsutil.WriteAtomic(ctx, path, []byte(s.doc.Text()), 0)
	if err != nil {
		s.status = fmt.Sprintf(s.messages.StatusSaveErrorf, err)
		s.logger.Error("save failed", logging.FieldPath, path, logging.FieldError, err)
		return fmt.Errorf("save %s: %w", path, err)
	}

	s.info = info
	s.status = fmt.Sprintf(s.messages.StatusSavedf, filepath.Base(path))
	if modified {
		s.status = s.messages.StatusModifiedOnDisk
	}
	return nil
}

// RunRules clears the issue list and runs the rule checks.
func (s *Session) RunRules() {
	s.issues = reporter.List{}
	s.runRules()
}

func (s *Session) runRules() {
	s.status = s.messages.StatusRulesRunning

	report := s.aggregator.RulesOnly(s.path, s.opts.Engine.Lint(s.doc.Text()))
	list := reporter.Items(report, s.messages)
	s.issues.Items = append(s.issues.Items, list.Items...)
	s.issues.EmptyText = list.EmptyText

	if count := report.Len(); count > 0 {
		s.status = fmt.Sprintf(s.messages.StatusRulesDonef, count)
	} else {
		s.status = s.messages.StatusRulesClean
	}
}

// RunAdvisory starts the AI check in the background and returns
// immediately. It reports false when a check is already running or no
// analyzer is configured. The result arrives as an UpdateAdvisory and its
// items are appended to the issue list.
func (s *Session) RunAdvisory(ctx context.Context) bool {
	if s.opts.Analyzer == nil {
		s.status = fmt.Sprintf(s.messages.StatusAdvisoryErrorf, ErrNoAnalyzer)
		return false
	}
	if !s.busy.CompareAndSwap(false, true) {
		s.status = s.messages.StatusAdvisoryBusy
		return false
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.busy.Store(false)
		return false
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancelAdvisory = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	s.status = s.messages.StatusAdvisoryRunning

	text := s.doc.Text()
	path := s.path
	go func() {
		defer s.wg.Done()
		defer cancel()

		start := time.Now()
		result, err := s.opts.Analyzer.Analyze(ctx, text)
		report := s.aggregator.AdvisoryOnly(path, &analysis.Advice{Result: result, Err: err})
		s.logger.Debug("AI check finished",
			logging.FieldDuration, time.Since(start),
			logging.FieldFindings, report.Len())

		s.send(Update{Kind: UpdateAdvisory, Report: report, Err: err})
	}()
	return true
}

// RunAll clears the issue list once, runs the rules and starts the AI check.
func (s *Session) RunAll(ctx context.Context) bool {
	s.issues = reporter.List{}
	s.runRules()
	return s.RunAdvisory(ctx)
}

// Apply folds a background result into the session. Call it only from the
// goroutine that owns the session.
func (s *Session) Apply(update Update) {
	switch update.Kind {
	case UpdatePreview:
		if update.seq != s.previewSeq {
			return
		}
		if update.Err != nil {
			s.logger.Warn("preview failed", logging.FieldError, update.Err)
			return
		}
		s.previewHTML = update.Preview

	case UpdateAdvisory:
		s.busy.Store(false)
		list := reporter.Items(update.Report, s.messages)
		s.issues.Items = append(s.issues.Items, list.Items...)

		if update.Err != nil {
			s.status = fmt.Sprintf(s.messages.StatusAdvisoryErrorf, update.Err)
			return
		}
		s.status = fmt.Sprintf(s.messages.StatusAdvisoryDonef, update.Report.Len())
	}
}

// Close stops the preview timer, cancels a running AI check and waits for
// background work. Pending updates are dropped.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.stopTimer()
	if s.cancelAdvisory != nil {
		s.cancelAdvisory()
	}
	close(s.done)
	s.mu.Unlock()

	s.wg.Wait()
}

// schedulePreview restarts the debounce timer. Only the render for the
// latest text is applied.
func (s *Session) schedulePreview(text string) {
	if s.opts.Preview == nil {
		return
	}
	s.previewSeq++
	seq := s.previewSeq
	title := s.Title()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.stopTimer()
	s.wg.Add(1)
	s.timer = time.AfterFunc(s.opts.Debounce, func() {
		defer s.wg.Done()
		s.send(s.renderPreview(text, title, seq))
	})
}

// stopTimer cancels a pending preview. The caller holds mu.
func (s *Session) stopTimer() {
	if s.timer != nil && s.timer.Stop() {
		s.wg.Done()
	}
}

func (s *Session) renderPreview(text, title string, seq uint64) Update {
	var buf bytes.Buffer
	var err error
	if text == "" {
		err = s.opts.Preview.RenderPlaceholder(&buf, s.messages.PreviewPlaceholder, title)
	} else {
		err = s.opts.Preview.RenderPage(&buf, []byte(text), title)
	}
	return Update{Kind: UpdatePreview, Preview: buf.Bytes(), Err: err, seq: seq}
}

func (s *Session) send(update Update) {
	select {
	case s.updates <- update:
	case <-s.done:
	}
}
