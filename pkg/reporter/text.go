package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/mdcheck/internal/ui/pretty"
	"github.com/yaklabco/mdcheck/pkg/finding"
	"github.com/yaklabco/mdcheck/pkg/runner"
)

// termColumnWidth is the column the term surface is padded to.
const termColumnWidth = 20

// Placeholders for advisory fields the model left empty.
const (
	missingSurface  = "???"
	missingSpelling = "?"
	defaultCategory = "style"
)

// RenderText writes report as a titled block: a banner, one section per
// finding group, and a closing rule. Empty sections are omitted, except that
// the formatting section says so explicitly when the rules ran and found
// nothing.
func RenderText(w io.Writer, report *finding.Report, title string, opts Options) error {
	styles := pretty.NewStyles(pretty.IsColorEnabled(opts.Color, w))
	var buf strings.Builder
	newTextBlock(&buf, styles, opts).write(report, title, pretty.FitWidth(pretty.BannerWidth, w))

	if _, err := io.WriteString(w, buf.String()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

type textBlock struct {
	out    *strings.Builder
	styles *pretty.Styles
	opts   Options
}

func newTextBlock(out *strings.Builder, styles *pretty.Styles, opts Options) *textBlock {
	return &textBlock{out: out, styles: styles, opts: opts}
}

func (b *textBlock) write(report *finding.Report, title string, width int) {
	msgs := b.opts.messages()

	b.out.WriteString("\n")
	b.out.WriteString(b.styles.Banner.Render(pretty.Center(fmt.Sprintf(msgs.ReportTitlef, title), width, '=')))
	b.out.WriteString("\n")

	rules := report.OfKind(finding.RuleViolation)
	switch {
	case len(rules) > 0:
		b.section(msgs.SectionRules)
		for _, f := range rules {
			b.bullet(true, b.styles.Line.Render(fmt.Sprintf(msgs.LinePrefixf, f.Line))+f.Message)
		}
	case report.Scope.IncludesRules():
		b.section(msgs.SectionRules)
		b.out.WriteString(" " + b.styles.Success.Render(msgs.NoIssues) + "\n")
	}

	if terms := report.OfKind(finding.AdvisoryTerm); len(terms) > 0 {
		b.section(msgs.SectionTerms)
		for _, f := range terms {
			b.bullet(false, padRight(orDefault(f.Subject, missingSurface), termColumnWidth)+" | "+f.Note)
		}
	}

	if pairs := report.OfKind(finding.AdvisoryInconsistency); len(pairs) > 0 {
		b.section(msgs.SectionInconsistencies)
		for _, f := range pairs {
			b.bullet(false, fmt.Sprintf("%s <-> %s (%s)",
				orDefault(f.Subject, missingSpelling),
				orDefault(f.Related, missingSpelling),
				orDefault(f.Category, defaultCategory)))
			b.out.WriteString("   └─ " + b.styles.Note.Render(f.Note) + "\n")
		}
	}

	if suggestions := report.OfKind(finding.AdvisorySuggestion); len(suggestions) > 0 {
		b.section(msgs.SectionSuggestions)
		for _, f := range suggestions {
			b.bullet(false, f.Note)
		}
	}

	if errs := report.OfKind(finding.AdvisoryError); len(errs) > 0 {
		b.section(msgs.SectionErrors)
		for _, f := range errs {
			b.bullet(false, b.styles.Error.Render(f.Message))
			b.out.WriteString("   " + b.styles.Hint.Render(msgs.AdvisoryHint) + "\n")
		}
	}

	b.out.WriteString("\n")
	b.out.WriteString(b.styles.Banner.Render(pretty.HorizontalRule(width, '=')))
	b.out.WriteString("\n\n")
}

func (b *textBlock) section(name string) {
	b.out.WriteString("\n" + b.styles.Section.Render("["+name+"]") + "\n")
}

func (b *textBlock) bullet(rule bool, text string) {
	marker := b.styles.Advisory.Render("•")
	if rule {
		marker = b.styles.Rule.Render("•")
	}
	b.out.WriteString(" " + marker + " " + text + "\n")
}

// padRight pads s with spaces to width runes.
func padRight(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// TextReporter prints each file's reports as the run progresses, followed by
// an optional one-line summary.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
	width  int
	err    error
}

var _ Reporter = (*TextReporter)(nil)

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
		width:  pretty.FitWidth(pretty.BannerWidth, opts.Writer),
	}
}

// DirectoryScanned implements runner.Observer.
func (r *TextReporter) DirectoryScanned(dir string, files int) {
	msgs := r.opts.messages()
	if files == 0 {
		r.printf("%s\n", fmt.Sprintf(msgs.NoMarkdownFilesf, dir))
		return
	}
	r.printf("%s\n\n", fmt.Sprintf(msgs.FoundFilesf, dir, files))
}

// FileStarted implements runner.Observer.
func (r *TextReporter) FileStarted(path string) {
	r.printf("%s\n", fmt.Sprintf(r.opts.messages().Checkingf, r.styles.FilePath.Render(path)))
}

// FileFailed implements runner.Observer.
func (r *TextReporter) FileFailed(_ string, err error) {
	r.printf("%s\n", r.styles.Error.Render(fmt.Sprintf(r.opts.messages().ReadErrorf, err)))
}

// RulesDone implements runner.Observer.
func (r *TextReporter) RulesDone(_ string, report *finding.Report) {
	r.block(report, r.opts.messages().RulesSourceLabel)
}

// AdvisoryStarted implements runner.Observer.
func (r *TextReporter) AdvisoryStarted(string) {
	r.printf("%s\n", r.styles.Dim.Render(r.opts.messages().WaitingForModel))
}

// AdvisoryDone implements runner.Observer.
func (r *TextReporter) AdvisoryDone(_ string, report *finding.Report) {
	r.block(report, fmt.Sprintf(r.opts.messages().AdvisorySourceLabelf, r.opts.Model))
}

// AdvisorySkipped implements runner.Observer.
func (r *TextReporter) AdvisorySkipped(string) {
	r.printf("%s\n\n", r.styles.Dim.Render(r.opts.messages().AdvisorySkipped))
}

// Report implements Reporter. Per-file output has already been written by
// the observer methods; this reports the first write error and, when
// enabled, the run totals.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if r.opts.ShowSummary && result != nil && len(result.Files) > 0 {
		r.printf("%s", r.styles.FormatSummaryOneLine(result.Summary(r.opts.WorkingDir).Totals))
	}
	if r.err != nil {
		return 0, r.err
	}
	return countFindings(result), nil
}

func (r *TextReporter) block(report *finding.Report, title string) {
	var buf strings.Builder
	newTextBlock(&buf, r.styles, r.opts).write(report, title, r.width)
	r.printf("%s", buf.String())
}

// printf writes and flushes so that progress appears before long model calls.
func (r *TextReporter) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	if _, err := fmt.Fprintf(r.bw, format, args...); err != nil {
		r.err = fmt.Errorf("write report: %w", err)
		return
	}
	if err := r.bw.Flush(); err != nil {
		r.err = fmt.Errorf("flush report: %w", err)
	}
}
