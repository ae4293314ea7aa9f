package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mdcheck/pkg/analysis"
	"github.com/yaklabco/mdcheck/pkg/finding"
	"github.com/yaklabco/mdcheck/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string            `json:"version"`
	Files   []JSONFileResult  `json:"files"`
	Summary *analysis.Summary `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path     string        `json:"path"`
	Scope    string        `json:"scope,omitempty"`
	Findings []JSONFinding `json:"findings"`
	Error    string        `json:"error,omitempty"`
}

// JSONFinding represents a single finding.
type JSONFinding struct {
	Kind     string `json:"kind"`
	Source   string `json:"source"`
	Message  string `json:"message"`
	Line     int    `json:"line,omitempty"`
	RuleID   string `json:"ruleId,omitempty"`
	RuleName string `json:"ruleName,omitempty"`
	Subject  string `json:"subject,omitempty"`
	Related  string `json:"related,omitempty"`
	Category string `json:"category,omitempty"`
	Note     string `json:"note,omitempty"`
}

// JSONReporter formats results as one JSON document per run.
type JSONReporter struct {
	runner.NopObserver

	opts Options
	bw   *bufio.Writer
}

var _ Reporter = (*JSONReporter)(nil)

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	encoder.SetEscapeHTML(false)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.Totals.Findings, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: analysis.ReportVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: result.Summary(r.opts.WorkingDir),
	}
	if result == nil {
		return output
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:     analysis.RelativePath(file.Path, r.opts.WorkingDir),
			Findings: make([]JSONFinding, 0),
		}
		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}
		if file.Report != nil {
			fileResult.Scope = file.Report.Scope.String()
			for _, f := range file.Report.Findings {
				fileResult.Findings = append(fileResult.Findings, toJSONFinding(f))
			}
		}
		output.Files = append(output.Files, fileResult)
	}

	return output
}

func toJSONFinding(f finding.Finding) JSONFinding {
	return JSONFinding{
		Kind:     f.Kind.String(),
		Source:   string(f.Source),
		Message:  f.Message,
		Line:     f.Line,
		RuleID:   f.RuleID,
		RuleName: f.RuleName,
		Subject:  f.Subject,
		Related:  f.Related,
		Category: f.Category,
		Note:     f.Note,
	}
}
