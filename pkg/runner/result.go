package runner

import (
	"github.com/yaklabco/mdcheck/pkg/analysis"
	"github.com/yaklabco/mdcheck/pkg/finding"
)

// FileOutcome is the result of checking one file.
type FileOutcome struct {
	// Path is the file that was processed.
	Path string

	// Report merges the rule findings and, when requested, the advice.
	// Nil when the file could not be read.
	Report *finding.Report

	// Error is set if the file could not be read.
	Error error
}

// Result is the overall run result.
type Result struct {
	// Target is the resolved command-line path.
	Target *Target

	// Files holds one outcome per processed file in processing order.
	Files []FileOutcome
}

// Reports returns the reports of the files that could be read.
func (r *Result) Reports() []*finding.Report {
	if r == nil {
		return nil
	}
	out := make([]*finding.Report, 0, len(r.Files))
	for _, file := range r.Files {
		if file.Report != nil {
			out = append(out, file.Report)
		}
	}
	return out
}

// ReadErrors returns the number of files that could not be read.
func (r *Result) ReadErrors() int {
	if r == nil {
		return 0
	}
	var count int
	for _, file := range r.Files {
		if file.Error != nil {
			count++
		}
	}
	return count
}

// HasFindings reports whether any file produced a finding.
func (r *Result) HasFindings() bool {
	for _, report := range r.Reports() {
		if !report.Empty() {
			return true
		}
	}
	return false
}

// Summary computes run totals with paths relative to workDir.
func (r *Result) Summary(workDir string) *analysis.Summary {
	return analysis.Summarize(r.Reports(), r.ReadErrors(), workDir)
}
