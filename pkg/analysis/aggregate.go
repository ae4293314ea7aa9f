// Package analysis merges rule findings and model advice into one ordered
// report, and computes run-level summaries for the machine-readable formats.
package analysis

import (
	"fmt"

	"github.com/yaklabco/mdcheck/pkg/advisory"
	"github.com/yaklabco/mdcheck/pkg/finding"
	"github.com/yaklabco/mdcheck/pkg/locale"
)

// Advice is the outcome of one advisory call. Exactly one of Result and Err
// is normally set; a nil Result without an error is treated as a failure.
type Advice struct {
	Result *advisory.Result
	Err    error
}

// Aggregator builds reports using one message catalog.
type Aggregator struct {
	messages *locale.Catalog
}

// NewAggregator creates an Aggregator. A nil catalog means English.
func NewAggregator(msgs *locale.Catalog) *Aggregator {
	if msgs == nil {
		msgs = &locale.English
	}
	return &Aggregator{messages: msgs}
}

// Aggregate concatenates rule findings and advice into a report. It never
// fails: a nil advice means the advisory path was not requested, and a failed
// advice becomes a single AdvisoryError finding.
func (a *Aggregator) Aggregate(path string, rules []finding.Finding, advice *Advice) *finding.Report {
	report := &finding.Report{Path: path, Scope: finding.ScopeRules}

	report.Findings = make([]finding.Finding, 0, len(rules))
	report.Findings = append(report.Findings, rules...)

	if advice != nil {
		report.Scope = finding.ScopeMerged
		report.Findings = append(report.Findings, a.adviceFindings(advice)...)
	}
	return report
}

// RulesOnly builds the report for the rule engine alone.
func (a *Aggregator) RulesOnly(path string, rules []finding.Finding) *finding.Report {
	return a.Aggregate(path, rules, nil)
}

// AdvisoryOnly builds the report for the model alone.
func (a *Aggregator) AdvisoryOnly(path string, advice *Advice) *finding.Report {
	if advice == nil {
		advice = &Advice{}
	}
	return &finding.Report{
		Path:     path,
		Scope:    finding.ScopeAdvisory,
		Findings: a.adviceFindings(advice),
	}
}

// adviceFindings converts advice into findings: terms, then inconsistencies,
// then suggestions, or a single error finding.
func (a *Aggregator) adviceFindings(advice *Advice) []finding.Finding {
	if advice.Err != nil {
		return []finding.Finding{
			finding.NewAdvisoryError(fmt.Sprintf(a.messages.AdvisoryErrorf, advice.Err.Error())),
		}
	}
	if advice.Result == nil {
		return []finding.Finding{
			finding.NewAdvisoryError(fmt.Sprintf(a.messages.AdvisoryErrorf, a.messages.MissingResult)),
		}
	}

	result := advice.Result
	out := make([]finding.Finding, 0, result.Len())
	for _, term := range result.Terms {
		out = append(out, finding.NewTerm(term.Surface, term.Note, joinNote(term.Surface, term.Note)))
	}
	for _, inc := range result.Inconsistencies {
		pair := inc.A + " <-> " + inc.B
		out = append(out, finding.NewInconsistency(inc.Kind, inc.A, inc.B, inc.Note, joinNote(pair, inc.Note)))
	}
	for _, text := range result.Suggestions {
		out = append(out, finding.NewSuggestion(text, text))
	}
	return out
}

func joinNote(subject, note string) string {
	if note == "" {
		return subject
	}
	return subject + ": " + note
}

// Aggregate is a convenience wrapper using the English catalog.
func Aggregate(path string, rules []finding.Finding, advice *Advice) *finding.Report {
	return NewAggregator(nil).Aggregate(path, rules, advice)
}
