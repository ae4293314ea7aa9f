// Package finding defines the unified record shared by rule-based checks and
// model advice, and the ordered report that collects them.
package finding

import (
	"errors"
	"fmt"
)

// Kind classifies a finding.
type Kind int

// Finding kinds, in report order.
const (
	RuleViolation Kind = iota
	AdvisoryTerm
	AdvisoryInconsistency
	AdvisorySuggestion
	AdvisoryError
)

// String returns the stable identifier used in JSON and SARIF output.
func (k Kind) String() string {
	switch k {
	case RuleViolation:
		return "rule-violation"
	case AdvisoryTerm:
		return "advisory-term"
	case AdvisoryInconsistency:
		return "advisory-inconsistency"
	case AdvisorySuggestion:
		return "advisory-suggestion"
	case AdvisoryError:
		return "advisory-error"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Source identifies which engine produced a finding.
type Source string

const (
	SourceRules    Source = "rules"
	SourceAdvisory Source = "advisory"
)

// Finding is a single detected issue.
type Finding struct {
	// Kind classifies the finding.
	Kind Kind

	// Source is the engine that produced the finding.
	Source Source

	// Message is the localized, human-readable description.
	Message string

	// Line is the 1-based line number. Zero means the finding is not anchored.
	Line int

	// RuleID and RuleName identify the check behind a rule violation.
	RuleID   string
	RuleName string

	// Subject, Related, Category and Note carry the structured advisory payload:
	// a term's surface form, the two spellings of an inconsistency and its
	// category, and the model's explanation.
	Subject  string
	Related  string
	Category string
	Note     string
}

// Errors returned by Validate.
var (
	ErrMissingLine    = errors.New("rule violation without a line number")
	ErrUnexpectedLine = errors.New("advisory finding with a line number")
	ErrSourceMismatch = errors.New("finding kind does not match its source")
)

// HasLine reports whether the finding is anchored to a line.
func (f *Finding) HasLine() bool {
	return f.Line > 0
}

// IsAdvisory reports whether the finding came from the model.
func (f *Finding) IsAdvisory() bool {
	return f.Source == SourceAdvisory
}

// Validate checks the line/kind invariant: rule violations always carry a
// line, advisory findings never do.
func (f *Finding) Validate() error {
	if f.Kind == RuleViolation {
		if f.Source != SourceRules {
			return ErrSourceMismatch
		}
		if !f.HasLine() {
			return ErrMissingLine
		}
		return nil
	}
	if f.Source != SourceAdvisory {
		return ErrSourceMismatch
	}
	if f.Line != 0 {
		return ErrUnexpectedLine
	}
	return nil
}

// NewViolation creates a rule violation at the given 1-based line.
// Lines below 1 are clamped to 1 so the invariant always holds.
func NewViolation(ruleID, ruleName string, line int, message string) Finding {
	if line < 1 {
		line = 1
	}
	return Finding{
		Kind:     RuleViolation,
		Source:   SourceRules,
		Message:  message,
		Line:     line,
		RuleID:   ruleID,
		RuleName: ruleName,
	}
}

// NewTerm creates a term / proper-noun finding.
func NewTerm(surface, note, message string) Finding {
	return Finding{
		Kind:    AdvisoryTerm,
		Source:  SourceAdvisory,
		Message: message,
		Subject: surface,
		Note:    note,
	}
}

// NewInconsistency creates a spelling-inconsistency finding between a and b.
func NewInconsistency(category, a, b, note, message string) Finding {
	return Finding{
		Kind:     AdvisoryInconsistency,
		Source:   SourceAdvisory,
		Message:  message,
		Subject:  a,
		Related:  b,
		Category: category,
		Note:     note,
	}
}

// NewSuggestion creates a free-text model suggestion.
func NewSuggestion(text, message string) Finding {
	return Finding{
		Kind:    AdvisorySuggestion,
		Source:  SourceAdvisory,
		Message: message,
		Note:    text,
	}
}

// NewAdvisoryError records that the advisory path failed.
func NewAdvisoryError(message string) Finding {
	return Finding{
		Kind:    AdvisoryError,
		Source:  SourceAdvisory,
		Message: message,
	}
}
