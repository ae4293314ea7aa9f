package finding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcheck/pkg/finding"
)

func TestConstructorsHoldLineInvariant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		finding  finding.Finding
		wantLine bool
	}{
		{name: "violation", finding: finding.NewViolation("MDC001", "heading-space", 3, "msg"), wantLine: true},
		{name: "violation clamps zero line", finding: finding.NewViolation("MDC001", "heading-space", 0, "msg"), wantLine: true},
		{name: "term", finding: finding.NewTerm("Go", "language", "msg")},
		{name: "inconsistency", finding: finding.NewInconsistency("style", "a", "b", "note", "msg")},
		{name: "suggestion", finding: finding.NewSuggestion("text", "msg")},
		{name: "error", finding: finding.NewAdvisoryError("boom")},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			require.NoError(t, testCase.finding.Validate())
			assert.Equal(t, testCase.wantLine, testCase.finding.HasLine())
			assert.Equal(t, !testCase.wantLine, testCase.finding.IsAdvisory())
		})
	}
}

func TestValidateRejectsBrokenFindings(t *testing.T) {
	t.Parallel()

	missing := finding.Finding{Kind: finding.RuleViolation, Source: finding.SourceRules}
	require.ErrorIs(t, missing.Validate(), finding.ErrMissingLine)

	anchored := finding.NewSuggestion("x", "x")
	anchored.Line = 4
	require.ErrorIs(t, anchored.Validate(), finding.ErrUnexpectedLine)

	mixed := finding.Finding{Kind: finding.AdvisoryTerm, Source: finding.SourceRules}
	require.ErrorIs(t, mixed.Validate(), finding.ErrSourceMismatch)
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "rule-violation", finding.RuleViolation.String())
	assert.Equal(t, "advisory-error", finding.AdvisoryError.String())
	assert.Equal(t, "Kind(42)", finding.Kind(42).String())
}

func TestReportQueries(t *testing.T) {
	t.Parallel()

	report := &finding.Report{
		Scope: finding.ScopeMerged,
		Findings: []finding.Finding{
			finding.NewViolation("MDC002", "no-trailing-whitespace", 1, "a"),
			finding.NewTerm("Go", "", "b"),
			finding.NewViolation("MDC003", "no-todo", 2, "c"),
			finding.NewSuggestion("s", "d"),
		},
	}

	assert.Equal(t, 4, report.Len())
	assert.Len(t, report.OfKind(finding.RuleViolation), 2)
	assert.Equal(t, "c", report.OfKind(finding.RuleViolation)[1].Message)
	assert.Len(t, report.FromSource(finding.SourceAdvisory), 2)
	assert.Equal(t, map[finding.Source]int{finding.SourceRules: 2, finding.SourceAdvisory: 2}, report.CountBySource())
	assert.True(t, report.Scope.IncludesRules())
	assert.True(t, report.Scope.IncludesAdvisory())

	var nilReport *finding.Report
	assert.True(t, nilReport.Empty())
	assert.Nil(t, nilReport.OfKind(finding.AdvisoryTerm))
}
