package analysis_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcheck/pkg/advisory"
	"github.com/yaklabco/mdcheck/pkg/analysis"
	"github.com/yaklabco/mdcheck/pkg/finding"
	"github.com/yaklabco/mdcheck/pkg/locale"
)

func sampleRules() []finding.Finding {
	return []finding.Finding{
		finding.NewViolation("MDC001", "heading-space", 1, "heading"),
		finding.NewViolation("MDC002", "no-trailing-whitespace", 2, "trailing"),
	}
}

func sampleAdvice() *advisory.Result {
	return &advisory.Result{
		Terms:           []advisory.Term{{Surface: "Ollama", Note: "product name"}},
		Inconsistencies: []advisory.Inconsistency{{Kind: "style", A: "e-mail", B: "email", Note: "pick one"}},
		Suggestions:     []string{"Shorten the intro", "Add a summary"},
	}
}

func TestAggregateOrder(t *testing.T) {
	t.Parallel()

	report := analysis.Aggregate("doc.md", sampleRules(), &analysis.Advice{Result: sampleAdvice()})

	assert.Equal(t, "doc.md", report.Path)
	assert.Equal(t, finding.ScopeMerged, report.Scope)

	var kinds []finding.Kind
	for _, f := range report.Findings {
		require.NoError(t, f.Validate())
		kinds = append(kinds, f.Kind)
	}
	want := []finding.Kind{
		finding.RuleViolation,
		finding.RuleViolation,
		finding.AdvisoryTerm,
		finding.AdvisoryInconsistency,
		finding.AdvisorySuggestion,
		finding.AdvisorySuggestion,
	}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("kind order mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "Ollama: product name", report.Findings[2].Message)
	assert.Equal(t, "e-mail <-> email: pick one", report.Findings[3].Message)
	assert.Equal(t, "style", report.Findings[3].Category)
	assert.Equal(t, "Add a summary", report.Findings[5].Note)
}

func TestAggregateWithoutAdvice(t *testing.T) {
	t.Parallel()

	report := analysis.Aggregate("doc.md", sampleRules(), nil)
	assert.Equal(t, finding.ScopeRules, report.Scope)
	assert.Equal(t, 2, report.Len())

	empty := analysis.Aggregate("", nil, nil)
	assert.True(t, empty.Empty())
	assert.NotNil(t, empty.Findings)
}

func TestAggregateAdvisoryFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		advice      *analysis.Advice
		wantMessage string
	}{
		{
			name:        "unavailable",
			advice:      &analysis.Advice{Err: fmt.Errorf("analyze: %w", advisory.ErrUnavailable)},
			wantMessage: "AI check error: analyze: advisory service unavailable",
		},
		{
			name:        "missing result",
			advice:      &analysis.Advice{},
			wantMessage: "AI check error: the model returned no result",
		},
		{
			name:        "error wins over result",
			advice:      &analysis.Advice{Result: sampleAdvice(), Err: errors.New("boom")},
			wantMessage: "AI check error: boom",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			report := analysis.Aggregate("doc.md", sampleRules(), testCase.advice)
			require.Equal(t, 3, report.Len())

			errs := report.OfKind(finding.AdvisoryError)
			require.Len(t, errs, 1)
			assert.Equal(t, testCase.wantMessage, errs[0].Message)
			assert.False(t, errs[0].HasLine())
			assert.Len(t, report.OfKind(finding.RuleViolation), 2)
		})
	}
}

func TestAggregatorLocalizesErrors(t *testing.T) {
	t.Parallel()

	agg := analysis.NewAggregator(&locale.Japanese)
	report := agg.AdvisoryOnly("doc.md", &analysis.Advice{Err: errors.New("timeout")})

	assert.Equal(t, finding.ScopeAdvisory, report.Scope)
	require.Equal(t, 1, report.Len())
	assert.Equal(t, "AIチェックエラー: timeout", report.Findings[0].Message)

	rulesOnly := agg.RulesOnly("doc.md", nil)
	assert.Equal(t, finding.ScopeRules, rulesOnly.Scope)
}

func TestAggregateDoesNotDropOrDuplicate(t *testing.T) {
	t.Parallel()

	rules := sampleRules()
	advice := sampleAdvice()
	report := analysis.Aggregate("doc.md", rules, &analysis.Advice{Result: advice})

	assert.Equal(t, len(rules)+advice.Len(), report.Len())
}
