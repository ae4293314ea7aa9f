package reporter_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcheck/pkg/analysis"
	"github.com/yaklabco/mdcheck/pkg/finding"
	"github.com/yaklabco/mdcheck/pkg/locale"
	"github.com/yaklabco/mdcheck/pkg/reporter"
)

type jumpRecorder struct {
	lines []int
}

func (j *jumpRecorder) JumpToLine(line int) {
	j.lines = append(j.lines, line)
}

func TestItemsOnePerFinding(t *testing.T) {
	t.Parallel()

	report := sampleMerged()
	list := reporter.Items(report, &locale.Japanese)

	require.Equal(t, report.Len(), list.Len())
	assert.Empty(t, list.EmptyText)

	want := []reporter.Item{
		{Text: "行 1: Missing space after heading marker (char code: 0x54) -> #Title", Line: 1, Jumpable: true, Class: reporter.ClassRule, Color: "#E85D75"},
		{Text: "[用語] Ollama: product name", Class: reporter.ClassAdvisory, Color: "#4A90E2"},
		{Text: "[表記揺れ] e-mail <-> email: pick one", Class: reporter.ClassAdvisory, Color: "#4A90E2"},
		{Text: "[提案] Add a summary", Class: reporter.ClassAdvisory, Color: "#4A90E2"},
	}
	assert.Equal(t, want, list.Items)
}

func TestItemsEmptyText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		report    *finding.Report
		wantEmpty string
		wantLen   int
	}{
		{
			name:      "rules ran and found nothing",
			report:    analysis.Aggregate("doc.md", nil, nil),
			wantEmpty: "✓ No issues found",
		},
		{
			name: "rules clean with advice",
			report: analysis.Aggregate("doc.md", nil, &analysis.Advice{
				Err: errors.New("down"),
			}),
			wantEmpty: "✓ No issues found",
			wantLen:   1,
		},
		{
			name:    "advisory only",
			report:  analysis.NewAggregator(nil).AdvisoryOnly("doc.md", &analysis.Advice{Err: errors.New("down")}),
			wantLen: 1,
		},
		{
			name:   "nil report",
			report: nil,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			list := reporter.Items(testCase.report, nil)
			assert.Equal(t, testCase.wantEmpty, list.EmptyText)
			assert.Equal(t, testCase.wantLen, list.Len())
		})
	}
}

func TestItemsAdvisoryError(t *testing.T) {
	t.Parallel()

	report := analysis.NewAggregator(&locale.Japanese).AdvisoryOnly("doc.md", &analysis.Advice{Err: errors.New("timeout")})
	list := reporter.Items(report, &locale.Japanese)

	require.Equal(t, 1, list.Len())
	assert.Equal(t, "❌ AIチェックエラー: timeout", list.Items[0].Text)
	assert.False(t, list.Items[0].Jumpable)
}

func TestItemActivate(t *testing.T) {
	t.Parallel()

	list := reporter.Items(sampleMerged(), nil)
	jumper := &jumpRecorder{}

	for _, item := range list.Items {
		item.Activate(jumper)
	}
	assert.Equal(t, []int{1}, jumper.lines)

	assert.NotPanics(t, func() { list.Items[0].Activate(nil) })
}

func TestClass(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "rule", reporter.ClassRule.String())
	assert.Equal(t, "advisory", reporter.ClassAdvisory.String())
	assert.Equal(t, "#E85D75", reporter.ClassRule.Color())
	assert.Equal(t, "#4A90E2", reporter.ClassAdvisory.Color())
}
