package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdcheck/pkg/analysis"
)

const (
	wordFile  = "file"
	wordFiles = "files"
)

// FormatSummaryOneLine formats run totals as a single line.
// Example: "7 findings (5 rule, 2 advisory) in 3 files".
func (s *Styles) FormatSummaryOneLine(totals analysis.Totals) string {
	if !totals.HasFindings() {
		msg := s.Success.Render("No issues found") + s.Dim.Render(fmt.Sprintf(" (%d %s checked)", totals.Files, plural(totals.Files, wordFile, wordFiles)))
		return msg + "\n"
	}

	var parts []string

	var kindParts []string
	if totals.RuleViolations > 0 {
		kindParts = append(kindParts, s.Rule.Render(fmt.Sprintf("%d rule", totals.RuleViolations)))
	}
	if totals.AdvisoryFindings > 0 {
		kindParts = append(kindParts, s.Advisory.Render(fmt.Sprintf("%d advisory", totals.AdvisoryFindings)))
	}
	if totals.AdvisoryErrors > 0 {
		kindParts = append(kindParts, s.Error.Render(fmt.Sprintf("%d AI check %s", totals.AdvisoryErrors, plural(totals.AdvisoryErrors, "error", "errors"))))
	}

	count := fmt.Sprintf("%d %s", totals.Findings, plural(totals.Findings, "finding", "findings"))
	if len(kindParts) > 0 {
		count += " (" + strings.Join(kindParts, ", ") + ")"
	}
	count += fmt.Sprintf(" in %d %s", totals.FilesWithFindings, plural(totals.FilesWithFindings, wordFile, wordFiles))
	parts = append(parts, count)

	if totals.FilesWithReadError > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d unreadable", totals.FilesWithReadError)))
	}

	return strings.Join(parts, ", ") + "\n"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
