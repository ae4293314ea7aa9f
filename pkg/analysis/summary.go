package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/mdcheck/pkg/finding"
)

// ReportVersion is the current machine-readable report format version.
const ReportVersion = "1.0.0"

// Totals contains aggregate statistics for a run.
type Totals struct {
	Files              int `json:"filesChecked"`
	FilesWithFindings  int `json:"filesWithFindings"`
	Findings           int `json:"totalFindings"`
	RuleViolations     int `json:"ruleViolations"`
	AdvisoryFindings   int `json:"advisoryFindings"`
	AdvisoryErrors     int `json:"advisoryErrors"`
	FilesWithReadError int `json:"filesWithReadErrors"`
}

// HasFindings returns true if any finding was reported.
func (t Totals) HasFindings() bool {
	return t.Findings > 0
}

// RuleSummary counts violations of one rule across the run.
type RuleSummary struct {
	RuleID   string   `json:"ruleId"`
	RuleName string   `json:"ruleName"`
	Count    int      `json:"count"`
	Files    []string `json:"files,omitempty"`
}

// Summary is the run-level view shared by the JSON and SARIF reporters.
type Summary struct {
	Version   string        `json:"version"`
	Timestamp time.Time     `json:"timestamp"`
	Totals    Totals        `json:"summary"`
	ByRule    []RuleSummary `json:"byRule,omitempty"`
}

// Summarize computes totals and per-rule counts over the reports of a run.
// readErrors is the number of files that could not be read. Paths are shown
// relative to workDir when possible.
func Summarize(reports []*finding.Report, readErrors int, workDir string) *Summary {
	summary := &Summary{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}
	summary.Totals.FilesWithReadError = readErrors
	summary.Totals.Files = readErrors

	byRule := make(map[string]*RuleSummary)
	ruleFiles := make(map[string]map[string]bool)

	for _, report := range reports {
		if report == nil {
			continue
		}
		summary.Totals.Files++
		if !report.Empty() {
			summary.Totals.FilesWithFindings++
		}
		path := RelativePath(report.Path, workDir)

		for _, f := range report.Findings {
			summary.Totals.Findings++
			switch f.Kind {
			case finding.RuleViolation:
				summary.Totals.RuleViolations++
				rs, ok := byRule[f.RuleID]
				if !ok {
					rs = &RuleSummary{RuleID: f.RuleID, RuleName: f.RuleName}
					byRule[f.RuleID] = rs
					ruleFiles[f.RuleID] = make(map[string]bool)
				}
				rs.Count++
				ruleFiles[f.RuleID][path] = true
			case finding.AdvisoryError:
				summary.Totals.AdvisoryErrors++
			default:
				summary.Totals.AdvisoryFindings++
			}
		}
	}

	for id, rs := range byRule {
		for file := range ruleFiles[id] {
			rs.Files = append(rs.Files, file)
		}
		slices.Sort(rs.Files)
		summary.ByRule = append(summary.ByRule, *rs)
	}
	slices.SortFunc(summary.ByRule, func(left, right RuleSummary) int {
		return cmp.Compare(left.RuleID, right.RuleID)
	})

	return summary
}

// RelativePath converts path to one relative to workDir.
// If workDir is empty or conversion fails, returns the original path.
func RelativePath(path, workDir string) string {
	if workDir == "" || path == "" {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(workDir, abs)
	if err != nil {
		return path
	}
	return rel
}
