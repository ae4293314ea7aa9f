package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/yaklabco/mdcheck/pkg/analysis"
	"github.com/yaklabco/mdcheck/pkg/finding"
	"github.com/yaklabco/mdcheck/pkg/lint"
	"github.com/yaklabco/mdcheck/pkg/runner"
)

// SARIF version used by this reporter.
const sarifVersion = "2.1.0"

// SARIF schema URI.
const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

// SARIF levels.
const (
	sarifLevelWarning = "warning"
	sarifLevelNote    = "note"
	sarifLevelError   = "error"
)

// Rule IDs for advisory results, which have no rule of their own.
const (
	advisoryTermRuleID          = "advisory/term"
	advisoryInconsistencyRuleID = "advisory/inconsistency"
	advisorySuggestionRuleID    = "advisory/suggestion"
	advisoryErrorRuleID         = "advisory/error"
)

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool    SARIFTool     `json:"tool"`
	Results []SARIFResult `json:"results"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes a rule.
type SARIFRule struct {
	ID               string               `json:"id"`
	Name             string               `json:"name,omitempty"`
	ShortDescription SARIFMultiformatText `json:"shortDescription"`
	DefaultConfig    *SARIFRuleConfig     `json:"defaultConfiguration,omitempty"`
}

// SARIFMultiformatText contains text in multiple formats.
type SARIFMultiformatText struct {
	Text string `json:"text"`
}

// SARIFRuleConfig contains rule configuration.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFResult represents a single finding.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
}

// SARIFMessage contains the result message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a location in a file.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation contains file path and, for rule findings, a region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           *SARIFRegion          `json:"region,omitempty"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes the affected line.
type SARIFRegion struct {
	StartLine int `json:"startLine"`
}

// SARIFReporter formats results as SARIF.
type SARIFReporter struct {
	runner.NopObserver

	opts Options
	out  io.Writer
}

var _ Reporter = (*SARIFReporter)(nil)

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{
		opts: opts,
		out:  opts.Writer,
	}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.out)
	encoder.SetEscapeHTML(false)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}

	return len(output.Runs[0].Results), nil
}

func (r *SARIFReporter) buildOutput(result *runner.Result) *SARIFOutput {
	output := &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs: []SARIFRun{{
			Tool: SARIFTool{
				Driver: SARIFDriver{
					Name:           "mdcheck",
					Version:        r.opts.Version,
					InformationURI: "https://github.com/yaklabco/mdcheck",
					Rules:          driverRules(),
				},
			},
			Results: make([]SARIFResult, 0),
		}},
	}

	for _, report := range result.Reports() {
		uri := filepath.ToSlash(analysis.RelativePath(report.Path, r.opts.WorkingDir))
		for _, f := range report.Findings {
			output.Runs[0].Results = append(output.Runs[0].Results, toSARIFResult(f, uri))
		}
	}

	return output
}

// driverRules lists the built-in rules followed by the advisory categories.
func driverRules() []SARIFRule {
	var rules []SARIFRule
	for _, rule := range lint.DefaultRegistry().Rules() {
		rules = append(rules, SARIFRule{
			ID:               rule.ID(),
			Name:             rule.Name(),
			ShortDescription: SARIFMultiformatText{Text: rule.Description()},
			DefaultConfig:    &SARIFRuleConfig{Level: sarifLevelWarning},
		})
	}

	advisoryRules := []struct{ id, text, level string }{
		{advisoryTermRuleID, "Term or proper noun noted by the model", sarifLevelNote},
		{advisoryInconsistencyRuleID, "Spelling inconsistency noted by the model", sarifLevelNote},
		{advisorySuggestionRuleID, "Suggestion from the model", sarifLevelNote},
		{advisoryErrorRuleID, "The model could not be consulted", sarifLevelError},
	}
	for _, rule := range advisoryRules {
		rules = append(rules, SARIFRule{
			ID:               rule.id,
			ShortDescription: SARIFMultiformatText{Text: rule.text},
			DefaultConfig:    &SARIFRuleConfig{Level: rule.level},
		})
	}
	return rules
}

func toSARIFResult(f finding.Finding, uri string) SARIFResult {
	location := SARIFLocation{
		PhysicalLocation: SARIFPhysicalLocation{
			ArtifactLocation: SARIFArtifactLocation{URI: uri},
		},
	}
	if f.HasLine() {
		location.PhysicalLocation.Region = &SARIFRegion{StartLine: f.Line}
	}

	ruleID, level := f.RuleID, sarifLevelWarning
	switch f.Kind {
	case finding.AdvisoryTerm:
		ruleID, level = advisoryTermRuleID, sarifLevelNote
	case finding.AdvisoryInconsistency:
		ruleID, level = advisoryInconsistencyRuleID, sarifLevelNote
	case finding.AdvisorySuggestion:
		ruleID, level = advisorySuggestionRuleID, sarifLevelNote
	case finding.AdvisoryError:
		ruleID, level = advisoryErrorRuleID, sarifLevelError
	}

	return SARIFResult{
		RuleID:    ruleID,
		Level:     level,
		Message:   SARIFMessage{Text: f.Message},
		Locations: []SARIFLocation{location},
	}
}
